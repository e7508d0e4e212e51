package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/gateway"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// GetCart fetches the cart. The gateway answers 404 for a user who never had
// a cart; that is reported as an empty cart.
func (c *Client) GetCart(ctx context.Context, token string) (domain.Cart, error) {
	var resp wireCart
	if err := c.get(ctx, "/cart", "/cart", token, nil, &resp); err != nil {
		if apperrors.IsGatewayStatus(err, http.StatusNotFound) {
			return emptyCart(), nil
		}
		return domain.Cart{}, fmt.Errorf("get cart: %w", err)
	}
	return resp.toDomain(), nil
}

// AddToCart posts one unit of productID. The gateway only ever increments by
// one, so for count > 1 the line is then set to the posted quantity plus the
// remaining count-1 units.
func (c *Client) AddToCart(ctx context.Context, token, productID string, count int) (domain.Cart, error) {
	var resp wireCart
	body := map[string]string{"productId": productID}
	if err := c.post(ctx, "/cart", "/cart", token, body, &resp); err != nil {
		return domain.Cart{}, fmt.Errorf("add %s to cart: %w", productID, err)
	}

	cart := resp.toDomain()
	if count <= 1 {
		return cart, nil
	}

	target := count
	if i := cart.Find(productID); i >= 0 {
		target = cart.Items[i].Count + count - 1
	}
	updated, err := c.UpdateCartItem(ctx, token, productID, target)
	if err != nil {
		return cart, &gateway.PartialCartError{Cart: cart, Err: err}
	}
	return updated, nil
}

// UpdateCartItem sets the count of one line.
func (c *Client) UpdateCartItem(ctx context.Context, token, productID string, count int) (domain.Cart, error) {
	var resp wireCart
	body := map[string]int{"count": count}
	if err := c.put(ctx, "/cart/"+seg(productID), "/cart/{productId}", token, body, &resp); err != nil {
		return domain.Cart{}, fmt.Errorf("update cart item %s: %w", productID, err)
	}
	return resp.toDomain(), nil
}

// RemoveCartItem deletes one line.
func (c *Client) RemoveCartItem(ctx context.Context, token, productID string) (domain.Cart, error) {
	var resp wireCart
	if err := c.delete(ctx, "/cart/"+seg(productID), "/cart/{productId}", token, &resp); err != nil {
		return domain.Cart{}, fmt.Errorf("remove cart item %s: %w", productID, err)
	}
	return resp.toDomain(), nil
}

// ClearCart deletes the whole cart.
func (c *Client) ClearCart(ctx context.Context, token string) error {
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.delete(ctx, "/cart", "/cart", token, &resp); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func emptyCart() domain.Cart {
	c := domain.Cart{Items: []domain.CartLineItem{}}
	c.Recompute()
	return c
}
