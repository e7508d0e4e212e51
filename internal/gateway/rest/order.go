package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/httpclient"
)

type orderBody struct {
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
}

// CreateCashOrder turns the cart into a cash-on-delivery order.
func (c *Client) CreateCashOrder(ctx context.Context, token, cartID string, addr domain.ShippingAddress) (domain.Order, error) {
	var resp wireOne[wireOrder]
	body := orderBody{ShippingAddress: addr}
	if err := c.post(ctx, "/orders/"+seg(cartID), "/orders/{cartId}", token, body, &resp); err != nil {
		return domain.Order{}, fmt.Errorf("create cash order for cart %s: %w", cartID, err)
	}
	return resp.Data.toDomain(), nil
}

// CreateCheckoutSession opens a hosted card payment session. The payment
// provider redirects to returnURL when done.
func (c *Client) CreateCheckoutSession(ctx context.Context, token, cartID, returnURL string, addr domain.ShippingAddress) (domain.CheckoutSession, error) {
	var resp struct {
		Session struct {
			URL string `json:"url"`
		} `json:"session"`
	}
	err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/orders/checkout-session/" + seg(cartID),
		Route:  "/orders/checkout-session/{cartId}",
		Query:  url.Values{"url": {returnURL}},
		Body:   orderBody{ShippingAddress: addr},
		Token:  token,
	}, &resp)
	if err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("create checkout session for cart %s: %w", cartID, err)
	}
	return domain.CheckoutSession{URL: resp.Session.URL}, nil
}

// ListUserOrders fetches every order of userID. The gateway returns a bare
// JSON array here.
func (c *Client) ListUserOrders(ctx context.Context, token, userID string) ([]domain.Order, error) {
	var resp []wireOrder
	if err := c.get(ctx, "/orders/user/"+seg(userID), "/orders/user/{userId}", token, nil, &resp); err != nil {
		return nil, fmt.Errorf("list orders of %s: %w", userID, err)
	}
	out := make([]domain.Order, 0, len(resp))
	for _, o := range resp {
		out = append(out, o.toDomain())
	}
	return out, nil
}
