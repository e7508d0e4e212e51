package rest

import (
	"context"
	"fmt"

	"github.com/utafrali/storefront/internal/domain"
)

// GetWishlist returns the full product snapshots on the wishlist.
func (c *Client) GetWishlist(ctx context.Context, token string) ([]domain.Product, error) {
	var resp struct {
		Count int           `json:"count"`
		Data  []wireProduct `json:"data"`
	}
	if err := c.get(ctx, "/wishlist", "/wishlist", token, nil, &resp); err != nil {
		return nil, fmt.Errorf("get wishlist: %w", err)
	}

	out := make([]domain.Product, 0, len(resp.Data))
	for _, p := range resp.Data {
		out = append(out, p.toDomain())
	}
	return out, nil
}

// AddToWishlist adds productID and returns the resulting id list.
func (c *Client) AddToWishlist(ctx context.Context, token, productID string) ([]string, error) {
	var resp wireWishlistIDs
	body := map[string]string{"productId": productID}
	if err := c.post(ctx, "/wishlist", "/wishlist", token, body, &resp); err != nil {
		return nil, fmt.Errorf("add %s to wishlist: %w", productID, err)
	}
	return nonNil(resp.Data), nil
}

// RemoveFromWishlist removes productID and returns the resulting id list.
func (c *Client) RemoveFromWishlist(ctx context.Context, token, productID string) ([]string, error) {
	var resp wireWishlistIDs
	if err := c.delete(ctx, "/wishlist/"+seg(productID), "/wishlist/{productId}", token, &resp); err != nil {
		return nil, fmt.Errorf("remove %s from wishlist: %w", productID, err)
	}
	return nonNil(resp.Data), nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
