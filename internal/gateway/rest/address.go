package rest

import (
	"context"
	"fmt"

	"github.com/utafrali/storefront/internal/domain"
)

// ListAddresses fetches the saved addresses.
func (c *Client) ListAddresses(ctx context.Context, token string) ([]domain.Address, error) {
	var resp wireList[wireAddress]
	if err := c.get(ctx, "/addresses", "/addresses", token, nil, &resp); err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return toAddresses(resp.Data), nil
}

// AddAddress saves an address and returns the full list.
func (c *Client) AddAddress(ctx context.Context, token string, in domain.AddressInput) ([]domain.Address, error) {
	var resp wireList[wireAddress]
	if err := c.post(ctx, "/addresses", "/addresses", token, in, &resp); err != nil {
		return nil, fmt.Errorf("add address: %w", err)
	}
	return toAddresses(resp.Data), nil
}

// RemoveAddress deletes an address and returns the remaining list.
func (c *Client) RemoveAddress(ctx context.Context, token, id string) ([]domain.Address, error) {
	var resp wireList[wireAddress]
	if err := c.delete(ctx, "/addresses/"+seg(id), "/addresses/{id}", token, &resp); err != nil {
		return nil, fmt.Errorf("remove address %s: %w", id, err)
	}
	return toAddresses(resp.Data), nil
}
