package rest

import (
	"context"
	"fmt"

	"github.com/utafrali/storefront/internal/domain"
)

// GetMe fetches the signed-in user's profile.
func (c *Client) GetMe(ctx context.Context, token string) (domain.User, error) {
	var resp struct {
		Data wireUser `json:"data"`
		User wireUser `json:"user"`
	}
	if err := c.get(ctx, "/users/getMe", "/users/getMe", token, nil, &resp); err != nil {
		return domain.User{}, fmt.Errorf("get profile: %w", err)
	}
	if resp.Data.Email != "" {
		return resp.Data.toDomain(), nil
	}
	return resp.User.toDomain(), nil
}

// UpdateMe updates name, email or phone.
func (c *Client) UpdateMe(ctx context.Context, token string, in domain.ProfileInput) (domain.User, error) {
	var resp wireAuth
	if err := c.put(ctx, "/users/updateMe", "/users/updateMe", token, in, &resp); err != nil {
		return domain.User{}, fmt.Errorf("update profile: %w", err)
	}
	return resp.User.toDomain(), nil
}

// ChangePassword changes the password. The gateway invalidates the old token
// and returns a new one.
func (c *Client) ChangePassword(ctx context.Context, token string, in domain.ChangePasswordInput) (domain.AuthResult, error) {
	var resp wireAuth
	if err := c.put(ctx, "/users/changeMyPassword", "/users/changeMyPassword", token, in, &resp); err != nil {
		return domain.AuthResult{}, fmt.Errorf("change password: %w", err)
	}
	return domain.AuthResult{Token: resp.Token, User: resp.User.toDomain()}, nil
}
