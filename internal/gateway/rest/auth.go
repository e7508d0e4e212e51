package rest

import (
	"context"
	"fmt"

	"github.com/utafrali/storefront/internal/domain"
)

// Signup registers a new account and returns its token.
func (c *Client) Signup(ctx context.Context, in domain.SignupInput) (domain.AuthResult, error) {
	var resp wireAuth
	if err := c.post(ctx, "/auth/signup", "/auth/signup", "", in, &resp); err != nil {
		return domain.AuthResult{}, fmt.Errorf("signup: %w", err)
	}
	return domain.AuthResult{Token: resp.Token, User: resp.User.toDomain()}, nil
}

// Signin exchanges credentials for a token.
func (c *Client) Signin(ctx context.Context, in domain.SigninInput) (domain.AuthResult, error) {
	var resp wireAuth
	if err := c.post(ctx, "/auth/signin", "/auth/signin", "", in, &resp); err != nil {
		return domain.AuthResult{}, fmt.Errorf("signin: %w", err)
	}
	return domain.AuthResult{Token: resp.Token, User: resp.User.toDomain()}, nil
}

// ForgotPassword asks the gateway to email a reset code. It returns the
// gateway's confirmation message.
func (c *Client) ForgotPassword(ctx context.Context, in domain.ForgotPasswordInput) (string, error) {
	var resp struct {
		StatusMsg string `json:"statusMsg"`
		Message   string `json:"message"`
	}
	if err := c.post(ctx, "/auth/forgotPasswords", "/auth/forgotPasswords", "", in, &resp); err != nil {
		return "", fmt.Errorf("forgot password: %w", err)
	}
	return resp.Message, nil
}

// VerifyResetCode checks a reset code and returns the gateway status.
func (c *Client) VerifyResetCode(ctx context.Context, in domain.VerifyResetCodeInput) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.post(ctx, "/auth/verifyResetCode", "/auth/verifyResetCode", "", in, &resp); err != nil {
		return "", fmt.Errorf("verify reset code: %w", err)
	}
	return resp.Status, nil
}

// ResetPassword sets a new password and returns a fresh token.
func (c *Client) ResetPassword(ctx context.Context, in domain.ResetPasswordInput) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.put(ctx, "/auth/resetPassword", "/auth/resetPassword", "", in, &resp); err != nil {
		return "", fmt.Errorf("reset password: %w", err)
	}
	return resp.Token, nil
}
