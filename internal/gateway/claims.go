package gateway

import (
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// UserClaims are the claims the gateway puts in its tokens.
type UserClaims struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ParseClaims decodes the token payload without verifying the signature.
// Only the gateway holds the signing key and it verifies every request, so
// the claims are used for routing (the user id in /orders/user/{id}) only.
func ParseClaims(token string) (*UserClaims, error) {
	if token == "" {
		return nil, apperrors.Unauthenticated("sign in to continue")
	}

	claims := &UserClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, apperrors.Unauthenticated("session token is malformed, sign in again")
	}
	if claims.ID == "" {
		return nil, apperrors.Unauthenticated("session token carries no user id, sign in again")
	}
	return claims, nil
}

// UserIDFromToken returns the gateway user id embedded in token.
func UserIDFromToken(token string) (string, error) {
	claims, err := ParseClaims(token)
	if err != nil {
		return "", err
	}
	return claims.ID, nil
}
