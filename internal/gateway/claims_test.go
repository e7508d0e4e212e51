package gateway

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func signToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("not-the-gateway-key"))
	require.NoError(t, err)
	return tok
}

func TestParseClaims(t *testing.T) {
	tok := signToken(t, UserClaims{
		ID:   "6407cf6f515bdcf347c09f17",
		Name: "Ahmed",
		Role: "user",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	})

	claims, err := ParseClaims(tok)
	require.NoError(t, err)
	assert.Equal(t, "6407cf6f515bdcf347c09f17", claims.ID)
	assert.Equal(t, "Ahmed", claims.Name)
	assert.Equal(t, "user", claims.Role)
}

func TestParseClaims_ExpiredTokenStillDecodes(t *testing.T) {
	tok := signToken(t, UserClaims{
		ID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})

	id, err := UserIDFromToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", id)
}

func TestParseClaims_Errors(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-jwt"},
		{name: "no id claim", token: signToken(t, jwt.MapClaims{"name": "x"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseClaims(tt.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
		})
	}
}
