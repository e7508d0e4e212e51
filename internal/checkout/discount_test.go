package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func TestParseDiscounts(t *testing.T) {
	d, err := ParseDiscounts(" save10:10, Welcome:15 ,,")
	require.NoError(t, err)
	require.Len(t, d, 2)
	assert.Equal(t, "10", d["SAVE10"].String())
	assert.Equal(t, "15", d["WELCOME"].String())
}

func TestParseDiscounts_Empty(t *testing.T) {
	d, err := ParseDiscounts("")
	require.NoError(t, err)
	assert.Empty(t, d)
}

func TestParseDiscounts_Invalid(t *testing.T) {
	for _, raw := range []string{"SAVE10", ":10", "SAVE:ten", "SAVE:0", "SAVE:101", "SAVE:-5"} {
		_, err := ParseDiscounts(raw)
		assert.Error(t, err, raw)
	}
}

func TestQuote(t *testing.T) {
	svc := newTestService(new(mockOrderGateway))
	cart := loadedCart() // 319.00

	q, err := svc.Quote(cart, "save10")
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", q.Code)
	assert.True(t, decimal.RequireFromString("319").Equal(q.Subtotal))
	assert.True(t, decimal.RequireFromString("31.9").Equal(q.Discount))
	assert.True(t, decimal.RequireFromString("287.1").Equal(q.Total))
	assert.Equal(t, 3, q.ItemsCount)

	// The cart total is untouched.
	assert.True(t, decimal.RequireFromString("319").Equal(cart.Total))
}

func TestQuote_RoundsToCents(t *testing.T) {
	d, err := ParseDiscounts("WELCOME:15")
	require.NoError(t, err)

	cart := loadedCart()
	cart.Total = decimal.RequireFromString("10.01")

	q, err := d.Quote(cart, "WELCOME")
	require.NoError(t, err)
	assert.Equal(t, "1.5", q.Discount.String()) // 1.5015
	assert.Equal(t, "8.51", q.Total.String())
}

func TestQuote_UnknownCode(t *testing.T) {
	svc := newTestService(new(mockOrderGateway))

	for _, code := range []string{"", "FREE100"} {
		_, err := svc.Quote(loadedCart(), code)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	}
}
