package checkout

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

var hundred = decimal.NewFromInt(100)

// Discounts maps upper-cased promo codes to a percentage off.
type Discounts map[string]decimal.Decimal

// ParseDiscounts parses "CODE:PERCENT" pairs separated by commas, e.g.
// "SAVE10:10,WELCOME:15". Percentages must be in (0, 100].
func ParseDiscounts(raw string) (Discounts, error) {
	d := Discounts{}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		code, pct, ok := strings.Cut(pair, ":")
		code = strings.ToUpper(strings.TrimSpace(code))
		if !ok || code == "" {
			return nil, fmt.Errorf("discount %q: want CODE:PERCENT", pair)
		}

		p, err := decimal.NewFromString(strings.TrimSpace(pct))
		if err != nil {
			return nil, fmt.Errorf("discount %s: parse percent: %w", code, err)
		}
		if !p.IsPositive() || p.GreaterThan(hundred) {
			return nil, fmt.Errorf("discount %s: percent %s out of range", code, p)
		}
		d[code] = p
	}
	return d, nil
}

// Quote applies code to the cart total. Codes are matched case-insensitively.
// The quote is informational: the gateway's order total is what gets charged.
func (d Discounts) Quote(cart domain.Cart, code string) (domain.Quote, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return domain.Quote{}, apperrors.Validation("discount code is required")
	}

	pct, ok := d[code]
	if !ok {
		return domain.Quote{}, apperrors.Validation(fmt.Sprintf("discount code %s is not valid", code))
	}

	discount := cart.Total.Mul(pct).Div(hundred).Round(2)
	return domain.Quote{
		Code:       code,
		Percent:    pct,
		Subtotal:   cart.Total,
		Discount:   discount,
		Total:      cart.Total.Sub(discount),
		ItemsCount: cart.Count,
	}, nil
}
