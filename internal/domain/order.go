package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods reported by the gateway.
const (
	PaymentCash = "cash"
	PaymentCard = "card"
)

// Order is a placed order as reported by the gateway.
type Order struct {
	ID              string          `json:"id"`
	Number          int             `json:"number,omitempty"`
	UserID          string          `json:"user_id,omitempty"`
	Items           []CartLineItem  `json:"items"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	ShippingPrice   decimal.Decimal `json:"shipping_price"`
	TaxPrice        decimal.Decimal `json:"tax_price"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	PaymentMethod   string          `json:"payment_method"`
	IsPaid          bool            `json:"is_paid"`
	IsDelivered     bool            `json:"is_delivered"`
	CreatedAt       time.Time       `json:"created_at,omitempty"`
}

// CheckoutSession is a hosted card payment session.
type CheckoutSession struct {
	URL string `json:"url"`
}

// Quote is a client-side discount applied to a cart snapshot. It never
// replaces the gateway's total.
type Quote struct {
	Code       string          `json:"code"`
	Percent    decimal.Decimal `json:"percent"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Discount   decimal.Decimal `json:"discount"`
	Total      decimal.Decimal `json:"total"`
	ItemsCount int             `json:"items_count"`
}
