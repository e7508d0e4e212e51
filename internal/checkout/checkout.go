// Package checkout turns the cached cart into a gateway order.
package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/gateway"
	"github.com/utafrali/storefront/internal/store"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/validator"
)

// Cart is the part of *store.CartStore checkout needs.
type Cart interface {
	Fetch(ctx context.Context, token string) (domain.Cart, error)
	Snapshot() domain.Cart
	State() store.State
	Reset()
}

// Service places orders against the gateway.
type Service struct {
	orders    gateway.OrderGateway
	discounts Discounts
	returnURL string
	logger    *slog.Logger
}

// NewService creates a checkout service. returnURL is where the card payment
// page sends the shopper back when a request does not name one.
func NewService(orders gateway.OrderGateway, discounts Discounts, returnURL string, logger *slog.Logger) *Service {
	if discounts == nil {
		discounts = Discounts{}
	}
	return &Service{
		orders:    orders,
		discounts: discounts,
		returnURL: returnURL,
		logger:    logger,
	}
}

// PlaceCashOrder orders the cart for cash on delivery. On success the cached
// cart is reset; the gateway has already emptied the remote one.
func (s *Service) PlaceCashOrder(ctx context.Context, token string, cart Cart, addr domain.ShippingAddress) (domain.Order, error) {
	cartID, err := s.prepare(ctx, token, cart, addr)
	if err != nil {
		return domain.Order{}, err
	}

	order, err := s.orders.CreateCashOrder(ctx, token, cartID, addr)
	if err != nil {
		return domain.Order{}, fmt.Errorf("place cash order: %w", err)
	}
	cart.Reset()

	s.logger.InfoContext(ctx, "cash order placed",
		slog.String("order_id", order.ID),
		slog.String("cart_id", cartID),
	)
	return order, nil
}

// StartCardCheckout opens a hosted card payment session for the cart. The
// cart is left untouched until the payment completes.
func (s *Service) StartCardCheckout(ctx context.Context, token string, cart Cart, addr domain.ShippingAddress, returnURL string) (domain.CheckoutSession, error) {
	if returnURL == "" {
		returnURL = s.returnURL
	}
	if err := checkReturnURL(returnURL); err != nil {
		return domain.CheckoutSession{}, err
	}

	cartID, err := s.prepare(ctx, token, cart, addr)
	if err != nil {
		return domain.CheckoutSession{}, err
	}

	sess, err := s.orders.CreateCheckoutSession(ctx, token, cartID, returnURL, addr)
	if err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("start card checkout: %w", err)
	}

	s.logger.InfoContext(ctx, "card checkout session opened", slog.String("cart_id", cartID))
	return sess, nil
}

// Orders lists the orders of the user the token belongs to.
func (s *Service) Orders(ctx context.Context, token string) ([]domain.Order, error) {
	userID, err := gateway.UserIDFromToken(token)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.ListUserOrders(ctx, token, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Quote prices the cart with a promo code. Nothing is sent to the gateway.
func (s *Service) Quote(cart domain.Cart, code string) (domain.Quote, error) {
	return s.discounts.Quote(cart, code)
}

// prepare validates the address and returns the id of a non-empty cart,
// fetching the cart first if it was never loaded.
func (s *Service) prepare(ctx context.Context, token string, cart Cart, addr domain.ShippingAddress) (string, error) {
	if token == "" {
		return "", apperrors.Unauthenticated("sign in to check out")
	}
	if err := validator.Validate(addr); err != nil {
		return "", err
	}

	snap := cart.Snapshot()
	if cart.State() != store.StateReady || snap.ID == "" {
		var err error
		if snap, err = cart.Fetch(ctx, token); err != nil {
			return "", fmt.Errorf("load cart for checkout: %w", err)
		}
	}

	if snap.ID == "" || len(snap.Items) == 0 {
		return "", apperrors.Validation("your cart is empty")
	}
	return snap.ID, nil
}

func checkReturnURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperrors.Validation("return url must be an absolute http(s) url")
	}
	return nil
}
