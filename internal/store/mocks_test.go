package store

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/utafrali/storefront/internal/domain"
)

const testToken = "tok-123"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// --- Mock CartGateway ---

type mockCartGateway struct {
	mock.Mock
}

func (m *mockCartGateway) GetCart(ctx context.Context, token string) (domain.Cart, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *mockCartGateway) AddToCart(ctx context.Context, token, productID string, count int) (domain.Cart, error) {
	args := m.Called(ctx, token, productID, count)
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *mockCartGateway) UpdateCartItem(ctx context.Context, token, productID string, count int) (domain.Cart, error) {
	args := m.Called(ctx, token, productID, count)
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *mockCartGateway) RemoveCartItem(ctx context.Context, token, productID string) (domain.Cart, error) {
	args := m.Called(ctx, token, productID)
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *mockCartGateway) ClearCart(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// --- Mock WishlistGateway ---

type mockWishlistGateway struct {
	mock.Mock
}

func (m *mockWishlistGateway) GetWishlist(ctx context.Context, token string) ([]domain.Product, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockWishlistGateway) AddToWishlist(ctx context.Context, token, productID string) ([]string, error) {
	args := m.Called(ctx, token, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockWishlistGateway) RemoveFromWishlist(ctx context.Context, token, productID string) ([]string, error) {
	args := m.Called(ctx, token, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Recording notifier ---

type recordingNotifier struct {
	mu        sync.Mutex
	carts     []domain.Cart
	wishlists []domain.Wishlist
}

func (n *recordingNotifier) CartChanged(_ context.Context, cart domain.Cart) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.carts = append(n.carts, cart)
}

func (n *recordingNotifier) WishlistChanged(_ context.Context, _ string, w domain.Wishlist) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.wishlists = append(n.wishlists, w)
}

func (n *recordingNotifier) cartCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.carts)
}

// --- Fixtures ---

func item(id string, count int, price string) domain.CartLineItem {
	return domain.CartLineItem{ProductID: id, Count: count, Price: decimal.RequireFromString(price)}
}

func cartOf(items ...domain.CartLineItem) domain.Cart {
	c := domain.Cart{ID: "cart-1", OwnerID: "user-1", Items: items}
	c.Recompute()
	return c
}

// consistent reports whether count and total match the line items.
func consistent(c domain.Cart) bool {
	expected := c.Clone()
	expected.Recompute()
	return expected.Count == c.Count && expected.Total.Equal(c.Total)
}
