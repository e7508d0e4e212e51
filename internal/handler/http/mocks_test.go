package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/gateway"
)

// ============================================================================
// Mock gateway (every port)
// ============================================================================

type mockGateway struct {
	mock.Mock
}

var (
	_ Gateway                 = (*mockGateway)(nil)
	_ gateway.CartGateway     = (*mockGateway)(nil)
	_ gateway.WishlistGateway = (*mockGateway)(nil)
	_ gateway.OrderGateway    = (*mockGateway)(nil)
)

// --- Cart ---

func (m *mockGateway) GetCart(ctx context.Context, token string) (domain.Cart, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *mockGateway) AddToCart(ctx context.Context, token, productID string, count int) (domain.Cart, error) {
	args := m.Called(ctx, token, productID, count)
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *mockGateway) UpdateCartItem(ctx context.Context, token, productID string, count int) (domain.Cart, error) {
	args := m.Called(ctx, token, productID, count)
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *mockGateway) RemoveCartItem(ctx context.Context, token, productID string) (domain.Cart, error) {
	args := m.Called(ctx, token, productID)
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *mockGateway) ClearCart(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

// --- Wishlist ---

func (m *mockGateway) GetWishlist(ctx context.Context, token string) ([]domain.Product, error) {
	args := m.Called(ctx, token)
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockGateway) AddToWishlist(ctx context.Context, token, productID string) ([]string, error) {
	args := m.Called(ctx, token, productID)
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockGateway) RemoveFromWishlist(ctx context.Context, token, productID string) ([]string, error) {
	args := m.Called(ctx, token, productID)
	return args.Get(0).([]string), args.Error(1)
}

// --- Catalog ---

func (m *mockGateway) ListProducts(ctx context.Context, q domain.ProductQuery) (domain.ProductPage, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(domain.ProductPage), args.Error(1)
}

func (m *mockGateway) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *mockGateway) ListCategories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *mockGateway) GetCategory(ctx context.Context, id string) (domain.Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Category), args.Error(1)
}

func (m *mockGateway) ListSubcategories(ctx context.Context, categoryID string) ([]domain.Subcategory, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).([]domain.Subcategory), args.Error(1)
}

func (m *mockGateway) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Brand), args.Error(1)
}

func (m *mockGateway) GetBrand(ctx context.Context, id string) (domain.Brand, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Brand), args.Error(1)
}

// --- Reviews ---

func (m *mockGateway) ListReviews(ctx context.Context, productID string) ([]domain.Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockGateway) CreateReview(ctx context.Context, token, productID string, in domain.ReviewInput) (domain.Review, error) {
	args := m.Called(ctx, token, productID, in)
	return args.Get(0).(domain.Review), args.Error(1)
}

func (m *mockGateway) UpdateReview(ctx context.Context, token, reviewID string, in domain.ReviewInput) (domain.Review, error) {
	args := m.Called(ctx, token, reviewID, in)
	return args.Get(0).(domain.Review), args.Error(1)
}

func (m *mockGateway) DeleteReview(ctx context.Context, token, reviewID string) error {
	return m.Called(ctx, token, reviewID).Error(0)
}

// --- Auth ---

func (m *mockGateway) Signup(ctx context.Context, in domain.SignupInput) (domain.AuthResult, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.AuthResult), args.Error(1)
}

func (m *mockGateway) Signin(ctx context.Context, in domain.SigninInput) (domain.AuthResult, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.AuthResult), args.Error(1)
}

func (m *mockGateway) ForgotPassword(ctx context.Context, in domain.ForgotPasswordInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *mockGateway) VerifyResetCode(ctx context.Context, in domain.VerifyResetCodeInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *mockGateway) ResetPassword(ctx context.Context, in domain.ResetPasswordInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

// --- User ---

func (m *mockGateway) GetMe(ctx context.Context, token string) (domain.User, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockGateway) UpdateMe(ctx context.Context, token string, in domain.ProfileInput) (domain.User, error) {
	args := m.Called(ctx, token, in)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockGateway) ChangePassword(ctx context.Context, token string, in domain.ChangePasswordInput) (domain.AuthResult, error) {
	args := m.Called(ctx, token, in)
	return args.Get(0).(domain.AuthResult), args.Error(1)
}

// --- Addresses ---

func (m *mockGateway) ListAddresses(ctx context.Context, token string) ([]domain.Address, error) {
	args := m.Called(ctx, token)
	return args.Get(0).([]domain.Address), args.Error(1)
}

func (m *mockGateway) AddAddress(ctx context.Context, token string, in domain.AddressInput) ([]domain.Address, error) {
	args := m.Called(ctx, token, in)
	return args.Get(0).([]domain.Address), args.Error(1)
}

func (m *mockGateway) RemoveAddress(ctx context.Context, token, id string) ([]domain.Address, error) {
	args := m.Called(ctx, token, id)
	return args.Get(0).([]domain.Address), args.Error(1)
}

// --- Orders ---

func (m *mockGateway) CreateCashOrder(ctx context.Context, token, cartID string, addr domain.ShippingAddress) (domain.Order, error) {
	args := m.Called(ctx, token, cartID, addr)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *mockGateway) CreateCheckoutSession(ctx context.Context, token, cartID, returnURL string, addr domain.ShippingAddress) (domain.CheckoutSession, error) {
	args := m.Called(ctx, token, cartID, returnURL, addr)
	return args.Get(0).(domain.CheckoutSession), args.Error(1)
}

func (m *mockGateway) ListUserOrders(ctx context.Context, token, userID string) ([]domain.Order, error) {
	args := m.Called(ctx, token, userID)
	return args.Get(0).([]domain.Order), args.Error(1)
}
