// Package gateway defines the narrow ports the storefront uses to talk to the
// remote commerce gateway. The gateway is the sole source of truth for carts,
// wishlists, orders and accounts.
package gateway

import (
	"context"

	"github.com/utafrali/storefront/internal/domain"
)

// CartGateway is the remote cart resource.
type CartGateway interface {
	// GetCart returns the user's cart with populated product summaries.
	// A user without a cart gets an empty cart and no error.
	GetCart(ctx context.Context, token string) (domain.Cart, error)
	// AddToCart adds productID and returns the authoritative cart. The gateway
	// adds one unit per call; a count above one is set with a follow-up update.
	// If that update fails the error is a *PartialCartError carrying the cart
	// after the first unit was added.
	AddToCart(ctx context.Context, token, productID string, count int) (domain.Cart, error)
	UpdateCartItem(ctx context.Context, token, productID string, count int) (domain.Cart, error)
	RemoveCartItem(ctx context.Context, token, productID string) (domain.Cart, error)
	ClearCart(ctx context.Context, token string) error
}

// PartialCartError reports a cart write the gateway applied only in part.
// Cart is the gateway's cart after the last step that succeeded.
type PartialCartError struct {
	Cart domain.Cart
	Err  error
}

func (e *PartialCartError) Error() string { return e.Err.Error() }

func (e *PartialCartError) Unwrap() error { return e.Err }

// WishlistGateway is the remote wishlist resource. Mutations return only the
// resulting product id list.
type WishlistGateway interface {
	GetWishlist(ctx context.Context, token string) ([]domain.Product, error)
	AddToWishlist(ctx context.Context, token, productID string) ([]string, error)
	RemoveFromWishlist(ctx context.Context, token, productID string) ([]string, error)
}

// CatalogGateway serves the public catalog.
type CatalogGateway interface {
	ListProducts(ctx context.Context, q domain.ProductQuery) (domain.ProductPage, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, id string) (domain.Category, error)
	ListSubcategories(ctx context.Context, categoryID string) ([]domain.Subcategory, error)
	ListBrands(ctx context.Context) ([]domain.Brand, error)
	GetBrand(ctx context.Context, id string) (domain.Brand, error)
}

// ReviewGateway serves product reviews. Writes require a token.
type ReviewGateway interface {
	ListReviews(ctx context.Context, productID string) ([]domain.Review, error)
	CreateReview(ctx context.Context, token, productID string, in domain.ReviewInput) (domain.Review, error)
	UpdateReview(ctx context.Context, token, reviewID string, in domain.ReviewInput) (domain.Review, error)
	DeleteReview(ctx context.Context, token, reviewID string) error
}

// AuthGateway covers account creation and password recovery.
type AuthGateway interface {
	Signup(ctx context.Context, in domain.SignupInput) (domain.AuthResult, error)
	Signin(ctx context.Context, in domain.SigninInput) (domain.AuthResult, error)
	ForgotPassword(ctx context.Context, in domain.ForgotPasswordInput) (string, error)
	VerifyResetCode(ctx context.Context, in domain.VerifyResetCodeInput) (string, error)
	ResetPassword(ctx context.Context, in domain.ResetPasswordInput) (string, error)
}

// UserGateway covers the signed-in user's own profile.
type UserGateway interface {
	GetMe(ctx context.Context, token string) (domain.User, error)
	UpdateMe(ctx context.Context, token string, in domain.ProfileInput) (domain.User, error)
	ChangePassword(ctx context.Context, token string, in domain.ChangePasswordInput) (domain.AuthResult, error)
}

// AddressGateway manages saved addresses. Mutations return the full list.
type AddressGateway interface {
	ListAddresses(ctx context.Context, token string) ([]domain.Address, error)
	AddAddress(ctx context.Context, token string, in domain.AddressInput) ([]domain.Address, error)
	RemoveAddress(ctx context.Context, token, id string) ([]domain.Address, error)
}

// OrderGateway places and lists orders.
type OrderGateway interface {
	CreateCashOrder(ctx context.Context, token, cartID string, addr domain.ShippingAddress) (domain.Order, error)
	CreateCheckoutSession(ctx context.Context, token, cartID, returnURL string, addr domain.ShippingAddress) (domain.CheckoutSession, error)
	ListUserOrders(ctx context.Context, token, userID string) ([]domain.Order, error)
}
