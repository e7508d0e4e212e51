package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/storefront/internal/checkout"
	"github.com/utafrali/storefront/internal/config"
	"github.com/utafrali/storefront/internal/gateway"
	"github.com/utafrali/storefront/internal/session"
	"github.com/utafrali/storefront/internal/store"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/middleware"
)

// serviceName labels metrics and spans.
const serviceName = "storefront"

// catalogMaxAge is the public cache lifetime of catalog responses, in seconds.
const catalogMaxAge = 60

// Gateway groups the gateway ports the routes call directly.
type Gateway interface {
	gateway.CatalogGateway
	gateway.ReviewGateway
	gateway.AuthGateway
	gateway.UserGateway
	gateway.AddressGateway
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	cfg *config.Config,
	gw Gateway,
	registry *store.Registry,
	checkoutService *checkout.Service,
	sessions *session.Manager,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORSAllowedOrigins
	cors.AllowedHeaders = []string{"Accept", "Content-Type", "X-Correlation-ID", cfg.GatewayTokenHeader}
	cors.AllowCredentials = true
	cors.Environment = cfg.Environment
	r.Use(middleware.CORS(cors))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.Token(middleware.TokenConfig{
		Header: cfg.GatewayTokenHeader,
		Cookie: sessions.CookieName(),
		Lookup: sessions.Lookup,
	}))
	r.Use(UserIDForLogs)
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)

	catalogHandler := NewCatalogHandler(gw, cfg.ListingPageSize, cfg.ListingFetchLimit, logger)
	reviewHandler := NewReviewHandler(gw, logger)
	cartHandler := NewCartHandler(registry, checkoutService, logger)
	wishlistHandler := NewWishlistHandler(registry, logger)
	authHandler := NewAuthHandler(gw, sessions, registry, logger)
	accountHandler := NewAccountHandler(gw, gw, sessions, registry, logger)
	orderHandler := NewOrderHandler(checkoutService, registry, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Public catalog
		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(catalogMaxAge))

			r.Get("/products", catalogHandler.ListProducts)
			r.Get("/products/{id}", catalogHandler.GetProduct)
			r.Get("/products/{id}/reviews", reviewHandler.ListReviews)

			r.Get("/categories", catalogHandler.ListCategories)
			r.Get("/categories/{id}", catalogHandler.GetCategory)
			r.Get("/categories/{id}/subcategories", catalogHandler.ListSubcategories)

			r.Get("/brands", catalogHandler.ListBrands)
			r.Get("/brands/{id}", catalogHandler.GetBrand)
		})

		// Auth
		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore)

			r.Post("/auth/signup", authHandler.Signup)
			r.Post("/auth/signin", authHandler.Signin)
			r.Post("/auth/logout", authHandler.Logout)
			r.Post("/auth/forgot-password", authHandler.ForgotPassword)
			r.Post("/auth/verify-reset-code", authHandler.VerifyResetCode)
			r.Put("/auth/reset-password", authHandler.ResetPassword)
		})

		// Signed-in user
		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Use(middleware.RequireToken)

			r.Post("/products/{id}/reviews", reviewHandler.CreateReview)
			r.Put("/reviews/{id}", reviewHandler.UpdateReview)
			r.Delete("/reviews/{id}", reviewHandler.DeleteReview)

			r.Get("/cart", cartHandler.GetCart)
			r.Delete("/cart", cartHandler.ClearCart)
			r.Post("/cart/items", cartHandler.AddItem)
			r.Put("/cart/items/{productId}", cartHandler.UpdateItemQuantity)
			r.Delete("/cart/items/{productId}", cartHandler.RemoveItem)
			r.Post("/cart/quote", cartHandler.Quote)

			r.Get("/wishlist", wishlistHandler.GetWishlist)
			r.Post("/wishlist", wishlistHandler.AddItem)
			r.Delete("/wishlist/{productId}", wishlistHandler.RemoveItem)

			r.Get("/users/me", accountHandler.GetMe)
			r.Put("/users/me", accountHandler.UpdateMe)
			r.Put("/users/me/password", accountHandler.ChangePassword)

			r.Get("/addresses", accountHandler.ListAddresses)
			r.Post("/addresses", accountHandler.AddAddress)
			r.Delete("/addresses/{id}", accountHandler.RemoveAddress)

			r.Get("/orders", orderHandler.ListOrders)
			r.Post("/orders/cash", orderHandler.PlaceCashOrder)
			r.Post("/orders/checkout-session", orderHandler.StartCheckoutSession)
		})
	})

	return r
}
