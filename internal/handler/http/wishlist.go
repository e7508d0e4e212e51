package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/store"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/middleware"
	"github.com/utafrali/storefront/pkg/validator"
)

// WishlistHandler serves the signed-in user's wishlist from their store.
type WishlistHandler struct {
	registry *store.Registry
	logger   *slog.Logger
}

// NewWishlistHandler creates a wishlist handler.
func NewWishlistHandler(registry *store.Registry, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{registry: registry, logger: logger}
}

// AddWishlistRequest is the JSON request body for adding to the wishlist.
type AddWishlistRequest struct {
	ProductID string `json:"product_id" validate:"required,len=24,hexadecimal"`
}

// GetWishlist handles GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromContext(r.Context())

	wishlist, err := h.registry.For(token).Wishlist.Fetch(r.Context(), token)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wishlist})
}

// AddItem handles POST /api/v1/wishlist
// When the gateway reports ids the cache has no snapshot for, the wishlist
// is refetched so the response carries full products.
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddWishlistRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	token := middleware.TokenFromContext(r.Context())
	wishlists := h.registry.For(token).Wishlist

	wishlist, err := wishlists.Add(r.Context(), token, req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if wishlist.Incomplete {
		if refreshed, err := wishlists.Fetch(r.Context(), token); err == nil && wishlists.State() == store.StateReady {
			wishlist = refreshed
		}
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wishlist})
}

// RemoveItem handles DELETE /api/v1/wishlist/{productId}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseObjectID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	token := middleware.TokenFromContext(r.Context())
	wishlist, err := h.registry.For(token).Wishlist.Remove(r.Context(), token, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: wishlist})
}
