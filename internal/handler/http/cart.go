package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/checkout"
	"github.com/utafrali/storefront/internal/store"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/middleware"
	"github.com/utafrali/storefront/pkg/validator"
)

// CartHandler serves the signed-in user's cart from their cart store.
type CartHandler struct {
	registry *store.Registry
	checkout *checkout.Service
	logger   *slog.Logger
}

// NewCartHandler creates a cart handler.
func NewCartHandler(registry *store.Registry, svc *checkout.Service, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		registry: registry,
		checkout: svc,
		logger:   logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding a product to the cart.
// A missing count adds one unit.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required,len=24,hexadecimal"`
	Count     int    `json:"count" validate:"gte=0,lte=100"`
}

// UpdateQuantityRequest is the JSON request body for setting a line count.
// Counts below one are rejected by the cart store.
type UpdateQuantityRequest struct {
	Count int `json:"count"`
}

// QuoteRequest is the JSON request body for pricing the cart with a code.
type QuoteRequest struct {
	Code string `json:"code" validate:"required,max=32"`
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromContext(r.Context())

	cart, err := h.registry.For(token).Cart.Fetch(r.Context(), token)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}

	token := middleware.TokenFromContext(r.Context())
	cart, err := h.registry.For(token).Cart.AddItem(r.Context(), token, req.ProductID, req.Count)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// UpdateItemQuantity handles PUT /api/v1/cart/items/{productId}
func (h *CartHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseObjectID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	token := middleware.TokenFromContext(r.Context())
	cart, err := h.registry.For(token).Cart.UpdateQuantity(r.Context(), token, productID, req.Count)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// RemoveItem handles DELETE /api/v1/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseObjectID(w, chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	token := middleware.TokenFromContext(r.Context())
	cart, err := h.registry.For(token).Cart.RemoveItem(r.Context(), token, productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// ClearCart handles DELETE /api/v1/cart
// The cache is emptied at once; the gateway call finishes in the background.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromContext(r.Context())
	cart, err := h.registry.For(token).Cart.Clear(r.Context(), token)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// Quote handles POST /api/v1/cart/quote
func (h *CartHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	token := middleware.TokenFromContext(r.Context())
	carts := h.registry.For(token).Cart

	cart := carts.Snapshot()
	if carts.State() != store.StateReady {
		var err error
		if cart, err = carts.Fetch(r.Context(), token); err != nil {
			httputil.WriteError(w, r, err, h.logger)
			return
		}
	}

	quote, err := h.checkout.Quote(cart, req.Code)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: quote})
}
