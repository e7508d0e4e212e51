package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront/internal/checkout"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/store"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/middleware"
	"github.com/utafrali/storefront/pkg/validator"
)

// OrderHandler places and lists orders for the signed-in user.
type OrderHandler struct {
	checkout *checkout.Service
	registry *store.Registry
	logger   *slog.Logger
}

// NewOrderHandler creates an order handler.
func NewOrderHandler(svc *checkout.Service, registry *store.Registry, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		checkout: svc,
		registry: registry,
		logger:   logger,
	}
}

// PlaceOrderRequest is the JSON request body for both payment methods.
// ReturnURL is only used for card payments.
type PlaceOrderRequest struct {
	ShippingAddress domain.ShippingAddress `json:"shipping_address"`
	ReturnURL       string                 `json:"return_url" validate:"omitempty,url"`
}

// ListOrders handles GET /api/v1/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.checkout.Orders(r.Context(), middleware.TokenFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: orders})
}

// PlaceCashOrder handles POST /api/v1/orders/cash
func (h *OrderHandler) PlaceCashOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	token := middleware.TokenFromContext(r.Context())
	order, err := h.checkout.PlaceCashOrder(r.Context(), token, h.registry.For(token).Cart, req.ShippingAddress)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: order})
}

// StartCheckoutSession handles POST /api/v1/orders/checkout-session
func (h *OrderHandler) StartCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	token := middleware.TokenFromContext(r.Context())
	sess, err := h.checkout.StartCardCheckout(r.Context(), token, h.registry.For(token).Cart, req.ShippingAddress, req.ReturnURL)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: sess})
}
