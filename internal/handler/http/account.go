package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/gateway"
	"github.com/utafrali/storefront/internal/session"
	"github.com/utafrali/storefront/internal/store"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/middleware"
	"github.com/utafrali/storefront/pkg/validator"
)

// AccountHandler serves the signed-in user's profile and saved addresses.
type AccountHandler struct {
	users     gateway.UserGateway
	addresses gateway.AddressGateway
	sessions  *session.Manager
	registry  *store.Registry
	logger    *slog.Logger
}

// NewAccountHandler creates an account handler.
func NewAccountHandler(
	users gateway.UserGateway,
	addresses gateway.AddressGateway,
	sessions *session.Manager,
	registry *store.Registry,
	logger *slog.Logger,
) *AccountHandler {
	return &AccountHandler{
		users:     users,
		addresses: addresses,
		sessions:  sessions,
		registry:  registry,
		logger:    logger,
	}
}

// GetMe handles GET /api/v1/users/me
func (h *AccountHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetMe(r.Context(), middleware.TokenFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: user})
}

// UpdateMe handles PUT /api/v1/users/me
func (h *AccountHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req domain.ProfileInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	user, err := h.users.UpdateMe(r.Context(), middleware.TokenFromContext(r.Context()), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: user})
}

// ChangePassword handles PUT /api/v1/users/me/password
// The old token stops working, so the caller's stores and session are
// replaced by ones bound to the new token.
func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ChangePasswordInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	ctx := r.Context()
	oldToken := middleware.TokenFromContext(ctx)

	res, err := h.users.ChangePassword(ctx, oldToken, req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.registry.Drop(oldToken)
	if err := h.sessions.Revoke(ctx, middleware.SessionIDFromContext(ctx)); err != nil {
		h.logger.WarnContext(ctx, "failed to revoke replaced session", slog.String("error", err.Error()))
	}
	if _, err := h.sessions.Start(ctx, w, res.Token); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: res})
}

// ListAddresses handles GET /api/v1/addresses
func (h *AccountHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.addresses.ListAddresses(r.Context(), middleware.TokenFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: addresses})
}

// AddAddress handles POST /api/v1/addresses
func (h *AccountHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	var req domain.AddressInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	addresses, err := h.addresses.AddAddress(r.Context(), middleware.TokenFromContext(r.Context()), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: addresses})
}

// RemoveAddress handles DELETE /api/v1/addresses/{id}
func (h *AccountHandler) RemoveAddress(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseObjectID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	addresses, err := h.addresses.RemoveAddress(r.Context(), middleware.TokenFromContext(r.Context()), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: addresses})
}
