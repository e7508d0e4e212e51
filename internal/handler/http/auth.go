package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/gateway"
	"github.com/utafrali/storefront/internal/session"
	"github.com/utafrali/storefront/internal/store"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/middleware"
	"github.com/utafrali/storefront/pkg/validator"
)

// AuthHandler signs users in and out. A successful sign-in or sign-up starts
// a storefront session carried by the sid cookie.
type AuthHandler struct {
	auth     gateway.AuthGateway
	sessions *session.Manager
	registry *store.Registry
	logger   *slog.Logger
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(auth gateway.AuthGateway, sessions *session.Manager, registry *store.Registry, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		registry: registry,
		logger:   logger,
	}
}

// statusResponse carries the gateway's confirmation for password recovery steps.
type statusResponse struct {
	Status string `json:"status"`
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	res, err := h.auth.Signup(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.signedIn(w, r, http.StatusCreated, res)
}

// Signin handles POST /api/v1/auth/signin
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req domain.SigninInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	res, err := h.auth.Signin(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.signedIn(w, r, http.StatusOK, res)
}

// Logout handles POST /api/v1/auth/logout
// Both local stores of the session are reset and the session is deleted.
// Logging out without a session succeeds.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if token := middleware.TokenFromContext(ctx); token != "" {
		h.registry.Drop(token)
	}

	if err := h.sessions.End(ctx, w, middleware.SessionIDFromContext(ctx)); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: statusResponse{Status: "signed_out"}})
}

// ForgotPassword handles POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ForgotPasswordInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	msg, err := h.auth.ForgotPassword(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: statusResponse{Status: msg}})
}

// VerifyResetCode handles POST /api/v1/auth/verify-reset-code
func (h *AuthHandler) VerifyResetCode(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyResetCodeInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	status, err := h.auth.VerifyResetCode(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: statusResponse{Status: status}})
}

// ResetPassword handles PUT /api/v1/auth/reset-password
// The gateway answers with a fresh token, which starts a new session.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req domain.ResetPasswordInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	token, err := h.auth.ResetPassword(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.signedIn(w, r, http.StatusOK, domain.AuthResult{Token: token, User: domain.User{Email: req.Email}})
}

// signedIn starts a session for res.Token and writes res.
func (h *AuthHandler) signedIn(w http.ResponseWriter, r *http.Request, status int, res domain.AuthResult) {
	if _, err := h.sessions.Start(r.Context(), w, res.Token); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.logger.InfoContext(r.Context(), "session started", slog.String("role", res.User.Role))
	httputil.WriteJSON(w, status, httputil.Response{Data: res})
}
