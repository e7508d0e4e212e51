package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/gateway"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/middleware"
	"github.com/utafrali/storefront/pkg/validator"
)

// ReviewHandler serves product reviews.
type ReviewHandler struct {
	reviews gateway.ReviewGateway
	logger  *slog.Logger
}

// NewReviewHandler creates a review handler.
func NewReviewHandler(reviews gateway.ReviewGateway, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, logger: logger}
}

// ListReviews handles GET /api/v1/products/{id}/reviews
// Reviews are decoration on the product page: a failed fetch yields an empty
// list instead of an error.
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseObjectID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	reviews, err := h.reviews.ListReviews(r.Context(), productID)
	if err != nil {
		h.logger.WarnContext(r.Context(), "review list unavailable",
			slog.String("product_id", productID),
			slog.String("error", err.Error()),
		)
		reviews = []domain.Review{}
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: reviews})
}

// CreateReview handles POST /api/v1/products/{id}/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.ParseObjectID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req domain.ReviewInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	review, err := h.reviews.CreateReview(r.Context(), middleware.TokenFromContext(r.Context()), productID, req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: review})
}

// UpdateReview handles PUT /api/v1/reviews/{id}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := httputil.ParseObjectID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req domain.ReviewInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	review, err := h.reviews.UpdateReview(r.Context(), middleware.TokenFromContext(r.Context()), reviewID, req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: review})
}

// DeleteReview handles DELETE /api/v1/reviews/{id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := httputil.ParseObjectID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.reviews.DeleteReview(r.Context(), middleware.TokenFromContext(r.Context()), reviewID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"id": reviewID, "status": "deleted"}})
}
