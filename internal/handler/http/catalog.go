package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/gateway"
	"github.com/utafrali/storefront/internal/listing"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/pagination"
)

// CatalogHandler serves products, categories and brands.
type CatalogHandler struct {
	catalog    gateway.CatalogGateway
	pageSize   int
	fetchLimit int
	logger     *slog.Logger
}

// NewCatalogHandler creates a catalog handler. fetchLimit is how many products
// are requested from the gateway before the listing is derived locally.
func NewCatalogHandler(catalog gateway.CatalogGateway, pageSize, fetchLimit int, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:    catalog,
		pageSize:   pageSize,
		fetchLimit: fetchLimit,
		logger:     logger,
	}
}

// --- Handlers ---

// ListProducts handles GET /api/v1/products
// Filters, sorts and paginates one gateway page of products locally.
// @Summary List products
// @Tags products
// @Produce json
// @Param keyword query string false "Title substring"
// @Param category query string false "Category name"
// @Param brand query string false "Brand name"
// @Param price_min query number false "Minimum effective price"
// @Param price_max query number false "Maximum effective price"
// @Param rating query number false "Minimum average rating"
// @Param sort query string false "price-low, price-high, rating or name"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/products [get]
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter, err := listing.FromQuery(q)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	sort, err := listing.ParseSort(q.Get("sort"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	params := pagination.FromRequest(r, h.pageSize)

	page, err := h.catalog.ListProducts(r.Context(), domain.ProductQuery{Page: 1, Limit: h.fetchLimit})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, listing.Apply(page.Products, filter, sort, params.Page, params.PerPage))
}

// GetProduct handles GET /api/v1/products/{id}
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/products/{id} [get]
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseObjectID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// ListCategories handles GET /api/v1/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: categories})
}

// GetCategory handles GET /api/v1/categories/{id}
func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseObjectID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	category, err := h.catalog.GetCategory(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: category})
}

// ListSubcategories handles GET /api/v1/categories/{id}/subcategories
func (h *CatalogHandler) ListSubcategories(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseObjectID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	subcategories, err := h.catalog.ListSubcategories(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: subcategories})
}

// ListBrands handles GET /api/v1/brands
func (h *CatalogHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.catalog.ListBrands(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: brands})
}

// GetBrand handles GET /api/v1/brands/{id}
func (h *CatalogHandler) GetBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseObjectID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	brand, err := h.catalog.GetBrand(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: brand})
}
