package rest

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func TestListProducts_EncodesQuery(t *testing.T) {
	client := newFakeGateway(t, func(r chi.Router) {
		r.Get("/products", func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "50", q.Get("limit"))
			assert.Equal(t, "2", q.Get("page"))
			assert.Equal(t, "-price", q.Get("sort"))
			assert.Equal(t, "shirt", q.Get("keyword"))
			assert.Equal(t, []string{"c1", "c2"}, q["category[in]"])
			assert.Equal(t, "b1", q.Get("brand"))
			assert.Equal(t, "100", q.Get("price[gte]"))
			assert.Equal(t, "500.5", q.Get("price[lte]"))
			assert.Empty(t, r.Header.Get("token"))
			writeBody(w, http.StatusOK, `{"results":40,"metadata":{"currentPage":2,"numberOfPages":4,"limit":10,"nextPage":3},"data":[
				{"_id":"p1","title":"Shirt","slug":"shirt","price":120,"quantity":10,"sold":3,"ratingsQuantity":8,
				 "subcategory":[{"_id":"s1","name":"Tops","slug":"tops","category":"c1"}],
				 "createdAt":"2023-04-02T02:28:08.211Z"}
			]}`)
		})
	})

	gte := decimal.NewFromInt(100)
	lte := decimal.RequireFromString("500.5")
	page, err := client.ListProducts(context.Background(), domain.ProductQuery{
		Page: 2, Limit: 50, Sort: "-price", Keyword: "shirt",
		CategoryIDs: []string{"c1", "c2"}, BrandID: "b1",
		PriceGTE: &gte, PriceLTE: &lte,
	})
	require.NoError(t, err)

	assert.Equal(t, 40, page.Meta.Results)
	assert.Equal(t, 2, page.Meta.CurrentPage)
	assert.Equal(t, 4, page.Meta.NumberOfPages)
	require.Len(t, page.Products, 1)

	p := page.Products[0]
	assert.Equal(t, "Shirt", p.Title)
	require.Len(t, p.Subcategories, 1)
	assert.Equal(t, "c1", p.Subcategories[0].CategoryID)
	assert.Equal(t, 2023, p.CreatedAt.Year())
}

func TestListProducts_EmptyQuery(t *testing.T) {
	client := newFakeGateway(t, func(r chi.Router) {
		r.Get("/products", func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.URL.RawQuery)
			writeBody(w, http.StatusOK, `{"results":0,"data":[]}`)
		})
	})

	page, err := client.ListProducts(context.Background(), domain.ProductQuery{})
	require.NoError(t, err)
	assert.Empty(t, page.Products)
}

func TestGetProduct_NotFound(t *testing.T) {
	client := newFakeGateway(t, func(r chi.Router) {
		r.Get("/products/{id}", func(w http.ResponseWriter, r *http.Request) {
			writeBody(w, http.StatusNotFound, `{"statusMsg":"fail","message":"No Product found"}`)
		})
	})

	_, err := client.GetProduct(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsGatewayStatus(err, http.StatusNotFound))
	assert.Equal(t, http.StatusNotFound, apperrors.HTTPStatus(err))
}

func TestCategoriesAndBrands(t *testing.T) {
	client := newFakeGateway(t, func(r chi.Router) {
		r.Get("/categories", func(w http.ResponseWriter, r *http.Request) {
			writeBody(w, http.StatusOK, `{"results":1,"data":[{"_id":"c1","name":"Electronics","slug":"electronics","image":"e.png"}]}`)
		})
		r.Get("/categories/{id}", func(w http.ResponseWriter, r *http.Request) {
			writeBody(w, http.StatusOK, `{"data":{"_id":"c1","name":"Electronics","slug":"electronics"}}`)
		})
		r.Get("/categories/{id}/subcategories", func(w http.ResponseWriter, r *http.Request) {
			writeBody(w, http.StatusOK, `{"results":1,"data":[{"_id":"s1","name":"Laptops","slug":"laptops","category":"c1"}]}`)
		})
		r.Get("/brands", func(w http.ResponseWriter, r *http.Request) {
			writeBody(w, http.StatusOK, `{"results":1,"data":[{"_id":"b1","name":"Canon","slug":"canon"}]}`)
		})
		r.Get("/brands/{id}", func(w http.ResponseWriter, r *http.Request) {
			writeBody(w, http.StatusOK, `{"data":{"_id":"b1","name":"Canon","slug":"canon"}}`)
		})
	})
	ctx := context.Background()

	cats, err := client.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "e.png", cats[0].Image)

	cat, err := client.GetCategory(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Electronics", cat.Name)

	subs, err := client.ListSubcategories(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "c1", subs[0].CategoryID)

	brands, err := client.ListBrands(ctx)
	require.NoError(t, err)
	require.Len(t, brands, 1)
	assert.Equal(t, "canon", brands[0].Slug)

	brand, err := client.GetBrand(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "Canon", brand.Name)
}
