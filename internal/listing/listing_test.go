package listing

import (
	"fmt"
	"math"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func product(id, title, category, brand, price string, rating float64) domain.Product {
	return domain.Product{
		ID:             id,
		Title:          title,
		Category:       domain.Category{Name: category},
		Brand:          domain.Brand{Name: brand},
		Price:          decimal.RequireFromString(price),
		RatingsAverage: rating,
	}
}

func catalog() []domain.Product {
	return []domain.Product{
		product("1", "Woman Shawl", "Women's Fashion", "DeFacto", "149", 4.8),
		product("2", "Men Sneakers", "Men's Fashion", "Puma", "1200", 4.2),
		product("3", "Leather Bag", "Women's Fashion", "DeFacto", "499", 4.8),
		product("4", "Smart Watch", "Electronics", "Canon", "2500", 3.9),
		product("5", "belt for men", "Men's Fashion", "DeFacto", "149", 4.0),
	}
}

func ids(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestApply_NoFilterKeepsInputOrder(t *testing.T) {
	page := Apply(catalog(), Filter{}, SortNone, 1, 12)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids(page.Data))
	assert.Equal(t, 5, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
}

func TestApply_Predicates(t *testing.T) {
	min := decimal.NewFromInt(150)
	max := decimal.NewFromInt(1500)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "keyword is case-insensitive substring", filter: Filter{Keyword: "MEN"}, want: []string{"2", "5"}},
		{name: "category by slug", filter: Filter{Category: "men-s-fashion"}, want: []string{"2", "5"}},
		{name: "category by display name", filter: Filter{Category: "Women's Fashion"}, want: []string{"1", "3"}},
		{name: "brand", filter: Filter{Brand: "defacto"}, want: []string{"1", "3", "5"}},
		{name: "price range inclusive", filter: Filter{MinPrice: &min, MaxPrice: &max}, want: []string{"2", "3"}},
		{name: "rating threshold", filter: Filter{MinRating: 4.5}, want: []string{"1", "3"}},
		{name: "combined", filter: Filter{Brand: "DeFacto", MinRating: 4.5, Keyword: "bag"}, want: []string{"3"}},
		{name: "no match", filter: Filter{Brand: "Sony"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Apply(catalog(), tt.filter, SortNone, 1, 12)
			assert.Equal(t, tt.want, ids(page.Data))
		})
	}
}

func TestApply_DiscountedPriceIsUsed(t *testing.T) {
	p := product("1", "Watch", "Electronics", "Canon", "2500", 4)
	d := decimal.NewFromInt(900)
	p.PriceAfterDiscount = &d
	max := decimal.NewFromInt(1000)

	page := Apply([]domain.Product{p}, Filter{MaxPrice: &max}, SortNone, 1, 12)
	assert.Len(t, page.Data, 1)
}

func TestApply_Sorts(t *testing.T) {
	tests := []struct {
		sort Sort
		want []string
	}{
		{sort: SortPriceLow, want: []string{"1", "5", "3", "2", "4"}},
		{sort: SortPriceHigh, want: []string{"4", "2", "3", "1", "5"}},
		{sort: SortRating, want: []string{"1", "3", "2", "5", "4"}},
		{sort: SortName, want: []string{"5", "3", "2", "4", "1"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			page := Apply(catalog(), Filter{}, tt.sort, 1, 12)
			assert.Equal(t, tt.want, ids(page.Data))
		})
	}
}

func TestApply_IsPure(t *testing.T) {
	in := catalog()
	before := ids(in)

	first := Apply(in, Filter{Brand: "DeFacto"}, SortPriceHigh, 1, 2)
	second := Apply(in, Filter{Brand: "DeFacto"}, SortPriceHigh, 1, 2)

	assert.Equal(t, before, ids(in))
	assert.Equal(t, ids(first.Data), ids(second.Data))

	first.Data[0].Title = "changed"
	assert.NotEqual(t, "changed", in[2].Title)
}

func TestApply_Pagination(t *testing.T) {
	products := make([]domain.Product, 25)
	for i := range products {
		products[i] = product(fmt.Sprint(i), fmt.Sprintf("Product %02d", i), "c", "b", "10", 4)
	}

	p1 := Apply(products, Filter{}, SortNone, 1, 12)
	assert.Equal(t, ids(products[0:12]), ids(p1.Data))
	assert.Equal(t, 3, p1.TotalPages)
	assert.Equal(t, 25, p1.TotalCount)

	p3 := Apply(products, Filter{}, SortNone, 3, 12)
	assert.Equal(t, ids(products[24:25]), ids(p3.Data))

	p4 := Apply(products, Filter{}, SortNone, 4, 12)
	assert.Empty(t, p4.Data)
	assert.NotNil(t, p4.Data)
	assert.Equal(t, 3, p4.TotalPages)
}

func TestApply_HugePageIsEmpty(t *testing.T) {
	var page Page
	require.NotPanics(t, func() {
		page = Apply([]domain.Product{{ID: "a"}}, Filter{}, SortNone, math.MaxInt64/12+2, 12)
	})
	assert.Empty(t, page.Data)
	assert.Equal(t, 1, page.TotalCount)
}

func TestParseSort(t *testing.T) {
	for _, in := range []string{"", "price-low", "price-high", "rating", "name", " Name "} {
		_, err := ParseSort(in)
		assert.NoError(t, err, in)
	}

	_, err := ParseSort("cheapest")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestFromQuery(t *testing.T) {
	f, err := FromQuery(url.Values{
		"keyword":   {" shawl "},
		"category":  {"women-s-fashion"},
		"brand":     {"defacto"},
		"price_min": {"100"},
		"price_max": {"200.50"},
		"rating":    {"4"},
	})
	require.NoError(t, err)

	assert.Equal(t, "shawl", f.Keyword)
	assert.Equal(t, "women-s-fashion", f.Category)
	assert.Equal(t, "defacto", f.Brand)
	require.NotNil(t, f.MinPrice)
	assert.Equal(t, "100", f.MinPrice.String())
	require.NotNil(t, f.MaxPrice)
	assert.Equal(t, "200.5", f.MaxPrice.String())
	assert.Equal(t, 4.0, f.MinRating)
}

func TestFromQuery_Invalid(t *testing.T) {
	tests := map[string]url.Values{
		"bad price":      {"price_min": {"cheap"}},
		"negative price": {"price_max": {"-1"}},
		"inverted range": {"price_min": {"300"}, "price_max": {"100"}},
		"bad rating":     {"rating": {"seven"}},
		"rating too big": {"rating": {"6"}},
	}

	for name, q := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FromQuery(q)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}
