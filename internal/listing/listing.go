// Package listing derives the product grid from a fetched product page:
// filtering, sorting and page slicing, all without side effects.
package listing

import (
	"cmp"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/pagination"
	"github.com/utafrali/storefront/pkg/slug"
)

// Sort is a product ordering.
type Sort string

const (
	SortNone      Sort = ""
	SortPriceLow  Sort = "price-low"
	SortPriceHigh Sort = "price-high"
	SortRating    Sort = "rating"
	SortName      Sort = "name"
)

// ParseSort accepts the sort keys of the storefront query string.
func ParseSort(s string) (Sort, error) {
	switch v := Sort(strings.ToLower(strings.TrimSpace(s))); v {
	case SortNone, SortPriceLow, SortPriceHigh, SortRating, SortName:
		return v, nil
	default:
		return SortNone, apperrors.Validation(fmt.Sprintf("unknown sort %q", s))
	}
}

// Filter selects products. Zero fields match everything.
type Filter struct {
	Keyword   string
	Category  string
	Brand     string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	MinRating float64
}

// FromQuery reads a filter from the keyword, category, brand, price_min,
// price_max and rating query parameters.
func FromQuery(q url.Values) (Filter, error) {
	f := Filter{
		Keyword:  strings.TrimSpace(q.Get("keyword")),
		Category: strings.TrimSpace(q.Get("category")),
		Brand:    strings.TrimSpace(q.Get("brand")),
	}

	var err error
	if f.MinPrice, err = parsePrice(q.Get("price_min"), "price_min"); err != nil {
		return Filter{}, err
	}
	if f.MaxPrice, err = parsePrice(q.Get("price_max"), "price_max"); err != nil {
		return Filter{}, err
	}
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return Filter{}, apperrors.Validation("price_min must not exceed price_max")
	}

	if raw := q.Get("rating"); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil || r < 0 || r > 5 {
			return Filter{}, apperrors.Validation("rating must be a number between 0 and 5")
		}
		f.MinRating = r
	}
	return f, nil
}

func parsePrice(raw, name string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil, apperrors.Validation(name + " must be a non-negative number")
	}
	return &d, nil
}

// Match reports whether p passes every predicate of f.
func (f Filter) Match(p domain.Product) bool {
	if f.Keyword != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.Keyword)) {
		return false
	}
	if f.Category != "" && !slug.Equal(p.Category.Name, f.Category) {
		return false
	}
	if f.Brand != "" && !slug.Equal(p.Brand.Name, f.Brand) {
		return false
	}
	price := p.EffectivePrice()
	if f.MinPrice != nil && price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.MinRating > 0 && p.RatingsAverage < f.MinRating {
		return false
	}
	return true
}

// Page is one page of the derived listing.
type Page = pagination.Result[domain.Product]

// Apply filters, sorts and slices products. The input is never modified and
// equal elements keep their input order.
func Apply(products []domain.Product, f Filter, s Sort, page, pageSize int) Page {
	matched := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			matched = append(matched, p)
		}
	}

	sortProducts(matched, s)

	return pagination.Slice(matched, pagination.NewParams(page, pageSize, pagination.MaxPerPage))
}

func sortProducts(products []domain.Product, s Sort) {
	switch s {
	case SortPriceLow:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return a.EffectivePrice().Cmp(b.EffectivePrice())
		})
	case SortPriceHigh:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return b.EffectivePrice().Cmp(a.EffectivePrice())
		})
	case SortRating:
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return cmp.Compare(b.RatingsAverage, a.RatingsAverage)
		})
	case SortName:
		c := collate.New(language.English, collate.IgnoreCase)
		slices.SortStableFunc(products, func(a, b domain.Product) int {
			return c.CompareString(a.Title, b.Title)
		})
	}
}
