package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is a top-level product grouping.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image,omitempty"`
}

// Subcategory belongs to exactly one category.
type Subcategory struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	CategoryID string `json:"category_id,omitempty"`
}

// Brand is a product manufacturer or label.
type Brand struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image,omitempty"`
}

// Product is a catalog entry as served by the gateway. Wishlist items are
// full product snapshots.
type Product struct {
	ID                 string           `json:"id"`
	Title              string           `json:"title"`
	Slug               string           `json:"slug,omitempty"`
	Description        string           `json:"description,omitempty"`
	ImageCover         string           `json:"image_cover,omitempty"`
	Images             []string         `json:"images,omitempty"`
	Price              decimal.Decimal  `json:"price"`
	PriceAfterDiscount *decimal.Decimal `json:"price_after_discount,omitempty"`
	Quantity           int              `json:"quantity"`
	Sold               int              `json:"sold"`
	RatingsAverage     float64          `json:"ratings_average"`
	RatingsQuantity    int              `json:"ratings_quantity"`
	Category           Category         `json:"category"`
	Brand              Brand            `json:"brand"`
	Subcategories      []Subcategory    `json:"subcategories,omitempty"`
	CreatedAt          time.Time        `json:"created_at,omitempty"`
}

// EffectivePrice is the discounted price when one is set, the list price otherwise.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.PriceAfterDiscount != nil {
		return *p.PriceAfterDiscount
	}
	return p.Price
}

// Summary returns the subset of product fields carried on cart lines.
func (p Product) Summary() *ProductSummary {
	return &ProductSummary{
		ID:             p.ID,
		Title:          p.Title,
		ImageCover:     p.ImageCover,
		Category:       p.Category.Name,
		Brand:          p.Brand.Name,
		RatingsAverage: p.RatingsAverage,
	}
}

// ProductQuery is the gateway-side product list filter. Zero values are omitted.
type ProductQuery struct {
	Page        int
	Limit       int
	Sort        string
	Keyword     string
	CategoryIDs []string
	BrandID     string
	PriceGTE    *decimal.Decimal
	PriceLTE    *decimal.Decimal
}

// ListMeta is the gateway's pagination metadata for list endpoints.
type ListMeta struct {
	Results       int `json:"results"`
	CurrentPage   int `json:"current_page"`
	NumberOfPages int `json:"number_of_pages"`
	Limit         int `json:"limit"`
}

// ProductPage is one page of products from the gateway.
type ProductPage struct {
	Products []Product `json:"products"`
	Meta     ListMeta  `json:"meta"`
}
