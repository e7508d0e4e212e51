package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/utafrali/storefront/internal/domain"
)

// The gateway speaks camelCase with Mongo-style _id keys. These types mirror
// its wire shapes and are mapped to domain types at the adapter boundary.

type wireMeta struct {
	CurrentPage   int `json:"currentPage"`
	NumberOfPages int `json:"numberOfPages"`
	Limit         int `json:"limit"`
}

type wireList[T any] struct {
	Results  int      `json:"results"`
	Metadata wireMeta `json:"metadata"`
	Data     []T      `json:"data"`
}

type wireOne[T any] struct {
	Data T `json:"data"`
}

type wireCategory struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Image    string `json:"image"`
	Category string `json:"category"`
}

func (w wireCategory) toCategory() domain.Category {
	return domain.Category{ID: w.ID, Name: w.Name, Slug: w.Slug, Image: w.Image}
}

func (w wireCategory) toBrand() domain.Brand {
	return domain.Brand{ID: w.ID, Name: w.Name, Slug: w.Slug, Image: w.Image}
}

func (w wireCategory) toSubcategory() domain.Subcategory {
	return domain.Subcategory{ID: w.ID, Name: w.Name, Slug: w.Slug, CategoryID: w.Category}
}

type wireProduct struct {
	ID                 string           `json:"_id"`
	Title              string           `json:"title"`
	Slug               string           `json:"slug"`
	Description        string           `json:"description"`
	ImageCover         string           `json:"imageCover"`
	Images             []string         `json:"images"`
	Price              decimal.Decimal  `json:"price"`
	PriceAfterDiscount *decimal.Decimal `json:"priceAfterDiscount"`
	Quantity           int              `json:"quantity"`
	Sold               int              `json:"sold"`
	RatingsAverage     float64          `json:"ratingsAverage"`
	RatingsQuantity    int              `json:"ratingsQuantity"`
	Category           wireCategory     `json:"category"`
	Brand              wireCategory     `json:"brand"`
	Subcategory        []wireCategory   `json:"subcategory"`
	CreatedAt          time.Time        `json:"createdAt"`
}

func (w wireProduct) toDomain() domain.Product {
	p := domain.Product{
		ID:                 w.ID,
		Title:              w.Title,
		Slug:               w.Slug,
		Description:        w.Description,
		ImageCover:         w.ImageCover,
		Images:             w.Images,
		Price:              w.Price,
		PriceAfterDiscount: w.PriceAfterDiscount,
		Quantity:           w.Quantity,
		Sold:               w.Sold,
		RatingsAverage:     w.RatingsAverage,
		RatingsQuantity:    w.RatingsQuantity,
		Category:           w.Category.toCategory(),
		Brand:              w.Brand.toBrand(),
		CreatedAt:          w.CreatedAt,
	}
	for _, s := range w.Subcategory {
		p.Subcategories = append(p.Subcategories, s.toSubcategory())
	}
	return p
}

// wireProductRef is a product reference that the gateway sends either as a
// bare id string or as a populated product object.
type wireProductRef struct {
	ID      string
	Product *wireProduct
}

func (r *wireProductRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	var p wireProduct
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decode product reference: %w", err)
	}
	r.ID = p.ID
	r.Product = &p
	return nil
}

// wireUserRef is a user reference, either an id or a populated object.
type wireUserRef struct {
	ID   string
	Name string
}

func (r *wireUserRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	var u struct {
		ID   string `json:"_id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &u); err != nil {
		return fmt.Errorf("decode user reference: %w", err)
	}
	r.ID, r.Name = u.ID, u.Name
	return nil
}

type wireLineItem struct {
	Count   int             `json:"count"`
	ID      string          `json:"_id"`
	Product wireProductRef  `json:"product"`
	Price   decimal.Decimal `json:"price"`
}

func (w wireLineItem) toDomain() domain.CartLineItem {
	li := domain.CartLineItem{
		ProductID: w.Product.ID,
		Count:     w.Count,
		Price:     w.Price,
	}
	if w.Product.Product != nil {
		li.Product = w.Product.Product.toDomain().Summary()
	}
	return li
}

type wireCart struct {
	NumOfCartItems int    `json:"numOfCartItems"`
	CartID         string `json:"cartId"`
	Data           struct {
		ID             string          `json:"_id"`
		CartOwner      string          `json:"cartOwner"`
		Products       []wireLineItem  `json:"products"`
		TotalCartPrice decimal.Decimal `json:"totalCartPrice"`
	} `json:"data"`
}

// toDomain maps the wire cart and derives count and total from the lines.
// The gateway's totalCartPrice is not trusted as the cart total.
func (w wireCart) toDomain() domain.Cart {
	c := domain.Cart{
		ID:      w.CartID,
		OwnerID: w.Data.CartOwner,
		Items:   make([]domain.CartLineItem, 0, len(w.Data.Products)),
	}
	if c.ID == "" {
		c.ID = w.Data.ID
	}
	for _, p := range w.Data.Products {
		c.Items = append(c.Items, p.toDomain())
	}
	c.Recompute()
	return c
}

type wireWishlistIDs struct {
	Message string   `json:"message"`
	Data    []string `json:"data"`
}

type wireReview struct {
	ID        string         `json:"_id"`
	Review    string         `json:"review"`
	Rating    float64        `json:"rating"`
	Product   wireProductRef `json:"product"`
	User      wireUserRef    `json:"user"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (w wireReview) toDomain() domain.Review {
	return domain.Review{
		ID:        w.ID,
		ProductID: w.Product.ID,
		UserID:    w.User.ID,
		UserName:  w.User.Name,
		Text:      w.Review,
		Rating:    w.Rating,
		CreatedAt: w.CreatedAt,
	}
}

type wireUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

func (w wireUser) toDomain() domain.User {
	return domain.User{ID: w.ID, Name: w.Name, Email: w.Email, Phone: w.Phone, Role: w.Role}
}

type wireAuth struct {
	Message string   `json:"message"`
	User    wireUser `json:"user"`
	Token   string   `json:"token"`
}

type wireAddress struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Details string `json:"details"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
}

func toAddresses(in []wireAddress) []domain.Address {
	out := make([]domain.Address, 0, len(in))
	for _, a := range in {
		out = append(out, domain.Address{ID: a.ID, Name: a.Name, Details: a.Details, Phone: a.Phone, City: a.City})
	}
	return out
}

type wireOrder struct {
	ID                string                 `json:"_id"`
	Number            int                    `json:"id"`
	User              wireUserRef            `json:"user"`
	CartItems         []wireLineItem         `json:"cartItems"`
	ShippingAddress   domain.ShippingAddress `json:"shippingAddress"`
	TaxPrice          decimal.Decimal        `json:"taxPrice"`
	ShippingPrice     decimal.Decimal        `json:"shippingPrice"`
	TotalOrderPrice   decimal.Decimal        `json:"totalOrderPrice"`
	PaymentMethodType string                 `json:"paymentMethodType"`
	IsPaid            bool                   `json:"isPaid"`
	IsDelivered       bool                   `json:"isDelivered"`
	CreatedAt         time.Time              `json:"createdAt"`
}

func (w wireOrder) toDomain() domain.Order {
	o := domain.Order{
		ID:              w.ID,
		Number:          w.Number,
		UserID:          w.User.ID,
		Items:           make([]domain.CartLineItem, 0, len(w.CartItems)),
		ShippingAddress: w.ShippingAddress,
		ShippingPrice:   w.ShippingPrice,
		TaxPrice:        w.TaxPrice,
		TotalPrice:      w.TotalOrderPrice,
		PaymentMethod:   w.PaymentMethodType,
		IsPaid:          w.IsPaid,
		IsDelivered:     w.IsDelivered,
		CreatedAt:       w.CreatedAt,
	}
	for _, li := range w.CartItems {
		o.Items = append(o.Items, li.toDomain())
	}
	return o
}
