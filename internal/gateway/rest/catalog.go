package rest

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/utafrali/storefront/internal/domain"
)

// ListProducts fetches one gateway page of products.
func (c *Client) ListProducts(ctx context.Context, q domain.ProductQuery) (domain.ProductPage, error) {
	var resp wireList[wireProduct]
	if err := c.get(ctx, "/products", "/products", "", productQuery(q), &resp); err != nil {
		return domain.ProductPage{}, fmt.Errorf("list products: %w", err)
	}

	page := domain.ProductPage{
		Products: make([]domain.Product, 0, len(resp.Data)),
		Meta: domain.ListMeta{
			Results:       resp.Results,
			CurrentPage:   resp.Metadata.CurrentPage,
			NumberOfPages: resp.Metadata.NumberOfPages,
			Limit:         resp.Metadata.Limit,
		},
	}
	for _, p := range resp.Data {
		page.Products = append(page.Products, p.toDomain())
	}
	return page, nil
}

func productQuery(q domain.ProductQuery) url.Values {
	v := url.Values{}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Keyword != "" {
		v.Set("keyword", q.Keyword)
	}
	for _, id := range q.CategoryIDs {
		v.Add("category[in]", id)
	}
	if q.BrandID != "" {
		v.Set("brand", q.BrandID)
	}
	if q.PriceGTE != nil {
		v.Set("price[gte]", q.PriceGTE.String())
	}
	if q.PriceLTE != nil {
		v.Set("price[lte]", q.PriceLTE.String())
	}
	return v
}

// GetProduct fetches one product.
func (c *Client) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	var resp wireOne[wireProduct]
	if err := c.get(ctx, "/products/"+seg(id), "/products/{id}", "", nil, &resp); err != nil {
		return domain.Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	return resp.Data.toDomain(), nil
}

// ListCategories fetches all categories.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var resp wireList[wireCategory]
	if err := c.get(ctx, "/categories", "/categories", "", nil, &resp); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]domain.Category, 0, len(resp.Data))
	for _, w := range resp.Data {
		out = append(out, w.toCategory())
	}
	return out, nil
}

// GetCategory fetches one category.
func (c *Client) GetCategory(ctx context.Context, id string) (domain.Category, error) {
	var resp wireOne[wireCategory]
	if err := c.get(ctx, "/categories/"+seg(id), "/categories/{id}", "", nil, &resp); err != nil {
		return domain.Category{}, fmt.Errorf("get category %s: %w", id, err)
	}
	return resp.Data.toCategory(), nil
}

// ListSubcategories fetches the subcategories of one category.
func (c *Client) ListSubcategories(ctx context.Context, categoryID string) ([]domain.Subcategory, error) {
	var resp wireList[wireCategory]
	path := "/categories/" + seg(categoryID) + "/subcategories"
	if err := c.get(ctx, path, "/categories/{id}/subcategories", "", nil, &resp); err != nil {
		return nil, fmt.Errorf("list subcategories of %s: %w", categoryID, err)
	}
	out := make([]domain.Subcategory, 0, len(resp.Data))
	for _, w := range resp.Data {
		out = append(out, w.toSubcategory())
	}
	return out, nil
}

// ListBrands fetches all brands.
func (c *Client) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	var resp wireList[wireCategory]
	if err := c.get(ctx, "/brands", "/brands", "", nil, &resp); err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	out := make([]domain.Brand, 0, len(resp.Data))
	for _, w := range resp.Data {
		out = append(out, w.toBrand())
	}
	return out, nil
}

// GetBrand fetches one brand.
func (c *Client) GetBrand(ctx context.Context, id string) (domain.Brand, error) {
	var resp wireOne[wireCategory]
	if err := c.get(ctx, "/brands/"+seg(id), "/brands/{id}", "", nil, &resp); err != nil {
		return domain.Brand{}, fmt.Errorf("get brand %s: %w", id, err)
	}
	return resp.Data.toBrand(), nil
}
