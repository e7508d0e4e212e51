package rest

import (
	"context"
	"fmt"

	"github.com/utafrali/storefront/internal/domain"
)

// ListReviews fetches the reviews of a product.
func (c *Client) ListReviews(ctx context.Context, productID string) ([]domain.Review, error) {
	var resp wireList[wireReview]
	path := "/products/" + seg(productID) + "/reviews"
	if err := c.get(ctx, path, "/products/{id}/reviews", "", nil, &resp); err != nil {
		return nil, fmt.Errorf("list reviews of %s: %w", productID, err)
	}
	out := make([]domain.Review, 0, len(resp.Data))
	for _, r := range resp.Data {
		rev := r.toDomain()
		if rev.ProductID == "" {
			rev.ProductID = productID
		}
		out = append(out, rev)
	}
	return out, nil
}

// CreateReview posts a review on a product.
func (c *Client) CreateReview(ctx context.Context, token, productID string, in domain.ReviewInput) (domain.Review, error) {
	var resp wireOne[wireReview]
	path := "/products/" + seg(productID) + "/reviews"
	if err := c.post(ctx, path, "/products/{id}/reviews", token, in, &resp); err != nil {
		return domain.Review{}, fmt.Errorf("create review on %s: %w", productID, err)
	}
	rev := resp.Data.toDomain()
	if rev.ProductID == "" {
		rev.ProductID = productID
	}
	return rev, nil
}

// UpdateReview replaces the text and rating of a review.
func (c *Client) UpdateReview(ctx context.Context, token, reviewID string, in domain.ReviewInput) (domain.Review, error) {
	var resp wireOne[wireReview]
	if err := c.put(ctx, "/reviews/"+seg(reviewID), "/reviews/{id}", token, in, &resp); err != nil {
		return domain.Review{}, fmt.Errorf("update review %s: %w", reviewID, err)
	}
	return resp.Data.toDomain(), nil
}

// DeleteReview deletes a review.
func (c *Client) DeleteReview(ctx context.Context, token, reviewID string) error {
	if err := c.delete(ctx, "/reviews/"+seg(reviewID), "/reviews/{id}", token, nil); err != nil {
		return fmt.Errorf("delete review %s: %w", reviewID, err)
	}
	return nil
}
