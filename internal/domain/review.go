package domain

import "time"

// Review is a user's rating of a product.
type Review struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserName  string    `json:"user_name,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	Text      string    `json:"review"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// ReviewInput is the body for creating or updating a review.
type ReviewInput struct {
	Text   string  `json:"review" validate:"required,min=2,max=1000"`
	Rating float64 `json:"rating" validate:"required,min=1,max=5"`
}
