// Package session persists the single gateway token of a storefront session.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/utafrali/storefront/internal/gateway"
)

// Session binds a session id handed to the browser to a gateway token.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	UserID    string    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// New creates a session with a fresh random id for token.
func New(token string) *Session {
	userID, _ := gateway.UserIDFromToken(token)
	return &Session{
		ID:        uuid.NewString(),
		Token:     token,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
}

// Store persists sessions.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	// Lookup returns the token stored for id, or "" when there is none.
	Lookup(ctx context.Context, id string) (string, error)
}
