package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync"
	"time"

	"github.com/utafrali/storefront/internal/gateway"
)

// Session is the store pair owned by one signed-in user.
type Session struct {
	Cart     *CartStore
	Wishlist *WishlistStore

	lastUsed time.Time
}

// Registry hands out one Session per auth token. Sessions idle for longer
// than the idle TTL are evicted by Run.
type Registry struct {
	cartGW     gateway.CartGateway
	wishlistGW gateway.WishlistGateway
	logger     *slog.Logger
	opts       []Option
	idleTTL    time.Duration
	now        func() time.Time

	background sync.WaitGroup

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry. opts apply to every store it builds.
func NewRegistry(
	cartGW gateway.CartGateway,
	wishlistGW gateway.WishlistGateway,
	logger *slog.Logger,
	idleTTL time.Duration,
	opts ...Option,
) *Registry {
	return &Registry{
		cartGW:     cartGW,
		wishlistGW: wishlistGW,
		logger:     logger,
		opts:       opts,
		idleTTL:    idleTTL,
		now:        time.Now,
		sessions:   make(map[string]*Session),
	}
}

// For returns the session for token, creating it on first use.
func (r *Registry) For(token string) *Session {
	key := tokenKey(token)

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[key]; ok {
		s.lastUsed = r.now()
		return s
	}

	// The owner id is informational; a token the gateway rejects fails on
	// the first store call.
	owner, _ := gateway.UserIDFromToken(token)
	opts := append([]Option{WithOwner(owner), withBackground(&r.background)}, r.opts...)

	s := &Session{
		Cart:     NewCartStore(r.cartGW, r.logger, opts...),
		Wishlist: NewWishlistStore(r.wishlistGW, r.logger, opts...),
		lastUsed: r.now(),
	}
	r.sessions[key] = s
	return s
}

// Drop resets and forgets the session for token, as on logout.
func (r *Registry) Drop(token string) {
	key := tokenKey(token)

	r.mu.Lock()
	s, ok := r.sessions[key]
	delete(r.sessions, key)
	r.mu.Unlock()

	if ok {
		s.Cart.Reset()
		s.Wishlist.Reset()
	}
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Evict removes sessions idle for longer than the idle TTL and returns how
// many were removed.
func (r *Registry) Evict() int {
	if r.idleTTL <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for key, s := range r.sessions {
		if s.lastUsed.Before(cutoff) {
			delete(r.sessions, key)
			n++
		}
	}
	return n
}

// Run evicts idle sessions every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Evict(); n > 0 {
				r.logger.Debug("evicted idle store sessions", slog.Int("count", n))
			}
		}
	}
}

// Wait blocks until background gateway calls of every cart store, live or
// evicted, have finished.
func (r *Registry) Wait() {
	r.background.Wait()
}

// tokenKey keeps raw tokens out of the session map.
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
