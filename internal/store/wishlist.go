package store

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/gateway"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// WishlistStore caches one user's gateway wishlist with set semantics.
type WishlistStore struct {
	gw     gateway.WishlistGateway
	logger *slog.Logger
	opts   options

	mu       sync.Mutex
	wishlist domain.Wishlist
	loaded   bool
	state    State
	lastErr  error
	seq      sequencer
}

// NewWishlistStore creates an empty, uninitialized wishlist store.
func NewWishlistStore(gw gateway.WishlistGateway, logger *slog.Logger, opts ...Option) *WishlistStore {
	return &WishlistStore{
		gw:       gw,
		logger:   logger,
		opts:     newOptions(opts),
		wishlist: domain.NewWishlist(nil),
		state:    StateUninitialized,
	}
}

// Fetch replaces the cache with the gateway wishlist. Gateway and network
// failures do not reach the caller: the store moves to the error state, keeps
// its cache and returns an empty wishlist.
func (s *WishlistStore) Fetch(ctx context.Context, token string) (domain.Wishlist, error) {
	if err := requireToken(token); err != nil {
		return domain.Wishlist{}, err
	}

	s.mu.Lock()
	seq := s.seq.issue()
	s.state = StateLoading
	s.mu.Unlock()

	products, err := s.gw.GetWishlist(ctx, token)

	s.mu.Lock()
	if err != nil {
		if seq > s.seq.applied {
			s.state = StateError
			s.lastErr = err
		}
		s.mu.Unlock()

		s.logger.WarnContext(ctx, "wishlist fetch failed, showing an empty wishlist", logError(err))
		return domain.NewWishlist(nil), nil
	}

	applied := s.seq.tryApply(seq)
	if applied {
		s.wishlist = domain.NewWishlist(products)
		s.loaded = true
		s.state = StateReady
		s.lastErr = nil
	}
	snap := s.wishlist.Clone()
	s.mu.Unlock()

	if applied {
		s.opts.notifier.WishlistChanged(ctx, s.opts.owner, snap)
	}
	return snap, nil
}

// Add puts productID on the wishlist. The id list returned by the gateway
// defines membership; ids without a cached snapshot become placeholders and
// mark the wishlist incomplete until the next Fetch.
func (s *WishlistStore) Add(ctx context.Context, token, productID string) (domain.Wishlist, error) {
	if err := requireToken(token); err != nil {
		return domain.Wishlist{}, err
	}
	if err := requireProduct(productID); err != nil {
		return domain.Wishlist{}, err
	}

	return s.run(ctx, "add", productID,
		func(ctx context.Context) ([]string, error) {
			return s.gw.AddToWishlist(ctx, token, productID)
		},
		func(cur domain.Wishlist, ids []string) domain.Wishlist {
			return cur.WithMembership(ids)
		},
	)
}

// Remove takes productID off the wishlist. Removing an absent product is a
// no-op.
func (s *WishlistStore) Remove(ctx context.Context, token, productID string) (domain.Wishlist, error) {
	if err := requireToken(token); err != nil {
		return domain.Wishlist{}, err
	}
	if err := requireProduct(productID); err != nil {
		return domain.Wishlist{}, err
	}

	s.mu.Lock()
	if s.loaded && !s.wishlist.Contains(productID) {
		snap := s.wishlist.Clone()
		s.mu.Unlock()
		return snap, nil
	}
	s.mu.Unlock()

	return s.run(ctx, "remove", productID,
		func(ctx context.Context) ([]string, error) {
			ids, err := s.gw.RemoveFromWishlist(ctx, token, productID)
			if apperrors.IsGatewayStatus(err, http.StatusNotFound) {
				return nil, nil
			}
			return ids, err
		},
		func(cur domain.Wishlist, _ []string) domain.Wishlist {
			return cur.Without(productID)
		},
	)
}

// Contains reports whether productID is in the cached wishlist.
func (s *WishlistStore) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.Contains(productID)
}

// Reset drops the cache without contacting the gateway.
func (s *WishlistStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq.supersede()
	s.wishlist = domain.NewWishlist(nil)
	s.loaded = false
	s.state = StateUninitialized
	s.lastErr = nil
}

// Snapshot returns a copy of the cached wishlist.
func (s *WishlistStore) Snapshot() domain.Wishlist {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlist.Clone()
}

// State returns the cache state.
func (s *WishlistStore) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the error of the last failed operation.
func (s *WishlistStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *WishlistStore) run(
	ctx context.Context,
	op, productID string,
	call func(ctx context.Context) ([]string, error),
	merge func(cur domain.Wishlist, ids []string) domain.Wishlist,
) (domain.Wishlist, error) {
	s.mu.Lock()
	seq := s.seq.issue()
	s.state = StateLoading
	s.mu.Unlock()

	ids, err := call(ctx)

	s.mu.Lock()
	if err != nil {
		if seq > s.seq.applied {
			s.state = StateError
			s.lastErr = err
		}
		snap := s.wishlist.Clone()
		s.mu.Unlock()

		s.logger.WarnContext(ctx, "wishlist mutation failed",
			slog.String("op", op),
			slog.String("product_id", productID),
			logError(err),
		)
		return snap, err
	}

	applied := s.seq.tryApply(seq)
	if applied {
		s.wishlist = merge(s.wishlist, ids)
		s.loaded = true
		s.state = StateReady
		s.lastErr = nil
	}
	snap := s.wishlist.Clone()
	s.mu.Unlock()

	if applied {
		s.opts.notifier.WishlistChanged(ctx, s.opts.owner, snap)
	}
	return snap, nil
}

