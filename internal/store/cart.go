package store

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/gateway"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// CartStore caches one user's gateway cart. Count and total are always
// derived from the line items.
//
// The cache is the confirmed cart (the last state the gateway accepted) with
// the optimistic patches of in-flight mutations replayed on top. A failed
// optimistic mutation drops its patch and the cache is rebuilt, so the cache
// never keeps a change the gateway rejected.
type CartStore struct {
	gw     gateway.CartGateway
	logger *slog.Logger
	opts   options

	mu        sync.Mutex
	cart      domain.Cart
	confirmed domain.Cart
	pending   []cartPatch
	loaded    bool
	state     State
	lastErr   error
	seq       sequencer
}

// cartPatch is the local effect of one in-flight optimistic mutation.
type cartPatch struct {
	seq   uint64
	apply func(c *domain.Cart)
}

// NewCartStore creates an empty, uninitialized cart store.
func NewCartStore(gw gateway.CartGateway, logger *slog.Logger, opts ...Option) *CartStore {
	s := &CartStore{
		gw:     gw,
		logger: logger,
		opts:   newOptions(opts),
		state:  StateUninitialized,
	}
	s.confirmed = s.emptyCart()
	s.cart = s.confirmed.Clone()
	return s
}

// cartMutation is one remote cart operation. optimistic, when set, patches
// the cache at dispatch; merge folds a successful response into the
// confirmed cart.
type cartMutation struct {
	op         string
	productID  string
	optimistic func(c *domain.Cart)
	call       func(ctx context.Context) (domain.Cart, error)
	merge      func(cur, resp domain.Cart) domain.Cart
}

// Fetch replaces the cache with the gateway cart. On failure the cache is kept
// and returned together with the error.
func (s *CartStore) Fetch(ctx context.Context, token string) (domain.Cart, error) {
	if err := requireToken(token); err != nil {
		return domain.Cart{}, err
	}

	s.mu.Lock()
	seq := s.seq.issue()
	s.state = StateLoading
	s.mu.Unlock()

	cart, err := s.gw.GetCart(ctx, token)

	s.mu.Lock()
	if err != nil {
		if seq > s.seq.applied {
			s.state = StateError
			s.lastErr = err
		}
		snap := s.cart.Clone()
		s.mu.Unlock()

		s.logger.WarnContext(ctx, "cart fetch failed", logError(err))
		return snap, err
	}

	applied := s.seq.tryApply(seq)
	if applied {
		cart.FillSummaries(s.cart)
		s.confirm(seq, cart)
	}
	snap := s.cart.Clone()
	s.mu.Unlock()

	if applied {
		s.opts.notifier.CartChanged(ctx, snap)
	} else {
		s.logger.DebugContext(ctx, "discarded stale cart fetch", slog.Uint64("seq", seq))
	}
	return snap, nil
}

// AddItem adds count units of productID. The cart returned by the gateway
// replaces the cache. Adds are never optimistic. When the gateway applied
// only part of the add, the cart it reported is cached and the error is
// still returned.
func (s *CartStore) AddItem(ctx context.Context, token, productID string, count int) (domain.Cart, error) {
	if err := requireToken(token); err != nil {
		return domain.Cart{}, err
	}
	if err := requireProduct(productID); err != nil {
		return domain.Cart{}, err
	}
	if count < 1 {
		return domain.Cart{}, apperrors.Validation("quantity must be at least 1")
	}

	return s.run(ctx, cartMutation{
		op:        "add",
		productID: productID,
		call: func(ctx context.Context) (domain.Cart, error) {
			return s.gw.AddToCart(ctx, token, productID, count)
		},
		merge: func(cur, resp domain.Cart) domain.Cart {
			resp.FillSummaries(cur)
			return resp
		},
	})
}

// UpdateQuantity sets the count of one line. Counts below one never reach
// the gateway; use RemoveItem to drop a line.
func (s *CartStore) UpdateQuantity(ctx context.Context, token, productID string, count int) (domain.Cart, error) {
	if err := requireToken(token); err != nil {
		return domain.Cart{}, err
	}
	if err := requireProduct(productID); err != nil {
		return domain.Cart{}, err
	}
	if count < 1 {
		return domain.Cart{}, apperrors.Validation("quantity must be at least 1")
	}

	return s.run(ctx, cartMutation{
		op:        "update",
		productID: productID,
		optimistic: func(c *domain.Cart) {
			c.SetCount(productID, count)
		},
		call: func(ctx context.Context) (domain.Cart, error) {
			return s.gw.UpdateCartItem(ctx, token, productID, count)
		},
		merge: func(cur, resp domain.Cart) domain.Cart {
			next := cur.Clone()
			if !next.SetCount(productID, count) {
				// Not cached yet: take the gateway's cart as is.
				resp.FillSummaries(cur)
				return resp
			}
			if next.ID == "" {
				next.ID = resp.ID
			}
			return next
		},
	})
}

// RemoveItem drops the line for productID. Removing a product that is not in
// the cart is a no-op and, once the cart is loaded, makes no gateway call.
func (s *CartStore) RemoveItem(ctx context.Context, token, productID string) (domain.Cart, error) {
	if err := requireToken(token); err != nil {
		return domain.Cart{}, err
	}
	if err := requireProduct(productID); err != nil {
		return domain.Cart{}, err
	}

	s.mu.Lock()
	if s.loaded && len(s.pending) == 0 && !s.cart.Has(productID) {
		snap := s.cart.Clone()
		s.mu.Unlock()
		return snap, nil
	}
	s.mu.Unlock()

	return s.run(ctx, cartMutation{
		op:        "remove",
		productID: productID,
		optimistic: func(c *domain.Cart) {
			c.Remove(productID)
		},
		call: func(ctx context.Context) (domain.Cart, error) {
			cart, err := s.gw.RemoveCartItem(ctx, token, productID)
			if apperrors.IsGatewayStatus(err, http.StatusNotFound) {
				return domain.Cart{}, nil
			}
			return cart, err
		},
		merge: func(cur, _ domain.Cart) domain.Cart {
			next := cur.Clone()
			next.Remove(productID)
			return next
		},
	})
}

// Clear empties the cart locally and asks the gateway to delete it in the
// background. The remote result is only logged.
func (s *CartStore) Clear(ctx context.Context, token string) (domain.Cart, error) {
	if err := requireToken(token); err != nil {
		return domain.Cart{}, err
	}

	s.mu.Lock()
	s.seq.supersede()
	s.confirmed = s.emptyCart()
	s.pending = nil
	s.loaded = true
	s.rebuild()
	s.state = StateReady
	s.lastErr = nil
	snap := s.cart.Clone()
	s.mu.Unlock()

	s.opts.notifier.CartChanged(ctx, snap)

	s.opts.background.Add(1)
	go func() {
		defer s.opts.background.Done()

		bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.clearTimeout)
		defer cancel()

		if err := s.gw.ClearCart(bgCtx, token); err != nil {
			s.logger.WarnContext(bgCtx, "remote cart clear failed", logError(err))
			return
		}
		s.logger.DebugContext(bgCtx, "remote cart cleared")
	}()

	return snap, nil
}

// Reset drops the cache without contacting the gateway. Responses still in
// flight are discarded.
func (s *CartStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq.supersede()
	s.confirmed = s.emptyCart()
	s.pending = nil
	s.loaded = false
	s.rebuild()
	s.state = StateUninitialized
	s.lastErr = nil
}

// Snapshot returns a copy of the cached cart.
func (s *CartStore) Snapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// State returns the cache state.
func (s *CartStore) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the error of the last failed operation, cleared by the next
// applied response.
func (s *CartStore) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Wait blocks until background gateway calls started by Clear finish.
func (s *CartStore) Wait() {
	s.opts.background.Wait()
}

func (s *CartStore) run(ctx context.Context, m cartMutation) (domain.Cart, error) {
	s.mu.Lock()
	seq := s.seq.issue()
	optimistic := s.opts.optimistic && m.optimistic != nil && s.loaded
	if optimistic {
		s.pending = append(s.pending, cartPatch{seq: seq, apply: m.optimistic})
		s.rebuild()
	} else {
		s.state = StateLoading
	}
	s.mu.Unlock()

	resp, err := m.call(ctx)

	s.mu.Lock()
	if err != nil {
		s.settle(seq)
		applied := false
		var partial *gateway.PartialCartError
		if errors.As(err, &partial) && s.seq.tryApply(seq) {
			s.confirm(seq, m.merge(s.confirmed, partial.Cart))
			applied = true
		}
		if seq >= s.seq.applied {
			s.state = StateError
			s.lastErr = err
		}
		s.rebuild()
		snap := s.cart.Clone()
		s.mu.Unlock()

		s.logger.WarnContext(ctx, "cart mutation failed",
			slog.String("op", m.op),
			slog.String("product_id", m.productID),
			slog.Bool("partially_applied", applied),
			logError(err),
		)
		if applied {
			s.opts.notifier.CartChanged(ctx, snap)
		}
		return snap, err
	}

	applied := s.seq.tryApply(seq)
	if applied {
		s.confirm(seq, m.merge(s.confirmed, resp))
	} else {
		s.settle(seq)
		s.rebuild()
	}
	snap := s.cart.Clone()
	s.mu.Unlock()

	if applied {
		s.opts.notifier.CartChanged(ctx, snap)
	} else {
		s.logger.DebugContext(ctx, "discarded stale cart response",
			slog.String("op", m.op),
			slog.Uint64("seq", seq),
		)
	}
	return snap, nil
}

// confirm records c as the gateway state as of seq. Patches dispatched
// before seq are superseded by it. Callers hold s.mu and have already
// applied seq.
func (s *CartStore) confirm(seq uint64, c domain.Cart) {
	s.confirmed = s.owned(c)
	kept := s.pending[:0]
	for _, p := range s.pending {
		if p.seq > seq {
			kept = append(kept, p)
		}
	}
	s.pending = kept
	s.loaded = true
	s.state = StateReady
	s.lastErr = nil
	s.rebuild()
}

// settle drops the optimistic patch of seq, if any.
func (s *CartStore) settle(seq uint64) {
	for i, p := range s.pending {
		if p.seq == seq {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// rebuild derives the cache from the confirmed cart and the pending patches.
func (s *CartStore) rebuild() {
	c := s.confirmed.Clone()
	for _, p := range s.pending {
		p.apply(&c)
	}
	s.cart = s.owned(c)
}

func (s *CartStore) owned(c domain.Cart) domain.Cart {
	if c.OwnerID == "" {
		c.OwnerID = s.opts.owner
	}
	if c.Items == nil {
		c.Items = []domain.CartLineItem{}
	}
	c.Recompute()
	return c
}

func (s *CartStore) emptyCart() domain.Cart {
	return s.owned(domain.Cart{})
}
