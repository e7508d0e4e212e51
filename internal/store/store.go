// Package store keeps local caches of the gateway cart and wishlist in sync
// with the gateway, which stays the only source of truth.
//
// Every operation takes a sequence number at dispatch. A gateway response is
// applied only when its sequence is newer than the last applied one, so after
// concurrent operations the cache reflects the last-issued request. Store
// mutexes are never held across a gateway call.
package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// State is the lifecycle state of a store cache.
type State string

const (
	StateUninitialized State = "uninitialized"
	StateLoading       State = "loading"
	StateReady         State = "ready"
	StateError         State = "error"
)

// Notifier is told about every applied cart or wishlist snapshot. It must not
// block for long; delivery failures are the notifier's concern.
type Notifier interface {
	CartChanged(ctx context.Context, cart domain.Cart)
	WishlistChanged(ctx context.Context, owner string, wishlist domain.Wishlist)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) CartChanged(context.Context, domain.Cart)                 {}
func (NopNotifier) WishlistChanged(context.Context, string, domain.Wishlist) {}

const defaultClearTimeout = 15 * time.Second

type options struct {
	notifier     Notifier
	optimistic   bool
	owner        string
	clearTimeout time.Duration
	background   *sync.WaitGroup
}

// Option configures a store.
type Option func(*options)

// WithNotifier publishes applied snapshots to n.
func WithNotifier(n Notifier) Option {
	return func(o *options) {
		if n != nil {
			o.notifier = n
		}
	}
}

// WithOptimistic applies CartStore.UpdateQuantity and CartStore.RemoveItem
// locally at dispatch and rolls them back if the gateway call fails. It only
// takes effect once the cart has been loaded. CartStore.AddItem is never
// optimistic because the line price is unknown until the gateway answers.
func WithOptimistic(enabled bool) Option {
	return func(o *options) { o.optimistic = enabled }
}

// WithOwner sets the owner id reported when the gateway does not send one.
func WithOwner(owner string) Option {
	return func(o *options) { o.owner = owner }
}

// WithClearTimeout bounds the background gateway call made by CartStore.Clear.
func WithClearTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.clearTimeout = d
		}
	}
}

// withBackground shares the wait group that tracks background calls.
func withBackground(wg *sync.WaitGroup) Option {
	return func(o *options) { o.background = wg }
}

func newOptions(opts []Option) options {
	o := options{notifier: NopNotifier{}, clearTimeout: defaultClearTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.background == nil {
		o.background = &sync.WaitGroup{}
	}
	return o
}

// sequencer orders operations on one aggregate. The owning store's mutex
// guards it.
type sequencer struct {
	issued  uint64
	applied uint64
}

// issue returns the sequence number for a new dispatch.
func (s *sequencer) issue() uint64 {
	s.issued++
	return s.issued
}

// tryApply reports whether a response for seq is newer than everything
// applied so far and, if so, records it as applied.
func (s *sequencer) tryApply(seq uint64) bool {
	if seq <= s.applied {
		return false
	}
	s.applied = seq
	return true
}

// supersede makes every in-flight response stale.
func (s *sequencer) supersede() {
	s.applied = s.issue()
}

// newest reports whether no dispatch was issued after seq.
func (s *sequencer) newest(seq uint64) bool {
	return s.issued == seq
}

func requireToken(token string) error {
	if token == "" {
		return apperrors.Unauthenticated("sign in to continue")
	}
	return nil
}

func requireProduct(productID string) error {
	if productID == "" {
		return apperrors.Validation("product id is required")
	}
	return nil
}

func logError(err error) slog.Attr {
	return slog.String("error", err.Error())
}
