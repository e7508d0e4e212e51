package event

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/store"
	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
)

// Kafka topics for synced snapshots.
var (
	TopicCartSynced     = pkgkafka.Topic("cart", "synced")
	TopicWishlistSynced = pkgkafka.Topic("wishlist", "synced")
)

// Aggregate types.
const (
	AggregateTypeCart     = "cart"
	AggregateTypeWishlist = "wishlist"
)

// SourceStorefront identifies events originating from the storefront.
const SourceStorefront = "storefront"

// CartSyncedData is the payload of a cart.synced event.
type CartSyncedData struct {
	CartID  string          `json:"cart_id"`
	OwnerID string          `json:"owner_id,omitempty"`
	Items   []CartItemData  `json:"items"`
	Count   int             `json:"count"`
	Total   decimal.Decimal `json:"total"`
}

// CartItemData is one line within cart events.
type CartItemData struct {
	ProductID string          `json:"product_id"`
	Count     int             `json:"count"`
	Price     decimal.Decimal `json:"price"`
}

// WishlistSyncedData is the payload of a wishlist.synced event.
type WishlistSyncedData struct {
	OwnerID    string   `json:"owner_id,omitempty"`
	ProductIDs []string `json:"product_ids"`
	Count      int      `json:"count"`
}

// Publisher is the subset of *pkgkafka.Producer the notifier needs.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Notifier publishes applied cart and wishlist snapshots to Kafka. Failures
// are logged and never reach the store operation.
type Notifier struct {
	publisher Publisher
	logger    *slog.Logger
}

var _ store.Notifier = (*Notifier)(nil)

// NewNotifier creates a Kafka-backed store notifier.
func NewNotifier(publisher Publisher, logger *slog.Logger) *Notifier {
	return &Notifier{
		publisher: publisher,
		logger:    logger,
	}
}

// CartChanged publishes a cart.synced event keyed by cart id, or by owner
// for a cart the gateway has not created yet.
func (n *Notifier) CartChanged(ctx context.Context, cart domain.Cart) {
	items := make([]CartItemData, len(cart.Items))
	for i, li := range cart.Items {
		items[i] = CartItemData{ProductID: li.ProductID, Count: li.Count, Price: li.Price}
	}

	data := CartSyncedData{
		CartID:  cart.ID,
		OwnerID: cart.OwnerID,
		Items:   items,
		Count:   cart.Count,
		Total:   cart.Total,
	}

	key := cart.ID
	if key == "" {
		key = cart.OwnerID
	}
	n.publish(ctx, TopicCartSynced, key, AggregateTypeCart, data)
}

// WishlistChanged publishes a wishlist.synced event keyed by owner.
func (n *Notifier) WishlistChanged(ctx context.Context, owner string, w domain.Wishlist) {
	data := WishlistSyncedData{
		OwnerID:    owner,
		ProductIDs: w.IDs(),
		Count:      w.Count(),
	}
	n.publish(ctx, TopicWishlistSynced, owner, AggregateTypeWishlist, data)
}

func (n *Notifier) publish(ctx context.Context, topic, key, aggregateType string, data any) {
	event, err := pkgkafka.NewEvent(topic, key, aggregateType, SourceStorefront, data)
	if err != nil {
		n.logger.ErrorContext(ctx, "failed to build event",
			slog.String("topic", topic),
			slog.String("error", err.Error()),
		)
		return
	}
	event.WithContext(ctx)

	if err := n.publisher.Publish(ctx, topic, event); err != nil {
		n.logger.WarnContext(ctx, "failed to publish store snapshot",
			slog.String("topic", topic),
			slog.String("aggregate_id", key),
			slog.String("error", err.Error()),
		)
		return
	}

	n.logger.DebugContext(ctx, "published store snapshot",
		slog.String("topic", topic),
		slog.String("aggregate_id", key),
	)
}
