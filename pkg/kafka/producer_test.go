package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/utafrali/storefront/pkg/logger"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func header(msg kafka.Message, key string) string {
	return NewHeaderCarrier(&msg.Headers).Get(key)
}

func TestProducer_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriter(w, nil, nil)

	event, err := NewEvent("storefront.cart.synced", "cart-1", "cart", "storefront", cartPayload{CartID: "cart-1"})
	require.NoError(t, err)
	event.WithContext(logger.WithCorrelationID(context.Background(), "corr-1"))

	require.NoError(t, p.Publish(context.Background(), Topic("cart", "synced"), event))

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "storefront.cart.synced", msg.Topic)
	assert.Equal(t, []byte("cart-1"), msg.Key)
	assert.Equal(t, "storefront.cart.synced", header(msg, "event_type"))
	assert.Equal(t, "corr-1", header(msg, "correlation_id"))

	restored, err := DecodeEvent(msg.Value)
	require.NoError(t, err)
	assert.Equal(t, event.ID, restored.ID)
	assert.Equal(t, "corr-1", restored.CorrelationID)
	assert.JSONEq(t, string(event.Data), string(restored.Data))
}

func TestProducer_Publish_InjectsTraceContext(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	w := &fakeWriter{}
	p := NewProducerWithWriter(w, nil, nil)
	event, err := NewEvent("storefront.cart.synced", "cart-1", "cart", "storefront", nil)
	require.NoError(t, err)

	require.NoError(t, p.Publish(ctx, "storefront.cart.synced", event))
	require.Len(t, w.msgs, 1)
	assert.Contains(t, header(w.msgs[0], "traceparent"), "4bf92f3577b34da6a3ce929d0e0e4736")
}

func TestProducer_Publish_WriterError(t *testing.T) {
	w := &fakeWriter{err: errors.New("leader not available")}
	p := NewProducerWithWriter(w, nil, nil)
	event, err := NewEvent("storefront.cart.synced", "cart-1", "cart", "storefront", nil)
	require.NoError(t, err)

	err = p.Publish(context.Background(), "storefront.cart.synced", event)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish event to storefront.cart.synced")
	assert.ErrorIs(t, err, w.err)
}

func TestProducer_Close(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, NewProducerWithWriter(w, nil, nil).Close())
	assert.True(t, w.closed)
}

func TestNewProducer_DoesNotConnect(t *testing.T) {
	p := NewProducer([]string{"localhost:19092"}, nil)
	require.NotNil(t, p)
	assert.Equal(t, []string{"localhost:19092"}, p.brokers)
	assert.NoError(t, p.Close())
}

func TestTopic(t *testing.T) {
	assert.Equal(t, "storefront.cart.synced", Topic("cart", "synced"))
	assert.Equal(t, "storefront.wishlist.synced", Topic("wishlist", "synced"))
}

func TestPing_NoBrokers(t *testing.T) {
	err := NewProducerWithWriter(&fakeWriter{}, nil, nil).Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no brokers configured")
}
