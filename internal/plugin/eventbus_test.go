package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBus_PublishSubscribe(t *testing.T) {
	eb := NewEventBus(NewNopLogger())

	var received Event
	eb.Subscribe("notifications", "cart.line_added", func(e Event) {
		received = e
	})

	eb.Publish("storefront", "cart.line_added", map[string]interface{}{
		"client_id": "abc",
		"quantity":  1,
		"created":   true,
	})

	assert.Equal(t, "cart.line_added", received.Topic)
	assert.Equal(t, "storefront", received.Source)
	assert.Equal(t, "abc", received.String("client_id"))
	assert.Equal(t, int64(1), received.Int64("quantity"))
	assert.True(t, received.Bool("created"))
	assert.Equal(t, "", received.String("missing"))
	assert.False(t, received.Timestamp.IsZero())
}

func TestEventBus_OrderedHandlers(t *testing.T) {
	eb := NewEventBus(NewNopLogger())

	var order []string
	eb.Subscribe("a", "order.exported", func(Event) { order = append(order, "a") })
	eb.Subscribe("b", "order.exported", func(Event) { order = append(order, "b") })
	eb.Subscribe("c", "order.exported", func(Event) { order = append(order, "c") })

	eb.Publish("storefront", "order.exported", nil)

	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestEventBus_Unsubscribe(t *testing.T) {
	eb := NewEventBus(NewNopLogger())

	var called bool
	eb.Subscribe("a", "favorites.toggled", func(Event) { called = true })
	eb.Subscribe("b", "other", func(Event) {})

	eb.Unsubscribe("a")
	eb.Publish("storefront", "favorites.toggled", nil)

	assert.False(t, called)
	assert.Equal(t, map[string][]string{"other": {"b"}}, eb.Subscriptions())
}

func TestEventBus_NoSubscribers(t *testing.T) {
	eb := NewEventBus(NewNopLogger())
	assert.NotPanics(t, func() {
		eb.Publish("storefront", "no.subscribers", nil)
	})
}

func TestEventBus_HandlerPanic(t *testing.T) {
	eb := NewEventBus(NewNopLogger())

	var secondCalled bool
	eb.Subscribe("bad", "test", func(Event) { panic("handler crash") })
	eb.Subscribe("good", "test", func(Event) { secondCalled = true })

	assert.NotPanics(t, func() {
		eb.Publish("storefront", "test", nil)
	})
	assert.True(t, secondCalled)
}
