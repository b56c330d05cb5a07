package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmit_DispatchesInSubscriptionOrder(t *testing.T) {
	bus := NewBus()

	var got []int
	bus.Subscribe("cart:changed", func(any) { got = append(got, 1) })
	bus.Subscribe("cart:changed", func(any) { got = append(got, 2) })
	bus.Subscribe("cart:changed", func(any) { got = append(got, 3) })

	bus.Emit("cart:changed", nil)

	assert.Equal(t, []int{1, 2, 3}, got)
}

func TestEmit_OnlyMatchingNameReceives(t *testing.T) {
	bus := NewBus()

	calls := 0
	bus.Subscribe("cart:changed", func(any) { calls++ })

	bus.Emit("catalog:changed", struct{}{})

	if calls != 0 {
		t.Errorf("Expected no calls for unrelated event, got %d", calls)
	}
}

func TestSubscribeAll_ReceivesEveryEvent(t *testing.T) {
	bus := NewBus()

	var names []string
	bus.SubscribeAll(func(name string, _ any) { names = append(names, name) })

	bus.Emit("cart:changed", nil)
	bus.Emit("order:step", nil)

	assert.Equal(t, []string{"cart:changed", "order:step"}, names)
}

func TestUnsubscribe_StopsDelivery(t *testing.T) {
	bus := NewBus()

	calls := 0
	sub := bus.Subscribe("cart:changed", func(any) { calls++ })

	bus.Emit("cart:changed", nil)
	bus.Unsubscribe(sub)
	bus.Emit("cart:changed", nil)

	assert.Equal(t, 1, calls)
}

func TestUnsubscribe_Wildcard(t *testing.T) {
	bus := NewBus()

	calls := 0
	sub := bus.SubscribeAll(func(string, any) { calls++ })

	bus.Emit("a", nil)
	bus.Unsubscribe(sub)
	bus.Emit("a", nil)

	assert.Equal(t, 1, calls)
}

func TestEmit_ReentrantFromHandler(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.Subscribe("outer", func(any) {
		order = append(order, "outer")
		bus.Emit("inner", nil)
		order = append(order, "outer-done")
	})
	bus.Subscribe("inner", func(any) { order = append(order, "inner") })

	bus.Emit("outer", nil)

	// The nested emit runs immediately, inside the outer handler.
	assert.Equal(t, []string{"outer", "inner", "outer-done"}, order)
}

func TestEmit_PayloadSharedAcrossListeners(t *testing.T) {
	bus := NewBus()

	payload := &struct{ N int }{N: 42}
	var seen []any
	bus.Subscribe("x", func(p any) { seen = append(seen, p) })
	bus.SubscribeAll(func(_ string, p any) { seen = append(seen, p) })

	bus.Emit("x", payload)

	assert.Same(t, payload, seen[0])
	assert.Same(t, payload, seen[1])
}

func TestUnsubscribe_DuringDispatchIsSafe(t *testing.T) {
	bus := NewBus()

	calls := 0
	var sub Subscription
	sub = bus.Subscribe("x", func(any) {
		calls++
		bus.Unsubscribe(sub)
	})

	bus.Emit("x", nil)
	bus.Emit("x", nil)

	assert.Equal(t, 1, calls)
}
