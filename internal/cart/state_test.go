package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elizavetaa0/web-larek-frontend/internal/domain"
	"github.com/elizavetaa0/web-larek-frontend/internal/events"
)

func price(v float64) *float64 { return &v }

func product(id string, p float64) domain.Product {
	return domain.Product{ID: id, Title: "product " + id, Price: price(p)}
}

func TestAddItem_SnapshotsProduct(t *testing.T) {
	bus := events.NewBus()
	state := NewState(bus)

	require.NoError(t, state.AddItem(product("p1", 500)))

	items := state.Items()
	require.Len(t, items, 1)
	assert.Equal(t, domain.CartItem{ID: "p1", Title: "product p1", Price: 500}, items[0])
	assert.Equal(t, 500.0, state.Total())
	assert.True(t, state.Contains("p1"))
}

func TestAddItem_DuplicateIsNoOp(t *testing.T) {
	bus := events.NewBus()
	state := NewState(bus)

	changes := 0
	bus.Subscribe(EventChanged, func(any) { changes++ })

	require.NoError(t, state.AddItem(product("p1", 500)))
	require.NoError(t, state.AddItem(product("p1", 500)))

	assert.Equal(t, 1, state.Len())
	assert.Equal(t, 500.0, state.Total())
	assert.Equal(t, 1, changes, "no-op add must not re-emit cart:changed")
}

func TestAddItem_UnavailableProductRejected(t *testing.T) {
	state := NewState(events.NewBus())

	err := state.AddItem(domain.Product{ID: "p1", Title: "priceless"})

	var unavailable *domain.UnavailableItemError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "p1", unavailable.ProductID)
	assert.Equal(t, 0, state.Len())
}

func TestRemoveItem_AbsentIsNoOp(t *testing.T) {
	bus := events.NewBus()
	state := NewState(bus)
	require.NoError(t, state.AddItem(product("p1", 500)))

	changes := 0
	bus.Subscribe(EventChanged, func(any) { changes++ })

	require.NoError(t, state.RemoveItem("missing"))

	assert.Equal(t, 1, state.Len())
	assert.Equal(t, 0, changes)
}

func TestRemoveItem_EmitsNewTotal(t *testing.T) {
	bus := events.NewBus()
	state := NewState(bus)
	require.NoError(t, state.AddItem(product("p1", 500)))
	require.NoError(t, state.AddItem(product("p2", 300)))

	var last ChangedPayload
	bus.Subscribe(EventChanged, func(p any) { last = p.(ChangedPayload) })

	require.NoError(t, state.RemoveItem("p1"))

	require.Len(t, last.Items, 1)
	assert.Equal(t, "p2", last.Items[0].ID)
	assert.Equal(t, 300.0, last.Total)
}

func TestClear_EmitsEmptyCart(t *testing.T) {
	bus := events.NewBus()
	state := NewState(bus)
	require.NoError(t, state.AddItem(product("p1", 500)))

	var last ChangedPayload
	bus.Subscribe(EventChanged, func(p any) { last = p.(ChangedPayload) })

	require.NoError(t, state.Clear())

	assert.Empty(t, last.Items)
	assert.Equal(t, 0.0, last.Total)
	assert.Equal(t, 0, state.Len())
}

// Total must equal the sum of item prices after any sequence of
// mutations.
func TestTotal_DerivedFromItems(t *testing.T) {
	state := NewState(events.NewBus())

	require.NoError(t, state.AddItem(product("p1", 100)))
	require.NoError(t, state.AddItem(product("p2", 250)))
	require.NoError(t, state.AddItem(product("p3", 50)))
	require.NoError(t, state.RemoveItem("p2"))
	require.NoError(t, state.AddItem(product("p4", 1000)))
	require.NoError(t, state.RemoveItem("p1"))

	var want float64
	for _, it := range state.Items() {
		want += it.Price
	}
	assert.Equal(t, want, state.Total())
	assert.Equal(t, 1050.0, state.Total())
}

func TestCheckoutLock_RejectsMutations(t *testing.T) {
	bus := events.NewBus()
	state := NewState(bus)
	require.NoError(t, state.AddItem(product("p1", 500)))

	state.BeginCheckout()

	var stateErr *domain.StateError
	require.ErrorAs(t, state.AddItem(product("p2", 100)), &stateErr)
	require.ErrorAs(t, state.RemoveItem("p1"), &stateErr)
	require.ErrorAs(t, state.Clear(), &stateErr)
	assert.Equal(t, 1, state.Len(), "locked cart must not change")

	state.EndCheckout()
	require.NoError(t, state.AddItem(product("p2", 100)))
	assert.Equal(t, 2, state.Len())
}

func TestItems_PreserveInsertionOrder(t *testing.T) {
	state := NewState(events.NewBus())
	require.NoError(t, state.AddItem(product("b", 1)))
	require.NoError(t, state.AddItem(product("a", 2)))
	require.NoError(t, state.AddItem(product("c", 3)))

	items := state.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "b", items[0].ID)
	assert.Equal(t, "a", items[1].ID)
	assert.Equal(t, "c", items[2].ID)
}
