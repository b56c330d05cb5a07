package cart

import (
	"sync"

	"github.com/elizavetaa0/web-larek-frontend/internal/domain"
	"github.com/elizavetaa0/web-larek-frontend/internal/events"
)

// EventChanged is emitted after every effective cart mutation with the
// full item list and the new total. No-op calls do not emit.
const EventChanged = "cart:changed"

type ChangedPayload struct {
	Items []domain.CartItem `json:"items"`
	Total float64           `json:"total"`
}

// State holds the user's product selection. Items keep insertion order
// and ids are unique. The total is always derived from the items,
// never stored separately.
type State struct {
	mu     sync.Mutex
	bus    *events.Bus
	items  []domain.CartItem
	locked bool
}

func NewState(bus *events.Bus) *State {
	return &State{bus: bus}
}

// AddItem appends a snapshot of the product to the cart. Adding an id
// already present is a no-op. Products without a price are rejected
// with UnavailableItemError.
func (s *State) AddItem(p domain.Product) error {
	s.mu.Lock()

	if s.locked {
		s.mu.Unlock()
		return &domain.StateError{Command: "addItem", Step: domain.StepSubmitting, Reason: "checkout in progress"}
	}
	if !p.Available() {
		s.mu.Unlock()
		return &domain.UnavailableItemError{ProductID: p.ID}
	}
	if s.contains(p.ID) {
		s.mu.Unlock()
		return nil
	}

	s.items = append(s.items, domain.CartItem{ID: p.ID, Title: p.Title, Price: *p.Price})
	payload := s.changedPayload()
	s.mu.Unlock()

	s.bus.Emit(EventChanged, payload)
	return nil
}

// RemoveItem removes the item with the given id. Absent ids are a
// no-op and emit nothing.
func (s *State) RemoveItem(id string) error {
	s.mu.Lock()

	if s.locked {
		s.mu.Unlock()
		return &domain.StateError{Command: "removeItem", Step: domain.StepSubmitting, Reason: "checkout in progress"}
	}

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			payload := s.changedPayload()
			s.mu.Unlock()

			s.bus.Emit(EventChanged, payload)
			return nil
		}
	}

	s.mu.Unlock()
	return nil
}

// Clear empties the cart, used after a confirmed successful checkout.
func (s *State) Clear() error {
	s.mu.Lock()

	if s.locked {
		s.mu.Unlock()
		return &domain.StateError{Command: "clear", Step: domain.StepSubmitting, Reason: "checkout in progress"}
	}

	s.items = nil
	payload := s.changedPayload()
	s.mu.Unlock()

	s.bus.Emit(EventChanged, payload)
	return nil
}

// Items returns the cart content in insertion order.
func (s *State) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// Total derives the running total from the items.
func (s *State) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return total(s.items)
}

// Contains reports whether the product is already in the cart. Views
// use it to disable the add control.
func (s *State) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contains(id)
}

// Len returns the number of items in the cart.
func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// BeginCheckout locks the cart for the duration of an in-flight
// submission. While locked, mutating commands are rejected with a
// StateError so the submitted snapshot cannot diverge from a cart
// still being edited elsewhere.
func (s *State) BeginCheckout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = true
}

// EndCheckout releases the submission lock.
func (s *State) EndCheckout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = false
}

func (s *State) contains(id string) bool {
	for i := range s.items {
		if s.items[i].ID == id {
			return true
		}
	}
	return false
}

func (s *State) changedPayload() ChangedPayload {
	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)
	return ChangedPayload{Items: items, Total: total(s.items)}
}

func total(items []domain.CartItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Price
	}
	return sum
}
