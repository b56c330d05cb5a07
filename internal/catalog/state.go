package catalog

import (
	"sync"

	"github.com/elizavetaa0/web-larek-frontend/internal/domain"
	"github.com/elizavetaa0/web-larek-frontend/internal/events"
)

const (
	// EventChanged is emitted after the catalog is replaced wholesale.
	EventChanged = "catalog:changed"
	// EventPreview is emitted when a product is selected for preview.
	EventPreview = "catalog:preview"
)

type ChangedPayload struct {
	Items []domain.Product `json:"items"`
}

type PreviewPayload struct {
	Item domain.Product `json:"item"`
}

// State holds the fetched product list. Read-mostly: the only mutation
// is a full refresh from the catalog service.
type State struct {
	mu    sync.RWMutex
	bus   *events.Bus
	items []domain.Product
}

func NewState(bus *events.Bus) *State {
	return &State{bus: bus}
}

// SetCatalog replaces the held list wholesale and emits catalog:changed.
// There is no incremental merge.
func (s *State) SetCatalog(items []domain.Product) {
	s.mu.Lock()
	s.items = make([]domain.Product, len(items))
	copy(s.items, items)
	snapshot := s.items
	s.mu.Unlock()

	s.bus.Emit(EventChanged, ChangedPayload{Items: snapshot})
}

// Items returns the current product list.
func (s *State) Items() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.Product, len(s.items))
	copy(items, s.items)
	return items
}

// FindByID returns the product with the given id, or nil if absent.
func (s *State) FindByID(id string) *domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.items {
		if s.items[i].ID == id {
			p := s.items[i]
			return &p
		}
	}
	return nil
}

// SetPreview marks a product as previewed and emits catalog:preview.
// Unknown ids are ignored.
func (s *State) SetPreview(id string) {
	p := s.FindByID(id)
	if p == nil {
		return
	}
	s.bus.Emit(EventPreview, PreviewPayload{Item: *p})
}
