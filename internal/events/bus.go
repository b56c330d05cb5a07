package events

import "sync"

// Handler receives the payload of a single named event.
type Handler func(payload any)

// WildcardHandler receives every event emitted on the bus. The payload
// is the same value shared with all other listeners of that emission
// and must be treated as read-only.
type WildcardHandler func(name string, payload any)

// Subscription identifies a registered handler so it can be removed.
type Subscription struct {
	name string
	id   int
}

type entry struct {
	id      int
	handler Handler
}

type wildcardEntry struct {
	id      int
	handler WildcardHandler
}

// Bus is a synchronous publish/subscribe dispatcher. For a given event
// name handlers run in subscription order. Emit is re-entrant: an emit
// from inside a handler runs immediately, so handlers themselves are
// responsible for not creating unbounded emit cycles.
type Bus struct {
	mu        sync.Mutex
	nextID    int
	handlers  map[string][]entry
	wildcards []wildcardEntry
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]entry)}
}

// Subscribe registers a handler for the named event and returns the
// subscription handle used to remove it.
func (b *Bus) Subscribe(name string, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.handlers[name] = append(b.handlers[name], entry{id: b.nextID, handler: handler})
	return Subscription{name: name, id: b.nextID}
}

// SubscribeAll registers a wildcard handler receiving every event,
// used for diagnostics and logging.
func (b *Bus) SubscribeAll(handler WildcardHandler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.wildcards = append(b.wildcards, wildcardEntry{id: b.nextID, handler: handler})
	return Subscription{id: b.nextID}
}

// Unsubscribe removes a previously registered handler. Unknown or
// already removed subscriptions are ignored.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub.name == "" {
		for i, w := range b.wildcards {
			if w.id == sub.id {
				b.wildcards = append(b.wildcards[:i], b.wildcards[i+1:]...)
				return
			}
		}
		return
	}

	list := b.handlers[sub.name]
	for i, e := range list {
		if e.id == sub.id {
			b.handlers[sub.name] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// Emit dispatches the event synchronously to all handlers subscribed
// to its name, then to all wildcard handlers. The handler lists are
// snapshotted before dispatch, so handlers may subscribe, unsubscribe
// or emit without deadlocking the bus.
func (b *Bus) Emit(name string, payload any) {
	b.mu.Lock()
	named := make([]entry, len(b.handlers[name]))
	copy(named, b.handlers[name])
	wild := make([]wildcardEntry, len(b.wildcards))
	copy(wild, b.wildcards)
	b.mu.Unlock()

	for _, e := range named {
		e.handler(payload)
	}
	for _, w := range wild {
		w.handler(name, payload)
	}
}
