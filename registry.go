package emit

import (
	"reflect"
	"sync"
	"sync/atomic"
)

// Listener is a callback invoked with the payload of a dispatched event.
type Listener[P any] func(payload P)

// entry pairs a stored callback with the identity of the listener that
// registered it. For one-shot registrations fn is a wrapper while id is
// the identity of the wrapped listener, so Unsubscribe with the original
// listener still removes the wrapper.
type entry[P any] struct {
	fn Listener[P]
	id uintptr
}

// Registry maps event kinds to ordered sets of listeners.
//
// The zero value is not usable; create instances with New. A Registry
// is safe for concurrent use, and all operations are total: subscribing
// an already-subscribed listener, unsubscribing an absent one, and
// dispatching to a kind with no listeners are well-defined no-ops.
type Registry[K comparable, P any] struct {
	mu    sync.RWMutex
	sets  map[K][]entry[P]
	order []K
}

// New creates an empty Registry.
func New[K comparable, P any]() *Registry[K, P] {
	return &Registry[K, P]{
		sets: make(map[K][]entry[P]),
	}
}

// identity returns the comparable identity of a listener.
// Distinct closures created from the same function literal share a code
// pointer and are treated as the same listener.
func identity[P any](fn Listener[P]) uintptr {
	return reflect.ValueOf(fn).Pointer()
}

// Subscribe registers fn under kind, creating the kind's listener set on
// first use. Subscribing a listener already present under kind is a
// no-op, as is a nil fn.
func (r *Registry[K, P]) Subscribe(kind K, fn Listener[P]) {
	if fn == nil {
		return
	}
	r.add(kind, entry[P]{fn: fn, id: identity(fn)})
}

// Once registers fn under kind for a single delivery. The next dispatch
// of kind invokes fn and removes it; later dispatches do not see it.
// Removal is guaranteed even if fn panics during delivery.
func (r *Registry[K, P]) Once(kind K, fn Listener[P]) {
	if fn == nil {
		return
	}
	r.add(kind, entry[P]{fn: r.onceWrapper(kind, fn), id: identity(fn)})
}

// Batch registers every listener in fns under kind, applying Subscribe
// semantics per element.
func (r *Registry[K, P]) Batch(kind K, fns ...Listener[P]) {
	for _, fn := range fns {
		r.Subscribe(kind, fn)
	}
}

// BatchOnce registers every listener in fns under kind, applying Once
// semantics per element.
func (r *Registry[K, P]) BatchOnce(kind K, fns ...Listener[P]) {
	for _, fn := range fns {
		r.Once(kind, fn)
	}
}

// SubscribeAll registers fn under every kind in kinds. Each registration
// is tracked independently: unsubscribing fn from one kind does not
// affect the others.
func (r *Registry[K, P]) SubscribeAll(kinds []K, fn Listener[P]) {
	for _, kind := range kinds {
		r.Subscribe(kind, fn)
	}
}

// OnceAll registers fn under every kind in kinds with Once semantics per
// kind. Firing under one kind does not consume the registration under
// another.
func (r *Registry[K, P]) OnceAll(kinds []K, fn Listener[P]) {
	for _, kind := range kinds {
		r.Once(kind, fn)
	}
}

// Unsubscribe removes fn from kind's listener set. It is a no-op if fn
// is not subscribed or kind has no set.
func (r *Registry[K, P]) Unsubscribe(kind K, fn Listener[P]) {
	if fn == nil {
		return
	}
	id := identity(fn)

	r.mu.Lock()
	defer r.mu.Unlock()

	set := r.sets[kind]
	for i, e := range set {
		if e.id == id {
			r.sets[kind] = append(set[:i], set[i+1:]...)
			return
		}
	}
}

// Dispatch invokes every listener registered for kind, in subscription
// order, passing payload to each. It returns after the last listener
// returns; there is no queuing. Dispatching a kind with no listeners is
// a no-op and never creates a registry entry.
//
// The listener set is snapshotted before iteration, so mutations made
// by listeners (including on kind itself) take effect on the next
// dispatch, not the current pass. Listener panics propagate to the
// caller.
func (r *Registry[K, P]) Dispatch(kind K, payload P) {
	r.mu.RLock()
	set := r.sets[kind]
	if len(set) == 0 {
		r.mu.RUnlock()
		return
	}
	snapshot := make([]entry[P], len(set))
	copy(snapshot, set)
	r.mu.RUnlock()

	for _, e := range snapshot {
		e.fn(payload)
	}
}

// Clear removes all listeners from kind without removing the kind's
// entry: the kind still appears in Kinds with an empty set. Clearing an
// unknown kind is a no-op.
func (r *Registry[K, P]) Clear(kind K) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if set, ok := r.sets[kind]; ok {
		r.sets[kind] = set[:0]
	}
}

// Reset empties the entire registry: all kinds and all listeners. The
// Registry remains usable afterwards.
func (r *Registry[K, P]) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sets = make(map[K][]entry[P])
	r.order = nil
}

// Listeners returns the listeners registered under kind in subscription
// order, and whether kind has an entry. The slice is a copy; mutating
// it does not affect the registry.
func (r *Registry[K, P]) Listeners(kind K) ([]Listener[P], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.sets[kind]
	if !ok {
		return nil, false
	}
	fns := make([]Listener[P], len(set))
	for i, e := range set {
		fns[i] = e.fn
	}
	return fns, true
}

// Kinds returns all kinds present in the registry, including kinds
// whose listener sets are empty, in order of first registration.
func (r *Registry[K, P]) Kinds() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.order) == 0 {
		return nil
	}
	kinds := make([]K, len(r.order))
	copy(kinds, r.order)
	return kinds
}

// AllListeners returns the listener sets for every registered kind,
// positionally aligned with Kinds.
func (r *Registry[K, P]) AllListeners() [][]Listener[P] {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.order) == 0 {
		return nil
	}
	all := make([][]Listener[P], len(r.order))
	for i, kind := range r.order {
		set := r.sets[kind]
		fns := make([]Listener[P], len(set))
		for j, e := range set {
			fns[j] = e.fn
		}
		all[i] = fns
	}
	return all
}

// ListenerCount returns the number of listeners registered under kind.
func (r *Registry[K, P]) ListenerCount(kind K) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sets[kind])
}

// Len returns the number of distinct kinds in the registry, not the
// total listener count.
func (r *Registry[K, P]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}

// Empty reports whether the registry holds no kinds.
func (r *Registry[K, P]) Empty() bool {
	return r.Len() == 0
}

// add inserts an entry under kind unless the identity is already
// present.
func (r *Registry[K, P]) add(kind K, e entry[P]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set, exists := r.sets[kind]
	if !exists {
		r.order = append(r.order, kind)
	}
	for _, have := range set {
		if have.id == e.id {
			return
		}
	}
	r.sets[kind] = append(set, e)
}

// onceWrapper wraps fn so that it fires at most once and unsubscribes
// itself from kind. The unsubscribe is deferred so it runs even when fn
// panics; the fired flag stops re-entrant double delivery when kind is
// dispatched again from inside fn.
func (r *Registry[K, P]) onceWrapper(kind K, fn Listener[P]) Listener[P] {
	var fired atomic.Bool
	return func(payload P) {
		if !fired.CompareAndSwap(false, true) {
			return
		}
		defer r.Unsubscribe(kind, fn)
		fn(payload)
	}
}
