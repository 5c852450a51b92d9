package events

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// subscriber is one registered handler. fn holds the typed func(E) error;
// the entry lives in exactly one kind's list, so the assertion back to the
// concrete handler type in Publish cannot fail.
type subscriber struct {
	id     string
	fn     any
	active atomic.Bool
}

// Bus is a per-world, per-kind publish/subscribe primitive. The zero value
// is not usable; construct with NewBus.
//
// Subscriber lists are copy-on-write: Subscribe and Cancel replace the
// slice wholesale under the write lock, so a Publish that already snapshotted
// the previous slice finishes against it undisturbed.
type Bus struct {
	mu        sync.RWMutex
	subs      [kindCount][]*subscriber
	observers []Observer
	metrics   Metrics
}

// NewBus returns an empty bus. Each world owns one; buses never share
// subscriber state.
func NewBus() *Bus {
	return &Bus{}
}

// Subscription is the opaque handle identifying one registered handler.
// It is used only for removal and inspection; the zero value is inert.
type Subscription struct {
	id   string
	kind Kind
	bus  *Bus
}

// ID returns the unique identifier of this subscription.
func (s Subscription) ID() string { return s.id }

// Kind returns the event kind the handler was registered for.
func (s Subscription) Kind() Kind { return s.kind }

// Active reports whether the handler is still registered.
func (s Subscription) Active() bool {
	if s.bus == nil {
		return false
	}
	s.bus.mu.RLock()
	defer s.bus.mu.RUnlock()
	for _, sub := range s.bus.subs[s.kind] {
		if sub.id == s.id {
			return sub.active.Load()
		}
	}
	return false
}

// Cancel removes the handler from its bus. Cancelling an already-removed,
// zero, or foreign handle is a silent no-op; repeated calls are safe.
func (s Subscription) Cancel() {
	if s.bus == nil {
		return
	}
	s.bus.mu.Lock()
	defer s.bus.mu.Unlock()
	list := s.bus.subs[s.kind]
	for i, sub := range list {
		if sub.id != s.id {
			continue
		}
		sub.active.Store(false)
		next := make([]*subscriber, 0, len(list)-1)
		next = append(next, list[:i]...)
		next = append(next, list[i+1:]...)
		s.bus.subs[s.kind] = next
		return
	}
}

// Subscribe registers fn for the event kind of E and returns its handle.
// Handlers are invoked in subscription order. The same function subscribed
// twice yields two independent subscriptions; the bus performs no
// deduplication.
func Subscribe[E Payload](b *Bus, fn func(E) error) Subscription {
	k := kindOf[E]()
	s := &subscriber{id: uuid.NewString(), fn: fn}
	s.active.Store(true)

	b.mu.Lock()
	list := b.subs[k]
	next := make([]*subscriber, len(list)+1)
	copy(next, list)
	next[len(list)] = s
	b.subs[k] = next
	b.mu.Unlock()

	return Subscription{id: s.id, kind: k, bus: b}
}

// Unsubscribe cancels s. Mirrors Subscription.Cancel, including the silent
// no-op semantics for unknown handles.
func (b *Bus) Unsubscribe(s Subscription) {
	s.Cancel()
}

// Publish delivers ev synchronously to every handler subscribed for E's
// kind, in subscription order, on the calling goroutine. Zero subscribers is
// a valid no-op. The first handler error aborts the remaining handlers of
// this call and is returned wrapped with the kind; delivery already made is
// not undone.
func Publish[E Payload](b *Bus, ev E) error {
	k := kindOf[E]()

	b.mu.RLock()
	subs := b.subs[k]
	var observers []Observer
	if len(b.observers) > 0 {
		observers = b.observers
	}
	b.mu.RUnlock()

	var start time.Time
	if observers != nil {
		start = time.Now()
		for _, o := range observers {
			o.OnPublish(k)
		}
	}

	var err error
	delivered := 0
	for _, s := range subs {
		if !s.active.Load() {
			continue
		}
		if herr := s.fn.(func(E) error)(ev); herr != nil {
			err = fmt.Errorf("events: %s handler: %w", k, herr)
			break
		}
		delivered++
	}

	if observers != nil {
		micros := time.Since(start).Microseconds()
		for _, o := range observers {
			o.OnDelivered(k, delivered, err, micros)
		}
		b.mu.Lock()
		b.metrics.Published++
		b.metrics.Delivered += uint64(delivered)
		if err != nil {
			b.metrics.Faults++
		}
		var active uint64
		for i := range b.subs {
			active += uint64(len(b.subs[i]))
		}
		b.metrics.Subscribers = active
		b.mu.Unlock()
	}
	return err
}

// Subscribers reports the number of registered handlers for k.
func (b *Bus) Subscribers(k Kind) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[k])
}

// AddObserver registers an observer for delivery callbacks and turns on
// metrics accumulation.
func (b *Bus) AddObserver(o Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.observers = append(append([]Observer(nil), b.observers...), o)
}

// RemoveObserver unregisters a previously added observer.
func (b *Bus) RemoveObserver(o Observer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, cur := range b.observers {
		if cur != o {
			continue
		}
		next := make([]Observer, 0, len(b.observers)-1)
		next = append(next, b.observers[:i]...)
		next = append(next, b.observers[i+1:]...)
		b.observers = next
		return
	}
}

// Metrics returns a snapshot of accumulated counters.
func (b *Bus) Metrics() Metrics {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.metrics
}
