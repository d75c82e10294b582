package events

import (
	"sync"
	"time"
)

// Listener receives events. Listeners run synchronously on the emitting
// goroutine and must not call back into mutating uploader operations.
type Listener func(Event)

type subscription struct {
	id   int
	name Name // empty subscribes to everything
	fn   Listener
}

// Dispatcher delivers events to listeners in subscription order. Emission
// is serialized; events from a single operation arrive in the order they
// were emitted.
type Dispatcher struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe registers a listener for one event name. The returned function
// removes the subscription.
func (d *Dispatcher) Subscribe(name Name, fn Listener) func() {
	return d.add(name, fn)
}

// SubscribeAll registers a listener for every event.
func (d *Dispatcher) SubscribeAll(fn Listener) func() {
	return d.add("", fn)
}

func (d *Dispatcher) add(name Name, fn Listener) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	id := d.nextID
	d.subs = append(d.subs, subscription{id: id, name: name, fn: fn})

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		for i, s := range d.subs {
			if s.id == id {
				d.subs = append(d.subs[:i], d.subs[i+1:]...)
				return
			}
		}
	}
}

// Emit stamps and delivers an event. The listener list is snapshotted so a
// listener may unsubscribe itself during delivery.
func (d *Dispatcher) Emit(name Name, payload interface{}) {
	ev := Event{Name: name, Timestamp: time.Now().UTC(), Payload: payload}

	d.mu.Lock()
	snapshot := make([]subscription, len(d.subs))
	copy(snapshot, d.subs)
	d.mu.Unlock()

	for _, s := range snapshot {
		if s.name == "" || s.name == name {
			s.fn(ev)
		}
	}
}
