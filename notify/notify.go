// Package notify routes configuration change events to listeners.
//
// A Dispatcher holds listeners keyed by Event. Listeners on the same event
// run in priority order, highest priority first; listeners sharing a
// priority run in registration order. Delivery is synchronous: Fire returns
// only after every listener has run.
package notify

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Dispatcher routes Changes to registered listeners. The zero value is not
// usable; construct with NewDispatcher. A Dispatcher may be shared by any
// number of configurations.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners map[Event][]*Registration
	seq       uint64
}

// NewDispatcher returns an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[Event][]*Registration)}
}

// Registration is the handle for one registered listener.
type Registration struct {
	d        *Dispatcher
	event    Event
	name     string
	priority int
	seq      uint64
	fn       Listener
}

// Name returns the listener's name, generated when none was supplied.
func (r *Registration) Name() string { return r.name }

// Event returns the event the listener is registered for.
func (r *Registration) Event() Event { return r.event }

// Priority returns the listener's priority.
func (r *Registration) Priority() int { return r.priority }

// Remove unregisters exactly this listener. It reports whether the
// listener was still registered.
func (r *Registration) Remove() bool {
	return r.d.remove(r)
}

// ListenerOption configures a listener at registration time.
type ListenerOption func(*Registration)

// WithPriority sets the listener's priority. Higher priorities run first;
// the default is 0. Negative priorities run after the default.
func WithPriority(p int) ListenerOption {
	return func(r *Registration) { r.priority = p }
}

// WithName gives the listener a name for later removal with Off. Names are
// not required to be unique; Off removes every listener sharing one.
func WithName(name string) ListenerOption {
	return func(r *Registration) { r.name = name }
}

// On registers fn for ev and returns its Registration. fn must not be nil.
// Registering from inside a listener is allowed; the new listener is not
// invoked by the Fire already in progress.
func (d *Dispatcher) On(ev Event, fn Listener, opts ...ListenerOption) *Registration {
	if fn == nil {
		panic("notify: On called with nil listener")
	}
	ev = ev.normalized()
	r := &Registration{d: d, event: ev, fn: fn}
	for _, opt := range opts {
		opt(r)
	}
	if r.name == "" {
		r.name = uuid.New().String()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	r.seq = d.seq
	d.seq++
	list := d.listeners[ev]
	// Keep the slice ordered: descending priority, ascending registration
	// within a priority. The new listener lands after its equals.
	i := sort.Search(len(list), func(i int) bool { return list[i].priority < r.priority })
	list = append(list, nil)
	copy(list[i+1:], list[i:])
	list[i] = r
	d.listeners[ev] = list
	return r
}

// Off removes every listener registered for ev under the given name. It
// reports whether any listener was removed.
func (d *Dispatcher) Off(ev Event, name string) bool {
	ev = ev.normalized()
	d.mu.Lock()
	defer d.mu.Unlock()
	list := d.listeners[ev]
	kept := list[:0]
	for _, r := range list {
		if r.name != name {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(list) {
		return false
	}
	d.setLocked(ev, kept)
	return true
}

func (d *Dispatcher) remove(r *Registration) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	list := d.listeners[r.event]
	for i, cand := range list {
		if cand == r {
			d.setLocked(r.event, append(list[:i:i], list[i+1:]...))
			return true
		}
	}
	return false
}

func (d *Dispatcher) setLocked(ev Event, list []*Registration) {
	if len(list) == 0 {
		delete(d.listeners, ev)
		return
	}
	d.listeners[ev] = list
}

// Fire delivers ch to every listener registered for its event, in order,
// and returns how many listeners ran. Firing an event nobody listens to
// does nothing. Listener panics are not recovered.
func (d *Dispatcher) Fire(ch Change) int {
	ch.Event = ch.Event.normalized()

	d.mu.RLock()
	list := d.listeners[ch.Event]
	snapshot := make([]*Registration, len(list))
	copy(snapshot, list)
	d.mu.RUnlock()

	for _, r := range snapshot {
		r.fn(ch)
	}
	return len(snapshot)
}

// ListenerCount returns the number of listeners registered for ev.
func (d *Dispatcher) ListenerCount(ev Event) int {
	ev = ev.normalized()
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners[ev])
}
