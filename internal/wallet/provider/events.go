package provider

import "sync"

// EventKind classifies adapter lifecycle events.
type EventKind int

const (
	// EventConnect fires after a session was established. Event.Account
	// carries the bound account.
	EventConnect EventKind = iota

	// EventDisconnect fires after local session state was cleared.
	EventDisconnect

	// EventError fires for every classified adapter failure, in addition
	// to the error being returned to the caller.
	EventError

	// EventReadyStateChange fires when the availability detector moves
	// the adapter out of not-detected. Event.ReadyState carries the new
	// state.
	EventReadyStateChange
)

func (k EventKind) String() string {
	switch k {
	case EventConnect:
		return "connect"
	case EventDisconnect:
		return "disconnect"
	case EventError:
		return "error"
	default:
		return "readyStateChange"
	}
}

// Event carries one adapter state transition to listeners. The adapter's
// own state is always updated before the event fires.
type Event struct {
	Provider   Name
	Kind       EventKind
	Account    AccountKeys // connect only
	ReadyState ReadyState  // readyStateChange only
	Err        error       // error only
}

// Listener receives events synchronously, in registration order.
type Listener func(Event)

type listenerEntry struct {
	id int
	fn Listener
}

// Emitter is a per-kind multi-listener broadcast. Emission is synchronous
// with respect to the state change that triggered it. Listeners are called
// in registration order.
type Emitter struct {
	mu        sync.Mutex
	nextID    int
	listeners map[EventKind][]listenerEntry
}

func NewEmitter() *Emitter {
	return &Emitter{
		listeners: make(map[EventKind][]listenerEntry),
	}
}

// On registers fn for kind and returns an idempotent unsubscribe function.
func (e *Emitter) On(kind EventKind, fn Listener) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.nextID++
	id := e.nextID
	e.listeners[kind] = append(e.listeners[kind], listenerEntry{id: id, fn: fn})

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()

		entries := e.listeners[kind]
		for i, entry := range entries {
			if entry.id == id {
				e.listeners[kind] = append(entries[:i:i], entries[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers evt to all listeners registered for its kind.
func (e *Emitter) Emit(evt Event) {
	e.mu.Lock()
	entries := e.listeners[evt.Kind]
	// Copy so a listener may unsubscribe (itself or others) mid-emission.
	snapshot := make([]listenerEntry, len(entries))
	copy(snapshot, entries)
	e.mu.Unlock()

	for _, entry := range snapshot {
		entry.fn(evt)
	}
}
