// Package host models the process lifecycle signals the session layer
// depends on: the startup transitions availability detection hooks into,
// and the shutdown signal that arms the session manager's teardown guard.
// Passing an explicit *Environment handle around (instead of reading
// ambient process state) keeps the session core testable.
package host

import "sync"

// Environment is a handle on the hosting process lifecycle. The zero
// value is not usable; construct with NewEnvironment. A nil *Environment
// means the process cannot host wallet bridges at all, and adapters built
// against it stay unsupported.
type Environment struct {
	mu           sync.Mutex
	contentReady chan struct{}
	loaded       chan struct{}
	shutdown     chan struct{}
}

func NewEnvironment() *Environment {
	return &Environment{
		contentReady: make(chan struct{}),
		loaded:       make(chan struct{}),
		shutdown:     make(chan struct{}),
	}
}

// MarkContentReady signals that early startup finished. Idempotent.
func (e *Environment) MarkContentReady() {
	e.mu.Lock()
	defer e.mu.Unlock()
	select {
	case <-e.contentReady:
	default:
		close(e.contentReady)
	}
}

// MarkLoaded signals that startup finished completely. Idempotent.
func (e *Environment) MarkLoaded() {
	e.mu.Lock()
	defer e.mu.Unlock()
	select {
	case <-e.loaded:
	default:
		close(e.loaded)
	}
}

// BeginShutdown arms the shutdown guard. Idempotent. Once armed, session
// error and disconnect events are expected teardown noise and are no
// longer surfaced to the application error handler.
func (e *Environment) BeginShutdown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	select {
	case <-e.shutdown:
	default:
		close(e.shutdown)
	}
}

// ContentReady is closed once MarkContentReady was called.
func (e *Environment) ContentReady() <-chan struct{} {
	return e.contentReady
}

// Loaded is closed once MarkLoaded was called.
func (e *Environment) Loaded() <-chan struct{} {
	return e.loaded
}

// Done is closed once BeginShutdown was called.
func (e *Environment) Done() <-chan struct{} {
	return e.shutdown
}

// ShuttingDown reports whether the shutdown guard is armed.
func (e *Environment) ShuttingDown() bool {
	select {
	case <-e.shutdown:
		return true
	default:
		return false
	}
}
