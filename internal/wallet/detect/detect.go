// Package detect implements bridge availability detection: a probe raced
// against several trigger sources with single-fire semantics.
package detect

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// DefaultInterval is the periodic probe interval used when Options.Interval
// is zero.
const DefaultInterval = time.Second

// Options configure a detection run. The zero value is valid: periodic
// probing on DefaultInterval with the wall clock and no lifecycle hooks.
type Options struct {
	// Interval between periodic probes.
	Interval time.Duration

	// Clock drives the periodic probe. Tests inject a mock.
	Clock clock.Clock

	// ContentReady, when non-nil, triggers one probe as soon as the
	// channel is closed (or has already been closed).
	ContentReady <-chan struct{}

	// Loaded, when non-nil, triggers one probe as soon as the channel is
	// closed (or has already been closed).
	Loaded <-chan struct{}
}

// Start races four trigger sources against probe: an immediate probe at
// registration, a periodic ticker, and one-shot probes on the
// content-ready and loaded transitions. The first probe call returning
// true ends the run; probe is guaranteed never to be invoked again after
// it first returns true, and all timers and subscriptions are released at
// that point. All probe invocations happen sequentially.
//
// The returned stop function tears the run down early and is idempotent.
func Start(probe func() bool, opts Options) (stop func()) {
	if probe == nil {
		return func() {}
	}

	// Probe synchronously first: the bridge may already be present, in
	// which case neither timer nor subscriptions are ever set up.
	if probe() {
		return func() {}
	}

	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.New()
	}

	done := make(chan struct{})
	var once sync.Once
	stop = func() {
		once.Do(func() { close(done) })
	}

	go func() {
		defer stop()

		ticker := clk.Ticker(interval)
		defer ticker.Stop()

		// Local copies so each lifecycle hook probes at most once.
		contentReady := opts.ContentReady
		loaded := opts.Loaded

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if probe() {
					return
				}
			case <-contentReady:
				contentReady = nil
				if probe() {
					return
				}
			case <-loaded:
				loaded = nil
				if probe() {
					return
				}
			}
		}
	}()

	return stop
}
