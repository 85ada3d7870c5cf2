// Package bridge defines the boundary to a provider's native wallet
// bridge: a per-brand local daemon speaking that brand's private protocol.
// Responses are handed back as raw envelope bytes; interpreting an
// envelope shape is strictly the owning adapter's business.
package bridge

import (
	"context"
	"encoding/json"
)

// Native is the opaque asynchronous capability a provider's bridge
// exposes. Methods return the raw response envelope; an error return means
// the transport itself failed (unreachable daemon, malformed HTTP
// exchange), never an application-level failure.
type Native interface {
	Connect(ctx context.Context) (json.RawMessage, error)
	Disconnect(ctx context.Context) (json.RawMessage, error)
	IsConnected(ctx context.Context) (json.RawMessage, error)
	SignTransaction(ctx context.Context, payload json.RawMessage) (json.RawMessage, error)
	SignAndSubmitTransaction(ctx context.Context, payload, opts json.RawMessage) (json.RawMessage, error)
	SignMessage(ctx context.Context, message string) (json.RawMessage, error)
}

// Locator probes for a provider's bridge in the host environment. It is
// the availability-detection hook: Lookup is cheap and safe to call
// repeatedly until it first succeeds.
type Locator interface {
	// Lookup returns the native bridge handle when the bridge is
	// currently present.
	Lookup(ctx context.Context) (Native, bool)
}
