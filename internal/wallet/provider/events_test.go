package provider_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/omnikey/wallet-session/internal/wallet/provider"
)

func TestEmitterDeliversInRegistrationOrder(t *testing.T) {
	emitter := provider.NewEmitter()

	var order []int
	emitter.On(provider.EventConnect, func(provider.Event) { order = append(order, 1) })
	emitter.On(provider.EventConnect, func(provider.Event) { order = append(order, 2) })
	emitter.On(provider.EventConnect, func(provider.Event) { order = append(order, 3) })

	emitter.Emit(provider.Event{Kind: provider.EventConnect})

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestEmitterFiltersByKind(t *testing.T) {
	emitter := provider.NewEmitter()

	var connects, disconnects int
	emitter.On(provider.EventConnect, func(provider.Event) { connects++ })
	emitter.On(provider.EventDisconnect, func(provider.Event) { disconnects++ })

	emitter.Emit(provider.Event{Kind: provider.EventConnect})
	emitter.Emit(provider.Event{Kind: provider.EventConnect})
	emitter.Emit(provider.Event{Kind: provider.EventDisconnect})

	assert.Equal(t, 2, connects)
	assert.Equal(t, 1, disconnects)
}

func TestEmitterUnsubscribe(t *testing.T) {
	emitter := provider.NewEmitter()

	var calls int
	off := emitter.On(provider.EventError, func(provider.Event) { calls++ })

	emitter.Emit(provider.Event{Kind: provider.EventError})
	off()
	emitter.Emit(provider.Event{Kind: provider.EventError})

	assert.Equal(t, 1, calls)

	// idempotent
	off()
	emitter.Emit(provider.Event{Kind: provider.EventError})
	assert.Equal(t, 1, calls)
}

func TestEmitterUnsubscribeMidEmission(t *testing.T) {
	emitter := provider.NewEmitter()

	var calls []string
	var offSecond func()

	emitter.On(provider.EventConnect, func(provider.Event) {
		calls = append(calls, "first")
		offSecond()
	})
	offSecond = emitter.On(provider.EventConnect, func(provider.Event) {
		calls = append(calls, "second")
	})

	// The snapshot taken at emission start still includes the second
	// listener; only the next emission drops it.
	emitter.Emit(provider.Event{Kind: provider.EventConnect})
	require.Equal(t, []string{"first", "second"}, calls)

	emitter.Emit(provider.Event{Kind: provider.EventConnect})
	assert.Equal(t, []string{"first", "second", "first"}, calls)
}
