package host_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github/omnikey/wallet-session/internal/wallet/host"
)

func TestEnvironmentLifecycle(t *testing.T) {
	env := host.NewEnvironment()

	select {
	case <-env.ContentReady():
		t.Fatal("content ready should not be signalled yet")
	default:
	}

	env.MarkContentReady()
	env.MarkContentReady() // idempotent

	<-env.ContentReady()

	env.MarkLoaded()
	<-env.Loaded()

	assert.False(t, env.ShuttingDown())

	env.BeginShutdown()
	env.BeginShutdown() // idempotent

	<-env.Done()
	assert.True(t, env.ShuttingDown())
}
