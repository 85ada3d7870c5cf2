package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/omnikey/wallet-session/internal/api"
	"github/omnikey/wallet-session/internal/test"
	"github/omnikey/wallet-session/internal/util/command"
)

func TestWithServer(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		ctx := t.Context()

		var testError = errors.New("test error")

		s.Config.Logger.PrettyPrintConsole = false
		resultErr := command.WithServer(ctx, s.Config, func(_ context.Context, s *api.Server) error {
			require.NotNil(t, s.Session)

			snap := s.Session.State()
			assert.False(t, snap.Connected)

			return testError
		})

		assert.Equal(t, testError, resultErr)
	})
}
