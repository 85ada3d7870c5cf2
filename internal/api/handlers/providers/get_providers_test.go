package providers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/omnikey/wallet-session/internal/api"
	"github/omnikey/wallet-session/internal/test"
	"github/omnikey/wallet-session/internal/types"
)

func TestGetProviders(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/providers", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.ProviderListResponse
		test.ParseResponseBody(t, res, &response)

		// Only nova is enabled by the test config and its bridge is
		// already up, so detection settled synchronously.
		require.Len(t, response.Providers, 1)
		assert.Equal(t, "nova", response.Providers[0].Name)
		assert.Equal(t, "installed", response.Providers[0].ReadyState)
		assert.False(t, response.Providers[0].Connected)
		assert.NotEmpty(t, response.Providers[0].InstallURL)
	})
}
