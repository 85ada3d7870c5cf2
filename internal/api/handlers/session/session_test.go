package session_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/omnikey/wallet-session/internal/api"
	"github/omnikey/wallet-session/internal/api/router"
	"github/omnikey/wallet-session/internal/data/local"
	"github/omnikey/wallet-session/internal/test"
	"github/omnikey/wallet-session/internal/types"
)

func TestGetSessionInitial(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "GET", "/api/v1/session", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.SessionResponse
		test.ParseResponseBody(t, res, &response)

		assert.Empty(t, response.Selected)
		assert.False(t, response.Connected)
		assert.False(t, response.Connecting)
		assert.Nil(t, response.Account)
	})
}

func TestPostSelect(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/session/select", test.GenericPayload{"provider": "nova"}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.SessionResponse
		test.ParseResponseBody(t, res, &response)

		assert.Equal(t, "nova", response.Selected)
		assert.False(t, response.Connected)

		// Selection is persisted for the next restore.
		persisted, err := s.Local.GetSelectedProvider(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "nova", persisted)
	})
}

func TestPostSelectUnknownProvider(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/session/select", test.GenericPayload{"provider": "ghost"}, nil)
		require.Equal(t, http.StatusNotFound, res.Result().StatusCode)

		var response types.PublicHTTPError
		test.ParseResponseBody(t, res, &response)
		assert.Equal(t, types.PublicHTTPErrorTypeUNKNOWNPROVIDER, *response.Type)
	})
}

func TestPostSelectValidation(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/session/select", test.GenericPayload{}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)
	})
}

func TestPostConnectFullFlow(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/session/connect", test.GenericPayload{"provider": "nova"}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.SessionResponse
		test.ParseResponseBody(t, res, &response)

		assert.Equal(t, "nova", response.Selected)
		assert.True(t, response.Connected)
		require.NotNil(t, response.Account)
		assert.NotEmpty(t, *response.Account.Address)
		assert.NotEmpty(t, *response.Account.PublicKey)

		// Disconnect tears the session down again.
		res = test.PerformRequest(t, s, "POST", "/api/v1/session/disconnect", nil, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var disconnected types.SessionResponse
		test.ParseResponseBody(t, res, &disconnected)
		assert.False(t, disconnected.Connected)
		assert.Empty(t, disconnected.Selected)
	})
}

func TestPostConnectWithoutSelection(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/session/connect", test.GenericPayload{}, nil)
		require.Equal(t, http.StatusPreconditionFailed, res.Result().StatusCode)

		var response types.PublicHTTPError
		test.ParseResponseBody(t, res, &response)
		assert.Equal(t, types.PublicHTTPErrorTypeNOTSELECTED, *response.Type)
	})
}

func TestPostConnectUsesSelection(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/session/select", test.GenericPayload{"provider": "nova"}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "POST", "/api/v1/session/connect", test.GenericPayload{}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var response types.SessionResponse
		test.ParseResponseBody(t, res, &response)
		assert.True(t, response.Connected)
	})
}

func TestSignOperations(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/session/connect", test.GenericPayload{"provider": "nova"}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		res = test.PerformRequest(t, s, "POST", "/api/v1/session/sign-transaction", test.GenericPayload{
			"payload": map[string]any{"to": "0x1", "value": "100"},
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var signResponse types.SignTransactionResponse
		test.ParseResponseBody(t, res, &signResponse)
		assert.NotEmpty(t, signResponse.SignedPayload)

		res = test.PerformRequest(t, s, "POST", "/api/v1/session/sign-and-submit", test.GenericPayload{
			"payload": map[string]any{"to": "0x1", "value": "100"},
		}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var submitResponse types.SignAndSubmitResponse
		test.ParseResponseBody(t, res, &submitResponse)
		assert.NotEmpty(t, submitResponse.Hash)

		res = test.PerformRequest(t, s, "POST", "/api/v1/session/sign-message", test.GenericPayload{"message": "hello"}, nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var messageResponse types.SignMessageResponse
		test.ParseResponseBody(t, res, &messageResponse)
		assert.NotEmpty(t, messageResponse.Signature)
	})
}

func TestSignWithoutSession(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/session/sign-message", test.GenericPayload{"message": "hello"}, nil)
		require.Equal(t, http.StatusPreconditionFailed, res.Result().StatusCode)

		var response types.PublicHTTPError
		test.ParseResponseBody(t, res, &response)
		assert.Equal(t, types.PublicHTTPErrorTypeNOTSELECTED, *response.Type)
	})
}

func TestSignValidation(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server) {
		res := test.PerformRequest(t, s, "POST", "/api/v1/session/sign-message", test.GenericPayload{}, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var response types.PublicHTTPValidationError
		test.ParseResponseBody(t, res, &response)
		require.NotEmpty(t, response.ValidationErrors)
		assert.Equal(t, "message", *response.ValidationErrors[0].Key)
	})
}

func TestConnectUserRejected(t *testing.T) {
	test.WithTestBridge(t, true, func(endpoint string) {
		cfg := test.DefaultTestServerConfig(t)
		cfg.Nova.Endpoint = endpoint

		s, err := api.InitNewServerWithStore(cfg, local.NewMemoryService())
		require.NoError(t, err)
		router.Init(s)

		s.Env.MarkContentReady()
		s.Env.MarkLoaded()

		defer func() {
			for _, shutdownErr := range s.Shutdown(context.Background()) {
				t.Errorf("failed to shutdown server component: %v", shutdownErr)
			}
		}()

		res := test.PerformRequest(t, s, "POST", "/api/v1/session/connect", test.GenericPayload{"provider": "nova"}, nil)
		require.Equal(t, http.StatusForbidden, res.Result().StatusCode)

		var response types.PublicHTTPError
		test.ParseResponseBody(t, res, &response)
		assert.Equal(t, types.PublicHTTPErrorTypeUSERREJECTED, *response.Type)

		// The failed connect cleared the selection again.
		var sessionResponse types.SessionResponse
		res = test.PerformRequest(t, s, "GET", "/api/v1/session", nil, nil)
		test.ParseResponseBody(t, res, &sessionResponse)
		assert.Empty(t, sessionResponse.Selected)
	})
}
