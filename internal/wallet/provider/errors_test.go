package provider_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/omnikey/wallet-session/internal/wallet/provider"
)

func TestErrorClassification(t *testing.T) {
	cause := errors.New("connection refused")
	err := provider.NewError(provider.ErrConnection, "nova", cause)

	kind, ok := provider.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, provider.ErrConnection, kind)
	assert.True(t, provider.IsKind(err, provider.ErrConnection))
	assert.False(t, provider.IsKind(err, provider.ErrDisconnection))
	assert.False(t, provider.IsRejected(err))
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestErrorClassificationSurvivesWrapping(t *testing.T) {
	err := errors.Wrap(provider.NewRejectedError(provider.ErrSignTransaction, "orbit", nil), "sign failed")

	assert.True(t, provider.IsKind(err, provider.ErrSignTransaction))
	assert.True(t, provider.IsRejected(err))
}

func TestKindOfForeignError(t *testing.T) {
	_, ok := provider.KindOf(errors.New("unclassified"))
	assert.False(t, ok)
	assert.False(t, provider.IsRejected(errors.New("unclassified")))
}

func TestErrorMessageShape(t *testing.T) {
	err := provider.NewRejectedError(provider.ErrConnection, "nova", errors.New("code 4001"))
	assert.Equal(t, `ConnectionError: provider "nova": rejected by user: code 4001`, err.Error())

	bare := provider.NewError(provider.ErrNotSelected, "", nil)
	assert.Equal(t, "NotSelected", bare.Error())
}
