package devwallet_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/omnikey/wallet-session/internal/devwallet"
)

func TestSeedFileRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")

	assert.False(t, devwallet.SeedFileExists(path))

	seed, err := devwallet.CreateSeedFile(path, "correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, seed)

	assert.True(t, devwallet.SeedFileExists(path))

	reopened, err := devwallet.OpenSeedFile(path, "correct horse battery staple")
	require.NoError(t, err)
	assert.Equal(t, seed, reopened)
}

func TestSeedFileWrongPassword(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")

	_, err := devwallet.CreateSeedFile(path, "right")
	require.NoError(t, err)

	_, err = devwallet.OpenSeedFile(path, "wrong")
	require.Error(t, err)
}

func TestOpenSeedFileMissing(t *testing.T) {
	_, err := devwallet.OpenSeedFile(filepath.Join(t.TempDir(), "nope.json"), "pw")
	require.Error(t, err)
}

func TestWalletDeterministicFromSeed(t *testing.T) {
	seed := []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef")

	a, err := devwallet.NewWallet(seed)
	require.NoError(t, err)
	b, err := devwallet.NewWallet(seed)
	require.NoError(t, err)

	assert.Equal(t, a.Address(), b.Address())
	assert.Equal(t, a.PublicKey(), b.PublicKey())
	assert.NotEmpty(t, a.AuthKey())

	sigA, err := a.SignMessage("hello")
	require.NoError(t, err)
	sigB, err := b.SignMessage("hello")
	require.NoError(t, err)
	assert.Equal(t, sigA, sigB)
}
