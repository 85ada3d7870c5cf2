package local_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github/omnikey/wallet-session/internal/data/local"
)

func TestFileServiceRoundtrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := local.NewFileService(dir)
	require.NoError(t, err)

	// Nothing persisted yet.
	name, err := s.GetSelectedProvider(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", name)

	require.NoError(t, s.SetSelectedProvider(ctx, "nova"))

	name, err = s.GetSelectedProvider(ctx)
	require.NoError(t, err)
	assert.Equal(t, "nova", name)

	// Survives a new service instance over the same directory.
	reopened, err := local.NewFileService(dir)
	require.NoError(t, err)

	name, err = reopened.GetSelectedProvider(ctx)
	require.NoError(t, err)
	assert.Equal(t, "nova", name)

	require.NoError(t, reopened.SetSelectedProvider(ctx, ""))

	name, err = reopened.GetSelectedProvider(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", name)
}

func TestFileServiceCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	_, err := local.NewFileService(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileServiceCorruptFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := local.NewFileService(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0o600))

	_, err = s.GetSelectedProvider(ctx)
	require.Error(t, err)
}
