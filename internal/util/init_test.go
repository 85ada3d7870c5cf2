package util_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/omnikey/wallet-session/internal/util"
)

type initFixture struct {
	Ptr       *int
	Iface     any
	Plain     int
	unexp     *int //nolint:unused
	Skipped   *int `initialized:"-"`
	SliceLike []string
}

func TestIsStructInitialized(t *testing.T) {
	n := 1
	fixture := &initFixture{
		Ptr:       &n,
		Iface:     n,
		SliceLike: []string{},
	}

	require.NoError(t, util.IsStructInitialized(fixture))

	fixture.Ptr = nil
	err := util.IsStructInitialized(fixture)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Ptr")

	// Skipped and unexported fields never count.
	fixture.Ptr = &n
	fixture.Skipped = nil
	require.NoError(t, util.IsStructInitialized(fixture))
}

func TestIsStructInitializedNonStruct(t *testing.T) {
	require.Error(t, util.IsStructInitialized(42))

	var nilPtr *initFixture
	require.Error(t, util.IsStructInitialized(nilPtr))
}
