package memory

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symrand/domain/core"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	_, ok, err := store.GetConfigValue(ctx, "$RandomState")
	require.NoError(t, err)
	assert.False(t, ok)

	huge := new(big.Int).Lsh(big.NewInt(3), 20000)
	require.NoError(t, store.SetConfigValue(ctx, "$RandomState", huge))

	got, ok, err := store.GetConfigValue(ctx, "$RandomState")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 0, huge.Cmp(got))
}

func TestStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	v := big.NewInt(10)
	require.NoError(t, store.SetConfigValue(ctx, "x", v))
	v.SetInt64(11)

	got, _, err := store.GetConfigValue(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.Int64())

	got.SetInt64(12)
	again, _, _ := store.GetConfigValue(ctx, "x")
	assert.Equal(t, int64(10), again.Int64())
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()
	a := repo.Scoped(core.NewSessionID())
	b := repo.Scoped(core.NewSessionID())

	require.NoError(t, a.SetConfigValue(ctx, "x", big.NewInt(1)))

	_, ok, err := b.GetConfigValue(ctx, "x")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Close())
	_, ok, _ = a.GetConfigValue(ctx, "x")
	assert.False(t, ok)
}

func TestStoreHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := NewStore()
	assert.ErrorIs(t, store.SetConfigValue(ctx, "x", big.NewInt(1)), context.Canceled)
	_, _, err := store.GetConfigValue(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
}
