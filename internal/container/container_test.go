package container

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"symrand/adapters/memory"
	"symrand/adapters/sqlstore"
	"symrand/domain/core"
	"symrand/domain/expr"
	"symrand/internal"
	"symrand/internal/config"
	"symrand/internal/evaluation"
)

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)
}

func TestOpenMemoryStore(t *testing.T) {
	cfg, err := config.LoadEnvironment(map[string]string{})
	require.NoError(t, err)

	c, err := New(cfg, internal.NewDiscardLogger())
	require.NoError(t, err)
	require.NoError(t, c.OpenStore(context.Background()))

	assert.IsType(t, &memory.Repository{}, c.Repo)
	assert.Len(t, c.Kernel.Builtins(), 7)

	require.NoError(t, c.Shutdown(context.Background()))
	assert.Nil(t, c.Repo)
	require.NoError(t, c.Shutdown(context.Background()))
}

func TestOpenSQLiteStoreEvaluates(t *testing.T) {
	cfg, err := config.LoadEnvironment(map[string]string{
		"STORE_DRIVER": "sqlite",
		"SQLITE_PATH":  filepath.Join(t.TempDir(), "state.db"),
	})
	require.NoError(t, err)

	c, err := New(cfg, internal.NewDiscardLogger())
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, c.OpenStore(ctx))
	defer c.Shutdown(ctx)

	assert.IsType(t, &sqlstore.Repository{}, c.Repo)

	id := core.NewSessionID()
	ev := evaluation.New(id, c.Repo.Scoped(id), c.Logger)
	result, err := c.Kernel.Evaluate(ctx, ev, expr.New("RandomInteger", expr.List(expr.NewInteger(1), expr.NewInteger(6))))
	require.NoError(t, err)
	assert.Equal(t, expr.HeadInteger, result.Head())

	_, ok, err := c.Repo.Scoped(id).GetConfigValue(ctx, "$RandomState")
	require.NoError(t, err)
	assert.True(t, ok)
}
