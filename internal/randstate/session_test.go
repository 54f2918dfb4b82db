package randstate

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"symrand/adapters/generator"
	"symrand/domain/core"
	"symrand/internal"
	apperrors "symrand/internal/errors"
	"symrand/ports"
)

// MockConfigStore records every slot access.
type MockConfigStore struct {
	mock.Mock
}

func (m *MockConfigStore) GetConfigValue(ctx context.Context, name string) (*big.Int, bool, error) {
	args := m.Called(ctx, name)
	v, _ := args.Get(0).(*big.Int)
	return v, args.Bool(1), args.Error(2)
}

func (m *MockConfigStore) SetConfigValue(ctx context.Context, name string, value *big.Int) error {
	args := m.Called(ctx, name, value)
	return args.Error(0)
}

func encodedState(t *testing.T, g *generator.MersenneTwister) *big.Int {
	t.Helper()
	state, err := g.State()
	require.NoError(t, err)
	return Encode(state)
}

func TestRunInstallsAndPersists(t *testing.T) {
	ctx := context.Background()
	logger := internal.NewDiscardLogger()

	persisted := encodedState(t, generator.NewSeeded(42))
	expected := generator.NewSeeded(42).Reals(0, 1, 3)

	store := new(MockConfigStore)
	store.On("GetConfigValue", ctx, StateName).Return(persisted, true, nil).Once()
	var written *big.Int
	store.On("SetConfigValue", ctx, StateName, mock.AnythingOfType("*big.Int")).
		Run(func(args mock.Arguments) { written = args.Get(2).(*big.Int) }).
		Return(nil).Once()

	gen := generator.NewMersenneTwister()
	got, err := Run(ctx, gen, store, logger, func(g ports.GeneratorPort) ([]float64, error) {
		return g.Reals(0, 1, 3), nil
	})

	require.NoError(t, err)
	assert.Equal(t, expected, got)
	store.AssertExpectations(t)

	advanced := generator.NewSeeded(42)
	advanced.Reals(0, 1, 3)
	assert.Equal(t, 0, encodedState(t, advanced).Cmp(written))
}

func TestRunSeedsWhenStateAbsent(t *testing.T) {
	ctx := context.Background()

	store := new(MockConfigStore)
	store.On("GetConfigValue", ctx, StateName).Return(nil, false, nil).Once()
	store.On("SetConfigValue", ctx, StateName, mock.AnythingOfType("*big.Int")).Return(nil).Once()

	_, err := Run(ctx, generator.NewMersenneTwister(), store, nil, func(g ports.GeneratorPort) (int, error) {
		return 0, nil
	})

	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestRunPersistsWhenBodyFails(t *testing.T) {
	ctx := context.Background()
	bodyErr := errors.New("draw failed halfway")

	store := new(MockConfigStore)
	store.On("GetConfigValue", ctx, StateName).Return(encodedState(t, generator.NewSeeded(1)), true, nil)
	store.On("SetConfigValue", ctx, StateName, mock.AnythingOfType("*big.Int")).Return(nil).Once()

	_, err := Run(ctx, generator.NewMersenneTwister(), store, nil, func(g ports.GeneratorPort) (int, error) {
		g.Reals(0, 1, 5)
		return 0, bodyErr
	})

	assert.ErrorIs(t, err, bodyErr)
	store.AssertExpectations(t)
}

func TestRunPersistsOnPanic(t *testing.T) {
	ctx := context.Background()

	store := new(MockConfigStore)
	store.On("GetConfigValue", ctx, StateName).Return(nil, false, nil)
	store.On("SetConfigValue", ctx, StateName, mock.AnythingOfType("*big.Int")).Return(nil).Once()

	assert.Panics(t, func() {
		_, _ = Run(ctx, generator.NewMersenneTwister(), store, nil, func(g ports.GeneratorPort) (int, error) {
			panic("boom")
		})
	})
	store.AssertExpectations(t)
}

func TestRunDoesNotPersistWhenOpenFails(t *testing.T) {
	ctx := context.Background()

	t.Run("storage error", func(t *testing.T) {
		store := new(MockConfigStore)
		store.On("GetConfigValue", ctx, StateName).Return(nil, false, errors.New("connection reset"))

		_, err := Run(ctx, generator.NewMersenneTwister(), store, nil, func(g ports.GeneratorPort) (int, error) {
			t.Fatal("body must not run")
			return 0, nil
		})

		assert.Equal(t, apperrors.CodeStorageError, apperrors.GetCode(err))
		store.AssertNotCalled(t, "SetConfigValue", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed state", func(t *testing.T) {
		store := new(MockConfigStore)
		store.On("GetConfigValue", ctx, StateName).Return(big.NewInt(12345), true, nil)

		_, err := Run(ctx, generator.NewMersenneTwister(), store, nil, func(g ports.GeneratorPort) (int, error) {
			t.Fatal("body must not run")
			return 0, nil
		})

		assert.Equal(t, apperrors.CodeInvalidState, apperrors.GetCode(err))
		store.AssertNotCalled(t, "SetConfigValue", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("store reports malformed value", func(t *testing.T) {
		store := new(MockConfigStore)
		stored := fmt.Errorf("%w: $RandomState holds %q", core.ErrInvalidState, "not-a-number")
		store.On("GetConfigValue", ctx, StateName).Return(nil, false, stored)

		_, err := Run(ctx, generator.NewMersenneTwister(), store, nil, func(g ports.GeneratorPort) (int, error) {
			t.Fatal("body must not run")
			return 0, nil
		})

		assert.Equal(t, apperrors.CodeInvalidState, apperrors.GetCode(err))
		assert.True(t, errors.Is(err, core.ErrInvalidState))
		store.AssertNotCalled(t, "SetConfigValue", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("wrong blob length", func(t *testing.T) {
		store := new(MockConfigStore)
		store.On("GetConfigValue", ctx, StateName).Return(Encode([]byte{1, 2, 3}), true, nil)

		_, err := Run(ctx, generator.NewMersenneTwister(), store, nil, func(g ports.GeneratorPort) (int, error) {
			return 0, nil
		})

		assert.Equal(t, apperrors.CodeInvalidState, apperrors.GetCode(err))
	})
}

func TestRunReportsPersistFailure(t *testing.T) {
	ctx := context.Background()

	store := new(MockConfigStore)
	store.On("GetConfigValue", ctx, StateName).Return(nil, false, nil)
	store.On("SetConfigValue", ctx, StateName, mock.AnythingOfType("*big.Int")).Return(errors.New("read-only"))

	_, err := Run(ctx, generator.NewMersenneTwister(), store, nil, func(g ports.GeneratorPort) (int, error) {
		return 1, nil
	})

	assert.Equal(t, apperrors.CodeStorageError, apperrors.GetCode(err))
}

func TestCloseIsIdempotent(t *testing.T) {
	ctx := context.Background()

	store := new(MockConfigStore)
	store.On("GetConfigValue", ctx, StateName).Return(nil, false, nil)
	store.On("SetConfigValue", ctx, StateName, mock.AnythingOfType("*big.Int")).Return(nil).Once()

	s, err := Open(ctx, generator.NewMersenneTwister(), store, nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	store.AssertNumberOfCalls(t, "SetConfigValue", 1)
}
