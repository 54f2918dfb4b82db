package ports

import (
	"context"
	"math/big"

	"symrand/domain/core"
)

// ConfigStore is the evaluator's global configuration store, as far as the
// sampling engine is concerned: named big-integer slots.
type ConfigStore interface {
	// GetConfigValue returns the value stored under name and whether it exists.
	GetConfigValue(ctx context.Context, name string) (*big.Int, bool, error)

	// SetConfigValue stores value under name, replacing any prior value.
	SetConfigValue(ctx context.Context, name string, value *big.Int) error
}

// ConfigRepository hands out one ConfigStore per evaluation session.
type ConfigRepository interface {
	// Scoped returns the store for a session.
	Scoped(sessionID core.SessionID) ConfigStore

	// Close releases the underlying resources.
	Close() error
}
