// Package memory keeps configuration values in process memory.
package memory

import (
	"context"
	"math/big"
	"sync"

	"symrand/domain/core"
	"symrand/ports"
)

var _ ports.ConfigRepository = (*Repository)(nil)

// Repository holds one set of configuration slots per session.
type Repository struct {
	mu     sync.RWMutex
	values map[core.SessionID]map[string]*big.Int
}

// NewRepository creates an empty repository
func NewRepository() *Repository {
	return &Repository{values: make(map[core.SessionID]map[string]*big.Int)}
}

// NewStore returns a standalone store for a single session.
func NewStore() ports.ConfigStore {
	return NewRepository().Scoped(core.SessionID{})
}

// Scoped returns the store of a session.
func (r *Repository) Scoped(sessionID core.SessionID) ports.ConfigStore {
	return &Store{repo: r, session: sessionID}
}

// Close drops every stored value.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values = make(map[core.SessionID]map[string]*big.Int)
	return nil
}

// Store is the view of one session. Values are copied in and out.
type Store struct {
	repo    *Repository
	session core.SessionID
}

func (s *Store) GetConfigValue(ctx context.Context, name string) (*big.Int, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.repo.mu.RLock()
	defer s.repo.mu.RUnlock()

	v, ok := s.repo.values[s.session][name]
	if !ok {
		return nil, false, nil
	}
	return new(big.Int).Set(v), true, nil
}

func (s *Store) SetConfigValue(ctx context.Context, name string, value *big.Int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.repo.mu.Lock()
	defer s.repo.mu.Unlock()

	slots, ok := s.repo.values[s.session]
	if !ok {
		slots = make(map[string]*big.Int)
		s.repo.values[s.session] = slots
	}
	slots[name] = new(big.Int).Set(value)
	return nil
}
