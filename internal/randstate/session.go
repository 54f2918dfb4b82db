package randstate

import (
	"context"

	"symrand/domain/core"
	"symrand/internal"
	apperrors "symrand/internal/errors"
	"symrand/ports"
)

// Session installs the persisted state into a generator for the duration of
// one builtin call and writes the advanced state back when it closes.
type Session struct {
	ctx    context.Context
	gen    ports.GeneratorPort
	store  ports.ConfigStore
	logger *internal.Logger
	closed bool
}

// Open reads the persisted Random State Value from store and installs it into
// gen. With no persisted value the generator is reseeded from ambient
// entropy; its state becomes the first persisted value on Close.
//
// A persisted value that does not decode into a generator state, or that the
// store reports as malformed, is an internal consistency failure: Open returns an INVALID_STATE error and
// nothing is written back.
func Open(ctx context.Context, gen ports.GeneratorPort, store ports.ConfigStore, logger *internal.Logger) (*Session, error) {
	value, ok, err := store.GetConfigValue(ctx, StateName)
	if err != nil {
		if core.IsStateError(err) {
			logger.Error("stored state is malformed: %v", err)
			return nil, apperrors.InvalidState(err)
		}
		return nil, apperrors.StorageError("failed to read random state", err)
	}

	if !ok {
		logger.Debug("no persisted state, seeding from entropy")
		gen.Seed(nil)
	} else {
		state, err := Decode(value)
		if err != nil {
			logger.Error("persisted state does not decode: %v", err)
			return nil, apperrors.InvalidState(err)
		}
		if err := gen.SetState(state); err != nil {
			logger.Error("persisted state rejected by generator: %v", err)
			return nil, apperrors.InvalidState(err)
		}
		logger.Trace("installed persisted state (%d bits)", value.BitLen())
	}

	return &Session{ctx: ctx, gen: gen, store: store, logger: logger}, nil
}

// Generator returns the generator the session installed its state into.
func (s *Session) Generator() ports.GeneratorPort {
	return s.gen
}

// Close persists the generator's current state, overwriting the prior value.
// Calls after the first are no-ops.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	state, err := s.gen.State()
	if err != nil {
		return apperrors.InvalidState(err)
	}
	value := Encode(state)
	if err := s.store.SetConfigValue(s.ctx, StateName, value); err != nil {
		s.logger.Error("failed to persist random state: %v", err)
		return apperrors.StorageError("failed to persist random state", err)
	}
	s.logger.Trace("persisted state (%d bits)", value.BitLen())
	return nil
}

// Run opens a session, runs body with the installed generator and closes the
// session on every exit path, panics included. Draws completed before body
// fails are persisted. A Close error is returned only when body succeeded.
func Run[T any](ctx context.Context, gen ports.GeneratorPort, store ports.ConfigStore, logger *internal.Logger, body func(ports.GeneratorPort) (T, error)) (result T, err error) {
	s, err := Open(ctx, gen, store, logger)
	if err != nil {
		return result, err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return body(s.Generator())
}
