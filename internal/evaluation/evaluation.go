// Package evaluation provides the evaluator context builtins run in: the
// session's configuration store and the messages raised while evaluating.
package evaluation

import (
	"sync"

	"symrand/domain/core"
	"symrand/internal"
	"symrand/ports"
)

var _ ports.Evaluation = (*Evaluation)(nil)

// Evaluation collects the messages of one or more evaluations in a session.
type Evaluation struct {
	id     core.SessionID
	defs   ports.ConfigStore
	logger *internal.Logger

	mu       sync.Mutex
	messages []ports.Message
}

// New creates an evaluation for session id backed by defs
func New(id core.SessionID, defs ports.ConfigStore, logger *internal.Logger) *Evaluation {
	if logger == nil {
		logger = internal.NewDiscardLogger()
	}
	return &Evaluation{id: id, defs: defs, logger: logger.Named("session " + id.String())}
}

// SessionID returns the session the evaluation belongs to.
func (e *Evaluation) SessionID() core.SessionID {
	return e.id
}

func (e *Evaluation) Definitions() ports.ConfigStore {
	return e.defs
}

func (e *Evaluation) Message(msg ports.Message) {
	e.logger.Debug("%s", msg)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.messages = append(e.messages, msg)
}

// Messages returns the messages reported so far, oldest first.
func (e *Evaluation) Messages() []ports.Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]ports.Message(nil), e.messages...)
}

// Drain returns the messages reported so far and forgets them.
func (e *Evaluation) Drain() []ports.Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.messages
	e.messages = nil
	return out
}
