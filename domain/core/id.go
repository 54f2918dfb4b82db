package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SessionID identifies one evaluation session, and with it one persisted
// random state slot.
type SessionID uuid.UUID

// NewSessionID creates a new session identifier using UUID v7 for time-ordered generation
func NewSessionID() SessionID {
	// Falls back to v4 if v7 fails
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return SessionID(id)
}

// ParseSessionID parses the canonical text form of a session identifier.
func ParseSessionID(s string) (SessionID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SessionID{}, fmt.Errorf("session ID cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return SessionID{}, fmt.Errorf("invalid session ID %q: %w", s, err)
	}
	return SessionID(id), nil
}

// UUID returns the underlying UUID.
func (id SessionID) UUID() uuid.UUID { return uuid.UUID(id) }

// String returns the string representation
func (id SessionID) String() string { return uuid.UUID(id).String() }

// IsEmpty checks if the ID is the zero UUID
func (id SessionID) IsEmpty() bool { return uuid.UUID(id) == uuid.Nil }
