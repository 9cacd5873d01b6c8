// Package types holds identity types shared across clipfrag packages.
package types //nolint:revive // types is a valid package name

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// SessionMeta identifies one transfer session.
type SessionMeta struct {
	// SessionID is a random UUID, unique per invocation.
	SessionID string
	// Source is the document label, empty for stdin.
	Source string
	// Unit is the unit kind label ("chars" or "bytes").
	Unit string
	// MaxUnits is the per-fragment budget.
	MaxUnits int
}

// NewSessionMeta creates session metadata with a fresh session ID.
func NewSessionMeta(source, unit string, maxUnits int) *SessionMeta {
	return &SessionMeta{
		SessionID: uuid.NewString(),
		Source:    source,
		Unit:      unit,
		MaxUnits:  maxUnits,
	}
}

// Validate checks the metadata is usable for logging and journaling.
func (m *SessionMeta) Validate() error {
	if m.SessionID == "" {
		return errors.New("session_id is required")
	}
	if _, err := uuid.Parse(m.SessionID); err != nil {
		return fmt.Errorf("session_id is not a UUID: %w", err)
	}
	if m.Unit == "" {
		return errors.New("unit is required")
	}
	if m.MaxUnits <= 0 {
		return fmt.Errorf("max_units must be positive, got %d", m.MaxUnits)
	}
	return nil
}
