// Package clipboard provides the sinks fragments are delivered to.
//
// A Sink overwrites the clipboard with the given text. Clearing is writing
// the empty string. Write failures are returned as *Error and are never
// retried: a silently skipped write would leave the clipboard out of step
// with what the user was told.
package clipboard

import (
	"errors"
	"fmt"
	"strings"
)

// Sink accepts text for the clipboard.
type Sink interface {
	Write(text string) error
}

// Backend names a sink implementation.
type Backend string

// Supported backends.
const (
	BackendAuto    Backend = "auto"
	BackendSystem  Backend = "system"
	BackendCommand Backend = "command"
	BackendOSC52   Backend = "osc52"
)

// ParseBackend parses a backend name. Empty yields BackendAuto.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BackendAuto, nil
	case BackendAuto, BackendSystem, BackendCommand, BackendOSC52:
		return b, nil
	default:
		return "", fmt.Errorf("invalid clipboard backend: %q (must be auto, system, command or osc52)", s)
	}
}

// ErrUnavailable indicates no usable clipboard backend was found.
var ErrUnavailable = errors.New("clipboard unavailable")

// Error wraps a failed clipboard operation.
type Error struct {
	// Op is "write" or "clear".
	Op string
	// Backend is the backend that failed.
	Backend Backend
	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("clipboard %s (%s): %v", e.Op, e.Backend, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func wrap(backend Backend, text string, err error) error {
	if err == nil {
		return nil
	}
	op := "write"
	if text == "" {
		op = "clear"
	}
	return &Error{Op: op, Backend: backend, Err: err}
}

// Clear empties the clipboard behind s.
func Clear(s Sink) error {
	return s.Write("")
}
