package journal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Writer appends records for one session.
type Writer struct {
	mu        sync.Mutex
	w         io.Writer
	closer    io.Closer
	sessionID string
	seq       int64
	now       func() time.Time
}

// NewWriter writes records for sessionID to w.
func NewWriter(w io.Writer, sessionID string) *Writer {
	return &Writer{w: w, sessionID: sessionID, now: time.Now}
}

// Create opens path for appending, creating it if needed.
func Create(path, sessionID string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	jw := NewWriter(f, sessionID)
	jw.closer = f
	return jw, nil
}

// Append stamps rec with the session, next sequence number and time, and
// writes it as one frame.
func (w *Writer) Append(rec Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.seq++
	rec.Seq = w.seq
	rec.SessionID = w.sessionID
	if rec.Time.IsZero() {
		rec.Time = w.now().UTC()
	}

	frame, err := EncodeFrame(rec)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(frame); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	return nil
}

// Close closes the file opened by Create.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

// ReadFile reads every record in the journal at path.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadAll(f)
}
