// Package tty reads interactive decisions and writes prompts.
//
// Decisions are read from the controlling terminal rather than stdin so
// the document itself may be piped in.
package tty

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

// ErrNoTerminal is returned when no interactive input is available.
var ErrNoTerminal = errors.New("no terminal available for interactive input")

// LineReader yields one line of user input per call, without its
// terminator. It returns io.EOF when input is closed.
type LineReader interface {
	ReadLine() (string, error)
}

// Reader is a LineReader over any io.Reader.
type Reader struct {
	br     *bufio.Reader
	closer io.Closer
}

// NewReader wraps r. The caller keeps ownership of r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// ReadLine implements LineReader. A final line without a newline is
// returned before io.EOF.
func (r *Reader) ReadLine() (string, error) {
	line, err := r.br.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return trimEOL(line), nil
		}
		return "", err
	}
	return trimEOL(line), nil
}

// Close releases the underlying terminal, if Reader opened one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}

// OpenTerminal opens the controlling terminal for reading. When there is
// none, stdin is used unless stdin carries the document.
func OpenTerminal(stdinIsDocument bool) (*Reader, error) {
	f, err := openTerminal()
	if err == nil {
		r := NewReader(f)
		r.closer = f
		return r, nil
	}
	if stdinIsDocument {
		return nil, errors.Join(ErrNoTerminal, err)
	}
	return NewReader(os.Stdin), nil
}
