package clipboard

import (
	"io"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
)

// OSC52Sink asks the terminal emulator to set the clipboard with an OSC 52
// escape sequence. It works over SSH but cannot report whether the
// terminal honoured the request.
type OSC52Sink struct {
	out    io.Writer
	getenv func(string) string
}

// NewOSC52Sink writes sequences to out, usually the controlling terminal.
// getenv is consulted for TMUX and TERM to wrap the sequence for
// multiplexers.
func NewOSC52Sink(out io.Writer, getenv func(string) string) *OSC52Sink {
	return &OSC52Sink{out: out, getenv: getenv}
}

// Write implements Sink.
func (s *OSC52Sink) Write(text string) error {
	seq := osc52.New(text)
	if text == "" {
		seq = osc52.Clear()
	}
	switch {
	case s.getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(s.getenv("TERM"), "screen"):
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(s.out)
	return wrap(BackendOSC52, text, err)
}
