package clipboard

import (
	"fmt"
	"runtime"

	"github.com/atotto/clipboard"
)

// SystemSink writes through the platform clipboard API.
type SystemSink struct{}

// SystemAvailable reports whether the platform clipboard can be used.
func SystemAvailable() bool {
	return !clipboard.Unsupported
}

// Write implements Sink.
func (SystemSink) Write(text string) error {
	if clipboard.Unsupported {
		return wrap(BackendSystem, text, fmt.Errorf("%w on %s", ErrUnavailable, runtime.GOOS))
	}
	return wrap(BackendSystem, text, clipboard.WriteAll(text))
}
