package clipboard

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
)

// Options configures Open.
type Options struct {
	// Command overrides command detection for BackendCommand.
	Command []string
	// Terminal receives OSC 52 sequences. Defaults to os.Stderr.
	Terminal io.Writer

	goos          string
	lookPath      func(string) (string, error)
	getenv        func(string) string
	systemEnabled func() bool
}

func (o *Options) defaults() {
	if o.Terminal == nil {
		o.Terminal = os.Stderr
	}
	if o.goos == "" {
		o.goos = runtime.GOOS
	}
	if o.lookPath == nil {
		o.lookPath = exec.LookPath
	}
	if o.getenv == nil {
		o.getenv = os.Getenv
	}
	if o.systemEnabled == nil {
		o.systemEnabled = SystemAvailable
	}
}

// Open returns the sink for backend. BackendAuto prefers the system
// clipboard, then a detected clipboard command, then OSC 52 when running
// over SSH. It returns the backend actually chosen.
func Open(backend Backend, opts Options) (Sink, Backend, error) {
	opts.defaults()

	switch backend {
	case BackendSystem:
		if !opts.systemEnabled() {
			return nil, "", fmt.Errorf("%w: system clipboard not supported on %s", ErrUnavailable, opts.goos)
		}
		return SystemSink{}, BackendSystem, nil

	case BackendCommand:
		args := opts.Command
		if len(args) == 0 {
			detected, ok := DetectCommand(opts.goos, opts.lookPath)
			if !ok {
				return nil, "", fmt.Errorf("%w: no clipboard command found", ErrUnavailable)
			}
			args = detected
		}
		sink, err := NewCommandSink(args)
		if err != nil {
			return nil, "", err
		}
		return sink, BackendCommand, nil

	case BackendOSC52:
		return NewOSC52Sink(opts.Terminal, opts.getenv), BackendOSC52, nil

	case BackendAuto, "":
		if len(opts.Command) > 0 {
			return Open(BackendCommand, opts)
		}
		if opts.systemEnabled() {
			return SystemSink{}, BackendSystem, nil
		}
		if args, ok := DetectCommand(opts.goos, opts.lookPath); ok {
			sink, err := NewCommandSink(args)
			if err != nil {
				return nil, "", err
			}
			return sink, BackendCommand, nil
		}
		if opts.getenv("SSH_TTY") != "" || opts.getenv("SSH_CONNECTION") != "" {
			return NewOSC52Sink(opts.Terminal, opts.getenv), BackendOSC52, nil
		}
		return nil, "", fmt.Errorf("%w: install xclip, xsel or wl-copy, or use --clipboard osc52", ErrUnavailable)

	default:
		return nil, "", fmt.Errorf("unknown clipboard backend: %s", backend)
	}
}
