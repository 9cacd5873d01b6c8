package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CommandSink pipes text into an external clipboard program.
type CommandSink struct {
	args []string
	run  func(args []string, stdin string) error
}

// NewCommandSink returns a sink running args[0] with args[1:].
func NewCommandSink(args []string) (*CommandSink, error) {
	if len(args) == 0 || args[0] == "" {
		return nil, errors.New("clipboard command is empty")
	}
	return &CommandSink{args: args, run: runCommand}, nil
}

// Args returns the command line used for writes.
func (s *CommandSink) Args() []string { return s.args }

// Write implements Sink.
func (s *CommandSink) Write(text string) error {
	return wrap(BackendCommand, text, s.run(s.args, text))
}

func runCommand(args []string, stdin string) error {
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = strings.NewReader(stdin)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", args[0], err, msg)
		}
		return fmt.Errorf("%s: %w", args[0], err)
	}
	return nil
}

// DetectCommand finds a clipboard program for goos.
func DetectCommand(goos string, lookPath func(string) (string, error)) ([]string, bool) {
	type candidate struct {
		cmd  string
		args []string
	}

	var candidates []candidate
	if strings.EqualFold(goos, "windows") {
		candidates = append(candidates,
			candidate{cmd: "clip.exe"},
			candidate{cmd: "clip"},
			candidate{cmd: "powershell.exe", args: []string{"-NoLogo", "-NoProfile", "-Command", "$input | Set-Clipboard"}},
			candidate{cmd: "pwsh", args: []string{"-NoLogo", "-NoProfile", "-Command", "$input | Set-Clipboard"}},
		)
	}
	candidates = append(candidates,
		candidate{cmd: "pbcopy"},
		candidate{cmd: "wl-copy"},
		candidate{cmd: "xclip", args: []string{"-selection", "clipboard"}},
		candidate{cmd: "xsel", args: []string{"--clipboard", "--input"}},
	)

	for _, c := range candidates {
		path, err := lookPath(c.cmd)
		if err != nil || path == "" {
			continue
		}
		return append([]string{path}, c.args...), true
	}
	return nil, false
}
