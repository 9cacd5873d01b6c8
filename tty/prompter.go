package tty

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Prompter writes prompts and notices to the diagnostic stream.
type Prompter struct {
	out  io.Writer
	warn lipgloss.Style
	info lipgloss.Style
}

// NewPrompter writes to out. Colour is used only when out is a terminal
// that supports it.
func NewPrompter(out io.Writer) *Prompter {
	r := lipgloss.NewRenderer(out)
	return &Prompter{
		out:  out,
		warn: r.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
		info: r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	}
}

// Prompt writes text with no trailing newline.
func (p *Prompter) Prompt(text string) error {
	_, err := io.WriteString(p.out, text)
	return err
}

// Warn writes a corrective message on its own line.
func (p *Prompter) Warn(msg string) error {
	_, err := fmt.Fprintln(p.out, p.warn.Render(msg))
	return err
}

// Notice writes an informational line.
func (p *Prompter) Notice(format string, args ...any) error {
	_, err := fmt.Fprintln(p.out, p.info.Render(fmt.Sprintf(format, args...)))
	return err
}
