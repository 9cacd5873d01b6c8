package transfer

import (
	"fmt"
	"strings"
	"text/template"
)

// Messages are the header and footer templates. Each is a text/template
// evaluated with {{.Source}} set to the document label. Empty fields use
// the defaults.
type Messages struct {
	Header        string
	Footer        string
	FooterUnnamed string
}

// DefaultMessages returns the built-in templates.
func DefaultMessages() Messages {
	return Messages{
		Header:        "The following is the content of the file: {{.Source}}\n---\n",
		Footer:        "That was the content of the file: {{.Source}}\n",
		FooterUnnamed: "That was the content of the input data.\n",
	}
}

type messageData struct {
	Source string
}

type compiledMessages struct {
	header        *template.Template
	footer        *template.Template
	footerUnnamed *template.Template
}

func (m Messages) compile() (*compiledMessages, error) {
	def := DefaultMessages()
	pick := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}

	var c compiledMessages
	var err error
	if c.header, err = parseMessage("header", pick(m.Header, def.Header)); err != nil {
		return nil, err
	}
	if c.footer, err = parseMessage("footer", pick(m.Footer, def.Footer)); err != nil {
		return nil, err
	}
	if c.footerUnnamed, err = parseMessage("footer_unnamed", pick(m.FooterUnnamed, def.FooterUnnamed)); err != nil {
		return nil, err
	}
	return &c, nil
}

func parseMessage(name, text string) (*template.Template, error) {
	t, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid %s message: %w", name, err)
	}
	return t, nil
}

func render(t *template.Template, source string) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, messageData{Source: source}); err != nil {
		return "", fmt.Errorf("render %s message: %w", t.Name(), err)
	}
	return b.String(), nil
}

// Header renders the header for source.
func (c *compiledMessages) Header(source string) (string, error) {
	return render(c.header, source)
}

// Footer renders the footer, falling back to the unnamed variant when
// source is empty.
func (c *compiledMessages) Footer(source string) (string, error) {
	if source == "" {
		return render(c.footerUnnamed, source)
	}
	return render(c.footer, source)
}
