package tty

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestReader_ReadLine(t *testing.T) {
	r := NewReader(strings.NewReader("y\r\np\n\nq"))

	want := []string{"y", "p", "", "q"}
	for i, w := range want {
		got, err := r.ReadLine()
		if err != nil {
			t.Fatalf("line %d: unexpected error %v", i, err)
		}
		if got != w {
			t.Errorf("line %d = %q, want %q", i, got, w)
		}
	}

	if _, err := r.ReadLine(); !errors.Is(err, io.EOF) {
		t.Errorf("after input: err = %v, want io.EOF", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close on wrapped reader: %v", err)
	}
}

func TestPrompter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrompter(&buf)

	if err := p.Prompt("P(rev)/Q(uit) [q]: "); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "P(rev)/Q(uit) [q]: " {
		t.Errorf("Prompt wrote %q", got)
	}

	buf.Reset()
	if err := p.Warn("invalid input"); err != nil {
		t.Fatal(err)
	}
	// Not a terminal: no escape sequences.
	if got := buf.String(); got != "invalid input\n" {
		t.Errorf("Warn wrote %q", got)
	}

	buf.Reset()
	if err := p.Notice("encoding: %s", "UTF-8"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "encoding: UTF-8\n" {
		t.Errorf("Notice wrote %q", got)
	}
}
