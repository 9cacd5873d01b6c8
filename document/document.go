// Package document holds the line model of a text being transferred in
// fragments: line splitting, unit metering, greedy fragment packing and
// progress accounting.
//
// A Document is owned by exactly one caller. Build and the progress
// helpers never mutate it; only Advance and Record do.
package document

import (
	"errors"
	"fmt"
)

// DefaultMaxUnits is the budget used when none is configured.
const DefaultMaxUnits = 10_240

// ErrInvalidBudget is returned when the unit budget is not positive.
var ErrInvalidBudget = errors.New("max units must be positive")

// Options configures a Document.
type Options struct {
	// Unit selects the size metric.
	Unit UnitKind
	// MaxUnits is the per-fragment budget. Must be positive.
	MaxUnits int
	// Oversize decides how a line larger than MaxUnits is packed.
	Oversize OversizePolicy
	// Source is a human-readable origin name. Empty for anonymous input
	// such as stdin.
	Source string
}

// Document is the mutable transfer state of one decoded text.
type Document struct {
	lines      []string
	lineUnits  []int
	totalUnits int

	unit     UnitKind
	maxUnits int
	oversize OversizePolicy
	source   string

	cursor        int
	lastDelivered string
}

// New splits text into lines and measures them.
func New(text string, opts Options) (*Document, error) {
	if opts.MaxUnits <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBudget, opts.MaxUnits)
	}

	lines := SplitLines(text)
	units := make([]int, len(lines))
	total := 0
	for i, line := range lines {
		units[i] = Measure(line, opts.Unit)
		total += units[i]
	}

	return &Document{
		lines:      lines,
		lineUnits:  units,
		totalUnits: total,
		unit:       opts.Unit,
		maxUnits:   opts.MaxUnits,
		oversize:   opts.Oversize,
		source:     opts.Source,
	}, nil
}

// Len returns the number of lines.
func (d *Document) Len() int { return len(d.lines) }

// Line returns line i including its terminator.
func (d *Document) Line(i int) string { return d.lines[i] }

// LineUnits returns the size of line i.
func (d *Document) LineUnits(i int) int { return d.lineUnits[i] }

// TotalUnits returns the size of the whole document.
func (d *Document) TotalUnits() int { return d.totalUnits }

// Unit returns the unit kind.
func (d *Document) Unit() UnitKind { return d.unit }

// MaxUnits returns the per-fragment budget.
func (d *Document) MaxUnits() int { return d.maxUnits }

// Oversize returns the oversize policy.
func (d *Document) Oversize() OversizePolicy { return d.oversize }

// Source returns the origin label, empty for anonymous input.
func (d *Document) Source() string { return d.source }

// HasSource reports whether the document came from a named source.
func (d *Document) HasSource() bool { return d.source != "" }

// Cursor returns the index of the next undelivered line.
func (d *Document) Cursor() int { return d.cursor }

// Done reports whether every line has been delivered.
func (d *Document) Done() bool { return d.cursor >= len(d.lines) }

// LastDelivered returns the text most recently handed to the clipboard.
func (d *Document) LastDelivered() string { return d.lastDelivered }

// Advance moves the cursor to next. The cursor never moves backwards or
// past the end.
func (d *Document) Advance(next int) error {
	if next < d.cursor || next > len(d.lines) {
		return fmt.Errorf("cursor move %d -> %d out of range [%d, %d]", d.cursor, next, d.cursor, len(d.lines))
	}
	d.cursor = next
	return nil
}

// Record replaces the last delivered text.
func (d *Document) Record(text string) {
	d.lastDelivered = text
}
