package document

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// UnitKind selects how line sizes and the fragment budget are measured.
type UnitKind int

const (
	// UnitChars counts Unicode scalar values.
	UnitChars UnitKind = iota
	// UnitBytes counts UTF-16 code units times two, the size of the text
	// in the clipboard's wide-character form.
	UnitBytes
)

// String returns the label shown in prompts.
func (u UnitKind) String() string {
	switch u {
	case UnitChars:
		return "chars"
	case UnitBytes:
		return "bytes"
	default:
		return fmt.Sprintf("unit(%d)", int(u))
	}
}

// ParseUnitKind parses "chars" or "bytes" (case-insensitive).
// An empty string yields UnitChars.
func ParseUnitKind(s string) (UnitKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "chars", "char", "c":
		return UnitChars, nil
	case "bytes", "byte", "b":
		return UnitBytes, nil
	default:
		return UnitChars, fmt.Errorf("invalid unit: %q (must be chars or bytes)", s)
	}
}

// Measure returns the size of line under unit.
func Measure(line string, unit UnitKind) int {
	if unit == UnitBytes {
		return utf16Len(line) * 2
	}
	return utf8.RuneCountInString(line)
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}

// OversizePolicy decides what Build does when the first candidate line
// alone is larger than the budget.
type OversizePolicy int

const (
	// OversizeForce delivers the oversized line as a fragment of its own.
	OversizeForce OversizePolicy = iota
	// OversizeStrict yields an empty, stuck fragment.
	OversizeStrict
)

// String returns the config spelling of the policy.
func (p OversizePolicy) String() string {
	switch p {
	case OversizeForce:
		return "force"
	case OversizeStrict:
		return "strict"
	default:
		return fmt.Sprintf("oversize(%d)", int(p))
	}
}

// ParseOversizePolicy parses "force" or "strict". Empty yields OversizeForce.
func ParseOversizePolicy(s string) (OversizePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "force":
		return OversizeForce, nil
	case "strict":
		return OversizeStrict, nil
	default:
		return OversizeForce, fmt.Errorf("invalid oversize policy: %q (must be force or strict)", s)
	}
}
