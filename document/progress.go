package document

import (
	"fmt"
	"strconv"
)

// Progress is the user-facing accounting for one pending fragment.
type Progress struct {
	FragmentUnits     int
	FragmentPercent   float64
	Consumed          int
	Total             int
	CumulativePercent float64
}

// ConsumedBefore returns the size of lines [0, cursor).
func (d *Document) ConsumedBefore(cursor int) int {
	if cursor > len(d.lineUnits) {
		cursor = len(d.lineUnits)
	}
	sum := 0
	for _, u := range d.lineUnits[:max(cursor, 0)] {
		sum += u
	}
	return sum
}

// Progress computes accounting for f as if it were delivered next.
func (d *Document) Progress(f Fragment) Progress {
	consumed := d.ConsumedBefore(f.Start) + f.Units
	return Progress{
		FragmentUnits:     f.Units,
		FragmentPercent:   Percent(f.Units, d.totalUnits),
		Consumed:          consumed,
		Total:             d.totalUnits,
		CumulativePercent: Percent(consumed, d.totalUnits),
	}
}

// Prompt renders the transfer prompt for p.
func (p Progress) Prompt(unit UnitKind) string {
	return fmt.Sprintf("+%s [%s] (%.1f %%), %s / %s (%.1f %%): Y(es)/P(rev)/Q(uit) [y]: ",
		GroupDigits(p.FragmentUnits), unit,
		p.FragmentPercent,
		GroupDigits(p.Consumed), GroupDigits(p.Total),
		p.CumulativePercent,
	)
}

// Percent returns 100*part/whole, or 0 when whole is 0.
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) * 100 / float64(whole)
}

// GroupDigits formats n with '_' between every three digits,
// e.g. 10240 -> "10_240".
func GroupDigits(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if n < 0 {
		neg = true
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	out := make([]byte, 0, len(s)+len(s)/3+1)
	if neg {
		out = append(out, '-')
	}
	head := len(s) % 3
	if head == 0 {
		head = 3
	}
	out = append(out, s[:head]...)
	for i := head; i < len(s); i += 3 {
		out = append(out, '_')
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
