package document

import "strings"

// Fragment is a run of whole lines [Start, Next) packed under the budget.
type Fragment struct {
	Text  string
	Units int
	Start int
	Next  int
}

// Lines returns the number of lines in the fragment.
func (f Fragment) Lines() int { return f.Next - f.Start }

// Empty reports whether the fragment holds no lines.
func (f Fragment) Empty() bool { return f.Next == f.Start }

// Build packs the longest run of whole lines starting at start whose
// total size stays within the budget.
//
// If the first line alone exceeds the budget, OversizeForce returns that
// line by itself and OversizeStrict returns an empty fragment; see Stuck.
func (d *Document) Build(start int) Fragment {
	if start < 0 {
		start = 0
	}
	if start >= len(d.lines) {
		return Fragment{Start: start, Next: start}
	}

	if first := d.lineUnits[start]; first > d.maxUnits {
		if d.oversize == OversizeStrict {
			return Fragment{Start: start, Next: start}
		}
		return Fragment{Text: d.lines[start], Units: first, Start: start, Next: start + 1}
	}

	var b strings.Builder
	used := 0
	idx := start
	for idx < len(d.lines) {
		u := d.lineUnits[idx]
		if used+u > d.maxUnits {
			break
		}
		b.WriteString(d.lines[idx])
		used += u
		idx++
	}

	return Fragment{Text: b.String(), Units: used, Start: start, Next: idx}
}

// Stuck reports whether f can never make progress: it is empty although
// lines remain at its start.
func (d *Document) Stuck(f Fragment) bool {
	return f.Empty() && f.Start < len(d.lines)
}

// Plan packs the whole document from the first line. It stops at the first
// stuck fragment, which is returned as the last element.
func (d *Document) Plan() []Fragment {
	var plan []Fragment
	for cursor := 0; cursor < len(d.lines); {
		f := d.Build(cursor)
		plan = append(plan, f)
		if f.Empty() {
			break
		}
		cursor = f.Next
	}
	return plan
}
