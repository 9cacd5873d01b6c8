package reader

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/pithecene-io/clipfrag/document"
	"github.com/pithecene-io/clipfrag/transfer"
)

// PreviewWidth is the display width of plan previews.
const PreviewWidth = 40

// Plan packs doc without delivering anything. A stuck fragment under the
// strict policy returns the items planned so far with a transfer.ErrStuck
// error.
func Plan(doc *document.Document, encoding string) (*PlanResponse, error) {
	resp := &PlanResponse{
		Source:     doc.Source(),
		Encoding:   encoding,
		Unit:       doc.Unit().String(),
		MaxUnits:   doc.MaxUnits(),
		Oversize:   doc.Oversize().String(),
		Lines:      doc.Len(),
		TotalUnits: doc.TotalUnits(),
		Fragments:  []PlanItem{},
	}

	for i, f := range doc.Plan() {
		if doc.Stuck(f) {
			return resp, transfer.StuckError(doc, f.Start)
		}
		p := doc.Progress(f)
		resp.Fragments = append(resp.Fragments, PlanItem{
			Index:             i + 1,
			FirstLine:         f.Start + 1,
			LastLine:          f.Next,
			Units:             f.Units,
			Percent:           round1(p.FragmentPercent),
			Cumulative:        p.Consumed,
			CumulativePercent: round1(p.CumulativePercent),
			Oversize:          f.Units > doc.MaxUnits(),
			Preview:           Preview(f.Text, PreviewWidth),
			Text:              f.Text,
		})
	}
	return resp, nil
}

// Preview returns the first non-blank line of text, truncated to width
// display cells.
func Preview(text string, width int) string {
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(strings.ReplaceAll(line, "\t", " "))
		if line != "" {
			return runewidth.Truncate(line, width, "…")
		}
	}
	return ""
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
