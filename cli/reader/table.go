package reader

import (
	"fmt"
	"strconv"

	"github.com/pithecene-io/clipfrag/document"
)

// Caption summarizes the plan above its table.
func (p *PlanResponse) Caption() string {
	source := p.Source
	if source == "" {
		source = "(stdin)"
	}
	return fmt.Sprintf("%s: %s, %d lines, %s %s, max %s per fragment, %s",
		source, p.Encoding, p.Lines,
		document.GroupDigits(p.TotalUnits), p.Unit,
		document.GroupDigits(p.MaxUnits), p.Oversize)
}

// Table lays out one row per fragment.
func (p *PlanResponse) Table() ([]string, [][]string) {
	header := []string{"#", "LINES", "UNITS", "%", "CUMULATIVE", "CUM %", "PREVIEW"}
	rows := make([][]string, 0, len(p.Fragments))
	for _, f := range p.Fragments {
		units := document.GroupDigits(f.Units)
		if f.Oversize {
			units += "!"
		}
		rows = append(rows, []string{
			strconv.Itoa(f.Index),
			fmt.Sprintf("%d-%d", f.FirstLine, f.LastLine),
			units,
			fmt.Sprintf("%.1f", f.Percent),
			document.GroupDigits(f.Cumulative),
			fmt.Sprintf("%.1f", f.CumulativePercent),
			f.Preview,
		})
	}
	return header, rows
}

// Caption summarizes the journal above its table.
func (j *JournalResponse) Caption() string {
	s := fmt.Sprintf("%s: %d records, %d sessions", j.Path, len(j.Records), j.Sessions)
	if j.Truncated {
		s += " (truncated)"
	}
	return s
}

// Table lays out one row per record.
func (j *JournalResponse) Table() ([]string, [][]string) {
	header := []string{"SEQ", "TIME", "SESSION", "TYPE", "LINES", "UNITS", "LENGTH", "DIGEST", "DETAIL"}
	rows := make([][]string, 0, len(j.Records))
	for _, r := range j.Records {
		rows = append(rows, []string{
			strconv.FormatInt(r.Seq, 10),
			r.Time.Local().Format("2006-01-02 15:04:05"),
			r.Session,
			r.Type,
			r.Lines,
			document.GroupDigits(r.Units),
			document.GroupDigits(r.Length),
			r.Digest,
			r.Detail,
		})
	}
	return header, rows
}
