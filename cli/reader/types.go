// Package reader shapes read-only CLI views from documents and journals.
//
// The same response values feed json/table/yaml rendering and the TUI, so
// no view carries data the others cannot show.
package reader

import "time"

// PlanItem is one planned fragment.
type PlanItem struct {
	Index             int     `json:"index" yaml:"index"`
	FirstLine         int     `json:"first_line" yaml:"first_line"`
	LastLine          int     `json:"last_line" yaml:"last_line"`
	Units             int     `json:"units" yaml:"units"`
	Percent           float64 `json:"percent" yaml:"percent"`
	Cumulative        int     `json:"cumulative" yaml:"cumulative"`
	CumulativePercent float64 `json:"cumulative_percent" yaml:"cumulative_percent"`
	Oversize          bool    `json:"oversize" yaml:"oversize"`
	Preview           string  `json:"preview" yaml:"preview"`

	// Text is the full fragment, shown only in the TUI detail pane.
	Text string `json:"-" yaml:"-"`
}

// PlanResponse is the dry-run fragment plan of a document.
type PlanResponse struct {
	Source     string     `json:"source" yaml:"source"`
	Encoding   string     `json:"encoding" yaml:"encoding"`
	Unit       string     `json:"unit" yaml:"unit"`
	MaxUnits   int        `json:"max_units" yaml:"max_units"`
	Oversize   string     `json:"oversize" yaml:"oversize"`
	Lines      int        `json:"lines" yaml:"lines"`
	TotalUnits int        `json:"total_units" yaml:"total_units"`
	Fragments  []PlanItem `json:"fragments" yaml:"fragments"`
}

// JournalItem is one journal record as displayed.
type JournalItem struct {
	Seq     int64     `json:"seq" yaml:"seq"`
	Time    time.Time `json:"time" yaml:"time"`
	Session string    `json:"session_id" yaml:"session_id"`
	Type    string    `json:"type" yaml:"type"`
	Lines   string    `json:"lines,omitempty" yaml:"lines,omitempty"`
	Units   int       `json:"units" yaml:"units"`
	Length  int       `json:"length" yaml:"length"`
	Digest  string    `json:"digest,omitempty" yaml:"digest,omitempty"`
	Detail  string    `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// JournalResponse lists journal records.
type JournalResponse struct {
	Path      string        `json:"path" yaml:"path"`
	Sessions  int           `json:"sessions" yaml:"sessions"`
	Truncated bool          `json:"truncated" yaml:"truncated"`
	Records   []JournalItem `json:"records" yaml:"records"`
}

// VersionResponse reports build information.
type VersionResponse struct {
	Version       string `json:"version" yaml:"version"`
	Commit        string `json:"commit" yaml:"commit"`
	JournalFormat string `json:"journal_format" yaml:"journal_format"`
	GoVersion     string `json:"go_version" yaml:"go_version"`
}
