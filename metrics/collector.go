// Package metrics collects per-session transfer counters.
//
// The Collector is a leaf package with no internal dependencies. It is
// written to by the transfer orchestrator and read once at session end for
// logging and the --summary report.
package metrics

import (
	"sync"
	"time"
)

// Snapshot is an immutable point-in-time view of the session counters.
type Snapshot struct {
	// Interaction
	Prompts          int64 `json:"prompts" yaml:"prompts"`
	InvalidDecisions int64 `json:"invalid_decisions" yaml:"invalid_decisions"`

	// Delivery
	FragmentsDelivered int64            `json:"fragments_delivered" yaml:"fragments_delivered"`
	UnitsDelivered     int64            `json:"units_delivered" yaml:"units_delivered"`
	Replays            int64            `json:"replays" yaml:"replays"`
	DeliveredByKind    map[string]int64 `json:"delivered_by_kind" yaml:"delivered_by_kind"`
	FooterDelivered    bool             `json:"footer_delivered" yaml:"footer_delivered"`

	// Clipboard
	ClipboardWrites   int64 `json:"clipboard_writes" yaml:"clipboard_writes"`
	ClipboardFailures int64 `json:"clipboard_failures" yaml:"clipboard_failures"`

	// Outcome, empty until the session ends
	Reason     string `json:"reason,omitempty" yaml:"reason,omitempty"`
	QuitFrom   string `json:"quit_from,omitempty" yaml:"quit_from,omitempty"`
	DurationMS int64  `json:"duration_ms" yaml:"duration_ms"`

	// Dimensions (informational, set at construction)
	SessionID string `json:"session_id" yaml:"session_id"`
	Unit      string `json:"unit" yaml:"unit"`
	MaxUnits  int    `json:"max_units" yaml:"max_units"`
	Backend   string `json:"clipboard_backend" yaml:"clipboard_backend"`
}

// Collector accumulates counters during a single session.
// Thread-safe via sync.Mutex. All methods are nil-receiver safe.
type Collector struct {
	mu sync.Mutex

	prompts          int64
	invalidDecisions int64

	fragmentsDelivered int64
	unitsDelivered     int64
	replays            int64
	deliveredByKind    map[string]int64
	footerDelivered    bool

	clipboardWrites   int64
	clipboardFailures int64

	reason   string
	quitFrom string
	duration time.Duration

	sessionID string
	unit      string
	maxUnits  int
	backend   string
}

// NewCollector creates a Collector with dimension labels.
func NewCollector(sessionID, unit string, maxUnits int, backend string) *Collector {
	return &Collector{
		deliveredByKind: make(map[string]int64),
		sessionID:       sessionID,
		unit:            unit,
		maxUnits:        maxUnits,
		backend:         backend,
	}
}

// IncPrompt records a prompt shown to the user.
func (c *Collector) IncPrompt() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.prompts++
	c.mu.Unlock()
}

// IncInvalidDecision records input that had to be re-prompted.
func (c *Collector) IncInvalidDecision() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.invalidDecisions++
	c.mu.Unlock()
}

// RecordFragment records a newly delivered fragment of the given size.
func (c *Collector) RecordFragment(units int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.fragmentsDelivered++
	c.unitsDelivered += int64(units)
	c.deliveredByKind["fragment"]++
	c.mu.Unlock()
}

// RecordReplay records a re-delivery of the previous content.
func (c *Collector) RecordReplay() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.replays++
	c.deliveredByKind["replay"]++
	c.mu.Unlock()
}

// RecordHeader records delivery of the source header.
func (c *Collector) RecordHeader() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.deliveredByKind["header"]++
	c.mu.Unlock()
}

// RecordFooter records delivery of the source footer.
func (c *Collector) RecordFooter() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.footerDelivered = true
	c.deliveredByKind["footer"]++
	c.mu.Unlock()
}

// IncClipboardWrite records a successful clipboard write, including clears.
func (c *Collector) IncClipboardWrite() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.clipboardWrites++
	c.mu.Unlock()
}

// IncClipboardFailure records a failed clipboard write.
func (c *Collector) IncClipboardFailure() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.clipboardFailures++
	c.mu.Unlock()
}

// RecordEnd records how the session ended and how long it ran.
func (c *Collector) RecordEnd(reason, quitFrom string, d time.Duration) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.reason = reason
	c.quitFrom = quitFrom
	c.duration = d
	c.mu.Unlock()
}

// Snapshot returns a copy of the current counters.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	byKind := make(map[string]int64, len(c.deliveredByKind))
	for k, v := range c.deliveredByKind {
		byKind[k] = v
	}

	return Snapshot{
		Prompts:          c.prompts,
		InvalidDecisions: c.invalidDecisions,

		FragmentsDelivered: c.fragmentsDelivered,
		UnitsDelivered:     c.unitsDelivered,
		Replays:            c.replays,
		DeliveredByKind:    byKind,
		FooterDelivered:    c.footerDelivered,

		ClipboardWrites:   c.clipboardWrites,
		ClipboardFailures: c.clipboardFailures,

		Reason:     c.reason,
		QuitFrom:   c.quitFrom,
		DurationMS: c.duration.Milliseconds(),

		SessionID: c.sessionID,
		Unit:      c.unit,
		MaxUnits:  c.maxUnits,
		Backend:   c.backend,
	}
}

// Fields flattens s for structured logging.
func (s Snapshot) Fields() map[string]any {
	return map[string]any{
		"prompts":             s.Prompts,
		"invalid_decisions":   s.InvalidDecisions,
		"fragments_delivered": s.FragmentsDelivered,
		"units_delivered":     s.UnitsDelivered,
		"replays":             s.Replays,
		"footer_delivered":    s.FooterDelivered,
		"clipboard_writes":    s.ClipboardWrites,
		"clipboard_failures":  s.ClipboardFailures,
		"duration_ms":         s.DurationMS,
	}
}
