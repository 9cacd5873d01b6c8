package transfer

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/pithecene-io/clipfrag/clipboard"
	"github.com/pithecene-io/clipfrag/document"
	"github.com/pithecene-io/clipfrag/journal"
	"github.com/pithecene-io/clipfrag/metrics"
)

// scriptReader replays canned input lines, then returns err (io.EOF by
// default).
type scriptReader struct {
	lines []string
	read  int
	err   error
}

func (s *scriptReader) ReadLine() (string, error) {
	if s.read >= len(s.lines) {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
	line := s.lines[s.read]
	s.read++
	return line, nil
}

type memJournal struct {
	records []journal.Record
	err     error
}

func (m *memJournal) Append(rec journal.Record) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *memJournal) types() []journal.RecordType {
	out := make([]journal.RecordType, len(m.records))
	for i, r := range m.records {
		out[i] = r.Type
	}
	return out
}

type harness struct {
	orch    *Orchestrator
	doc     *document.Document
	sink    *clipboard.MemorySink
	input   *scriptReader
	out     *bytes.Buffer
	journal *memJournal
	metrics *metrics.Collector
}

type harnessOpts struct {
	source   string
	oversize document.OversizePolicy
	header   bool
	footer   FooterMode
	messages Messages
}

func newHarness(t *testing.T, text string, maxUnits int, opts harnessOpts, inputs ...string) *harness {
	t.Helper()
	doc, err := document.New(text, document.Options{
		Unit:     document.UnitChars,
		MaxUnits: maxUnits,
		Oversize: opts.oversize,
		Source:   opts.source,
	})
	if err != nil {
		t.Fatalf("document.New: %v", err)
	}
	h := &harness{
		doc:     doc,
		sink:    clipboard.NewMemorySink(),
		input:   &scriptReader{lines: inputs},
		out:     &bytes.Buffer{},
		journal: &memJournal{},
		metrics: metrics.NewCollector("sess", "chars", maxUnits, "memory"),
	}
	h.orch, err = New(&Config{
		Document:  doc,
		Sink:      h.sink,
		Input:     h.input,
		Output:    h.out,
		Messages:  opts.messages,
		Header:    opts.header,
		Footer:    opts.footer,
		Journal:   h.journal,
		Collector: h.metrics,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return h
}

func (h *harness) run(t *testing.T) *Result {
	t.Helper()
	res, err := h.orch.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if h.orch.Phase() != PhaseTerminated {
		t.Errorf("phase after Run = %v, want terminated", h.orch.Phase())
	}
	return res
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRun_AnonymousFullTransfer(t *testing.T) {
	// sizes [3,3,3], budget 4: one line per fragment
	h := newHarness(t, "aa\nbb\ncc\n", 4, harnessOpts{header: true}, "", "y", "YES", "")
	res := h.run(t)

	want := []string{"aa\n", "bb\n", "cc\n", ""}
	if !equalStrings(h.sink.Writes, want) {
		t.Errorf("writes = %q, want %q", h.sink.Writes, want)
	}
	if res.Reason != ReasonDone || res.QuitFrom != PhaseExiting {
		t.Errorf("result = %+v, want done from exiting", res)
	}
	if res.Cursor != 3 || res.Lines != 3 {
		t.Errorf("cursor/lines = %d/%d, want 3/3", res.Cursor, res.Lines)
	}

	out := h.out.String()
	if !strings.HasPrefix(out, "+3 [chars] (33.3 %), 3 / 9 (33.3 %): Y(es)/P(rev)/Q(uit) [y]: ") {
		t.Errorf("first prompt = %q", out)
	}
	if !strings.Contains(out, "+3 [chars] (33.3 %), 9 / 9 (100.0 %)") {
		t.Errorf("last transfer prompt missing: %q", out)
	}
	if strings.Contains(out, FooterPrompt) {
		t.Error("anonymous input must skip the footer prompt")
	}
	if !strings.HasSuffix(out, ExitPrompt) {
		t.Errorf("output should end at the exit prompt: %q", out)
	}
}

func TestRun_NamedSourceWithHeaderAndFooter(t *testing.T) {
	h := newHarness(t, "1234\n6789\nab\n", 10, harnessOpts{source: "notes.txt", header: true},
		"p", // replay header before any fragment
		"y", // [5,5]
		"y", // [3]
		"y", // footer
		"p", // replay footer
		"q",
	)
	res := h.run(t)

	header := "The following is the content of the file: notes.txt\n---\n"
	footer := "That was the content of the file: notes.txt\n"
	want := []string{header, header, "1234\n6789\n", "ab\n", footer, footer, ""}
	if !equalStrings(h.sink.Writes, want) {
		t.Errorf("writes = %q, want %q", h.sink.Writes, want)
	}
	if res.Reason != ReasonDone {
		t.Errorf("Reason = %v, want done", res.Reason)
	}
	if strings.Count(h.out.String(), FooterPrompt) != 1 {
		t.Errorf("footer prompt count: %q", h.out.String())
	}

	wantTypes := []journal.RecordType{
		journal.TypeSessionStart, journal.TypeHeader, journal.TypeReplay,
		journal.TypeDeliver, journal.TypeDeliver, journal.TypeFooter,
		journal.TypeReplay, journal.TypeClear, journal.TypeSessionEnd,
	}
	got := h.journal.types()
	if len(got) != len(wantTypes) {
		t.Fatalf("journal types = %v, want %v", got, wantTypes)
	}
	for i := range wantTypes {
		if got[i] != wantTypes[i] {
			t.Errorf("journal[%d] = %s, want %s", i, got[i], wantTypes[i])
		}
	}
	if d := h.journal.records[3]; d.Start != 0 || d.Next != 2 || d.Units != 10 || d.Digest != journal.Digest("1234\n6789\n") {
		t.Errorf("deliver record = %+v", d)
	}
	if end := h.journal.records[8]; end.Reason != "done" {
		t.Errorf("session_end reason = %q", end.Reason)
	}

	s := h.metrics.Snapshot()
	if s.FragmentsDelivered != 2 || s.UnitsDelivered != 13 || s.Replays != 2 || !s.FooterDelivered {
		t.Errorf("metrics = %+v", s)
	}
	if s.Prompts != 6 {
		t.Errorf("Prompts = %d, want 6", s.Prompts)
	}
}

func TestRun_PrevAtStartKeepsCursor(t *testing.T) {
	h := newHarness(t, "aa\nbb\n", 100, harnessOpts{source: "f.txt", header: true}, "prev", "quit")
	res := h.run(t)

	if res.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", res.Cursor)
	}
	if h.sink.Writes[0] != h.sink.Writes[1] {
		t.Errorf("replay %q differs from header %q", h.sink.Writes[1], h.sink.Writes[0])
	}
	if res.Reason != ReasonQuit || res.QuitFrom != PhaseTransferring {
		t.Errorf("result = %+v, want quit from transferring", res)
	}
}

func TestRun_PrevWithoutHeaderReplaysEmpty(t *testing.T) {
	h := newHarness(t, "aa\n", 100, harnessOpts{}, "p", "q")
	h.run(t)

	want := []string{"", ""}
	if !equalStrings(h.sink.Writes, want) {
		t.Errorf("writes = %q, want %q", h.sink.Writes, want)
	}
}

func TestRun_QuitAtEveryPrompt(t *testing.T) {
	tests := []struct {
		name       string
		inputs     []string
		wantReason Reason
		wantFrom   Phase
		wantWrites int
	}{
		{"transferring", []string{"q"}, ReasonQuit, PhaseTransferring, 2},
		{"mid transfer", []string{"y", "Q"}, ReasonQuit, PhaseTransferring, 3},
		{"finalizing", []string{"y", "y", "quit"}, ReasonQuit, PhaseFinalizing, 4},
		{"exiting", []string{"y", "y", "y", "q"}, ReasonDone, PhaseExiting, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// extra inputs must never be consumed
			inputs := append(append([]string{}, tt.inputs...), "y", "y")
			h := newHarness(t, "aa\nbb\n", 3, harnessOpts{source: "f.txt", header: true}, inputs...)
			res := h.run(t)

			if res.Reason != tt.wantReason || res.QuitFrom != tt.wantFrom {
				t.Errorf("result = %+v", res)
			}
			if h.sink.Current() != "" {
				t.Errorf("clipboard not cleared: %q", h.sink.Current())
			}
			if len(h.sink.Writes) != tt.wantWrites {
				t.Errorf("writes = %q, want %d", h.sink.Writes, tt.wantWrites)
			}
			if h.input.read != len(tt.inputs) {
				t.Errorf("read %d inputs, want %d (no prompts after quit)", h.input.read, len(tt.inputs))
			}
			snap := h.metrics.Snapshot()
			if snap.Reason != string(tt.wantReason) || snap.QuitFrom != tt.wantFrom.String() {
				t.Errorf("recorded outcome = %q/%q, want %v/%v", snap.Reason, snap.QuitFrom, tt.wantReason, tt.wantFrom)
			}
		})
	}
}

func TestRun_InvalidInputReprompts(t *testing.T) {
	h := newHarness(t, "aa\n", 100, harnessOpts{}, "maybe", "y", "yes", "")
	res := h.run(t)

	out := h.out.String()
	if !strings.Contains(out, invalidFull+"\n") {
		t.Errorf("missing transfer corrective message: %q", out)
	}
	if !strings.Contains(out, invalidExit+"\n") {
		t.Errorf("yes at the exit prompt should be rejected: %q", out)
	}
	want := []string{"aa\n", ""}
	if !equalStrings(h.sink.Writes, want) {
		t.Errorf("writes = %q, want %q", h.sink.Writes, want)
	}
	if res.Reason != ReasonDone {
		t.Errorf("Reason = %v", res.Reason)
	}
	if got := h.metrics.Snapshot().InvalidDecisions; got != 2 {
		t.Errorf("InvalidDecisions = %d, want 2", got)
	}
}

func TestRun_EOFQuits(t *testing.T) {
	h := newHarness(t, "aa\nbb\n", 3, harnessOpts{}, "y")
	res := h.run(t)

	if res.Reason != ReasonQuit || res.Cursor != 1 {
		t.Errorf("result = %+v, want quit at cursor 1", res)
	}
	if h.sink.Current() != "" {
		t.Error("clipboard should be cleared on EOF")
	}
}

func TestRun_EmptyDocument(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		h := newHarness(t, "", 10, harnessOpts{}, "")
		res := h.run(t)
		if res.QuitFrom != PhaseExiting || res.Reason != ReasonDone {
			t.Errorf("result = %+v", res)
		}
		if strings.Contains(h.out.String(), "Y(es)") {
			t.Errorf("no transfer prompt expected: %q", h.out.String())
		}
	})
	t.Run("named", func(t *testing.T) {
		h := newHarness(t, "", 10, harnessOpts{source: "empty.txt", header: true}, "y", "q")
		res := h.run(t)
		if !strings.HasPrefix(h.out.String(), FooterPrompt) {
			t.Errorf("first prompt = %q, want footer prompt", h.out.String())
		}
		if res.Reason != ReasonDone {
			t.Errorf("result = %+v", res)
		}
	})
}

func TestRun_FooterModes(t *testing.T) {
	t.Run("always uses unnamed footer", func(t *testing.T) {
		h := newHarness(t, "aa\n", 10, harnessOpts{footer: FooterAlways}, "y", "y", "q")
		h.run(t)
		if !equalStrings(h.sink.Writes, []string{"aa\n", "That was the content of the input data.\n", ""}) {
			t.Errorf("writes = %q", h.sink.Writes)
		}
	})
	t.Run("never skips footer", func(t *testing.T) {
		h := newHarness(t, "aa\n", 10, harnessOpts{source: "f.txt", header: true, footer: FooterNever}, "y", "q")
		h.run(t)
		if strings.Contains(h.out.String(), FooterPrompt) {
			t.Error("footer prompt shown with FooterNever")
		}
	})
	t.Run("no header", func(t *testing.T) {
		h := newHarness(t, "aa\n", 10, harnessOpts{source: "f.txt", header: false, footer: FooterNever}, "p", "q")
		h.run(t)
		if h.sink.Writes[0] != "" {
			t.Errorf("header delivered despite being disabled: %q", h.sink.Writes)
		}
	})
}

func TestRun_CustomMessages(t *testing.T) {
	msgs := Messages{Header: "BEGIN {{.Source}}\n", Footer: "END {{.Source}}\n"}
	h := newHarness(t, "aa\n", 10, harnessOpts{source: "x.md", header: true, messages: msgs}, "y", "y", "q")
	h.run(t)
	want := []string{"BEGIN x.md\n", "aa\n", "END x.md\n", ""}
	if !equalStrings(h.sink.Writes, want) {
		t.Errorf("writes = %q, want %q", h.sink.Writes, want)
	}
}

func TestRun_OversizeForce(t *testing.T) {
	h := newHarness(t, "abcdefgh\nab\n", 4, harnessOpts{oversize: document.OversizeForce}, "y", "y", "q")
	h.run(t)
	if h.sink.Writes[0] != "abcdefgh\n" {
		t.Errorf("oversized line not force-delivered: %q", h.sink.Writes)
	}
	if !strings.HasPrefix(h.out.String(), "+9 [chars]") {
		t.Errorf("prompt = %q", h.out.String())
	}
}

func TestRun_OversizeStrictIsStuck(t *testing.T) {
	h := newHarness(t, "ab\nabcdefgh\n", 4, harnessOpts{oversize: document.OversizeStrict}, "y", "y")
	_, err := h.orch.Run()
	if !errors.Is(err, ErrStuck) {
		t.Fatalf("err = %v, want ErrStuck", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error should name the line: %v", err)
	}
	if h.sink.Current() != "" {
		t.Error("clipboard should be cleared when stuck")
	}
	if h.input.read != 1 {
		t.Errorf("read %d inputs, want 1", h.input.read)
	}
	if last := h.journal.records[len(h.journal.records)-1]; last.Type != journal.TypeSessionEnd || last.Reason != "error" {
		t.Errorf("last journal record = %+v", last)
	}
	if snap := h.metrics.Snapshot(); snap.Reason != "error" || snap.QuitFrom != "transferring" {
		t.Errorf("recorded outcome = %q/%q, want error/transferring", snap.Reason, snap.QuitFrom)
	}
}

func TestRun_ClearFailure(t *testing.T) {
	h := newHarness(t, "aa\n", 10, harnessOpts{}, "q")
	boom := errors.New("clipboard owner gone")
	h.sink.FailOn = func(text string) error {
		if text == "" {
			return boom
		}
		return nil
	}

	_, err := h.orch.Run()
	var cerr *clipboard.Error
	if !errors.As(err, &cerr) || !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped clipboard error", err)
	}
	if cerr.Op != "clear" {
		t.Errorf("Op = %q, want clear", cerr.Op)
	}
	snap := h.metrics.Snapshot()
	if snap.ClipboardFailures != 1 || snap.ClipboardWrites != 0 {
		t.Errorf("writes/failures = %d/%d, want 0/1", snap.ClipboardWrites, snap.ClipboardFailures)
	}
	for _, rec := range h.journal.records {
		if rec.Type == journal.TypeClear {
			t.Error("a failed clear must not be journaled")
		}
	}
}

func TestRun_SinkFailure(t *testing.T) {
	h := newHarness(t, "aa\n", 10, harnessOpts{}, "y")
	boom := errors.New("no display")
	h.sink.FailOn = func(text string) error {
		if text == "aa\n" {
			return boom
		}
		return nil
	}

	_, err := h.orch.Run()
	var cerr *clipboard.Error
	if !errors.As(err, &cerr) || !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped clipboard error", err)
	}
	if h.doc.Cursor() != 0 {
		t.Errorf("cursor advanced after failed write: %d", h.doc.Cursor())
	}
	if got := h.metrics.Snapshot().ClipboardFailures; got != 1 {
		t.Errorf("ClipboardFailures = %d, want 1", got)
	}
}

func TestRun_ReadFailure(t *testing.T) {
	h := newHarness(t, "aa\n", 10, harnessOpts{})
	h.input.err = errors.New("tty gone")
	if _, err := h.orch.Run(); err == nil || !strings.Contains(err.Error(), "read decision") {
		t.Errorf("err = %v, want read decision error", err)
	}
}

func TestRun_JournalFailure(t *testing.T) {
	h := newHarness(t, "aa\n", 10, harnessOpts{})
	h.journal.err = errors.New("disk full")
	if _, err := h.orch.Run(); err == nil || !strings.Contains(err.Error(), "journal session_start") {
		t.Errorf("err = %v, want journal error", err)
	}
}

func TestNew_Validation(t *testing.T) {
	doc, _ := document.New("a", document.Options{MaxUnits: 1})
	sink := clipboard.NewMemorySink()
	in := &scriptReader{}

	tests := []struct {
		name string
		cfg  Config
	}{
		{"no document", Config{Sink: sink, Input: in}},
		{"no sink", Config{Document: doc, Input: in}},
		{"no input", Config{Document: doc, Sink: sink}},
		{"bad template", Config{Document: doc, Sink: sink, Input: in, Messages: Messages{Header: "{{.Source"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(&tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseDecision(t *testing.T) {
	tests := []struct {
		in   string
		def  Decision
		want Decision
	}{
		{"", DecisionYes, DecisionYes},
		{"  ", DecisionQuit, DecisionQuit},
		{"y", DecisionQuit, DecisionYes},
		{"Yes", DecisionQuit, DecisionYes},
		{" P ", DecisionYes, DecisionPrev},
		{"prev", DecisionYes, DecisionPrev},
		{"q", DecisionYes, DecisionQuit},
		{"QUIT", DecisionYes, DecisionQuit},
		{"ye", DecisionYes, DecisionInvalid},
		{"n", DecisionYes, DecisionInvalid},
	}
	for _, tt := range tests {
		if got := ParseDecision(tt.in, tt.def); got != tt.want {
			t.Errorf("ParseDecision(%q, %v) = %v, want %v", tt.in, tt.def, got, tt.want)
		}
	}
}

func TestTransitions_Complete(t *testing.T) {
	for _, p := range []Phase{PhaseTransferring, PhaseFinalizing, PhaseExiting} {
		for _, d := range []Decision{DecisionPrev, DecisionQuit} {
			if _, ok := transitions[transitionKey{p, d}]; !ok {
				t.Errorf("missing transition %v/%v", p, d)
			}
		}
		if _, ok := transitions[transitionKey{p, DecisionInvalid}]; ok {
			t.Errorf("invalid decision must not transition in %v", p)
		}
	}
	if _, ok := transitions[transitionKey{PhaseExiting, DecisionYes}]; ok {
		t.Error("yes must be rejected at the exit prompt")
	}
}
