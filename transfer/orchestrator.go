// Package transfer drives an interactive fragment-by-fragment clipboard
// transfer.
//
// The Orchestrator is a table-driven state machine over three prompting
// phases. Each prompt offers Yes, Prev or Quit; the table maps
// (phase, decision) to an action that writes the clipboard and returns the
// next phase. Quitting ends Run with a Result, never with a process exit.
package transfer

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pithecene-io/clipfrag/clipboard"
	"github.com/pithecene-io/clipfrag/document"
	"github.com/pithecene-io/clipfrag/journal"
	"github.com/pithecene-io/clipfrag/log"
	"github.com/pithecene-io/clipfrag/metrics"
	"github.com/pithecene-io/clipfrag/tty"
)

// ErrStuck is returned when the strict oversize policy meets a line larger
// than the budget. The clipboard is cleared before it is returned.
var ErrStuck = errors.New("line exceeds fragment budget")

// Prompt texts for the non-transfer phases.
const (
	FooterPrompt = "+footer prompt: Y(es)/P(rev)/Q(uit) [y]: "
	ExitPrompt   = "P(rev)/Q(uit) [q]: "

	invalidFull = "invalid input: enter Y(es), P(rev) or Q(uit)"
	invalidExit = "invalid input: enter P(rev) or Q(uit)"
)

// FooterMode selects when the finalizing phase runs.
type FooterMode int

const (
	// FooterAuto finalizes only documents with a source label.
	FooterAuto FooterMode = iota
	// FooterAlways finalizes every document, using the unnamed footer for
	// anonymous input.
	FooterAlways
	// FooterNever skips the finalizing phase.
	FooterNever
)

// Recorder receives journal records. *journal.Writer implements it.
type Recorder interface {
	Append(rec journal.Record) error
}

// Config configures an Orchestrator.
type Config struct {
	// Document is the text being transferred (required).
	Document *document.Document
	// Sink receives every delivery (required).
	Sink clipboard.Sink
	// Input supplies decisions (required).
	Input tty.LineReader
	// Output receives prompts and corrective messages. Defaults to io.Discard.
	Output io.Writer
	// Messages are the header and footer templates.
	Messages Messages
	// Header delivers the header message at Start for named documents.
	Header bool
	// Footer selects when the finalizing phase runs.
	Footer FooterMode
	// Journal records deliveries. Optional.
	Journal Recorder
	// Collector counts session activity. Optional; all methods are nil-safe.
	Collector *metrics.Collector
	// Logger receives structured session logs. Defaults to a no-op logger.
	Logger *log.Logger
}

// Result describes a finished session.
type Result struct {
	// Reason is how the session ended.
	Reason Reason
	// QuitFrom is the phase in which the user quit.
	QuitFrom Phase
	// Cursor is the next undelivered line at exit.
	Cursor int
	// Lines is the number of lines in the document.
	Lines int
	// Duration is the wall time from Start to termination.
	Duration time.Duration
}

// Orchestrator runs one transfer session. It is not safe for concurrent use.
type Orchestrator struct {
	doc      *document.Document
	sink     clipboard.Sink
	input    tty.LineReader
	prompter *tty.Prompter
	messages *compiledMessages
	config   *Config
	logger   *log.Logger

	phase     Phase
	started   bool
	startTime time.Time
	result    *Result
}

// New validates config and creates an Orchestrator.
func New(config *Config) (*Orchestrator, error) {
	if config.Document == nil {
		return nil, errors.New("document is required")
	}
	if config.Sink == nil {
		return nil, errors.New("clipboard sink is required")
	}
	if config.Input == nil {
		return nil, errors.New("input reader is required")
	}

	msgs, err := config.Messages.compile()
	if err != nil {
		return nil, err
	}

	out := config.Output
	if out == nil {
		out = io.Discard
	}
	logger := config.Logger
	if logger == nil {
		logger = log.Nop()
	}

	return &Orchestrator{
		doc:      config.Document,
		sink:     config.Sink,
		input:    config.Input,
		prompter: tty.NewPrompter(out),
		messages: msgs,
		config:   config,
		logger:   logger,
	}, nil
}

// Phase returns the current phase.
func (o *Orchestrator) Phase() Phase { return o.phase }

// Start opens the session: it journals the start and, for named documents
// with headers enabled, delivers the header. Run calls Start if needed.
func (o *Orchestrator) Start() error {
	if o.started {
		return nil
	}
	o.started = true
	o.startTime = time.Now()

	if err := o.record(journal.Record{Type: journal.TypeSessionStart, Source: o.doc.Source()}); err != nil {
		return err
	}

	o.logger.Info("session started", map[string]any{
		"lines":       o.doc.Len(),
		"total_units": o.doc.TotalUnits(),
		"oversize":    o.doc.Oversize().String(),
	})

	if o.config.Header && o.doc.HasSource() {
		header, err := o.messages.Header(o.doc.Source())
		if err != nil {
			return err
		}
		if err := o.deliver(header); err != nil {
			return err
		}
		o.config.Collector.RecordHeader()
		if err := o.record(journal.Record{Type: journal.TypeHeader}.WithContent(header)); err != nil {
			return err
		}
	}

	o.phase = PhaseTransferring
	if o.doc.Done() {
		o.phase = o.afterTransfer()
	}
	return nil
}

// Run prompts until the user quits or an error occurs.
func (o *Orchestrator) Run() (*Result, error) {
	if err := o.Start(); err != nil {
		return nil, err
	}

	for o.phase != PhaseTerminated {
		var frag document.Fragment
		prompt := FooterPrompt
		switch o.phase {
		case PhaseTransferring:
			frag = o.doc.Build(o.doc.Cursor())
			if o.doc.Stuck(frag) {
				return nil, o.stuck(frag.Start)
			}
			prompt = o.doc.Progress(frag).Prompt(o.doc.Unit())
		case PhaseExiting:
			prompt = ExitPrompt
		}

		o.config.Collector.IncPrompt()
		if err := o.prompter.Prompt(prompt); err != nil {
			return nil, fmt.Errorf("write prompt: %w", err)
		}

		line, err := o.input.ReadLine()
		var decision Decision
		switch {
		case errors.Is(err, io.EOF):
			// Closed terminal counts as quit.
			_ = o.prompter.Prompt("\n")
			decision = DecisionQuit
		case err != nil:
			return nil, fmt.Errorf("read decision: %w", err)
		default:
			decision = ParseDecision(line, defaultDecision(o.phase))
		}

		act, ok := transitions[transitionKey{o.phase, decision}]
		if !ok {
			o.config.Collector.IncInvalidDecision()
			msg := invalidFull
			if o.phase == PhaseExiting {
				msg = invalidExit
			}
			if err := o.prompter.Warn(msg); err != nil {
				return nil, fmt.Errorf("write prompt: %w", err)
			}
			continue
		}

		from := o.phase
		next, err := act(o, frag)
		if err != nil {
			return nil, err
		}
		if next != from {
			o.logger.Debug("phase changed", map[string]any{
				"from":     from.String(),
				"to":       next.String(),
				"decision": decision.String(),
			})
		}
		o.phase = next
	}

	return o.result, nil
}

type transitionKey struct {
	phase    Phase
	decision Decision
}

type action func(o *Orchestrator, frag document.Fragment) (Phase, error)

// transitions is the complete decision table. Missing entries are invalid
// input for that phase.
var transitions = map[transitionKey]action{
	{PhaseTransferring, DecisionYes}:  (*Orchestrator).deliverFragment,
	{PhaseTransferring, DecisionPrev}: (*Orchestrator).replay,
	{PhaseTransferring, DecisionQuit}: (*Orchestrator).quit,
	{PhaseFinalizing, DecisionYes}:    (*Orchestrator).deliverFooter,
	{PhaseFinalizing, DecisionPrev}:   (*Orchestrator).replay,
	{PhaseFinalizing, DecisionQuit}:   (*Orchestrator).quit,
	{PhaseExiting, DecisionPrev}:      (*Orchestrator).replay,
	{PhaseExiting, DecisionQuit}:      (*Orchestrator).quit,
}

func (o *Orchestrator) deliverFragment(frag document.Fragment) (Phase, error) {
	if err := o.deliver(frag.Text); err != nil {
		return o.phase, err
	}
	if err := o.doc.Advance(frag.Next); err != nil {
		return o.phase, err
	}
	o.config.Collector.RecordFragment(frag.Units)
	o.logger.Debug("fragment delivered", map[string]any{
		"start": frag.Start,
		"next":  frag.Next,
		"units": frag.Units,
	})

	rec := journal.Record{Type: journal.TypeDeliver, Start: frag.Start, Next: frag.Next, Units: frag.Units}
	if err := o.record(rec.WithContent(frag.Text)); err != nil {
		return o.phase, err
	}

	if o.doc.Done() {
		return o.afterTransfer(), nil
	}
	return PhaseTransferring, nil
}

func (o *Orchestrator) deliverFooter(document.Fragment) (Phase, error) {
	footer, err := o.messages.Footer(o.doc.Source())
	if err != nil {
		return o.phase, err
	}
	if err := o.deliver(footer); err != nil {
		return o.phase, err
	}
	o.config.Collector.RecordFooter()
	if err := o.record(journal.Record{Type: journal.TypeFooter}.WithContent(footer)); err != nil {
		return o.phase, err
	}
	return PhaseExiting, nil
}

// replay re-delivers the last delivered text unchanged. The phase and
// cursor are not affected.
func (o *Orchestrator) replay(document.Fragment) (Phase, error) {
	last := o.doc.LastDelivered()
	if err := o.write(last); err != nil {
		return o.phase, err
	}
	o.config.Collector.RecordReplay()
	o.logger.Debug("previous content replayed", map[string]any{"cursor": o.doc.Cursor()})
	if err := o.record(journal.Record{Type: journal.TypeReplay}.WithContent(last)); err != nil {
		return o.phase, err
	}
	return o.phase, nil
}

func (o *Orchestrator) quit(document.Fragment) (Phase, error) {
	reason := ReasonQuit
	if o.phase == PhaseExiting {
		reason = ReasonDone
	}

	if err := o.clear(); err != nil {
		return o.phase, err
	}

	o.result = &Result{
		Reason:   reason,
		QuitFrom: o.phase,
		Cursor:   o.doc.Cursor(),
		Lines:    o.doc.Len(),
		Duration: time.Since(o.startTime),
	}
	o.config.Collector.RecordEnd(string(reason), o.phase.String(), o.result.Duration)
	if err := o.finish(string(reason)); err != nil {
		return o.phase, err
	}
	return PhaseTerminated, nil
}

// stuck clears the clipboard and reports the oversized line at idx.
func (o *Orchestrator) stuck(idx int) error {
	err := StuckError(o.doc, idx)
	o.logger.Error("transfer stuck", map[string]any{
		"line":  idx + 1,
		"units": o.doc.LineUnits(idx),
	})

	o.config.Collector.RecordEnd("error", o.phase.String(), time.Since(o.startTime))
	o.phase = PhaseTerminated
	if cerr := o.clear(); cerr != nil {
		return errors.Join(err, cerr)
	}
	if jerr := o.finish("error"); jerr != nil {
		return errors.Join(err, jerr)
	}
	return err
}

// StuckError describes line idx of doc as too large for the budget. It
// wraps ErrStuck.
func StuckError(doc *document.Document, idx int) error {
	return fmt.Errorf("%w: line %d is %s %s, budget is %s",
		ErrStuck, idx+1,
		document.GroupDigits(doc.LineUnits(idx)), doc.Unit(),
		document.GroupDigits(doc.MaxUnits()))
}

func (o *Orchestrator) afterTransfer() Phase {
	switch o.config.Footer {
	case FooterAlways:
		return PhaseFinalizing
	case FooterNever:
		return PhaseExiting
	default:
		if o.doc.HasSource() {
			return PhaseFinalizing
		}
		return PhaseExiting
	}
}

// deliver writes text and makes it the replay target.
func (o *Orchestrator) deliver(text string) error {
	if err := o.write(text); err != nil {
		return err
	}
	o.doc.Record(text)
	return nil
}

func (o *Orchestrator) clear() error {
	if err := o.tally(clipboard.Clear(o.sink)); err != nil {
		return err
	}
	o.doc.Record("")
	return o.record(journal.Record{Type: journal.TypeClear})
}

func (o *Orchestrator) write(text string) error {
	return o.tally(o.sink.Write(text))
}

// tally counts and logs the outcome of one sink call.
func (o *Orchestrator) tally(err error) error {
	if err != nil {
		o.config.Collector.IncClipboardFailure()
		o.logger.Error("clipboard write failed", map[string]any{"error": err.Error()})
		return err
	}
	o.config.Collector.IncClipboardWrite()
	return nil
}

func (o *Orchestrator) finish(reason string) error {
	snap := o.config.Collector.Snapshot()
	fields := snap.Fields()
	fields["reason"] = reason
	fields["quit_from"] = snap.QuitFrom
	fields["cursor"] = o.doc.Cursor()
	fields["lines"] = o.doc.Len()
	o.logger.Info("session finished", fields)
	return o.record(journal.Record{Type: journal.TypeSessionEnd, Reason: reason})
}

func (o *Orchestrator) record(rec journal.Record) error {
	if o.config.Journal == nil {
		return nil
	}
	if err := o.config.Journal.Append(rec); err != nil {
		return fmt.Errorf("journal %s: %w", rec.Type, err)
	}
	return nil
}
