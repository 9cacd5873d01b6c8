package transfer

import "strings"

// Phase is a state of the transfer session.
type Phase int

// Session phases, in order. Phases never move backwards.
const (
	// PhaseTransferring delivers fragments until the document is consumed.
	PhaseTransferring Phase = iota
	// PhaseFinalizing offers the footer message.
	PhaseFinalizing
	// PhaseExiting only allows replaying the last delivery or quitting.
	PhaseExiting
	// PhaseTerminated is final; the clipboard has been cleared.
	PhaseTerminated
)

func (p Phase) String() string {
	switch p {
	case PhaseTransferring:
		return "transferring"
	case PhaseFinalizing:
		return "finalizing"
	case PhaseExiting:
		return "exiting"
	case PhaseTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Decision is a parsed user response to a prompt.
type Decision int

// Decisions. The zero value is DecisionInvalid.
const (
	DecisionInvalid Decision = iota
	DecisionYes
	DecisionPrev
	DecisionQuit
)

func (d Decision) String() string {
	switch d {
	case DecisionYes:
		return "yes"
	case DecisionPrev:
		return "prev"
	case DecisionQuit:
		return "quit"
	default:
		return "invalid"
	}
}

// ParseDecision interprets a line of user input. Empty input selects def.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseDecision(input string, def Decision) Decision {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "":
		return def
	case "y", "yes":
		return DecisionYes
	case "p", "prev":
		return DecisionPrev
	case "q", "quit":
		return DecisionQuit
	default:
		return DecisionInvalid
	}
}

// defaultDecision is the decision taken on empty input in phase p.
func defaultDecision(p Phase) Decision {
	if p == PhaseExiting {
		return DecisionQuit
	}
	return DecisionYes
}

// Reason describes how a session ended.
type Reason string

const (
	// ReasonQuit means the user quit before the session finished.
	ReasonQuit Reason = "quit"
	// ReasonDone means the user quit from the exit prompt.
	ReasonDone Reason = "done"
)
