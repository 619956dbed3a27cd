package solver

import "github.com/robalobadob/mastermind/internal/code"

// EventKind classifies search progress events.
type EventKind int

const (
	// EventEnter: the search starts resolving a candidate set.
	EventEnter EventKind = iota
	// EventGuess: a guess is being evaluated against the set.
	EventGuess
	// EventBranch: one score branch of a guess has been resolved.
	EventBranch
	// EventDecision: the best guess for a set is known.
	EventDecision
	// EventMemoHit: the set was resolved earlier via another path.
	EventMemoHit
)

func (k EventKind) String() string {
	switch k {
	case EventEnter:
		return "enter"
	case EventGuess:
		return "guess"
	case EventBranch:
		return "branch"
	case EventDecision:
		return "decision"
	case EventMemoHit:
		return "memo"
	default:
		return "unknown"
	}
}

// Event describes one step of the exhaustive search. Depth is the
// recursion depth of the set being resolved (0 for the root).
type Event struct {
	Kind      EventKind
	Depth     int
	Guess     code.Code
	Score     code.Score
	Remaining int // candidates in the set or branch
	Turns     int // worst-case turns, for branch and decision events
}

// Tracer receives search progress. Implementations must be safe for
// concurrent use when the search runs with more than one worker.
type Tracer interface {
	Trace(Event)
}

// TracerFunc adapts a function to Tracer.
type TracerFunc func(Event)

func (f TracerFunc) Trace(e Event) { f(e) }

type nopTracer struct{}

func (nopTracer) Trace(Event) {}
