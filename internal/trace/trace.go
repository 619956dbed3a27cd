// internal/trace/trace.go
//
// zerolog sink for exhaustive-search progress.
// Each message is indented two spaces per recursion depth, so a console
// writer shows the shape of the game tree as it is explored.

package trace

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/robalobadob/mastermind/internal/solver"
)

// Logger implements solver.Tracer on top of a zerolog.Logger.
type Logger struct {
	log      zerolog.Logger
	level    zerolog.Level
	maxDepth int
}

type Option func(*Logger)

// WithMaxDepth drops events deeper than d. Negative means no limit.
func WithMaxDepth(d int) Option {
	return func(l *Logger) { l.maxDepth = d }
}

// WithLevel sets the level events are logged at (default debug).
func WithLevel(lvl zerolog.Level) Option {
	return func(l *Logger) { l.level = lvl }
}

func New(log zerolog.Logger, opts ...Option) *Logger {
	l := &Logger{log: log, level: zerolog.DebugLevel, maxDepth: -1}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ solver.Tracer = (*Logger)(nil)

func (l *Logger) Trace(ev solver.Event) {
	if l.maxDepth >= 0 && ev.Depth > l.maxDepth {
		return
	}
	e := l.log.WithLevel(l.level).
		Str("event", ev.Kind.String()).
		Int("depth", ev.Depth).
		Int("remaining", ev.Remaining)
	if e == nil {
		return
	}
	e.Msg(strings.Repeat("  ", ev.Depth) + Describe(ev))
}

// Describe renders an event as a short line without indentation.
func Describe(ev solver.Event) string {
	switch ev.Kind {
	case solver.EventEnter:
		return fmt.Sprintf("solving %d candidates", ev.Remaining)
	case solver.EventGuess:
		return fmt.Sprintf("try %s", ev.Guess)
	case solver.EventBranch:
		return fmt.Sprintf("%s => %s => %d left, %d more", ev.Guess, ev.Score, ev.Remaining, ev.Turns)
	case solver.EventDecision:
		return fmt.Sprintf("best %s in %d", ev.Guess, ev.Turns)
	case solver.EventMemoHit:
		return fmt.Sprintf("seen: best %s in %d", ev.Guess, ev.Turns)
	default:
		return ev.Kind.String()
	}
}
