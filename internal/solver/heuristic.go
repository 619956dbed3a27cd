// internal/solver/heuristic.go
//
// One-ply minimax guess selection.
// For every guess in the pool, the candidates are split by the score they
// would produce; the guess whose largest split is smallest wins. This bounds
// the worst case one move ahead and nothing more.
//
// Pool policy:
//   - default:     guesses come from the remaining candidates.
//   - full space:  guesses come from every code, including ones already ruled
//                  out, which sometimes split the candidates better.
// Ties go to the first guess in space order.

package solver

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/robalobadob/mastermind/internal/candidates"
	"github.com/robalobadob/mastermind/internal/code"
)

type Heuristic struct {
	fullSpace bool

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

type HeuristicOption func(*Heuristic)

// WithFullSpace selects the guess pool: every code when on, the remaining
// candidates when off.
func WithFullSpace(on bool) HeuristicOption {
	return func(h *Heuristic) { h.fullSpace = on }
}

// WithRand sets the source used for the opening guess.
func WithRand(r *rand.Rand) HeuristicOption {
	return func(h *Heuristic) { h.rng = r }
}

func NewHeuristic(opts ...HeuristicOption) *Heuristic {
	h := &Heuristic{}
	for _, opt := range opts {
		opt(h)
	}
	if h.rng == nil {
		h.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return h
}

// UsesFullSpace reports the configured pool policy.
func (h *Heuristic) UsesFullSpace() bool { return h.fullSpace }

// MakeGuess picks the next guess for the candidate set.
func (h *Heuristic) MakeGuess(set *candidates.Set) (code.Code, error) {
	switch {
	case set.IsEmpty():
		return code.Code{}, candidates.ErrEmptyCandidateSet
	case set.IsFull():
		// Opening move: all first guesses are near-equivalent, skip the scan.
		h.mu.Lock()
		i := h.rng.Intn(set.Size())
		h.mu.Unlock()
		return set.At(i), nil
	case set.IsSingleton():
		return set.OnlyElement()
	}

	pool := set.Codes()
	if h.fullSpace {
		pool = set.Space().All()
	}
	guess, _ := minBy(pool, func(g code.Code) int { return WorstCase(set, g) })
	return guess, nil
}

// NextGuess lets the heuristic drive a game session.
func (h *Heuristic) NextGuess(ctx context.Context, set *candidates.Set) (code.Code, error) {
	if err := ctx.Err(); err != nil {
		return code.Code{}, err
	}
	return h.MakeGuess(set)
}

// WorstCase is the size of the largest set that can remain after guess.
func WorstCase(set *candidates.Set, guess code.Code) int {
	worst := 0
	for _, n := range set.Counts(guess) {
		worst = max(worst, n)
	}
	return worst
}
