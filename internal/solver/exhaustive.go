// internal/solver/exhaustive.go
//
// Exact minimax search over the whole game tree.
//
// For a candidate set S the search tries every g in S as the next guess and
// splits S by score. A branch holding one code is resolved (0 more turns),
// an empty branch cannot happen for g, and any larger branch recurses. The
// cost of g is 1 + its worst branch; the decision is the cheapest g, first
// in space order on ties. A singleton set needs no guess and costs 0.
//
// Results are memoized by candidate-set content, since different paths
// through the tree often narrow to the same set.

package solver

import (
	"context"
	"errors"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/mastermind/internal/candidates"
	"github.com/robalobadob/mastermind/internal/code"
	"github.com/robalobadob/mastermind/internal/store"
)

// Decision is the best guess for a set and its worst-case turn count.
type Decision struct {
	Guess code.Code
	Turns int
}

type Exhaustive struct {
	memo    store.Store[Decision]
	tracer  Tracer
	workers int
}

type ExhaustiveOption func(*Exhaustive)

// WithTracer installs a progress sink.
func WithTracer(t Tracer) ExhaustiveOption {
	return func(e *Exhaustive) { e.tracer = t }
}

// WithStore replaces the memo table, e.g. to share it between searches.
// Keys are only unique within one code space, so a store must not be shared
// across spaces of different dimensions.
func WithStore(st store.Store[Decision]) ExhaustiveOption {
	return func(e *Exhaustive) { e.memo = st }
}

// WithWorkers evaluates root-level guesses on up to n goroutines.
func WithWorkers(n int) ExhaustiveOption {
	return func(e *Exhaustive) { e.workers = n }
}

func NewExhaustive(opts ...ExhaustiveOption) *Exhaustive {
	e := &Exhaustive{workers: 1}
	for _, opt := range opts {
		opt(e)
	}
	if e.memo == nil {
		e.memo = store.NewMemoryStore[Decision]()
	}
	if e.tracer == nil {
		e.tracer = nopTracer{}
	}
	return e
}

// Memo exposes the memo table, mostly for reporting its size.
func (e *Exhaustive) Memo() store.Store[Decision] { return e.memo }

// BestGuess returns the guess minimizing the worst-case number of turns.
func (e *Exhaustive) BestGuess(ctx context.Context, set *candidates.Set) (Decision, error) {
	if set.IsEmpty() {
		return Decision{}, candidates.ErrEmptyCandidateSet
	}
	if e.workers > 1 && set.Size() > 2 {
		return e.bestParallel(ctx, set)
	}
	return e.best(ctx, set, 0)
}

// PathLength is the worst-case turn count when guess is played next on set
// and the search plays optimally afterwards. guess may be any code of the
// space. A singleton set costs 0.
func (e *Exhaustive) PathLength(ctx context.Context, set *candidates.Set, guess code.Code) (int, error) {
	if set.IsEmpty() {
		return 0, candidates.ErrEmptyCandidateSet
	}
	if err := set.Space().Validate(guess); err != nil {
		return 0, err
	}
	if set.IsSingleton() {
		return 0, nil
	}
	return e.path(ctx, set, guess, 0, math.MaxInt)
}

// NextGuess lets the search drive a game session.
func (e *Exhaustive) NextGuess(ctx context.Context, set *candidates.Set) (code.Code, error) {
	d, err := e.BestGuess(ctx, set)
	if err != nil {
		return code.Code{}, err
	}
	return d.Guess, nil
}

func (e *Exhaustive) best(ctx context.Context, set *candidates.Set, depth int) (Decision, error) {
	if set.IsSingleton() {
		only, err := set.OnlyElement()
		return Decision{Guess: only}, err
	}
	if d, ok, err := e.recall(ctx, set, depth); ok || err != nil {
		return d, err
	}

	e.tracer.Trace(Event{Kind: EventEnter, Depth: depth, Remaining: set.Size()})
	best := Decision{Turns: -1}
	for i := 0; i < set.Size(); i++ {
		if err := ctx.Err(); err != nil {
			return Decision{}, err
		}
		bound := math.MaxInt
		if best.Turns >= 0 {
			bound = best.Turns
		}
		g := set.At(i)
		turns, err := e.path(ctx, set, g, depth, bound)
		if err != nil {
			return Decision{}, err
		}
		if best.Turns < 0 || turns < best.Turns {
			best = Decision{Guess: g, Turns: turns}
		}
		if best.Turns == 1 {
			// Nothing beats a guess that splits the set into singletons.
			break
		}
	}
	return best, e.remember(ctx, set, depth, best)
}

func (e *Exhaustive) bestParallel(ctx context.Context, set *candidates.Set) (Decision, error) {
	if d, ok, err := e.recall(ctx, set, 0); ok || err != nil {
		return d, err
	}
	e.tracer.Trace(Event{Kind: EventEnter, Depth: 0, Remaining: set.Size()})

	turns := make([]int, set.Size())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := 0; i < set.Size(); i++ {
		g.Go(func() error {
			t, err := e.path(gctx, set, set.At(i), 0, math.MaxInt)
			turns[i] = t
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Decision{}, err
	}

	idx := make([]int, len(turns))
	for i := range idx {
		idx[i] = i
	}
	i, t := minBy(idx, func(i int) int { return turns[i] })
	best := Decision{Guess: set.At(i), Turns: t}
	return best, e.remember(ctx, set, 0, best)
}

// path scores one guess against set. It stops early once the cost reaches
// bound, in which case the returned value is only known to be >= bound.
func (e *Exhaustive) path(ctx context.Context, set *candidates.Set, guess code.Code, depth, bound int) (int, error) {
	e.tracer.Trace(Event{Kind: EventGuess, Depth: depth, Guess: guess, Remaining: set.Size()})
	parts, err := set.Partition(guess)
	if err != nil {
		return 0, err
	}
	cat := set.Space().Catalog()
	worst := 0
	for i, next := range parts {
		if next == nil {
			continue
		}
		turns := 0
		if next.Size() > 1 {
			d, err := e.best(ctx, next, depth+1)
			if err != nil {
				return 0, err
			}
			turns = d.Turns
		}
		e.tracer.Trace(Event{
			Kind:      EventBranch,
			Depth:     depth + 1,
			Guess:     guess,
			Score:     cat.At(i),
			Remaining: next.Size(),
			Turns:     turns,
		})
		worst = max(worst, turns)
		if 1+worst >= bound {
			break
		}
	}
	return 1 + worst, nil
}

func (e *Exhaustive) recall(ctx context.Context, set *candidates.Set, depth int) (Decision, bool, error) {
	d, err := e.memo.Get(ctx, set.Key())
	switch {
	case err == nil:
		e.tracer.Trace(Event{Kind: EventMemoHit, Depth: depth, Guess: d.Guess, Remaining: set.Size(), Turns: d.Turns})
		return d, true, nil
	case errors.Is(err, store.ErrNotFound):
		return Decision{}, false, nil
	default:
		return Decision{}, false, err
	}
}

func (e *Exhaustive) remember(ctx context.Context, set *candidates.Set, depth int, d Decision) error {
	e.tracer.Trace(Event{Kind: EventDecision, Depth: depth, Guess: d.Guess, Remaining: set.Size(), Turns: d.Turns})
	return e.memo.Save(ctx, set.Key(), d)
}
