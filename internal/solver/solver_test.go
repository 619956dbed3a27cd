package solver

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/mastermind/internal/candidates"
	"github.com/robalobadob/mastermind/internal/code"
)

func newSpace(t *testing.T, colors, length int) *code.Space {
	t.Helper()
	space, err := code.NewSpace(code.LetterPalette(colors), length)
	require.NoError(t, err)
	return space
}

func parse(t *testing.T, space *code.Space, s string) code.Code {
	t.Helper()
	c, err := space.Palette().ParseCode(s)
	require.NoError(t, err)
	return c
}

func scenarioSet(t *testing.T, space *code.Space) *candidates.Set {
	t.Helper()
	set, err := candidates.Initial(space).Filter(parse(t, space, "ACB"), code.Score{Black: 1, White: 2})
	require.NoError(t, err)
	require.Equal(t, 3, set.Size())
	return set
}

func TestWorstCase(t *testing.T) {
	space := newSpace(t, 4, 3)
	full := candidates.Initial(space)
	assert.Equal(t, 27, WorstCase(full, parse(t, space, "AAA")))
	assert.Equal(t, 1, WorstCase(scenarioSet(t, space), parse(t, space, "AAB")))
}

func TestHeuristic_MakeGuess(t *testing.T) {
	space := newSpace(t, 4, 3)

	t.Run("empty set", func(t *testing.T) {
		empty, err := candidates.FromCodes(space)
		require.NoError(t, err)
		_, err = NewHeuristic().MakeGuess(empty)
		assert.ErrorIs(t, err, candidates.ErrEmptyCandidateSet)
	})

	t.Run("singleton returns its element", func(t *testing.T) {
		one, err := candidates.FromCodes(space, parse(t, space, "DCB"))
		require.NoError(t, err)
		got, err := NewHeuristic(WithFullSpace(true)).MakeGuess(one)
		require.NoError(t, err)
		assert.Equal(t, "DCB", got.String())
	})

	t.Run("opening guess comes from the space", func(t *testing.T) {
		h := NewHeuristic(WithRand(rand.New(rand.NewSource(7))))
		got, err := h.MakeGuess(candidates.Initial(space))
		require.NoError(t, err)
		assert.NoError(t, space.Validate(got))
	})

	t.Run("candidate pool ties go to the first candidate", func(t *testing.T) {
		got, err := NewHeuristic().MakeGuess(scenarioSet(t, space))
		require.NoError(t, err)
		assert.Equal(t, "ABC", got.String())
	})

	t.Run("full space pool may pick a ruled-out code", func(t *testing.T) {
		h := NewHeuristic(WithFullSpace(true))
		require.True(t, h.UsesFullSpace())
		got, err := h.MakeGuess(scenarioSet(t, space))
		require.NoError(t, err)
		assert.Equal(t, "AAB", got.String())
	})
}

// Playing every secret from the full set must end within six turns, and the
// secret must survive every filter on the way.
func TestHeuristic_Terminates(t *testing.T) {
	space := newSpace(t, 4, 3)
	for _, fullSpace := range []bool{false, true} {
		h := NewHeuristic(WithFullSpace(fullSpace), WithRand(rand.New(rand.NewSource(1))))
		for _, secret := range space.All() {
			set := candidates.Initial(space)
			turns := 0
			for {
				turns++
				require.LessOrEqual(t, turns, 6, "secret %s, full space %v", secret, fullSpace)
				guess, err := h.MakeGuess(set)
				require.NoError(t, err)
				if guess == secret {
					break
				}
				set, err = set.Filter(guess, code.ComputeScore(secret, guess))
				require.NoError(t, err)
				require.True(t, set.Contains(secret), "secret %s lost after %s", secret, guess)
			}
		}
	}
}

func TestExhaustive_BestGuess(t *testing.T) {
	ctx := context.Background()
	space := newSpace(t, 4, 3)
	full := candidates.Initial(space)

	t.Run("full set regression value", func(t *testing.T) {
		d, err := NewExhaustive().BestGuess(ctx, full)
		require.NoError(t, err)
		assert.Equal(t, "AAB", d.Guess.String())
		assert.Equal(t, 3, d.Turns)
	})

	t.Run("parallel root matches sequential", func(t *testing.T) {
		d, err := NewExhaustive(WithWorkers(4)).BestGuess(ctx, full)
		require.NoError(t, err)
		assert.Equal(t, "AAB", d.Guess.String())
		assert.Equal(t, 3, d.Turns)
	})

	t.Run("singleton needs no guess", func(t *testing.T) {
		one, err := candidates.FromCodes(space, parse(t, space, "BBD"))
		require.NoError(t, err)
		d, err := NewExhaustive().BestGuess(ctx, one)
		require.NoError(t, err)
		assert.Equal(t, Decision{Guess: parse(t, space, "BBD"), Turns: 0}, d)
	})

	t.Run("pair resolves in one turn", func(t *testing.T) {
		two, err := candidates.FromCodes(space, parse(t, space, "DDD"), parse(t, space, "ABC"))
		require.NoError(t, err)
		d, err := NewExhaustive().BestGuess(ctx, two)
		require.NoError(t, err)
		assert.Equal(t, Decision{Guess: parse(t, space, "ABC"), Turns: 1}, d)
	})

	t.Run("empty set", func(t *testing.T) {
		empty, err := candidates.FromCodes(space)
		require.NoError(t, err)
		_, err = NewExhaustive().BestGuess(ctx, empty)
		assert.ErrorIs(t, err, candidates.ErrEmptyCandidateSet)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := NewExhaustive().BestGuess(cctx, full)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestExhaustive_PathLength(t *testing.T) {
	ctx := context.Background()
	space := newSpace(t, 4, 3)
	full := candidates.Initial(space)
	e := NewExhaustive()

	for guess, want := range map[string]int{"AAA": 4, "AAB": 3, "ABC": 3} {
		got, err := e.PathLength(ctx, full, parse(t, space, guess))
		require.NoError(t, err)
		assert.Equal(t, want, got, guess)
	}

	best, err := e.BestGuess(ctx, full)
	require.NoError(t, err)
	for _, g := range full.Codes() {
		n, err := e.PathLength(ctx, full, g)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, best.Turns, g.String())
	}

	n, err := e.PathLength(ctx, scenarioSet(t, space), parse(t, space, "AAB"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = e.PathLength(ctx, full, code.NewCode(0))
	assert.ErrorIs(t, err, code.ErrLengthMismatch)
}

func TestExhaustive_TracerAndMemo(t *testing.T) {
	ctx := context.Background()
	space := newSpace(t, 3, 3)
	full := candidates.Initial(space)

	var mu sync.Mutex
	var events []Event
	e := NewExhaustive(WithTracer(TracerFunc(func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
	})))

	d, err := e.BestGuess(ctx, full)
	require.NoError(t, err)
	require.NotEmpty(t, events)

	assert.Equal(t, Event{Kind: EventEnter, Depth: 0, Remaining: 27}, events[0])
	last := events[len(events)-1]
	assert.Equal(t, EventDecision, last.Kind)
	assert.Equal(t, 0, last.Depth)
	assert.Equal(t, d.Guess, last.Guess)
	assert.Equal(t, d.Turns, last.Turns)
	for _, ev := range events {
		assert.GreaterOrEqual(t, ev.Depth, 0)
		if ev.Kind == EventBranch {
			assert.Positive(t, ev.Depth)
			assert.True(t, space.Catalog().Contains(ev.Score))
		}
	}
	assert.Positive(t, e.Memo().Len())

	events = nil
	again, err := e.BestGuess(ctx, full)
	require.NoError(t, err)
	assert.Equal(t, d, again)
	require.Len(t, events, 1)
	assert.Equal(t, EventMemoHit, events[0].Kind)
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "branch", EventBranch.String())
	assert.Equal(t, "unknown", EventKind(42).String())
}

func TestMinBy(t *testing.T) {
	got, key := minBy([]string{"ccc", "a", "bb", "d"}, func(s string) int { return len(s) })
	assert.Equal(t, "a", got)
	assert.Equal(t, 1, key)
}
