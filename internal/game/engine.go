// internal/game/engine.go
//
// Game engine for a single Mastermind session.
// Responsibilities:
//   - Create sessions over a code space with a given or random secret.
//   - Validate and score guesses, narrowing the candidate set each turn.
//   - Check that the real secret survives every narrowing step.
//   - Track state transitions: playing → won/lost.
//   - Drive a full game with a Strategy (Play).
//
// Notes:
//   - randomID() is a compact hex identifier for correlating log lines.

package game

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/robalobadob/mastermind/internal/candidates"
	"github.com/robalobadob/mastermind/internal/code"
	"github.com/robalobadob/mastermind/internal/palette"
)

// DefaultMaxTurns caps sessions created without WithMaxTurns.
const DefaultMaxTurns = 12

var (
	ErrGameFinished = errors.New("game finished")
	// ErrSecretLost means filtering removed the real secret, which only a
	// scoring bug or corrupted feedback can cause.
	ErrSecretLost = errors.New("secret filtered out of candidates")
)

type Option func(*Game)

// WithMaxTurns sets the turn limit; 0 disables it.
func WithMaxTurns(n int) Option {
	return func(g *Game) { g.MaxTurns = n }
}

// New constructs a new game over space.
// If secret is the zero code, a random secret is drawn from the space.
func New(space *code.Space, secret code.Code, opts ...Option) (*Game, error) {
	if secret.IsZero() {
		var err error
		if secret, err = palette.RandomCode(space); err != nil {
			return nil, err
		}
	}
	if err := space.Validate(secret); err != nil {
		return nil, fmt.Errorf("secret: %w", err)
	}
	g := &Game{
		ID:       randomID(),
		Secret:   secret,
		MaxTurns: DefaultMaxTurns,
		Turns:    []Turn{},
		space:    space,
		set:      candidates.Initial(space),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Candidates returns the codes still consistent with every turn so far.
func (g *Game) Candidates() *candidates.Set { return g.set }

func (g *Game) Space() *code.Space { return g.space }

// ApplyGuess validates and scores a guess, mutating the game state.
// Returns the score, the new state, or an error.
//
// State transitions:
//   - All pegs black → Finished = true, Won = true.
//   - Else if the number of turns reaches MaxTurns → Finished = true (loss).
func (g *Game) ApplyGuess(guess code.Code) (code.Score, State, error) {
	if g.Finished {
		return code.Score{}, g.State(), ErrGameFinished
	}
	if err := g.space.Validate(guess); err != nil {
		return code.Score{}, g.State(), fmt.Errorf("invalid guess: %w", err)
	}

	score := code.ComputeScore(g.Secret, guess)
	next, err := g.set.Filter(guess, score)
	if err != nil {
		return code.Score{}, g.State(), err
	}
	if next.IsEmpty() {
		return score, g.State(), fmt.Errorf("guess %s scored %s: %w", guess, score, candidates.ErrEmptyCandidateSet)
	}
	if !next.Contains(g.Secret) {
		return score, g.State(), fmt.Errorf("guess %s scored %s: %w", guess, score, ErrSecretLost)
	}

	g.set = next
	g.Turns = append(g.Turns, Turn{Guess: guess, Score: score, Remaining: next.Size()})

	if score.Solved(g.space.Length()) {
		g.Finished, g.Won = true, true
	} else if g.MaxTurns > 0 && len(g.Turns) >= g.MaxTurns {
		g.Finished = true
	}
	return score, g.State(), nil
}

// Play asks strategy for guesses until the game is finished and returns
// the number of turns taken.
func (g *Game) Play(ctx context.Context, strategy Strategy) (int, error) {
	for !g.Finished {
		guess, err := strategy.NextGuess(ctx, g.set)
		if err != nil {
			return len(g.Turns), err
		}
		if _, _, err := g.ApplyGuess(guess); err != nil {
			return len(g.Turns), err
		}
	}
	return len(g.Turns), nil
}

// State reports the coarse state of the session.
func (g *Game) State() State {
	if g.Finished {
		if g.Won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
