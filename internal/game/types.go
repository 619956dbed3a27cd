// internal/game/types.go
//
// Core type definitions for a Mastermind game session.
// Defines:
//   - State:    coarse session state (playing/won/lost).
//   - Turn:     one guess with its feedback.
//   - Game:     state of a single in-progress or finished session.
//   - Strategy: anything that can propose the next guess.

package game

import (
	"context"

	"github.com/robalobadob/mastermind/internal/candidates"
	"github.com/robalobadob/mastermind/internal/code"
)

// State is the coarse state of a session.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Turn records one guess, its score, and how many candidates remained after it.
type Turn struct {
	Guess     code.Code
	Score     code.Score
	Remaining int
}

// Game holds the state of a single session.
type Game struct {
	ID       string    // Unique game identifier (random hex string).
	Secret   code.Code // The hidden code.
	MaxTurns int       // Guesses allowed before the game is lost; 0 means no limit.
	Turns    []Turn    // Guesses made so far.
	Finished bool      // True once the game is over (won or lost).
	Won      bool      // True if the secret was guessed.

	space *code.Space
	set   *candidates.Set // codes consistent with Turns
}

// Strategy proposes the next guess from the codes still consistent with
// the feedback. Both solver strategies implement it.
type Strategy interface {
	NextGuess(ctx context.Context, set *candidates.Set) (code.Code, error)
}
