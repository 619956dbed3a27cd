// internal/code/score.go
//
// Scoring and the catalog of valid scores.
//
// ComputeScore uses the classic two-pass peg algorithm:
//   Pass 1: exact matches become black pegs; both positions are consumed.
//   Pass 2: each unconsumed guess color consumes at most one unconsumed
//           secret position of the same color and scores a white peg.
// This keeps repeated colors in either code from being counted twice.

package code

import (
	"fmt"
	"sync"
)

// ComputeScore scores guess against secret. Both codes must have the same
// length, at most MaxLength; mismatches are programmer errors and panic.
// Use CheckedScore for untrusted input.
func ComputeScore(secret, guess Code) Score {
	n := len(guess.pegs)
	if len(secret.pegs) != n || n > MaxLength {
		panic(fmt.Sprintf("code: cannot score %d-peg guess against %d-peg secret", n, len(secret.pegs)))
	}

	var usedSecret, usedGuess [MaxLength]bool
	var s Score

	for i := 0; i < n; i++ {
		if guess.pegs[i] == secret.pegs[i] {
			s.Black++
			usedSecret[i], usedGuess[i] = true, true
		}
	}

	for i := 0; i < n; i++ {
		if usedGuess[i] {
			continue
		}
		for j := 0; j < n; j++ {
			if !usedSecret[j] && secret.pegs[j] == guess.pegs[i] {
				s.White++
				usedSecret[j] = true
				break
			}
		}
	}
	return s
}

// CheckedScore is ComputeScore with length validation.
func CheckedScore(secret, guess Code) (Score, error) {
	if secret.Len() != guess.Len() {
		return Score{}, fmt.Errorf("%w: secret has %d positions, guess has %d", ErrLengthMismatch, secret.Len(), guess.Len())
	}
	if guess.Len() > MaxLength {
		return Score{}, fmt.Errorf("%w: %d positions exceeds %d", ErrLengthMismatch, guess.Len(), MaxLength)
	}
	return ComputeScore(secret, guess), nil
}

// Catalog lists every score that can occur for one code length:
// all (b, w) with b+w <= K except (K-1, 1).
type Catalog struct {
	length int
	scores []Score
	dense  []int // (K+1)*b + w -> position in scores, or -1
}

var (
	catalogMu sync.Mutex
	catalogs  = map[int]*Catalog{}
)

// CatalogFor returns the shared catalog for length k, building it on first use.
func CatalogFor(k int) *Catalog {
	if k < 1 || k > MaxLength {
		panic(fmt.Sprintf("code: catalog length %d outside 1..%d", k, MaxLength))
	}
	catalogMu.Lock()
	defer catalogMu.Unlock()
	if c, ok := catalogs[k]; ok {
		return c
	}
	c := newCatalog(k)
	catalogs[k] = c
	return c
}

func newCatalog(k int) *Catalog {
	c := &Catalog{length: k, dense: make([]int, (k+1)*(k+1))}
	for i := range c.dense {
		c.dense[i] = -1
	}
	for b := 0; b <= k; b++ {
		for w := 0; w <= k-b; w++ {
			if b == k-1 && w == 1 {
				continue
			}
			c.dense[(k+1)*b+w] = len(c.scores)
			c.scores = append(c.scores, Score{Black: b, White: w})
		}
	}
	return c
}

// Length is the code length the catalog was built for.
func (c *Catalog) Length() int { return c.length }

// Len is the number of valid scores, the branching factor of the search.
func (c *Catalog) Len() int { return len(c.scores) }

// Scores returns the valid scores in catalog order. The slice is a copy.
func (c *Catalog) Scores() []Score { return append([]Score(nil), c.scores...) }

// At returns the i-th score in catalog order.
func (c *Catalog) At(i int) Score { return c.scores[i] }

// Index returns the catalog position of s, or -1 if s cannot occur.
func (c *Catalog) Index(s Score) int {
	if s.Black < 0 || s.White < 0 || s.Black+s.White > c.length {
		return -1
	}
	return c.dense[(c.length+1)*s.Black+s.White]
}

func (c *Catalog) Contains(s Score) bool { return c.Index(s) >= 0 }

// Validate returns an ErrInvariantViolation for scores outside the catalog.
func (c *Catalog) Validate(s Score) error {
	if !c.Contains(s) {
		return fmt.Errorf("%w: score %s impossible for length %d", ErrInvariantViolation, s, c.length)
	}
	return nil
}
