// internal/candidates/set.go
//
// Set is the collection of codes still consistent with every
// (guess, score) observed so far.
//
// Sets are immutable: Filter and Partition derive new sets and never touch
// the receiver, so a set may be shared freely between goroutines.
// Members are held in space enumeration order, which makes filtering and
// iteration deterministic. A bitvector over space indices backs membership
// tests and the content key used to memoize search results.

package candidates

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/slices"

	"github.com/robalobadob/mastermind/internal/code"
)

// ErrEmptyCandidateSet reports that no code is consistent with the feedback.
var ErrEmptyCandidateSet = errors.New("empty candidate set")

type Set struct {
	space   *code.Space
	members []code.Code
	bits    *bitvec

	keyOnce sync.Once
	key     string
}

// Initial returns the full set of P^K codes for space.
func Initial(space *code.Space) *Set {
	bv := newBitvec(space.Size())
	for i := 0; i < space.Size(); i++ {
		bv.set(i)
	}
	return &Set{space: space, members: space.All(), bits: bv}
}

// FromCodes builds a set from explicit members. Duplicates collapse and
// members are reordered into space order.
func FromCodes(space *code.Space, codes ...code.Code) (*Set, error) {
	bv := newBitvec(space.Size())
	for _, c := range codes {
		if err := space.Validate(c); err != nil {
			return nil, err
		}
		bv.set(space.Index(c))
	}
	members := make([]code.Code, 0, bv.count)
	for i := 0; i < space.Size(); i++ {
		if bv.get(i) {
			members = append(members, space.At(i))
		}
	}
	return &Set{space: space, members: members, bits: bv}, nil
}

func (s *Set) Space() *code.Space { return s.space }
func (s *Set) Size() int          { return len(s.members) }
func (s *Set) IsSingleton() bool  { return len(s.members) == 1 }
func (s *Set) IsEmpty() bool      { return len(s.members) == 0 }

// IsFull reports whether the set still holds the whole code space.
func (s *Set) IsFull() bool { return len(s.members) == s.space.Size() }

// At returns the i-th member in space order.
func (s *Set) At(i int) code.Code { return s.members[i] }

// Codes returns a copy of the members in space order.
func (s *Set) Codes() []code.Code { return slices.Clone(s.members) }

// OnlyElement returns the sole member of a singleton set.
func (s *Set) OnlyElement() (code.Code, error) {
	if len(s.members) != 1 {
		return code.Code{}, fmt.Errorf("%w: only element requested from set of %d", code.ErrInvariantViolation, len(s.members))
	}
	return s.members[0], nil
}

func (s *Set) Contains(c code.Code) bool {
	if s.space.Validate(c) != nil {
		return false
	}
	return s.bits.get(s.space.Index(c))
}

// Key identifies the set by content: two sets over the same space share a
// key iff they hold the same codes.
func (s *Set) Key() string {
	s.keyOnce.Do(func() { s.key = s.bits.key() })
	return s.key
}

// Filter returns the members c with ComputeScore(c, guess) == score.
func (s *Set) Filter(guess code.Code, score code.Score) (*Set, error) {
	if err := s.space.Validate(guess); err != nil {
		return nil, err
	}
	if err := s.space.Catalog().Validate(score); err != nil {
		return nil, err
	}
	out := s.derive(0)
	for _, c := range s.members {
		if code.ComputeScore(c, guess) == score {
			out.add(c)
		}
	}
	return out, nil
}

// Partition splits the set by the score each member gives against guess.
// The result is indexed like the catalog; empty children are nil.
func (s *Set) Partition(guess code.Code) ([]*Set, error) {
	if err := s.space.Validate(guess); err != nil {
		return nil, err
	}
	cat := s.space.Catalog()
	parts := make([]*Set, cat.Len())
	for _, c := range s.members {
		i := cat.Index(code.ComputeScore(c, guess))
		if parts[i] == nil {
			parts[i] = s.derive(0)
		}
		parts[i].add(c)
	}
	return parts, nil
}

// Counts returns the size of each Partition child without building them.
// guess must belong to the space.
func (s *Set) Counts(guess code.Code) []int {
	cat := s.space.Catalog()
	counts := make([]int, cat.Len())
	for _, c := range s.members {
		counts[cat.Index(code.ComputeScore(c, guess))]++
	}
	return counts
}

func (s *Set) derive(capacity int) *Set {
	return &Set{
		space:   s.space,
		members: make([]code.Code, 0, capacity),
		bits:    newBitvec(s.space.Size()),
	}
}

func (s *Set) add(c code.Code) {
	s.members = append(s.members, c)
	s.bits.set(s.space.Index(c))
}
