// internal/code/space.go
//
// Space enumerates every code of a fixed length over a palette (P^K codes).
// Codes are numbered in ascending base-P order with position 0 most
// significant, so "AAA" is index 0 and the enumeration is stable.

package code

import "fmt"

// MaxSpaceSize bounds P^K so that full enumeration stays in memory.
const MaxSpaceSize = 1 << 20

type Space struct {
	palette Palette
	length  int
	size    int
}

// NewSpace validates the dimensions and returns the code space.
func NewSpace(p Palette, length int) (*Space, error) {
	if p.Size() == 0 {
		return nil, fmt.Errorf("%w: empty palette", ErrInvalidPalette)
	}
	if length < 1 || length > MaxLength {
		return nil, fmt.Errorf("%w: length %d outside 1..%d", ErrLengthMismatch, length, MaxLength)
	}
	size := 1
	for i := 0; i < length; i++ {
		size *= p.Size()
		if size > MaxSpaceSize {
			return nil, fmt.Errorf("%w: %d colors over %d positions", ErrSpaceTooLarge, p.Size(), length)
		}
	}
	return &Space{palette: p, length: length, size: size}, nil
}

func (s *Space) Palette() Palette { return s.palette }
func (s *Space) Length() int      { return s.length }
func (s *Space) Size() int        { return s.size }

// Catalog returns the score catalog for this space's code length.
func (s *Space) Catalog() *Catalog { return CatalogFor(s.length) }

// At returns the code with enumeration index i.
func (s *Space) At(i int) Code {
	b := make([]byte, s.length)
	p := s.palette.Size()
	for pos := s.length - 1; pos >= 0; pos-- {
		b[pos] = byte(i % p)
		i /= p
	}
	return Code{pegs: string(b)}
}

// Index returns the enumeration index of c. c must belong to the space.
func (s *Space) Index(c Code) int {
	p := s.palette.Size()
	idx := 0
	for i := 0; i < len(c.pegs); i++ {
		idx = idx*p + int(c.pegs[i])
	}
	return idx
}

// All returns every code in enumeration order.
func (s *Space) All() []Code {
	out := make([]Code, s.size)
	for i := range out {
		out[i] = s.At(i)
	}
	return out
}

// Validate reports whether c has this space's length and palette colors.
func (s *Space) Validate(c Code) error {
	if c.Len() != s.length {
		return fmt.Errorf("%w: want %d positions, got %d", ErrLengthMismatch, s.length, c.Len())
	}
	for i := 0; i < c.Len(); i++ {
		if int(c.At(i)) >= s.palette.Size() {
			return fmt.Errorf("%w: position %d has color %d, palette has %d", ErrUnknownColor, i, c.At(i), s.palette.Size())
		}
	}
	return nil
}
