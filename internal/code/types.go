// internal/code/types.go
//
// Core value types for the Mastermind engine.
// Defines:
//   - Color:   index of one palette entry.
//   - Palette: display names for colors, plus parsing from names or letters.
//   - Code:    immutable, comparable sequence of colors.
//   - Score:   black/white feedback for a guess.

package code

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// MaxLength bounds the number of positions in a code.
	MaxLength = 8
	// MaxColors bounds the palette size (one letter per color).
	MaxColors = 26
)

var (
	ErrInvariantViolation = errors.New("invariant violation")
	ErrLengthMismatch     = errors.New("code length mismatch")
	ErrUnknownColor       = errors.New("unknown color")
	ErrInvalidPalette     = errors.New("invalid palette")
	ErrSpaceTooLarge      = errors.New("code space too large")
)

// Color identifies one palette entry. Colors only compare by equality.
type Color uint8

// Palette names the colors 0..Size()-1.
type Palette struct {
	names []string
}

// NewPalette builds a palette from distinct, non-empty names.
func NewPalette(names ...string) (Palette, error) {
	if len(names) == 0 || len(names) > MaxColors {
		return Palette{}, fmt.Errorf("%w: need 1..%d colors, got %d", ErrInvalidPalette, MaxColors, len(names))
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, len(names))
	for i, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			return Palette{}, fmt.Errorf("%w: empty color name at %d", ErrInvalidPalette, i)
		}
		if _, dup := seen[n]; dup {
			return Palette{}, fmt.Errorf("%w: duplicate color %q", ErrInvalidPalette, n)
		}
		seen[n] = struct{}{}
		out[i] = n
	}
	return Palette{names: out}, nil
}

// LetterPalette returns a palette of n colors named "a", "b", ...
func LetterPalette(n int) Palette {
	if n < 1 || n > MaxColors {
		panic(fmt.Sprintf("code: letter palette size %d out of range", n))
	}
	names := make([]string, n)
	for i := range names {
		names[i] = string(rune('a' + i))
	}
	return Palette{names: names}
}

// Size reports the number of colors.
func (p Palette) Size() int { return len(p.names) }

// Name returns the display name of c.
func (p Palette) Name(c Color) string {
	if int(c) >= len(p.names) {
		return "?"
	}
	return p.names[c]
}

// Prefix returns a palette holding only the first n colors.
func (p Palette) Prefix(n int) (Palette, error) {
	if n < 1 || n > len(p.names) {
		return Palette{}, fmt.Errorf("%w: cannot take %d of %d colors", ErrInvalidPalette, n, len(p.names))
	}
	return Palette{names: append([]string(nil), p.names[:n]...)}, nil
}

// Parse resolves a color by full name or by its letter (A = first color).
func (p Palette) Parse(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range p.names {
		if n == s {
			return Color(i), nil
		}
	}
	if len(s) == 1 {
		if i := int(s[0] - 'a'); i >= 0 && i < len(p.names) {
			return Color(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownColor, s)
}

// ParseCode reads either a run of letters ("ABCA") or a list of names
// separated by commas or spaces ("white,pink,pink,orange").
func (p Palette) ParseCode(s string) (Code, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	if len(fields) == 1 {
		if _, err := p.Parse(fields[0]); err != nil {
			fields = strings.Split(fields[0], "")
		}
	}
	colors := make([]Color, 0, len(fields))
	for _, f := range fields {
		c, err := p.Parse(f)
		if err != nil {
			return Code{}, err
		}
		colors = append(colors, c)
	}
	return NewCode(colors...), nil
}

// Format renders c using full color names.
func (p Palette) Format(c Code) string {
	parts := make([]string, c.Len())
	for i := range parts {
		parts[i] = p.Name(c.At(i))
	}
	return strings.Join(parts, " ")
}

// Code is an ordered sequence of colors. The zero value is the empty code.
// Codes are immutable and comparable with ==.
type Code struct {
	pegs string
}

// NewCode builds a code from colors in position order.
func NewCode(colors ...Color) Code {
	b := make([]byte, len(colors))
	for i, c := range colors {
		b[i] = byte(c)
	}
	return Code{pegs: string(b)}
}

func (c Code) Len() int { return len(c.pegs) }

func (c Code) At(i int) Color { return Color(c.pegs[i]) }

// Colors returns a fresh copy of the code's colors.
func (c Code) Colors() []Color {
	out := make([]Color, len(c.pegs))
	for i := range out {
		out[i] = Color(c.pegs[i])
	}
	return out
}

func (c Code) IsZero() bool { return c.pegs == "" }

// String renders the code as letters, first palette color = 'A'.
func (c Code) String() string {
	b := make([]byte, len(c.pegs))
	for i := range b {
		b[i] = 'A' + c.pegs[i]
	}
	return string(b)
}

// Score is the feedback for one guess: Black pegs for exact position
// matches, White pegs for right color in the wrong position.
type Score struct {
	Black int
	White int
}

func (s Score) String() string { return fmt.Sprintf("%dB%dW", s.Black, s.White) }

// Solved reports whether s is the all-black score for codes of length k.
func (s Score) Solved(k int) bool { return s.Black == k && s.White == 0 }

// ParseScore reads "1B2W" (either order, case-insensitive) or "1,2".
func ParseScore(s string) (Score, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	var out Score
	if b, w, ok := strings.Cut(s, ","); ok {
		if _, err := fmt.Sscanf(b+" "+w, "%d %d", &out.Black, &out.White); err != nil {
			return Score{}, fmt.Errorf("parse score %q: %w", s, err)
		}
		return out, nil
	}
	seenB, seenW := false, false
	n := -1
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			if n < 0 {
				n = 0
			}
			n = n*10 + int(r-'0')
		case (r == 'B' || r == 'W') && n >= 0:
			if r == 'B' && !seenB {
				out.Black, seenB = n, true
			} else if r == 'W' && !seenW {
				out.White, seenW = n, true
			} else {
				return Score{}, fmt.Errorf("parse score %q: repeated %c", s, r)
			}
			n = -1
		default:
			return Score{}, fmt.Errorf("parse score %q: unexpected %q", s, r)
		}
	}
	if n >= 0 || (!seenB && !seenW) {
		return Score{}, fmt.Errorf("parse score %q: want forms like 1B2W", s)
	}
	return out, nil
}
