package code

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCode(t *testing.T, p Palette, s string) Code {
	t.Helper()
	c, err := p.ParseCode(s)
	require.NoError(t, err)
	return c
}

func TestComputeScore(t *testing.T) {
	p := LetterPalette(6)
	tests := []struct {
		secret, guess string
		want          Score
	}{
		{"ABC", "ACB", Score{1, 2}},
		{"ABD", "ACB", Score{1, 1}},
		{"ABC", "ABC", Score{3, 0}},
		{"AABB", "ABAB", Score{2, 2}},
		{"ABCD", "AAAA", Score{1, 0}},
		{"AAAA", "ABCD", Score{1, 0}},
		{"ABCD", "DCBA", Score{0, 4}},
		{"AABC", "CCAA", Score{0, 3}},
		{"ABCD", "EFEF", Score{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.secret+"/"+tt.guess, func(t *testing.T) {
			got := ComputeScore(mustCode(t, p, tt.secret), mustCode(t, p, tt.guess))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeScore_PanicsOnLengthMismatch(t *testing.T) {
	assert.Panics(t, func() { ComputeScore(NewCode(0, 1), NewCode(0, 1, 2)) })
}

func TestCheckedScore(t *testing.T) {
	_, err := CheckedScore(NewCode(0, 1), NewCode(0, 1, 2))
	require.ErrorIs(t, err, ErrLengthMismatch)

	s, err := CheckedScore(NewCode(0, 1, 2), NewCode(0, 2, 1))
	require.NoError(t, err)
	assert.Equal(t, Score{1, 2}, s)
}

// Every pair of codes yields a score from the catalog, and a code scored
// against itself is all black.
func TestComputeScore_Properties(t *testing.T) {
	for _, dims := range []struct{ colors, length int }{{4, 3}, {3, 4}, {2, 1}} {
		space, err := NewSpace(LetterPalette(dims.colors), dims.length)
		require.NoError(t, err)
		cat := space.Catalog()
		k := dims.length
		all := space.All()
		for _, a := range all {
			assert.Equal(t, Score{k, 0}, ComputeScore(a, a), "self score of %s", a)
			for _, b := range all {
				s := ComputeScore(a, b)
				assert.LessOrEqual(t, s.Black+s.White, k)
				assert.NotEqual(t, Score{k - 1, 1}, s)
				assert.True(t, cat.Contains(s), "%s vs %s gave %s", a, b, s)
			}
		}
	}
}

func TestCatalog(t *testing.T) {
	cat := CatalogFor(3)
	assert.Equal(t, []Score{
		{0, 0}, {0, 1}, {0, 2}, {0, 3},
		{1, 0}, {1, 1}, {1, 2},
		{2, 0},
		{3, 0},
	}, cat.Scores())
	assert.Equal(t, 9, cat.Len())
	assert.Same(t, cat, CatalogFor(3))

	assert.Equal(t, -1, cat.Index(Score{2, 1}))
	assert.Equal(t, -1, cat.Index(Score{3, 1}))
	assert.Equal(t, -1, cat.Index(Score{-1, 0}))
	assert.Equal(t, 6, cat.Index(Score{1, 2}))

	require.ErrorIs(t, cat.Validate(Score{2, 1}), ErrInvariantViolation)
	require.NoError(t, cat.Validate(Score{1, 1}))

	assert.Equal(t, []Score{{0, 0}, {1, 0}}, CatalogFor(1).Scores())
	assert.Equal(t, 14, CatalogFor(4).Len())
}

func TestSpace(t *testing.T) {
	space, err := NewSpace(LetterPalette(4), 3)
	require.NoError(t, err)
	assert.Equal(t, 64, space.Size())

	all := space.All()
	require.Len(t, all, 64)
	assert.Equal(t, "AAA", all[0].String())
	assert.Equal(t, "AAB", all[1].String())
	assert.Equal(t, "DDD", all[63].String())
	for i, c := range all {
		assert.Equal(t, i, space.Index(c))
	}

	assert.ErrorIs(t, space.Validate(NewCode(0, 1)), ErrLengthMismatch)
	assert.ErrorIs(t, space.Validate(NewCode(0, 1, 5)), ErrUnknownColor)
	assert.NoError(t, space.Validate(NewCode(3, 3, 3)))

	_, err = NewSpace(LetterPalette(26), 8)
	assert.ErrorIs(t, err, ErrSpaceTooLarge)
	_, err = NewSpace(LetterPalette(4), 0)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestPalette(t *testing.T) {
	p, err := NewPalette("White", "yellow", "pink", "purple")
	require.NoError(t, err)
	assert.Equal(t, 4, p.Size())

	c, err := p.ParseCode("white,pink pink")
	require.NoError(t, err)
	assert.Equal(t, NewCode(0, 2, 2), c)
	assert.Equal(t, "white pink pink", p.Format(c))

	c, err = p.ParseCode("adb")
	require.NoError(t, err)
	assert.Equal(t, "ADB", c.String())

	_, err = p.ParseCode("white,teal")
	assert.ErrorIs(t, err, ErrUnknownColor)

	_, err = NewPalette("red", "RED")
	assert.ErrorIs(t, err, ErrInvalidPalette)
	_, err = NewPalette()
	assert.ErrorIs(t, err, ErrInvalidPalette)

	small, err := p.Prefix(2)
	require.NoError(t, err)
	assert.Equal(t, 2, small.Size())
	_, err = p.Prefix(5)
	assert.ErrorIs(t, err, ErrInvalidPalette)
}

func TestParseScore(t *testing.T) {
	for in, want := range map[string]Score{
		"1B2W": {1, 2},
		"2w1b": {1, 2},
		"3B":   {3, 0},
		"0W":   {0, 0},
		"1,2":  {1, 2},
	} {
		got, err := ParseScore(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, bad := range []string{"", "12", "B", "1B1B", "1X", "a,b"} {
		_, err := ParseScore(bad)
		assert.Error(t, err, bad)
	}
	assert.Equal(t, "1B2W", Score{1, 2}.String())
}
