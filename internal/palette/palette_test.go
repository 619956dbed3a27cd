package palette

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/mastermind/internal/code"
)

func TestDefault(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)
	assert.Equal(t, 10, p.Size())
	assert.Equal(t, "white", p.Name(0))
	assert.Equal(t, "turquoise", p.Name(5))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.txt")
	require.NoError(t, os.WriteFile(path, []byte("# mine\nRed\n\ngreen\nblue\n"), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Size())
	assert.Equal(t, "red", p.Name(0))

	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("# nothing\n"), 0o644))
	_, err = Load(empty)
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	dup := filepath.Join(t.TempDir(), "dup.txt")
	require.NoError(t, os.WriteFile(dup, []byte("red\nRED\n"), 0o644))
	_, err = Load(dup)
	assert.ErrorIs(t, err, code.ErrInvalidPalette)
}

func TestRandomCode(t *testing.T) {
	space, err := code.NewSpace(code.LetterPalette(4), 3)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		c, err := RandomCode(space)
		require.NoError(t, err)
		assert.NoError(t, space.Validate(c))
	}

	a := RandomCodeFrom(rand.New(rand.NewSource(3)), space)
	b := RandomCodeFrom(rand.New(rand.NewSource(3)), space)
	assert.Equal(t, a, b)
}
