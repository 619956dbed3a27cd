// internal/palette/palette.go
//
// Palette loading and random code generation.
//
// Responsibilities:
//   - Load color names from a file, or fall back to the embedded default list.
//   - Draw random secrets, either from crypto/rand or from a seeded source
//     for reproducible simulations.
//
// File format:
//   One color name per line; blank lines and lines starting with '#' are skipped.
//   Names are lowercased. The default list lives in assets/colors.txt.

package palette

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	mrand "math/rand"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/mastermind/assets"
	"github.com/robalobadob/mastermind/internal/code"
)

var (
	initOnce       sync.Once
	defaultPalette code.Palette
	initialErr     error
)

// Default returns the embedded palette, loaded exactly once.
func Default() (code.Palette, error) {
	initOnce.Do(func() {
		names, err := assets.ColorList()
		if err != nil {
			initialErr = err
			return
		}
		defaultPalette, initialErr = code.NewPalette(names...)
	})
	return defaultPalette, initialErr
}

// Load reads a palette from path, or returns Default when path is empty.
func Load(path string) (code.Palette, error) {
	if path == "" {
		return Default()
	}
	names, err := readColorFile(path)
	if err != nil {
		return code.Palette{}, err
	}
	if len(names) == 0 {
		return code.Palette{}, errors.New("palette: color file is empty")
	}
	return code.NewPalette(names...)
}

// readColorFile loads one color name per line from a file.
func readColorFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(strings.ToLower(sc.Text()))
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// RandomCode returns a cryptographically random code from space.
func RandomCode(space *code.Space) (code.Code, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(space.Size())))
	if err != nil {
		return code.Code{}, fmt.Errorf("palette: random code: %w", err)
	}
	return space.At(int(n.Int64())), nil
}

// RandomCodeFrom draws a code using r, for reproducible runs.
func RandomCodeFrom(r *mrand.Rand, space *code.Space) code.Code {
	return space.At(r.Intn(space.Size()))
}
