package daily

import (
	"encoding/binary"
	"fmt"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/robalobadob/mastermind/internal/code"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// CodeIndex returns a deterministic index for a date using
// BLAKE2b-256 keyed with salt over YYYY-MM-DD, modulo size.
func CodeIndex(date time.Time, salt string, size int) (int, error) {
	if size <= 0 {
		return 0, nil
	}
	h, err := blake2b.New256([]byte(salt))
	if err != nil {
		return 0, fmt.Errorf("daily: salt: %w", err)
	}
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// take first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(size)), nil
}

// Secret returns the code of the day for space.
func Secret(date time.Time, salt string, space *code.Space) (code.Code, error) {
	i, err := CodeIndex(date, salt, space.Size())
	if err != nil {
		return code.Code{}, err
	}
	return space.At(i), nil
}
