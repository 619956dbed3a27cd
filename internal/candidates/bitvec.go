package candidates

import "encoding/binary"

// bitvec marks which space indices belong to a set.
type bitvec struct {
	words []uint64
	count int
}

func newBitvec(size int) *bitvec {
	return &bitvec{words: make([]uint64, (size+63)/64)}
}

func (bv *bitvec) set(i int) {
	w, b := i/64, uint(i%64)
	if bv.words[w]&(1<<b) == 0 {
		bv.words[w] |= 1 << b
		bv.count++
	}
}

func (bv *bitvec) get(i int) bool {
	return bv.words[i/64]&(1<<uint(i%64)) != 0
}

// key packs the words into a string usable as a map key.
func (bv *bitvec) key() string {
	buf := make([]byte, 8*len(bv.words))
	for i, w := range bv.words {
		binary.LittleEndian.PutUint64(buf[8*i:], w)
	}
	return string(buf)
}
