package draws

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// Blake is a keyed-hash Source: each block of eight uniforms is the
// BLAKE2b-512 digest of (t, sample, block) under a seed-derived key.
type Blake struct {
	key [32]byte
}

// NewBlake returns a Blake source keyed by seed.
func NewBlake(seed uint64) *Blake {
	return &Blake{key: deriveKey("cftp/blake2b", seed)}
}

// Fill implements Source.
func (b *Blake) Fill(t int64, sample int, dst []float64) {
	// A 32-byte key is within blake2b limits: construction cannot fail.
	h, err := blake2b.New512(b.key[:])
	if err != nil {
		panic("draws: blake2b: " + err.Error())
	}

	var msg [20]byte
	binary.LittleEndian.PutUint64(msg[0:8], uint64(t))
	binary.LittleEndian.PutUint32(msg[8:12], uint32(sample))

	var digest [blake2b.Size]byte
	for i, blk := 0, uint64(0); i < len(dst); i, blk = i+8, blk+1 {
		binary.LittleEndian.PutUint64(msg[12:20], blk)
		h.Reset()
		h.Write(msg[:])
		h.Sum(digest[:0])
		for j := 0; j < 8 && i+j < len(dst); j++ {
			dst[i+j] = unit(binary.LittleEndian.Uint64(digest[8*j:]))
		}
	}
}
