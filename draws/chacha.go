package draws

import (
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
)

// ChaCha is a counter-mode Source: the keystream of ChaCha20 under a
// seed-derived key and the nonce (t, sample).
type ChaCha struct {
	key [chacha20.KeySize]byte
}

// NewChaCha returns a ChaCha source keyed by seed.
func NewChaCha(seed uint64) *ChaCha {
	return &ChaCha{key: deriveKey("cftp/chacha20", seed)}
}

// Fill implements Source.
func (c *ChaCha) Fill(t int64, sample int, dst []float64) {
	var nonce [chacha20.NonceSize]byte
	binary.LittleEndian.PutUint64(nonce[0:8], uint64(t))
	binary.LittleEndian.PutUint32(nonce[8:12], uint32(sample))

	// Fixed-size key and nonce: construction cannot fail.
	stream, err := chacha20.NewUnauthenticatedCipher(c.key[:], nonce[:])
	if err != nil {
		panic("draws: chacha20: " + err.Error())
	}

	var block [64]byte
	for i := 0; i < len(dst); i += 8 {
		clear(block[:])
		stream.XORKeyStream(block[:], block[:])
		for j := 0; j < 8 && i+j < len(dst); j++ {
			dst[i+j] = unit(binary.LittleEndian.Uint64(block[8*j:]))
		}
	}
}
