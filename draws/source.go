package draws

import (
	"encoding/binary"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Source maps (t, sample) to a uniform [0,1) field.
// Fill must write exactly len(dst) values and must return the same values
// for the same key on every call. Implementations are safe for concurrent use.
type Source interface {
	Fill(t int64, sample int, dst []float64)
}

// Source names accepted by New.
const (
	KindChaCha20 = "chacha20"
	KindBlake2b  = "blake2b"
)

// DefaultKind is the source used when none is configured.
const DefaultKind = KindChaCha20

// New returns the source registered under kind, keyed by seed.
func New(kind string, seed uint64) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindChaCha20:
		return NewChaCha(seed), nil
	case KindBlake2b:
		return NewBlake(seed), nil
	default:
		return nil, fmt.Errorf("New: %q: %w", kind, ErrUnknownSource)
	}
}

// deriveKey stretches a 64-bit seed into a 32-byte key, separated per source kind.
func deriveKey(domain string, seed uint64) [32]byte {
	buf := make([]byte, 0, len(domain)+8)
	buf = append(buf, domain...)
	buf = binary.LittleEndian.AppendUint64(buf, seed)

	return blake2b.Sum256(buf)
}

// unit maps 64 random bits onto [0,1) using the top 53 bits.
func unit(v uint64) float64 {
	return float64(v>>11) * (1.0 / (1 << 53))
}
