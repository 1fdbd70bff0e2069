// Package draws provides random fields that are pure functions of a
// logical time step and a sample identifier.
//
// Coupling from the past replays the same update at time t no matter how
// far back a run starts, so the uniform field used at (t, sample) must be
// identical every time it is requested. Instead of reseeding a shared
// generator, every Source here derives the field directly from the key:
//
//   - ChaCha runs the ChaCha20 stream cipher in counter mode with the key
//     derived from a seed and the nonce built from (t, sample).
//   - Blake hashes (t, sample, block) under a seed-derived BLAKE2b key.
//
// Both are safe for concurrent use and carry no mutable state, so any
// number of workers may ask for any keys in any order.
//
// Recorder wraps a Source and captures every field it hands out; tests use
// it to check that no key was ever served two different fields.
package draws
