// Package backend selects how a batch of independent samples is executed.
//
// A Backend receives the batch length n and a shard function fn(lo, hi)
// and guarantees that every index in [0, n) is covered by exactly one
// call. Correctness of the samplers never depends on the backend: draws are
// keyed by (t, sample), so any partition and any ordering of shards yields
// bit-identical results.
//
//   - Serial runs one shard on the calling goroutine.
//   - Parallel splits the batch into contiguous shards executed by a
//     bounded errgroup.
//
// The choice is made once, at the call boundary, by name (Lookup) or by
// value. There is no runtime probing: an unknown name, such as an
// accelerator backend that was never registered, fails with ErrUnavailable.
package backend
