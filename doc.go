// Package cftp is a toolkit for drawing exact samples from monotone Markov
// chains by coupling from the past, with the 2-D Ising model as the
// worked case.
//
// What is in the box?
//
//	A batched Propp–Wilson sampler that brings together:
//		• Lattices: K×K spin configurations, batches, free boundary
//		• Draws: counter-based uniforms keyed by (time, sample id)
//		• Dynamics: checkerboard heat-bath sweeps for the Ising model
//		• Backends: serial and sharded parallel execution
//		• Validation: exact Gibbs laws of tiny lattices, forward chains
//
// Why coupling from the past?
//
//   - Exact: a coalesced sample follows the stationary law, no burn-in guess
//   - Reproducible: the same seed gives the same samples on any backend
//   - Honest: samples that did not coalesce in budget are reported, never faked
//
// Under the hood, everything is organized under these subpackages:
//
//	lattice/  Spin, Config and Batch types, neighbour sums, partial order
//	draws/    ChaCha20 and BLAKE2b uniform sources, draw recorder
//	ising/    heat-bath rule, Gibbs energy and exact enumeration
//	backend/  serial and parallel executors, name registry
//	cftp/     Sampler, Request/Result, forward chains, Prometheus metrics
//	cmd/cftp  command line front end with JSON reports and SQLite history
//
// Quick picture of one doubling round:
//
//	t = −T … −1    top    ████████ ─┐
//	                                ├─ equal at t = 0 ⇒ exact sample
//	               bottom ░░░░░░░░ ─┘
//
// A request that has not coalesced is retried with 2T and fresh chains,
// reusing the draws at every time it has already seen.
//
//	go get github.com/katalvlaran/cftp/cftp
package cftp
