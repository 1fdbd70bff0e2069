// Package lattice defines the state space shared by the samplers: K×K
// square lattices of binary spins and contiguous batch arenas of them.
//
// What:
//
//   - Spin is one site value, Low (−1) or High (+1).
//   - Config is a row-major view of a single K×K configuration.
//   - Batch stores N configurations back to back in one allocation so a
//     sweep over the batch walks memory linearly.
//   - Configurations are partially ordered site-wise (LessEq); all-Low and
//     all-High are the minimum and maximum of that order.
//
// Boundaries:
//
//   - Free (open) boundary: a site on the edge simply has fewer neighbours;
//     nothing wraps around. NeighborSum therefore ranges over −4 … 4.
//
// Complexity:
//
//   - NewConfig / NewBatch: O(N·K²) time and memory.
//   - Equal, LessEq, Magnetization: O(K²).
//   - NeighborSum: O(1).
//
// Errors:
//
//   - ErrBadSize: K or N is not positive.
//   - ErrShapeMismatch: two configurations of different K are compared.
package lattice
