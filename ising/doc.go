// Package ising implements the monotone update rule used by the samplers:
// a checkerboard heat-bath sweep for the ferromagnetic Ising model on a
// K×K lattice with free boundaries.
//
// Sweep:
//
//   - Even sites (x+y even) are refreshed first from their neighbours, then
//     odd sites from the freshly updated even sites.
//   - Site (x,y) becomes High iff u(x,y) < 1/(1+exp(−2β·s)), where s is the
//     neighbour sum and u the uniform drawn for that site. Each site reads
//     exactly one uniform per sweep.
//
// Monotonicity:
//
//   - For β ≥ 0 the High probability is non-decreasing in s, so two
//     configurations A ≤ B driven by the same field stay ordered. That is
//     the precondition for coupling from the past; negative or non-finite β
//     is rejected with ErrInvalidBeta.
//
// Exact law:
//
//   - Enumerate and ExactLaw walk all 2^(K²) configurations (K ≤ 4) to give
//     the stationary law in closed form for tests and diagnostics.
package ising
