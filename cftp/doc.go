// Package cftp draws exact samples from the stationary law of a monotone
// lattice spin chain with Propp–Wilson coupling from the past, batched over
// many independent requests.
//
// What:
//
//   - Sampler.Sample runs, for every pending request, a pair of chains
//     started at all-Low and all-High at time −T and driven to time −1 by
//     the same update and the same random fields. Pairs that meet are
//     exact samples with coalescence time T; the others retry with 2T until
//     T exceeds the budget MaxTime.
//   - Requests that never coalesce are reported as such. No configuration
//     is ever produced for them.
//   - Sampler.Forward runs ordinary forward heat-bath chains for a fixed
//     burn-in, an approximate baseline for comparison.
//
// Randomness:
//
//   - Every field is read from a draws.Source keyed by (t, sample id). A
//     deeper window replays exactly the fields a shallower one used for the
//     overlapping times, which is what makes the output exact.
//
// Execution:
//
//   - Rounds are synchronous: all pending requests finish their T steps
//     before coalescence is evaluated. Within a round the batch is sharded
//     by the configured backend.Backend; the result does not depend on it.
//   - Context cancellation is honoured between rounds only.
//
// Options:
//
//   - WithRule, WithSource / WithSeed, WithBackend, WithLogger, WithMetrics,
//     WithMonotoneCheck, WithRoundHook. Option constructors panic on nil;
//     sampling itself returns errors and never panics.
//
// Errors:
//
//   - ErrBadSize, ErrBadBudget, ErrInvalidParam: rejected before any work.
//   - ErrNoRule: the rule factory produced no update rule.
//   - ErrMonotonicityViolated: WithMonotoneCheck caught an order inversion.
//   - ErrNotConverged: returned by Result.Err when requests are pending.
//
// Complexity:
//
//   - One round with window T costs O(T · pending · K²); the doubling
//     schedule costs at most twice the final round.
package cftp
