// SPDX-License-Identifier: MIT
// Package: cftp
//
// errors.go: sentinel errors for the cftp package.
//
// Callers branch with errors.Is. Implementations add method context with
// fmt.Errorf("%s: ...: %w", method, ..., ErrX).

package cftp

import "errors"

// ErrBadSize indicates a non-positive lattice side or batch length.
var ErrBadSize = errors.New("cftp: size must be positive")

// ErrBadBudget indicates a non-positive time budget or a negative burn-in.
var ErrBadBudget = errors.New("cftp: invalid time budget")

// ErrInvalidParam indicates a chain parameter the update rule rejects,
// e.g. a β outside the domain where the rule is monotone.
var ErrInvalidParam = errors.New("cftp: invalid chain parameter")

// ErrNoRule indicates the configured rule factory returned no rule.
var ErrNoRule = errors.New("cftp: update rule unavailable")

// ErrMonotonicityViolated indicates min_chain ≤ max_chain stopped holding
// after an update. It is only detected under WithMonotoneCheck.
var ErrMonotonicityViolated = errors.New("cftp: update rule is not monotone")

// ErrNotConverged indicates at least one request did not coalesce within MaxTime.
var ErrNotConverged = errors.New("cftp: samples did not coalesce within budget")
