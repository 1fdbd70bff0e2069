package ising

import "errors"

var (
	// ErrInvalidBeta indicates an inverse temperature outside the monotone domain [0, +Inf).
	ErrInvalidBeta = errors.New("ising: beta must be finite and non-negative")
	// ErrBadSize indicates a non-positive lattice side.
	ErrBadSize = errors.New("ising: lattice side must be positive")
	// ErrTooLarge indicates a lattice too large for exhaustive enumeration.
	ErrTooLarge = errors.New("ising: lattice too large to enumerate")
)
