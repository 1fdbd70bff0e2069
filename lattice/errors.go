package lattice

import "errors"

var (
	// ErrBadSize indicates a non-positive lattice side or batch length.
	ErrBadSize = errors.New("lattice: size must be positive")
	// ErrShapeMismatch indicates an operation on configurations of different sides.
	ErrShapeMismatch = errors.New("lattice: configurations differ in shape")
)
