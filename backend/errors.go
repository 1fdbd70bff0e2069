package backend

import "errors"

// ErrUnavailable indicates that the requested backend is not registered in this build.
var ErrUnavailable = errors.New("backend: unavailable")
