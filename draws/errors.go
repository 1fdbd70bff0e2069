package draws

import "errors"

// ErrUnknownSource indicates a source name New does not recognise.
var ErrUnknownSource = errors.New("draws: unknown source")
