package hyperlimit

import "errors"

// ErrInvalidArgument is the sentinel wrapped by every precondition failure
// raised from CreateLimiter. Callers should check it with errors.Is rather
// than comparing returned errors directly, since the wrapped detail text
// varies.
var ErrInvalidArgument = errors.New("hyperlimit: invalid argument")
