package blosum

import "errors"

// ErrUnknownMatrix is returned by Named when asked for a matrix this
// package does not carry data for.
var ErrUnknownMatrix = errors.New("blosum: unknown matrix")
