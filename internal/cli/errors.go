package cli

import "errors"

// ErrInvalidConfiguration is returned by Options.Validate for any
// start-up-fatal misconfiguration, per spec.md §7.
var ErrInvalidConfiguration = errors.New("cli: invalid configuration")
