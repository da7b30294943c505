package search

import "errors"

// ErrInvalidConfiguration is returned by Config.Validate for any
// start-up-fatal misconfiguration, per spec.md §7.
var ErrInvalidConfiguration = errors.New("search: invalid configuration")
