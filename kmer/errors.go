package kmer

import "errors"

// ErrInvalidConfiguration is wrapped by table construction failures caused
// by an out-of-range kmer length for the chosen alphabet.
var ErrInvalidConfiguration = errors.New("kmer: invalid configuration")
