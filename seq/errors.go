package seq

import "errors"

// ErrInvalidSequence is wrapped when a sequence has a blank name or
// contains no residues the target alphabet can encode, per spec.md §4.A
// and the teacher's own InvalidSequence-style dropped-record handling.
var ErrInvalidSequence = errors.New("seq: invalid sequence")

// ErrReader wraps an underlying I/O failure surfaced while streaming
// chains of sequences from a Reader.
var ErrReader = errors.New("seq: reader error")
