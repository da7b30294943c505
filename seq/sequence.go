// Package seq holds the immutable encoded-sequence value ("Encoded
// sequence" in spec.md §2.A) and the streaming Reader abstraction the
// chunk scheduler pulls chains of them from.
package seq

import "fmt"

// Sequence is an immutable buffer of alphabet codes plus identity
// metadata, per spec.md §3: "(id, name, data: byte sequence of alphabet
// codes)". Ids are dense and assigned in load order, independent of any
// later reordering the scheduler performs.
type Sequence struct {
	id    uint32
	name  string
	codes []uint32
}

// New builds a Sequence, rejecting blank names or empty code slices as
// InvalidSequence per spec.md §4.A and §7.
func New(id uint32, name string, codes []uint32) (Sequence, error) {
	if name == "" {
		return Sequence{}, fmt.Errorf("%w: blank sequence name", ErrInvalidSequence)
	}
	if len(codes) == 0 {
		return Sequence{}, fmt.Errorf("%w: %q has no valid residues", ErrInvalidSequence, name)
	}
	return Sequence{id: id, name: name, codes: codes}, nil
}

// ID returns the sequence's dense, monotonically assigned identifier.
func (s Sequence) ID() uint32 { return s.id }

// Name returns the sequence's FASTA header name.
func (s Sequence) Name() string { return s.name }

// Len returns the number of residues in the sequence.
func (s Sequence) Len() int { return len(s.codes) }

// Codes returns the sequence's alphabet-code buffer. Callers must treat
// it as read-only: the scorer and query index both hold long-lived
// references into chunk and query slabs.
func (s Sequence) Codes() []uint32 { return s.codes }
