// Package testutil provides small in-memory fixtures shared by package
// tests, standing in for a real FASTA file without touching the
// filesystem.
package testutil

import (
	"github.com/rvaser/sword/internal/vlog"
	"github.com/rvaser/sword/kmer"
	"github.com/rvaser/sword/seq"
)

// Record is one raw (name, residues) pair to feed through a MemReader.
type Record struct {
	Name     string
	Residues string
}

// MemReader is a seq.Reader over an in-memory list of records, applying
// the same whole-record validation a real FASTA reader does: any residue
// the alphabet cannot encode drops the entire record.
type MemReader struct {
	alphabet kmer.Alphabet
	records  []Record
	pos      int
	nextID   uint32
}

// NewMemReader builds a MemReader encoding records through alphabet.
func NewMemReader(alphabet kmer.Alphabet, records []Record) *MemReader {
	return &MemReader{alphabet: alphabet, records: records}
}

func (m *MemReader) Close() error { return nil }

// ReadChains appends whole records until maxBytes of residue data has
// been consumed or the record list is exhausted.
func (m *MemReader) ReadChains(dst *[]seq.Sequence, maxBytes int64) (bool, error) {
	var consumed int64
	for consumed < maxBytes {
		if m.pos >= len(m.records) {
			return false, nil
		}
		rec := m.records[m.pos]
		m.pos++
		consumed += int64(len(rec.Residues))

		codes, ok := m.encode(rec.Residues)
		if !ok {
			vlog.Vprintf("dropping sequence %q: invalid residue\n", rec.Name)
			continue
		}
		s, err := seq.New(m.nextID, rec.Name, codes)
		if err != nil {
			vlog.Vprintf("dropping sequence %q: %s\n", rec.Name, err)
			continue
		}
		m.nextID++
		*dst = append(*dst, s)
	}
	return true, nil
}

func (m *MemReader) encode(residues string) ([]uint32, bool) {
	if residues == "" {
		return nil, false
	}
	codes := make([]uint32, len(residues))
	for i := 0; i < len(residues); i++ {
		code, ok := m.alphabet.Encode(residues[i])
		if !ok {
			return nil, false
		}
		codes[i] = code
	}
	return codes, true
}
