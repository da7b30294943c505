// Package blosum provides amino-acid similarity matrices used by the kmer
// substitution table and by the aligner. It plays the role of the
// "ScoreMatrix" collaborator described in the search engine's external
// interfaces: something that can score a pair of residues and carries gap
// penalties for use downstream in alignment.
package blosum

import "fmt"

// Matrix scores pairs of amino acid residues and carries the gap penalties
// that go with it. Residues are passed as raw ASCII letters ('A'..'Z');
// implementations only need to handle the 20 standard amino acids.
type Matrix interface {
	// Score returns the similarity score between two residues.
	Score(a, b byte) int

	// Name identifies the matrix, e.g. "BLOSUM62".
	Name() string

	// Alphabet lists the residues the matrix has entries for, in the same
	// order used to index its internal table.
	Alphabet() string

	GapOpen() int
	GapExtend() int
}

// Named looks up a matrix by its CLI name (e.g. "BLOSUM_62", "blosum62").
// Unknown names are a configuration error, not a panic, since they
// originate from user input (the -m/--matrix flag).
func Named(name string, gapOpen, gapExtend int) (Matrix, error) {
	switch normalizeName(name) {
	case "blosum62":
		return NewBlosum62(gapOpen, gapExtend), nil
	default:
		return nil, fmt.Errorf("%w: unknown score matrix %q", ErrUnknownMatrix, name)
	}
}

func normalizeName(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_' || c == '-' || c == ' ':
			continue
		case c >= 'A' && c <= 'Z':
			c = c - 'A' + 'a'
		}
		out = append(out, c)
	}
	return string(out)
}
