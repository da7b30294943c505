// Package align provides the Aligner collaborator spec.md §6 describes
// only through its interface: given a query and its surviving
// candidates, produce a scored pairwise alignment per candidate.
// Alignment itself is explicitly out of the core's scope (spec.md §1
// Non-goals list "alignment backtracking"); this package exists so
// cmd/sword has a complete, runnable implementation behind the
// interface.
package align

import (
	"errors"
	"fmt"

	biogoalign "github.com/kortschak/biogo/align/nw"
	biogoseq "github.com/kortschak/biogo/seq"
	"github.com/kortschak/biogo/util"

	"github.com/rvaser/sword/blosum"
	"github.com/rvaser/sword/seq"
)

// Mode selects the alignment algorithm, per spec.md §6's {NW, HW, OV, SW}.
type Mode int

const (
	NW Mode = iota
	HW
	OV
	SW
)

func (m Mode) String() string {
	switch m {
	case NW:
		return "NW"
	case HW:
		return "HW"
	case OV:
		return "OV"
	case SW:
		return "SW"
	default:
		return "unknown"
	}
}

// ErrUnsupportedMode is returned for alignment modes this implementation
// does not back with an algorithm. Only NW (global, Needleman-Wunsch) is
// implemented here, grounded on the teacher's own biogo/align/nw usage
// (cmd/cablastp-compress/nw.go); HW/OV/SW would need banded
// local/semi-global variants the teacher never carries, and alignment
// backtracking generally is named out of scope in spec.md §1.
var ErrUnsupportedMode = errors.New("align: unsupported mode")

// Result is one candidate's pairwise alignment outcome.
type Result struct {
	TargetID uint32
	Score    int
	Query    []byte
	Target   []byte
}

// Aligner is the external collaborator interface spec.md §6 names.
type Aligner interface {
	Align(query seq.Sequence, targets []seq.Sequence, mode Mode) ([]Result, error)
}

// alphabetBytes reverses the protein alphabet's ASCII-offset encoding so
// codes can be handed to biogo's byte-oriented aligner.
func alphabetBytes(codes []uint32) []byte {
	out := make([]byte, len(codes))
	for i, c := range codes {
		out[i] = byte(c) + 'A'
	}
	return out
}

// NaiveAligner backs the Aligner interface with biogo's Needleman-Wunsch
// implementation, the same aligner the teacher wires up in
// cmd/cablastp-compress/nw.go: a util.CTL lookup built from the matrix's
// alphabet, handed to an nw.Aligner alongside the matrix and gap
// character.
type NaiveAligner struct {
	matrix  blosum.Matrix
	aligner *biogoalign.Aligner
}

// NewNaiveAligner builds a NaiveAligner over matrix.
func NewNaiveAligner(matrix blosum.Matrix) *NaiveAligner {
	lookup := make(map[int]int)
	for i, r := range matrix.Alphabet() {
		lookup[int(r)] = i
	}

	return &NaiveAligner{
		matrix: matrix,
		aligner: &biogoalign.Aligner{
			Matrix:  nwMatrix(matrix),
			LookUp:  *util.NewCTL(lookup),
			GapChar: '-',
		},
	}
}

// Align runs NW alignment between query and every target. For any mode
// other than NW it aligns nothing and returns a single ErrUnsupportedMode
// error for the whole call; the caller decides whether to go on with
// other queries.
func (a *NaiveAligner) Align(query seq.Sequence, targets []seq.Sequence, mode Mode) ([]Result, error) {
	if mode != NW {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMode, mode)
	}

	qSeq := &biogoseq.Seq{Seq: alphabetBytes(query.Codes())}
	results := make([]Result, len(targets))
	for i, t := range targets {
		tSeq := &biogoseq.Seq{Seq: alphabetBytes(t.Codes())}
		aligned, err := a.aligner.Align(qSeq, tSeq)
		if err != nil {
			return nil, fmt.Errorf("align target %d: %w", t.ID(), err)
		}
		results[i] = Result{
			TargetID: t.ID(),
			Score:    a.score(aligned[0].Seq, aligned[1].Seq),
			Query:    aligned[0].Seq,
			Target:   aligned[1].Seq,
		}
	}
	return results, nil
}

// score re-derives the alignment score from the aligned byte pair using
// the configured matrix and gap penalties, since biogo's Aligner.Align
// returns only the aligned sequences, not a score.
func (a *NaiveAligner) score(q, t []byte) int {
	total := 0
	inGap := false
	for i := range q {
		switch {
		case q[i] == '-' || t[i] == '-':
			if !inGap {
				total -= a.matrix.GapOpen()
				inGap = true
			} else {
				total -= a.matrix.GapExtend()
			}
		default:
			inGap = false
			total += a.matrix.Score(q[i], t[i])
		}
	}
	return total
}

// nwMatrix adapts a blosum.Matrix into the raw scoring table
// biogo/align/nw.Aligner.Matrix expects: a square table over the
// matrix's alphabet plus one trailing gap row/column, matching the
// `gap := len(aligner.Matrix) - 1` convention in the teacher's nw.go.
func nwMatrix(m blosum.Matrix) [][]int {
	alphabet := m.Alphabet()
	n := len(alphabet)
	table := make([][]int, n+1)
	for i := 0; i <= n; i++ {
		table[i] = make([]int, n+1)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			table[i][j] = m.Score(alphabet[i], alphabet[j])
		}
		table[i][n] = -m.GapExtend()
		table[n][i] = -m.GapExtend()
	}
	table[n][n] = 0
	return table
}
