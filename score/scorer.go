package score

import (
	"github.com/rvaser/sword/kmer"
	"github.com/rvaser/sword/query"
)

// Scorer runs the inner loop of spec.md §4.D: for one target, roll a
// k-mer across its codes, look up every query occurrence of that k-mer
// through the index, and bump the corresponding diagonal bucket.
type Scorer struct {
	bits   uint
	length int
}

// NewScorer builds a Scorer for the given alphabet and k-mer length.
func NewScorer(alphabet kmer.Alphabet, length int) Scorer {
	return Scorer{bits: alphabet.BitsPerSymbol(), length: length}
}

// Report receives one admitted candidate: the query slot and the maximum
// diagonal score observed for it while scanning the current target.
type Report func(slot int, score uint16)

// ScoreTarget scans target against idx using board as scratch space,
// invoking report once per query slot whose maximum diagonal count rose
// above zero. board must already be arranged for target's length (see
// Board.Arrange) before calling ScoreTarget.
func (s Scorer) ScoreTarget(target []uint32, idx *query.Index, board *Board, report Report) {
	if len(target) < s.length {
		return
	}

	roller := kmer.NewRoller(s.bits, s.length)
	for i := 0; i < s.length-1; i++ {
		roller.Push(target[i])
	}

	for pos := s.length - 1; pos < len(target); pos++ {
		code := roller.Push(target[pos])
		targetStart := pos - s.length + 1

		for _, hit := range idx.Hits(code) {
			diagID := board.DiagonalID(int(hit.Slot), int(hit.Position), targetStart)
			board.Increment(int(hit.Slot), diagID)
		}
	}

	for slot := 0; slot < idx.Len(); slot++ {
		if max := board.MaxScore(slot); max > 0 {
			report(slot, max)
			board.ResetSlot(slot)
		}
	}
	board.ClearTouched()
}
