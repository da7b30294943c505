// Package score implements the diagonal hit-counting scorer: one target
// sequence is scanned against a query index, accumulating hits per
// (query, diagonal) and emitting per-query maximum diagonal scores.
package score

// Board is the reusable per-task work buffer spec.md §3 calls the
// "ScoreBoard": a flat u16 counter array addressed by a diagonal
// encoding, plus the per-slot maximum tracked across one target's scan.
// It is sized once from the task's largest target and reused across
// every target the task scans, following the "scoreboard reuse" design
// note in spec.md §9 — the whole board is never re-zeroed, only the
// ranges a target actually touched.
type Board struct {
	scores   []uint16
	maxScore []uint16

	diagLen   []int
	diagStart []int

	touched []int
}

// NewBoard allocates a Board sized for a group of groupLen query slots
// scanned against targets up to capacity residues long at the configured
// k-mer length. capacity should be the task's maximum target length so
// the board never needs to grow mid-task.
func NewBoard(groupLen int, capacity int, queryLens []int, kmerLength int) *Board {
	b := &Board{
		maxScore:  make([]uint16, groupLen),
		diagLen:   make([]int, groupLen),
		diagStart: make([]int, groupLen),
	}
	b.arrange(queryLens, capacity, kmerLength)
	b.scores = make([]uint16, b.diagStart[groupLen-1]+b.diagLen[groupLen-1])
	b.touched = make([]int, 0, 64)
	return b
}

// Arrange recomputes diag_len/diag_start for the target currently being
// scanned: each target's length varies within the task's upper bound, so
// these ranges are rebuilt once per target while the underlying scores
// buffer, sized to the task's maximum, is reused untouched outside the
// ranges a target's diagonals actually span.
func (b *Board) Arrange(queryLens []int, targetLen, kmerLength int) {
	b.arrange(queryLens, targetLen, kmerLength)
}

func (b *Board) arrange(queryLens []int, targetLen, kmerLength int) {
	start := 0
	for i, qlen := range queryLens {
		dl := qlen + targetLen - 2*kmerLength + 1
		if dl < 1 {
			dl = 1
		}
		b.diagLen[i] = dl
		b.diagStart[i] = start
		start += dl
	}
}

// DiagonalID computes the diagonal bucket a hit of query slot s at query
// position p, target k-mer start q, belongs to, per spec.md §3's
// "(q − p + diag_len[s]) mod diag_len[s] + diag_start[s]" formula.
func (b *Board) DiagonalID(slot int, queryPos, targetPos int) int {
	dl := b.diagLen[slot]
	d := (targetPos - queryPos + dl) % dl
	if d < 0 {
		d += dl
	}
	return d + b.diagStart[slot]
}

// Increment bumps the diagonal bucket for a hit, saturating at
// math.MaxUint16 rather than wrapping, and updates the slot's running
// maximum. It records the bucket as touched the first time it moves off
// zero so cleanup can be proportional to active diagonals rather than
// board size.
func (b *Board) Increment(slot, diagID int) {
	if b.scores[diagID] == 0 {
		b.touched = append(b.touched, diagID)
	}
	if b.scores[diagID] < 0xFFFF {
		b.scores[diagID]++
	}
	if b.scores[diagID] > b.maxScore[slot] {
		b.maxScore[slot] = b.scores[diagID]
	}
}

// MaxScore returns the highest diagonal count observed for slot during
// the current target's scan.
func (b *Board) MaxScore(slot int) uint16 { return b.maxScore[slot] }

// ResetSlot clears a slot's running maximum after its candidate has been
// reported, ready for the next target.
func (b *Board) ResetSlot(slot int) { b.maxScore[slot] = 0 }

// ClearTouched zeroes every bucket incremented since the last call and
// forgets them, leaving the board all-zero without a full-length scan.
// This is the "only zero touched buckets" invariant from spec.md §3.
func (b *Board) ClearTouched() {
	for _, id := range b.touched {
		b.scores[id] = 0
	}
	b.touched = b.touched[:0]
}

// AllZero reports whether every bucket is currently zero, used by tests
// asserting the between-targets invariant from spec.md §8.
func (b *Board) AllZero() bool {
	for _, v := range b.scores {
		if v != 0 {
			return false
		}
	}
	return true
}
