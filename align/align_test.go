package align

import (
	"testing"

	"github.com/rvaser/sword/blosum"
	"github.com/rvaser/sword/seq"
)

func zeroSeq(t *testing.T) seq.Sequence {
	t.Helper()
	s, err := seq.New(0, "q0", []uint32{0, 2, 3})
	if err != nil {
		t.Fatalf("seq.New: %v", err)
	}
	return s
}

func TestNWMatrixIsSquarePlusGapRow(t *testing.T) {
	m := blosum.NewBlosum62(10, 1)
	table := nwMatrix(m)
	want := len(m.Alphabet()) + 1
	if len(table) != want {
		t.Fatalf("len(table) = %d, want %d", len(table), want)
	}
	for _, row := range table {
		if len(row) != want {
			t.Fatalf("row length = %d, want %d", len(row), want)
		}
	}
}

func TestScoreCountsGapOpenOnceThenExtend(t *testing.T) {
	m := blosum.NewBlosum62(10, 1)
	a := &NaiveAligner{matrix: m}

	// A-CD vs ABCD: a single one-residue gap in the query.
	score := a.score([]byte("A-CD"), []byte("ABCD"))
	want := m.Score('A', 'A') - m.GapOpen() + m.Score('C', 'C') + m.Score('D', 'D')
	if score != want {
		t.Fatalf("score = %d, want %d", score, want)
	}
}

func TestScoreExtendsAMultiResidueGap(t *testing.T) {
	m := blosum.NewBlosum62(10, 1)
	a := &NaiveAligner{matrix: m}

	score := a.score([]byte("A--D"), []byte("ABCD"))
	want := m.Score('A', 'A') - m.GapOpen() - m.GapExtend() + m.Score('D', 'D')
	if score != want {
		t.Fatalf("score = %d, want %d", score, want)
	}
}

func TestAlignRejectsUnsupportedMode(t *testing.T) {
	a := NewNaiveAligner(blosum.NewBlosum62(10, 1))
	_, err := a.Align(zeroSeq(t), nil, SW)
	if err == nil {
		t.Fatalf("expected an error for an unsupported mode")
	}
}
