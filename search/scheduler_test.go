package search

import (
	"context"
	"testing"

	"github.com/rvaser/sword/blosum"
	"github.com/rvaser/sword/kmer"
	"github.com/rvaser/sword/testutil"
)

func newTestScheduler(t *testing.T, threshold, maxCandidates, numWorkers int) *Scheduler {
	t.Helper()
	alphabet := kmer.NewProteinAlphabet()
	matrix := blosum.NewBlosum62(10, 1)
	cfg := DefaultConfig(alphabet, matrix)
	cfg.Threshold = threshold
	cfg.MaxCandidates = maxCandidates
	cfg.NumWorkers = numWorkers
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

// TestScenarioDirectOverlap reproduces spec.md §8 scenario 1.
func TestScenarioDirectOverlap(t *testing.T) {
	s := newTestScheduler(t, 0, 30000, 1)
	alphabet := kmer.NewProteinAlphabet()

	qr := testutil.NewMemReader(alphabet, []testutil.Record{{Name: "q0", Residues: "AAAAA"}})
	dr := testutil.NewMemReader(alphabet, []testutil.Record{
		{Name: "t0", Residues: "AAAAA"},
		{Name: "t1", Residues: "AAACC"},
		{Name: "t2", Residues: "CCCCC"},
	})

	out, err := s.Search(context.Background(), qr, dr)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 query result, got %d", len(out))
	}
	ids := out[0]
	if len(ids) != 2 || ids[0] != 0 || ids[1] != 1 {
		t.Fatalf("Indexes[0] = %v, want [0 1]", ids)
	}
}

// TestScenarioExactScore reproduces spec.md §8 scenario 2 at the
// scheduler level: a self-match of "ACDEFG" at L=3 yields exactly one
// candidate, target 0. The score of 4 itself is checked by the score
// package's TestScoreTargetSelfMatch, since Indexes carries ids only.
func TestScenarioExactScore(t *testing.T) {
	s := newTestScheduler(t, 0, 30000, 1)
	alphabet := kmer.NewProteinAlphabet()

	qr := testutil.NewMemReader(alphabet, []testutil.Record{{Name: "q0", Residues: "ACDEFG"}})
	dr := testutil.NewMemReader(alphabet, []testutil.Record{{Name: "t0", Residues: "ACDEFG"}})

	out, err := s.Search(context.Background(), qr, dr)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(out[0]) != 1 || out[0][0] != 0 {
		t.Fatalf("Indexes[0] = %v, want [0]", out[0])
	}
}

// TestScenarioInvalidTargetDropped reproduces spec.md §8 scenario 3: a
// target containing an invalid residue drops entirely at load time and
// never becomes a candidate.
func TestScenarioInvalidTargetDropped(t *testing.T) {
	s := newTestScheduler(t, 0, 30000, 1)
	alphabet := kmer.NewProteinAlphabet()

	qr := testutil.NewMemReader(alphabet, []testutil.Record{{Name: "q0", Residues: "MKVLWA"}})
	dr := testutil.NewMemReader(alphabet, []testutil.Record{
		{Name: "t0", Residues: "MKVLWA"},
		{Name: "t1", Residues: "MKVLWB"},
	})

	out, err := s.Search(context.Background(), qr, dr)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(out[0]) != 1 || out[0][0] != 0 {
		t.Fatalf("Indexes[0] = %v, want [0] (target 1 must be dropped at load time)", out[0])
	}
}

// TestScenarioMaxCandidatesTruncates reproduces spec.md §8 scenario 5:
// max_candidates=2 with a query scoring 5, 9, 7 on three targets keeps
// the two highest-scoring ids in ascending order.
func TestScenarioMaxCandidatesTruncates(t *testing.T) {
	s := newTestScheduler(t, 0, 2, 1)
	alphabet := kmer.NewProteinAlphabet()

	qr := testutil.NewMemReader(alphabet, []testutil.Record{{Name: "q0", Residues: "ACDEFGHIKLMN"}})
	dr := testutil.NewMemReader(alphabet, []testutil.Record{
		{Name: "t0", Residues: "ACDEFGHWWWWW"}, // 5 shared 3-mers on diagonal 0
		{Name: "t1", Residues: "ACDEFGHIKLMW"}, // 9
		{Name: "t2", Residues: "ACDEFGHIKWWW"}, // 7
	})

	out, err := s.Search(context.Background(), qr, dr)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(out[0]) > 2 {
		t.Fatalf("Indexes[0] has %d entries, want at most 2", len(out[0]))
	}
	if len(out[0]) != 2 || out[0][0] != 1 || out[0][1] != 2 {
		t.Fatalf("Indexes[0] = %v, want [1 2]", out[0])
	}
}

// TestScenarioEmptyDatabase reproduces spec.md §8 scenario 6.
func TestScenarioEmptyDatabase(t *testing.T) {
	s := newTestScheduler(t, 0, 30000, 1)
	alphabet := kmer.NewProteinAlphabet()

	qr := testutil.NewMemReader(alphabet, []testutil.Record{{Name: "q0", Residues: "ACDEFG"}})
	dr := testutil.NewMemReader(alphabet, nil)

	out, err := s.Search(context.Background(), qr, dr)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(out[0]) != 0 {
		t.Fatalf("Indexes[0] = %v, want empty", out[0])
	}
}

// TestMaxCandidatesOneKeepsGlobalMaximum reproduces the max_candidates=1
// boundary from spec.md §8: the ring always holds at most the single
// global maximum for that query.
func TestMaxCandidatesOneKeepsGlobalMaximum(t *testing.T) {
	s := newTestScheduler(t, 0, 1, 1)
	alphabet := kmer.NewProteinAlphabet()

	qr := testutil.NewMemReader(alphabet, []testutil.Record{{Name: "q0", Residues: "ACDEFGHIKLMN"}})
	dr := testutil.NewMemReader(alphabet, []testutil.Record{
		{Name: "t0", Residues: "ACDEFGHIKLMN"},
		{Name: "t1", Residues: "ACDWWWWWWWWW"},
	})

	out, err := s.Search(context.Background(), qr, dr)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(out[0]) != 1 {
		t.Fatalf("Indexes[0] = %v, want exactly 1 entry", out[0])
	}
	if out[0][0] != 0 {
		t.Fatalf("Indexes[0] = %v, want the global best match [0]", out[0])
	}
}

// TestDeterminismAcrossWorkerCounts checks spec.md §8's "determinism
// modulo ties" invariant: the set of surviving candidates per query must
// not depend on the number of workers.
func TestDeterminismAcrossWorkerCounts(t *testing.T) {
	alphabet := kmer.NewProteinAlphabet()
	records := []testutil.Record{
		{Name: "t0", Residues: "ACDEFGHIKLMN"},
		{Name: "t1", Residues: "ACDEFGPQRSTV"},
		{Name: "t2", Residues: "MNPQRSTVWACD"},
		{Name: "t3", Residues: "GHIKLMNACDEF"},
	}

	run := func(workers int) []uint32 {
		s := newTestScheduler(t, 0, 30000, workers)
		qr := testutil.NewMemReader(alphabet, []testutil.Record{{Name: "q0", Residues: "ACDEFGHIKLMN"}})
		dr := testutil.NewMemReader(alphabet, records)
		out, err := s.Search(context.Background(), qr, dr)
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		return out[0]
	}

	one := run(1)
	many := run(3)
	if len(one) != len(many) {
		t.Fatalf("candidate set size differs across worker counts: %v vs %v", one, many)
	}
	for i := range one {
		if one[i] != many[i] {
			t.Fatalf("candidate sets differ across worker counts: %v vs %v", one, many)
		}
	}
}
