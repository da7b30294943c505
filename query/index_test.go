package query

import (
	"testing"

	"github.com/rvaser/sword/kmer"
	"github.com/rvaser/sword/seq"
)

func mustSeq(t *testing.T, id uint32, name, residues string, alphabet kmer.Alphabet) seq.Sequence {
	t.Helper()
	codes := make([]uint32, 0, len(residues))
	for _, r := range []byte(residues) {
		code, ok := alphabet.Encode(r)
		if !ok {
			t.Fatalf("residue %q not valid in alphabet", r)
		}
		codes = append(codes, code)
	}
	s, err := seq.New(id, name, codes)
	if err != nil {
		t.Fatalf("seq.New: %v", err)
	}
	return s
}

func TestBuildNoSubstitutionsFindsDirectHits(t *testing.T) {
	alphabet := kmer.NewProteinAlphabet()
	queries := []seq.Sequence{
		mustSeq(t, 0, "q0", "AAAAA", alphabet),
	}

	idx := Build(queries, 0, 1, alphabet, 3, nil, nil)
	if idx.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", idx.Len())
	}

	codes := kmer.Codes(queries[0].Codes(), alphabet.BitsPerSymbol(), 3)
	if len(codes) != 3 {
		t.Fatalf("expected 3 kmers in a 5-residue query at L=3, got %d", len(codes))
	}

	hits := idx.Hits(codes[0])
	if len(hits) != 3 {
		t.Fatalf("AAAAA should produce 3 occurrences of the AAA k-mer, got %d", len(hits))
	}
	for _, h := range hits {
		if h.Slot != 0 {
			t.Fatalf("unexpected slot %d", h.Slot)
		}
	}
}

func TestBuildMultipleSlots(t *testing.T) {
	alphabet := kmer.NewProteinAlphabet()
	queries := []seq.Sequence{
		mustSeq(t, 0, "q0", "ACDEFG", alphabet),
		mustSeq(t, 1, "q1", "ACDEFG", alphabet),
	}

	idx := Build(queries, 0, 2, alphabet, 3, nil, nil)
	codes := kmer.Codes(queries[0].Codes(), alphabet.BitsPerSymbol(), 3)
	hits := idx.Hits(codes[0])
	if len(hits) != 2 {
		t.Fatalf("expected one hit per slot for the shared leading k-mer, got %d", len(hits))
	}
	seen := map[uint32]bool{}
	for _, h := range hits {
		seen[h.Slot] = true
	}
	if !seen[0] || !seen[1] {
		t.Fatalf("expected hits from both slots, got %+v", hits)
	}
}

func TestBuildShortQueryHasNoKmers(t *testing.T) {
	alphabet := kmer.NewProteinAlphabet()
	queries := []seq.Sequence{
		mustSeq(t, 0, "q0", "AC", alphabet),
	}
	idx := Build(queries, 0, 1, alphabet, 3, nil, nil)
	if idx.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", idx.Len())
	}
	if idx.QueryLen(0) != 2 {
		t.Fatalf("QueryLen(0) = %d, want 2", idx.QueryLen(0))
	}
	if len(idx.hits) != 0 {
		t.Fatalf("expected no k-mer hits for a query shorter than L, got %d", len(idx.hits))
	}
}
