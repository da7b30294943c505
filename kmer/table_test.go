package kmer

import (
	"testing"

	"github.com/rvaser/sword/blosum"
)

func TestNewTableRejectsLengthOutOfRange(t *testing.T) {
	alphabet := NewProteinAlphabet()
	matrix := blosum.NewBlosum62(10, 1)
	if _, err := NewTable(alphabet, 2, 11, matrix); err == nil {
		t.Fatalf("expected an error for k-mer length below the protein minimum")
	}
	if _, err := NewTable(alphabet, 6, 11, matrix); err == nil {
		t.Fatalf("expected an error for k-mer length above the protein maximum")
	}
}

func TestNewTableZeroThresholdHasNoNeighbours(t *testing.T) {
	alphabet := NewProteinAlphabet()
	matrix := blosum.NewBlosum62(10, 1)
	table, err := NewTable(alphabet, 4, 0, matrix)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	for _, code := range alphabet.ValidCodes() {
		packed := packKmer([]uint32{code, code, code, code}, table.Bits())
		if got := table.Neighbours(packed); len(got) != 0 {
			t.Fatalf("expected no neighbours at threshold 0, got %d", len(got))
		}
	}
}

func TestNewTableShortCaseIsSymmetric(t *testing.T) {
	alphabet := NewProteinAlphabet()
	matrix := blosum.NewBlosum62(10, 1)
	table, err := NewTable(alphabet, 4, 11, matrix)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	a := packKmer([]uint32{0, 2, 3, 4}, table.Bits())
	for _, b := range table.Neighbours(a) {
		found := false
		for _, back := range table.Neighbours(b) {
			if back == a {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("neighbour %d of %d does not list %d back", b, a, a)
		}
	}
}

func TestNewTableLongCasePairwiseSymmetric(t *testing.T) {
	alphabet := NewProteinAlphabet()
	matrix := blosum.NewBlosum62(10, 1)
	table, err := NewTable(alphabet, 3, 13, matrix)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	a := packKmer([]uint32{0, 2, 3}, table.Bits())
	neighbours := table.Neighbours(a)
	for _, b := range neighbours {
		back := table.Neighbours(b)
		found := false
		for _, c := range back {
			if c == a {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("L=3 table is not symmetric for neighbour %d of %d", b, a)
		}
	}
}

func TestEnumerateKmersCount(t *testing.T) {
	alphabet := NewProteinAlphabet()
	kmers := enumerateKmers(alphabet.ValidCodes(), 3)
	want := len(alphabet.ValidCodes()) * len(alphabet.ValidCodes()) * len(alphabet.ValidCodes())
	if len(kmers) != want {
		t.Fatalf("enumerateKmers length = %d, want %d", len(kmers), want)
	}
}
