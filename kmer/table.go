package kmer

import (
	"fmt"

	"github.com/rvaser/sword/blosum"
)

// Table is the substitution table ("Kmers" in spec.md §3/§4.B): for every
// k-mer code, the set of other k-mer codes within score threshold under a
// similarity matrix. It never includes a k-mer's own code — callers that
// need to test the identity k-mer do so themselves.
//
// Neighbour codes are stored in a single flat buffer addressed by a
// per-key range, per spec.md's "single flat buffer of (u32 code, range)
// per key" space note.
type Table struct {
	mode     Mode
	length   int
	bits     uint
	starts   []uint32
	codes    []uint32
}

// NewTable builds the substitution table for the given alphabet, k-mer
// length and score threshold. A non-positive threshold yields a table
// with no neighbours at all: only exact k-mer matches will contribute
// hits, per spec.md §3(iv).
func NewTable(alphabet Alphabet, length, threshold int, matrix blosum.Matrix) (*Table, error) {
	if length < alphabet.MinKmerLength() || length > alphabet.MaxKmerLength() {
		return nil, fmt.Errorf("%w: kmer length %d out of range [%d,%d] for %s alphabet",
			ErrInvalidConfiguration, length, alphabet.MinKmerLength(), alphabet.MaxKmerLength(), alphabet.Mode())
	}

	space := KmerSpace(alphabet.Mode(), length)
	t := &Table{
		mode:   alphabet.Mode(),
		length: length,
		bits:   alphabet.BitsPerSymbol(),
		starts: make([]uint32, space+1),
	}
	if threshold <= 0 {
		return t, nil
	}

	buckets := make([][]uint32, space)
	kmers := enumerateKmers(alphabet.ValidCodes(), length)

	// L=3 is the only "long" case, and only for the protein alphabet
	// (nucleotide k-mers are always length 8..13): every pair of k-mers
	// is compared once and, on success, recorded on both sides. This is
	// what guarantees the symmetry spec.md §3(ii) requires.
	//
	// The redesign flag in spec.md §9 resolves the original's
	// DNA-disables-substitutions special case: expansion is driven only
	// by the threshold, not by alphabet, so short-case construction below
	// applies uniformly to nucleotide k-mers as well.
	if alphabet.Mode() == Protein && length == 3 {
		for i := range kmers {
			for j := i + 1; j < len(kmers); j++ {
				if scorePair(kmers[i], kmers[j], matrix) < threshold {
					continue
				}
				a := packKmer(kmers[i], t.bits)
				b := packKmer(kmers[j], t.bits)
				buckets[a] = append(buckets[a], b)
				buckets[b] = append(buckets[b], a)
			}
		}
	} else {
		valid := alphabet.ValidCodes()
		mutated := make([]uint32, length)
		for _, km := range kmers {
			a := packKmer(km, t.bits)
			copy(mutated, km)
			for pos := 0; pos < length; pos++ {
				original := km[pos]
				for _, alt := range valid {
					if alt == original {
						continue
					}
					mutated[pos] = alt
					if scorePair(km, mutated, matrix) >= threshold {
						buckets[a] = append(buckets[a], packKmer(mutated, t.bits))
					}
				}
				mutated[pos] = original
			}
		}
	}

	offset := uint32(0)
	for code := uint32(0); code < space; code++ {
		t.starts[code] = offset
		offset += uint32(len(buckets[code]))
	}
	t.starts[space] = offset

	t.codes = make([]uint32, offset)
	cursor := make([]uint32, space)
	copy(cursor, t.starts[:space])
	for code := uint32(0); code < space; code++ {
		for _, n := range buckets[code] {
			t.codes[cursor[code]] = n
			cursor[code]++
		}
	}

	return t, nil
}

// Length returns the k-mer length this table was built for.
func (t *Table) Length() int { return t.length }

// Bits returns the number of bits used to pack each symbol of a k-mer.
func (t *Table) Bits() uint { return t.bits }

// Neighbours returns every k-mer code whose similarity score against code
// is >= the table's threshold, excluding code itself.
func (t *Table) Neighbours(code uint32) []uint32 {
	return t.codes[t.starts[code]:t.starts[code+1]]
}

// Bytes estimates the table's memory footprint, exposed so a long-running
// scheduler could apply the same "blow away when too large" policy the
// teacher's SeedTable.MaybeWipe uses — unused by default here since
// spec.md gives no trigger for it (see DESIGN.md).
func (t *Table) Bytes() int64 {
	return int64(len(t.starts))*4 + int64(len(t.codes))*4
}

func scorePair(a, b []uint32, matrix blosum.Matrix) int {
	score := 0
	for i := range a {
		score += matrix.Score(codeToResidue(a[i]), codeToResidue(b[i]))
	}
	return score
}

// codeToResidue inverts the protein alphabet's ASCII-offset encoding so
// table construction can reuse the ScoreMatrix's byte-keyed Score method.
// The mapping is exact for the 0..25 protein code space. Nucleotide codes
// 0..3 also reach here through the short-case construction; they map to
// the letters 'A'..'D' and are scored under the protein matrix as those
// letters.
func codeToResidue(code uint32) byte {
	return byte(code) + 'A'
}

func packKmer(codes []uint32, bits uint) uint32 {
	var v uint32
	for _, c := range codes {
		v = (v << bits) | c
	}
	return v
}

// enumerateKmers lists every length-L tuple drawable from validCodes, in
// the same recursive-build shape as the original's createKmersRecursive
// (original_source/src/kmers.cpp), written as a recursive Go closure
// appending into one accumulator.
func enumerateKmers(validCodes []uint32, length int) [][]uint32 {
	total := 1
	for i := 0; i < length; i++ {
		total *= len(validCodes)
	}
	out := make([][]uint32, 0, total)
	cur := make([]uint32, length)

	var rec func(pos int)
	rec = func(pos int) {
		if pos == length {
			tuple := make([]uint32, length)
			copy(tuple, cur)
			out = append(out, tuple)
			return
		}
		for _, c := range validCodes {
			cur[pos] = c
			rec(pos + 1)
		}
	}
	rec(0)
	return out
}
