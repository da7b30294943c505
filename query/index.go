// Package query builds the per-group inverted index ("Hash" in spec.md
// §3/§4.C) the diagonal scorer scans against: for a contiguous slab of G
// queries, a mapping from k-mer code to every (slot, position) where that
// code (or a k-mer that maps to it through the substitution table)
// occurs.
package query

import (
	"github.com/rvaser/sword/kmer"
	"github.com/rvaser/sword/seq"
)

// Hit is one occurrence of a k-mer code within a query group: slot is the
// query's position inside the group (0..G), not its global id, and
// position is the residue offset the k-mer starts at.
type Hit struct {
	Slot     uint32
	Position uint32
}

// Index is the built (starts, hits) pair described in spec.md §3: for any
// k-mer code c, hits[starts[c]:starts[c+1]] enumerates every occurrence of
// c across the group, direct or substitution-expanded.
type Index struct {
	space  uint32
	starts []uint32
	hits   []Hit

	// lens holds each query slot's length, needed by the scorer to size
	// per-target diagonal ranges.
	lens []int
}

// Len returns the number of query slots this index was built over.
func (idx *Index) Len() int { return len(idx.lens) }

// QueryLen returns the residue length of the query at the given slot.
func (idx *Index) QueryLen(slot int) int { return idx.lens[slot] }

// Hits returns every (slot, position) pair recorded for k-mer code c.
func (idx *Index) Hits(code uint32) []Hit {
	return idx.hits[idx.starts[code]:idx.starts[code+1]]
}

// ComplexityFilter reports whether the k-mer window starting at pos in
// codes should be skipped when building an Index, mirroring the role
// seed_table.go's IsLowComplexity call plays in SeedTable.Add. A nil
// filter (the default used everywhere in this module) skips nothing.
type ComplexityFilter func(codes []uint32, pos, length int) bool

// Build constructs an Index over queries[start:start+g] using a two-pass
// counting sort: pass one counts how many hits land in each k-mer
// bucket, pass two fills a cursor copy of the prefix sums. This keeps the
// whole build at O(total occurrences) with no per-bucket dynamic
// appends, mirroring the counting-sort approach spec.md §4.C calls for.
//
// filter, if non-nil, is consulted for every k-mer window and may exclude
// it from the index entirely (spec.md's own scenarios never set one, so
// passing nil reproduces their literal behaviour).
func Build(queries []seq.Sequence, start, g int, alphabet kmer.Alphabet, length int, table *kmer.Table, filter ComplexityFilter) *Index {
	bits := alphabet.BitsPerSymbol()
	space := kmer.KmerSpace(alphabet.Mode(), length)

	idx := &Index{
		space:  space,
		starts: make([]uint32, space+1),
		lens:   make([]int, g),
	}

	group := queries[start : start+g]
	codesPerSlot := make([][]uint32, g)
	for slot, q := range group {
		idx.lens[slot] = q.Len()
		codesPerSlot[slot] = kmer.Codes(q.Codes(), bits, length)
	}

	// Pass 1: count.
	counts := make([]uint32, space)
	for _, codes := range codesPerSlot {
		for position, code := range codes {
			if filter != nil && filter(codes, position, length) {
				continue
			}
			counts[code]++
			if table != nil {
				for _, n := range table.Neighbours(code) {
					counts[n]++
				}
			}
		}
	}

	offset := uint32(0)
	for c := uint32(0); c < space; c++ {
		idx.starts[c] = offset
		offset += counts[c]
	}
	idx.starts[space] = offset
	idx.hits = make([]Hit, offset)

	// Pass 2: fill, walking a cursor copy of starts so idx.starts is left
	// untouched for readers.
	cursor := make([]uint32, space)
	copy(cursor, idx.starts[:space])
	for slot, codes := range codesPerSlot {
		for position, code := range codes {
			if filter != nil && filter(codes, position, length) {
				continue
			}
			idx.place(cursor, code, uint32(slot), uint32(position))
			if table != nil {
				for _, n := range table.Neighbours(code) {
					idx.place(cursor, n, uint32(slot), uint32(position))
				}
			}
		}
	}

	return idx
}

func (idx *Index) place(cursor []uint32, code, slot, position uint32) {
	i := cursor[code]
	idx.hits[i] = Hit{Slot: slot, Position: position}
	cursor[code]++
}
