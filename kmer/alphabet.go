package kmer

// Mode selects which residue alphabet a Table and its callers operate
// over. Protein is the primary, fully specified mode; Nucleotide is the
// optional DNA extension described in SPEC_FULL.md, carried through the
// same algorithmic shape.
type Mode uint8

const (
	Protein Mode = iota
	Nucleotide
)

func (m Mode) String() string {
	if m == Nucleotide {
		return "nucleotide"
	}
	return "protein"
}

// Alphabet maps raw residue bytes to small integer codes and describes how
// many bits a packed k-mer spends per symbol.
type Alphabet interface {
	Mode() Mode
	BitsPerSymbol() uint

	// Encode returns the code for a residue and whether it is valid. An
	// invalid residue (ambiguity codes, gap characters, anything outside
	// the alphabet) is never assigned a code.
	Encode(residue byte) (code uint32, ok bool)

	// ValidCodes lists every code the alphabet assigns, used to enumerate
	// the full k-mer space when building a substitution table.
	ValidCodes() []uint32

	// MinKmerLength / MaxKmerLength bound the k-mer lengths this alphabet
	// supports (spec: protein k ∈ {3,4,5}, nucleotide k ∈ {8..13}).
	MinKmerLength() int
	MaxKmerLength() int
}

// proteinValidCodes holds each of the 20 standard amino acids' ASCII
// offset from 'A' (e.g. 'C'-'A' == 2). Ambiguity codes B, J, O, U, X, Z are
// deliberately excluded, matching the reserved positions in the spec's
// "codes 0..25 with 20 valid positions" alphabet and the kAminoAcids table
// in original_source/src/kmers.cpp.
var proteinValidCodes = []uint32{
	0, 2, 3, 4, 5, 6, 7, 8, 10, 11, 12, 13, 15, 16, 17, 18, 19, 21, 22, 24,
}

type proteinAlphabet struct {
	valid [26]bool
}

// NewProteinAlphabet returns the 20-symbol amino acid alphabet.
func NewProteinAlphabet() Alphabet {
	a := &proteinAlphabet{}
	for _, c := range proteinValidCodes {
		a.valid[c] = true
	}
	return a
}

func (a *proteinAlphabet) Mode() Mode          { return Protein }
func (a *proteinAlphabet) BitsPerSymbol() uint { return 5 }
func (a *proteinAlphabet) ValidCodes() []uint32 {
	return proteinValidCodes
}
func (a *proteinAlphabet) MinKmerLength() int { return 3 }
func (a *proteinAlphabet) MaxKmerLength() int { return 5 }

func (a *proteinAlphabet) Encode(residue byte) (uint32, bool) {
	if residue < 'A' || residue > 'Z' {
		return 0, false
	}
	code := uint32(residue - 'A')
	if !a.valid[code] {
		return 0, false
	}
	return code, true
}

// nucleotideLetters lists the four standard DNA bases in code order: each
// is assigned the dense 2-bit code of its index here, independent of
// ASCII ordering (unlike the protein alphabet, the
// nucleotide alphabet has no "reserved position" gaps to preserve).
var nucleotideLetters = [4]byte{'A', 'C', 'G', 'T'}

type nucleotideAlphabet struct {
	code [26]int8
}

// NewNucleotideAlphabet returns the 4-symbol DNA alphabet used by the
// optional nucleotide search mode.
func NewNucleotideAlphabet() Alphabet {
	a := &nucleotideAlphabet{}
	for i := range a.code {
		a.code[i] = -1
	}
	for i, letter := range nucleotideLetters {
		a.code[letter-'A'] = int8(i)
	}
	return a
}

func (a *nucleotideAlphabet) Mode() Mode          { return Nucleotide }
func (a *nucleotideAlphabet) BitsPerSymbol() uint { return 2 }
func (a *nucleotideAlphabet) ValidCodes() []uint32 {
	return []uint32{0, 1, 2, 3}
}
func (a *nucleotideAlphabet) MinKmerLength() int { return 8 }
func (a *nucleotideAlphabet) MaxKmerLength() int { return 13 }

func (a *nucleotideAlphabet) Encode(residue byte) (uint32, bool) {
	if residue < 'A' || residue > 'Z' {
		return 0, false
	}
	c := a.code[residue-'A']
	if c < 0 {
		return 0, false
	}
	return uint32(c), true
}

// protKmerSpace gives the size of the dense array needed to index every
// packed protein k-mer code for kmer lengths 3, 4 and 5. These are the
// same constants (kNumDiffKmers) the original C++ engine uses to size its
// Hash::starts_ vector; spec.md's memory budgeting section names them
// directly, so they are reproduced here rather than re-derived.
var protKmerSpace = map[int]uint32{
	3: 26427,
	4: 845627,
	5: 27060027,
}

// KmerSpace returns the number of distinct addressable k-mer codes for the
// given mode and k-mer length, i.e. the size needed for a starts/offsets
// array indexed directly by packed k-mer code.
func KmerSpace(mode Mode, length int) uint32 {
	if mode == Nucleotide {
		return uint32(1) << uint(2*length)
	}
	return protKmerSpace[length]
}
