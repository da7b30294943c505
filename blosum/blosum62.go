package blosum

// Alphabet62 is the residue order used to index blosum62Table, following
// the same "row of amino acids" convention the teacher's own blosum
// package (github.com/BurntSushi/cablastp/blosum) exposed as
// blosum.Alphabet62.
const Alphabet62 = "ARNDCQEGHILKMFPSTWYV"

// blosum62Table holds the standard BLOSUM62 substitution scores, indexed
// by each residue's position in Alphabet62.
var blosum62Table = [20][20]int{
	{4, -1, -2, -2, 0, -1, -1, 0, -2, -1, -1, -1, -1, -2, -1, 1, 0, -3, -2, 0},
	{-1, 5, 0, -2, -3, 1, 0, -2, 0, -3, -2, 2, -1, -3, -2, -1, -1, -3, -2, -3},
	{-2, 0, 6, 1, -3, 0, 0, 0, 1, -3, -3, 0, -2, -3, -2, 1, 0, -4, -2, -3},
	{-2, -2, 1, 6, -3, 0, 2, -1, -1, -3, -4, -1, -3, -3, -1, 0, -1, -4, -3, -3},
	{0, -3, -3, -3, 9, -3, -4, -3, -3, -1, -1, -3, -1, -2, -3, -1, -1, -2, -2, -1},
	{-1, 1, 0, 0, -3, 5, 2, -2, 0, -3, -2, 1, 0, -3, -1, 0, -1, -2, -1, -2},
	{-1, 0, 0, 2, -4, 2, 5, -2, 0, -3, -3, 1, -2, -3, -1, 0, -1, -3, -2, -2},
	{0, -2, 0, -1, -3, -2, -2, 6, -2, -4, -4, -2, -3, -3, -2, 0, -2, -2, -3, -3},
	{-2, 0, 1, -1, -3, 0, 0, -2, 8, -3, -3, -1, -2, -1, -2, -1, -2, -2, 2, -3},
	{-1, -3, -3, -3, -1, -3, -3, -4, -3, 4, 2, -3, 1, 0, -3, -2, -1, -3, -1, 3},
	{-1, -2, -3, -4, -1, -2, -3, -4, -3, 2, 4, -2, 2, 0, -3, -2, -1, -2, -1, 1},
	{-1, 2, 0, -1, -3, 1, 1, -2, -1, -3, -2, 5, -1, -3, -1, 0, -1, -3, -2, -2},
	{-1, -1, -2, -3, -1, 0, -2, -3, -2, 1, 2, -1, 5, 0, -2, -1, -1, -1, -1, 1},
	{-2, -3, -3, -3, -2, -3, -3, -3, -1, 0, 0, -3, 0, 6, -4, -2, -2, 1, 3, -1},
	{-1, -2, -2, -1, -3, -1, -1, -2, -2, -3, -3, -1, -2, -4, 7, -1, -1, -4, -3, -2},
	{1, -1, 1, 0, -1, 0, 0, 0, -1, -2, -2, 0, -1, -2, -1, 4, 1, -3, -2, -2},
	{0, -1, 0, -1, -1, -1, -1, -2, -2, -1, -1, -1, -1, -2, -1, 1, 5, -2, -2, 0},
	{-3, -3, -4, -4, -2, -2, -3, -2, -2, -3, -2, -3, -1, 1, -4, -3, -2, 11, 2, -3},
	{-2, -2, -2, -3, -2, -1, -2, -3, 2, -1, -1, -2, -1, 3, -3, -2, -2, 2, 7, -1},
	{0, -3, -3, -3, -1, -2, -2, -3, -3, 3, 1, -2, 1, -1, -2, -2, 0, -3, -1, 4},
}

// blosum62Index maps a residue's ASCII letter to its row/column in
// blosum62Table, mirroring the util.CTL lookup the teacher builds in
// align.go and cmd/cablastp-compress/nw.go from blosum.Alphabet62.
var blosum62Index [26]int8

func init() {
	for i := range blosum62Index {
		blosum62Index[i] = -1
	}
	for i := 0; i < len(Alphabet62); i++ {
		blosum62Index[Alphabet62[i]-'A'] = int8(i)
	}
}

type blosum62 struct {
	gapOpen, gapExtend int
}

// NewBlosum62 builds the standard BLOSUM62 matrix with the given affine
// gap penalties.
func NewBlosum62(gapOpen, gapExtend int) Matrix {
	return blosum62{gapOpen: gapOpen, gapExtend: gapExtend}
}

func (m blosum62) Name() string     { return "BLOSUM62" }
func (m blosum62) Alphabet() string { return Alphabet62 }
func (m blosum62) GapOpen() int     { return m.gapOpen }
func (m blosum62) GapExtend() int   { return m.gapExtend }

// Score returns the BLOSUM62 score for residues a and b. Residues outside
// the standard alphabet (e.g. 'X', gap characters) score as the worst
// possible mismatch, matching the convention of treating ambiguous
// residues conservatively rather than panicking inside the scoring loop.
func (m blosum62) Score(a, b byte) int {
	ai, bi := index(a), index(b)
	if ai < 0 || bi < 0 {
		return -4
	}
	return blosum62Table[ai][bi]
}

func index(r byte) int {
	if r < 'A' || r > 'Z' {
		return -1
	}
	return int(blosum62Index[r-'A'])
}
