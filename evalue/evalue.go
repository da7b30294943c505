// Package evalue provides the EValue collaborator spec.md §6 names:
// given a score and the query/target/database sizes, estimate a
// Karlin-Altschul-style e-value. The constants and formula are ported
// directly from the original engine's evalue.cpp (BLOSUM62 gap-penalty
// table plus the Spouge approximation it used, itself adapted from SW#
// and BLAST), since spec.md §1 names "evalue constants" as out of the
// core's scope but a runnable CLI still needs a concrete collaborator.
package evalue

import "math"

// gapConstants holds one row of the BLOSUM62 Karlin-Altschul parameter
// table, indexed by (gap open, gap extend) penalty pair.
type gapConstants struct {
	gapOpen, gapExtend int
	lambda, k, h        float64
	a, c, alpha, sigma   float64
}

// blosum62Constants reproduces kEValueConstants from the original
// engine's evalue.cpp. Row 0 (gap -1/-1) is the "ungapped" default used
// whenever the configured gap penalties don't match a tabulated row.
var blosum62Constants = []gapConstants{
	{-1, -1, 0.3176, 0.134, 0.4012, 0.7916, 0.623757, 4.964660, 4.964660},
	{11, 2, 0.297, 0.082, 0.27, 1.1, 0.641766, 12.673800, 12.757600},
	{10, 2, 0.291, 0.075, 0.23, 1.3, 0.649362, 16.474000, 16.602600},
	{9, 2, 0.279, 0.058, 0.19, 1.5, 0.659245, 22.751900, 22.950000},
	{8, 2, 0.264, 0.045, 0.15, 1.8, 0.672692, 35.483800, 35.821300},
	{7, 2, 0.239, 0.027, 0.10, 2.5, 0.702056, 61.238300, 61.886000},
	{6, 2, 0.201, 0.012, 0.061, 3.3, 0.740802, 140.417000, 141.882000},
	{13, 1, 0.292, 0.071, 0.23, 1.2, 0.647715, 19.506300, 19.893100},
	{12, 1, 0.283, 0.059, 0.19, 1.5, 0.656391, 27.856200, 28.469900},
	{11, 1, 0.267, 0.041, 0.14, 1.9, 0.669720, 42.602800, 43.636200},
	{10, 1, 0.243, 0.024, 0.10, 2.5, 0.693267, 83.178700, 85.065600},
	{9, 1, 0.206, 0.010, 0.052, 4.0, 0.731887, 210.333000, 214.842000},
}

// Estimator is the external collaborator interface spec.md §6 names.
type Estimator interface {
	Calculate(score int, queryLength, targetLength uint32) float64
}

// karlinAltschul holds the derived, per-search-run constants computed
// once from the database size and the configured gap penalties.
type karlinAltschul struct {
	databaseCells uint64

	lambda, k, h float64
	a, b, alpha, beta, sigma, tau float64
}

// New builds an Estimator for a database of databaseCells total residues
// (the summed length of every target), scored under BLOSUM62 with the given affine gap penalties. Gap
// penalties that don't match a tabulated row fall back to the row 0
// "ungapped" constants, mirroring the original's index-stays-0 behaviour
// when no match is found.
func New(databaseCells uint64, gapOpen, gapExtend int) Estimator {
	row := blosum62Constants[0]
	for _, c := range blosum62Constants {
		if c.gapOpen == gapOpen && c.gapExtend == gapExtend {
			row = c
			break
		}
	}

	ungapped := blosum62Constants[0]
	g := float64(gapOpen + gapExtend)

	return &karlinAltschul{
		databaseCells: databaseCells,
		lambda:        row.lambda,
		k:             row.k,
		h:             row.h,
		a:             row.a,
		alpha:         row.alpha,
		sigma:         row.sigma,
		b:             2.0 * g * (ungapped.a - row.a),
		beta:          2.0 * g * (ungapped.alpha - row.alpha),
		tau:           2.0 * g * (ungapped.alpha - row.sigma),
	}
}

const invSqrt2Pi = 0.39894228040143267793994605993438

// Calculate ports EValue::calculate from the original evalue.cpp
// verbatim: a Spouge-style finite-size correction to the raw
// Karlin-Altschul e-value, applied symmetrically to query and target
// length, then scaled from a pairwise to a whole-database e-value.
func (e *karlinAltschul) Calculate(score int, queryLength, targetLength uint32) float64 {
	y := float64(score)
	m := float64(queryLength)
	n := float64(targetLength)

	dbScale := float64(e.databaseCells) / n

	mLiY := m - (e.a*y + e.b)
	viY := math.Max(2.0*e.alpha/e.lambda, e.alpha*y+e.beta)
	sqrtViY := math.Sqrt(viY)
	mF := mLiY / sqrtViY
	pMF := 0.5 + 0.5*math.Erf(mF)
	p1 := mLiY*pMF + sqrtViY*invSqrt2Pi*math.Exp(-0.5*mF*mF)

	nLjY := n - (e.a*y + e.b)
	vjY := math.Max(2.0*e.alpha/e.lambda, e.alpha*y+e.beta)
	sqrtVjY := math.Sqrt(vjY)
	nF := nLjY / sqrtVjY
	pNF := 0.5 + 0.5*math.Erf(nF)
	p2 := nLjY*pNF + sqrtVjY*invSqrt2Pi*math.Exp(-0.5*nF*nF)

	cY := math.Max(2.0*e.sigma/e.lambda, e.sigma*y+e.tau)
	area := p1*p2 + cY*pMF*pNF

	return area * e.k * math.Exp(-e.lambda*y) * dbScale
}
