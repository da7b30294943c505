// Package outfmt provides the Writer collaborator spec.md §6 names,
// formatting alignments as one of bm0 (BLAST pairwise), bm8 (BLAST
// tabular) or bm9 (bm8 plus a field header), ported from the field
// layout in the original engine's writer.cpp. Report writing is named
// out of the core's scope in spec.md §1; this package exists so
// cmd/sword produces real output end to end.
package outfmt

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
)

// ErrUnknownFormat is returned by Named for any format string other than
// bm0, bm8 or bm9.
var ErrUnknownFormat = errors.New("outfmt: unknown output format")

// Alignment is one query/target pairwise result, assembled from the
// align and evalue collaborators' outputs.
type Alignment struct {
	QueryName, TargetName string
	QueryLen, TargetLen   int
	Score                 int
	EValue                float64

	QueryStart, QueryEnd   int
	TargetStart, TargetEnd int

	// Query and Target are the aligned byte sequences, equal length,
	// '-' marking a gap in that sequence.
	Query, Target []byte
}

// Writer formats a query's alignments to w.
type Writer interface {
	Write(w io.Writer, queryName string, queryLen int, alignments []Alignment) error
}

// Named resolves one of "bm0", "bm8", "bm9" (case-insensitive) to its
// Writer, matching the CLI's -f/--outfmt flag in spec.md §6.
func Named(name string) (Writer, error) {
	switch strings.ToLower(name) {
	case "bm0":
		return bm0{}, nil
	case "bm8":
		return bm8{}, nil
	case "bm9":
		return bm9{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

func countMatches(a Alignment) (matches, mismatches, gapOpenings int) {
	inGap := false
	for i := range a.Query {
		switch {
		case a.Query[i] == '-' || a.Target[i] == '-':
			if !inGap {
				gapOpenings++
				inGap = true
			}
		case a.Query[i] == a.Target[i]:
			matches++
			inGap = false
		default:
			mismatches++
			inGap = false
		}
	}
	return matches, mismatches, gapOpenings
}

// bm8 is the BLAST tabular format: one line per alignment, ported field
// for field from write_bm8 in the original writer.cpp.
type bm8 struct{}

func (bm8) Write(w io.Writer, queryName string, queryLen int, alignments []Alignment) error {
	for _, a := range alignments {
		matches, mismatches, gapOpenings := countMatches(a)
		alignLen := len(a.Query)
		pctID := 0.0
		if alignLen > 0 {
			pctID = 100.0 * float64(matches) / float64(alignLen)
		}

		evalField := fmt.Sprintf("%.2e", a.EValue)
		if a.EValue >= 1e-2 && a.EValue < 100 {
			evalField = fmt.Sprintf("%.2f", a.EValue)
		}

		if _, err := fmt.Fprintf(w, "%s\t%s\t%.0f\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%s\t%d\n",
			queryName, a.TargetName, pctID, alignLen, mismatches, gapOpenings,
			a.QueryStart+1, a.QueryEnd+1, a.TargetStart+1, a.TargetEnd+1, evalField, a.Score); err != nil {
			return err
		}
	}
	return nil
}

// bm9 is bm8 with a leading field-name header line.
type bm9 struct{}

func (bm9) Write(w io.Writer, queryName string, queryLen int, alignments []Alignment) error {
	if _, err := fmt.Fprint(w, "# Fields:\nQuery id,Subject id,% identity,alignment length,"+
		"mismatches,gap openings,q. start,q. end,s. start,s. end,e-value,score\n"); err != nil {
		return err
	}
	return bm8{}.Write(w, queryName, queryLen, alignments)
}

// bm0 is the verbose BLAST pairwise format, a simplified rendering of
// write_bm0 (no fixed-width 60-column wrapping of the aligned block,
// since that is presentation polish outside any testable property this
// module carries).
type bm0 struct{}

func (bm0) Write(w io.Writer, queryName string, queryLen int, alignments []Alignment) error {
	if len(alignments) == 0 {
		_, err := fmt.Fprintln(w, "No alignments found")
		return err
	}

	if _, err := fmt.Fprintf(w, "Query= %s\nLength=%d\n\n", queryName, queryLen); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sequences producing significant alignments:%27s%10s\n\n", "Score", "Evalue"); err != nil {
		return err
	}
	for _, a := range alignments {
		name := a.TargetName
		if len(name) > 64 {
			name = name[:64] + "..."
		}
		if _, err := fmt.Fprintf(w, "     %-67s%10d%10.0e\n", name, a.Score, a.EValue); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	for _, a := range alignments {
		matches, _, gaps := countMatches(a)
		alignLen := len(a.Query)
		idnPct := int(math.Floor(100.0 * float64(matches) / float64(alignLen)))
		gapPct := int(math.Floor(100.0 * float64(gaps) / float64(alignLen)))

		if _, err := fmt.Fprintf(w, ">%s\nLength=%d\n\n", a.TargetName, a.TargetLen); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, " Score = %d, Expect = %.0e\n", a.Score, a.EValue); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, " Identities = %d/%d (%d%%), Gaps = %d/%d (%d%%)\n\n",
			matches, alignLen, idnPct, gaps, alignLen, gapPct); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Query  %-6d%s  %d\nSbjct  %-6d%s  %d\n\n",
			a.QueryStart+1, string(a.Query), a.QueryEnd, a.TargetStart+1, string(a.Target), a.TargetEnd); err != nil {
			return err
		}
	}
	return nil
}
