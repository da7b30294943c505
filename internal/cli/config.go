// Package cli holds the flag surface and start-up validation shared by
// the sword command, grounded on the teacher's DBConf validation style
// in db.go (plain fmt.Errorf messages, no validation framework).
package cli

import (
	"fmt"

	"github.com/rvaser/sword/align"
	"github.com/rvaser/sword/blosum"
	"github.com/rvaser/sword/outfmt"
)

// Options is the fully parsed CLI surface from spec.md §6.
type Options struct {
	QueryPath  string
	TargetPath string
	OutPath    string

	GapOpen   int
	GapExtend int
	Matrix    string

	OutFormat string
	EValue    float64
	MaxAligns int
	Algorithm string

	KmerLength    int
	MaxCandidates int
	Threshold     int
	Threads       int

	Verbose    bool
	CPUProfile string
	MemProfile string
}

// Default returns an Options populated with spec.md §6's documented CLI
// defaults.
func Default() Options {
	return Options{
		GapOpen:       10,
		GapExtend:     1,
		Matrix:        "BLOSUM_62",
		OutFormat:     "bm9",
		EValue:        10,
		MaxAligns:     10,
		Algorithm:     "SW",
		KmerLength:    3,
		MaxCandidates: 30000,
		Threshold:     13,
		Threads:       0, // resolved to half of hardware concurrency at parse time
	}
}

// Validate rejects any combination spec.md §7 marks InvalidConfiguration
// and fatal at start-up.
func (o Options) Validate() error {
	if o.QueryPath == "" {
		return fmt.Errorf("%w: a query file (-i/--query) is required", ErrInvalidConfiguration)
	}
	if o.TargetPath == "" {
		return fmt.Errorf("%w: a target file (-j/--target) is required", ErrInvalidConfiguration)
	}
	if o.KmerLength < 3 || o.KmerLength > 5 {
		return fmt.Errorf("%w: kmer length must be one of 3, 4, 5, got %d", ErrInvalidConfiguration, o.KmerLength)
	}
	if o.MaxCandidates <= 0 {
		return fmt.Errorf("%w: max-candidates must be positive, got %d", ErrInvalidConfiguration, o.MaxCandidates)
	}
	if o.MaxAligns <= 0 {
		return fmt.Errorf("%w: max-aligns must be positive, got %d", ErrInvalidConfiguration, o.MaxAligns)
	}
	if o.Threads <= 0 {
		return fmt.Errorf("%w: threads must be positive, got %d", ErrInvalidConfiguration, o.Threads)
	}
	if _, err := blosum.Named(o.Matrix, o.GapOpen, o.GapExtend); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfiguration, err)
	}
	if _, err := outfmt.Named(o.OutFormat); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfiguration, err)
	}
	if _, err := algorithmMode(o.Algorithm); err != nil {
		return err
	}
	return nil
}

// algorithmMode resolves the -A/--algorithm flag to an align.Mode.
func algorithmMode(name string) (align.Mode, error) {
	switch name {
	case "SW":
		return align.SW, nil
	case "NW":
		return align.NW, nil
	case "HW":
		return align.HW, nil
	case "OV":
		return align.OV, nil
	default:
		return 0, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidConfiguration, name)
	}
}

// AlgorithmMode exposes algorithmMode to callers outside this package
// once Options has already been validated.
func (o Options) AlgorithmMode() align.Mode {
	m, _ := algorithmMode(o.Algorithm)
	return m
}
