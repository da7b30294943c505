// Package search implements the chunk scheduler from spec.md §2.F/§4.F:
// streaming the database in fixed-size chunks, partitioning each chunk
// into short/long tasks of balanced total length, and dispatching them
// to a worker pool that scans each task's targets against grouped query
// indexes.
package search

import (
	"fmt"

	"github.com/rvaser/sword/blosum"
	"github.com/rvaser/sword/kmer"
)

// ShortLengthThreshold is the target-length cutoff spec.md §4.F uses to
// split a sorted chunk into its short and long suffixes.
const ShortLengthThreshold = 2000

// DefaultChunkBytes is the ~1 GB default raw-byte budget per database
// chunk from spec.md §4.F.
const DefaultChunkBytes int64 = 1 << 30

// DefaultScoreboardBudget bounds the number of u16 scoreboard entries a
// single query group may address (spec.md §4.F: "≤ 250000 u16 entries
// for short tasks, scaled for long"). A single budget is used for both
// short and long tasks: since each query's contribution to the running
// total already includes the task's max target length, long tasks
// naturally produce smaller query groups from the same budget without a
// second constant (see DESIGN.md).
const DefaultScoreboardBudget = 250000

// Config holds the scheduler's tunable parameters, mirroring the CLI
// surface spec.md §6 lists (kmer length, threshold, max candidates,
// thread count) plus the scheduler-only knobs (chunk size, scoreboard
// budget) that have no CLI flag of their own.
type Config struct {
	Alphabet  kmer.Alphabet
	Matrix    blosum.Matrix
	KmerLength int
	Threshold  int

	MaxCandidates int
	NumWorkers    int

	ChunkBytes       int64
	ScoreboardBudget int
}

// DefaultConfig returns a Config with the CLI surface defaults from
// spec.md §6, using the given alphabet and matrix. NumWorkers defaults to
// 1 here; the CLI sets it from its own thread-count resolution.
func DefaultConfig(alphabet kmer.Alphabet, matrix blosum.Matrix) Config {
	return Config{
		Alphabet:         alphabet,
		Matrix:           matrix,
		KmerLength:       3,
		Threshold:        13,
		MaxCandidates:    30000,
		NumWorkers:       1,
		ChunkBytes:       DefaultChunkBytes,
		ScoreboardBudget: DefaultScoreboardBudget,
	}
}

// Validate rejects configurations spec.md §7 marks InvalidConfiguration
// and fatal at start-up.
func (c Config) Validate() error {
	if c.KmerLength < c.Alphabet.MinKmerLength() || c.KmerLength > c.Alphabet.MaxKmerLength() {
		return fmt.Errorf("%w: kmer length %d out of range for %s alphabet",
			ErrInvalidConfiguration, c.KmerLength, c.Alphabet.Mode())
	}
	if c.MaxCandidates <= 0 {
		return fmt.Errorf("%w: max-candidates must be positive, got %d", ErrInvalidConfiguration, c.MaxCandidates)
	}
	if c.NumWorkers <= 0 {
		return fmt.Errorf("%w: threads must be positive, got %d", ErrInvalidConfiguration, c.NumWorkers)
	}
	if c.ChunkBytes <= 0 {
		return fmt.Errorf("%w: chunk size must be positive, got %d", ErrInvalidConfiguration, c.ChunkBytes)
	}
	if c.ScoreboardBudget <= 0 {
		return fmt.Errorf("%w: scoreboard budget must be positive, got %d", ErrInvalidConfiguration, c.ScoreboardBudget)
	}
	return nil
}
