package search

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rvaser/sword/candidate"
	"github.com/rvaser/sword/internal/vlog"
	"github.com/rvaser/sword/kmer"
	"github.com/rvaser/sword/pool"
	"github.com/rvaser/sword/query"
	"github.com/rvaser/sword/score"
	"github.com/rvaser/sword/seq"
)

// Indexes is the core's output shape from spec.md §6: out[q] is the
// ascending list of target ids that survive as candidates for query q.
type Indexes [][]uint32

// queryState pairs one query's candidate ring with the lock that guards
// it, per spec.md §5's "one lock per query" granularity.
type queryState struct {
	mu   sync.Mutex
	ring candidate.Ring
}

// Scheduler streams a database against a fixed set of queries, building
// one substitution table up front and dispatching chunk tasks to a
// worker pool.
type Scheduler struct {
	cfg   Config
	table *kmer.Table
	pool  *pool.Pool
}

// New builds a Scheduler, constructing the substitution table once from
// cfg's alphabet, k-mer length, threshold and matrix, per spec.md §3's
// "the substitution table... live[s] for the duration of the search."
func New(cfg Config) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	table, err := kmer.NewTable(cfg.Alphabet, cfg.KmerLength, cfg.Threshold, cfg.Matrix)
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		cfg:   cfg,
		table: table,
		pool:  pool.New(cfg.NumWorkers),
	}, nil
}

// Close releases the scheduler's worker pool.
func (s *Scheduler) Close() {
	s.pool.Close()
}

// Search reads every query from queryReader, then streams the database
// from dbReader in chunks, returning the per-query candidate id lists
// described in spec.md §6.
func (s *Scheduler) Search(ctx context.Context, queryReader, dbReader seq.Reader) (Indexes, error) {
	var queries []seq.Sequence
	for {
		more, err := queryReader.ReadChains(&queries, s.cfg.ChunkBytes)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	vlog.Vprintf("loaded %d queries\n", len(queries))

	states := make([]queryState, len(queries))
	if len(queries) == 0 {
		return Indexes{}, nil
	}

	queryLens := make([]int, len(queries))
	for i, q := range queries {
		queryLens[i] = q.Len()
	}

	for chunkNum := 0; ; chunkNum++ {
		var chunk []seq.Sequence
		more, err := dbReader.ReadChains(&chunk, s.cfg.ChunkBytes)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", chunkNum, err)
		}
		if len(chunk) > 0 {
			vlog.Vprintf("chunk %d: %d targets\n", chunkNum, len(chunk))
			if err := s.searchChunk(ctx, chunk, queries, queryLens, states); err != nil {
				return nil, fmt.Errorf("chunk %d: %w", chunkNum, err)
			}
		}
		if !more {
			break
		}
	}

	out := make(Indexes, len(queries))
	for i := range states {
		states[i].ring.Flush(s.cfg.MaxCandidates)
		out[i] = states[i].ring.SortedByID()
	}
	return out, nil
}

// searchChunk sorts the chunk by length, splits it into short/long
// suffixes, partitions each into balanced tasks, and dispatches one pool
// task per non-empty segment. It awaits every task's future before
// returning, the per-chunk synchronization point spec.md §4.F mandates.
func (s *Scheduler) searchChunk(ctx context.Context, chunk, queries []seq.Sequence, queryLens []int, states []queryState) error {
	sortChunkByLength(chunk)
	splitAt := splitShortLong(chunk)

	var segments []segment
	segments = append(segments, partitionBalanced(chunk, 0, splitAt, s.cfg.NumWorkers)...)
	segments = append(segments, partitionBalanced(chunk, splitAt, len(chunk), s.cfg.NumWorkers)...)

	var g errgroup.Group
	futures := make([]*pool.Future, 0, len(segments))
	for _, seg := range segments {
		seg := seg
		futures = append(futures, s.pool.Submit(func() (interface{}, error) {
			return nil, s.runSegment(chunk, seg, queries, queryLens, states)
		}))
	}
	for _, f := range futures {
		f := f
		g.Go(func() error {
			_, err := f.Wait()
			return err
		})
	}
	return g.Wait()
}

// runSegment scans one task's target range against every query, grouped
// so each group's ScoreBoard fits the configured budget, per spec.md
// §4.D/§4.F.
func (s *Scheduler) runSegment(chunk []seq.Sequence, seg segment, queries []seq.Sequence, queryLens []int, states []queryState) error {
	groups := formGroups(queryLens, seg.MaxLen, s.cfg.KmerLength, s.cfg.ScoreboardBudget)
	scorer := score.NewScorer(s.cfg.Alphabet, s.cfg.KmerLength)

	for _, grp := range groups {
		idx := query.Build(queries, grp.Start, grp.Len, s.cfg.Alphabet, s.cfg.KmerLength, s.table, nil)
		board := score.NewBoard(grp.Len, seg.MaxLen, queryLens[grp.Start:grp.Start+grp.Len], s.cfg.KmerLength)

		batches := make([]candidate.Batch, grp.Len)
		snapshots := make([]candidate.Snapshot, grp.Len)
		for slot := 0; slot < grp.Len; slot++ {
			qs := &states[grp.Start+slot]
			qs.mu.Lock()
			snapshots[slot] = qs.ring.Snapshot()
			qs.mu.Unlock()
		}

		for i := seg.Start; i < seg.End; i++ {
			target := chunk[i]
			if target.Len() < s.cfg.KmerLength {
				continue
			}
			board.Arrange(queryLens[grp.Start:grp.Start+grp.Len], target.Len(), s.cfg.KmerLength)
			scorer.ScoreTarget(target.Codes(), idx, board, func(slot int, sc uint16) {
				batches[slot].Add(&snapshots[slot], s.cfg.MaxCandidates, target.ID(), sc)
			})
		}

		for slot := 0; slot < grp.Len; slot++ {
			qs := &states[grp.Start+slot]
			qs.mu.Lock()
			qs.ring.Fold(&batches[slot], s.cfg.MaxCandidates)
			qs.mu.Unlock()
		}
	}
	return nil
}
