// Command sword runs the k-mer indexed heuristic sequence search engine
// end to end: load queries, stream a target database through the
// scheduler, align surviving candidates, estimate an e-value for each,
// and write results in one of the bm0/bm8/bm9 formats. Flag parsing and
// the fatalf/errorf reporting style follow cmd/cablastp-search/main.go.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"
	"runtime"

	"github.com/pkg/profile"

	"github.com/rvaser/sword/align"
	"github.com/rvaser/sword/blosum"
	"github.com/rvaser/sword/evalue"
	"github.com/rvaser/sword/internal/cli"
	"github.com/rvaser/sword/internal/vlog"
	"github.com/rvaser/sword/kmer"
	"github.com/rvaser/sword/outfmt"
	"github.com/rvaser/sword/search"
	"github.com/rvaser/sword/seq"
)

var opts = cli.Default()

func init() {
	flag.StringVar(&opts.QueryPath, "i", opts.QueryPath, "Query sequences, in FASTA format.")
	flag.StringVar(&opts.QueryPath, "query", opts.QueryPath, "Query sequences, in FASTA format.")
	flag.StringVar(&opts.TargetPath, "j", opts.TargetPath, "Target database sequences, in FASTA format.")
	flag.StringVar(&opts.TargetPath, "target", opts.TargetPath, "Target database sequences, in FASTA format.")
	flag.StringVar(&opts.OutPath, "o", opts.OutPath, "Output file (default stdout).")
	flag.StringVar(&opts.OutPath, "out", opts.OutPath, "Output file (default stdout).")

	flag.IntVar(&opts.GapOpen, "g", opts.GapOpen, "Gap opening penalty.")
	flag.IntVar(&opts.GapOpen, "gap-open", opts.GapOpen, "Gap opening penalty.")
	flag.IntVar(&opts.GapExtend, "e", opts.GapExtend, "Gap extension penalty.")
	flag.IntVar(&opts.GapExtend, "gap-extend", opts.GapExtend, "Gap extension penalty.")
	flag.StringVar(&opts.Matrix, "m", opts.Matrix, "Substitution matrix name.")
	flag.StringVar(&opts.Matrix, "matrix", opts.Matrix, "Substitution matrix name.")

	flag.StringVar(&opts.OutFormat, "f", opts.OutFormat, "Output format: bm0, bm8 or bm9.")
	flag.StringVar(&opts.OutFormat, "outfmt", opts.OutFormat, "Output format: bm0, bm8 or bm9.")
	flag.Float64Var(&opts.EValue, "v", opts.EValue, "E-value threshold.")
	flag.Float64Var(&opts.EValue, "evalue", opts.EValue, "E-value threshold.")
	flag.IntVar(&opts.MaxAligns, "a", opts.MaxAligns, "Maximum alignments reported per query.")
	flag.IntVar(&opts.MaxAligns, "max-aligns", opts.MaxAligns, "Maximum alignments reported per query.")
	flag.StringVar(&opts.Algorithm, "A", opts.Algorithm, "Alignment algorithm: NW, HW, OV or SW.")
	flag.StringVar(&opts.Algorithm, "algorithm", opts.Algorithm, "Alignment algorithm: NW, HW, OV or SW.")

	flag.IntVar(&opts.KmerLength, "k", opts.KmerLength, "K-mer length.")
	flag.IntVar(&opts.KmerLength, "kmer-length", opts.KmerLength, "K-mer length.")
	flag.IntVar(&opts.MaxCandidates, "c", opts.MaxCandidates, "Maximum candidates kept per query.")
	flag.IntVar(&opts.MaxCandidates, "max-candidates", opts.MaxCandidates, "Maximum candidates kept per query.")
	flag.IntVar(&opts.Threshold, "T", opts.Threshold, "Substitution neighbourhood threshold.")
	flag.IntVar(&opts.Threshold, "threshold", opts.Threshold, "Substitution neighbourhood threshold.")
	flag.IntVar(&opts.Threads, "t", opts.Threads, "Number of worker threads (default half of hardware concurrency).")
	flag.IntVar(&opts.Threads, "threads", opts.Threads, "Number of worker threads (default half of hardware concurrency).")

	flag.BoolVar(&opts.Verbose, "verbose", opts.Verbose, "Enable verbose progress logging.")
	flag.StringVar(&opts.CPUProfile, "cpuprofile", opts.CPUProfile, "When set, write a CPU profile to this directory.")
	flag.StringVar(&opts.MemProfile, "memprofile", opts.MemProfile, "When set, write a memory profile to this directory.")

	flag.Usage = usage
}

func main() {
	flag.Parse()

	if opts.Threads <= 0 {
		opts.Threads = runtime.NumCPU() / 2
		if opts.Threads < 1 {
			opts.Threads = 1
		}
	}
	if err := opts.Validate(); err != nil {
		fatalf("%s\n", err)
	}

	if opts.Verbose {
		vlog.Verbose = true
	}
	if opts.CPUProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(opts.CPUProfile)).Stop()
	}
	if opts.MemProfile != "" {
		defer profile.Start(profile.MemProfile, profile.ProfilePath(opts.MemProfile)).Stop()
	}

	if err := run(opts); err != nil {
		fatalf("%s\n", err)
	}
}

func run(opts cli.Options) error {
	alphabet := kmer.NewProteinAlphabet()
	matrix, err := blosum.Named(opts.Matrix, opts.GapOpen, opts.GapExtend)
	if err != nil {
		return err
	}

	cfg := search.DefaultConfig(alphabet, matrix)
	cfg.KmerLength = opts.KmerLength
	cfg.Threshold = opts.Threshold
	cfg.MaxCandidates = opts.MaxCandidates
	cfg.NumWorkers = opts.Threads

	scheduler, err := search.New(cfg)
	if err != nil {
		return err
	}
	defer scheduler.Close()

	queryReader, err := seq.NewFastaReader(opts.QueryPath, alphabet)
	if err != nil {
		return err
	}
	defer queryReader.Close()

	dbReader, err := seq.NewFastaReader(opts.TargetPath, alphabet)
	if err != nil {
		return err
	}
	defer dbReader.Close()

	vlog.Vprintln("searching...")
	indexes, err := scheduler.Search(context.Background(), queryReader, dbReader)
	if err != nil {
		return err
	}

	var queries []seq.Sequence
	requeryReader, err := seq.NewFastaReader(opts.QueryPath, alphabet)
	if err != nil {
		return err
	}
	defer requeryReader.Close()
	for {
		more, err := requeryReader.ReadChains(&queries, cfg.ChunkBytes)
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}

	wanted := make(map[uint32]bool)
	for _, ids := range indexes {
		for _, id := range ids {
			wanted[id] = true
		}
	}

	targets := make(map[uint32]seq.Sequence, len(wanted))
	var databaseCells uint64
	redbReader, err := seq.NewFastaReader(opts.TargetPath, alphabet)
	if err != nil {
		return err
	}
	defer redbReader.Close()
	for {
		var chunk []seq.Sequence
		more, err := redbReader.ReadChains(&chunk, cfg.ChunkBytes)
		if err != nil {
			return err
		}
		for _, t := range chunk {
			databaseCells += uint64(t.Len())
			if wanted[t.ID()] {
				targets[t.ID()] = t
			}
		}
		if !more {
			break
		}
	}

	estimator := evalue.New(databaseCells, opts.GapOpen, opts.GapExtend)
	aligner := align.NewNaiveAligner(matrix)
	writer, err := outfmt.Named(opts.OutFormat)
	if err != nil {
		return err
	}

	out := os.Stdout
	if opts.OutPath != "" {
		f, err := os.Create(opts.OutPath)
		if err != nil {
			return fmt.Errorf("create output file: %s", err)
		}
		defer f.Close()
		out = f
	}

	mode := opts.AlgorithmMode()
	for qi, q := range queries {
		candidateTargets := make([]seq.Sequence, 0, len(indexes[qi]))
		for _, id := range indexes[qi] {
			if t, ok := targets[id]; ok {
				candidateTargets = append(candidateTargets, t)
			}
		}

		results, err := aligner.Align(q, candidateTargets, mode)
		if err != nil {
			errorf("query %s: %s\n", q.Name(), err)
			continue
		}

		alignments := make([]outfmt.Alignment, 0, len(results))
		for _, r := range results {
			t := targets[r.TargetID]
			ev := estimator.Calculate(r.Score, uint32(q.Len()), uint32(t.Len()))
			if ev > opts.EValue {
				continue
			}
			alignments = append(alignments, outfmt.Alignment{
				QueryName:  q.Name(),
				TargetName: t.Name(),
				QueryLen:   q.Len(),
				TargetLen:  t.Len(),
				Score:      r.Score,
				EValue:     ev,
				QueryEnd:   len(r.Query) - 1,
				TargetEnd:  len(r.Target) - 1,
				Query:      r.Query,
				Target:     r.Target,
			})
			if len(alignments) >= opts.MaxAligns {
				break
			}
		}

		if err := writer.Write(out, q.Name(), q.Len(), alignments); err != nil {
			return err
		}
	}

	return nil
}

func fatalf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format, v...)
	os.Exit(1)
}

func errorf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, format, v...)
}

func usage() {
	fmt.Fprintf(os.Stderr, "\nUsage: %s [flags]\n", path.Base(os.Args[0]))
	flag.PrintDefaults()
	os.Exit(1)
}
