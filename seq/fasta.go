package seq

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	biogofasta "github.com/kortschak/biogo/io/seqio/fasta"
	biogoseq "github.com/kortschak/biogo/seq"

	"github.com/rvaser/sword/internal/vlog"
	"github.com/rvaser/sword/kmer"
)

// fastaReader is the concrete Reader built on biogo's FASTA parser,
// mirroring the gzip-sniffing open pattern of the teacher's own
// ReadOriginalSeqs (fasta.go) but pull-based rather than channel-based,
// since the scheduler needs a byte budget per call rather than a firehose
// of every sequence in the file.
type fastaReader struct {
	file     *os.File
	rc       io.Closer
	reader   *biogofasta.Reader
	alphabet kmer.Alphabet
	nextID   uint32
	pending  *biogoseq.Seq
	eof      bool
}

// NewFastaReader opens path (transparently gunzipping a ".gz" suffix) and
// returns a Reader that encodes every residue through alphabet, dropping
// records that fail InvalidSequence validation the way spec.md §4.A and
// the end-to-end scenario in §8 (a bad residue byte drops the record)
// require.
func NewFastaReader(path string, alphabet kmer.Alphabet) (Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrReader, err)
	}

	var r io.Reader = f
	var closer io.Closer = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%w: %s", ErrReader, err)
		}
		r = gz
		closer = multiCloser{gz, f}
	}

	return &fastaReader{
		file:     f,
		rc:       closer,
		reader:   biogofasta.NewReader(r),
		alphabet: alphabet,
	}, nil
}

func (fr *fastaReader) Close() error { return fr.rc.Close() }

// ReadChains appends whole sequences until maxBytes of raw residue data
// has been consumed, matching the Reader contract in spec.md §6.
func (fr *fastaReader) ReadChains(dst *[]Sequence, maxBytes int64) (bool, error) {
	var consumed int64

	for consumed < maxBytes {
		raw, err := fr.next()
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("%w: %s", ErrReader, err)
		}

		consumed += int64(len(raw.Seq))
		codes, ok := fr.encode(raw.Seq)
		if !ok {
			vlog.Vprintf("dropping sequence %q: empty or invalid residue\n", raw.ID)
			continue
		}

		s, err := New(fr.nextID, raw.ID, codes)
		if err != nil {
			vlog.Vprintf("dropping sequence %q: %s\n", raw.ID, err)
			continue
		}
		fr.nextID++
		*dst = append(*dst, s)
	}
	return true, nil
}

func (fr *fastaReader) next() (*biogoseq.Seq, error) {
	if fr.pending != nil {
		s := fr.pending
		fr.pending = nil
		return s, nil
	}
	return fr.reader.Read()
}

// encode maps every residue through the alphabet. A single residue the
// alphabet does not recognize (an ambiguity code, a gap, anything
// outside the 20/4-symbol alphabet) invalidates the whole record rather
// than being silently skipped — the end-to-end scenario in spec.md §8
// drops a target entirely on one bad residue byte.
func (fr *fastaReader) encode(residues []byte) ([]uint32, bool) {
	if len(residues) == 0 {
		return nil, false
	}
	codes := make([]uint32, len(residues))
	for i, r := range residues {
		upper := r
		if upper >= 'a' && upper <= 'z' {
			upper -= 'a' - 'A'
		}
		code, ok := fr.alphabet.Encode(upper)
		if !ok {
			return nil, false
		}
		codes[i] = code
	}
	return codes, true
}

// multiCloser closes a gzip.Reader and then the underlying file handle it
// wraps, so callers only ever deal with one Close.
type multiCloser []io.Closer

func (m multiCloser) Close() error {
	var first error
	for _, c := range m {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
