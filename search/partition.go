package search

import (
	"sort"

	"github.com/rvaser/sword/seq"
)

// segment is a contiguous index range [Start, End) into a sorted chunk,
// all targets in ascending length order, plus the segment's maximum
// target length (the last, longest entry).
type segment struct {
	Start, End int
	MaxLen     int
}

// sortChunkByLength sorts a chunk's sequences ascending by length, as
// spec.md §4.F requires before splitting into short/long suffixes.
func sortChunkByLength(chunk []seq.Sequence) {
	sort.SliceStable(chunk, func(i, j int) bool {
		return chunk[i].Len() < chunk[j].Len()
	})
}

// splitShortLong returns the index at which chunk (already sorted
// ascending by length) crosses ShortLengthThreshold: chunk[:split] are
// short, chunk[split:] are long.
func splitShortLong(chunk []seq.Sequence) int {
	return sort.Search(len(chunk), func(i int) bool {
		return chunk[i].Len() > ShortLengthThreshold
	})
}

// partitionBalanced splits chunk[start:end] (already ascending by
// length) into at most numSegments contiguous ranges whose summed
// sequence length is as close to equal as spec.md §4.F's "boundary array
// of form [0, s_1, s_2, …]" describes. Empty ranges are omitted.
func partitionBalanced(chunk []seq.Sequence, start, end, numSegments int) []segment {
	if start >= end {
		return nil
	}
	total := 0
	for i := start; i < end; i++ {
		total += chunk[i].Len()
	}
	if numSegments < 1 {
		numSegments = 1
	}
	target := total / numSegments
	if target == 0 {
		target = 1
	}

	var segments []segment
	segStart := start
	running := 0
	for i := start; i < end; i++ {
		running += chunk[i].Len()
		lastSegment := len(segments) == numSegments-1
		if running >= target && !lastSegment && i+1 < end {
			segments = append(segments, newSegment(chunk, segStart, i+1))
			segStart = i + 1
			running = 0
		}
	}
	segments = append(segments, newSegment(chunk, segStart, end))
	return segments
}

func newSegment(chunk []seq.Sequence, start, end int) segment {
	maxLen := 0
	for i := start; i < end; i++ {
		if l := chunk[i].Len(); l > maxLen {
			maxLen = l
		}
	}
	return segment{Start: start, End: end, MaxLen: maxLen}
}
