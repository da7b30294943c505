// Package candidate implements the per-query bounded top-K candidate
// store described in spec.md §3/§4.E.
package candidate

import "sort"

// Candidate is a (target id, score) pair qualifying a target for
// downstream alignment.
type Candidate struct {
	TargetID uint32
	Score    uint16
}

// Ring is one query's bounded top-K candidate store. TryInsert and Fold
// append in arrival order; Flush puts the entries in descending score
// order with ties broken stably by insertion order. It is shared
// across workers; every mutating method expects the caller to hold the
// query's lock (spec.md §5: "per-query try_insert/flush acquires that
// query's lock briefly").
type Ring struct {
	entries []Candidate
}

// TryInsert admits (targetID, score) if the ring has fewer than maxK
// entries or score is at least the ring's current minimum. The ring may
// transiently exceed maxK between Flush calls, per spec.md §4.E.
func (r *Ring) TryInsert(targetID uint32, score uint16, maxK int) bool {
	if len(r.entries) < maxK {
		r.entries = append(r.entries, Candidate{TargetID: targetID, Score: score})
		return true
	}
	if score >= r.minScore() {
		r.entries = append(r.entries, Candidate{TargetID: targetID, Score: score})
		return true
	}
	return false
}

// MinScore returns the ring's current admission threshold: the lowest
// score currently held, or 0 if empty.
func (r *Ring) MinScore() uint16 { return r.minScore() }

func (r *Ring) minScore() uint16 {
	if len(r.entries) == 0 {
		return 0
	}
	min := r.entries[0].Score
	for _, e := range r.entries[1:] {
		if e.Score < min {
			min = e.Score
		}
	}
	return min
}

// Len returns the number of entries currently held.
func (r *Ring) Len() int { return len(r.entries) }

// Flush stable-sorts entries by descending score and truncates to maxK,
// per spec.md §4.E.
func (r *Ring) Flush(maxK int) {
	sort.SliceStable(r.entries, func(i, j int) bool {
		return r.entries[i].Score > r.entries[j].Score
	})
	if len(r.entries) > maxK {
		r.entries = r.entries[:maxK]
	}
}

// SortedByID returns the ring's target ids in strictly ascending order,
// the final shape spec.md §6 requires for a query's Indexes entry. The
// ring must already be deduplicated by target id by callers (a target
// is only ever reported once per task since tasks scan disjoint id
// ranges).
func (r *Ring) SortedByID() []uint32 {
	ids := make([]uint32, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.TargetID
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Batch is a worker-local accumulation of candidates for one query,
// admitted against a cached snapshot of the shared ring's threshold so a
// worker need not take the query's lock on every hit. Spec.md §4.E:
// "each worker holds a thread-local entries_part per query... decides
// admission using a cached min_entry_score and entries_found read once
// from the shared ring."
type Batch struct {
	entries []Candidate
}

// Snapshot captures the admission state a worker should cache before
// scanning a group of targets for one query.
type Snapshot struct {
	Found    int
	MinScore uint16
}

// Snapshot reads the ring's current size and minimum score for a worker
// to cache locally.
func (r *Ring) Snapshot() Snapshot {
	return Snapshot{Found: len(r.entries), MinScore: r.minScore()}
}

// Add appends a candidate to the batch without touching the shared ring,
// applying the same admission rule the reference scanner uses: admit
// freely below capacity, otherwise admit only scores at or above the
// cached minimum, tightening that cached minimum downward as weaker
// entries are admitted under capacity.
func (b *Batch) Add(snap *Snapshot, maxK int, targetID uint32, score uint16) {
	underCapacity := snap.Found < maxK
	if !underCapacity && score < snap.MinScore {
		return
	}
	b.entries = append(b.entries, Candidate{TargetID: targetID, Score: score})
	snap.Found++
	if snap.MinScore > score {
		snap.MinScore = score
	}
}

// Fold merges a worker's batch into the shared ring under the caller's
// lock and re-sorts/truncates to maxK, matching the teacher-grounded
// "fold into shared ring then flush" two-step from spec.md §4.E.
func (r *Ring) Fold(b *Batch, maxK int) {
	r.entries = append(r.entries, b.entries...)
	r.Flush(maxK)
	b.entries = b.entries[:0]
}
