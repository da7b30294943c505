package candidate

import "testing"

func TestTryInsertFillsUnderCapacity(t *testing.T) {
	var r Ring
	if !r.TryInsert(1, 5, 3) {
		t.Fatalf("expected admission under capacity")
	}
	if !r.TryInsert(2, 1, 3) {
		t.Fatalf("expected admission under capacity")
	}
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
}

func TestTryInsertRejectsBelowMinimumAtCapacity(t *testing.T) {
	var r Ring
	r.TryInsert(1, 9, 2)
	r.TryInsert(2, 7, 2)
	r.Flush(2)
	if r.TryInsert(3, 1, 2) {
		t.Fatalf("expected rejection of a score below the ring minimum")
	}
	if r.TryInsert(4, 7, 2) {
		// Allowed transiently per spec; ring may exceed maxK until flush.
	}
}

// TestFlushKeepsTopScoresInAscendingIDOrder mirrors spec.md §8 scenario 5: max_candidates=2,
// a query scored 5, 9, 7 across three targets should leave ids 1 and 2
// (scores 9 and 7) in ascending id order.
func TestFlushKeepsTopScoresInAscendingIDOrder(t *testing.T) {
	var r Ring
	r.TryInsert(0, 5, 2)
	r.TryInsert(1, 9, 2)
	r.TryInsert(2, 7, 2)
	r.Flush(2)

	ids := r.SortedByID()
	if len(ids) != 2 {
		t.Fatalf("expected 2 surviving candidates, got %d: %+v", len(ids), ids)
	}
	if ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("ids = %v, want [1 2]", ids)
	}
}

func TestFlushIsStableForTies(t *testing.T) {
	var r Ring
	r.TryInsert(5, 3, 10)
	r.TryInsert(1, 3, 10)
	r.TryInsert(9, 3, 10)
	r.Flush(10)

	ids := r.SortedByID()
	if len(ids) != 3 {
		t.Fatalf("expected all 3 equal-score entries retained, got %d", len(ids))
	}
	for i, want := range []uint32{5, 1, 9} {
		if r.entries[i].TargetID != want {
			t.Fatalf("entry %d after Flush = %d, want %d (insertion order)", i, r.entries[i].TargetID, want)
		}
	}
}

func TestFoldMergesBatchIntoRing(t *testing.T) {
	var r Ring
	r.TryInsert(0, 5, 3)

	snap := r.Snapshot()
	var b Batch
	b.Add(&snap, 3, 1, 9)
	b.Add(&snap, 3, 2, 7)

	r.Fold(&b, 3)
	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", r.Len())
	}
	if b.entries != nil && len(b.entries) != 0 {
		t.Fatalf("Fold should leave the batch empty, got %d entries", len(b.entries))
	}
}
