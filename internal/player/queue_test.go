package player

import "testing"

func mkTrack(id string) Track {
	return Track{ID: id, Title: "title " + id, Requester: Requester{ID: "u1", Name: "tester"}}
}

func queueIDs(q *Queue) []string {
	var ids []string
	for _, t := range q.Tracks() {
		ids = append(ids, t.ID)
	}
	return ids
}

func wantOrder(t *testing.T, q *Queue, want ...string) {
	t.Helper()
	got := queueIDs(q)
	if len(got) != len(want) {
		t.Fatalf("queue length = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("queue order = %v, want %v", got, want)
		}
	}
}

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	q.Enqueue(mkTrack("a"))
	q.EnqueueAll([]Track{mkTrack("b"), mkTrack("c")})

	for _, want := range []string{"a", "b", "c"} {
		got, ok := q.Next()
		if !ok {
			t.Fatalf("Next returned empty, want %q", want)
		}
		if got.ID != want {
			t.Fatalf("Next = %q, want %q", got.ID, want)
		}
	}
	if _, ok := q.Next(); ok {
		t.Fatal("Next on drained queue returned a track")
	}
}

func TestQueueMoveInverseRestoresOrder(t *testing.T) {
	q := NewQueue()
	q.EnqueueAll([]Track{mkTrack("a"), mkTrack("b"), mkTrack("c"), mkTrack("d")})

	if err := q.Move(1, 3); err != nil {
		t.Fatal(err)
	}
	if err := q.Move(3, 1); err != nil {
		t.Fatal(err)
	}
	wantOrder(t, q, "a", "b", "c", "d")
}

func TestQueueMoveValidatesBeforeMutation(t *testing.T) {
	q := NewQueue()
	q.EnqueueAll([]Track{mkTrack("a"), mkTrack("b")})

	for _, tc := range [][2]int{{0, 1}, {1, 0}, {3, 1}, {1, 3}, {-1, 1}} {
		if err := q.Move(tc[0], tc[1]); err != ErrInvalidPosition {
			t.Fatalf("Move(%d,%d) = %v, want ErrInvalidPosition", tc[0], tc[1], err)
		}
		wantOrder(t, q, "a", "b")
	}
}

func TestQueueRemoveAtSamePositionTwice(t *testing.T) {
	q := NewQueue()
	q.EnqueueAll([]Track{mkTrack("a"), mkTrack("b"), mkTrack("c")})

	first, err := q.RemoveAt(2)
	if err != nil {
		t.Fatal(err)
	}
	second, err := q.RemoveAt(2)
	if err != nil {
		t.Fatal(err)
	}
	// positions shift after removal, so the same position hits a new track
	if first.ID != "b" || second.ID != "c" {
		t.Fatalf("removed %q then %q, want b then c", first.ID, second.ID)
	}
	wantOrder(t, q, "a")
}

func TestQueueRemoveAtBounds(t *testing.T) {
	q := NewQueue()
	q.Enqueue(mkTrack("a"))

	if _, err := q.RemoveAt(0); err != ErrInvalidPosition {
		t.Fatalf("RemoveAt(0) = %v, want ErrInvalidPosition", err)
	}
	if _, err := q.RemoveAt(2); err != ErrInvalidPosition {
		t.Fatalf("RemoveAt(2) = %v, want ErrInvalidPosition", err)
	}
	if got, err := q.RemoveAt(1); err != nil || got.ID != "a" {
		t.Fatalf("RemoveAt(1) = %q, %v", got.ID, err)
	}
}

func TestQueueMoveRemoveDequeueScenario(t *testing.T) {
	q := NewQueue()
	q.EnqueueAll([]Track{mkTrack("a"), mkTrack("b"), mkTrack("c")})

	if err := q.Move(3, 1); err != nil {
		t.Fatal(err)
	}
	wantOrder(t, q, "c", "a", "b")

	if _, err := q.RemoveAt(2); err != nil {
		t.Fatal(err)
	}
	wantOrder(t, q, "c", "b")

	next, ok := q.Next()
	if !ok || next.ID != "c" {
		t.Fatalf("Next = %q, %v, want c", next.ID, ok)
	}
}

func TestQueueShuffleSmallNoop(t *testing.T) {
	q := NewQueue()
	q.Shuffle()
	if q.Len() != 0 {
		t.Fatal("shuffle of empty queue changed length")
	}

	q.Enqueue(mkTrack("a"))
	q.Shuffle()
	wantOrder(t, q, "a")
}

func TestQueueShufflePreservesContents(t *testing.T) {
	q := NewQueue()
	ids := []string{"a", "b", "c", "d", "e", "f"}
	for _, id := range ids {
		q.Enqueue(mkTrack(id))
	}
	q.Shuffle()

	if q.Len() != len(ids) {
		t.Fatalf("length after shuffle = %d, want %d", q.Len(), len(ids))
	}
	seen := make(map[string]bool)
	for _, id := range queueIDs(q) {
		seen[id] = true
	}
	for _, id := range ids {
		if !seen[id] {
			t.Fatalf("track %q missing after shuffle", id)
		}
	}
}

func TestQueueRemoveWhere(t *testing.T) {
	q := NewQueue()
	a := mkTrack("a")
	b := mkTrack("b")
	b.Requester.ID = "gone"
	c := mkTrack("c")
	d := mkTrack("d")
	d.Requester.ID = "gone"
	q.EnqueueAll([]Track{a, b, c, d})

	n := q.RemoveWhere(func(t Track) bool { return t.Requester.ID == "gone" })
	if n != 2 {
		t.Fatalf("removed %d, want 2", n)
	}
	wantOrder(t, q, "a", "c")
}

func TestQueueLoopHistoryRefill(t *testing.T) {
	q := NewQueue()
	q.SetMode(LoopQueue)
	q.EnqueueAll([]Track{mkTrack("a"), mkTrack("b"), mkTrack("c")})

	for i := 0; i < 3; i++ {
		tr, ok := q.Next()
		if !ok {
			t.Fatalf("queue drained at %d", i)
		}
		q.rememberPlayed(tr)
	}
	if !q.IsEmpty() {
		t.Fatal("queue not empty after draining")
	}
	if q.historyLen() != 3 {
		t.Fatalf("history length = %d, want 3", q.historyLen())
	}

	if !q.refillFromHistory() {
		t.Fatal("refill reported no history")
	}
	// replayed in original play order, history reset for the next cycle
	wantOrder(t, q, "a", "b", "c")
	if q.historyLen() != 0 {
		t.Fatalf("history length after refill = %d, want 0", q.historyLen())
	}
}

func TestQueueHistoryIgnoredOutsideLoopQueue(t *testing.T) {
	q := NewQueue()
	q.rememberPlayed(mkTrack("a"))
	if q.historyLen() != 0 {
		t.Fatal("history grew while loop mode off")
	}
	if q.refillFromHistory() {
		t.Fatal("refill succeeded with no history")
	}
}

func TestDedupeByID(t *testing.T) {
	in := []Track{mkTrack("a"), mkTrack("b"), mkTrack("a"), mkTrack("c"), mkTrack("b")}
	out := DedupeByID(in)
	if len(out) != 3 {
		t.Fatalf("deduped length = %d, want 3", len(out))
	}
	for i, want := range []string{"a", "b", "c"} {
		if out[i].ID != want {
			t.Fatalf("out[%d] = %q, want %q", i, out[i].ID, want)
		}
	}
}
