package player

import "math/rand"

// LoopMode controls what happens when tracks run out.
type LoopMode int

const (
	LoopNone  LoopMode = iota // play through, then idle
	LoopTrack                 // repeat the current track
	LoopQueue                 // replay the whole queue from history
)

func (m LoopMode) String() string {
	switch m {
	case LoopTrack:
		return "track"
	case LoopQueue:
		return "queue"
	default:
		return "off"
	}
}

// Queue is the ordered pending-track list for one guild session. Positions in
// the public API are 1-based (what users see); internally it is a plain
// slice, so indices are always contiguous. Queue is not safe for concurrent
// use: the owning session's lock guards it.
type Queue struct {
	tracks  []Track
	history []Track
	mode    LoopMode
}

func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends a track.
func (q *Queue) Enqueue(t Track) {
	q.tracks = append(q.tracks, t)
}

// EnqueueAll appends tracks preserving their order.
func (q *Queue) EnqueueAll(ts []Track) {
	q.tracks = append(q.tracks, ts...)
}

// Next removes and returns the head of the queue.
func (q *Queue) Next() (Track, bool) {
	if len(q.tracks) == 0 {
		return Track{}, false
	}
	t := q.tracks[0]
	q.tracks = q.tracks[1:]
	return t, true
}

// Peek returns the head without removing it.
func (q *Queue) Peek() (Track, bool) {
	if len(q.tracks) == 0 {
		return Track{}, false
	}
	return q.tracks[0], true
}

// RemoveAt removes the track at a 1-based position. The last position equals
// Len; 0 and negatives are invalid.
func (q *Queue) RemoveAt(pos int) (Track, error) {
	if pos < 1 || pos > len(q.tracks) {
		return Track{}, ErrInvalidPosition
	}
	i := pos - 1
	t := q.tracks[i]
	q.tracks = append(q.tracks[:i], q.tracks[i+1:]...)
	return t, nil
}

// Move removes the track at from and reinserts it at to (both 1-based).
// Both positions are validated against the current length before any
// mutation happens.
func (q *Queue) Move(from, to int) error {
	n := len(q.tracks)
	if from < 1 || from > n || to < 1 || to > n {
		return ErrInvalidPosition
	}
	if from == to {
		return nil
	}
	t := q.tracks[from-1]
	q.tracks = append(q.tracks[:from-1], q.tracks[from:]...)
	rest := q.tracks[to-1:]
	q.tracks = append(q.tracks[:to-1], append([]Track{t}, rest...)...)
	return nil
}

// Shuffle randomizes the pending order. A no-op on fewer than two tracks.
// The currently playing track has already left the queue and is untouched.
func (q *Queue) Shuffle() {
	if len(q.tracks) < 2 {
		return
	}
	rand.Shuffle(len(q.tracks), func(i, j int) {
		q.tracks[i], q.tracks[j] = q.tracks[j], q.tracks[i]
	})
}

// Clear drops all pending tracks. The loop mode is unaffected.
func (q *Queue) Clear() {
	q.tracks = nil
}

// RemoveWhere removes all tracks matching pred in a single pass, preserving
// the relative order of survivors. Returns how many were removed.
func (q *Queue) RemoveWhere(pred func(Track) bool) int {
	kept := q.tracks[:0]
	removed := 0
	for _, t := range q.tracks {
		if pred(t) {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	q.tracks = kept
	return removed
}

// Tracks returns a copy of the pending tracks.
func (q *Queue) Tracks() []Track {
	out := make([]Track, len(q.tracks))
	copy(out, q.tracks)
	return out
}

func (q *Queue) Len() int      { return len(q.tracks) }
func (q *Queue) IsEmpty() bool { return len(q.tracks) == 0 }

func (q *Queue) Mode() LoopMode        { return q.mode }
func (q *Queue) SetMode(mode LoopMode) { q.mode = mode }

// rememberPlayed retains a finished track for a later LoopQueue refill.
// History only accumulates while LoopQueue is active and is dropped on each
// refill, so it stays bounded by one cycle of the queue.
func (q *Queue) rememberPlayed(t Track) {
	if q.mode != LoopQueue {
		return
	}
	q.history = append(q.history, t)
}

// refillFromHistory rebuilds the queue from played history in original play
// order. Returns false when there is no history to replay.
func (q *Queue) refillFromHistory() bool {
	if len(q.history) == 0 {
		return false
	}
	q.tracks = append(q.tracks, q.history...)
	q.history = nil
	return true
}

func (q *Queue) historyLen() int { return len(q.history) }

// DedupeByID removes tracks whose ID already appeared earlier in the list, keeping
// the first occurrence. Used for playlist content, not the live queue.
func DedupeByID(tracks []Track) []Track {
	seen := make(map[string]bool, len(tracks))
	out := tracks[:0]
	for _, t := range tracks {
		if t.ID != "" && seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}
