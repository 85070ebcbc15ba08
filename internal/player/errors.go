package player

import "errors"

// Sentinel errors the command surface maps to user-facing messages.
// Precondition errors (already paused, empty queue) are soft: they describe
// a no-op, not a failure.
var (
	ErrQueueEmpty      = errors.New("the queue is empty")
	ErrInvalidPosition = errors.New("invalid queue position")
	ErrNothingPlaying  = errors.New("nothing is playing")
	ErrAlreadyPaused   = errors.New("playback is already paused")
	ErrNotPaused       = errors.New("playback is not paused")
	ErrNoSession       = errors.New("no active session for this guild")

	// ErrMessageNotFound is returned by Notifier implementations when the
	// referenced message no longer exists; the controller falls back to
	// sending a fresh one.
	ErrMessageNotFound = errors.New("message not found")
)
