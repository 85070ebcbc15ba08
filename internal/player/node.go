package player

import (
	"context"
	"time"
)

// Node is the narrow contract the controller needs from the external audio
// node. Directives are fire-and-forget from the state machine's point of
// view: lifecycle outcomes arrive later as Events.
type Node interface {
	Play(ctx context.Context, guildID string, track Track) error
	Stop(ctx context.Context, guildID string) error
	Pause(ctx context.Context, guildID string, paused bool) error
	Seek(ctx context.Context, guildID string, position time.Duration) error
	SetVolume(ctx context.Context, guildID string, volume int) error
	Destroy(ctx context.Context, guildID string) error
}

// Voice abstracts the bot's voice-channel membership.
type Voice interface {
	Join(guildID, channelID string) error
	Leave(guildID string) error
	// Listeners counts non-bot members in the channel.
	Listeners(guildID, channelID string) (int, error)
}

// Notifier is the UI sink for now-playing messages. Delete must be
// idempotent; Edit returns ErrMessageNotFound when the message is gone.
type Notifier interface {
	Send(channelID string, st Status) (MessageRef, error)
	Edit(ref MessageRef, st Status) error
	Delete(ref MessageRef) error
}

// Recommender proposes a follow-up track for autoplay. A nil track with a
// nil error means "no suggestion".
type Recommender interface {
	NextTrack(ctx context.Context, seed Track) (*Track, error)
}
