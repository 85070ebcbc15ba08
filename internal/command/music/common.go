// Package music holds the playback slash commands.
package music

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/command"
	"musicmonkey/internal/player"
)

const category = "🎵 Music"

// commandTimeout bounds the node round trips a handler performs.
const commandTimeout = 15 * time.Second

func opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), commandTimeout)
}

// errorMessage maps playback errors to user-facing text.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, player.ErrNoSession):
		return "Nothing is playing on this server."
	case errors.Is(err, player.ErrNothingPlaying):
		return "Nothing is playing right now."
	case errors.Is(err, player.ErrQueueEmpty):
		return "The queue is empty."
	case errors.Is(err, player.ErrInvalidPosition):
		return "That queue position doesn't exist."
	case errors.Is(err, player.ErrAlreadyPaused):
		return "Playback is already paused."
	case errors.Is(err, player.ErrNotPaused):
		return "Playback isn't paused."
	default:
		return fmt.Sprintf("Something went wrong: %v", err)
	}
}

// requireVoice returns the invoker's voice state or answers the interaction
// with an explanation.
func requireVoice(ctx *command.SlashContext) (*discordgo.VoiceState, bool) {
	vs, err := command.FindUserVoiceState(ctx.Session, ctx.GuildID(), ctx.User().ID)
	if err != nil {
		_ = command.RespondEphemeral(ctx.Session, ctx.Event, "Join a voice channel first.")
		return nil, false
	}
	return vs, true
}

// parsePosition reads "90", "1:30" or "1:02:30" into a duration.
func parsePosition(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("invalid position %q", s)
	}

	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid position %q", s)
		}
		total = total*60 + n
	}
	return time.Duration(total) * time.Second, nil
}

// trackLine renders one track for queue listings.
func trackLine(t player.Track) string {
	return fmt.Sprintf("**%s** by %s `[%s]` (queued by %s)",
		t.Title, t.Author, command.FormatDuration(t.Duration), t.RequesterName())
}
