package lavalink

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"musicmonkey/internal/player"
)

// ToPlayerTrack converts a node track into the playback domain's track.
func ToPlayerTrack(t Track) player.Track {
	return player.Track{
		ID:         t.Info.Identifier,
		Title:      t.Info.Title,
		Author:     t.Info.Author,
		Duration:   time.Duration(t.Info.Length) * time.Millisecond,
		URI:        t.Info.URI,
		ArtworkURL: t.Info.ArtworkURL,
		Encoded:    t.Encoded,
	}
}

// EventSink is where translated node events land. Satisfied by
// player.Controller.
type EventSink interface {
	HandleEvent(ctx context.Context, guildID string, ev player.Event)
}

// Bridge adapts a Node to the playback controller: directives go out as
// REST calls, websocket events come back as player events. Events must be
// attached after the controller is built (the controller needs the bridge
// as its node first).
type Bridge struct {
	node   *Node
	Events EventSink
}

// NewBridge wraps a node. The bridge is also the node's EventHandler; pass
// it to NewNode.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach binds the bridge to its node. Needed because the node wants its
// handler at construction time.
func (b *Bridge) Attach(node *Node) {
	b.node = node
}

// Play implements player.Node.
func (b *Bridge) Play(ctx context.Context, guildID string, t player.Track) error {
	return b.node.Play(ctx, guildID, t.Encoded)
}

// Stop implements player.Node.
func (b *Bridge) Stop(ctx context.Context, guildID string) error {
	return b.node.Stop(ctx, guildID)
}

// Pause implements player.Node.
func (b *Bridge) Pause(ctx context.Context, guildID string, paused bool) error {
	return b.node.Pause(ctx, guildID, paused)
}

// Seek implements player.Node.
func (b *Bridge) Seek(ctx context.Context, guildID string, position time.Duration) error {
	return b.node.Seek(ctx, guildID, position.Milliseconds())
}

// SetVolume implements player.Node.
func (b *Bridge) SetVolume(ctx context.Context, guildID string, volume int) error {
	return b.node.SetVolume(ctx, guildID, volume)
}

// Destroy implements player.Node.
func (b *Bridge) Destroy(ctx context.Context, guildID string) error {
	return b.node.Destroy(ctx, guildID)
}

// OnReady implements EventHandler.
func (b *Bridge) OnReady(sessionID string, resumed bool) {}

// OnTrackStart implements EventHandler.
func (b *Bridge) OnTrackStart(guildID string, track Track) {
	if b.Events == nil {
		return
	}
	t := ToPlayerTrack(track)
	b.Events.HandleEvent(context.Background(), guildID, player.Event{
		Type:  player.EventTrackStart,
		Track: &t,
	})
}

// OnTrackEnd implements EventHandler.
func (b *Bridge) OnTrackEnd(guildID string, track Track, reason TrackEndReason) {
	if b.Events == nil {
		return
	}
	t := ToPlayerTrack(track)
	b.Events.HandleEvent(context.Background(), guildID, player.Event{
		Type:   player.EventTrackEnd,
		Track:  &t,
		Reason: endReason(reason),
	})
}

// OnTrackException implements EventHandler. The node follows an exception
// with its own TrackEndEvent, so this only logs.
func (b *Bridge) OnTrackException(guildID string, track Track, ex Exception) {
	log.Warn().
		Str("guild", guildID).
		Str("track", track.Info.Title).
		Str("severity", ex.Severity).
		Str("error", ex.Message).
		Msg("track playback exception")
}

// OnTrackStuck implements EventHandler. A stuck track is treated as a
// failed one so playback moves on.
func (b *Bridge) OnTrackStuck(guildID string, track Track) {
	if b.Events == nil {
		return
	}
	log.Warn().Str("guild", guildID).Str("track", track.Info.Title).Msg("track stuck, advancing")
	t := ToPlayerTrack(track)
	b.Events.HandleEvent(context.Background(), guildID, player.Event{
		Type:   player.EventTrackEnd,
		Track:  &t,
		Reason: player.EndLoadFailed,
	})
}

// OnWebSocketClosed implements EventHandler.
func (b *Bridge) OnWebSocketClosed(guildID string, code int, reason string) {
	log.Warn().Str("guild", guildID).Int("code", code).Str("reason", reason).Msg("voice websocket closed")
}

func endReason(r TrackEndReason) player.EndReason {
	switch r {
	case EndReasonLoadFailed:
		return player.EndLoadFailed
	case EndReasonStopped:
		return player.EndStopped
	case EndReasonReplaced:
		return player.EndReplaced
	case EndReasonCleanup:
		return player.EndCleanup
	default:
		return player.EndNatural
	}
}
