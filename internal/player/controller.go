package player

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Controller owns all guild sessions and drives the playback state machine.
// Command handlers call the operation methods; the node adapter delivers
// lifecycle notifications through HandleEvent. Advancing the queue happens in
// exactly one place (advance, reached only from the track-end handler and
// the initial idle start), so a user skip and a natural end can never
// double-advance.
type Controller struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	node      Node
	voice     Voice
	notify    Notifier
	recommend Recommender

	// Optional hooks, called outside any lock when a session is created or
	// destroyed. Wired to the inactivity monitor.
	OnSessionOpen  func(guildID string)
	OnSessionClose func(guildID string)
}

// NewController creates a Controller. recommend may be nil to disable
// autoplay suggestions.
func NewController(node Node, voice Voice, notify Notifier, recommend Recommender) *Controller {
	return &Controller{
		sessions:  make(map[string]*Session),
		node:      node,
		voice:     voice,
		notify:    notify,
		recommend: recommend,
	}
}

// Session returns the session for a guild, if one exists.
func (c *Controller) Session(guildID string) (*Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.sessions[guildID]
	return s, ok
}

func (c *Controller) session(guildID string) (*Session, error) {
	s, ok := c.Session(guildID)
	if !ok {
		return nil, ErrNoSession
	}
	return s, nil
}

// Play enqueues tracks for a guild, creating the session and joining the
// voice channel on first use. Returns true when playback started (the queue
// was idle), false when the tracks were appended behind a playing track.
func (c *Controller) Play(ctx context.Context, guildID, voiceChannelID, textChannelID string, tracks []Track) (bool, error) {
	if len(tracks) == 0 {
		return false, fmt.Errorf("no tracks to enqueue")
	}

	c.mu.Lock()
	s, ok := c.sessions[guildID]
	created := false
	if !ok {
		s = newSession(guildID, voiceChannelID, textChannelID)
		c.sessions[guildID] = s
		created = true
	}
	c.mu.Unlock()

	if created {
		if err := c.voice.Join(guildID, voiceChannelID); err != nil {
			// never leave a half-created session behind
			c.mu.Lock()
			delete(c.sessions, guildID)
			c.mu.Unlock()
			return false, fmt.Errorf("join voice channel: %w", err)
		}
		if c.OnSessionOpen != nil {
			c.OnSessionOpen(guildID)
		}
		log.Info().Str("guild", guildID).Str("channel", voiceChannelID).Msg("playback session created")
	}

	s.mu.Lock()
	s.textChannelID = textChannelID
	s.queue.EnqueueAll(tracks)
	idle := s.current == nil && s.state == StateIdle
	s.mu.Unlock()

	if idle {
		c.advance(ctx, s, nil)
		return true, nil
	}
	return false, nil
}

// Skip stops the current track. The queue is not touched here: the node's
// end-of-track event lands in HandleEvent, whose handler is the single code
// path that advances. stopReason stays None so that handler knows to
// advance.
func (c *Controller) Skip(ctx context.Context, guildID string) error {
	s, err := c.session(guildID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return ErrNothingPlaying
	}
	s.state = StateAwaitingNext
	s.mu.Unlock()

	if err := c.node.Stop(ctx, guildID); err != nil {
		return fmt.Errorf("stop directive: %w", err)
	}
	return nil
}

// Stop halts playback and tears the session down (leave voice, delete the
// now-playing message, forget the session).
func (c *Controller) Stop(ctx context.Context, guildID string) error {
	return c.teardown(ctx, guildID, StopUser)
}

// Pause suspends playback. Pausing an already-paused session is reported as
// ErrAlreadyPaused without touching state.
func (c *Controller) Pause(ctx context.Context, guildID string) error {
	s, err := c.session(guildID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return ErrNothingPlaying
	}
	if s.paused {
		s.mu.Unlock()
		return ErrAlreadyPaused
	}
	s.mu.Unlock()

	if err := c.node.Pause(ctx, guildID, true); err != nil {
		return fmt.Errorf("pause directive: %w", err)
	}

	s.mu.Lock()
	s.paused = true
	s.state = StatePaused
	s.mu.Unlock()
	c.updateUI(s)
	return nil
}

// Resume continues paused playback.
func (c *Controller) Resume(ctx context.Context, guildID string) error {
	s, err := c.session(guildID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return ErrNothingPlaying
	}
	if !s.paused {
		s.mu.Unlock()
		return ErrNotPaused
	}
	s.mu.Unlock()

	if err := c.node.Pause(ctx, guildID, false); err != nil {
		return fmt.Errorf("resume directive: %w", err)
	}

	s.mu.Lock()
	s.paused = false
	s.state = StatePlaying
	s.mu.Unlock()
	c.updateUI(s)
	return nil
}

// Seek jumps to a position in the current track.
func (c *Controller) Seek(ctx context.Context, guildID string, position time.Duration) error {
	s, err := c.session(guildID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	playing := s.current != nil
	s.mu.Unlock()
	if !playing {
		return ErrNothingPlaying
	}

	if err := c.node.Seek(ctx, guildID, position); err != nil {
		return fmt.Errorf("seek directive: %w", err)
	}
	return nil
}

// SetVolume sets the session volume, clamped to [0, 100]. Session state is
// only updated after the node accepted the directive.
func (c *Controller) SetVolume(ctx context.Context, guildID string, volume int) (int, error) {
	s, err := c.session(guildID)
	if err != nil {
		return 0, err
	}

	volume = clampVolume(volume)
	if err := c.node.SetVolume(ctx, guildID, volume); err != nil {
		return 0, fmt.Errorf("volume directive: %w", err)
	}

	s.mu.Lock()
	s.volume = volume
	s.mu.Unlock()
	return volume, nil
}

// AdjustVolume applies a relative change, clamping at the bounds instead of
// erroring.
func (c *Controller) AdjustVolume(ctx context.Context, guildID string, delta int) (int, error) {
	s, err := c.session(guildID)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	target := s.volume + delta
	s.mu.Unlock()
	return c.SetVolume(ctx, guildID, target)
}

// SetLoop sets the loop mode.
func (c *Controller) SetLoop(guildID string, mode LoopMode) error {
	s, err := c.session(guildID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.queue.SetMode(mode)
	if mode != LoopQueue {
		s.queue.history = nil
	}
	s.mu.Unlock()
	return nil
}

// ToggleAutoplay flips the autoplay flag and returns the new value.
func (c *Controller) ToggleAutoplay(guildID string) (bool, error) {
	s, err := c.session(guildID)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	s.autoplay = !s.autoplay
	on := s.autoplay
	s.mu.Unlock()
	return on, nil
}

// Jump moves the track at a 1-based queue position to the front and skips to
// it. Validation happens before the current track is stopped.
func (c *Controller) Jump(ctx context.Context, guildID string, position int) error {
	s, err := c.session(guildID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return ErrNothingPlaying
	}
	if err := s.queue.Move(position, 1); err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = StateAwaitingNext
	s.mu.Unlock()

	if err := c.node.Stop(ctx, guildID); err != nil {
		return fmt.Errorf("stop directive: %w", err)
	}
	return nil
}

// Move relocates a queued track between 1-based positions.
func (c *Controller) Move(guildID string, from, to int) error {
	s, err := c.session(guildID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Move(from, to)
}

// RemoveAt removes the queued track at a 1-based position and returns it.
func (c *Controller) RemoveAt(guildID string, position int) (Track, error) {
	s, err := c.session(guildID)
	if err != nil {
		return Track{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.RemoveAt(position)
}

// Shuffle randomizes the pending queue.
func (c *Controller) Shuffle(guildID string) error {
	s, err := c.session(guildID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.queue.Shuffle()
	s.mu.Unlock()
	return nil
}

// ClearQueue drops all pending tracks, leaving the current track playing.
func (c *Controller) ClearQueue(guildID string) (int, error) {
	s, err := c.session(guildID)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	n := s.queue.Len()
	s.queue.Clear()
	s.mu.Unlock()
	return n, nil
}

// RemoveWhere removes all queued tracks matching pred and reports how many
// were dropped. Used by the purge command to shed tracks from users who left
// the voice channel.
func (c *Controller) RemoveWhere(guildID string, pred func(Track) bool) (int, error) {
	s, err := c.session(guildID)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.RemoveWhere(pred), nil
}

// HandleEvent is the single entry point for lifecycle notifications. Events
// for guilds without a session are stale (the session was torn down while
// the event was in flight) and are dropped.
func (c *Controller) HandleEvent(ctx context.Context, guildID string, ev Event) {
	s, ok := c.Session(guildID)
	if !ok {
		log.Debug().Str("guild", guildID).Int("event", int(ev.Type)).Msg("event for torn-down session dropped")
		return
	}

	switch ev.Type {
	case EventTrackStart:
		s.mu.Lock()
		if s.current == nil && ev.Track != nil {
			s.setCurrent(*ev.Track)
		} else if !s.paused {
			s.state = StatePlaying
		}
		s.mu.Unlock()
		c.updateUI(s)

	case EventTrackEnd:
		c.handleTrackEnd(ctx, s, ev)

	case EventPlayerInactive:
		if err := c.teardown(ctx, guildID, StopInactivity); err != nil && !errors.Is(err, ErrNoSession) {
			log.Warn().Err(err).Str("guild", guildID).Msg("inactivity teardown failed")
		}
	}
}

// handleTrackEnd decides what the end of a track means: a deliberate halt
// (stopReason set) never advances; a replaced track already has a successor
// directive in flight; everything else flows into advance.
func (c *Controller) handleTrackEnd(ctx context.Context, s *Session, ev Event) {
	s.mu.Lock()

	if ev.Reason == EndReplaced || ev.Reason == EndCleanup {
		s.mu.Unlock()
		return
	}

	if s.stopReason != StopNone {
		s.stopReason = StopNone
		s.clearCurrent()
		s.mu.Unlock()
		return
	}

	var finished *Track
	if s.current != nil {
		t := *s.current
		finished = &t
	}
	s.current = nil
	s.state = StateAwaitingNext

	if finished != nil && s.queue.Mode() == LoopTrack && ev.Reason == EndNatural {
		replay := *finished
		s.setCurrent(replay)
		guildID := s.guildID
		s.mu.Unlock()
		if err := c.node.Play(ctx, guildID, replay); err != nil {
			log.Warn().Err(err).Str("guild", guildID).Str("track", replay.Title).Msg("loop replay failed, advancing")
			s.mu.Lock()
			s.current = nil
			s.state = StateAwaitingNext
			s.mu.Unlock()
			c.advance(ctx, s, finished)
		}
		return
	}

	if finished != nil {
		s.queue.rememberPlayed(*finished)
	}
	s.mu.Unlock()

	c.advance(ctx, s, finished)
}

// advance is the exactly-once next-track selection. It dequeues (refilling
// from history under LoopQueue), issues the play directive, and skips over
// tracks the node rejects. On exhaustion it consults autoplay once, then
// goes idle.
func (c *Controller) advance(ctx context.Context, s *Session, finished *Track) {
	for {
		s.mu.Lock()
		next, ok := s.queue.Next()
		if !ok && s.queue.Mode() == LoopQueue && s.queue.refillFromHistory() {
			next, ok = s.queue.Next()
		}
		if !ok {
			s.mu.Unlock()
			break
		}
		s.setCurrent(next)
		guildID := s.guildID
		s.mu.Unlock()

		if err := c.node.Play(ctx, guildID, next); err != nil {
			log.Warn().Err(err).Str("guild", guildID).Str("track", next.Title).Msg("track rejected by node, skipping")
			s.mu.Lock()
			s.current = nil
			s.state = StateAwaitingNext
			s.mu.Unlock()
			continue
		}
		return
	}

	if finished != nil {
		s.mu.Lock()
		autoplay := s.autoplay
		s.mu.Unlock()
		if autoplay && c.recommend != nil {
			rec, err := c.recommend.NextTrack(ctx, *finished)
			if err != nil {
				log.Warn().Err(err).Str("guild", s.guildID).Msg("autoplay recommendation failed")
			} else if rec != nil {
				rec.Requester = AutoRequester
				s.mu.Lock()
				s.queue.Enqueue(*rec)
				s.mu.Unlock()
				// nil seed so a second exhaustion cannot recurse forever
				c.advance(ctx, s, nil)
				return
			}
		}
	}

	s.mu.Lock()
	s.clearCurrent()
	s.mu.Unlock()
	c.updateUI(s)
}

// teardown is the one destruction path: explicit stop, inactivity and empty
// channel all end here. The stop reason is recorded before the stop
// directive goes out so the end-of-track event it triggers cannot
// auto-advance.
func (c *Controller) teardown(ctx context.Context, guildID string, reason StopReason) error {
	s, ok := c.Session(guildID)
	if !ok {
		return ErrNoSession
	}

	s.mu.Lock()
	s.stopReason = reason
	hadTrack := s.current != nil
	ref := s.npMessage
	s.npMessage = MessageRef{}
	s.mu.Unlock()

	if hadTrack {
		if err := c.node.Stop(ctx, guildID); err != nil {
			log.Warn().Err(err).Str("guild", guildID).Msg("stop directive failed during teardown")
		}
	}
	if err := c.node.Destroy(ctx, guildID); err != nil {
		log.Warn().Err(err).Str("guild", guildID).Msg("destroy directive failed during teardown")
	}
	if err := c.voice.Leave(guildID); err != nil {
		log.Warn().Err(err).Str("guild", guildID).Msg("voice leave failed during teardown")
	}
	if !ref.IsZero() {
		if err := c.notify.Delete(ref); err != nil && !errors.Is(err, ErrMessageNotFound) {
			log.Warn().Err(err).Str("guild", guildID).Msg("now-playing delete failed during teardown")
		}
	}

	c.mu.Lock()
	delete(c.sessions, guildID)
	c.mu.Unlock()
	if c.OnSessionClose != nil {
		c.OnSessionClose(guildID)
	}

	log.Info().Str("guild", guildID).Int("reason", int(reason)).Msg("playback session destroyed")
	return nil
}

// updateUI renders the session state to the now-playing message. A stale
// message reference (deleted by a moderator, pruned channel) falls back to
// sending a fresh message and re-attaching, so one lost message never breaks
// future updates.
func (c *Controller) updateUI(s *Session) {
	s.mu.Lock()
	st := s.statusLocked()
	ref := s.npMessage
	channelID := s.textChannelID
	s.mu.Unlock()

	if ref.IsZero() {
		c.sendAndAttach(s, channelID, st)
		return
	}

	err := c.notify.Edit(ref, st)
	if err == nil {
		return
	}
	if errors.Is(err, ErrMessageNotFound) {
		c.sendAndAttach(s, channelID, st)
		return
	}
	log.Warn().Err(err).Str("guild", s.guildID).Msg("now-playing edit failed")
}

func (c *Controller) sendAndAttach(s *Session, channelID string, st Status) {
	ref, err := c.notify.Send(channelID, st)
	if err != nil {
		log.Warn().Err(err).Str("guild", s.guildID).Msg("now-playing send failed")
		return
	}
	s.mu.Lock()
	s.npMessage = ref
	s.mu.Unlock()
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
