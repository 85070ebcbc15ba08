package player

import (
	"sync"
	"time"
)

// State is the playback lifecycle state of a session.
type State int

const (
	StateIdle         State = iota // session exists but nothing is playing
	StatePlaying                   // a track is active
	StatePaused                    // a track is active and paused
	StateAwaitingNext              // between end-of-track and the next play directive
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateAwaitingNext:
		return "awaiting next"
	default:
		return "idle"
	}
}

// StopReason records why playback was deliberately halted. Set before the
// stop directive is issued so the end-of-track handler can tell an
// operator-initiated stop from a natural end and skip auto-advance.
type StopReason int

const (
	StopNone StopReason = iota
	StopUser
	StopInactivity
)

// MessageRef is a weak reference to the now-playing message. The message is
// owned by the chat layer and may vanish at any time; a stale ref is
// recovered by sending a new message.
type MessageRef struct {
	ChannelID string
	MessageID string
}

func (m MessageRef) IsZero() bool { return m.MessageID == "" }

// Status is a renderable snapshot of a session for the UI sink.
type Status struct {
	Track    *Track // nil when idle
	Paused   bool
	Volume   int
	Loop     LoopMode
	Autoplay bool
	QueueLen int
}

// Session holds the playback state of one guild while the bot occupies a
// voice channel. All fields are guarded by mu; it is touched both by command
// handlers and by node event handlers.
type Session struct {
	mu sync.Mutex

	guildID        string
	voiceChannelID string
	textChannelID  string

	queue      *Queue
	current    *Track
	state      State
	paused     bool
	volume     int
	autoplay   bool
	stopReason StopReason

	npMessage MessageRef
	idleSince time.Time
}

func newSession(guildID, voiceChannelID, textChannelID string) *Session {
	return &Session{
		guildID:        guildID,
		voiceChannelID: voiceChannelID,
		textChannelID:  textChannelID,
		queue:          NewQueue(),
		state:          StateIdle,
		volume:         100,
		idleSince:      time.Now(),
	}
}

// GuildID returns the guild this session belongs to.
func (s *Session) GuildID() string { return s.guildID }

// VoiceChannelID returns the voice channel the bot occupies.
func (s *Session) VoiceChannelID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.voiceChannelID
}

// TextChannelID returns the channel used for status messages.
func (s *Session) TextChannelID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.textChannelID
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IdleFor reports how long the session has been idle; zero when not idle.
func (s *Session) IdleFor() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return 0
	}
	return time.Since(s.idleSince)
}

// Status returns a renderable snapshot.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *Session) statusLocked() Status {
	st := Status{
		Paused:   s.paused,
		Volume:   s.volume,
		Loop:     s.queue.Mode(),
		Autoplay: s.autoplay,
		QueueLen: s.queue.Len(),
	}
	if s.current != nil {
		t := *s.current
		st.Track = &t
	}
	return st
}

// Current returns a copy of the active track, if any.
func (s *Session) Current() (Track, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Track{}, false
	}
	return *s.current, true
}

// QueueTracks returns a copy of the pending queue.
func (s *Session) QueueTracks() []Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Tracks()
}

// setCurrent installs the active track. Pause is reset; volume and loop mode
// persist across tracks.
func (s *Session) setCurrent(t Track) {
	s.current = &t
	s.paused = false
	s.state = StatePlaying
}

// clearCurrent drops the active track and marks the session idle.
func (s *Session) clearCurrent() {
	s.current = nil
	s.paused = false
	s.state = StateIdle
	s.idleSince = time.Now()
}
