package lavalink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"musicmonkey/internal/version"
)

// ErrNotReady is returned for player directives issued before the node's
// ready payload delivered a session id.
var ErrNotReady = errors.New("lavalink: node has no session yet")

// voiceCreds accumulates the two halves of Discord's voice handshake. The
// player can only be pointed at a channel once both have arrived.
type voiceCreds struct {
	sessionID string
	token     string
	endpoint  string
}

func (v *voiceCreds) complete() bool {
	return v.sessionID != "" && v.token != "" && v.endpoint != ""
}

// Node is one Lavalink node: an event websocket plus the REST client that
// does the actual player control.
type Node struct {
	cfg     Config
	userID  string
	handler EventHandler
	rest    *restClient

	mu        sync.Mutex
	conn      *websocket.Conn
	sessionID string
	closed    bool
	voice     map[string]*voiceCreds
}

// NewNode creates a Node for the given bot user. handler receives all
// websocket events.
func NewNode(cfg Config, userID string, handler EventHandler) *Node {
	return &Node{
		cfg:     cfg,
		userID:  userID,
		handler: handler,
		rest:    newRESTClient(cfg),
		voice:   make(map[string]*voiceCreds),
	}
}

// Connect dials the node websocket and starts the read loop. Reconnection
// after a drop is automatic.
func (n *Node) Connect(ctx context.Context) error {
	conn, err := n.dial(ctx)
	if err != nil {
		return err
	}

	n.mu.Lock()
	n.conn = conn
	n.mu.Unlock()

	go n.readLoop()
	return nil
}

func (n *Node) dial(ctx context.Context) (*websocket.Conn, error) {
	scheme := "ws"
	if n.cfg.Secure {
		scheme = "wss"
	}
	addr := fmt.Sprintf("%s://%s:%d/v4/websocket", scheme, n.cfg.Host, n.cfg.Port)

	headers := http.Header{}
	headers.Set("Authorization", n.cfg.Password)
	headers.Set("User-Id", n.userID)
	headers.Set("Client-Name", version.AppName+"/"+version.AppVersion)

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, addr, headers)
	if err != nil {
		return nil, fmt.Errorf("dial lavalink: %w", err)
	}
	return conn, nil
}

// Close shuts the websocket down and stops reconnection.
func (n *Node) Close() {
	n.mu.Lock()
	n.closed = true
	conn := n.conn
	n.conn = nil
	n.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
}

func (n *Node) readLoop() {
	for {
		n.mu.Lock()
		conn := n.conn
		closed := n.closed
		n.mu.Unlock()
		if closed || conn == nil {
			return
		}

		_, raw, err := conn.ReadMessage()
		if err != nil {
			n.mu.Lock()
			closed := n.closed
			n.mu.Unlock()
			if closed {
				return
			}
			log.Warn().Err(err).Str("host", n.cfg.Host).Msg("lavalink socket dropped, reconnecting")
			n.reconnect()
			return
		}

		n.handleMessage(raw)
	}
}

// reconnect redials with backoff until it succeeds or Close is called.
func (n *Node) reconnect() {
	delay := time.Second
	for {
		n.mu.Lock()
		if n.closed {
			n.mu.Unlock()
			return
		}
		n.mu.Unlock()

		time.Sleep(delay)
		if delay < 30*time.Second {
			delay *= 2
		}

		conn, err := n.dial(context.Background())
		if err != nil {
			log.Warn().Err(err).Dur("retry_in", delay).Msg("lavalink reconnect failed")
			continue
		}

		n.mu.Lock()
		n.conn = conn
		n.mu.Unlock()
		log.Info().Str("host", n.cfg.Host).Msg("lavalink reconnected")
		go n.readLoop()
		return
	}
}

// wsMessage is a superset of every payload the node sends.
type wsMessage struct {
	Op        string         `json:"op"`
	SessionID string         `json:"sessionId"`
	Resumed   bool           `json:"resumed"`
	Type      string         `json:"type"`
	GuildID   string         `json:"guildId"`
	Track     *Track         `json:"track"`
	Reason    TrackEndReason `json:"reason"`
	Exception *Exception     `json:"exception"`
	Code      int            `json:"code"`
	ByRemote  bool           `json:"byRemote"`
}

func (n *Node) handleMessage(raw []byte) {
	var msg wsMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		log.Debug().Err(err).Msg("undecodable lavalink payload dropped")
		return
	}

	switch msg.Op {
	case "ready":
		n.mu.Lock()
		n.sessionID = msg.SessionID
		n.mu.Unlock()
		log.Info().Str("session", msg.SessionID).Bool("resumed", msg.Resumed).Msg("lavalink ready")
		n.handler.OnReady(msg.SessionID, msg.Resumed)

	case "playerUpdate", "stats":
		// position/load telemetry, nothing to act on

	case "event":
		n.dispatchEvent(msg)
	}
}

func (n *Node) dispatchEvent(msg wsMessage) {
	track := Track{}
	if msg.Track != nil {
		track = *msg.Track
	}

	switch msg.Type {
	case "TrackStartEvent":
		n.handler.OnTrackStart(msg.GuildID, track)
	case "TrackEndEvent":
		n.handler.OnTrackEnd(msg.GuildID, track, msg.Reason)
	case "TrackExceptionEvent":
		ex := Exception{}
		if msg.Exception != nil {
			ex = *msg.Exception
		}
		n.handler.OnTrackException(msg.GuildID, track, ex)
	case "TrackStuckEvent":
		n.handler.OnTrackStuck(msg.GuildID, track)
	case "WebSocketClosedEvent":
		n.handler.OnWebSocketClosed(msg.GuildID, msg.Code, string(msg.Reason))
	default:
		log.Debug().Str("type", msg.Type).Msg("unhandled lavalink event")
	}
}

// SessionID returns the node session id, empty before ready.
func (n *Node) SessionID() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sessionID
}

func (n *Node) requireSession() (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.sessionID == "" {
		return "", ErrNotReady
	}
	return n.sessionID, nil
}

// LoadTracks resolves an identifier into tracks via the node REST API.
func (n *Node) LoadTracks(ctx context.Context, identifier string) (*LoadResult, error) {
	return n.rest.LoadTracks(ctx, identifier)
}

// HandleVoiceStateUpdate records the bot's voice session id for a guild.
// A later server update completes the handshake.
func (n *Node) HandleVoiceStateUpdate(ctx context.Context, guildID, voiceSessionID string) {
	n.mu.Lock()
	creds := n.voiceFor(guildID)
	creds.sessionID = voiceSessionID
	n.mu.Unlock()
	n.pushVoice(ctx, guildID)
}

// HandleVoiceServerUpdate records the voice token and endpoint for a guild.
func (n *Node) HandleVoiceServerUpdate(ctx context.Context, guildID, token, endpoint string) {
	n.mu.Lock()
	creds := n.voiceFor(guildID)
	creds.token = token
	creds.endpoint = endpoint
	n.mu.Unlock()
	n.pushVoice(ctx, guildID)
}

func (n *Node) voiceFor(guildID string) *voiceCreds {
	creds, ok := n.voice[guildID]
	if !ok {
		creds = &voiceCreds{}
		n.voice[guildID] = creds
	}
	return creds
}

// pushVoice forwards complete voice credentials to the node.
func (n *Node) pushVoice(ctx context.Context, guildID string) {
	n.mu.Lock()
	creds, ok := n.voice[guildID]
	if !ok || !creds.complete() {
		n.mu.Unlock()
		return
	}
	upd := VoiceUpdate{Token: creds.token, Endpoint: creds.endpoint, SessionID: creds.sessionID}
	sid := n.sessionID
	n.mu.Unlock()

	if sid == "" {
		log.Warn().Str("guild", guildID).Msg("voice credentials ready before lavalink session")
		return
	}
	if err := n.rest.UpdatePlayer(ctx, sid, guildID, PlayerUpdate{Voice: &upd}, false); err != nil {
		log.Error().Err(err).Str("guild", guildID).Msg("voice handshake forward failed")
	}
}

// ForgetVoice drops stored voice credentials for a guild. Called when the
// bot leaves the channel so a stale handshake is never replayed.
func (n *Node) ForgetVoice(guildID string) {
	n.mu.Lock()
	delete(n.voice, guildID)
	n.mu.Unlock()
}

// Play loads an encoded track into the guild player, replacing whatever is
// there.
func (n *Node) Play(ctx context.Context, guildID, encoded string) error {
	sid, err := n.requireSession()
	if err != nil {
		return err
	}
	return n.rest.UpdatePlayer(ctx, sid, guildID, PlayerUpdate{EncodedTrack: &encoded}, false)
}

// Stop halts the guild player by loading a null track.
func (n *Node) Stop(ctx context.Context, guildID string) error {
	sid, err := n.requireSession()
	if err != nil {
		return err
	}
	// encodedTrack must be an explicit null, omitempty would drop it
	body := struct {
		EncodedTrack *string `json:"encodedTrack"`
	}{}
	return n.rest.UpdatePlayer(ctx, sid, guildID, body, false)
}

// Pause sets the paused flag on the guild player.
func (n *Node) Pause(ctx context.Context, guildID string, paused bool) error {
	sid, err := n.requireSession()
	if err != nil {
		return err
	}
	return n.rest.UpdatePlayer(ctx, sid, guildID, PlayerUpdate{Paused: &paused}, false)
}

// Seek moves the playhead, in milliseconds from the start.
func (n *Node) Seek(ctx context.Context, guildID string, positionMillis int64) error {
	sid, err := n.requireSession()
	if err != nil {
		return err
	}
	return n.rest.UpdatePlayer(ctx, sid, guildID, PlayerUpdate{Position: &positionMillis}, false)
}

// SetVolume sets the guild player volume.
func (n *Node) SetVolume(ctx context.Context, guildID string, volume int) error {
	sid, err := n.requireSession()
	if err != nil {
		return err
	}
	return n.rest.UpdatePlayer(ctx, sid, guildID, PlayerUpdate{Volume: &volume}, false)
}

// Destroy removes the guild player from the node entirely.
func (n *Node) Destroy(ctx context.Context, guildID string) error {
	sid, err := n.requireSession()
	if err != nil {
		return err
	}
	n.ForgetVoice(guildID)
	return n.rest.DestroyPlayer(ctx, sid, guildID)
}
