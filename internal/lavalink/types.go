// Package lavalink is a minimal Lavalink v4 client: a websocket for node
// events and a REST client for player control and track loading.
package lavalink

import "encoding/json"

// Config locates one Lavalink node.
type Config struct {
	Host     string
	Port     int
	Password string
	Secure   bool
}

// TrackInfo is the decoded metadata Lavalink attaches to a track.
type TrackInfo struct {
	Identifier string `json:"identifier"`
	IsSeekable bool   `json:"isSeekable"`
	Author     string `json:"author"`
	Length     int64  `json:"length"` // milliseconds
	IsStream   bool   `json:"isStream"`
	Position   int64  `json:"position"`
	Title      string `json:"title"`
	URI        string `json:"uri"`
	ArtworkURL string `json:"artworkUrl"`
	SourceName string `json:"sourceName"`
}

// Track is a playable track as Lavalink returns it.
type Track struct {
	Encoded string    `json:"encoded"`
	Info    TrackInfo `json:"info"`
}

// PlaylistInfo describes a loaded playlist.
type PlaylistInfo struct {
	Name          string `json:"name"`
	SelectedTrack int    `json:"selectedTrack"`
}

// Exception is the error detail Lavalink reports for failed loads and tracks.
type Exception struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Cause    string `json:"cause"`
}

// LoadType discriminates a loadtracks response.
type LoadType string

const (
	LoadTypeTrack    LoadType = "track"
	LoadTypePlaylist LoadType = "playlist"
	LoadTypeSearch   LoadType = "search"
	LoadTypeEmpty    LoadType = "empty"
	LoadTypeError    LoadType = "error"
)

// LoadResult is the decoded /v4/loadtracks response. Exactly one of the
// typed fields is populated depending on LoadType.
type LoadResult struct {
	LoadType  LoadType
	Track     *Track
	Playlist  *PlaylistInfo
	Tracks    []Track
	Exception *Exception
}

// rawLoadResult matches the wire shape, where data changes type with
// loadType.
type rawLoadResult struct {
	LoadType LoadType        `json:"loadType"`
	Data     json.RawMessage `json:"data"`
}

type rawPlaylist struct {
	Info   PlaylistInfo `json:"info"`
	Tracks []Track      `json:"tracks"`
}

func decodeLoadResult(body []byte) (*LoadResult, error) {
	var raw rawLoadResult
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	out := &LoadResult{LoadType: raw.LoadType}
	switch raw.LoadType {
	case LoadTypeTrack:
		var t Track
		if err := json.Unmarshal(raw.Data, &t); err != nil {
			return nil, err
		}
		out.Track = &t
	case LoadTypePlaylist:
		var p rawPlaylist
		if err := json.Unmarshal(raw.Data, &p); err != nil {
			return nil, err
		}
		out.Playlist = &p.Info
		out.Tracks = p.Tracks
	case LoadTypeSearch:
		if err := json.Unmarshal(raw.Data, &out.Tracks); err != nil {
			return nil, err
		}
	case LoadTypeError:
		var e Exception
		if err := json.Unmarshal(raw.Data, &e); err != nil {
			return nil, err
		}
		out.Exception = &e
	}
	return out, nil
}

// PlayerUpdate is the PATCH body for player control. Pointer fields are
// omitted when nil so each directive only touches what it names.
type PlayerUpdate struct {
	EncodedTrack *string      `json:"encodedTrack,omitempty"`
	Position     *int64       `json:"position,omitempty"`
	Paused       *bool        `json:"paused,omitempty"`
	Volume       *int         `json:"volume,omitempty"`
	Voice        *VoiceUpdate `json:"voice,omitempty"`
}

// VoiceUpdate carries the Discord voice credentials Lavalink needs to join.
type VoiceUpdate struct {
	Token     string `json:"token"`
	Endpoint  string `json:"endpoint"`
	SessionID string `json:"sessionId"`
}

// TrackEndReason is Lavalink's stated reason for a track ending.
type TrackEndReason string

const (
	EndReasonFinished   TrackEndReason = "finished"
	EndReasonLoadFailed TrackEndReason = "loadFailed"
	EndReasonStopped    TrackEndReason = "stopped"
	EndReasonReplaced   TrackEndReason = "replaced"
	EndReasonCleanup    TrackEndReason = "cleanup"
)

// EventHandler receives node lifecycle events. Calls arrive from the
// websocket read loop, one at a time.
type EventHandler interface {
	OnReady(sessionID string, resumed bool)
	OnTrackStart(guildID string, track Track)
	OnTrackEnd(guildID string, track Track, reason TrackEndReason)
	OnTrackException(guildID string, track Track, ex Exception)
	OnTrackStuck(guildID string, track Track)
	OnWebSocketClosed(guildID string, code int, reason string)
}
