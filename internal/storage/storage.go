package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"musicmonkey/datastore"
	"musicmonkey/internal/player"
)

const (
	commandHistoryLimit = 20
	playlistTrackLimit  = 100
)

type Storage struct {
	ds *datastore.DataStore
}

// StoredTrack is the persisted shape of a track. Kept separate from the
// playback type so the on-disk format does not follow internal refactors.
type StoredTrack struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	DurationMS int64  `json:"duration_ms"`
	URI        string `json:"uri"`
	ArtworkURL string `json:"artwork_url,omitempty"`
	Encoded    string `json:"encoded"`
}

func toStoredTrack(t player.Track) StoredTrack {
	return StoredTrack{
		ID:         t.ID,
		Title:      t.Title,
		Author:     t.Author,
		DurationMS: t.Duration.Milliseconds(),
		URI:        t.URI,
		ArtworkURL: t.ArtworkURL,
		Encoded:    t.Encoded,
	}
}

// ToPlayerTrack converts back for playback. The requester is whoever loads
// it, not whoever saved it, so it starts empty.
func (t StoredTrack) ToPlayerTrack() player.Track {
	return player.Track{
		ID:         t.ID,
		Title:      t.Title,
		Author:     t.Author,
		Duration:   time.Duration(t.DurationMS) * time.Millisecond,
		URI:        t.URI,
		ArtworkURL: t.ArtworkURL,
		Encoded:    t.Encoded,
	}
}

type Playlist struct {
	Name      string        `json:"name"`
	OwnerID   string        `json:"owner_id"`
	Tracks    []StoredTrack `json:"tracks"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type CommandHistoryRecord struct {
	ChannelID string    `json:"channel_id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Command   string    `json:"command"`
	Param     string    `json:"param"`
	Datetime  time.Time `json:"datetime"`
}

// PlayerStat is one leaderboard row.
type PlayerStat struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}

// DJSettings restricts playback commands to holders of a role.
type DJSettings struct {
	Enabled            bool     `json:"enabled"`
	RoleID             string   `json:"role_id"`
	RestrictedCommands []string `json:"restricted_commands,omitempty"`
}

// Record is everything stored per guild.
type Record struct {
	CommandsHistoryList []CommandHistoryRecord `json:"cmd_history"`
	Playlists           map[string]Playlist    `json:"playlists"`   // key = ownerID/name
	PlayCounts          map[string]*PlayerStat `json:"play_counts"` // key = userID
	DJ                  DJSettings             `json:"dj"`
}

func New(filePath string) (*Storage, error) {
	ds, err := datastore.New(filePath)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

func (s *Storage) getOrCreateGuildRecord(guildID string) (*Record, error) {
	data, exists := s.ds.Get(guildID)
	if !exists {
		newRecord := &Record{
			CommandsHistoryList: []CommandHistoryRecord{},
			Playlists:           map[string]Playlist{},
			PlayCounts:          map[string]*PlayerStat{},
		}
		s.ds.Add(guildID, newRecord)
		return newRecord, nil
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("error marshalling data: %w", err)
	}

	var record Record
	if err := json.Unmarshal(jsonData, &record); err != nil {
		return nil, fmt.Errorf("error unmarshalling to *Record: %w", err)
	}

	if record.Playlists == nil {
		record.Playlists = map[string]Playlist{}
	}
	if record.PlayCounts == nil {
		record.PlayCounts = map[string]*PlayerStat{}
	}
	if len(record.CommandsHistoryList) > commandHistoryLimit {
		record.CommandsHistoryList = record.CommandsHistoryList[len(record.CommandsHistoryList)-commandHistoryLimit:]
	}

	return &record, nil
}

// AppendCommandToHistory appends a command history record for a guild.
func (s *Storage) AppendCommandToHistory(guildID string, command CommandHistoryRecord) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	record.CommandsHistoryList = append(record.CommandsHistoryList, command)
	if len(record.CommandsHistoryList) > commandHistoryLimit {
		record.CommandsHistoryList = record.CommandsHistoryList[len(record.CommandsHistoryList)-commandHistoryLimit:]
	}
	s.ds.Add(guildID, record)
	return nil
}

func (s *Storage) FetchCommandHistory(guildID string) ([]CommandHistoryRecord, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}
	return record.CommandsHistoryList, nil
}
