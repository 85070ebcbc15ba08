package storage

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"musicmonkey/internal/player"
)

func playlistKey(ownerID, name string) string {
	return ownerID + "/" + strings.ToLower(strings.TrimSpace(name))
}

// SavePlaylist stores a named playlist for a user, replacing any previous
// one with the same name. Duplicate tracks are collapsed and the list is
// capped.
func (s *Storage) SavePlaylist(guildID, ownerID, name string, tracks []player.Track) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("playlist name is empty")
	}
	if len(tracks) == 0 {
		return fmt.Errorf("playlist has no tracks")
	}

	tracks = player.DedupeByID(tracks)
	if len(tracks) > playlistTrackLimit {
		tracks = tracks[:playlistTrackLimit]
	}

	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	key := playlistKey(ownerID, name)
	now := time.Now()
	pl := Playlist{
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if old, ok := record.Playlists[key]; ok {
		pl.CreatedAt = old.CreatedAt
	}
	for _, t := range tracks {
		pl.Tracks = append(pl.Tracks, toStoredTrack(t))
	}

	record.Playlists[key] = pl
	s.ds.Add(guildID, record)
	return nil
}

// AddToPlaylist appends one track, creating the playlist when missing.
// Adding a track already in the playlist is a no-op.
func (s *Storage) AddToPlaylist(guildID, ownerID, name string, track player.Track) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("playlist name is empty")
	}

	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	key := playlistKey(ownerID, name)
	pl, ok := record.Playlists[key]
	if !ok {
		pl = Playlist{Name: name, OwnerID: ownerID, CreatedAt: time.Now()}
	}
	for _, t := range pl.Tracks {
		if t.ID == track.ID {
			return nil
		}
	}
	if len(pl.Tracks) >= playlistTrackLimit {
		return fmt.Errorf("playlist %q is full (%d tracks)", name, playlistTrackLimit)
	}

	pl.Tracks = append(pl.Tracks, toStoredTrack(track))
	pl.UpdatedAt = time.Now()
	record.Playlists[key] = pl
	s.ds.Add(guildID, record)
	return nil
}

// LoadPlaylist returns a user's playlist as playback tracks.
func (s *Storage) LoadPlaylist(guildID, ownerID, name string) ([]player.Track, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}

	pl, ok := record.Playlists[playlistKey(ownerID, name)]
	if !ok {
		return nil, fmt.Errorf("no playlist named %q", name)
	}

	out := make([]player.Track, 0, len(pl.Tracks))
	for _, t := range pl.Tracks {
		out = append(out, t.ToPlayerTrack())
	}
	return out, nil
}

// DeletePlaylist removes a user's playlist.
func (s *Storage) DeletePlaylist(guildID, ownerID, name string) error {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return err
	}

	key := playlistKey(ownerID, name)
	if _, ok := record.Playlists[key]; !ok {
		return fmt.Errorf("no playlist named %q", name)
	}

	delete(record.Playlists, key)
	s.ds.Add(guildID, record)
	return nil
}

// ListPlaylists returns a user's playlists sorted by name.
func (s *Storage) ListPlaylists(guildID, ownerID string) ([]Playlist, error) {
	record, err := s.getOrCreateGuildRecord(guildID)
	if err != nil {
		return nil, err
	}

	var out []Playlist
	for _, pl := range record.Playlists {
		if pl.OwnerID == ownerID {
			out = append(out, pl)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
