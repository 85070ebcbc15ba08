package storage

import (
	"path/filepath"
	"testing"
	"time"

	"musicmonkey/internal/player"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func track(id string) player.Track {
	return player.Track{ID: id, Title: "t-" + id, Encoded: "enc-" + id, Duration: 3 * time.Minute}
}

func TestPlaylistRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	in := []player.Track{track("a"), track("b"), track("a"), track("c")}
	if err := s.SavePlaylist("g1", "u1", "Faves", in); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadPlaylist("g1", "u1", "faves")
	if err != nil {
		t.Fatal(err)
	}
	// duplicates collapse on save
	if len(got) != 3 {
		t.Fatalf("loaded %d tracks, want 3", len(got))
	}
	if got[0].ID != "a" || got[0].Encoded != "enc-a" || got[0].Duration != 3*time.Minute {
		t.Fatalf("track = %+v", got[0])
	}
}

func TestPlaylistOwnership(t *testing.T) {
	s := newTestStorage(t)

	if err := s.SavePlaylist("g1", "u1", "mix", []player.Track{track("a")}); err != nil {
		t.Fatal(err)
	}
	if err := s.SavePlaylist("g1", "u2", "mix", []player.Track{track("b")}); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadPlaylist("g1", "u2", "mix")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("u2 playlist = %+v", got)
	}

	lists, err := s.ListPlaylists("g1", "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(lists) != 1 || lists[0].OwnerID != "u1" {
		t.Fatalf("u1 playlists = %+v", lists)
	}
}

func TestAddToPlaylistDedupes(t *testing.T) {
	s := newTestStorage(t)

	if err := s.AddToPlaylist("g1", "u1", "mix", track("a")); err != nil {
		t.Fatal(err)
	}
	if err := s.AddToPlaylist("g1", "u1", "mix", track("a")); err != nil {
		t.Fatal(err)
	}
	if err := s.AddToPlaylist("g1", "u1", "mix", track("b")); err != nil {
		t.Fatal(err)
	}

	got, err := s.LoadPlaylist("g1", "u1", "mix")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("playlist length = %d, want 2", len(got))
	}
}

func TestDeletePlaylist(t *testing.T) {
	s := newTestStorage(t)

	if err := s.SavePlaylist("g1", "u1", "mix", []player.Track{track("a")}); err != nil {
		t.Fatal(err)
	}
	if err := s.DeletePlaylist("g1", "u1", "mix"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadPlaylist("g1", "u1", "mix"); err == nil {
		t.Fatal("loaded a deleted playlist")
	}
	if err := s.DeletePlaylist("g1", "u1", "mix"); err == nil {
		t.Fatal("deleting a missing playlist succeeded")
	}
}

func TestLeaderboard(t *testing.T) {
	s := newTestStorage(t)

	for i := 0; i < 3; i++ {
		if err := s.RecordPlay("g1", "u1", "alice"); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.RecordPlay("g1", "u2", "bob"); err != nil {
		t.Fatal(err)
	}
	// plays in another guild stay there
	if err := s.RecordPlay("g2", "u2", "bob"); err != nil {
		t.Fatal(err)
	}

	top, err := s.TopPlayers("g1", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 2 {
		t.Fatalf("leaderboard rows = %d, want 2", len(top))
	}
	if top[0].UserID != "u1" || top[0].Count != 3 || top[0].Name != "alice" {
		t.Fatalf("top row = %+v", top[0])
	}
	if top[1].UserID != "u2" || top[1].Count != 1 {
		t.Fatalf("second row = %+v", top[1])
	}
}

func TestDJSettings(t *testing.T) {
	s := newTestStorage(t)

	dj, err := s.GetDJSettings("g1")
	if err != nil {
		t.Fatal(err)
	}
	if dj.Enabled {
		t.Fatal("DJ mode enabled by default")
	}
	if dj.CommandRestricted("skip") {
		t.Fatal("disabled DJ mode restricted a command")
	}

	want := DJSettings{Enabled: true, RoleID: "r1", RestrictedCommands: []string{"skip", "stop"}}
	if err := s.SetDJSettings("g1", want); err != nil {
		t.Fatal(err)
	}

	dj, err = s.GetDJSettings("g1")
	if err != nil {
		t.Fatal(err)
	}
	if !dj.CommandRestricted("skip") || dj.CommandRestricted("play") {
		t.Fatalf("restriction check wrong for %+v", dj)
	}

	// empty restriction list means everything is restricted
	if err := s.SetDJSettings("g1", DJSettings{Enabled: true, RoleID: "r1"}); err != nil {
		t.Fatal(err)
	}
	dj, _ = s.GetDJSettings("g1")
	if !dj.CommandRestricted("play") {
		t.Fatal("empty restriction list should cover all commands")
	}
}

func TestWonderTrade(t *testing.T) {
	s := newTestStorage(t)

	id, err := s.OfferWonderTrade("g1", "u1", "alice", track("a"))
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Fatal("empty offer id")
	}

	// the offerer cannot draw their own track back
	got, err := s.TakeWonderTrade("u1")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Fatalf("u1 drew their own offer %+v", got)
	}

	got, err = s.TakeWonderTrade("u2")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Track.ID != "a" || got.Username != "alice" {
		t.Fatalf("drawn offer = %+v", got)
	}

	// the pool hands each offer out once
	n, err := s.WonderTradePoolSize()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("pool size = %d, want 0", n)
	}
}

func TestCommandHistoryBounded(t *testing.T) {
	s := newTestStorage(t)

	for i := 0; i < commandHistoryLimit+5; i++ {
		err := s.AppendCommandToHistory("g1", CommandHistoryRecord{
			UserID:   "u1",
			Command:  "play",
			Datetime: time.Now(),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	hist, err := s.FetchCommandHistory("g1")
	if err != nil {
		t.Fatal(err)
	}
	if len(hist) != commandHistoryLimit {
		t.Fatalf("history length = %d, want %d", len(hist), commandHistoryLimit)
	}
}
