package lavalink

import (
	"testing"

	"musicmonkey/internal/player"
)

func TestDecodeLoadResultTrack(t *testing.T) {
	body := []byte(`{"loadType":"track","data":{"encoded":"abc","info":{"identifier":"id1","title":"Song","author":"Artist","length":180000,"uri":"https://example.com/t"}}}`)
	res, err := decodeLoadResult(body)
	if err != nil {
		t.Fatal(err)
	}
	if res.LoadType != LoadTypeTrack || res.Track == nil {
		t.Fatalf("result = %+v", res)
	}
	if res.Track.Info.Title != "Song" || res.Track.Encoded != "abc" {
		t.Fatalf("track = %+v", res.Track)
	}
}

func TestDecodeLoadResultPlaylist(t *testing.T) {
	body := []byte(`{"loadType":"playlist","data":{"info":{"name":"Mix","selectedTrack":-1},"tracks":[{"encoded":"a","info":{"title":"One"}},{"encoded":"b","info":{"title":"Two"}}]}}`)
	res, err := decodeLoadResult(body)
	if err != nil {
		t.Fatal(err)
	}
	if res.Playlist == nil || res.Playlist.Name != "Mix" {
		t.Fatalf("playlist = %+v", res.Playlist)
	}
	if len(res.Tracks) != 2 || res.Tracks[1].Info.Title != "Two" {
		t.Fatalf("tracks = %+v", res.Tracks)
	}
}

func TestDecodeLoadResultSearchAndEmpty(t *testing.T) {
	res, err := decodeLoadResult([]byte(`{"loadType":"search","data":[{"encoded":"a","info":{"title":"Hit"}}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Tracks) != 1 || res.Tracks[0].Info.Title != "Hit" {
		t.Fatalf("search tracks = %+v", res.Tracks)
	}

	res, err = decodeLoadResult([]byte(`{"loadType":"empty","data":{}}`))
	if err != nil {
		t.Fatal(err)
	}
	if res.LoadType != LoadTypeEmpty || len(res.Tracks) != 0 {
		t.Fatalf("empty result = %+v", res)
	}
}

func TestDecodeLoadResultError(t *testing.T) {
	body := []byte(`{"loadType":"error","data":{"message":"no source","severity":"common"}}`)
	res, err := decodeLoadResult(body)
	if err != nil {
		t.Fatal(err)
	}
	if res.Exception == nil || res.Exception.Message != "no source" {
		t.Fatalf("exception = %+v", res.Exception)
	}
}

func TestEndReasonMapping(t *testing.T) {
	cases := map[TrackEndReason]player.EndReason{
		EndReasonFinished:   player.EndNatural,
		EndReasonLoadFailed: player.EndLoadFailed,
		EndReasonStopped:    player.EndStopped,
		EndReasonReplaced:   player.EndReplaced,
		EndReasonCleanup:    player.EndCleanup,
		"unknown":           player.EndNatural,
	}
	for in, want := range cases {
		if got := endReason(in); got != want {
			t.Fatalf("endReason(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestToPlayerTrack(t *testing.T) {
	in := Track{Encoded: "xyz", Info: TrackInfo{
		Identifier: "id9", Title: "Tune", Author: "Band", Length: 63000,
		URI: "https://example.com/tune", ArtworkURL: "https://example.com/a.png",
	}}
	got := ToPlayerTrack(in)
	if got.ID != "id9" || got.Encoded != "xyz" || got.Title != "Tune" {
		t.Fatalf("converted = %+v", got)
	}
	if got.Duration.Seconds() != 63 {
		t.Fatalf("duration = %v", got.Duration)
	}
}
