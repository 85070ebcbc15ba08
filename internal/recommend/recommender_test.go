package recommend

import (
	"context"
	"errors"
	"testing"

	"musicmonkey/internal/player"
)

type scriptedProvider struct {
	reply string
	err   error
}

func (p *scriptedProvider) Generate([]Message) (string, error) { return p.reply, p.err }

type fakeSearcher struct {
	track   *player.Track
	err     error
	queries []string
}

func (s *fakeSearcher) Search(_ context.Context, query string) (*player.Track, error) {
	s.queries = append(s.queries, query)
	return s.track, s.err
}

func TestNextTrackResolvesSuggestion(t *testing.T) {
	search := &fakeSearcher{track: &player.Track{ID: "t1", Title: "Found"}}
	r := NewTrackRecommender(&scriptedProvider{reply: "\"Artist - Title\"\nextra line"}, search)

	got, err := r.NextTrack(context.Background(), player.Track{Title: "Seed", Author: "Someone"})
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "t1" {
		t.Fatalf("track = %+v", got)
	}
	if len(search.queries) != 1 || search.queries[0] != "Artist - Title" {
		t.Fatalf("queries = %v", search.queries)
	}
}

func TestNextTrackProviderFailure(t *testing.T) {
	r := NewTrackRecommender(&scriptedProvider{err: errors.New("down")}, &fakeSearcher{})
	if _, err := r.NextTrack(context.Background(), player.Track{Title: "Seed"}); err == nil {
		t.Fatal("expected provider error")
	}
}

func TestNextTrackNoMatch(t *testing.T) {
	r := NewTrackRecommender(&scriptedProvider{reply: "Artist - Title"}, &fakeSearcher{})
	if _, err := r.NextTrack(context.Background(), player.Track{Title: "Seed"}); err == nil {
		t.Fatal("expected no-match error")
	}
}

func TestCleanSuggestion(t *testing.T) {
	cases := map[string]string{
		"  Artist - Title  ":       "Artist - Title",
		"'Artist - Title'":         "Artist - Title",
		"- Artist - Title":         "Artist - Title",
		"Artist - Title\nbecause":  "Artist - Title",
		"`Artist - Title`":         "Artist - Title",
	}
	for in, want := range cases {
		if got := cleanSuggestion(in); got != want {
			t.Fatalf("cleanSuggestion(%q) = %q, want %q", in, got, want)
		}
	}
}
