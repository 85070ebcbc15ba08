package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"musicmonkey/internal/player"
)

// Searcher resolves a free-text query into a playable track. Returns a nil
// track when nothing matched.
type Searcher interface {
	Search(ctx context.Context, query string) (*player.Track, error)
}

// TrackRecommender implements player.Recommender. It asks the text provider
// to name one song similar to the seed, then resolves that name through the
// searcher.
type TrackRecommender struct {
	provider Provider
	search   Searcher
}

func NewTrackRecommender(provider Provider, search Searcher) *TrackRecommender {
	return &TrackRecommender{provider: provider, search: search}
}

const systemPrompt = "You are a music recommendation engine. " +
	"Reply with exactly one song in the form: Artist - Title. " +
	"No quotes, no commentary, never repeat the song you were given."

// NextTrack asks for one song similar to seed and resolves it. A provider
// miss or an unresolvable suggestion is an error; autoplay degrades to
// stopping on it.
func (r *TrackRecommender) NextTrack(ctx context.Context, seed player.Track) (*player.Track, error) {
	suggestion, err := r.provider.Generate([]Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: fmt.Sprintf("Suggest one song similar to %q by %q.", seed.Title, seed.Author)},
	})
	if err != nil {
		return nil, fmt.Errorf("recommendation provider: %w", err)
	}

	suggestion = cleanSuggestion(suggestion)
	if suggestion == "" {
		return nil, fmt.Errorf("recommendation provider returned nothing usable")
	}
	log.Debug().Str("seed", seed.Title).Str("suggestion", suggestion).Msg("autoplay suggestion")

	track, err := r.search.Search(ctx, suggestion)
	if err != nil {
		return nil, fmt.Errorf("resolve suggestion %q: %w", suggestion, err)
	}
	if track == nil {
		return nil, fmt.Errorf("suggestion %q matched no track", suggestion)
	}
	return track, nil
}

// cleanSuggestion strips the decoration models like to add around the
// answer.
func cleanSuggestion(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	s = strings.Trim(s, "\"'` ")
	s = strings.TrimPrefix(s, "- ")
	return strings.TrimSpace(s)
}
