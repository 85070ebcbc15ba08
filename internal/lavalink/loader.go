package lavalink

import (
	"context"
	"fmt"
	"strings"

	"musicmonkey/internal/player"
)

// searchPrefix routes free-text queries to the node's default source.
const searchPrefix = "ytsearch:"

// Loader turns user input into playback tracks via the node's loadtracks
// endpoint. Direct links pass through untouched; anything else becomes a
// search.
type Loader struct {
	node *Node
}

func NewLoader(node *Node) *Loader {
	return &Loader{node: node}
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Load resolves query into tracks. The second return is a human label for
// the source (the playlist name), empty for single tracks and searches.
func (l *Loader) Load(ctx context.Context, query string) ([]player.Track, string, error) {
	identifier := query
	if !isURL(query) {
		identifier = searchPrefix + query
	}

	res, err := l.node.LoadTracks(ctx, identifier)
	if err != nil {
		return nil, "", err
	}

	switch res.LoadType {
	case LoadTypeTrack:
		return []player.Track{ToPlayerTrack(*res.Track)}, "", nil

	case LoadTypePlaylist:
		out := make([]player.Track, 0, len(res.Tracks))
		for _, t := range res.Tracks {
			out = append(out, ToPlayerTrack(t))
		}
		name := ""
		if res.Playlist != nil {
			name = res.Playlist.Name
		}
		return out, name, nil

	case LoadTypeSearch:
		// a search answers with many candidates; the top hit is the answer
		if len(res.Tracks) == 0 {
			return nil, "", nil
		}
		return []player.Track{ToPlayerTrack(res.Tracks[0])}, "", nil

	case LoadTypeError:
		if res.Exception != nil {
			return nil, "", fmt.Errorf("track load failed: %s", res.Exception.Message)
		}
		return nil, "", fmt.Errorf("track load failed")

	default: // empty
		return nil, "", nil
	}
}

// Search returns the single best match for a free-text query, nil when
// nothing matched. Implements the recommendation resolver.
func (l *Loader) Search(ctx context.Context, query string) (*player.Track, error) {
	tracks, _, err := l.Load(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, nil
	}
	t := tracks[0]
	return &t, nil
}
