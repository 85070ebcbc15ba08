package player

import "time"

// Requester identifies the user who queued a track. The zero Name with a
// zero ID means the requester is unknown.
type Requester struct {
	ID   string
	Name string
}

// AutoRequester tags tracks selected by autoplay rather than a user.
var AutoRequester = Requester{Name: "AutoPlay"}

// Track is one playable item. It is a value: it moves between the queue and
// the now-playing slot, never shared between the two. Only Requester is
// mutated after creation.
type Track struct {
	ID         string // stable source identifier
	Title      string
	Author     string
	Duration   time.Duration
	URI        string
	ArtworkURL string
	Encoded    string // opaque payload the audio node plays from
	Requester  Requester
}

// RequesterName returns a display name for the requester, degrading to a
// placeholder when the identity was never resolved.
func (t Track) RequesterName() string {
	if t.Requester.Name != "" {
		return t.Requester.Name
	}
	return "Unknown"
}
