package player

// EventType tags the closed set of lifecycle events the controller reacts
// to. All node callbacks funnel through Controller.HandleEvent so state
// mutation lives in one place.
type EventType int

const (
	EventTrackStart EventType = iota
	EventTrackEnd
	EventPlayerInactive
)

// EndReason is why a track stopped playing.
type EndReason int

const (
	EndNatural    EndReason = iota // ran to completion
	EndLoadFailed                  // the node could not load it
	EndStopped                     // a stop directive ended it
	EndReplaced                    // another play directive superseded it
	EndCleanup                     // the node discarded the player
)

func (r EndReason) String() string {
	switch r {
	case EndLoadFailed:
		return "loadFailed"
	case EndStopped:
		return "stopped"
	case EndReplaced:
		return "replaced"
	case EndCleanup:
		return "cleanup"
	default:
		return "finished"
	}
}

// Event is one lifecycle notification for a guild.
type Event struct {
	Type   EventType
	Track  *Track    // the track the event refers to, when known
	Reason EndReason // meaningful for EventTrackEnd only
}
