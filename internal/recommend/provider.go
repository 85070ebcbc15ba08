// Package recommend suggests follow-up tracks for autoplay using a text
// generation provider to name a similar song and the audio node to resolve
// it into something playable.
package recommend

import "fmt"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider generates a completion for a conversation.
type Provider interface {
	Generate(messages []Message) (string, error)
}

// NewProvider selects a provider by name.
func NewProvider(engine string) (Provider, error) {
	switch engine {
	case "pollinations", "":
		return NewPollinationsProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported recommendation provider: %s", engine)
	}
}
