package music

import (
	"testing"
	"time"

	"musicmonkey/internal/player"
)

func TestParsePosition(t *testing.T) {
	cases := map[string]time.Duration{
		"90":      90 * time.Second,
		"1:30":    90 * time.Second,
		"0:05":    5 * time.Second,
		"1:02:30": time.Hour + 2*time.Minute + 30*time.Second,
		" 45 ":    45 * time.Second,
	}
	for in, want := range cases {
		got, err := parsePosition(in)
		if err != nil {
			t.Fatalf("parsePosition(%q) error: %v", in, err)
		}
		if got != want {
			t.Fatalf("parsePosition(%q) = %v, want %v", in, got, want)
		}
	}

	for _, in := range []string{"", "abc", "1:2:3:4", "-5", "1:-30"} {
		if _, err := parsePosition(in); err == nil {
			t.Fatalf("parsePosition(%q) accepted invalid input", in)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	if msg := errorMessage(player.ErrNoSession); msg != "Nothing is playing on this server." {
		t.Fatalf("ErrNoSession message = %q", msg)
	}
	if msg := errorMessage(player.ErrInvalidPosition); msg != "That queue position doesn't exist." {
		t.Fatalf("ErrInvalidPosition message = %q", msg)
	}
}
