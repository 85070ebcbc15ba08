package player

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"musicmonkey/pkg/jobmgr"
)

// Monitor watches active sessions for an empty voice channel or a long-idle
// player and funnels both into the controller's teardown path via an
// EventPlayerInactive. One watch job runs per guild session.
type Monitor struct {
	ctrl  *Controller
	voice Voice
	jobs  *jobmgr.Manager

	Interval    time.Duration // occupancy poll period
	IdleTimeout time.Duration // idle session lifetime; 0 disables
	EmptyGrace  time.Duration // how long the bot may be alone before leaving
}

// NewMonitor creates a Monitor polling every 10 seconds.
func NewMonitor(ctrl *Controller, voice Voice, idleTimeout, emptyGrace time.Duration) *Monitor {
	return &Monitor{
		ctrl:        ctrl,
		voice:       voice,
		jobs:        jobmgr.NewManager(),
		Interval:    10 * time.Second,
		IdleTimeout: idleTimeout,
		EmptyGrace:  emptyGrace,
	}
}

// Watch starts the inactivity watch for a guild. Wire to
// Controller.OnSessionOpen.
func (m *Monitor) Watch(guildID string) {
	name := "inactivity:" + guildID
	if err := m.jobs.StartAsync(name, func(ctx context.Context) error {
		return m.watch(ctx, guildID)
	}); err != nil {
		log.Debug().Str("guild", guildID).Msg("inactivity watch already running")
	}
}

// Unwatch stops the watch for a guild. Wire to Controller.OnSessionClose.
func (m *Monitor) Unwatch(guildID string) {
	m.jobs.Stop("inactivity:" + guildID)
}

func (m *Monitor) watch(ctx context.Context, guildID string) error {
	ticker := time.NewTicker(m.Interval)
	defer ticker.Stop()

	var emptySince time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		s, ok := m.ctrl.Session(guildID)
		if !ok {
			return nil
		}

		listeners, err := m.voice.Listeners(guildID, s.VoiceChannelID())
		if err == nil {
			if listeners == 0 {
				if emptySince.IsZero() {
					emptySince = time.Now()
				}
				// debounce: sustained emptiness only
				if time.Since(emptySince) >= m.EmptyGrace {
					log.Info().Str("guild", guildID).Msg("voice channel empty, leaving")
					m.ctrl.HandleEvent(ctx, guildID, Event{Type: EventPlayerInactive})
					return nil
				}
			} else {
				emptySince = time.Time{}
			}
		}

		if m.IdleTimeout > 0 && s.IdleFor() >= m.IdleTimeout {
			log.Info().Str("guild", guildID).Dur("idle", s.IdleFor()).Msg("player idle, leaving")
			m.ctrl.HandleEvent(ctx, guildID, Event{Type: EventPlayerInactive})
			return nil
		}
	}
}
