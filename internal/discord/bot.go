// Package discord wires the bot together: the gateway session, slash
// command dispatch, the voice adapter and the now-playing notifier.
package discord

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"musicmonkey/internal/command"

	// commands register themselves on import
	_ "musicmonkey/internal/command/info"
	_ "musicmonkey/internal/command/music"
	_ "musicmonkey/internal/command/playlist"
	_ "musicmonkey/internal/command/settings"
	_ "musicmonkey/internal/command/social"

	"musicmonkey/internal/config"
	"musicmonkey/internal/lavalink"
	"musicmonkey/internal/player"
	"musicmonkey/internal/recommend"
	"musicmonkey/internal/storage"
	"musicmonkey/pkg/util"
)

// Bot is the Discord bot
type Bot struct {
	dg      *discordgo.Session
	cfg     *config.Config
	deps    *command.Deps
	node    *lavalink.Node
	monitor *player.Monitor
}

// StartBot builds the full stack and runs until ctx is canceled.
func StartBot(ctx context.Context, cfg *config.Config, st *storage.Storage) error {
	dg, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	b := &Bot{dg: dg, cfg: cfg}
	b.configureIntents()

	// the node wants the bot user id before the gateway opens
	botUser, err := dg.User("@me")
	if err != nil {
		return fmt.Errorf("failed to fetch bot user: %w", err)
	}

	bridge := lavalink.NewBridge()
	b.node = lavalink.NewNode(lavalink.Config{
		Host:     cfg.LavalinkHost,
		Port:     cfg.LavalinkPort,
		Password: cfg.LavalinkPassword,
		Secure:   cfg.LavalinkSecure,
	}, botUser.ID, bridge)
	bridge.Attach(b.node)

	loader := lavalink.NewLoader(b.node)
	voice := newVoiceAdapter(dg)
	notifier := newNotifier(dg)

	var recommender player.Recommender
	if provider, err := recommend.NewProvider(cfg.RecommendProvider); err != nil {
		log.Warn().Err(err).Msg("recommendations disabled")
	} else {
		recommender = recommend.NewTrackRecommender(provider, loader)
	}

	ctrl := player.NewController(bridge, voice, notifier, recommender)
	bridge.Events = ctrl

	b.monitor = player.NewMonitor(ctrl, voice, cfg.IdleTimeout, cfg.EmptyChannelGrace)
	ctrl.OnSessionOpen = b.monitor.Watch
	ctrl.OnSessionClose = b.monitor.Unwatch

	b.deps = &command.Deps{
		Controller:  ctrl,
		Storage:     st,
		Loader:      loader,
		Recommender: recommender,
		Config:      cfg,
	}

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onInteractionCreate)
	dg.AddHandler(b.onVoiceStateUpdate)
	dg.AddHandler(b.onVoiceServerUpdate)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer dg.Close()

	if err := b.node.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect audio node: %w", err)
	}
	defer b.node.Close()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received, cleaning up")
	b.stopAll()
	return nil
}

// stopAll tears down every active session so we leave voice channels
// cleanly.
func (b *Bot) stopAll() {
	var active []string
	for _, g := range b.dg.State.Guilds {
		if _, ok := b.deps.Controller.Session(g.ID); ok {
			active = append(active, g.ID)
		}
	}

	_ = util.Parallel(active, 4, func(ctx context.Context, guildID string) error {
		if err := b.deps.Controller.Stop(ctx, guildID); err != nil {
			log.Warn().Err(err).Str("guild", guildID).Msg("shutdown teardown failed")
		}
		return nil
	})
}

func (b *Bot) configureIntents() {
	b.dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildVoiceStates |
		discordgo.IntentsGuildMessages
}

func (b *Bot) isGuildBlacklisted(guildID string) bool {
	return slices.Contains(b.cfg.GuildBlacklist, guildID)
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	for _, g := range r.Guilds {
		if b.isGuildBlacklisted(g.ID) {
			log.Info().Str("guild", g.ID).Msg("leaving blacklisted guild")
			if err := s.GuildLeave(g.ID); err != nil {
				log.Error().Err(err).Str("guild", g.ID).Msg("failed to leave guild")
			}
			continue
		}

		if b.cfg.InitSlashCommands {
			if err := b.registerCommands(g.ID); err != nil {
				log.Error().Err(err).Str("guild", g.ID).Msg("slash command registration failed")
			}
		}
	}

	log.Info().Str("user", s.State.User.Username).Int("guilds", len(r.Guilds)).Msg("discord bot is running")
}

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	if b.isGuildBlacklisted(g.Guild.ID) {
		log.Info().Str("guild", g.Guild.ID).Msg("leaving blacklisted guild")
		if err := s.GuildLeave(g.Guild.ID); err != nil {
			log.Error().Err(err).Str("guild", g.Guild.ID).Msg("failed to leave guild")
		}
		return
	}

	if b.cfg.InitSlashCommands {
		if err := b.registerCommands(g.Guild.ID); err != nil {
			log.Error().Err(err).Str("guild", g.Guild.ID).Msg("slash command registration failed")
		}
	}
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		cmd, ok := command.Get(name)
		if !ok {
			log.Warn().Str("command", name).Msg("unknown command")
			return
		}

		ctx := &command.SlashContext{Session: s, Event: i, Deps: b.deps}
		if err := cmd.Run(ctx); err != nil {
			log.Error().Err(err).Str("command", name).Msg("command failed")
			_ = command.RespondEphemeral(s, i, fmt.Sprintf("Error running command: %v", err))
		}

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		for _, cmd := range command.All() {
			if !strings.HasPrefix(customID, cmd.Name()) {
				continue
			}
			if ch, ok := cmd.(command.ComponentHandler); ok {
				ctx := &command.ComponentContext{Session: s, Event: i, Deps: b.deps}
				if err := ch.Component(ctx); err != nil {
					log.Error().Err(err).Str("component", customID).Msg("component handler failed")
				}
			}
			return
		}
	}
}

// onVoiceStateUpdate forwards the bot's own voice session to the audio
// node; half of the handshake it needs to join a channel.
func (b *Bot) onVoiceStateUpdate(s *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	if v.UserID != s.State.User.ID {
		return
	}
	if v.ChannelID == "" {
		b.node.ForgetVoice(v.GuildID)
		return
	}
	b.node.HandleVoiceStateUpdate(context.Background(), v.GuildID, v.SessionID)
}

func (b *Bot) onVoiceServerUpdate(s *discordgo.Session, v *discordgo.VoiceServerUpdate) {
	b.node.HandleVoiceServerUpdate(context.Background(), v.GuildID, v.Token, v.Endpoint)
}
