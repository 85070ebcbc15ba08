package music

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"musicmonkey/internal/command"
	"musicmonkey/internal/player"
)

type PlayCommand struct{}

func (c *PlayCommand) Name() string        { return "play" }
func (c *PlayCommand) Description() string { return "Play a track or add it to the queue" }
func (c *PlayCommand) Category() string    { return category }
func (c *PlayCommand) RequireDJ() bool     { return true }

func (c *PlayCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "query",
				Description: "Link or song name to search for",
				Required:    true,
			},
		},
	}
}

func (c *PlayCommand) Run(ctx *command.SlashContext) error {
	query := ""
	if opt := ctx.Option("query"); opt != nil {
		query = opt.StringValue()
	}
	if query == "" {
		return command.RespondEphemeral(ctx.Session, ctx.Event, "Tell me what to play.")
	}

	vs, ok := requireVoice(ctx)
	if !ok {
		return nil
	}

	if err := command.Defer(ctx.Session, ctx.Event); err != nil {
		return fmt.Errorf("failed to send deferred response: %w", err)
	}

	opctx, cancel := opCtx()
	defer cancel()

	tracks, source, err := ctx.Deps.Loader.Load(opctx, query)
	if err != nil {
		return command.FollowUp(ctx.Session, ctx.Event, fmt.Sprintf("Couldn't load that: %v", err))
	}
	if len(tracks) == 0 {
		return command.FollowUp(ctx.Session, ctx.Event, "Nothing found for that query.")
	}

	user := ctx.User()
	for i := range tracks {
		tracks[i].Requester = player.Requester{ID: user.ID, Name: user.Username}
	}

	started, err := ctx.Deps.Controller.Play(opctx, ctx.GuildID(), vs.ChannelID, ctx.Event.ChannelID, tracks)
	if err != nil {
		return command.FollowUp(ctx.Session, ctx.Event, errorMessage(err))
	}

	for range tracks {
		if err := ctx.Deps.Storage.RecordPlay(ctx.GuildID(), user.ID, user.Username); err != nil {
			log.Warn().Err(err).Str("guild", ctx.GuildID()).Msg("play count update failed")
			break
		}
	}

	switch {
	case len(tracks) > 1 && source != "":
		return command.FollowUp(ctx.Session, ctx.Event,
			fmt.Sprintf("Queued **%d** tracks from **%s**.", len(tracks), source))
	case len(tracks) > 1:
		return command.FollowUp(ctx.Session, ctx.Event,
			fmt.Sprintf("Queued **%d** tracks.", len(tracks)))
	case started:
		return command.FollowUp(ctx.Session, ctx.Event,
			fmt.Sprintf("Now playing %s", trackLine(tracks[0])))
	default:
		return command.FollowUp(ctx.Session, ctx.Event,
			fmt.Sprintf("Added to queue: %s", trackLine(tracks[0])))
	}
}

func init() {
	command.Register(command.ApplyMiddlewares(&PlayCommand{},
		command.WithDJCheck(),
		command.WithCommandLogger(),
		command.WithGuildOnly(),
	))
}
