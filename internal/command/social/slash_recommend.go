package social

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/command"
	"musicmonkey/internal/player"
)

type RecommendCommand struct{}

func (c *RecommendCommand) Name() string { return "recommend" }
func (c *RecommendCommand) Description() string {
	return "Get a track suggestion based on what's playing"
}
func (c *RecommendCommand) Category() string { return category }
func (c *RecommendCommand) RequireDJ() bool  { return false }

func (c *RecommendCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        "queue",
				Description: "Queue the suggestion right away",
				Required:    false,
			},
		},
	}
}

func (c *RecommendCommand) Run(ctx *command.SlashContext) error {
	if ctx.Deps.Recommender == nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, "Recommendations are not configured.")
	}

	s, ok := ctx.Deps.Controller.Session(ctx.GuildID())
	if !ok {
		return command.RespondEphemeral(ctx.Session, ctx.Event, "Play something first so I know your taste.")
	}
	seed, ok := s.Current()
	if !ok {
		return command.RespondEphemeral(ctx.Session, ctx.Event, "Nothing is playing to base a suggestion on.")
	}

	if err := command.Defer(ctx.Session, ctx.Event); err != nil {
		return fmt.Errorf("failed to send deferred response: %w", err)
	}

	opctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	suggestion, err := ctx.Deps.Recommender.NextTrack(opctx, seed)
	if err != nil {
		return command.FollowUp(ctx.Session, ctx.Event, "I couldn't come up with anything this time.")
	}

	enqueue := false
	if opt := ctx.Option("queue"); opt != nil {
		enqueue = opt.BoolValue()
	}

	if !enqueue {
		return command.FollowUp(ctx.Session, ctx.Event,
			fmt.Sprintf("Based on **%s**, try **%s** by **%s**.\n%s",
				seed.Title, suggestion.Title, suggestion.Author, suggestion.URI))
	}

	user := ctx.User()
	suggestion.Requester = player.Requester{ID: user.ID, Name: user.Username}
	vs, err := command.FindUserVoiceState(ctx.Session, ctx.GuildID(), user.ID)
	if err != nil {
		return command.FollowUp(ctx.Session, ctx.Event, "Join a voice channel to queue the suggestion.")
	}
	if _, err := ctx.Deps.Controller.Play(opctx, ctx.GuildID(), vs.ChannelID, ctx.Event.ChannelID, []player.Track{*suggestion}); err != nil {
		return command.FollowUp(ctx.Session, ctx.Event, fmt.Sprintf("Couldn't queue it: %v", err))
	}
	return command.FollowUp(ctx.Session, ctx.Event,
		fmt.Sprintf("Queued **%s** by **%s** for you.", suggestion.Title, suggestion.Author))
}

func init() {
	command.Register(command.ApplyMiddlewares(&RecommendCommand{},
		command.WithCommandLogger(),
		command.WithGuildOnly(),
	))
}
