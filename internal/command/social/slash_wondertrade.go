package social

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/command"
	"musicmonkey/internal/player"
)

type WonderTradeCommand struct{}

func (c *WonderTradeCommand) Name() string { return "wondertrade" }
func (c *WonderTradeCommand) Description() string {
	return "Trade the current track for a mystery track from another server"
}
func (c *WonderTradeCommand) Category() string { return category }
func (c *WonderTradeCommand) RequireDJ() bool  { return false }

func (c *WonderTradeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "offer",
				Description: "Put the current track into the trade pool",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "receive",
				Description: "Draw a mystery track and queue it",
			},
		},
	}
}

func (c *WonderTradeCommand) Run(ctx *command.SlashContext) error {
	opts := ctx.Event.ApplicationCommandData().Options
	if len(opts) == 0 {
		return nil
	}

	switch opts[0].Name {
	case "offer":
		return c.offer(ctx)
	case "receive":
		return c.receive(ctx)
	}
	return nil
}

func (c *WonderTradeCommand) offer(ctx *command.SlashContext) error {
	s, ok := ctx.Deps.Controller.Session(ctx.GuildID())
	if !ok {
		return command.RespondEphemeral(ctx.Session, ctx.Event, "Play something first, then offer it.")
	}
	cur, ok := s.Current()
	if !ok {
		return command.RespondEphemeral(ctx.Session, ctx.Event, "Nothing is playing to offer.")
	}

	user := ctx.User()
	if _, err := ctx.Deps.Storage.OfferWonderTrade(ctx.GuildID(), user.ID, user.Username, cur); err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, fmt.Sprintf("Trade failed: %v", err))
	}

	n, _ := ctx.Deps.Storage.WonderTradePoolSize()
	return command.Respond(ctx.Session, ctx.Event,
		fmt.Sprintf("**%s** went into the wonder trade pool. %d tracks are waiting for a new home.", cur.Title, n))
}

func (c *WonderTradeCommand) receive(ctx *command.SlashContext) error {
	vs, err := command.FindUserVoiceState(ctx.Session, ctx.GuildID(), ctx.User().ID)
	if err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, "Join a voice channel first.")
	}

	user := ctx.User()
	offer, err := ctx.Deps.Storage.TakeWonderTrade(user.ID)
	if err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, fmt.Sprintf("Trade failed: %v", err))
	}
	if offer == nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, "The pool has nothing for you right now. Offer something first!")
	}

	track := offer.Track.ToPlayerTrack()
	track.Requester = player.Requester{ID: user.ID, Name: user.Username}

	opctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if _, err := ctx.Deps.Controller.Play(opctx, ctx.GuildID(), vs.ChannelID, ctx.Event.ChannelID, []player.Track{track}); err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, fmt.Sprintf("Couldn't queue the trade: %v", err))
	}

	from := offer.Username
	if from == "" {
		from = "someone"
	}
	return command.Respond(ctx.Session, ctx.Event,
		fmt.Sprintf("You received **%s**, offered by **%s**. Enjoy the mystery!", track.Title, from))
}

func init() {
	command.Register(command.ApplyMiddlewares(&WonderTradeCommand{},
		command.WithCommandLogger(),
		command.WithGuildOnly(),
	))
}
