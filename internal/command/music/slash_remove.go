package music

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/command"
)

type RemoveCommand struct{}

func (c *RemoveCommand) Name() string        { return "remove" }
func (c *RemoveCommand) Description() string { return "Remove a track from the queue" }
func (c *RemoveCommand) Category() string    { return category }
func (c *RemoveCommand) RequireDJ() bool     { return true }

func (c *RemoveCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minPos := float64(1)
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "position",
				Description: "Queue position to remove",
				Required:    true,
				MinValue:    &minPos,
			},
		},
	}
}

func (c *RemoveCommand) Run(ctx *command.SlashContext) error {
	pos := 0
	if opt := ctx.Option("position"); opt != nil {
		pos = int(opt.IntValue())
	}

	removed, err := ctx.Deps.Controller.RemoveAt(ctx.GuildID(), pos)
	if err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, errorMessage(err))
	}
	return command.Respond(ctx.Session, ctx.Event, fmt.Sprintf("Removed **%s** from the queue.", removed.Title))
}

func init() {
	command.Register(command.ApplyMiddlewares(&RemoveCommand{},
		command.WithDJCheck(),
		command.WithCommandLogger(),
		command.WithGuildOnly(),
	))
}
