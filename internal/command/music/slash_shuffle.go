package music

import (
	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/command"
)

type ShuffleCommand struct{}

func (c *ShuffleCommand) Name() string        { return "shuffle" }
func (c *ShuffleCommand) Description() string { return "Shuffle the queue" }
func (c *ShuffleCommand) Category() string    { return category }
func (c *ShuffleCommand) RequireDJ() bool     { return true }

func (c *ShuffleCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *ShuffleCommand) Run(ctx *command.SlashContext) error {
	if err := ctx.Deps.Controller.Shuffle(ctx.GuildID()); err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, errorMessage(err))
	}
	return command.Respond(ctx.Session, ctx.Event, "Queue shuffled.")
}

func init() {
	command.Register(command.ApplyMiddlewares(&ShuffleCommand{},
		command.WithDJCheck(),
		command.WithCommandLogger(),
		command.WithGuildOnly(),
	))
}
