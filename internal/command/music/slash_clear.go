package music

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/command"
)

type ClearCommand struct{}

func (c *ClearCommand) Name() string        { return "clear" }
func (c *ClearCommand) Description() string { return "Clear the queue, keeping the current track" }
func (c *ClearCommand) Category() string    { return category }
func (c *ClearCommand) RequireDJ() bool     { return true }

func (c *ClearCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *ClearCommand) Run(ctx *command.SlashContext) error {
	n, err := ctx.Deps.Controller.ClearQueue(ctx.GuildID())
	if err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, errorMessage(err))
	}
	return command.Respond(ctx.Session, ctx.Event, fmt.Sprintf("Cleared **%d** tracks from the queue.", n))
}

func init() {
	command.Register(command.ApplyMiddlewares(&ClearCommand{},
		command.WithDJCheck(),
		command.WithCommandLogger(),
		command.WithGuildOnly(),
	))
}
