package music

import (
	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/command"
)

type StopCommand struct{}

func (c *StopCommand) Name() string        { return "stop" }
func (c *StopCommand) Description() string { return "Stop playback and leave the voice channel" }
func (c *StopCommand) Category() string    { return category }
func (c *StopCommand) RequireDJ() bool     { return true }

func (c *StopCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *StopCommand) Run(ctx *command.SlashContext) error {
	opctx, cancel := opCtx()
	defer cancel()

	if err := ctx.Deps.Controller.Stop(opctx, ctx.GuildID()); err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, errorMessage(err))
	}
	return command.Respond(ctx.Session, ctx.Event, "Stopped. See you next time.")
}

func init() {
	command.Register(command.ApplyMiddlewares(&StopCommand{},
		command.WithDJCheck(),
		command.WithCommandLogger(),
		command.WithGuildOnly(),
	))
}
