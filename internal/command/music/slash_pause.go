package music

import (
	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/command"
)

type PauseCommand struct{}

func (c *PauseCommand) Name() string        { return "pause" }
func (c *PauseCommand) Description() string { return "Pause playback" }
func (c *PauseCommand) Category() string    { return category }
func (c *PauseCommand) RequireDJ() bool     { return true }

func (c *PauseCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *PauseCommand) Run(ctx *command.SlashContext) error {
	opctx, cancel := opCtx()
	defer cancel()

	if err := ctx.Deps.Controller.Pause(opctx, ctx.GuildID()); err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, errorMessage(err))
	}
	return command.Respond(ctx.Session, ctx.Event, "Paused.")
}

func init() {
	command.Register(command.ApplyMiddlewares(&PauseCommand{},
		command.WithDJCheck(),
		command.WithCommandLogger(),
		command.WithGuildOnly(),
	))
}
