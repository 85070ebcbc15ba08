package music

import (
	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/command"
)

type ResumeCommand struct{}

func (c *ResumeCommand) Name() string        { return "resume" }
func (c *ResumeCommand) Description() string { return "Resume paused playback" }
func (c *ResumeCommand) Category() string    { return category }
func (c *ResumeCommand) RequireDJ() bool     { return true }

func (c *ResumeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *ResumeCommand) Run(ctx *command.SlashContext) error {
	opctx, cancel := opCtx()
	defer cancel()

	if err := ctx.Deps.Controller.Resume(opctx, ctx.GuildID()); err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, errorMessage(err))
	}
	return command.Respond(ctx.Session, ctx.Event, "Resumed.")
}

func init() {
	command.Register(command.ApplyMiddlewares(&ResumeCommand{},
		command.WithDJCheck(),
		command.WithCommandLogger(),
		command.WithGuildOnly(),
	))
}
