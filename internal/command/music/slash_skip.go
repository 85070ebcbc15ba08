package music

import (
	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/command"
)

type SkipCommand struct{}

func (c *SkipCommand) Name() string        { return "skip" }
func (c *SkipCommand) Description() string { return "Skip the current track" }
func (c *SkipCommand) Category() string    { return category }
func (c *SkipCommand) RequireDJ() bool     { return true }

func (c *SkipCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *SkipCommand) Run(ctx *command.SlashContext) error {
	opctx, cancel := opCtx()
	defer cancel()

	if err := ctx.Deps.Controller.Skip(opctx, ctx.GuildID()); err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, errorMessage(err))
	}
	return command.Respond(ctx.Session, ctx.Event, "Skipped.")
}

func init() {
	command.Register(command.ApplyMiddlewares(&SkipCommand{},
		command.WithDJCheck(),
		command.WithCommandLogger(),
		command.WithGuildOnly(),
	))
}
