package music

import (
	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/command"
)

type AutoplayCommand struct{}

func (c *AutoplayCommand) Name() string { return "autoplay" }
func (c *AutoplayCommand) Description() string {
	return "Toggle automatic track suggestions when the queue runs out"
}
func (c *AutoplayCommand) Category() string { return category }
func (c *AutoplayCommand) RequireDJ() bool  { return true }

func (c *AutoplayCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *AutoplayCommand) Run(ctx *command.SlashContext) error {
	on, err := ctx.Deps.Controller.ToggleAutoplay(ctx.GuildID())
	if err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, errorMessage(err))
	}
	if on {
		return command.Respond(ctx.Session, ctx.Event, "Autoplay is **on**. I'll keep the music going.")
	}
	return command.Respond(ctx.Session, ctx.Event, "Autoplay is **off**.")
}

func init() {
	command.Register(command.ApplyMiddlewares(&AutoplayCommand{},
		command.WithDJCheck(),
		command.WithCommandLogger(),
		command.WithGuildOnly(),
	))
}
