package music

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/command"
	"musicmonkey/internal/player"
)

type LoopCommand struct{}

func (c *LoopCommand) Name() string        { return "loop" }
func (c *LoopCommand) Description() string { return "Set the loop mode" }
func (c *LoopCommand) Category() string    { return category }
func (c *LoopCommand) RequireDJ() bool     { return true }

func (c *LoopCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "mode",
				Description: "What to repeat",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "off", Value: "off"},
					{Name: "track", Value: "track"},
					{Name: "queue", Value: "queue"},
				},
			},
		},
	}
}

func (c *LoopCommand) Run(ctx *command.SlashContext) error {
	mode := player.LoopNone
	if opt := ctx.Option("mode"); opt != nil {
		switch opt.StringValue() {
		case "track":
			mode = player.LoopTrack
		case "queue":
			mode = player.LoopQueue
		}
	}

	if err := ctx.Deps.Controller.SetLoop(ctx.GuildID(), mode); err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, errorMessage(err))
	}
	return command.Respond(ctx.Session, ctx.Event, fmt.Sprintf("Loop mode: **%s**.", mode))
}

func init() {
	command.Register(command.ApplyMiddlewares(&LoopCommand{},
		command.WithDJCheck(),
		command.WithCommandLogger(),
		command.WithGuildOnly(),
	))
}
