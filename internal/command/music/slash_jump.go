package music

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/command"
)

type JumpCommand struct{}

func (c *JumpCommand) Name() string        { return "jump" }
func (c *JumpCommand) Description() string { return "Skip ahead to a queued track" }
func (c *JumpCommand) Category() string    { return category }
func (c *JumpCommand) RequireDJ() bool     { return true }

func (c *JumpCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minPos := float64(1)
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "position",
				Description: "Queue position to jump to",
				Required:    true,
				MinValue:    &minPos,
			},
		},
	}
}

func (c *JumpCommand) Run(ctx *command.SlashContext) error {
	pos := 0
	if opt := ctx.Option("position"); opt != nil {
		pos = int(opt.IntValue())
	}

	opctx, cancel := opCtx()
	defer cancel()

	if err := ctx.Deps.Controller.Jump(opctx, ctx.GuildID(), pos); err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, errorMessage(err))
	}
	return command.Respond(ctx.Session, ctx.Event, fmt.Sprintf("Jumping to track `%d`.", pos))
}

func init() {
	command.Register(command.ApplyMiddlewares(&JumpCommand{},
		command.WithDJCheck(),
		command.WithCommandLogger(),
		command.WithGuildOnly(),
	))
}
