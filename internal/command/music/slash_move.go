package music

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/command"
)

type MoveCommand struct{}

func (c *MoveCommand) Name() string        { return "move" }
func (c *MoveCommand) Description() string { return "Move a queued track to another position" }
func (c *MoveCommand) Category() string    { return category }
func (c *MoveCommand) RequireDJ() bool     { return true }

func (c *MoveCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minPos := float64(1)
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "from",
				Description: "Current position in the queue",
				Required:    true,
				MinValue:    &minPos,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "to",
				Description: "New position in the queue",
				Required:    true,
				MinValue:    &minPos,
			},
		},
	}
}

func (c *MoveCommand) Run(ctx *command.SlashContext) error {
	var from, to int
	if opt := ctx.Option("from"); opt != nil {
		from = int(opt.IntValue())
	}
	if opt := ctx.Option("to"); opt != nil {
		to = int(opt.IntValue())
	}

	if err := ctx.Deps.Controller.Move(ctx.GuildID(), from, to); err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, errorMessage(err))
	}
	return command.Respond(ctx.Session, ctx.Event, fmt.Sprintf("Moved track `%d` to position `%d`.", from, to))
}

func init() {
	command.Register(command.ApplyMiddlewares(&MoveCommand{},
		command.WithDJCheck(),
		command.WithCommandLogger(),
		command.WithGuildOnly(),
	))
}
