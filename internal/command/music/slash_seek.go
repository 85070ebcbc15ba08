package music

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/command"
)

type SeekCommand struct{}

func (c *SeekCommand) Name() string        { return "seek" }
func (c *SeekCommand) Description() string { return "Jump to a position in the current track" }
func (c *SeekCommand) Category() string    { return category }
func (c *SeekCommand) RequireDJ() bool     { return true }

func (c *SeekCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "position",
				Description: "Target position, like 90 or 1:30",
				Required:    true,
			},
		},
	}
}

func (c *SeekCommand) Run(ctx *command.SlashContext) error {
	raw := ""
	if opt := ctx.Option("position"); opt != nil {
		raw = opt.StringValue()
	}

	pos, err := parsePosition(raw)
	if err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, "Use a position like `90` or `1:30`.")
	}

	opctx, cancel := opCtx()
	defer cancel()

	if err := ctx.Deps.Controller.Seek(opctx, ctx.GuildID(), pos); err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, errorMessage(err))
	}
	return command.Respond(ctx.Session, ctx.Event, fmt.Sprintf("Jumped to `%s`.", command.FormatDuration(pos)))
}

func init() {
	command.Register(command.ApplyMiddlewares(&SeekCommand{},
		command.WithDJCheck(),
		command.WithCommandLogger(),
		command.WithGuildOnly(),
	))
}
