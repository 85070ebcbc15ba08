package music

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/command"
)

type VolumeCommand struct{}

func (c *VolumeCommand) Name() string        { return "volume" }
func (c *VolumeCommand) Description() string { return "Set the playback volume (0-100)" }
func (c *VolumeCommand) Category() string    { return category }
func (c *VolumeCommand) RequireDJ() bool     { return true }

func (c *VolumeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	minLevel := float64(0)
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "level",
				Description: "Volume from 0 to 100",
				Required:    true,
				MinValue:    &minLevel,
				MaxValue:    100,
			},
		},
	}
}

func (c *VolumeCommand) Run(ctx *command.SlashContext) error {
	level := 100
	if opt := ctx.Option("level"); opt != nil {
		level = int(opt.IntValue())
	}

	opctx, cancel := opCtx()
	defer cancel()

	applied, err := ctx.Deps.Controller.SetVolume(opctx, ctx.GuildID(), level)
	if err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, errorMessage(err))
	}
	return command.Respond(ctx.Session, ctx.Event, fmt.Sprintf("Volume set to **%d**.", applied))
}

func init() {
	command.Register(command.ApplyMiddlewares(&VolumeCommand{},
		command.WithDJCheck(),
		command.WithCommandLogger(),
		command.WithGuildOnly(),
	))
}
