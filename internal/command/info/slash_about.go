package info

import (
	"runtime"
	"strings"

	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/command"
	"musicmonkey/internal/version"
)

type AboutCommand struct{}

func (c *AboutCommand) Name() string        { return "about" }
func (c *AboutCommand) Description() string { return "Show version and runtime info" }
func (c *AboutCommand) Category() string    { return category }
func (c *AboutCommand) RequireDJ() bool     { return false }

func (c *AboutCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *AboutCommand) Run(ctx *command.SlashContext) error {
	embed := &discordgo.MessageEmbed{
		Title: "ℹ️ About " + version.AppName,
		Description: "A music bot with queues, playlists, autoplay and a " +
			"wonder trade pool.",
		Color: command.EmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Version", Value: version.AppVersion, Inline: true},
			{Name: "Go", Value: strings.TrimPrefix(runtime.Version(), "go"), Inline: true},
		},
	}
	return command.RespondEmbed(ctx.Session, ctx.Event, embed)
}

func init() {
	command.Register(command.ApplyMiddlewares(&AboutCommand{},
		command.WithCommandLogger(),
		command.WithGuildOnly(),
	))
}
