// Package settings holds the guild configuration slash commands.
package settings

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/command"
	"musicmonkey/internal/storage"
)

const category = "⚙️ Settings"

type DJCommand struct{}

func (c *DJCommand) Name() string        { return "dj" }
func (c *DJCommand) Description() string { return "Restrict playback commands to a DJ role" }
func (c *DJCommand) Category() string    { return category }
func (c *DJCommand) RequireDJ() bool     { return false }

func (c *DJCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "enable",
				Description: "Turn DJ mode on",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionRole,
						Name:        "role",
						Description: "Role allowed to control playback",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "disable",
				Description: "Turn DJ mode off",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "status",
				Description: "Show the current DJ settings",
			},
		},
	}
}

func (c *DJCommand) Run(ctx *command.SlashContext) error {
	if ctx.Event.Member == nil || !command.IsAdministrator(ctx.Session, ctx.GuildID(), ctx.Event.Member) {
		return command.RespondEphemeral(ctx.Session, ctx.Event, "Only administrators can change DJ settings.")
	}

	opts := ctx.Event.ApplicationCommandData().Options
	if len(opts) == 0 {
		return nil
	}

	switch opts[0].Name {
	case "enable":
		var roleID string
		for _, o := range opts[0].Options {
			if o.Name == "role" {
				roleID = o.RoleValue(ctx.Session, ctx.GuildID()).ID
			}
		}
		if roleID == "" {
			return command.RespondEphemeral(ctx.Session, ctx.Event, "Pick a role for the DJs.")
		}
		err := ctx.Deps.Storage.SetDJSettings(ctx.GuildID(), storage.DJSettings{Enabled: true, RoleID: roleID})
		if err != nil {
			return command.RespondEphemeral(ctx.Session, ctx.Event, fmt.Sprintf("Couldn't save: %v", err))
		}
		return command.Respond(ctx.Session, ctx.Event, fmt.Sprintf("DJ mode is on. <@&%s> runs the show now.", roleID))

	case "disable":
		err := ctx.Deps.Storage.SetDJSettings(ctx.GuildID(), storage.DJSettings{})
		if err != nil {
			return command.RespondEphemeral(ctx.Session, ctx.Event, fmt.Sprintf("Couldn't save: %v", err))
		}
		return command.Respond(ctx.Session, ctx.Event, "DJ mode is off. Everyone controls the music.")

	case "status":
		dj, err := ctx.Deps.Storage.GetDJSettings(ctx.GuildID())
		if err != nil {
			return command.RespondEphemeral(ctx.Session, ctx.Event, fmt.Sprintf("Couldn't read settings: %v", err))
		}
		if !dj.Enabled {
			return command.RespondEphemeral(ctx.Session, ctx.Event, "DJ mode is off.")
		}
		return command.RespondEphemeral(ctx.Session, ctx.Event, fmt.Sprintf("DJ mode is on, role <@&%s>.", dj.RoleID))
	}
	return nil
}

func init() {
	command.Register(command.ApplyMiddlewares(&DJCommand{},
		command.WithCommandLogger(),
		command.WithGuildOnly(),
	))
}
