package music

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/command"
	"musicmonkey/internal/player"
)

type PurgeCommand struct{}

func (c *PurgeCommand) Name() string { return "purge" }
func (c *PurgeCommand) Description() string {
	return "Drop queued tracks from users who left the voice channel"
}
func (c *PurgeCommand) Category() string { return category }
func (c *PurgeCommand) RequireDJ() bool  { return true }

func (c *PurgeCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *PurgeCommand) Run(ctx *command.SlashContext) error {
	s, ok := ctx.Deps.Controller.Session(ctx.GuildID())
	if !ok {
		return command.RespondEphemeral(ctx.Session, ctx.Event, "Nothing is playing on this server.")
	}

	guild, err := ctx.Session.State.Guild(ctx.GuildID())
	if err != nil {
		guild, err = ctx.Session.Guild(ctx.GuildID())
		if err != nil {
			return command.RespondEphemeral(ctx.Session, ctx.Event, "Couldn't read the voice channel members.")
		}
	}

	present := map[string]bool{}
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID == s.VoiceChannelID() {
			present[vs.UserID] = true
		}
	}

	n, err := ctx.Deps.Controller.RemoveWhere(ctx.GuildID(), func(t player.Track) bool {
		if t.Requester == player.AutoRequester {
			return false
		}
		return !present[t.Requester.ID]
	})
	if err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, errorMessage(err))
	}
	return command.Respond(ctx.Session, ctx.Event, fmt.Sprintf("Purged **%d** tracks from absent requesters.", n))
}

func init() {
	command.Register(command.ApplyMiddlewares(&PurgeCommand{},
		command.WithDJCheck(),
		command.WithCommandLogger(),
		command.WithGuildOnly(),
	))
}
