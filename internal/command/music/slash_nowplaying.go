package music

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/command"
)

type NowPlayingCommand struct{}

func (c *NowPlayingCommand) Name() string        { return "nowplaying" }
func (c *NowPlayingCommand) Description() string { return "Show what's playing right now" }
func (c *NowPlayingCommand) Category() string    { return category }
func (c *NowPlayingCommand) RequireDJ() bool     { return false }

func (c *NowPlayingCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *NowPlayingCommand) Run(ctx *command.SlashContext) error {
	s, ok := ctx.Deps.Controller.Session(ctx.GuildID())
	if !ok {
		return command.RespondEphemeral(ctx.Session, ctx.Event, "Nothing is playing on this server.")
	}

	st := s.Status()
	if st.Track == nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, "Nothing is playing right now.")
	}

	state := "Playing"
	if st.Paused {
		state = "Paused"
	}

	embed := &discordgo.MessageEmbed{
		Title:       st.Track.Title,
		URL:         st.Track.URI,
		Color:       command.EmbedColor,
		Description: fmt.Sprintf("by **%s**", st.Track.Author),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "State", Value: state, Inline: true},
			{Name: "Length", Value: command.FormatDuration(st.Track.Duration), Inline: true},
			{Name: "Volume", Value: fmt.Sprintf("%d", st.Volume), Inline: true},
			{Name: "Loop", Value: st.Loop.String(), Inline: true},
			{Name: "Queued", Value: fmt.Sprintf("%d tracks", st.QueueLen), Inline: true},
			{Name: "Requested by", Value: st.Track.RequesterName(), Inline: true},
		},
	}
	if st.Track.ArtworkURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: st.Track.ArtworkURL}
	}

	return command.RespondEmbed(ctx.Session, ctx.Event, embed)
}

func init() {
	command.Register(command.ApplyMiddlewares(&NowPlayingCommand{},
		command.WithCommandLogger(),
		command.WithGuildOnly(),
	))
}
