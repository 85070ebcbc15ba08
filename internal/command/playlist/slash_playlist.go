// Package playlist holds the saved-playlist slash commands.
package playlist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/command"
	"musicmonkey/internal/player"
	"musicmonkey/pkg/util"
)

const category = "📂 Playlists"

type PlaylistCommand struct{}

func (c *PlaylistCommand) Name() string        { return "playlist" }
func (c *PlaylistCommand) Description() string { return "Save and play personal playlists" }
func (c *PlaylistCommand) Category() string    { return category }
func (c *PlaylistCommand) RequireDJ() bool     { return false }

func (c *PlaylistCommand) SlashDefinition() *discordgo.ApplicationCommand {
	nameOpt := func(desc string) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "name",
			Description: desc,
			Required:    true,
		}
	}

	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "save",
				Description: "Save the current queue as a playlist",
				Options:     []*discordgo.ApplicationCommandOption{nameOpt("Playlist name")},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "play",
				Description: "Queue up a saved playlist",
				Options:     []*discordgo.ApplicationCommandOption{nameOpt("Playlist to play")},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "add",
				Description: "Add the current track to a playlist",
				Options:     []*discordgo.ApplicationCommandOption{nameOpt("Playlist to add to")},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "delete",
				Description: "Delete one of your playlists",
				Options:     []*discordgo.ApplicationCommandOption{nameOpt("Playlist to delete")},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "show",
				Description: "Show the tracks in a playlist",
				Options:     []*discordgo.ApplicationCommandOption{nameOpt("Playlist to show")},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "List your playlists",
			},
		},
	}
}

func (c *PlaylistCommand) Run(ctx *command.SlashContext) error {
	opts := ctx.Event.ApplicationCommandData().Options
	if len(opts) == 0 {
		return nil
	}
	sub := opts[0]

	name := ""
	for _, o := range sub.Options {
		if o.Name == "name" {
			name = o.StringValue()
		}
	}

	switch sub.Name {
	case "save":
		return c.save(ctx, name)
	case "play":
		return c.play(ctx, name)
	case "add":
		return c.add(ctx, name)
	case "delete":
		return c.delete(ctx, name)
	case "show":
		return c.show(ctx, name)
	case "list":
		return c.list(ctx)
	}
	return nil
}

func (c *PlaylistCommand) save(ctx *command.SlashContext, name string) error {
	s, ok := ctx.Deps.Controller.Session(ctx.GuildID())
	if !ok {
		return command.RespondEphemeral(ctx.Session, ctx.Event, "Nothing is playing, there's no queue to save.")
	}

	var tracks []player.Track
	if cur, ok := s.Current(); ok {
		tracks = append(tracks, cur)
	}
	tracks = append(tracks, s.QueueTracks()...)
	if len(tracks) == 0 {
		return command.RespondEphemeral(ctx.Session, ctx.Event, "There's nothing to save.")
	}

	if err := ctx.Deps.Storage.SavePlaylist(ctx.GuildID(), ctx.User().ID, name, tracks); err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, fmt.Sprintf("Couldn't save: %v", err))
	}
	return command.Respond(ctx.Session, ctx.Event,
		fmt.Sprintf("Saved **%d** tracks as **%s**.", len(tracks), name))
}

func (c *PlaylistCommand) play(ctx *command.SlashContext, name string) error {
	vs, err := command.FindUserVoiceState(ctx.Session, ctx.GuildID(), ctx.User().ID)
	if err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, "Join a voice channel first.")
	}

	tracks, err := ctx.Deps.Storage.LoadPlaylist(ctx.GuildID(), ctx.User().ID, name)
	if err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, fmt.Sprintf("Couldn't load: %v", err))
	}

	user := ctx.User()
	for i := range tracks {
		tracks[i].Requester = player.Requester{ID: user.ID, Name: user.Username}
	}

	opctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if _, err := ctx.Deps.Controller.Play(opctx, ctx.GuildID(), vs.ChannelID, ctx.Event.ChannelID, tracks); err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, fmt.Sprintf("Couldn't start playback: %v", err))
	}
	return command.Respond(ctx.Session, ctx.Event,
		fmt.Sprintf("Queued **%d** tracks from **%s**.", len(tracks), name))
}

func (c *PlaylistCommand) add(ctx *command.SlashContext, name string) error {
	s, ok := ctx.Deps.Controller.Session(ctx.GuildID())
	if !ok {
		return command.RespondEphemeral(ctx.Session, ctx.Event, "Nothing is playing right now.")
	}
	cur, ok := s.Current()
	if !ok {
		return command.RespondEphemeral(ctx.Session, ctx.Event, "Nothing is playing right now.")
	}

	if err := ctx.Deps.Storage.AddToPlaylist(ctx.GuildID(), ctx.User().ID, name, cur); err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, fmt.Sprintf("Couldn't add: %v", err))
	}
	return command.Respond(ctx.Session, ctx.Event,
		fmt.Sprintf("Added **%s** to **%s**.", cur.Title, name))
}

func (c *PlaylistCommand) delete(ctx *command.SlashContext, name string) error {
	if err := ctx.Deps.Storage.DeletePlaylist(ctx.GuildID(), ctx.User().ID, name); err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, fmt.Sprintf("Couldn't delete: %v", err))
	}
	return command.Respond(ctx.Session, ctx.Event, fmt.Sprintf("Deleted playlist **%s**.", name))
}

func (c *PlaylistCommand) show(ctx *command.SlashContext, name string) error {
	tracks, err := ctx.Deps.Storage.LoadPlaylist(ctx.GuildID(), ctx.User().ID, name)
	if err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, fmt.Sprintf("Couldn't load: %v", err))
	}
	if len(tracks) == 0 {
		return command.RespondEphemeral(ctx.Session, ctx.Event, "That playlist is empty.")
	}

	const pageSize = 15
	var b strings.Builder
	for i, t := range tracks {
		if i >= pageSize {
			fmt.Fprintf(&b, "... and %d more", len(tracks)-pageSize)
			break
		}
		fmt.Fprintf(&b, "`%d.` **%s** by %s `[%s]`\n",
			i+1, t.Title, t.Author, command.FormatDuration(t.Duration))
	}
	embed := &discordgo.MessageEmbed{
		Title:       name,
		Description: b.String(),
		Color:       command.EmbedColor,
	}
	return command.RespondEmbed(ctx.Session, ctx.Event, embed)
}

func (c *PlaylistCommand) list(ctx *command.SlashContext) error {
	lists, err := ctx.Deps.Storage.ListPlaylists(ctx.GuildID(), ctx.User().ID)
	if err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, fmt.Sprintf("Couldn't list playlists: %v", err))
	}
	if len(lists) == 0 {
		return command.RespondEphemeral(ctx.Session, ctx.Event, "You have no playlists here yet.")
	}

	var b strings.Builder
	for _, pl := range lists {
		fmt.Fprintf(&b, "**%s** (%d tracks, updated %s)\n",
			pl.Name, len(pl.Tracks), util.FormatDateTpl(pl.UpdatedAt.UnixMilli(), "YYYY.MM.DD"))
	}
	embed := &discordgo.MessageEmbed{
		Title:       "Your playlists",
		Description: b.String(),
		Color:       command.EmbedColor,
	}
	return command.RespondEmbed(ctx.Session, ctx.Event, embed)
}

func init() {
	command.Register(command.ApplyMiddlewares(&PlaylistCommand{},
		command.WithCommandLogger(),
		command.WithGuildOnly(),
	))
}
