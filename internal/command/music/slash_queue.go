package music

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/command"
)

const queuePageSize = 10

type QueueCommand struct{}

func (c *QueueCommand) Name() string        { return "queue" }
func (c *QueueCommand) Description() string { return "Show the upcoming tracks" }
func (c *QueueCommand) Category() string    { return category }
func (c *QueueCommand) RequireDJ() bool     { return false }

func (c *QueueCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *QueueCommand) Run(ctx *command.SlashContext) error {
	s, ok := ctx.Deps.Controller.Session(ctx.GuildID())
	if !ok {
		return command.RespondEphemeral(ctx.Session, ctx.Event, "Nothing is playing on this server.")
	}

	tracks := s.QueueTracks()
	var b strings.Builder

	if cur, ok := s.Current(); ok {
		fmt.Fprintf(&b, "Now: %s\n\n", trackLine(cur))
	}
	if len(tracks) == 0 {
		b.WriteString("The queue is empty.")
	}
	for i, t := range tracks {
		if i == queuePageSize {
			fmt.Fprintf(&b, "...and %d more", len(tracks)-queuePageSize)
			break
		}
		fmt.Fprintf(&b, "`%d.` %s\n", i+1, trackLine(t))
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Queue (%d tracks)", len(tracks)),
		Description: b.String(),
		Color:       command.EmbedColor,
	}
	return command.RespondEmbed(ctx.Session, ctx.Event, embed)
}

func init() {
	command.Register(command.ApplyMiddlewares(&QueueCommand{},
		command.WithCommandLogger(),
		command.WithGuildOnly(),
	))
}
