// Package social holds the community slash commands: leaderboards, wonder
// trades and recommendations.
package social

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/command"
)

const category = "🏆 Social"

type LeaderboardCommand struct{}

func (c *LeaderboardCommand) Name() string        { return "leaderboard" }
func (c *LeaderboardCommand) Description() string { return "Who queued the most tracks here" }
func (c *LeaderboardCommand) Category() string    { return category }
func (c *LeaderboardCommand) RequireDJ() bool     { return false }

func (c *LeaderboardCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *LeaderboardCommand) Run(ctx *command.SlashContext) error {
	top, err := ctx.Deps.Storage.TopPlayers(ctx.GuildID(), 10)
	if err != nil {
		return command.RespondEphemeral(ctx.Session, ctx.Event, fmt.Sprintf("Couldn't load the leaderboard: %v", err))
	}
	if len(top) == 0 {
		return command.RespondEphemeral(ctx.Session, ctx.Event, "Nobody has played anything here yet.")
	}

	medals := []string{"🥇", "🥈", "🥉"}
	var b strings.Builder
	for i, row := range top {
		marker := fmt.Sprintf("`%d.`", i+1)
		if i < len(medals) {
			marker = medals[i]
		}
		name := row.Name
		if name == "" {
			name = row.UserID
		}
		fmt.Fprintf(&b, "%s **%s** with %d tracks\n", marker, name, row.Count)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Top requesters",
		Description: b.String(),
		Color:       command.EmbedColor,
	}
	return command.RespondEmbed(ctx.Session, ctx.Event, embed)
}

func init() {
	command.Register(command.ApplyMiddlewares(&LeaderboardCommand{},
		command.WithCommandLogger(),
		command.WithGuildOnly(),
	))
}
