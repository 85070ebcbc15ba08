// Package info holds the informational slash commands.
package info

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/command"
	"musicmonkey/internal/config"
	"musicmonkey/internal/version"
)

const category = "🕯️ Information"

type HelpCommand struct{}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "Get a list of available commands" }
func (c *HelpCommand) Category() string    { return category }
func (c *HelpCommand) RequireDJ() bool     { return false }

func (c *HelpCommand) SlashDefinition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name(),
		Description: c.Description(),
		Type:        discordgo.ChatApplicationCommand,
	}
}

func (c *HelpCommand) Run(ctx *command.SlashContext) error {
	embed := &discordgo.MessageEmbed{
		Title:       version.AppName + " Help",
		Description: buildHelpByCategory(),
		Color:       command.EmbedColor,
	}
	return command.RespondEmbed(ctx.Session, ctx.Event, embed)
}

func buildHelpByCategory() string {
	byCategory := make(map[string][]command.Command)
	for _, cmd := range command.All() {
		byCategory[cmd.Category()] = append(byCategory[cmd.Category()], cmd)
	}

	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Slice(categories, func(i, j int) bool {
		wi, wj := config.CategoryWeights[categories[i]], config.CategoryWeights[categories[j]]
		if wi != wj {
			return wi < wj
		}
		return categories[i] < categories[j]
	})

	var sb strings.Builder
	for _, cat := range categories {
		sb.WriteString(fmt.Sprintf("**%s**\n", cat))
		cmds := byCategory[cat]
		sort.Slice(cmds, func(i, j int) bool {
			return cmds[i].Name() < cmds[j].Name()
		})
		for _, cmd := range cmds {
			sb.WriteString(fmt.Sprintf("`%s` - %s\n", cmd.Name(), cmd.Description()))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func init() {
	command.Register(command.ApplyMiddlewares(&HelpCommand{},
		command.WithCommandLogger(),
		command.WithGuildOnly(),
	))
}
