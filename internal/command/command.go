package command

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/config"
	"musicmonkey/internal/player"
	"musicmonkey/internal/storage"
)

type Command interface {
	Name() string
	Description() string
	Category() string
	// RequireDJ marks commands covered by the guild's DJ role restriction.
	RequireDJ() bool
	Run(ctx *SlashContext) error
}

// SlashProvider - how this command should be registered with Discord
type SlashProvider interface {
	SlashDefinition() *discordgo.ApplicationCommand
}

// Hook for component interactions beyond Run
type ComponentHandler interface {
	Component(ctx *ComponentContext) error
}

// TrackLoader resolves user input into playable tracks. Load handles both
// direct URLs and free-text searches; Search returns the single best match.
type TrackLoader interface {
	Load(ctx context.Context, query string) ([]player.Track, string, error)
	Search(ctx context.Context, query string) (*player.Track, error)
}

// Deps is everything a command handler can reach.
type Deps struct {
	Controller  *player.Controller
	Storage     *storage.Storage
	Loader      TrackLoader
	Recommender player.Recommender
	Config      *config.Config
}

// SlashContext - what runtime hands you when executing a slash command
type SlashContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Deps    *Deps
}

// GuildID is a shortcut for the interaction's guild.
func (c *SlashContext) GuildID() string { return c.Event.GuildID }

// User returns the invoking user, from the member in guilds or directly in
// DMs.
func (c *SlashContext) User() *discordgo.User {
	if c.Event.Member != nil {
		return c.Event.Member.User
	}
	return c.Event.User
}

// Option fetches a named option from the interaction data, nil when absent.
func (c *SlashContext) Option(name string) *discordgo.ApplicationCommandInteractionDataOption {
	for _, opt := range c.Event.ApplicationCommandData().Options {
		if opt.Name == name {
			return opt
		}
	}
	return nil
}

// ComponentContext is handed to component interaction handlers.
type ComponentContext struct {
	Session *discordgo.Session
	Event   *discordgo.InteractionCreate
	Deps    *Deps
}
