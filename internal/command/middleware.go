package command

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"musicmonkey/internal/storage"
)

type Middleware func(Command) Command

type wrappedCommand struct {
	Command
	wrap func(ctx *SlashContext) error
}

func (w *wrappedCommand) Run(ctx *SlashContext) error {
	if w.wrap != nil {
		return w.wrap(ctx)
	}
	return w.Command.Run(ctx)
}

func (w *wrappedCommand) Component(ctx *ComponentContext) error {
	if ch, ok := w.Command.(ComponentHandler); ok {
		return ch.Component(ctx)
	}
	return nil
}

func (w *wrappedCommand) SlashDefinition() *discordgo.ApplicationCommand {
	if sp, ok := w.Command.(SlashProvider); ok {
		return sp.SlashDefinition()
	}
	return nil
}

func ApplyMiddlewares(cmd Command, mws ...Middleware) Command {
	for _, mw := range mws {
		cmd = mw(cmd)
	}
	return cmd
}

// WithGuildOnly drops invocations outside a guild.
func WithGuildOnly() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx *SlashContext) error {
				if ctx.Event.GuildID == "" {
					return RespondEphemeral(ctx.Session, ctx.Event, "This command only works in a server.")
				}
				return cmd.Run(ctx)
			},
		}
	}
}

// WithCommandLogger wraps a command to record its execution in the guild's
// command history.
func WithCommandLogger() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx *SlashContext) error {
				err := cmd.Run(ctx)

				user := ctx.User()
				if user != nil && ctx.Deps != nil && ctx.Deps.Storage != nil && ctx.GuildID() != "" {
					rec := storage.CommandHistoryRecord{
						ChannelID: ctx.Event.ChannelID,
						UserID:    user.ID,
						Username:  user.Username,
						Command:   cmd.Name(),
						Datetime:  time.Now(),
					}
					if e := ctx.Deps.Storage.AppendCommandToHistory(ctx.GuildID(), rec); e != nil {
						log.Warn().Err(e).Str("command", cmd.Name()).Msg("command history append failed")
					}
				}

				return err
			},
		}
	}
}

// WithDJCheck blocks restricted playback commands for members without the
// configured DJ role. Administrators and the developer always pass.
func WithDJCheck() Middleware {
	return func(cmd Command) Command {
		return &wrappedCommand{
			Command: cmd,
			wrap: func(ctx *SlashContext) error {
				if !cmd.RequireDJ() || ctx.Deps == nil || ctx.Deps.Storage == nil {
					return cmd.Run(ctx)
				}

				dj, err := ctx.Deps.Storage.GetDJSettings(ctx.GuildID())
				if err != nil || !dj.CommandRestricted(cmd.Name()) {
					return cmd.Run(ctx)
				}

				member := ctx.Event.Member
				if member == nil {
					return cmd.Run(ctx)
				}
				if IsAdministrator(ctx.Session, ctx.GuildID(), member) || IsDeveloper(ctx.Deps, member.User.ID) {
					return cmd.Run(ctx)
				}
				for _, r := range member.Roles {
					if r == dj.RoleID {
						return cmd.Run(ctx)
					}
				}

				return RespondEphemeral(ctx.Session, ctx.Event, "DJ mode is on. You need the DJ role to use this command.")
			},
		}
	}
}
