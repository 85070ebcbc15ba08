package discord

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"musicmonkey/internal/command"
	"musicmonkey/internal/player"
)

// notifier implements player.Notifier: the now-playing message as one embed
// the controller keeps editing in place.
type notifier struct {
	dg *discordgo.Session
}

func newNotifier(dg *discordgo.Session) *notifier {
	return &notifier{dg: dg}
}

func (n *notifier) Send(channelID string, st player.Status) (player.MessageRef, error) {
	msg, err := n.dg.ChannelMessageSendEmbed(channelID, renderStatus(st))
	if err != nil {
		return player.MessageRef{}, mapMessageError(err)
	}
	return player.MessageRef{ChannelID: msg.ChannelID, MessageID: msg.ID}, nil
}

func (n *notifier) Edit(ref player.MessageRef, st player.Status) error {
	_, err := n.dg.ChannelMessageEditEmbed(ref.ChannelID, ref.MessageID, renderStatus(st))
	return mapMessageError(err)
}

func (n *notifier) Delete(ref player.MessageRef) error {
	return mapMessageError(n.dg.ChannelMessageDelete(ref.ChannelID, ref.MessageID))
}

// mapMessageError folds Discord's "message is gone" answers into the
// sentinel the controller recovers from.
func mapMessageError(err error) error {
	if err == nil {
		return nil
	}
	var rerr *discordgo.RESTError
	if errors.As(err, &rerr) {
		if rerr.Message != nil && rerr.Message.Code == discordgo.ErrCodeUnknownMessage {
			return player.ErrMessageNotFound
		}
		if rerr.Response != nil && rerr.Response.StatusCode == http.StatusNotFound {
			return player.ErrMessageNotFound
		}
	}
	return err
}

func renderStatus(st player.Status) *discordgo.MessageEmbed {
	if st.Track == nil {
		return &discordgo.MessageEmbed{
			Title:       "Nothing playing",
			Description: "The queue is empty. Use /play to start the music.",
			Color:       command.EmbedColor,
		}
	}

	title := "Now playing"
	if st.Paused {
		title = "Paused"
	}

	embed := &discordgo.MessageEmbed{
		Title: title,
		Color: command.EmbedColor,
		Description: fmt.Sprintf("**[%s](%s)**\nby **%s**",
			st.Track.Title, st.Track.URI, st.Track.Author),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Length", Value: command.FormatDuration(st.Track.Duration), Inline: true},
			{Name: "Volume", Value: fmt.Sprintf("%d", st.Volume), Inline: true},
			{Name: "Queued", Value: fmt.Sprintf("%d", st.QueueLen), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Requested by %s", st.Track.RequesterName()),
		},
	}

	if st.Loop != player.LoopNone {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Loop", Value: st.Loop.String(), Inline: true})
	}
	if st.Autoplay {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Autoplay", Value: "on", Inline: true})
	}
	if st.Track.ArtworkURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: st.Track.ArtworkURL}
	}
	return embed
}
