package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// voiceAdapter implements player.Voice over the gateway session. The bot
// joins with ChannelVoiceJoinManual: the actual audio stream belongs to the
// external node, the gateway only carries the handshake.
type voiceAdapter struct {
	dg *discordgo.Session
}

func newVoiceAdapter(dg *discordgo.Session) *voiceAdapter {
	return &voiceAdapter{dg: dg}
}

func (v *voiceAdapter) Join(guildID, channelID string) error {
	return v.dg.ChannelVoiceJoinManual(guildID, channelID, false, true)
}

func (v *voiceAdapter) Leave(guildID string) error {
	return v.dg.ChannelVoiceJoinManual(guildID, "", false, true)
}

// Listeners counts non-bot members in the channel.
func (v *voiceAdapter) Listeners(guildID, channelID string) (int, error) {
	guild, err := v.dg.State.Guild(guildID)
	if err != nil {
		guild, err = v.dg.Guild(guildID)
		if err != nil {
			return 0, fmt.Errorf("fetch guild: %w", err)
		}
	}

	count := 0
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID != channelID {
			continue
		}
		member, err := v.dg.State.Member(guildID, vs.UserID)
		if err != nil || member == nil || member.User == nil {
			// unknown members count as listeners rather than risking an
			// early leave
			count++
			continue
		}
		if member.User.Bot {
			continue
		}
		count++
	}
	return count, nil
}
