// Package events provides event handlers for voice events
package events

import (
	"fmt"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterVoiceEvents registers all voice-related event handlers
func RegisterVoiceEvents(eh *discord.EventHandler) {
	eh.OnVoiceStateUpdate(onVoiceStateUpdate)
}

// onVoiceStateUpdate is called when a user's voice state changes
func onVoiceStateUpdate(s *discordgo.Session, v *discordgo.VoiceStateUpdate) {
	// Usuario se unió a un canal de voz
	if v.ChannelID != "" && (v.BeforeUpdate == nil || v.BeforeUpdate.ChannelID == "") {
		channel, err := s.Channel(v.ChannelID)
		if err != nil {
			return
		}
		logger.Debug(fmt.Sprintf("🎤 %s se unió a: %s", v.UserID, channel.Name), "Voice")
		logVoiceMovement(s, v.GuildID, fmt.Sprintf("🎤 <@%s> se unió al canal de voz **%s**.", v.UserID, channel.Name))
		return
	}

	// Usuario salió de un canal de voz
	if v.ChannelID == "" && v.BeforeUpdate != nil && v.BeforeUpdate.ChannelID != "" {
		logger.Debug(fmt.Sprintf("🔇 %s salió del canal de voz", v.UserID), "Voice")

		name := v.BeforeUpdate.ChannelID
		if channel, err := s.Channel(v.BeforeUpdate.ChannelID); err == nil {
			name = channel.Name
		}
		logVoiceMovement(s, v.GuildID, fmt.Sprintf("🔇 <@%s> salió del canal de voz **%s**.", v.UserID, name))
		return
	}

	// Usuario cambió de canal de voz
	if v.ChannelID != "" && v.BeforeUpdate != nil &&
		v.BeforeUpdate.ChannelID != "" && v.ChannelID != v.BeforeUpdate.ChannelID {
		oldChannel, _ := s.Channel(v.BeforeUpdate.ChannelID)
		newChannel, _ := s.Channel(v.ChannelID)

		if oldChannel != nil && newChannel != nil {
			logger.Debug(fmt.Sprintf("🔄 %s: %s → %s",
				v.UserID, oldChannel.Name, newChannel.Name), "Voice")
		}
	}
}

// logVoiceMovement posts voice activity to the mod log channel when set
func logVoiceMovement(s *discordgo.Session, guildID, description string) {
	settings, err := database.GetServerSettings(guildID)
	if err != nil || settings.ModLogChannelID == "" {
		return
	}

	embed := &discordgo.MessageEmbed{
		Description: description,
		Color:       0x3498db,
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	if _, err := s.ChannelMessageSendEmbed(settings.ModLogChannelID, embed); err != nil {
		logger.Debug(fmt.Sprintf("Error enviando log de voz: %v", err), "Voice")
	}
}
