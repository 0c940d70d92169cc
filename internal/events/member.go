// Package events provides event handlers for member events
package events

import (
	"fmt"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/config"
	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// RegisterMemberEvents registers all member-related event handlers
func RegisterMemberEvents(eh *discord.EventHandler) {
	eh.OnGuildMemberAdd(onGuildMemberAdd)
	eh.OnGuildMemberRemove(onGuildMemberRemove)
	eh.OnGuildMemberUpdate(onGuildMemberUpdate)
}

// onGuildMemberAdd is called when a new member joins the server
func onGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	logger.Info(fmt.Sprintf("👋 Nuevo miembro: %s en servidor %s",
		m.User.Username, m.GuildID), "Member")

	// Un usuario con ban global activo no entra a servidores sincronizados
	if enforceGlobalBan(s, m.GuildID, m.User) {
		return
	}

	settings, err := database.GetServerSettings(m.GuildID)
	if err != nil || settings.ModLogChannelID == "" {
		return
	}

	joinEmbed := &discordgo.MessageEmbed{
		Title:       "📥 Nuevo miembro",
		Description: fmt.Sprintf("<@%s> se unió al servidor.", m.User.ID),
		Color:       0x00ff00,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: m.User.AvatarURL("128"),
		},
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Usuario",
				Value:  fmt.Sprintf("%s (`%s`)", m.User.Username, m.User.ID),
				Inline: true,
			},
			{
				Name:   "Cuenta creada",
				Value:  fmt.Sprintf("<t:%d:R>", creationTime(m.User.ID).Unix()),
				Inline: true,
			},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if _, err := s.ChannelMessageSendEmbed(settings.ModLogChannelID, joinEmbed); err != nil {
		logger.Debug(fmt.Sprintf("Error enviando log de entrada: %v", err), "Member")
	}
}

// enforceGlobalBan bans a joining member that carries an active registry
// record, provided the guild opted into sync. Reports whether it acted.
func enforceGlobalBan(s *discordgo.Session, guildID string, user *discordgo.User) bool {
	enabled, err := database.GuildSyncEnabled(guildID)
	if err != nil || !enabled {
		return false
	}

	record, err := database.GetGlobalBan(user.ID)
	if err != nil || record == nil {
		return false
	}

	reason := "Global ban sync: " + record.Reason
	if !record.IsPermanent() {
		reason += " (expira " + record.ExpiresAt.UTC().Format("2006-01-02 15:04") + " UTC)"
	}
	if err := s.GuildBanCreateWithReason(guildID, user.ID, reason, 0); err != nil {
		logger.Error(fmt.Sprintf("No se pudo aplicar ban global a %s en %s: %v",
			user.Username, guildID, err), "Member")
		return false
	}

	logger.Info(fmt.Sprintf("🔨 Ban global aplicado al entrar: %s en %s", user.Username, guildID), "Member")
	return true
}

// creationTime derives the account creation instant from a snowflake ID.
func creationTime(id string) time.Time {
	ts, err := discordgo.SnowflakeTimestamp(id)
	if err != nil {
		return time.Time{}
	}
	return ts
}

// onGuildMemberRemove is called when a member leaves the server
func onGuildMemberRemove(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	logger.Info(fmt.Sprintf("👋 Adiós: %s salió del servidor %s",
		m.User.Username, m.GuildID), "Member")

	settings, err := database.GetServerSettings(m.GuildID)
	if err != nil || settings.ModLogChannelID == "" {
		return
	}

	leaveEmbed := &discordgo.MessageEmbed{
		Description: fmt.Sprintf("📤 **%s** salió del servidor.", m.User.Username),
		Color:       0xe74c3c,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: m.User.AvatarURL("64"),
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if _, err := s.ChannelMessageSendEmbed(settings.ModLogChannelID, leaveEmbed); err != nil {
		logger.Debug(fmt.Sprintf("Error enviando log de salida: %v", err), "Member")
	}
}

// onGuildMemberUpdate keeps the flag marker on flagged members' nicknames
func onGuildMemberUpdate(s *discordgo.Session, m *discordgo.GuildMemberUpdate) {
	cfg := config.Get()
	if cfg == nil || cfg.FlagRoleID == "" {
		return
	}

	flagged := false
	for _, roleID := range m.Roles {
		if roleID == cfg.FlagRoleID {
			flagged = true
			break
		}
	}
	if !flagged {
		return
	}

	current := m.Nick
	if current == "" {
		current = m.User.Username
	}

	nick, changed := discord.FlagNickname(current)
	if !changed {
		return
	}

	if err := s.GuildMemberNickname(m.GuildID, m.User.ID, nick); err != nil {
		logger.Debug(fmt.Sprintf("No se pudo restaurar el marcador de flag para %s: %v",
			m.User.Username, err), "Member")
		return
	}

	logger.Debug(fmt.Sprintf("✏️ Marcador de flag restaurado: %s", m.User.Username), "Member")
}
