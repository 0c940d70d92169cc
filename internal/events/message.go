// Package events provides event handlers for message events
package events

import (
	"fmt"
	"strings"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/automod"
	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/SDHSDevs/SDHSBotGo/pkg/models"
	"github.com/SDHSDevs/SDHSBotGo/pkg/promotion"
	"github.com/SDHSDevs/SDHSBotGo/pkg/roblox"
	"github.com/bwmarrin/discordgo"
)

// RegisterMessageEvents registers all message-related event handlers
func RegisterMessageEvents(eh *discord.EventHandler) {
	eh.OnMessageCreate(onMessageCreate)
	eh.OnMessageUpdate(onMessageUpdate)
	eh.OnMessageDelete(onMessageDelete)
}

// onMessageCreate is called when a new message is created
func onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignorar mensajes de bots y DMs
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	settings, err := database.GetServerSettings(m.GuildID)
	if err != nil {
		logger.Debug(fmt.Sprintf("No se pudo leer la configuración de %s: %v", m.GuildID, err), "Message")
		return
	}

	// Mensajes de promoción en su canal no pasan por automod
	if settings.AutopromotionChannelID != "" && m.ChannelID == settings.AutopromotionChannelID {
		if handleAutopromotion(s, m) {
			return
		}
	}

	checkMessageAutomod(s, m.Message, settings, true)
}

// onMessageUpdate re-runs the static automod rules on edited messages
func onMessageUpdate(s *discordgo.Session, m *discordgo.MessageUpdate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	settings, err := database.GetServerSettings(m.GuildID)
	if err != nil {
		return
	}

	checkMessageAutomod(s, m.Message, settings, false)
}

// onMessageDelete is called when a message is deleted
func onMessageDelete(s *discordgo.Session, m *discordgo.MessageDelete) {
	logger.Debug(fmt.Sprintf("🗑️ Mensaje eliminado: ID %s en canal %s",
		m.ID, m.ChannelID), "Message")
}

// checkMessageAutomod runs the automod pipeline over one guild message.
// The AI verdict is only consulted for fresh messages, not edits.
func checkMessageAutomod(s *discordgo.Session, msg *discordgo.Message, settings *models.ServerSettings, fresh bool) {
	if !settings.AutomodEnabled || msg.Content == "" {
		return
	}

	checker := automod.Get()
	if checker == nil {
		return
	}

	member := messageMember(s, msg.GuildID, msg.Author.ID, msg.Member)
	if isExemptFromAutomod(s, msg, member, settings) {
		return
	}

	violation := checker.Check(automod.Message{
		GuildID: msg.GuildID,
		UserID:  msg.Author.ID,
		Content: msg.Content,
		At:      time.Now(),
	}, automod.Config{
		SpamLimit:  int(settings.AutomodSpamLimit),
		SpamWindow: time.Duration(settings.AutomodSpamWindow) * time.Second,
	})

	if violation == nil && fresh {
		violation = checker.CheckAI(msg.Content)
	}

	if violation != nil {
		applyAutomodAction(s, msg, settings, violation)
	}
}

// messageMember returns the author's member object, preferring what the
// gateway already delivered with the message.
func messageMember(s *discordgo.Session, guildID, userID string, attached *discordgo.Member) *discordgo.Member {
	if attached != nil {
		return attached
	}
	if member, err := s.State.Member(guildID, userID); err == nil {
		return member
	}
	member, err := s.GuildMember(guildID, userID)
	if err != nil {
		return nil
	}
	return member
}

// isExemptFromAutomod skips protected users, exempt roles and moderators
func isExemptFromAutomod(s *discordgo.Session, msg *discordgo.Message, member *discordgo.Member, settings *models.ServerSettings) bool {
	for _, id := range settings.ProtectedUserIDs {
		if id == msg.Author.ID {
			return true
		}
	}

	if member != nil {
		for _, roleID := range member.Roles {
			for _, exempt := range settings.AutomodExemptRoleIDs {
				if roleID == exempt {
					return true
				}
			}
			for _, allowed := range settings.ModerationAllowedRoleIDs {
				if roleID == allowed {
					return true
				}
			}
		}
	}

	if guild, err := s.State.Guild(msg.GuildID); err == nil && guild.OwnerID == msg.Author.ID {
		return true
	}

	perms, err := s.UserChannelPermissions(msg.Author.ID, msg.ChannelID)
	if err == nil && perms&discordgo.PermissionAdministrator != 0 {
		return true
	}

	return false
}

var violationLabels = map[automod.ViolationKind]string{
	automod.ViolationProfanity: "Lenguaje inapropiado",
	automod.ViolationInvite:    "Invitación de Discord",
	automod.ViolationGroupAd:   "Anuncio de grupo externo",
	automod.ViolationSpam:      "Spam",
	automod.ViolationAIFlagged: "Contenido señalado por IA",
}

// applyAutomodAction deletes the message, times the author out and logs
// the violation when logging is enabled.
func applyAutomodAction(s *discordgo.Session, msg *discordgo.Message, settings *models.ServerSettings, violation *automod.Violation) {
	if err := s.ChannelMessageDelete(msg.ChannelID, msg.ID); err != nil {
		logger.Debug(fmt.Sprintf("No se pudo borrar el mensaje %s: %v", msg.ID, err), "AutoMod")
	}

	if settings.AutomodMuteDuration > 0 {
		until := time.Now().Add(time.Duration(settings.AutomodMuteDuration) * time.Second)
		if err := s.GuildMemberTimeout(msg.GuildID, msg.Author.ID, &until); err != nil {
			logger.Debug(fmt.Sprintf("No se pudo aplicar timeout a %s: %v", msg.Author.ID, err), "AutoMod")
		}
	}

	label := violationLabels[violation.Kind]
	if label == "" {
		label = string(violation.Kind)
	}

	logger.Info(fmt.Sprintf("🛡️ AutoMod: %s de %s en %s", label, msg.Author.Username, msg.GuildID), "AutoMod")

	if !settings.AutomodLoggingEnabled || settings.AutomodLogChannelID == "" {
		return
	}

	content := msg.Content
	if len(content) > 900 {
		content = content[:900] + "…"
	}

	embed := &discordgo.MessageEmbed{
		Title: "🛡️ AutoMod",
		Color: 0xe67e22,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Usuario",
				Value:  fmt.Sprintf("<@%s> (`%s`)", msg.Author.ID, msg.Author.ID),
				Inline: true,
			},
			{
				Name:   "Regla",
				Value:  label,
				Inline: true,
			},
			{
				Name:  "Mensaje",
				Value: "```" + strings.ReplaceAll(content, "```", "'''") + "```",
			},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	if violation.Detail != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Detalle",
			Value:  violation.Detail,
			Inline: true,
		})
	}

	if _, err := s.ChannelMessageSendEmbed(settings.AutomodLogChannelID, embed); err != nil {
		logger.Debug(fmt.Sprintf("Error enviando log de automod: %v", err), "AutoMod")
	}
}

// handleAutopromotion parses a "Passed: ..." staff message, waits for a ✅
// confirmation and applies the Roblox promotions. Reports whether the
// message was claimed by the promotion flow.
func handleAutopromotion(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	usernames := promotion.ParsePassedList(m.Content)
	if len(usernames) == 0 {
		return false
	}

	mgr := promotion.Get()
	if mgr == nil {
		return false
	}

	if roblox.Get() == nil {
		logger.Warn("Promoción ignorada: el cliente de Roblox no está configurado", "Promotion")
		return false
	}

	pending := mgr.Register(m.ID, m.ChannelID, usernames)

	if err := s.MessageReactionAdd(m.ChannelID, m.ID, "⏳"); err != nil {
		logger.Debug(fmt.Sprintf("Error agregando reacción: %v", err), "Promotion")
	}

	logger.Info(fmt.Sprintf("⏳ Promoción pendiente de %d usuario(s) en %s", len(usernames), m.GuildID), "Promotion")

	go func() {
		defer mgr.Remove(m.ID)

		moderatorID, approved := pending.Wait(promotion.ApprovalTimeout)
		if !approved {
			if _, err := s.ChannelMessageSend(m.ChannelID, "⏱️ La promoción expiró sin confirmación del staff."); err != nil {
				logger.Debug(fmt.Sprintf("Error notificando expiración: %v", err), "Promotion")
			}
			return
		}

		outcomes := promotion.PromoteAll(roblox.Get(), usernames)

		var lines []string
		promoted := 0
		for _, outcome := range outcomes {
			if outcome.Err != nil {
				lines = append(lines, fmt.Sprintf("❌ **%s**: %v", outcome.Username, outcome.Err))
				continue
			}
			promoted++
			lines = append(lines, fmt.Sprintf("✅ **%s**: %s → %s", outcome.Username, outcome.OldRank, outcome.NewRank))
		}

		embed := &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("📈 Promociones aplicadas (%d/%d)", promoted, len(outcomes)),
			URL:         "https://www.roblox.com/groups/" + roblox.Get().GroupID(),
			Description: strings.Join(lines, "\n"),
			Color:       0x2ecc71,
			Footer: &discordgo.MessageEmbedFooter{
				Text: "💫 Developed by SDHS Devs | SDHS Bot Go",
			},
			Timestamp: time.Now().Format(time.RFC3339),
		}
		if promoted < len(outcomes) {
			embed.Color = 0xe67e22
		}

		if _, err := s.ChannelMessageSendEmbed(m.ChannelID, embed); err != nil {
			logger.Error(fmt.Sprintf("Error enviando resumen de promociones: %v", err), "Promotion")
		}

		logger.Info(fmt.Sprintf("📈 Promociones confirmadas por %s: %d/%d aplicadas",
			moderatorID, promoted, len(outcomes)), "Promotion")
	}()

	return true
}
