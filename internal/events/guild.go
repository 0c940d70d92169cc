// Package events provides event handlers for guild (server) events
package events

import (
	"fmt"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/SDHSDevs/SDHSBotGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// RegisterGuildEvents registers all guild-related event handlers
func RegisterGuildEvents(eh *discord.EventHandler) {
	eh.OnGuildCreate(onGuildCreate)
	eh.OnGuildDelete(onGuildDelete)
}

// onGuildCreate is called when the bot joins a server. GuildCreate also
// fires for every guild on reconnect, so only recent joins are greeted.
func onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {

	Join := g.JoinedAt
	if Join.Compare(time.Now().Add(-10*time.Second)) < 0 {
		return
	}

	logger.Info(fmt.Sprintf("➕ Bot agregado a servidor: %s (ID: %s)", g.Name, g.ID), "Guild")
	logger.Debug(fmt.Sprintf("   Miembros: %d | Canales: %d", g.MemberCount, len(g.Channels)), "Guild")

	// Enviar mensaje de bienvenida al canal del sistema

	if g.SystemChannelID != "" {
		welcomeEmbed := &discordgo.MessageEmbed{
			Title:       "¡Gracias por agregarme! 🎉",
			Description: "Hola, soy **SDHS Bot**. Usa `/help` para ver todos mis comandos.",
			Color:       0x00ff00,
			Fields: []*discordgo.MessageEmbedField{
				{
					Name:   "🔧 Moderación",
					Value:  "Usa `/mod` para moderar",
					Inline: true,
				},
				{
					Name:   "📋 Tryouts",
					Value:  "Organiza sesiones con `/tryout`",
					Inline: true,
				},
				{
					Name:   "❓ Ayuda",
					Value:  "Usa `/help` para más información",
					Inline: true,
				},
			},
			Footer: &discordgo.MessageEmbedFooter{
				Text: "💫 Developed by SDHS Devs | SDHS Bot Go",
			},
			Timestamp: time.Now().Format(time.RFC3339),
		}

		_, err := s.ChannelMessageSendEmbed(g.SystemChannelID, welcomeEmbed)
		if err != nil {
			logger.Error(fmt.Sprintf("Error enviando mensaje de bienvenida: %v", err), "Guild")
		}
	}

	syncGlobalBans(g.ID, g.Name)
}

// syncGlobalBans applies the active global ban list to a freshly joined
// guild when it has sync enabled.
func syncGlobalBans(guildID, guildName string) {
	enabled, err := database.GuildSyncEnabled(guildID)
	if err != nil {
		logger.Warn(fmt.Sprintf("No se pudo leer la configuración de %s: %v", guildID, err), "Guild")
		return
	}
	if !enabled {
		return
	}

	orch := moderation.Get()
	if orch == nil {
		return
	}

	result, err := orch.SyncGuild(guildID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error sincronizando bans globales en %s: %v", guildName, err), "Guild")
		return
	}

	if result.Total > 0 {
		logger.Info(fmt.Sprintf("🔨 Bans globales sincronizados en %s: %d aplicados, %d fallidos",
			guildName, result.Applied, result.Failed), "Guild")
	}
}

// onGuildDelete is called when the bot is removed from a server
func onGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	logger.Info(fmt.Sprintf("➖ Bot removido del servidor ID: %s", g.ID), "Guild")
}
