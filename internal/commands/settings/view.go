// Package settings - /settings view command
package settings

import (
	"fmt"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/errors"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/SDHSDevs/SDHSBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createViewCommand creates the /settings view subcommand
func createViewCommand() *discord.Command {
	return discord.NewCommand(
		"view",
		"Muestra la configuración actual del servidor",
		"settings",
		viewHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "categoria",
			Description: "Categoría a mostrar",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "AutoMod", Value: "automod"},
				{Name: "Tryouts", Value: "tryouts"},
				{Name: "Moderación", Value: "moderacion"},
			},
		},
	).WithUserPermissions(discordgo.PermissionAdministrator).
		RequiresDatabase()
}

// viewHandler handles the /settings view command
func viewHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		if !requireAdmin(ctx) {
			return
		}

		category := ctx.GetStringOption("categoria")

		if err := ctx.Defer(); err != nil {
			return
		}

		settings, err := database.GetServerSettings(ctx.Interaction.GuildID)
		if err != nil || settings == nil {
			logger.Error(fmt.Sprintf("Error cargando configuración: %v", err), "CMD-Settings")
			ctx.EditReply("❌ No se pudo cargar la configuración del servidor.")
			return
		}

		var embed *discordgo.MessageEmbed
		switch category {
		case "automod":
			embed = automodViewEmbed(settings)
		case "tryouts":
			embed = tryoutsViewEmbed(settings)
		default:
			embed = moderationViewEmbed(settings)
		}

		embed.Color = 0x3498DB
		embed.Timestamp = time.Now().Format(time.RFC3339)
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: "💫 Developed by SDHS Devs | SDHS Bot Go",
		}
		ctx.EditReplyEmbed(embed)
	}()

	return nil
}

func automodViewEmbed(s *models.ServerSettings) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🛡️ Configuración de AutoMod",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Estado", Value: onOff(s.AutomodEnabled), Inline: true},
			{Name: "Logs", Value: onOff(s.AutomodLoggingEnabled), Inline: true},
			{Name: "Canal de logs", Value: channelOrNone(s.AutomodLogChannelID), Inline: true},
			{Name: "Duración del mute", Value: fmt.Sprintf("%d segundos", s.AutomodMuteDuration), Inline: true},
			{Name: "Límite de spam", Value: fmt.Sprintf("%d mensajes", s.AutomodSpamLimit), Inline: true},
			{Name: "Ventana de spam", Value: fmt.Sprintf("%d segundos", s.AutomodSpamWindow), Inline: true},
			{Name: "Roles exentos", Value: rolesOrNone(s.AutomodExemptRoleIDs), Inline: false},
			{Name: "Usuarios protegidos", Value: usersOrNone(s.ProtectedUserIDs), Inline: false},
		},
	}
}

func tryoutsViewEmbed(s *models.ServerSettings) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "📋 Configuración de Tryouts",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Canal de anuncios", Value: channelOrNone(s.TryoutChannelID), Inline: true},
			{Name: "Canal de logs", Value: channelOrNone(s.TryoutLogChannelID), Inline: true},
			{Name: "Canal de autopromoción", Value: channelOrNone(s.AutopromotionChannelID), Inline: true},
			{Name: "Roles requeridos", Value: rolesOrNone(s.TryoutRequiredRoleIDs), Inline: false},
			{Name: "Roles a mencionar", Value: rolesOrNone(s.TryoutPingRoleIDs), Inline: false},
		},
	}
}

func moderationViewEmbed(s *models.ServerSettings) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🔨 Configuración de Moderación",
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Canal de logs", Value: channelOrNone(s.ModLogChannelID), Inline: true},
			{Name: "Bans globales", Value: onOff(s.GlobalBansEnabled), Inline: true},
			{Name: "Roles de moderación", Value: rolesOrNone(s.ModerationAllowedRoleIDs), Inline: false},
		},
	}
}
