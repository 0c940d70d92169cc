// Package mod - /mod globalunban command
package mod

import (
	"fmt"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/errors"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/SDHSDevs/SDHSBotGo/pkg/moderation"
	"github.com/SDHSDevs/SDHSBotGo/pkg/web"
	"github.com/bwmarrin/discordgo"
)

// createGlobalUnbanCommand creates the /mod globalunban subcommand
func createGlobalUnbanCommand() *discord.Command {
	return discord.NewCommand(
		"globalunban",
		"Levanta un ban global en toda la red de servidores",
		"mod",
		globalUnbanHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a desbanear globalmente",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón del desbaneo",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionBanMembers).
		RequiresDatabase()
}

// globalUnbanHandler handles the /mod globalunban command
func globalUnbanHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		if !requireModerator(ctx) {
			return
		}

		mod := moderation.Get()
		if mod == nil {
			ctx.ReplyEphemeral("❌ El sistema de moderación no está disponible.")
			return
		}
		if !mod.IsAdmin(ctx.User().ID) {
			ctx.ReplyEphemeral("❌ No estás en la lista de administradores de baneos globales.")
			return
		}

		user := ctx.GetUserOption("usuario")
		if user == nil {
			ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
			return
		}

		reason := ctx.GetStringOption("razon")
		if reason == "" {
			reason = "Sin razón especificada"
		}

		embedProcess := &discordgo.MessageEmbed{
			Title:       "🌐 Levantando ban global...",
			Description: fmt.Sprintf("Desbaneando a **%s** en toda la red...\n\nEspere un momento...", user.String()),
			Color:       0xFFFF00,
			Footer:      requestedBy(ctx),
			Timestamp:   time.Now().Format(time.RFC3339),
		}
		if err := ctx.ReplyEmbed(embedProcess); err != nil {
			logger.Error(fmt.Sprintf("Error enviando reply inicial: %v", err), "CMD-GlobalUnban")
			return
		}

		result, err := mod.GlobalUnban(ctx.Interaction.GuildID, user.ID, ctx.User().ID, reason)
		if err != nil {
			switch {
			case err == moderation.ErrUnauthorized:
				ctx.EditReply("❌ No estás autorizado para baneos globales.")
			case err == moderation.ErrNoActiveGlobalBan:
				ctx.EditReply(fmt.Sprintf("ℹ️ **%s** no tiene un ban global activo.", user.String()))
			case result != nil:
				logger.Error(fmt.Sprintf("Unban global sin caso para %s: %v", user.ID, err), "CMD-GlobalUnban")
				ctx.EditReplyEmbed(&discordgo.MessageEmbed{
					Title:       "⚠️ Unban global incompleto",
					Description: fmt.Sprintf("El registro global de **%s** fue desactivado, pero no se pudo escribir el caso y el desbaneo no se aplicó en los servidores.\nError: `%v`", user.String(), err),
					Color:       0xE67E22,
				})
			default:
				logger.Error(fmt.Sprintf("Error en unban global de %s: %v", user.ID, err), "CMD-GlobalUnban")
				ctx.EditReplyEmbed(&discordgo.MessageEmbed{
					Title:       "❌ Error en unban global",
					Description: fmt.Sprintf("No se pudo levantar el ban global.\nError: `%v`", err),
					Color:       0xFF0000,
				})
			}
			return
		}

		fields := append([]*discordgo.MessageEmbedField{
			{Name: "Caso", Value: caseRef(result.CaseID), Inline: true},
			{Name: "Razón", Value: reason, Inline: false},
		}, fanOutFields(result.FanOut)...)

		color := 0x00FF00
		if len(result.FanOut.Failed) > 0 {
			color = 0xE67E22
		}
		ctx.EditReplyEmbed(&discordgo.MessageEmbed{
			Title:       "🌐 Ban global levantado",
			Description: fmt.Sprintf("**%s** ha sido desbaneado en toda la red.", user.String()),
			Color:       color,
			Fields:      fields,
			Footer:      requestedBy(ctx),
			Timestamp:   time.Now().Format(time.RFC3339),
		})

		sendModLog(ctx, &discordgo.MessageEmbed{
			Title: "🌐 Ban global levantado",
			Color: 0x2ECC71,
			Fields: append([]*discordgo.MessageEmbedField{
				{Name: "Usuario", Value: fmt.Sprintf("<@%s> (`%s`)", user.ID, user.ID), Inline: true},
				{Name: "Moderador", Value: fmt.Sprintf("<@%s>", ctx.User().ID), Inline: true},
				{Name: "Razón", Value: reason, Inline: false},
			}, fanOutFields(result.FanOut)...),
			Timestamp: time.Now().Format(time.RFC3339),
		})

		web.BroadcastEvent("global_unban", map[string]interface{}{
			"guild_id":     ctx.Interaction.GuildID,
			"case_id":      result.CaseID,
			"target_id":    user.ID,
			"moderator_id": ctx.User().ID,
			"reason":       reason,
			"applied":      len(result.FanOut.Succeeded),
			"failed":       len(result.FanOut.Failed),
		})

		logger.Info(fmt.Sprintf("🌐 Unban global de %s: %d aplicados, %d fallidos",
			user.ID, len(result.FanOut.Succeeded), len(result.FanOut.Failed)), "CMD-GlobalUnban")
	}()

	return nil
}
