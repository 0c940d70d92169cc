// Package mod - /mod globalban command
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

// fanOutListLimit is how many guild names are listed per embed field
const fanOutListLimit = 8

// createGlobalBanCommand creates the /mod globalban subcommand
func createGlobalBanCommand() *discord.Command {
	return discord.NewCommand(
		"globalban",
		"Banea a un usuario en toda la red de servidores",
		"mod",
		globalBanHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a banear globalmente",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón del ban global",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "duracion",
			Description: "Duración (ej: 12h, 30d). Vacío = permanente",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionBanMembers).
		RequiresDatabase()
}

// globalBanHandler handles the /mod globalban command
func globalBanHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		// 1. Doble puerta: moderador del servidor y lista de
		// administradores globales
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
		reason := ctx.GetStringOption("razon")
		duration := ctx.GetStringOption("duracion")

		if user == nil {
			ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
			return
		}
		if reason == "" {
			ctx.ReplyEphemeral("❌ Debes especificar una razón.")
			return
		}

		// 2. Feedback inicial
		embedProcess := &discordgo.MessageEmbed{
			Title:       "🌐 Aplicando ban global...",
			Description: fmt.Sprintf("Baneando a **%s** en toda la red...\n\nEspere un momento...", user.String()),
			Color:       0xFFFF00,
			Footer:      requestedBy(ctx),
			Timestamp:   time.Now().Format(time.RFC3339),
		}
		if err := ctx.ReplyEmbed(embedProcess); err != nil {
			logger.Error(fmt.Sprintf("Error enviando reply inicial: %v", err), "CMD-GlobalBan")
			return
		}

		// 3. Ejecutar el flujo completo
		result, err := mod.GlobalBan(moderation.GlobalBanRequest{
			GuildID:      ctx.Interaction.GuildID,
			TargetUserID: user.ID,
			ModeratorID:  ctx.User().ID,
			Reason:       reason,
			Duration:     duration,
		})
		if err != nil {
			switch {
			case err == moderation.ErrUnauthorized:
				ctx.EditReply("❌ No estás autorizado para baneos globales.")
			case err == moderation.ErrInvalidDuration:
				ctx.EditReply("❌ Duración inválida. Usa el formato `<número><m|h|d>` o déjala vacía.")
			case result != nil && result.RecordID != "":
				// El registro existe pero el caso no se escribió;
				// la aplicación en servidores no llegó a ejecutarse.
				logger.Error(fmt.Sprintf("Ban global sin caso para %s: %v", user.ID, err), "CMD-GlobalBan")
				ctx.EditReplyEmbed(&discordgo.MessageEmbed{
					Title:       "⚠️ Ban global incompleto",
					Description: fmt.Sprintf("El registro global de **%s** fue creado, pero no se pudo escribir el caso y el ban no se aplicó en los servidores.\nError: `%v`", user.String(), err),
					Color:       0xE67E22,
				})
			default:
				logger.Error(fmt.Sprintf("Error en ban global de %s: %v", user.ID, err), "CMD-GlobalBan")
				ctx.EditReplyEmbed(&discordgo.MessageEmbed{
					Title:       "❌ Error en ban global",
					Description: fmt.Sprintf("No se pudo aplicar el ban global.\nError: `%v`", err),
					Color:       0xFF0000,
				})
			}
			return
		}

		// 4. Embed de resultado agregado
		expires := "Permanente"
		if !result.ExpiresAt.IsZero() {
			expires = fmt.Sprintf("<t:%d:F>", result.ExpiresAt.Unix())
		}
		notified := "❌ No"
		if result.Notified {
			notified = "✅ Sí"
		}
		identity := result.RobloxIdentity
		if identity == "" {
			identity = "Desconocida"
		}

		fields := []*discordgo.MessageEmbedField{
			{Name: "Caso", Value: caseRef(result.CaseID), Inline: true},
			{Name: "Expira", Value: expires, Inline: true},
			{Name: "MD enviado", Value: notified, Inline: true},
			{Name: "Identidad Roblox", Value: identity, Inline: true},
			{Name: "Razón", Value: reason, Inline: false},
		}
		fields = append(fields, fanOutFields(result.FanOut)...)

		color := 0x00FF00
		if len(result.FanOut.Failed) > 0 {
			color = 0xE67E22
		}
		ctx.EditReplyEmbed(&discordgo.MessageEmbed{
			Title:       "🌐 Ban global aplicado",
			Description: fmt.Sprintf("**%s** ha sido baneado en toda la red.", user.String()),
			Color:       color,
			Fields:      fields,
			Footer:      requestedBy(ctx),
			Timestamp:   time.Now().Format(time.RFC3339),
		})

		// 5. Log de moderación y feed en vivo
		sendModLog(ctx, &discordgo.MessageEmbed{
			Title: "🌐 Ban global",
			Color: 0xFF0000,
			Fields: append([]*discordgo.MessageEmbedField{
				{Name: "Usuario", Value: fmt.Sprintf("<@%s> (`%s`)", user.ID, user.ID), Inline: true},
				{Name: "Moderador", Value: fmt.Sprintf("<@%s>", ctx.User().ID), Inline: true},
				{Name: "Expira", Value: expires, Inline: true},
				{Name: "Razón", Value: reason, Inline: false},
			}, fanOutFields(result.FanOut)...),
			Timestamp: time.Now().Format(time.RFC3339),
		})

		web.BroadcastEvent("global_ban", map[string]interface{}{
			"guild_id":        ctx.Interaction.GuildID,
			"case_id":         result.CaseID,
			"record_id":       result.RecordID,
			"target_id":       user.ID,
			"moderator_id":    ctx.User().ID,
			"reason":          reason,
			"roblox_identity": result.RobloxIdentity,
			"applied":         len(result.FanOut.Succeeded),
			"failed":          len(result.FanOut.Failed),
		})

		logger.Info(fmt.Sprintf("🌐 Ban global de %s: %d aplicados, %d fallidos",
			user.ID, len(result.FanOut.Succeeded), len(result.FanOut.Failed)), "CMD-GlobalBan")
	}()

	return nil
}

// fanOutFields renders a fan-out aggregate as embed fields
func fanOutFields(fan moderation.FanOutResult) []*discordgo.MessageEmbedField {
	fields := make([]*discordgo.MessageEmbedField, 0, 2)

	if len(fan.Succeeded) > 0 {
		value := ""
		for i, outcome := range fan.Succeeded {
			if i >= fanOutListLimit {
				value += fmt.Sprintf("… y %d más\n", len(fan.Succeeded)-fanOutListLimit)
				break
			}
			value += fmt.Sprintf("• %s\n", outcome.GuildName)
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("✅ Aplicado en %d servidores", len(fan.Succeeded)),
			Value: value,
		})
	}

	if len(fan.Failed) > 0 {
		value := ""
		for i, outcome := range fan.Failed {
			if i >= fanOutListLimit {
				value += fmt.Sprintf("… y %d más\n", len(fan.Failed)-fanOutListLimit)
				break
			}
			value += fmt.Sprintf("• %s: `%v`\n", outcome.GuildName, outcome.Err)
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("❌ Fallido en %d servidores", len(fan.Failed)),
			Value: value,
		})
	}

	if len(fields) == 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Servidores",
			Value: "Ningún servidor tiene la sincronización activada.",
		})
	}

	return fields
}
