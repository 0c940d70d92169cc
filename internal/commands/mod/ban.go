// Package mod - /mod ban command
package mod

import (
	"fmt"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/errors"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/SDHSDevs/SDHSBotGo/pkg/models"
	"github.com/SDHSDevs/SDHSBotGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createBanCommand creates the /mod ban subcommand
func createBanCommand() *discord.Command {
	return discord.NewCommand(
		"ban",
		"Banea a un usuario del servidor y registra el caso",
		"mod",
		banHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a banear",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón del ban",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionBanMembers).
		WithBotPermissions(discordgo.PermissionBanMembers).
		RequiresDatabase()
}

// banHandler handles the /mod ban command
func banHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		// 1. Permisos y argumentos
		if !requireModerator(ctx) {
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

		// 2. Feedback inicial
		embedProcess := &discordgo.MessageEmbed{
			Title:       "🔨 Baneando usuario...",
			Description: fmt.Sprintf("Baneando a **%s**...\n\nEspere un momento...", user.String()),
			Color:       0xFFFF00,
			Footer:      requestedBy(ctx),
			Timestamp:   time.Now().Format(time.RFC3339),
		}
		if err := ctx.ReplyEmbed(embedProcess); err != nil {
			logger.Error(fmt.Sprintf("Error enviando reply inicial: %v", err), "CMD-Ban")
			return
		}

		// 3. MD antes del ban, después ya no es posible
		guildName := ctx.Interaction.GuildID
		if guild := ctx.Guild(); guild != nil {
			guildName = guild.Name
		}
		sendDM(ctx, user.ID, &discordgo.MessageEmbed{
			Title: "🔨 - Has sido baneado",
			Color: 0xFF0000,
			Description: fmt.Sprintf(
				"⚒ - **Servidor:** %s\n"+
					"📝 - **Razón:** %s\n\n"+
					"🕒 - **Fecha:** <t:%d:F>",
				guildName, reason, time.Now().Unix(),
			),
			Footer: dmFooter(ctx),
		})

		// 4. Ban y caso
		mod := moderation.Get()
		if mod == nil {
			ctx.EditReply("❌ El sistema de moderación no está disponible.")
			return
		}

		caseID, err := mod.Ban(ctx.Interaction.GuildID, user.ID, ctx.User().ID, reason)
		if err != nil {
			logger.Error(fmt.Sprintf("Error baneando a %s: %v", user.ID, err), "CMD-Ban")
			ctx.EditReplyEmbed(&discordgo.MessageEmbed{
				Title:       "❌ Error al banear",
				Description: fmt.Sprintf("No se pudo banear a **%s**.\nError: `%v`", user.String(), err),
				Color:       0xFF0000,
			})
			return
		}

		// 5. Éxito
		ctx.EditReplyEmbed(&discordgo.MessageEmbed{
			Title:       "✅ Usuario baneado",
			Description: fmt.Sprintf("**%s** ha sido baneado del servidor.", user.String()),
			Color:       0x00FF00,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Razón", Value: reason, Inline: true},
				{Name: "Caso", Value: fmt.Sprintf("`%s`", caseID), Inline: true},
			},
			Footer:    requestedBy(ctx),
			Timestamp: time.Now().Format(time.RFC3339),
		})

		// 6. Log de moderación
		sendModLog(ctx, &discordgo.MessageEmbed{
			Title: "🔨 Usuario baneado",
			Color: 0xFF0000,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Usuario", Value: fmt.Sprintf("<@%s> (`%s`)", user.ID, user.ID), Inline: true},
				{Name: "Moderador", Value: fmt.Sprintf("<@%s>", ctx.User().ID), Inline: true},
				{Name: "Caso", Value: fmt.Sprintf("`%s`", caseID), Inline: true},
				{Name: "Razón", Value: reason, Inline: false},
			},
			Timestamp: time.Now().Format(time.RFC3339),
		})

		broadcastCase(ctx.Interaction.GuildID, caseID, models.ActionBan, user.ID, ctx.User().ID, reason)
	}()

	return nil
}
