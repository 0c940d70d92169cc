// Package mod - /mod unban command
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

// createUnbanCommand creates the /mod unban subcommand
func createUnbanCommand() *discord.Command {
	return discord.NewCommand(
		"unban",
		"Levanta el ban de un usuario",
		"mod",
		unbanHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a desbanear",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón del desbaneo",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionBanMembers).
		WithBotPermissions(discordgo.PermissionBanMembers).
		RequiresDatabase()
}

// unbanHandler handles the /mod unban command
func unbanHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

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

		if err := ctx.Defer(); err != nil {
			return
		}

		mod := moderation.Get()
		if mod == nil {
			ctx.EditReply("❌ El sistema de moderación no está disponible.")
			return
		}

		caseID, err := mod.Unban(ctx.Interaction.GuildID, user.ID, ctx.User().ID, reason)
		if err != nil {
			if gbe, ok := err.(*moderation.GuildBanError); ok && gbe.Kind == moderation.BanErrorNotFound {
				ctx.EditReply(fmt.Sprintf("❌ **%s** no está baneado en este servidor.", user.String()))
				return
			}
			logger.Error(fmt.Sprintf("Error desbaneando a %s: %v", user.ID, err), "CMD-Unban")
			ctx.EditReply(fmt.Sprintf("❌ No se pudo desbanear a **%s**.\nError: `%v`", user.String(), err))
			return
		}

		ctx.EditReplyEmbed(&discordgo.MessageEmbed{
			Title:       "✅ Ban levantado",
			Description: fmt.Sprintf("**%s** ha sido desbaneado.", user.String()),
			Color:       0x2ECC71,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Razón", Value: reason, Inline: true},
				{Name: "Caso", Value: fmt.Sprintf("`%s`", caseID), Inline: true},
			},
			Footer:    requestedBy(ctx),
			Timestamp: time.Now().Format(time.RFC3339),
		})

		sendModLog(ctx, &discordgo.MessageEmbed{
			Title: "🔓 Ban levantado",
			Color: 0x2ECC71,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Usuario", Value: fmt.Sprintf("<@%s> (`%s`)", user.ID, user.ID), Inline: true},
				{Name: "Moderador", Value: fmt.Sprintf("<@%s>", ctx.User().ID), Inline: true},
				{Name: "Caso", Value: fmt.Sprintf("`%s`", caseID), Inline: true},
				{Name: "Razón", Value: reason, Inline: false},
			},
			Timestamp: time.Now().Format(time.RFC3339),
		})

		broadcastCase(ctx.Interaction.GuildID, caseID, models.ActionUnban, user.ID, ctx.User().ID, reason)
	}()

	return nil
}
