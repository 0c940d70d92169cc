// Package mod - /mod untimeout command
package mod

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

// createUntimeoutCommand creates the /mod untimeout subcommand
func createUntimeoutCommand() *discord.Command {
	return discord.NewCommand(
		"untimeout",
		"Retira el timeout de un usuario",
		"mod",
		untimeoutHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario al que retirar el timeout",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		WithBotPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// untimeoutHandler handles the /mod untimeout command
func untimeoutHandler(ctx *discord.CommandContext) error {
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

		if err := ctx.Session.GuildMemberTimeout(ctx.Interaction.GuildID, user.ID, nil); err != nil {
			logger.Error(fmt.Sprintf("Error retirando timeout de %s: %v", user.ID, err), "CMD-Untimeout")
			ctx.EditReply(fmt.Sprintf("❌ No se pudo retirar el timeout de **%s**.\nError: `%v`", user.String(), err))
			return
		}

		caseID, err := database.AddCase(ctx.Interaction.GuildID, user.ID, ctx.User().ID, models.ActionUntimeout, reason, nil)
		if err != nil {
			logger.Error(fmt.Sprintf("Error registrando caso de untimeout: %v", err), "CMD-Untimeout")
		}

		ctx.EditReplyEmbed(&discordgo.MessageEmbed{
			Title:       "✅ Timeout retirado",
			Description: fmt.Sprintf("**%s** puede volver a hablar.", user.String()),
			Color:       0x2ECC71,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Razón", Value: reason, Inline: true},
				{Name: "Caso", Value: caseRef(caseID), Inline: true},
			},
			Footer:    requestedBy(ctx),
			Timestamp: time.Now().Format(time.RFC3339),
		})

		sendModLog(ctx, &discordgo.MessageEmbed{
			Title: "🔊 Timeout retirado",
			Color: 0x2ECC71,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Usuario", Value: fmt.Sprintf("<@%s> (`%s`)", user.ID, user.ID), Inline: true},
				{Name: "Moderador", Value: fmt.Sprintf("<@%s>", ctx.User().ID), Inline: true},
				{Name: "Razón", Value: reason, Inline: false},
			},
			Timestamp: time.Now().Format(time.RFC3339),
		})

		broadcastCase(ctx.Interaction.GuildID, caseID, models.ActionUntimeout, user.ID, ctx.User().ID, reason)
	}()

	return nil
}
