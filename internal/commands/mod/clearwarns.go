// Package mod - /mod clearwarns command
package mod

import (
	"fmt"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/errors"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// createClearWarnsCommand creates the /mod clearwarns subcommand
func createClearWarnsCommand() *discord.Command {
	return discord.NewCommand(
		"clearwarns",
		"Elimina todas las advertencias de un usuario",
		"mod",
		clearWarnsHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario cuyas advertencias se eliminarán",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// clearWarnsHandler handles the /mod clearwarns command
func clearWarnsHandler(ctx *discord.CommandContext) error {
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

		if err := ctx.Defer(); err != nil {
			return
		}

		count, err := database.ClearWarnings(ctx.Interaction.GuildID, user.ID)
		if err != nil {
			logger.Error(fmt.Sprintf("Error limpiando advertencias: %v", err), "CMD-ClearWarns")
			ctx.EditReply("❌ No se pudieron eliminar las advertencias.")
			return
		}

		if count == 0 {
			ctx.EditReply(fmt.Sprintf("ℹ️ **%s** no tenía advertencias activas.", user.String()))
			return
		}

		ctx.EditReplyEmbed(&discordgo.MessageEmbed{
			Title:       "🧹 Advertencias eliminadas",
			Description: fmt.Sprintf("Se eliminaron **%d** advertencias de **%s**.", count, user.String()),
			Color:       0x00FF00,
			Footer:      requestedBy(ctx),
			Timestamp:   time.Now().Format(time.RFC3339),
		})

		sendModLog(ctx, &discordgo.MessageEmbed{
			Title: "🧹 Advertencias eliminadas",
			Color: 0x2ECC71,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Usuario", Value: fmt.Sprintf("<@%s> (`%s`)", user.ID, user.ID), Inline: true},
				{Name: "Moderador", Value: fmt.Sprintf("<@%s>", ctx.User().ID), Inline: true},
				{Name: "Eliminadas", Value: fmt.Sprintf("%d", count), Inline: true},
			},
			Timestamp: time.Now().Format(time.RFC3339),
		})
	}()

	return nil
}
