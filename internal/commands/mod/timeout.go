// Package mod - /mod timeout command
package mod

import (
	"fmt"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/errors"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/SDHSDevs/SDHSBotGo/pkg/models"
	"github.com/SDHSDevs/SDHSBotGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// maxTimeoutSeconds is the longest timeout Discord accepts (28 días)
const maxTimeoutSeconds = 28 * 86400

// createTimeoutCommand creates the /mod timeout subcommand
func createTimeoutCommand() *discord.Command {
	return discord.NewCommand(
		"timeout",
		"Silencia temporalmente a un usuario",
		"mod",
		timeoutHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a silenciar",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "duracion",
			Description: "Duración del timeout (ej: 10m, 2h, 1d)",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón del timeout",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		WithBotPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// timeoutHandler handles the /mod timeout command
func timeoutHandler(ctx *discord.CommandContext) error {
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

		durationStr := ctx.GetStringOption("duracion")
		seconds, err := moderation.ParseDuration(durationStr)
		if err != nil || seconds <= 0 || seconds > maxTimeoutSeconds {
			ctx.ReplyEphemeral("❌ Duración inválida. Usa el formato `<número><m|h|d>`, entre 1m y 28d.")
			return
		}

		reason := ctx.GetStringOption("razon")
		if reason == "" {
			reason = "Sin razón especificada"
		}

		if err := ctx.Defer(); err != nil {
			return
		}

		until := time.Now().Add(time.Duration(seconds) * time.Second)
		if err := ctx.Session.GuildMemberTimeout(ctx.Interaction.GuildID, user.ID, &until); err != nil {
			logger.Error(fmt.Sprintf("Error aplicando timeout a %s: %v", user.ID, err), "CMD-Timeout")
			ctx.EditReply(fmt.Sprintf("❌ No se pudo silenciar a **%s**.\nError: `%v`", user.String(), err))
			return
		}

		caseID, err := database.AddCase(ctx.Interaction.GuildID, user.ID, ctx.User().ID, models.ActionTimeout, reason,
			map[string]interface{}{"duration_seconds": seconds})
		if err != nil {
			logger.Error(fmt.Sprintf("Error registrando caso de timeout: %v", err), "CMD-Timeout")
		}

		guildName := ctx.Interaction.GuildID
		if guild := ctx.Guild(); guild != nil {
			guildName = guild.Name
		}
		sendDM(ctx, user.ID, &discordgo.MessageEmbed{
			Title: "🔇 - Has sido silenciado",
			Color: 0xF39C12,
			Description: fmt.Sprintf(
				"⚒ - **Servidor:** %s\n"+
					"📝 - **Razón:** %s\n"+
					"⏱ - **Hasta:** <t:%d:F>",
				guildName, reason, until.Unix(),
			),
			Footer: dmFooter(ctx),
		})

		ctx.EditReplyEmbed(&discordgo.MessageEmbed{
			Title:       "✅ Usuario silenciado",
			Description: fmt.Sprintf("**%s** no podrá hablar hasta <t:%d:F>.", user.String(), until.Unix()),
			Color:       0x00FF00,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Duración", Value: durationStr, Inline: true},
				{Name: "Razón", Value: reason, Inline: true},
				{Name: "Caso", Value: caseRef(caseID), Inline: true},
			},
			Footer:    requestedBy(ctx),
			Timestamp: time.Now().Format(time.RFC3339),
		})

		sendModLog(ctx, &discordgo.MessageEmbed{
			Title: "🔇 Timeout aplicado",
			Color: 0xF39C12,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Usuario", Value: fmt.Sprintf("<@%s> (`%s`)", user.ID, user.ID), Inline: true},
				{Name: "Moderador", Value: fmt.Sprintf("<@%s>", ctx.User().ID), Inline: true},
				{Name: "Hasta", Value: fmt.Sprintf("<t:%d:F>", until.Unix()), Inline: true},
				{Name: "Razón", Value: reason, Inline: false},
			},
			Timestamp: time.Now().Format(time.RFC3339),
		})

		broadcastCase(ctx.Interaction.GuildID, caseID, models.ActionTimeout, user.ID, ctx.User().ID, reason)
	}()

	return nil
}
