// Package mod - /mod kick command
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

// createKickCommand creates the /mod kick subcommand
func createKickCommand() *discord.Command {
	return discord.NewCommand(
		"kick",
		"Expulsa a un usuario del servidor",
		"mod",
		kickHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a expulsar",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón de la expulsión",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionKickMembers).
		WithBotPermissions(discordgo.PermissionKickMembers).
		RequiresDatabase()
}

// kickHandler handles the /mod kick command
func kickHandler(ctx *discord.CommandContext) error {
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

		// MD antes de expulsar
		guildName := ctx.Interaction.GuildID
		if guild := ctx.Guild(); guild != nil {
			guildName = guild.Name
		}
		sendDM(ctx, user.ID, &discordgo.MessageEmbed{
			Title: "👢 - Has sido expulsado",
			Color: 0xE67E22,
			Description: fmt.Sprintf(
				"⚒ - **Servidor:** %s\n"+
					"📝 - **Razón:** %s\n\n"+
					"🕒 - **Fecha:** <t:%d:F>",
				guildName, reason, time.Now().Unix(),
			),
			Footer: dmFooter(ctx),
		})

		err := ctx.Session.GuildMemberDeleteWithReason(ctx.Interaction.GuildID, user.ID, reason)
		if err != nil {
			logger.Error(fmt.Sprintf("Error expulsando a %s: %v", user.ID, err), "CMD-Kick")
			ctx.EditReply(fmt.Sprintf("❌ No se pudo expulsar a **%s**.\nError: `%v`", user.String(), err))
			return
		}

		caseID, err := database.AddCase(ctx.Interaction.GuildID, user.ID, ctx.User().ID, models.ActionKick, reason, nil)
		if err != nil {
			logger.Error(fmt.Sprintf("Error registrando caso de kick: %v", err), "CMD-Kick")
		}

		ctx.EditReplyEmbed(&discordgo.MessageEmbed{
			Title:       "✅ Usuario expulsado",
			Description: fmt.Sprintf("**%s** ha sido expulsado del servidor.", user.String()),
			Color:       0x00FF00,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Razón", Value: reason, Inline: true},
				{Name: "Caso", Value: caseRef(caseID), Inline: true},
			},
			Footer:    requestedBy(ctx),
			Timestamp: time.Now().Format(time.RFC3339),
		})

		sendModLog(ctx, &discordgo.MessageEmbed{
			Title: "👢 Usuario expulsado",
			Color: 0xE67E22,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Usuario", Value: fmt.Sprintf("<@%s> (`%s`)", user.ID, user.ID), Inline: true},
				{Name: "Moderador", Value: fmt.Sprintf("<@%s>", ctx.User().ID), Inline: true},
				{Name: "Caso", Value: caseRef(caseID), Inline: true},
				{Name: "Razón", Value: reason, Inline: false},
			},
			Timestamp: time.Now().Format(time.RFC3339),
		})

		broadcastCase(ctx.Interaction.GuildID, caseID, models.ActionKick, user.ID, ctx.User().ID, reason)
	}()

	return nil
}
