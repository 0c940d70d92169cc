// Package mod - /mod unlock command
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

// createUnlockCommand creates the /mod unlock subcommand
func createUnlockCommand() *discord.Command {
	return discord.NewCommand(
		"unlock",
		"Desbloquea un canal para @everyone",
		"mod",
		unlockHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "canal",
			Description:  "Canal a desbloquear (por defecto el actual)",
			Required:     false,
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón del desbloqueo",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionManageChannels).
		WithBotPermissions(discordgo.PermissionManageChannels).
		RequiresDatabase()
}

// unlockHandler handles the /mod unlock command
func unlockHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		if !requireModerator(ctx) {
			return
		}

		reason := ctx.GetStringOption("razon")
		if reason == "" {
			reason = "Sin razón especificada"
		}
		channelID := targetChannelID(ctx)

		if err := ctx.Defer(); err != nil {
			return
		}

		changed, err := setChannelLock(ctx.Session, ctx.Interaction.GuildID, channelID, false)
		if err != nil {
			logger.Error(fmt.Sprintf("Error desbloqueando canal %s: %v", channelID, err), "CMD-Unlock")
			ctx.EditReply(fmt.Sprintf("❌ No se pudo desbloquear el canal <#%s>.\nError: `%v`", channelID, err))
			return
		}
		if !changed {
			ctx.EditReply(fmt.Sprintf("ℹ️ El canal <#%s> no estaba bloqueado.", channelID))
			return
		}

		caseID, err := database.AddCase(ctx.Interaction.GuildID, "", ctx.User().ID, models.ActionChannelUnlock, reason,
			map[string]interface{}{"channel_id": channelID})
		if err != nil {
			logger.Error(fmt.Sprintf("Error registrando caso de unlock: %v", err), "CMD-Unlock")
		}

		ctx.EditReplyEmbed(&discordgo.MessageEmbed{
			Title:       "🔓 Canal desbloqueado",
			Description: fmt.Sprintf("El canal <#%s> ha sido desbloqueado.", channelID),
			Color:       0x2ECC71,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Razón", Value: reason, Inline: true},
				{Name: "Caso", Value: caseRef(caseID), Inline: true},
			},
			Footer:    requestedBy(ctx),
			Timestamp: time.Now().Format(time.RFC3339),
		})

		if channelID != ctx.Interaction.ChannelID {
			_, _ = ctx.Session.ChannelMessageSendEmbed(channelID, &discordgo.MessageEmbed{
				Title:     "🔓 Canal desbloqueado",
				Color:     0x2ECC71,
				Timestamp: time.Now().Format(time.RFC3339),
			})
		}

		sendModLog(ctx, &discordgo.MessageEmbed{
			Title: "🔓 Canal desbloqueado",
			Color: 0x2ECC71,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Canal", Value: fmt.Sprintf("<#%s>", channelID), Inline: true},
				{Name: "Moderador", Value: fmt.Sprintf("<@%s>", ctx.User().ID), Inline: true},
				{Name: "Razón", Value: reason, Inline: false},
			},
			Timestamp: time.Now().Format(time.RFC3339),
		})

		broadcastCase(ctx.Interaction.GuildID, caseID, models.ActionChannelUnlock, "", ctx.User().ID, reason)
	}()

	return nil
}
