// Package mod - /mod lock command
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

// setChannelLock flips the SendMessages bit of the @everyone overwrite
// in one channel, preserving every other bit. It reports whether the
// overwrite actually changed.
func setChannelLock(s *discordgo.Session, guildID, channelID string, lock bool) (bool, error) {
	channel, err := s.State.Channel(channelID)
	if err != nil {
		channel, err = s.Channel(channelID)
		if err != nil {
			return false, err
		}
	}

	var allow, deny int64
	for _, ow := range channel.PermissionOverwrites {
		// El overwrite de @everyone usa el ID del guild
		if ow.ID == guildID && ow.Type == discordgo.PermissionOverwriteTypeRole {
			allow = ow.Allow
			deny = ow.Deny
			break
		}
	}

	if lock {
		if deny&discordgo.PermissionSendMessages != 0 {
			return false, nil
		}
		allow &^= discordgo.PermissionSendMessages
		deny |= discordgo.PermissionSendMessages
	} else {
		if deny&discordgo.PermissionSendMessages == 0 {
			return false, nil
		}
		deny &^= discordgo.PermissionSendMessages
	}

	err = s.ChannelPermissionSet(channelID, guildID, discordgo.PermissionOverwriteTypeRole, allow, deny)
	if err != nil {
		return false, err
	}
	return true, nil
}

// targetChannelID resolves the channel option, falling back to the
// channel the command was used in
func targetChannelID(ctx *discord.CommandContext) string {
	if ch := ctx.GetChannelOption("canal"); ch != nil {
		return ch.ID
	}
	return ctx.Interaction.ChannelID
}

// createLockCommand creates the /mod lock subcommand
func createLockCommand() *discord.Command {
	return discord.NewCommand(
		"lock",
		"Bloquea un canal para @everyone",
		"mod",
		lockHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "canal",
			Description:  "Canal a bloquear (por defecto el actual)",
			Required:     false,
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón del bloqueo",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionManageChannels).
		WithBotPermissions(discordgo.PermissionManageChannels).
		RequiresDatabase()
}

// lockHandler handles the /mod lock command
func lockHandler(ctx *discord.CommandContext) error {
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

		changed, err := setChannelLock(ctx.Session, ctx.Interaction.GuildID, channelID, true)
		if err != nil {
			logger.Error(fmt.Sprintf("Error bloqueando canal %s: %v", channelID, err), "CMD-Lock")
			ctx.EditReply(fmt.Sprintf("❌ No se pudo bloquear el canal <#%s>.\nError: `%v`", channelID, err))
			return
		}
		if !changed {
			ctx.EditReply(fmt.Sprintf("ℹ️ El canal <#%s> ya estaba bloqueado.", channelID))
			return
		}

		caseID, err := database.AddCase(ctx.Interaction.GuildID, "", ctx.User().ID, models.ActionChannelLock, reason,
			map[string]interface{}{"channel_id": channelID})
		if err != nil {
			logger.Error(fmt.Sprintf("Error registrando caso de lock: %v", err), "CMD-Lock")
		}

		ctx.EditReplyEmbed(&discordgo.MessageEmbed{
			Title:       "🔒 Canal bloqueado",
			Description: fmt.Sprintf("El canal <#%s> ha sido bloqueado.", channelID),
			Color:       0x95A5A6,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Razón", Value: reason, Inline: true},
				{Name: "Caso", Value: caseRef(caseID), Inline: true},
			},
			Footer:    requestedBy(ctx),
			Timestamp: time.Now().Format(time.RFC3339),
		})

		// Aviso en el canal bloqueado cuando no es el actual
		if channelID != ctx.Interaction.ChannelID {
			_, _ = ctx.Session.ChannelMessageSendEmbed(channelID, &discordgo.MessageEmbed{
				Title:       "🔒 Canal bloqueado",
				Description: fmt.Sprintf("**Razón:** %s", reason),
				Color:       0x95A5A6,
				Timestamp:   time.Now().Format(time.RFC3339),
			})
		}

		sendModLog(ctx, &discordgo.MessageEmbed{
			Title: "🔒 Canal bloqueado",
			Color: 0x95A5A6,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Canal", Value: fmt.Sprintf("<#%s>", channelID), Inline: true},
				{Name: "Moderador", Value: fmt.Sprintf("<@%s>", ctx.User().ID), Inline: true},
				{Name: "Razón", Value: reason, Inline: false},
			},
			Timestamp: time.Now().Format(time.RFC3339),
		})

		broadcastCase(ctx.Interaction.GuildID, caseID, models.ActionChannelLock, "", ctx.User().ID, reason)
	}()

	return nil
}
