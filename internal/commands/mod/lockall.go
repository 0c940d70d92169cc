// Package mod - /mod lockall command
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

// createLockAllCommand creates the /mod lockall subcommand
func createLockAllCommand() *discord.Command {
	return discord.NewCommand(
		"lockall",
		"Bloquea todos los canales de texto del servidor",
		"mod",
		lockAllHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón del bloqueo masivo",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionManageChannels).
		WithBotPermissions(discordgo.PermissionManageChannels).
		RequiresDatabase()
}

// lockAllHandler handles the /mod lockall command
func lockAllHandler(ctx *discord.CommandContext) error {
	runMassLock(ctx, true)
	return nil
}

// runMassLock locks or unlocks every text channel of the guild and
// reports the aggregate. Shared by lockall and unlockall.
func runMassLock(ctx *discord.CommandContext, lock bool) {
	go func() {
		defer errors.RecoverMiddleware()()

		if !requireModerator(ctx) {
			return
		}

		reason := ctx.GetStringOption("razon")
		if reason == "" {
			reason = "Sin razón especificada"
		}

		verb := "Bloqueando"
		title := "🔒 Bloqueo masivo"
		action := models.ActionMassChannelLock
		if !lock {
			verb = "Desbloqueando"
			title = "🔓 Desbloqueo masivo"
			action = models.ActionMassChannelUnlock
		}

		embedProcess := &discordgo.MessageEmbed{
			Title:       title,
			Description: fmt.Sprintf("%s todos los canales de texto...\n\nEspere un momento...", verb),
			Color:       0xFFFF00,
			Footer:      requestedBy(ctx),
			Timestamp:   time.Now().Format(time.RFC3339),
		}
		if err := ctx.ReplyEmbed(embedProcess); err != nil {
			logger.Error(fmt.Sprintf("Error enviando reply inicial: %v", err), "CMD-LockAll")
			return
		}

		channels, err := ctx.Session.GuildChannels(ctx.Interaction.GuildID)
		if err != nil {
			logger.Error(fmt.Sprintf("Error listando canales: %v", err), "CMD-LockAll")
			ctx.EditReply("❌ No se pudieron listar los canales del servidor.")
			return
		}

		changed := 0
		skipped := 0
		failed := 0
		for _, channel := range channels {
			if channel.Type != discordgo.ChannelTypeGuildText {
				continue
			}
			ok, err := setChannelLock(ctx.Session, ctx.Interaction.GuildID, channel.ID, lock)
			switch {
			case err != nil:
				failed++
				logger.Warn(fmt.Sprintf("Fallo en canal %s: %v", channel.ID, err), "CMD-LockAll")
			case ok:
				changed++
			default:
				skipped++
			}
		}

		caseID, err := database.AddCase(ctx.Interaction.GuildID, "", ctx.User().ID, action, reason,
			map[string]interface{}{"channels_changed": changed, "channels_failed": failed})
		if err != nil {
			logger.Error(fmt.Sprintf("Error registrando caso masivo: %v", err), "CMD-LockAll")
		}

		color := 0x00FF00
		if failed > 0 {
			color = 0xE67E22
		}
		ctx.EditReplyEmbed(&discordgo.MessageEmbed{
			Title: title,
			Description: fmt.Sprintf("**Canales modificados:** %d\n**Sin cambios:** %d\n**Fallidos:** %d",
				changed, skipped, failed),
			Color: color,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Razón", Value: reason, Inline: true},
				{Name: "Caso", Value: caseRef(caseID), Inline: true},
			},
			Footer:    requestedBy(ctx),
			Timestamp: time.Now().Format(time.RFC3339),
		})

		sendModLog(ctx, &discordgo.MessageEmbed{
			Title: title,
			Color: color,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Moderador", Value: fmt.Sprintf("<@%s>", ctx.User().ID), Inline: true},
				{Name: "Modificados", Value: fmt.Sprintf("%d", changed), Inline: true},
				{Name: "Fallidos", Value: fmt.Sprintf("%d", failed), Inline: true},
				{Name: "Razón", Value: reason, Inline: false},
			},
			Timestamp: time.Now().Format(time.RFC3339),
		})

		broadcastCase(ctx.Interaction.GuildID, caseID, action, "", ctx.User().ID, reason)
	}()
}
