// Package mod - /mod warn command
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

// warnMuteEvery is how many accumulated warnings trigger an automatic
// timeout of automod_mute_duration seconds
const warnMuteEvery = 3

// createWarnCommand creates the /mod warn subcommand
func createWarnCommand() *discord.Command {
	return discord.NewCommand(
		"warn",
		"Advierte a un usuario",
		"mod",
		warnHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a advertir",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón de la advertencia",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// warnHandler handles the /mod warn command
func warnHandler(ctx *discord.CommandContext) error {
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
			ctx.ReplyEphemeral("❌ Debes especificar una razón.")
			return
		}

		if err := ctx.Defer(); err != nil {
			return
		}

		// 2. Guardar la advertencia
		warn, count, err := database.AddWarn(ctx.Interaction.GuildID, user.ID, ctx.User().ID, reason)
		if err != nil {
			logger.Error(fmt.Sprintf("Error guardando advertencia: %v", err), "CMD-Warn")
			ctx.EditReply("❌ No se pudo guardar la advertencia.")
			return
		}

		caseID, err := database.AddCase(ctx.Interaction.GuildID, user.ID, ctx.User().ID, models.ActionWarn, reason,
			map[string]interface{}{"warn_id": warn.ID, "warn_count": count})
		if err != nil {
			logger.Error(fmt.Sprintf("Error registrando caso de warn: %v", err), "CMD-Warn")
		}

		// 3. Cada tercera advertencia acumulada silencia al usuario
		muted := false
		var mutedUntil time.Time
		if count > 0 && count%warnMuteEvery == 0 {
			muteSeconds := int64(3600)
			if settings, err := database.GetServerSettings(ctx.Interaction.GuildID); err == nil && settings != nil && settings.AutomodMuteDuration > 0 {
				muteSeconds = settings.AutomodMuteDuration
			}
			mutedUntil = time.Now().Add(time.Duration(muteSeconds) * time.Second)
			if err := ctx.Session.GuildMemberTimeout(ctx.Interaction.GuildID, user.ID, &mutedUntil); err != nil {
				logger.Warn(fmt.Sprintf("No se pudo silenciar a %s tras %d advertencias: %v", user.ID, count, err), "CMD-Warn")
			} else {
				muted = true
			}
		}

		// 4. MD al usuario
		guildName := ctx.Interaction.GuildID
		if guild := ctx.Guild(); guild != nil {
			guildName = guild.Name
		}
		dmDescription := fmt.Sprintf(
			"⚒ - **Servidor:** %s\n"+
				"📝 - **Razón:** %s\n"+
				"⚠️ - **Advertencias activas:** %d\n\n"+
				"🕒 - **Fecha:** <t:%d:F>",
			guildName, reason, count, time.Now().Unix(),
		)
		if muted {
			dmDescription += fmt.Sprintf("\n\n🔇 Has sido silenciado hasta <t:%d:F> por acumulación de advertencias.", mutedUntil.Unix())
		}
		sendDM(ctx, user.ID, &discordgo.MessageEmbed{
			Title:       "⚠️ - Has recibido una advertencia",
			Color:       0xFFCC00,
			Description: dmDescription,
			Footer:      dmFooter(ctx),
		})

		// 5. Éxito
		description := fmt.Sprintf("**%s** ha sido advertido. Advertencias activas: **%d**.", user.String(), count)
		if muted {
			description += fmt.Sprintf("\n🔇 Silenciado hasta <t:%d:F> por acumulación de advertencias.", mutedUntil.Unix())
		}
		ctx.EditReplyEmbed(&discordgo.MessageEmbed{
			Title:       "⚠️ Advertencia registrada",
			Description: description,
			Color:       0xFFCC00,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Razón", Value: reason, Inline: true},
				{Name: "ID", Value: fmt.Sprintf("`%s`", warn.ID), Inline: true},
				{Name: "Caso", Value: caseRef(caseID), Inline: true},
			},
			Footer:    requestedBy(ctx),
			Timestamp: time.Now().Format(time.RFC3339),
		})

		// 6. Log de moderación
		sendModLog(ctx, &discordgo.MessageEmbed{
			Title: "⚠️ Advertencia",
			Color: 0xFFCC00,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Usuario", Value: fmt.Sprintf("<@%s> (`%s`)", user.ID, user.ID), Inline: true},
				{Name: "Moderador", Value: fmt.Sprintf("<@%s>", ctx.User().ID), Inline: true},
				{Name: "Activas", Value: fmt.Sprintf("%d", count), Inline: true},
				{Name: "Razón", Value: reason, Inline: false},
			},
			Timestamp: time.Now().Format(time.RFC3339),
		})

		broadcastCase(ctx.Interaction.GuildID, caseID, models.ActionWarn, user.ID, ctx.User().ID, reason)
	}()

	return nil
}
