// Package mod - /mod flag command
package mod

import (
	"fmt"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/config"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/errors"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// createFlagCommand creates the /mod flag subcommand
func createFlagCommand() *discord.Command {
	return discord.NewCommand(
		"flag",
		"Marca a un usuario bajo observación con rol y prefijo",
		"mod",
		flagHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario a marcar",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionManageRoles).
		WithBotPermissions(discordgo.PermissionManageRoles | discordgo.PermissionManageNicknames)
}

// flagHandler handles the /mod flag command
func flagHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		if !requireModerator(ctx) {
			return
		}

		cfg := config.Get()
		if cfg == nil || cfg.FlagRoleID == "" {
			ctx.ReplyEphemeral("❌ El rol de flag no está configurado.")
			return
		}

		user := ctx.GetUserOption("usuario")
		if user == nil {
			ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
			return
		}

		member, err := ctx.Session.GuildMember(ctx.Interaction.GuildID, user.ID)
		if err != nil {
			ctx.ReplyEphemeral("❌ El usuario no está en este servidor.")
			return
		}

		for _, roleID := range member.Roles {
			if roleID == cfg.FlagRoleID {
				ctx.ReplyEphemeral(fmt.Sprintf("⚠️ **%s** ya está marcado.", user.String()))
				return
			}
		}

		if err := ctx.Defer(); err != nil {
			return
		}

		if err := ctx.Session.GuildMemberRoleAdd(ctx.Interaction.GuildID, user.ID, cfg.FlagRoleID); err != nil {
			logger.Error(fmt.Sprintf("Error asignando rol de flag a %s: %v", user.ID, err), "CMD-Flag")
			ctx.EditReply(fmt.Sprintf("❌ No se pudo asignar el rol de flag a **%s**.\nError: `%v`", user.String(), err))
			return
		}

		// Aplicar el prefijo de inmediato; el evento de actualización
		// de miembro lo mantiene si alguien lo quita.
		current := member.Nick
		if current == "" {
			current = user.Username
		}
		nickErr := ""
		if nick, changed := discord.FlagNickname(current); changed {
			if err := ctx.Session.GuildMemberNickname(ctx.Interaction.GuildID, user.ID, nick); err != nil {
				logger.Warn(fmt.Sprintf("No se pudo aplicar el prefijo de flag a %s: %v", user.ID, err), "CMD-Flag")
				nickErr = "\n⚠️ No se pudo cambiar el apodo; el prefijo se aplicará cuando sea posible."
			}
		}

		ctx.EditReplyEmbed(&discordgo.MessageEmbed{
			Title:       "🚩 Usuario marcado",
			Description: fmt.Sprintf("**%s** está ahora bajo observación.%s", user.String(), nickErr),
			Color:       0xE74C3C,
			Footer:      requestedBy(ctx),
			Timestamp:   time.Now().Format(time.RFC3339),
		})

		sendModLog(ctx, &discordgo.MessageEmbed{
			Title: "🚩 Usuario marcado",
			Color: 0xE74C3C,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Usuario", Value: fmt.Sprintf("<@%s> (`%s`)", user.ID, user.ID), Inline: true},
				{Name: "Moderador", Value: fmt.Sprintf("<@%s>", ctx.User().ID), Inline: true},
			},
			Timestamp: time.Now().Format(time.RFC3339),
		})
	}()

	return nil
}
