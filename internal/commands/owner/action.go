// Package owner - /owner action command
package owner

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/errors"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/SDHSDevs/SDHSBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createActionCommand creates the /owner action subcommand
func createActionCommand() *discord.Command {
	return discord.NewCommand(
		"action",
		"Busca un caso de moderación o una sesión de tryout por ID",
		"owner",
		actionHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "id",
			Description: "ID del caso o de la sesión",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "servidor",
			Description: "ID del servidor del caso (por defecto el actual)",
			Required:    false,
		},
	).RequiresDatabase().AsDev()
}

func actionHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		if !requireOwner(ctx) {
			return
		}

		recordID := ctx.GetStringOption("id")
		guildID := ctx.GetStringOption("servidor")
		if guildID == "" {
			guildID = ctx.Interaction.GuildID
		}

		ctx.Defer()

		// Primero el ledger de casos, después las sesiones de tryout
		modCase, err := database.GetCase(guildID, recordID)
		if err == nil {
			ctx.EditReplyEmbed(caseDumpEmbed(modCase))
			return
		}
		if err != database.ErrCaseNotFound {
			logger.Error(fmt.Sprintf("Error DB OwnerAction: %v", err), "CMD-OwnerAction")
			ctx.EditReply("❌ Error al consultar la base de datos.")
			return
		}

		session, err := database.GetTryoutSession(recordID)
		if err != nil {
			logger.Error(fmt.Sprintf("Error DB OwnerAction: %v", err), "CMD-OwnerAction")
			ctx.EditReply("❌ Error al consultar la base de datos.")
			return
		}
		if session == nil {
			ctx.EditReplyEmbed(&discordgo.MessageEmbed{
				Title:       "❌ Registro no encontrado",
				Description: fmt.Sprintf("No existe un caso ni una sesión de tryout con ID `%s`.", recordID),
				Color:       0xFF0000,
			})
			return
		}

		ctx.EditReplyEmbed(sessionDumpEmbed(session))
	}()

	return nil
}

func caseDumpEmbed(c *models.Case) *discordgo.MessageEmbed {
	target := "—"
	if c.TargetUserID != "" {
		target = fmt.Sprintf("<@%s> (`%s`)", c.TargetUserID, c.TargetUserID)
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Servidor", Value: fmt.Sprintf("`%s`", c.GuildID), Inline: true},
		{Name: "Acción", Value: string(c.ActionType), Inline: true},
		{Name: "Usuario", Value: target, Inline: true},
		{Name: "Moderador", Value: fmt.Sprintf("<@%s>", c.ModeratorID), Inline: true},
		{Name: "Fecha", Value: fmt.Sprintf("<t:%d:F>", c.CreatedAt.Unix()), Inline: true},
		{Name: "Razón", Value: c.Reason, Inline: false},
	}

	if len(c.Extra) > 0 {
		keys := make([]string, 0, len(c.Extra))
		for key := range c.Extra {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		var b strings.Builder
		for _, key := range keys {
			fmt.Fprintf(&b, "`%s`: %v\n", key, c.Extra[key])
		}
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Detalles", Value: b.String(), Inline: false})
	}

	return &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("📋 Caso %s", c.CaseID),
		Color:     0x3498DB,
		Fields:    fields,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

func sessionDumpEmbed(s *models.TryoutSession) *discordgo.MessageEmbed {
	status := "🟢 Activa"
	if s.Status == models.TryoutStatusEnded {
		status = fmt.Sprintf("🔴 Finalizada (<t:%d:R>)", s.EndedAt.Unix())
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "Servidor", Value: fmt.Sprintf("`%s`", s.GuildID), Inline: true},
		{Name: "Grupo", Value: fmt.Sprintf("%s (`%s`)", s.GroupName, s.GroupID), Inline: true},
		{Name: "Estado", Value: status, Inline: true},
		{Name: "Anfitrión", Value: fmt.Sprintf("<@%s>", s.HostID), Inline: true},
		{Name: "Creada", Value: fmt.Sprintf("<t:%d:F>", s.CreatedAt.Unix()), Inline: true},
		{Name: "Cierre", Value: fmt.Sprintf("<t:%d:F>", s.LockTimestamp.Unix()), Inline: true},
	}

	if s.EndReason != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Razón de cierre", Value: s.EndReason, Inline: false})
	}

	if len(s.Notes) > 0 {
		var b strings.Builder
		for _, note := range s.Notes {
			fmt.Fprintf(&b, "• <@%s> (<t:%d:R>): %s\n", note.ModeratorID, note.At.Unix(), note.Note)
		}
		value := b.String()
		if len(value) > 1024 {
			value = value[:1000] + "\n… (truncado)"
		}
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Notas", Value: value, Inline: false})
	}

	return &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("📣 Sesión de tryout %s", s.ID),
		Color:     0x3498DB,
		Fields:    fields,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}
