// Package mod - /mod case command
package mod

import (
	"fmt"
	"sort"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/errors"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// createCaseCommand creates the /mod case subcommand
func createCaseCommand() *discord.Command {
	return discord.NewCommand(
		"case",
		"Consulta un caso de moderación por ID",
		"mod",
		caseHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "id",
			Description: "ID del caso (ej: a3f9c2d41b)",
			Required:    true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		RequiresDatabase()
}

// caseHandler handles the /mod case command
func caseHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		if !requireModerator(ctx) {
			return
		}

		caseID := ctx.GetStringOption("id")
		if caseID == "" {
			ctx.ReplyEphemeral("❌ Debes especificar el ID del caso.")
			return
		}

		if err := ctx.Defer(); err != nil {
			return
		}

		entry, err := database.GetCase(ctx.Interaction.GuildID, caseID)
		if err == database.ErrCaseNotFound {
			ctx.EditReply(fmt.Sprintf("❌ No se encontró el caso `%s` en este servidor.", caseID))
			return
		}
		if err != nil {
			logger.Error(fmt.Sprintf("Error consultando caso %s: %v", caseID, err), "CMD-Case")
			ctx.EditReply("❌ Error al consultar la base de datos.")
			return
		}

		target := "—"
		if entry.TargetUserID != "" {
			target = fmt.Sprintf("<@%s> (`%s`)", entry.TargetUserID, entry.TargetUserID)
		}

		fields := []*discordgo.MessageEmbedField{
			{Name: "Acción", Value: string(entry.ActionType), Inline: true},
			{Name: "Usuario", Value: target, Inline: true},
			{Name: "Moderador", Value: fmt.Sprintf("<@%s>", entry.ModeratorID), Inline: true},
			{Name: "Fecha", Value: fmt.Sprintf("<t:%d:F>", entry.CreatedAt.Unix()), Inline: true},
			{Name: "Razón", Value: entry.Reason, Inline: false},
		}

		if len(entry.Extra) > 0 {
			// Orden estable para que el embed no baile entre consultas
			keys := make([]string, 0, len(entry.Extra))
			for k := range entry.Extra {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			details := ""
			for _, k := range keys {
				details += fmt.Sprintf("**%s:** %v\n", k, entry.Extra[k])
			}
			fields = append(fields, &discordgo.MessageEmbedField{Name: "Detalles", Value: details, Inline: false})
		}

		ctx.EditReplyEmbed(&discordgo.MessageEmbed{
			Title:     fmt.Sprintf("📋 Caso %s", entry.CaseID),
			Color:     0x3498DB,
			Fields:    fields,
			Footer:    requestedBy(ctx),
			Timestamp: time.Now().Format(time.RFC3339),
		})
	}()

	return nil
}
