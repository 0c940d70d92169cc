// Package tryout - /tryout list command
package tryout

import (
	"fmt"
	"strings"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// listLimit caps how many sessions the embed shows
const listLimit = 15

// createListCommand creates the /tryout list subcommand
func createListCommand() *discord.Command {
	return discord.NewCommand(
		"list",
		"Muestra los tryouts activos del servidor",
		"tryout",
		listHandler,
	).RequiresDatabase()
}

// listHandler handles the /tryout list command
func listHandler(ctx *discord.CommandContext) error {
	if err := ctx.Defer(); err != nil {
		return err
	}

	sessions, err := database.ListActiveTryouts(ctx.Interaction.GuildID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error DB TryoutList: %v", err), "CMD-TryoutList")
		return ctx.EditReply("❌ Error al consultar la base de datos.")
	}

	if len(sessions) == 0 {
		return ctx.EditReplyEmbed(&discordgo.MessageEmbed{
			Title:       "ℹ️ Sin tryouts activos",
			Description: "No hay tryouts activos en este servidor.",
			Color:       0x3498DB,
		})
	}

	var b strings.Builder
	for i, session := range sessions {
		if i >= listLimit {
			fmt.Fprintf(&b, "\n… y %d más", len(sessions)-listLimit)
			break
		}
		fmt.Fprintf(&b, "• **%s** (`%s`)\n", session.GroupName, session.ID)
		fmt.Fprintf(&b, "  Anfitrión: <@%s> · Cierra: <t:%d:R> · Notas: %d\n",
			session.HostID, session.LockTimestamp.Unix(), len(session.Notes))
	}

	return ctx.EditReplyEmbed(&discordgo.MessageEmbed{
		Title:       fmt.Sprintf("📣 Tryouts activos (%d)", len(sessions)),
		Description: b.String(),
		Color:       0x3498DB,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "💫 Developed by SDHS Devs | SDHS Bot Go",
		},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
