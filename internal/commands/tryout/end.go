// Package tryout - /tryout end command
package tryout

import (
	"fmt"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/errors"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// createEndCommand creates the /tryout end subcommand
func createEndCommand() *discord.Command {
	return discord.NewCommand(
		"end",
		"Finaliza un tryout activo",
		"tryout",
		endHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         "sesion",
			Description:  "Sesión de tryout a finalizar",
			Required:     true,
			Autocomplete: true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón del cierre",
			Required:    false,
		},
	).WithAutoComplete(activeSessionAutoComplete).
		RequiresDatabase()
}

// endHandler handles the /tryout end command
func endHandler(ctx *discord.CommandContext) error {
	if !requireTryoutStaff(ctx) {
		return nil
	}

	sessionID := ctx.GetStringOption("sesion")
	if sessionID == "" {
		return ctx.ReplyEphemeral("❌ Debes especificar la sesión.")
	}

	reason := ctx.GetStringOption("razon")
	if reason == "" {
		reason = "Finalizado por el anfitrión"
	}

	if err := ctx.Defer(); err != nil {
		return err
	}

	session, err := database.GetTryoutSession(sessionID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error DB TryoutEnd: %v", err), "CMD-TryoutEnd")
		return ctx.EditReply("❌ Error al consultar la base de datos.")
	}
	if session == nil || session.GuildID != ctx.Interaction.GuildID {
		return ctx.EditReply("❌ No se encontró una sesión con ese ID en este servidor.")
	}

	changed, err := database.EndTryoutSession(sessionID, reason)
	if err != nil {
		logger.Error(fmt.Sprintf("Error guardando TryoutEnd: %v", err), "CMD-TryoutEnd")
		return ctx.EditReplyEmbed(&discordgo.MessageEmbed{
			Title:       "❌ Error al finalizar el tryout",
			Description: fmt.Sprintf("No se pudo finalizar la sesión.\nError: `%v`", err),
			Color:       0xFF0000,
		})
	}
	if !changed {
		return ctx.EditReplyEmbed(&discordgo.MessageEmbed{
			Title:       "ℹ️ Sesión ya finalizada",
			Description: fmt.Sprintf("La sesión `%s` ya estaba finalizada.", sessionID),
			Color:       0x3498DB,
		})
	}

	ctx.EditReplyEmbed(&discordgo.MessageEmbed{
		Title:       "🏁 Tryout finalizado",
		Description: fmt.Sprintf("El tryout de **%s** ha sido finalizado.", session.GroupName),
		Color:       0x00FF00,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Sesión", Value: fmt.Sprintf("`%s`", sessionID), Inline: true},
			{Name: "Anfitrión", Value: fmt.Sprintf("<@%s>", session.HostID), Inline: true},
			{Name: "Notas", Value: fmt.Sprintf("%d", len(session.Notes)), Inline: true},
			{Name: "Razón", Value: reason, Inline: false},
		},
		Footer:    requestedBy(ctx),
		Timestamp: time.Now().Format(time.RFC3339),
	})

	sendTryoutLog(ctx, &discordgo.MessageEmbed{
		Title: "🏁 Tryout finalizado",
		Color: 0x95A5A6,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Grupo", Value: session.GroupName, Inline: true},
			{Name: "Sesión", Value: fmt.Sprintf("`%s`", sessionID), Inline: true},
			{Name: "Cerrado por", Value: fmt.Sprintf("<@%s>", ctx.User().ID), Inline: true},
			{Name: "Razón", Value: reason, Inline: false},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	})

	return nil
}

// activeSessionAutoComplete suggests the guild's active tryout sessions
func activeSessionAutoComplete(ctx *discord.CommandContext) {
	go func() {
		defer errors.RecoverMiddleware()()

		sessions, err := database.ListActiveTryouts(ctx.Interaction.GuildID)
		if err != nil || len(sessions) == 0 {
			return
		}

		choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, 25)
		for i, session := range sessions {
			if i >= 25 {
				break
			}
			choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
				Name:  choiceName(fmt.Sprintf("%s - %s", session.GroupName, session.ID)),
				Value: session.ID,
			})
		}

		ctx.SendAutoCompleteChoices(choices)
	}()
}
