// Package tryout - /tryout note command
package tryout

import (
	"fmt"

	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// createNoteCommand creates the /tryout note subcommand
func createNoteCommand() *discord.Command {
	return discord.NewCommand(
		"note",
		"Agrega una nota interna a una sesión de tryout",
		"tryout",
		noteHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         "sesion",
			Description:  "Sesión de tryout",
			Required:     true,
			Autocomplete: true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "nota",
			Description: "Contenido de la nota",
			Required:    true,
		},
	).WithAutoComplete(activeSessionAutoComplete).
		RequiresDatabase()
}

// noteHandler handles the /tryout note command. Notes are staff
// internal, so every reply is ephemeral.
func noteHandler(ctx *discord.CommandContext) error {
	if !requireTryoutStaff(ctx) {
		return nil
	}

	sessionID := ctx.GetStringOption("sesion")
	note := ctx.GetStringOption("nota")
	if sessionID == "" || note == "" {
		return ctx.ReplyEphemeral("❌ Debes especificar la sesión y la nota.")
	}

	session, err := database.GetTryoutSession(sessionID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error DB TryoutNote: %v", err), "CMD-TryoutNote")
		return ctx.ReplyEphemeral("❌ Error al consultar la base de datos.")
	}
	if session == nil || session.GuildID != ctx.Interaction.GuildID {
		return ctx.ReplyEphemeral("❌ No se encontró una sesión con ese ID en este servidor.")
	}

	ok, err := database.AddTryoutNote(sessionID, ctx.User().ID, note)
	if err != nil {
		logger.Error(fmt.Sprintf("Error guardando TryoutNote: %v", err), "CMD-TryoutNote")
		return ctx.ReplyEphemeral("❌ No se pudo guardar la nota.")
	}
	if !ok {
		return ctx.ReplyEphemeral("❌ No se encontró una sesión con ese ID.")
	}

	return ctx.ReplyEphemeralEmbed(&discordgo.MessageEmbed{
		Title:       "📝 Nota agregada",
		Description: fmt.Sprintf("Nota guardada en la sesión `%s` de **%s**.", sessionID, session.GroupName),
		Color:       0x00FF00,
	})
}
