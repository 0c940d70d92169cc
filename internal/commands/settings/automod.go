// Package settings - /settings automod command
package settings

import (
	"fmt"

	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/errors"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// automodFields maps the option choices onto settings fields
var automodFields = map[string]struct {
	Field   string
	Numeric bool
	Label   string
}{
	"activado":      {"automod_enabled", false, "AutoMod"},
	"logs":          {"automod_logging_enabled", false, "Logs de AutoMod"},
	"duracion_mute": {"automod_mute_duration", true, "Duración del mute (segundos)"},
	"limite_spam":   {"automod_spam_limit", true, "Límite de spam (mensajes)"},
	"ventana_spam":  {"automod_spam_window", true, "Ventana de spam (segundos)"},
}

// createAutomodCommand creates the /settings automod subcommand
func createAutomodCommand() *discord.Command {
	return discord.NewCommand(
		"automod",
		"Ajusta el sistema de AutoMod",
		"settings",
		automodHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "ajuste",
			Description: "Ajuste a cambiar",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Activado / Desactivado", Value: "activado"},
				{Name: "Logs", Value: "logs"},
				{Name: "Duración del mute (segundos)", Value: "duracion_mute"},
				{Name: "Límite de spam (mensajes)", Value: "limite_spam"},
				{Name: "Ventana de spam (segundos)", Value: "ventana_spam"},
			},
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "valor",
			Description: "Nuevo valor numérico (solo ajustes numéricos)",
			Required:    false,
			MinValue:    func() *float64 { v := 0.0; return &v }(),
		},
	).WithUserPermissions(discordgo.PermissionAdministrator).
		RequiresDatabase()
}

// automodHandler handles the /settings automod command. Booleans and
// numeric settings without a value toggle; numeric settings with a
// value are set to it.
func automodHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		if !requireAdmin(ctx) {
			return
		}

		choice := ctx.GetStringOption("ajuste")
		meta, ok := automodFields[choice]
		if !ok {
			ctx.ReplyEphemeral("❌ Ajuste desconocido.")
			return
		}

		if err := ctx.Defer(); err != nil {
			return
		}

		var err error
		if meta.Numeric && ctx.GetOption("valor") != nil {
			err = database.SetServerSetting(ctx.Interaction.GuildID, meta.Field, ctx.GetIntOption("valor"))
		} else {
			err = database.ToggleServerSetting(ctx.Interaction.GuildID, meta.Field)
		}
		if err != nil {
			logger.Error(fmt.Sprintf("Error guardando ajuste %s: %v", meta.Field, err), "CMD-Settings")
			ctx.EditReply("❌ No se pudo guardar el ajuste.")
			return
		}

		settings, err := database.GetServerSettings(ctx.Interaction.GuildID)
		if err != nil || settings == nil {
			ctx.EditReply("✅ Ajuste guardado.")
			return
		}

		var current string
		switch choice {
		case "activado":
			current = onOff(settings.AutomodEnabled)
		case "logs":
			current = onOff(settings.AutomodLoggingEnabled)
		case "duracion_mute":
			current = fmt.Sprintf("%d", settings.AutomodMuteDuration)
		case "limite_spam":
			current = fmt.Sprintf("%d", settings.AutomodSpamLimit)
		case "ventana_spam":
			current = fmt.Sprintf("%d", settings.AutomodSpamWindow)
		}

		ctx.EditReply(fmt.Sprintf("✅ **%s** ahora es: %s", meta.Label, current))
	}()

	return nil
}
