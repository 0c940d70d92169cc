// Package settings - /settings globalbans command
package settings

import (
	"fmt"

	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/errors"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// createGlobalBansCommand creates the /settings globalbans subcommand
func createGlobalBansCommand() *discord.Command {
	return discord.NewCommand(
		"globalbans",
		"Activa o desactiva la sincronización de bans globales",
		"settings",
		globalBansHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionBoolean,
			Name:        "estado",
			Description: "Estado deseado. Omítelo para alternar",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionAdministrator).
		RequiresDatabase()
}

// globalBansHandler handles the /settings globalbans command
func globalBansHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		if !requireAdmin(ctx) {
			return
		}

		if err := ctx.Defer(); err != nil {
			return
		}

		var err error
		if ctx.GetOption("estado") != nil {
			err = database.SetServerSetting(ctx.Interaction.GuildID, "global_bans_enabled", ctx.GetBoolOption("estado"))
		} else {
			err = database.ToggleServerSetting(ctx.Interaction.GuildID, "global_bans_enabled")
		}
		if err != nil {
			logger.Error(fmt.Sprintf("Error guardando global_bans_enabled: %v", err), "CMD-Settings")
			ctx.EditReply("❌ No se pudo guardar el ajuste.")
			return
		}

		settings, err := database.GetServerSettings(ctx.Interaction.GuildID)
		if err != nil || settings == nil {
			ctx.EditReply("✅ Ajuste guardado.")
			return
		}

		if settings.GlobalBansEnabled {
			ctx.EditReply("✅ Sincronización de bans globales **activada**. Los bans globales de la red se aplicarán en este servidor.")
		} else {
			ctx.EditReply("✅ Sincronización de bans globales **desactivada**. Este servidor queda fuera de los baneos de la red.")
		}
	}()

	return nil
}
