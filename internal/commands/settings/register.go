// Package settings provides the /settings command group
package settings

import (
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
)

// RegisterSettingsCommands registers all configuration commands as
// /settings subcommands
func RegisterSettingsCommands(client *discord.ExtendedClient) {
	settingsGroup := client.CommandHandler.BuildCommandGroup(
		"settings",
		"Configuración del servidor",
		createViewCommand(),
		createAutomodCommand(),
		createChannelCommand(),
		createRolesCommand(),
		createGlobalBansCommand(),
	)

	client.CommandHandler.AddGlobalCommand(settingsGroup)
}
