// Package owner provides owner commands organized as subcommands under /owner
package owner

import (
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
)

// RegisterOwnerCommands registers all owner commands as /owner
// subcommands, only visible in the development guild
func RegisterOwnerCommands(client *discord.ExtendedClient) {
	ownerGroup := client.CommandHandler.BuildCommandGroup(
		"owner",
		"Comandos internos del bot",
		createEvalCommand(),
		createActionCommand(),
		createStatsCommand(),
	)

	blacklistGroup := client.CommandHandler.BuildSubcommandGroup(
		"owner",
		"blacklist",
		"Gestión de la blacklist",
		createBlacklistAddCommand(),
		createBlacklistRemoveCommand(),
		createBlacklistListCommand(),
	)
	ownerGroup.Options = append(ownerGroup.Options, blacklistGroup)

	client.CommandHandler.AddDevCommand(ownerGroup)
}
