// Package mod provides moderation commands organized as subcommands under /mod
// Each command is in its own file for better organization
package mod

import (
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
)

// RegisterModCommands registers all moderation commands as /mod subcommands
func RegisterModCommands(client *discord.ExtendedClient) {
	modGroup := client.CommandHandler.BuildCommandGroup(
		"mod",
		"Comandos de moderación",
		createBanCommand(),
		createUnbanCommand(),
		createKickCommand(),
		createTimeoutCommand(),
		createUntimeoutCommand(),
		createWarnCommand(),
		createRemoveWarnCommand(),
		createClearWarnsCommand(),
		createWarningsCommand(),
		createLockCommand(),
		createUnlockCommand(),
		createLockAllCommand(),
		createUnlockAllCommand(),
		createGlobalBanCommand(),
		createGlobalUnbanCommand(),
		createCaseCommand(),
		createFlagCommand(),
	)

	client.CommandHandler.AddGlobalCommand(modGroup)
}
