// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (utils, mod,
// tryout, settings, owner).
package commands

import (
	"github.com/SDHSDevs/SDHSBotGo/internal/commands/mod"
	"github.com/SDHSDevs/SDHSBotGo/internal/commands/owner"
	"github.com/SDHSDevs/SDHSBotGo/internal/commands/settings"
	"github.com/SDHSDevs/SDHSBotGo/internal/commands/tryout"
	"github.com/SDHSDevs/SDHSBotGo/internal/commands/utils"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
)

// RegisterAll registers all commands with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	// Utility commands
	utils.RegisterUtilsCommands(client)

	// Moderation commands (/mod ban, /mod warn, /mod globalban, ...)
	mod.RegisterModCommands(client)

	// Tryout commands (/tryout host, /tryout group add, ...)
	tryout.RegisterTryoutCommands(client)

	// Server configuration (/settings view, /settings automod, ...)
	settings.RegisterSettingsCommands(client)

	// Owner commands, only in the dev guild (/owner eval, ...)
	owner.RegisterOwnerCommands(client)
}
