// Package tryout provides tryout commands organized as subcommands under /tryout
package tryout

import (
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
)

// RegisterTryoutCommands registers all tryout commands as /tryout subcommands
func RegisterTryoutCommands(client *discord.ExtendedClient) {
	tryoutGroup := client.CommandHandler.BuildCommandGroup(
		"tryout",
		"Tryouts de los grupos de Roblox",
		createHostCommand(),
		createEndCommand(),
		createNoteCommand(),
		createListCommand(),
	)

	groupConfig := client.CommandHandler.BuildSubcommandGroup(
		"tryout",
		"group",
		"Grupos de tryouts configurados",
		createGroupAddCommand(),
		createGroupRemoveCommand(),
		createGroupListCommand(),
	)
	tryoutGroup.Options = append(tryoutGroup.Options, groupConfig)

	client.CommandHandler.AddGlobalCommand(tryoutGroup)
}
