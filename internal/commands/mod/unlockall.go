// Package mod - /mod unlockall command
package mod

import (
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createUnlockAllCommand creates the /mod unlockall subcommand
func createUnlockAllCommand() *discord.Command {
	return discord.NewCommand(
		"unlockall",
		"Desbloquea todos los canales de texto del servidor",
		"mod",
		unlockAllHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón del desbloqueo masivo",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionManageChannels).
		WithBotPermissions(discordgo.PermissionManageChannels).
		RequiresDatabase()
}

// unlockAllHandler handles the /mod unlockall command
func unlockAllHandler(ctx *discord.CommandContext) error {
	runMassLock(ctx, false)
	return nil
}
