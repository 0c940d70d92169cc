package utils

import (
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/errors"
)

// createHelpCommand creates the /utils help subcommand
func createHelpCommand() *discord.Command {
	return discord.NewCommand(
		"help",
		"Muestra información de ayuda",
		"utils",
		helpHandler,
	)
}

// helpHandler handles the /utils help command
func helpHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()
		ctx.Reply(
			"📖 **Ayuda de SDHS Bot**\n\n" +
				"**Utilidad:**\n" +
				"• `/utils ping` - Comprueba la latencia\n" +
				"• `/utils status` - Estado del bot\n" +
				"• `/utils stats` - Estadísticas del bot\n\n" +
				"**Moderación:**\n" +
				"• `/mod ban <usuario> [razón]` - Banea a un usuario\n" +
				"• `/mod kick <usuario> [razón]` - Expulsa a un usuario\n" +
				"• `/mod timeout <usuario> <duración>` - Aísla temporalmente a un usuario\n" +
				"• `/mod warn <usuario> <razón>` - Advierte a un usuario\n" +
				"• `/mod warnings [usuario]` - Lista las advertencias\n" +
				"• `/mod lock [canal]` / `/mod unlock [canal]` - Bloquea o desbloquea un canal\n" +
				"• `/mod case <id>` - Consulta un caso de moderación\n\n" +
				"**Tryouts:**\n" +
				"• `/tryout host <grupo>` - Anuncia un tryout\n" +
				"• `/tryout list` - Tryouts activos\n" +
				"• `/tryout end <sesión>` - Finaliza un tryout\n\n" +
				"**Configuración:**\n" +
				"• `/settings view <categoría>` - Muestra la configuración del servidor",
		)
	}()
	return nil
}
