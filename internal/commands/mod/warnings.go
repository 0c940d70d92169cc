package mod

import (
	"fmt"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/errors"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// createWarningsCommand creates the /mod warnings subcommand
func createWarningsCommand() *discord.Command {
	return discord.NewCommand(
		"warnings",
		"Lista de advertencias de un usuario",
		"mod",
		warningsHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "[STAFF] Usuario a buscar (opcional)",
			Required:    false,
		},
	).RequiresDatabase()
}

func warningsHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		// 1. Determinar objetivo y permisos
		targetUser := ctx.GetUserOption("usuario")
		isSelf := false

		staff := isModerator(ctx)

		if targetUser == nil {
			targetUser = ctx.User()
			isSelf = true
		}

		// Cualquiera puede ver sus propias advertencias, ajenas solo el staff
		if !isSelf && !staff {
			ctx.ReplyEphemeral("❌ No tienes permisos para ver la lista de advertencias de otro usuario.")
			return
		}

		// 2. Feedback inicial
		guildIcon := ""
		if guild := ctx.Guild(); guild != nil {
			guildIcon = guild.IconURL("")
		}
		embedLoading := &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("🔖 - Lista de advertencias de %s", targetUser.Username),
			Description: "Espere un momento mientras obtenemos las advertencias...\n\n> 💫 - **Cantidad de advertencias:** Desconocido\n> 🕒 - **Fecha de consulta:** Cargando...",
			Color:       0x3498DB,
			Footer: &discordgo.MessageEmbedFooter{
				Text:    "💫 - Developed by SDHS Devs",
				IconURL: guildIcon,
			},
		}
		if err := ctx.ReplyEphemeralEmbed(embedLoading); err != nil {
			logger.Error(fmt.Sprintf("Error enviando reply inicial warnings: %v", err), "CMD-Warnings")
			return
		}

		// 3. Consulta DB
		warnings, err := database.GetWarnings(ctx.Interaction.GuildID, targetUser.ID)
		if err != nil {
			logger.Error(fmt.Sprintf("Error DB Warnings: %v", err), "CMD-Warnings")
			ctx.EditReply("❌ Error al consultar la base de datos.")
			return
		}

		if len(warnings) == 0 {
			ctx.EditReplyEmbed(&discordgo.MessageEmbed{
				Title:       fmt.Sprintf("🔖 - Lista de advertencias de %s", targetUser.Username),
				Color:       0x00FF00,
				Description: fmt.Sprintf("No se han encontrado advertencias del usuario en este servidor\n\n> 💫 - **Cantidad de advertencias:** 0\n> 🕒 - **Fecha de consulta:** <t:%d>", time.Now().Unix()),
				Footer: &discordgo.MessageEmbedFooter{
					Text:    "💫 - Developed by SDHS Devs",
					IconURL: guildIcon,
				},
			})
			return
		}

		// 4. Construir lista de advertencias
		var description string
		for _, warn := range warnings {
			modName := "Oculto"
			if staff {
				if modUser, err := ctx.Session.User(warn.ModeratorID); err == nil {
					modName = modUser.String()
				} else {
					modName = warn.ModeratorID
				}
			}
			description += fmt.Sprintf("> **Advertencia:** %s \n> **Moderador:** %s \n> **Fecha:** <t:%d:R> \n> **ID:** %s \n\n",
				warn.Reason, modName, time.UnixMilli(warn.Timestamp).Unix(), warn.ID)
		}
		description += fmt.Sprintf("> 💫 - **Cantidad de advertencias:** %d \n> 🕒 - **Fecha de consulta:** <t:%d>", len(warnings), time.Now().Unix())

		ctx.EditReplyEmbed(&discordgo.MessageEmbed{
			Title:       fmt.Sprintf("🔖 - Lista de advertencias de %s (%s)", targetUser.Username, targetUser.ID),
			Color:       0xFFA500,
			Description: description,
			Footer: &discordgo.MessageEmbedFooter{
				Text:    "💫 - Developed by SDHS Devs",
				IconURL: guildIcon,
			},
		})
	}()

	return nil
}
