// Package settings - /settings channel command
package settings

import (
	"fmt"

	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/errors"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// channelFields maps the option choices onto settings fields
var channelFields = map[string]struct {
	Field string
	Label string
}{
	"logs_automod":    {"automod_log_channel_id", "Canal de logs de AutoMod"},
	"logs_moderacion": {"mod_log_channel_id", "Canal de logs de moderación"},
	"tryouts":         {"tryout_channel_id", "Canal de anuncios de tryouts"},
	"logs_tryouts":    {"tryout_log_channel_id", "Canal de logs de tryouts"},
	"autopromocion":   {"autopromotion_channel_id", "Canal de autopromoción"},
}

// createChannelCommand creates the /settings channel subcommand
func createChannelCommand() *discord.Command {
	return discord.NewCommand(
		"channel",
		"Configura los canales del bot",
		"settings",
		channelHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "tipo",
			Description: "Canal a configurar",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Logs de AutoMod", Value: "logs_automod"},
				{Name: "Logs de moderación", Value: "logs_moderacion"},
				{Name: "Anuncios de tryouts", Value: "tryouts"},
				{Name: "Logs de tryouts", Value: "logs_tryouts"},
				{Name: "Autopromoción", Value: "autopromocion"},
			},
		},
		&discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "canal",
			Description:  "Canal a usar. Omítelo para quitar el canal configurado",
			Required:     false,
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
		},
	).WithUserPermissions(discordgo.PermissionAdministrator).
		RequiresDatabase()
}

// channelHandler handles the /settings channel command
func channelHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		if !requireAdmin(ctx) {
			return
		}

		choice := ctx.GetStringOption("tipo")
		meta, ok := channelFields[choice]
		if !ok {
			ctx.ReplyEphemeral("❌ Tipo de canal desconocido.")
			return
		}

		channelID := ""
		if ch := ctx.GetChannelOption("canal"); ch != nil {
			channelID = ch.ID
		}

		if err := ctx.Defer(); err != nil {
			return
		}

		if err := database.SetServerSetting(ctx.Interaction.GuildID, meta.Field, channelID); err != nil {
			logger.Error(fmt.Sprintf("Error guardando canal %s: %v", meta.Field, err), "CMD-Settings")
			ctx.EditReply("❌ No se pudo guardar el canal.")
			return
		}

		if channelID == "" {
			ctx.EditReply(fmt.Sprintf("✅ **%s** eliminado.", meta.Label))
			return
		}
		ctx.EditReply(fmt.Sprintf("✅ **%s** ahora es <#%s>.", meta.Label, channelID))
	}()

	return nil
}
