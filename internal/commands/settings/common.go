// Package settings implements the /settings command group for the
// per-guild configuration document.
package settings

import (
	"fmt"

	"github.com/SDHSDevs/SDHSBotGo/pkg/config"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// requireAdmin rejects the interaction unless the user is a bot owner,
// the guild owner or an administrator
func requireAdmin(ctx *discord.CommandContext) bool {
	cfg := config.Get()
	if cfg != nil && cfg.IsOwner(ctx.User().ID) {
		return true
	}
	if guild := ctx.Guild(); guild != nil && guild.OwnerID == ctx.User().ID {
		return true
	}
	if ctx.HasPermission(discordgo.PermissionAdministrator) {
		return true
	}
	ctx.ReplyEphemeral("❌ Solo los administradores pueden cambiar la configuración.")
	return false
}

// channelOrNone renders a channel ID for a settings embed
func channelOrNone(id string) string {
	if id == "" {
		return "No configurado"
	}
	return fmt.Sprintf("<#%s>", id)
}

// rolesOrNone renders a role ID list for a settings embed
func rolesOrNone(ids []string) string {
	if len(ids) == 0 {
		return "Ninguno"
	}
	out := ""
	for _, id := range ids {
		out += fmt.Sprintf("<@&%s> ", id)
	}
	return out
}

// usersOrNone renders a user ID list for a settings embed
func usersOrNone(ids []string) string {
	if len(ids) == 0 {
		return "Ninguno"
	}
	out := ""
	for _, id := range ids {
		out += fmt.Sprintf("<@%s> ", id)
	}
	return out
}

// onOff renders a boolean setting
func onOff(v bool) string {
	if v {
		return "✅ Activado"
	}
	return "❌ Desactivado"
}
