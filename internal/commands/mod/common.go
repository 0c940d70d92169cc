// Package mod implements the /mod command group: per-guild moderation
// actions, the warning system and the cross-guild global ban commands.
package mod

import (
	"fmt"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/config"
	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/SDHSDevs/SDHSBotGo/pkg/models"
	"github.com/SDHSDevs/SDHSBotGo/pkg/web"
	"github.com/bwmarrin/discordgo"
)

// isModerator reports whether the invoking user may run moderation
// commands: bot owners, the guild owner, administrators and anyone
// holding one of the guild's moderation roles.
func isModerator(ctx *discord.CommandContext) bool {
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

	settings, err := database.GetServerSettings(ctx.Interaction.GuildID)
	if err != nil || settings == nil {
		return false
	}
	return ctx.HasRole(settings.ModerationAllowedRoleIDs)
}

// requireModerator rejects the interaction with an ephemeral message
// when the user is not a moderator
func requireModerator(ctx *discord.CommandContext) bool {
	if isModerator(ctx) {
		return true
	}
	ctx.ReplyEphemeral("❌ No tienes permisos de moderación en este servidor.")
	return false
}

// requestedBy builds the standard footer of moderation embeds
func requestedBy(ctx *discord.CommandContext) *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{
		Text:    fmt.Sprintf("Solicitado por %s", ctx.User().String()),
		IconURL: ctx.User().AvatarURL(""),
	}
}

// dmFooter is the footer used on direct message embeds
func dmFooter(ctx *discord.CommandContext) *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{
		Text:    "💫 - Developed by SDHS Devs",
		IconURL: ctx.Client.Session.State.User.AvatarURL(""),
	}
}

// sendModLog posts an embed to the guild's moderation log channel when
// one is configured
func sendModLog(ctx *discord.CommandContext, embed *discordgo.MessageEmbed) {
	settings, err := database.GetServerSettings(ctx.Interaction.GuildID)
	if err != nil || settings == nil || settings.ModLogChannelID == "" {
		return
	}
	if _, err := ctx.Session.ChannelMessageSendEmbed(settings.ModLogChannelID, embed); err != nil {
		logger.Debug(fmt.Sprintf("No se pudo enviar al canal de moderación: %v", err), "CMD-Mod")
	}
}

// sendDM delivers an embed to the user's DMs. On failure it drops a
// short notice in the invoking channel that deletes itself after five
// seconds.
func sendDM(ctx *discord.CommandContext, userID string, embed *discordgo.MessageEmbed) bool {
	userChannel, err := ctx.Session.UserChannelCreate(userID)
	if err == nil {
		if _, err = ctx.Session.ChannelMessageSendEmbed(userChannel.ID, embed); err == nil {
			return true
		}
	}

	msg, err := ctx.Session.ChannelMessageSend(ctx.Interaction.ChannelID, "ℹ️ No se pudo enviar un mensaje directo al usuario.")
	if err != nil {
		return false
	}
	go func() {
		time.Sleep(5 * time.Second)
		_ = ctx.Session.ChannelMessageDelete(ctx.Interaction.ChannelID, msg.ID)
	}()
	return false
}

// caseRef formats a case ID for an embed field. The ledger write is
// best effort on direct actions; an empty ID renders as a dash.
func caseRef(caseID string) string {
	if caseID == "" {
		return "—"
	}
	return fmt.Sprintf("`%s`", caseID)
}

// broadcastCase mirrors a newly written case to the live feed and MQTT
func broadcastCase(guildID, caseID string, action models.ActionType, targetID, moderatorID, reason string) {
	if caseID == "" {
		return
	}
	web.BroadcastEvent("case", map[string]interface{}{
		"guild_id":     guildID,
		"case_id":      caseID,
		"action":       action,
		"target_id":    targetID,
		"moderator_id": moderatorID,
		"reason":       reason,
	})
}
