// Package tryout implements the /tryout command group: announcing
// tryout sessions for configured Roblox groups, ending them, keeping
// moderator notes and managing the group catalog.
package tryout

import (
	"fmt"
	"strings"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/config"
	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// defaultRequirements is shown when a group has no requirement list
// configured
var defaultRequirements = []string{
	"Account age of 100+ Days",
	"No Safechat",
	"Disciplined",
	"Mature",
	"Professional at all times",
	"Agent and above",
}

// isTryoutStaff reports whether the invoking user may manage tryouts:
// bot owners, the guild owner, administrators, anyone with a tryout
// role and anyone with a moderation role.
func isTryoutStaff(ctx *discord.CommandContext) bool {
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
	return ctx.HasRole(settings.TryoutRequiredRoleIDs) || ctx.HasRole(settings.ModerationAllowedRoleIDs)
}

// requireTryoutStaff rejects the interaction with an ephemeral message
// when the user cannot manage tryouts
func requireTryoutStaff(ctx *discord.CommandContext) bool {
	if isTryoutStaff(ctx) {
		return true
	}
	ctx.ReplyEphemeral("❌ Necesitas un rol de tryouts para usar este comando.")
	return false
}

// requestedBy builds the standard footer of tryout embeds
func requestedBy(ctx *discord.CommandContext) *discordgo.MessageEmbedFooter {
	return &discordgo.MessageEmbedFooter{
		Text:    fmt.Sprintf("Solicitado por %s", ctx.User().String()),
		IconURL: ctx.User().AvatarURL(""),
	}
}

// sendTryoutLog posts an embed to the guild's tryout log channel when
// one is configured
func sendTryoutLog(ctx *discord.CommandContext, embed *discordgo.MessageEmbed) {
	settings, err := database.GetServerSettings(ctx.Interaction.GuildID)
	if err != nil || settings == nil || settings.TryoutLogChannelID == "" {
		return
	}
	if _, err := ctx.Session.ChannelMessageSendEmbed(settings.TryoutLogChannelID, embed); err != nil {
		logger.Debug(fmt.Sprintf("No se pudo enviar al canal de logs de tryouts: %v", err), "CMD-Tryout")
	}
}

// announcementText builds the public tryout announcement. The format
// is the one the community already knows, so it stays as plain text
// with the bracket labels.
func announcementText(hostID, cohostID, eventName, description, link string, lockAt time.Time, requirements []string) string {
	cohost := "N/A"
	if cohostID != "" {
		cohost = fmt.Sprintf("<@%s>", cohostID)
	}
	if link == "" {
		link = "N/A"
	}
	if len(requirements) == 0 {
		requirements = defaultRequirements
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**[HOST]** <@%s>\n\n", hostID)
	fmt.Fprintf(&b, "**[CO-HOST]** %s\n\n", cohost)
	fmt.Fprintf(&b, "**[EVENT]** %s\n\n", eventName)
	fmt.Fprintf(&b, "**[DESCRIPTION]** %s\n\n", description)
	fmt.Fprintf(&b, "**[LINK]** %s\n\n", link)
	fmt.Fprintf(&b, "**[LOCKS]** <t:%d:R>\n\n", lockAt.Unix())
	b.WriteString("**[REQUIREMENTS]**\n")
	for _, req := range requirements {
		fmt.Fprintf(&b, "\n• %s", req)
	}
	return b.String()
}

// choiceName truncates an autocomplete choice name to the API limit
func choiceName(name string) string {
	if len(name) > 100 {
		return name[:97] + "..."
	}
	return name
}
