// Package events provides event handlers for message reactions
package events

import (
	"fmt"

	"github.com/SDHSDevs/SDHSBotGo/pkg/config"
	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/SDHSDevs/SDHSBotGo/pkg/promotion"
	"github.com/bwmarrin/discordgo"
)

// RegisterReactionEvents registers all reaction-related event handlers
func RegisterReactionEvents(eh *discord.EventHandler) {
	eh.OnMessageReactionAdd(onMessageReactionAdd)
}

// onMessageReactionAdd confirms pending auto-promotions on a staff ✅
func onMessageReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	if r.UserID == s.State.User.ID || r.Emoji.Name != "✅" {
		return
	}

	mgr := promotion.Get()
	if mgr == nil || !mgr.IsPending(r.MessageID) {
		return
	}

	if !isStaff(s, r.GuildID, r.ChannelID, r.UserID, r.Member) {
		logger.Debug(fmt.Sprintf("✅ de %s ignorado: no es staff", r.UserID), "Promotion")
		return
	}

	if mgr.Approve(r.MessageID, r.UserID) {
		logger.Info(fmt.Sprintf("✅ Promoción %s confirmada por %s", r.MessageID, r.UserID), "Promotion")
	}
}

// isStaff reports whether a member may confirm promotions: bot owners,
// the guild owner, administrators and the configured moderation roles.
func isStaff(s *discordgo.Session, guildID, channelID, userID string, member *discordgo.Member) bool {
	if cfg := config.Get(); cfg != nil && cfg.IsOwner(userID) {
		return true
	}

	if guild, err := s.State.Guild(guildID); err == nil && guild.OwnerID == userID {
		return true
	}

	if member == nil {
		member = messageMember(s, guildID, userID, nil)
	}

	if member != nil {
		settings, err := database.GetServerSettings(guildID)
		if err == nil {
			for _, roleID := range member.Roles {
				for _, allowed := range settings.ModerationAllowedRoleIDs {
					if roleID == allowed {
						return true
					}
				}
			}
		}
	}

	perms, err := s.UserChannelPermissions(userID, channelID)
	return err == nil && perms&discordgo.PermissionAdministrator != 0
}
