package discord

import (
	"errors"
	"net/http"

	"github.com/SDHSDevs/SDHSBotGo/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// GatewayAdapter exposes the session to the moderation orchestrator.
type GatewayAdapter struct {
	session *discordgo.Session
}

// NewGatewayAdapter wraps a session for the orchestrator
func NewGatewayAdapter(session *discordgo.Session) *GatewayAdapter {
	return &GatewayAdapter{session: session}
}

// Gateway returns the adapter of the global client
func (c *ExtendedClient) Gateway() *GatewayAdapter {
	return NewGatewayAdapter(c.Session)
}

// ListConnectedGuilds snapshots the guilds the bot currently sees,
// with whether it can ban in each one
func (a *GatewayAdapter) ListConnectedGuilds() []moderation.GuildInfo {
	state := a.session.State
	state.RLock()
	snapshot := make([]*discordgo.Guild, len(state.Guilds))
	copy(snapshot, state.Guilds)
	state.RUnlock()

	infos := make([]moderation.GuildInfo, 0, len(snapshot))
	for _, g := range snapshot {
		infos = append(infos, moderation.GuildInfo{
			ID:     g.ID,
			Name:   g.Name,
			CanBan: a.canBan(g),
		})
	}
	return infos
}

// canBan computes whether the bot holds ban permission in a guild
// from its role set
func (a *GatewayAdapter) canBan(g *discordgo.Guild) bool {
	botID := a.session.State.User.ID
	if g.OwnerID == botID {
		return true
	}

	member, err := a.session.State.Member(g.ID, botID)
	if err != nil {
		member, err = a.session.GuildMember(g.ID, botID)
		if err != nil {
			return false
		}
	}

	var perms int64
	// @everyone carries the guild's base permissions.
	if role, err := a.session.State.Role(g.ID, g.ID); err == nil {
		perms |= role.Permissions
	}
	for _, roleID := range member.Roles {
		role, err := a.session.State.Role(g.ID, roleID)
		if err != nil {
			continue
		}
		perms |= role.Permissions
	}

	if perms&discordgo.PermissionAdministrator != 0 {
		return true
	}
	return perms&discordgo.PermissionBanMembers != 0
}

// IsMember reports whether a user is currently in a guild
func (a *GatewayAdapter) IsMember(guildID, userID string) bool {
	if _, err := a.session.State.Member(guildID, userID); err == nil {
		return true
	}
	_, err := a.session.GuildMember(guildID, userID)
	return err == nil
}

// BanUser bans a user in one guild
func (a *GatewayAdapter) BanUser(guildID, userID, reason string) error {
	err := a.session.GuildBanCreateWithReason(guildID, userID, reason, 0)
	return classifyRESTError(guildID, err)
}

// UnbanUser lifts a ban in one guild
func (a *GatewayAdapter) UnbanUser(guildID, userID string) error {
	err := a.session.GuildBanDelete(guildID, userID)
	return classifyRESTError(guildID, err)
}

// SendDirectMessage delivers a DM, opening the channel if needed
func (a *GatewayAdapter) SendDirectMessage(userID, content string) error {
	channel, err := a.session.UserChannelCreate(userID)
	if err != nil {
		return err
	}
	_, err = a.session.ChannelMessageSend(channel.ID, content)
	return err
}

// CreateVoiceInvite creates an invite link into a voice channel
func (a *GatewayAdapter) CreateVoiceInvite(channelID string, maxAgeSeconds int) (string, error) {
	invite, err := a.session.ChannelInviteCreate(channelID, discordgo.Invite{
		MaxAge:    maxAgeSeconds,
		MaxUses:   0,
		Temporary: false,
	})
	if err != nil {
		return "", err
	}
	return "https://discord.gg/" + invite.Code, nil
}

// classifyRESTError maps a Discord REST failure onto the per guild
// ban error taxonomy
func classifyRESTError(guildID string, err error) error {
	if err == nil {
		return nil
	}

	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		switch restErr.Response.StatusCode {
		case http.StatusForbidden:
			return &moderation.GuildBanError{GuildID: guildID, Kind: moderation.BanErrorForbidden, Err: err}
		case http.StatusNotFound:
			return &moderation.GuildBanError{GuildID: guildID, Kind: moderation.BanErrorNotFound, Err: err}
		}
	}
	return &moderation.GuildBanError{GuildID: guildID, Kind: moderation.BanErrorTransient, Err: err}
}
