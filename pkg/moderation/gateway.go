package moderation

import (
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/models"
)

// GuildInfo describes one guild the bot is connected to, as seen by
// the gateway at fan-out time.
type GuildInfo struct {
	ID     string
	Name   string
	CanBan bool
}

// Gateway is the slice of the Discord client the orchestrator needs.
type Gateway interface {
	ListConnectedGuilds() []GuildInfo
	IsMember(guildID, userID string) bool
	BanUser(guildID, userID, reason string) error
	UnbanUser(guildID, userID string) error
	SendDirectMessage(userID, content string) error
}

// Registry persists cross-guild ban records.
type Registry interface {
	Add(targetUserID, robloxIdentity, reason, moderatorID string, expiresAt time.Time) (string, error)
	Remove(targetUserID string) (bool, error)
	ListActive() ([]*models.GlobalBanRecord, error)
}

// Ledger records completed moderation actions as cases.
type Ledger interface {
	AddCase(guildID, targetUserID, moderatorID string, action models.ActionType, reason string, extra map[string]interface{}) (string, error)
}

// SettingsProvider answers whether a guild opted into global ban sync.
type SettingsProvider interface {
	GlobalBansEnabled(guildID string) bool
}

// IdentityResolver maps a Discord user to a linked Roblox identity.
// Resolution is best effort; the orchestrator falls back to "Unknown".
type IdentityResolver interface {
	ResolveRobloxIdentity(guildID, userID string) (string, error)
}
