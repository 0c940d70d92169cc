package moderation

import (
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/SDHSDevs/SDHSBotGo/pkg/models"
)

// MongoRegistry backs Registry with the shared global ban store.
type MongoRegistry struct{}

func (MongoRegistry) Add(targetUserID, robloxIdentity, reason, moderatorID string, expiresAt time.Time) (string, error) {
	return database.AddGlobalBan(targetUserID, robloxIdentity, reason, moderatorID, expiresAt)
}

func (MongoRegistry) Remove(targetUserID string) (bool, error) {
	return database.RemoveGlobalBan(targetUserID)
}

func (MongoRegistry) ListActive() ([]*models.GlobalBanRecord, error) {
	return database.ListActiveGlobalBans()
}

// MongoLedger backs Ledger with the case store.
type MongoLedger struct{}

func (MongoLedger) AddCase(guildID, targetUserID, moderatorID string, action models.ActionType, reason string, extra map[string]interface{}) (string, error) {
	return database.AddCase(guildID, targetUserID, moderatorID, action, reason, extra)
}

// MongoSettings reads the per guild sync flag from server settings.
// A settings read failure counts as sync disabled.
type MongoSettings struct{}

func (MongoSettings) GlobalBansEnabled(guildID string) bool {
	enabled, err := database.GuildSyncEnabled(guildID)
	if err != nil {
		logger.Warn("No se pudo leer global_bans_enabled de "+guildID+": "+err.Error(), "Moderation")
		return false
	}
	return enabled
}
