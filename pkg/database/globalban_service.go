// Package database - cross-guild global ban registry.
package database

import (
	"errors"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrBanManagerNotInitialized = errors.New("global ban data manager not initialized")
)

func getBanManager() (*DataManager[models.GlobalBanRecord], error) {
	if GlobalBanDM == nil {
		return nil, ErrBanManagerNotInitialized
	}
	return GlobalBanDM, nil
}

// AddGlobalBan inserts a new active registry record and returns its ID.
// No duplicate check is performed; two concurrent bans of the same user
// produce two active records.
func AddGlobalBan(targetUserID, robloxIdentity, reason, moderatorID string, expiresAt time.Time) (string, error) {
	dm, err := getBanManager()
	if err != nil {
		return "", err
	}

	record := models.GlobalBanRecord{
		ID:             uuid.NewString(),
		TargetUserID:   targetUserID,
		RobloxIdentity: robloxIdentity,
		Reason:         reason,
		ModeratorID:    moderatorID,
		BannedAt:       time.Now().UTC(),
		Active:         true,
		ExpiresAt:      expiresAt,
	}

	if err := dm.Insert(record); err != nil {
		return "", err
	}
	return record.ID, nil
}

// RemoveGlobalBan deletes the first active record for a user and
// reports whether anything was removed
func RemoveGlobalBan(targetUserID string) (bool, error) {
	dm, err := getBanManager()
	if err != nil {
		return false, err
	}
	return dm.DeleteFirst(bson.M{"target_user_id": targetUserID, "active": true})
}

// GetGlobalBan returns the active record for a user, or nil
func GetGlobalBan(targetUserID string) (*models.GlobalBanRecord, error) {
	dm, err := getBanManager()
	if err != nil {
		return nil, err
	}
	return dm.Get(bson.M{"target_user_id": targetUserID, "active": true})
}

// ListActiveGlobalBans returns every active registry record
func ListActiveGlobalBans() ([]*models.GlobalBanRecord, error) {
	dm, err := getBanManager()
	if err != nil {
		return nil, err
	}
	return dm.GetAll(bson.M{"active": true})
}

// GuildSyncEnabled reads whether a guild opted into global ban sync
func GuildSyncEnabled(guildID string) (bool, error) {
	settings, err := GetServerSettings(guildID)
	if err != nil {
		return false, err
	}
	return settings.GlobalBansEnabled, nil
}
