// Package database - per user warning store.
//
// Warnings live inside a single document per (guild, user). Expired
// entries are pruned on every write so the documents stay small.
package database

import (
	"errors"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrWarnManagerNotInitialized = errors.New("warn data manager not initialized")
	ErrWarnNotFound              = errors.New("advertencia no encontrada")
)

func getWarnManager() (*DataManager[models.WarnsDocument], error) {
	if GlobalWarnDM == nil {
		return nil, ErrWarnManagerNotInitialized
	}
	return GlobalWarnDM, nil
}

// AddWarn records a warning and returns it together with the number of
// active warnings the user now has.
func AddWarn(guildID, userID, moderatorID, reason string) (*models.Warn, int, error) {
	dm, err := getWarnManager()
	if err != nil {
		return nil, 0, err
	}

	query := bson.M{"guild_id": guildID, "user_id": userID}
	doc, err := dm.Get(query)
	if err != nil {
		return nil, 0, err
	}
	if doc == nil {
		doc = &models.WarnsDocument{GuildID: guildID, UserID: userID}
	}

	now := time.Now().UTC()
	warn := models.Warn{
		ID:          uuid.NewString(),
		Reason:      reason,
		ModeratorID: moderatorID,
		Timestamp:   now.UnixMilli(),
	}

	doc.Warns = append(doc.ActiveWarns(now), warn)

	if _, err := dm.Set(query, doc); err != nil {
		return nil, 0, err
	}
	return &warn, len(doc.Warns), nil
}

// GetWarnings returns the active warnings of a user
func GetWarnings(guildID, userID string) ([]models.Warn, error) {
	dm, err := getWarnManager()
	if err != nil {
		return nil, err
	}

	doc, err := dm.Get(bson.M{"guild_id": guildID, "user_id": userID})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return []models.Warn{}, nil
	}
	return doc.ActiveWarns(time.Now().UTC()), nil
}

// RemoveWarn deletes a single warning by its ID
func RemoveWarn(guildID, userID, warnID string) error {
	dm, err := getWarnManager()
	if err != nil {
		return err
	}

	query := bson.M{"guild_id": guildID, "user_id": userID}
	doc, err := dm.Get(query)
	if err != nil {
		return err
	}
	if doc == nil {
		return ErrWarnNotFound
	}

	now := time.Now().UTC()
	active := doc.ActiveWarns(now)
	kept := make([]models.Warn, 0, len(active))
	found := false
	for _, w := range active {
		if w.ID == warnID {
			found = true
			continue
		}
		kept = append(kept, w)
	}
	if !found {
		return ErrWarnNotFound
	}

	doc.Warns = kept
	_, err = dm.Set(query, doc)
	return err
}

// ClearWarnings removes every warning of a user and returns how many
// active ones were dropped.
func ClearWarnings(guildID, userID string) (int, error) {
	dm, err := getWarnManager()
	if err != nil {
		return 0, err
	}

	query := bson.M{"guild_id": guildID, "user_id": userID}
	doc, err := dm.Get(query)
	if err != nil {
		return 0, err
	}
	if doc == nil {
		return 0, nil
	}

	count := len(doc.ActiveWarns(time.Now().UTC()))
	if err := dm.Delete(query); err != nil {
		return 0, err
	}
	return count, nil
}
