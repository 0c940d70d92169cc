// Package database - moderation case ledger.
// Cases are append-only: this service exposes no update or delete, so
// the audit trail cannot be rewritten through application code.
package database

import (
	"crypto/rand"
	"errors"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrCaseManagerNotInitialized = errors.New("case data manager not initialized")
	ErrCaseNotFound              = errors.New("caso no encontrado")
	ErrCaseIDExhausted           = errors.New("no se pudo generar un ID de caso único")
)

const (
	caseIDAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	caseIDLength      = 6
	maxCaseIDAttempts = 10
)

func getCaseManager() (*DataManager[models.Case], error) {
	if GlobalCaseDM == nil {
		return nil, ErrCaseManagerNotInitialized
	}
	return GlobalCaseDM, nil
}

// generateCaseID produces a 6 character uppercase alphanumeric token
func generateCaseID() (string, error) {
	buf := make([]byte, caseIDLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	id := make([]byte, caseIDLength)
	for i, b := range buf {
		id[i] = caseIDAlphabet[int(b)%len(caseIDAlphabet)]
	}
	return string(id), nil
}

// AllocateCaseID generates a case ID that is free according to the
// exists check, regenerating on collision up to the attempt bound
func AllocateCaseID(exists func(id string) (bool, error)) (string, error) {
	for attempt := 0; attempt < maxCaseIDAttempts; attempt++ {
		id, err := generateCaseID()
		if err != nil {
			return "", err
		}

		taken, err := exists(id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	return "", ErrCaseIDExhausted
}

// AddCase records a completed moderation action and returns its case ID.
// The platform side effect already happened by the time this runs; a
// failure here leaves the action applied but unrecorded.
func AddCase(guildID, targetUserID, moderatorID string, action models.ActionType, reason string, extra map[string]interface{}) (string, error) {
	dm, err := getCaseManager()
	if err != nil {
		return "", err
	}

	caseID, err := AllocateCaseID(func(id string) (bool, error) {
		existing, err := dm.Get(bson.M{"guild_id": guildID, "case_id": id})
		if err != nil {
			return false, err
		}
		return existing != nil, nil
	})
	if err != nil {
		return "", err
	}

	entry := models.Case{
		CaseID:       caseID,
		GuildID:      guildID,
		TargetUserID: targetUserID,
		ModeratorID:  moderatorID,
		ActionType:   action,
		Reason:       reason,
		CreatedAt:    time.Now().UTC(),
		Extra:        extra,
	}

	if err := dm.Insert(entry); err != nil {
		return "", err
	}
	return caseID, nil
}

// GetCase looks up a single case inside a guild
func GetCase(guildID, caseID string) (*models.Case, error) {
	dm, err := getCaseManager()
	if err != nil {
		return nil, err
	}

	entry, err := dm.Get(bson.M{"guild_id": guildID, "case_id": caseID})
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrCaseNotFound
	}
	return entry, nil
}

// ListCases returns the most recent cases of a guild, newest first
func ListCases(guildID string, limit int64) ([]*models.Case, error) {
	dm, err := getCaseManager()
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	return dm.GetAll(bson.M{"guild_id": guildID}, opts)
}

// ListUserCases returns the cases recorded against one user in a guild
func ListUserCases(guildID, userID string, limit int64) ([]*models.Case, error) {
	dm, err := getCaseManager()
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	return dm.GetAll(bson.M{"guild_id": guildID, "target_user_id": userID}, opts)
}
