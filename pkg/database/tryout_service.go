// Package database - tryout session and tryout group stores.
package database

import (
	"errors"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

var (
	ErrTryoutManagerNotInitialized = errors.New("tryout data manager not initialized")
)

func getTryoutManager() (*DataManager[models.TryoutSession], error) {
	if GlobalTryoutDM == nil {
		return nil, ErrTryoutManagerNotInitialized
	}
	return GlobalTryoutDM, nil
}

func getTryoutGroupManager() (*DataManager[models.TryoutGroup], error) {
	if GlobalTryoutGroupDM == nil {
		return nil, ErrTryoutManagerNotInitialized
	}
	return GlobalTryoutGroupDM, nil
}

// CreateTryoutSessionOptions holds the fields of a new session
type CreateTryoutSessionOptions struct {
	GuildID        string
	HostID         string
	GroupID        string
	GroupName      string
	ChannelID      string
	VoiceChannelID string
	VoiceInvite    string
	Requirements   []string
	Description    string
	LockTimestamp  time.Time
}

// CreateTryoutSession records a newly announced tryout and returns its ID
func CreateTryoutSession(opts CreateTryoutSessionOptions) (string, error) {
	dm, err := getTryoutManager()
	if err != nil {
		return "", err
	}

	session := models.TryoutSession{
		ID:             uuid.NewString(),
		GuildID:        opts.GuildID,
		HostID:         opts.HostID,
		GroupID:        opts.GroupID,
		GroupName:      opts.GroupName,
		ChannelID:      opts.ChannelID,
		VoiceChannelID: opts.VoiceChannelID,
		VoiceInvite:    opts.VoiceInvite,
		Requirements:   opts.Requirements,
		Description:    opts.Description,
		CreatedAt:      time.Now().UTC(),
		LockTimestamp:  opts.LockTimestamp,
		Status:         models.TryoutStatusActive,
		Notes:          []models.TryoutNote{},
	}

	if err := dm.Insert(session); err != nil {
		return "", err
	}
	return session.ID, nil
}

// GetTryoutSession looks up a session by ID
func GetTryoutSession(sessionID string) (*models.TryoutSession, error) {
	dm, err := getTryoutManager()
	if err != nil {
		return nil, err
	}
	return dm.Get(bson.M{"_id": sessionID})
}

// ListActiveTryouts returns the active sessions of a guild
func ListActiveTryouts(guildID string) ([]*models.TryoutSession, error) {
	dm, err := getTryoutManager()
	if err != nil {
		return nil, err
	}
	return dm.GetAll(bson.M{"guild_id": guildID, "status": models.TryoutStatusActive})
}

// EndTryoutSession moves a session from active to ended. The filter
// matches only active sessions, so a session can end exactly once.
func EndTryoutSession(sessionID, reason string) (bool, error) {
	dm, err := getTryoutManager()
	if err != nil {
		return false, err
	}

	return dm.UpdateFirst(
		bson.M{"_id": sessionID, "status": models.TryoutStatusActive},
		bson.M{"$set": bson.M{
			"status":     models.TryoutStatusEnded,
			"ended_at":   time.Now().UTC(),
			"end_reason": reason,
		}},
	)
}

// AddTryoutNote appends a moderator note to a session
func AddTryoutNote(sessionID, moderatorID, note string) (bool, error) {
	dm, err := getTryoutManager()
	if err != nil {
		return false, err
	}

	entry := models.TryoutNote{
		ModeratorID: moderatorID,
		Note:        note,
		At:          time.Now().UTC(),
	}

	return dm.UpdateFirst(
		bson.M{"_id": sessionID},
		bson.M{"$push": bson.M{"notes": entry}},
	)
}

// SetTryoutGroup creates or updates a configured tryout group
func SetTryoutGroup(group models.TryoutGroup) error {
	dm, err := getTryoutGroupManager()
	if err != nil {
		return err
	}

	_, err = dm.Set(bson.M{"guild_id": group.GuildID, "group_id": group.GroupID}, group)
	return err
}

// GetTryoutGroup looks up one configured group
func GetTryoutGroup(guildID, groupID string) (*models.TryoutGroup, error) {
	dm, err := getTryoutGroupManager()
	if err != nil {
		return nil, err
	}
	return dm.Get(bson.M{"guild_id": guildID, "group_id": groupID})
}

// ListTryoutGroups returns the configured groups of a guild
func ListTryoutGroups(guildID string) ([]*models.TryoutGroup, error) {
	dm, err := getTryoutGroupManager()
	if err != nil {
		return nil, err
	}
	return dm.GetAll(bson.M{"guild_id": guildID})
}

// RemoveTryoutGroup deletes a configured group and reports whether it existed
func RemoveTryoutGroup(guildID, groupID string) (bool, error) {
	dm, err := getTryoutGroupManager()
	if err != nil {
		return false, err
	}
	return dm.DeleteFirst(bson.M{"guild_id": guildID, "group_id": groupID})
}
