// Package database - command usage log.
package database

import (
	"errors"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/SDHSDevs/SDHSBotGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrCommandLogManagerNotInitialized = errors.New("command log data manager not initialized")

// CommandStats resume el uso de comandos de un servidor
type CommandStats struct {
	Total  int64 `json:"total"`
	Failed int64 `json:"failed"`
}

func getCommandLogManager() (*DataManager[models.CommandLog], error) {
	if GlobalCommandLogDM == nil {
		return nil, ErrCommandLogManagerNotInitialized
	}
	return GlobalCommandLogDM, nil
}

// LogCommand records one command execution. Logging is best effort and
// never blocks the command itself, failures only hit the debug log.
func LogCommand(guildID, userID, command string, success bool, errMsg string) {
	dm, err := getCommandLogManager()
	if err != nil {
		return
	}

	entry := models.CommandLog{
		GuildID: guildID,
		UserID:  userID,
		Command: command,
		Success: success,
		Error:   errMsg,
		At:      time.Now().UTC(),
	}

	if err := dm.Insert(entry); err != nil {
		logger.Debug("No se pudo registrar el uso del comando: "+err.Error(), "CommandLog")
	}
}

// GetCommandStats returns usage totals for a guild
func GetCommandStats(guildID string) (*CommandStats, error) {
	dm, err := getCommandLogManager()
	if err != nil {
		return nil, err
	}

	total, err := dm.Count(bson.M{"guild_id": guildID})
	if err != nil {
		return nil, err
	}
	failed, err := dm.Count(bson.M{"guild_id": guildID, "success": false})
	if err != nil {
		return nil, err
	}

	return &CommandStats{Total: total, Failed: failed}, nil
}

// ListRecentCommands returns the latest command executions of a guild
func ListRecentCommands(guildID string, limit int64) ([]*models.CommandLog, error) {
	dm, err := getCommandLogManager()
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(limit)

	return dm.GetAll(bson.M{"guild_id": guildID}, opts)
}
