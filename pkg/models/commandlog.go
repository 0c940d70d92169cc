package models

import "time"

// CommandLog records one slash command execution for usage statistics
type CommandLog struct {
	GuildID string    `bson:"guild_id" json:"guild_id"`
	UserID  string    `bson:"user_id" json:"user_id"`
	Command string    `bson:"command" json:"command"`
	Success bool      `bson:"success" json:"success"`
	Error   string    `bson:"error,omitempty" json:"error,omitempty"`
	At      time.Time `bson:"at" json:"at"`
}
