package models

import "time"

// ActionType identifies what a moderation case recorded
type ActionType string

const (
	ActionBan               ActionType = "ban"
	ActionGlobalBan         ActionType = "global_ban"
	ActionUnban             ActionType = "unban"
	ActionGlobalUnban       ActionType = "global_unban"
	ActionKick              ActionType = "kick"
	ActionTimeout           ActionType = "timeout"
	ActionUntimeout         ActionType = "untimeout"
	ActionChannelLock       ActionType = "channel_lock"
	ActionChannelUnlock     ActionType = "channel_unlock"
	ActionMassChannelLock   ActionType = "mass_channel_lock"
	ActionMassChannelUnlock ActionType = "mass_channel_unlock"
	ActionWarn              ActionType = "warn"
	ActionNote              ActionType = "note"
)

// Case is one immutable entry of the moderation ledger.
// (guild_id, case_id) is unique; case IDs are 6 random uppercase
// alphanumeric characters and only make sense inside their guild.
type Case struct {
	CaseID       string                 `bson:"case_id" json:"case_id"`
	GuildID      string                 `bson:"guild_id" json:"guild_id"`
	TargetUserID string                 `bson:"target_user_id" json:"target_user_id"`
	ModeratorID  string                 `bson:"moderator_id" json:"moderator_id"`
	ActionType   ActionType             `bson:"action_type" json:"action_type"`
	Reason       string                 `bson:"reason" json:"reason"`
	CreatedAt    time.Time              `bson:"created_at" json:"created_at"`
	Extra        map[string]interface{} `bson:"extra,omitempty" json:"extra,omitempty"` // duración, identidad roblox, canal, etc.
}
