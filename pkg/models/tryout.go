package models

import "time"

// TryoutStatus is the lifecycle state of a tryout session
type TryoutStatus string

const (
	TryoutStatusActive TryoutStatus = "active"
	TryoutStatusEnded  TryoutStatus = "ended"
)

// TryoutNote is an observation appended to a session by a moderator
type TryoutNote struct {
	ModeratorID string    `bson:"moderator_id" json:"moderator_id"`
	Note        string    `bson:"note" json:"note"`
	At          time.Time `bson:"at" json:"at"`
}

// TryoutSession is a scheduled tryout announcement. Sessions move from
// active to ended exactly once; notes are append-only.
type TryoutSession struct {
	ID             string       `bson:"_id" json:"id"`
	GuildID        string       `bson:"guild_id" json:"guild_id"`
	HostID         string       `bson:"host_id" json:"host_id"`
	GroupID        string       `bson:"group_id" json:"group_id"`
	GroupName      string       `bson:"group_name" json:"group_name"`
	ChannelID      string       `bson:"channel_id" json:"channel_id"`
	VoiceChannelID string       `bson:"voice_channel_id,omitempty" json:"voice_channel_id,omitempty"`
	VoiceInvite    string       `bson:"voice_invite,omitempty" json:"voice_invite,omitempty"`
	Requirements   []string     `bson:"requirements" json:"requirements"`
	Description    string       `bson:"description" json:"description"`
	CreatedAt      time.Time    `bson:"created_at" json:"created_at"`
	LockTimestamp  time.Time    `bson:"lock_timestamp" json:"lock_timestamp"`
	Status         TryoutStatus `bson:"status" json:"status"`
	EndedAt        time.Time    `bson:"ended_at,omitempty" json:"ended_at,omitempty"`
	EndReason      string       `bson:"end_reason,omitempty" json:"end_reason,omitempty"`
	Notes          []TryoutNote `bson:"notes" json:"notes"`
}

// TryoutGroup is a configured Roblox group that can host tryouts
type TryoutGroup struct {
	GuildID      string   `bson:"guild_id" json:"guild_id"`
	GroupID      string   `bson:"group_id" json:"group_id"`
	EventName    string   `bson:"event_name" json:"event_name"`
	Description  string   `bson:"description" json:"description"`
	Requirements []string `bson:"requirements" json:"requirements"`
}
