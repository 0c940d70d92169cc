package models

import "time"

// GlobalBanRecord is one entry of the cross-guild ban registry.
// A user is considered globally banned while an active record exists;
// lifting the ban deletes that record.
type GlobalBanRecord struct {
	ID             string    `bson:"_id" json:"id"`
	TargetUserID   string    `bson:"target_user_id" json:"target_user_id"`
	RobloxIdentity string    `bson:"roblox_identity,omitempty" json:"roblox_identity,omitempty"`
	Reason         string    `bson:"reason" json:"reason"`
	ModeratorID    string    `bson:"moderator_id" json:"moderator_id"`
	BannedAt       time.Time `bson:"banned_at" json:"banned_at"`
	Active         bool      `bson:"active" json:"active"`
	ExpiresAt      time.Time `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
}

// IsPermanent reports whether the ban has no expiry
func (r *GlobalBanRecord) IsPermanent() bool {
	return r.ExpiresAt.IsZero()
}
