package models

import "time"

// WarnTTL es el tiempo de vida de una advertencia activa
const WarnTTL = 48 * time.Hour

// Warn representa una advertencia individual
type Warn struct {
	ID          string `bson:"id" json:"id"`
	Reason      string `bson:"reason" json:"reason"`
	ModeratorID string `bson:"moderator_id" json:"moderator_id"`
	Timestamp   int64  `bson:"timestamp" json:"timestamp"` // unix millis
}

// IsExpired reports whether the warning is older than the warn TTL
func (w Warn) IsExpired(now time.Time) bool {
	issued := time.UnixMilli(w.Timestamp)
	return now.Sub(issued) > WarnTTL
}

// WarnsDocument agrupa las advertencias de un usuario en un servidor
type WarnsDocument struct {
	GuildID string `bson:"guild_id" json:"guild_id"`
	UserID  string `bson:"user_id" json:"user_id"`
	Warns   []Warn `bson:"warns" json:"warns"`
}

// ActiveWarns returns the warnings that have not expired yet
func (d *WarnsDocument) ActiveWarns(now time.Time) []Warn {
	active := make([]Warn, 0, len(d.Warns))
	for _, w := range d.Warns {
		if !w.IsExpired(now) {
			active = append(active, w)
		}
	}
	return active
}
