package models

import (
	"testing"
	"time"
)

func TestWarnIsExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		issued time.Time
		want   bool
	}{
		{"fresh", now.Add(-time.Hour), false},
		{"almost at TTL", now.Add(-WarnTTL + time.Minute), false},
		{"exactly at TTL", now.Add(-WarnTTL), false},
		{"past TTL", now.Add(-WarnTTL - time.Second), true},
		{"days old", now.Add(-96 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := Warn{Timestamp: tt.issued.UnixMilli()}
			if got := w.IsExpired(now); got != tt.want {
				t.Errorf("IsExpired = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestActiveWarns(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	doc := WarnsDocument{
		GuildID: "g1",
		UserID:  "u1",
		Warns: []Warn{
			{ID: "old", Timestamp: now.Add(-50 * time.Hour).UnixMilli()},
			{ID: "fresh", Timestamp: now.Add(-time.Hour).UnixMilli()},
			{ID: "ancient", Timestamp: now.Add(-200 * time.Hour).UnixMilli()},
		},
	}

	active := doc.ActiveWarns(now)
	if len(active) != 1 {
		t.Fatalf("active warns = %d, want 1", len(active))
	}
	if active[0].ID != "fresh" {
		t.Errorf("active[0].ID = %q, want fresh", active[0].ID)
	}
}
