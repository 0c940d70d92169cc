package database

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestApplySettingsDefaults(t *testing.T) {
	doc := bson.M{"guild_id": "123"}

	if added := applySettingsDefaults(doc); !added {
		t.Fatal("first backfill on an empty document must report added fields")
	}
	for _, def := range settingsSchema {
		if _, ok := doc[def.Field]; !ok {
			t.Errorf("field %q missing after backfill", def.Field)
		}
	}

	// A second pass finds nothing to add.
	if added := applySettingsDefaults(doc); added {
		t.Error("backfill on a complete document must report nothing added")
	}
}

func TestApplySettingsDefaultsKeepsExistingValues(t *testing.T) {
	doc := bson.M{
		"guild_id":            "123",
		"automod_enabled":     true,
		"automod_spam_limit":  int64(9),
		"tryout_channel_id":   "555",
		"global_bans_enabled": true,
	}

	if added := applySettingsDefaults(doc); !added {
		t.Fatal("partial document must still gain the missing fields")
	}

	if doc["automod_enabled"] != true {
		t.Error("existing automod_enabled was overwritten")
	}
	if doc["automod_spam_limit"] != int64(9) {
		t.Error("existing automod_spam_limit was overwritten")
	}
	if doc["tryout_channel_id"] != "555" {
		t.Error("existing tryout_channel_id was overwritten")
	}
	if doc["automod_mute_duration"] != int64(3600) {
		t.Errorf("automod_mute_duration = %v, want default 3600", doc["automod_mute_duration"])
	}
}

func TestNextToggleValue(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		current interface{}
		want    interface{}
	}{
		{"bool false flips on", "automod_enabled", false, true},
		{"bool true flips off", "automod_enabled", true, false},
		{"bool missing flips on", "global_bans_enabled", nil, true},
		{"numeric nonzero resets", "automod_mute_duration", int64(7200), int64(0)},
		{"numeric zero restores default", "automod_mute_duration", int64(0), int64(3600)},
		{"numeric int32 from bson", "automod_spam_limit", int32(3), int64(0)},
		{"numeric missing restores default", "automod_spam_window", nil, int64(10)},
		{"string becomes true", "tryout_channel_id", "555", true},
		{"list becomes true", "protected_user_ids", []string{"1"}, true},
		{"unknown field becomes true", "no_such_field", "whatever", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextToggleValue(tt.field, tt.current)
			if got != tt.want {
				t.Errorf("nextToggleValue(%q, %v) = %v, want %v", tt.field, tt.current, got, tt.want)
			}
		})
	}
}

func TestAsInt64(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  int64
	}{
		{"int64", int64(5), 5},
		{"int32", int32(7), 7},
		{"int", 9, 9},
		{"float64", float64(3), 3},
		{"string", "12", 0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := asInt64(tt.value); got != tt.want {
				t.Errorf("asInt64(%v) = %d, want %d", tt.value, got, tt.want)
			}
		})
	}
}

func TestSettingsSchemaIndexCoversSchema(t *testing.T) {
	if len(settingsSchemaIndex) != len(settingsSchema) {
		t.Fatalf("index has %d entries, schema has %d", len(settingsSchemaIndex), len(settingsSchema))
	}
	for _, def := range settingsSchema {
		idx, ok := settingsSchemaIndex[def.Field]
		if !ok {
			t.Errorf("field %q missing from index", def.Field)
			continue
		}
		if idx.Kind != def.Kind {
			t.Errorf("field %q kind mismatch", def.Field)
		}
	}
}
