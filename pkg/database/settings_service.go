// Package database - per-guild settings store.
// Settings documents are created lazily, backfilled on read and never
// deleted. All reads go straight to the database.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/SDHSDevs/SDHSBotGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const settingsCollection = "server_settings"

var (
	ErrSettingsUnavailable = errors.New("settings store not available")
)

// settingKind selects how Toggle treats a field
type settingKind int

const (
	kindBool settingKind = iota
	kindNumeric
	kindOther
)

// settingDefault is one entry of the ordered migration list
type settingDefault struct {
	Field   string
	Default interface{}
	Kind    settingKind
}

// settingsSchema is the ordered migration list applied on every read.
// Append new fields here; existing guild documents pick them up the
// first time they are read after a deploy.
var settingsSchema = []settingDefault{
	{"automod_enabled", false, kindBool},
	{"automod_logging_enabled", false, kindBool},
	{"automod_log_channel_id", "", kindOther},
	{"automod_mute_duration", int64(3600), kindNumeric},
	{"automod_spam_limit", int64(5), kindNumeric},
	{"automod_spam_window", int64(10), kindNumeric},
	{"tryout_channel_id", "", kindOther},
	{"tryout_log_channel_id", "", kindOther},
	{"mod_log_channel_id", "", kindOther},
	{"global_bans_enabled", false, kindBool},
	{"moderation_allowed_role_ids", []string{}, kindOther},
	{"automod_exempt_role_ids", []string{}, kindOther},
	{"protected_user_ids", []string{}, kindOther},
	{"tryout_required_role_ids", []string{}, kindOther},
	{"tryout_ping_role_ids", []string{}, kindOther},
	{"autopromotion_channel_id", "", kindOther},
}

// settingsSchemaIndex maps field names to their schema entry
var settingsSchemaIndex = func() map[string]settingDefault {
	idx := make(map[string]settingDefault, len(settingsSchema))
	for _, def := range settingsSchema {
		idx[def.Field] = def
	}
	return idx
}()

func getSettingsCollection() (*mongo.Collection, error) {
	db := Get()
	if db == nil || !db.Connected() {
		return nil, ErrSettingsUnavailable
	}
	col := db.GetCollection(settingsCollection)
	if col == nil {
		return nil, ErrSettingsUnavailable
	}
	return col, nil
}

// applySettingsDefaults backfills missing fields in document order and
// reports whether anything was added
func applySettingsDefaults(doc bson.M) bool {
	added := false
	for _, def := range settingsSchema {
		if _, exists := doc[def.Field]; !exists {
			doc[def.Field] = def.Default
			added = true
		}
	}
	return added
}

// loadSettingsDoc fetches the raw settings document for a guild,
// creating it with defaults on first read and writing back backfilled
// fields only when the migration added something
func loadSettingsDoc(guildID string) (bson.M, error) {
	col, err := getSettingsCollection()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var doc bson.M
	err = col.FindOne(ctx, bson.M{"guild_id": guildID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		doc = bson.M{"guild_id": guildID}
		applySettingsDefaults(doc)
		if _, err := col.InsertOne(ctx, doc); err != nil {
			return nil, err
		}
		logger.Debug(fmt.Sprintf("Configuración creada para el servidor %s", guildID), "Settings")
		return doc, nil
	}
	if err != nil {
		return nil, err
	}

	if applySettingsDefaults(doc) {
		// Write back only when the migration added fields
		delete(doc, "_id")
		if _, err := col.UpdateOne(ctx, bson.M{"guild_id": guildID}, bson.M{"$set": doc}); err != nil {
			return nil, err
		}
		logger.Debug(fmt.Sprintf("Configuración migrada para el servidor %s", guildID), "Settings")
	}

	return doc, nil
}

// GetServerSettings returns the settings for a guild, creating the
// document with defaults when the guild has none yet
func GetServerSettings(guildID string) (*models.ServerSettings, error) {
	doc, err := loadSettingsDoc(guildID)
	if err != nil {
		return nil, err
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}

	var settings models.ServerSettings
	if err := bson.Unmarshal(raw, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// SetServerSetting writes a single field. Unknown field names are
// stored as-is; they become unused keys in the document.
func SetServerSetting(guildID, field string, value interface{}) error {
	col, err := getSettingsCollection()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Update().SetUpsert(true)
	_, err = col.UpdateOne(ctx, bson.M{"guild_id": guildID}, bson.M{"$set": bson.M{field: value}}, opts)
	return err
}

// ToggleServerSetting flips a field according to its schema kind:
// booleans invert, numerics swing between 0 and their default, and
// anything else (including unknown fields) is set to true.
func ToggleServerSetting(guildID, field string) error {
	doc, err := loadSettingsDoc(guildID)
	if err != nil {
		return err
	}
	return SetServerSetting(guildID, field, nextToggleValue(field, doc[field]))
}

// nextToggleValue computes the toggled value of a field from its
// schema kind and current value. Unknown fields fall through to the
// permissive default of true.
func nextToggleValue(field string, current interface{}) interface{} {
	def, known := settingsSchemaIndex[field]
	kind := kindOther
	if known {
		kind = def.Kind
	}

	switch kind {
	case kindBool:
		cur, _ := current.(bool)
		return !cur
	case kindNumeric:
		if asInt64(current) != 0 {
			return int64(0)
		}
		return asInt64(def.Default)
	default:
		return true
	}
}

// asInt64 normalizes the numeric types the BSON decoder can produce
func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}
