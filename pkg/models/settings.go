package models

// ServerSettings holds the per-guild configuration document.
// Exactly one document exists per guild; it is created lazily with
// defaults the first time a guild is read and never deleted.
type ServerSettings struct {
	GuildID string `bson:"guild_id" json:"guild_id"`

	// Automod
	AutomodEnabled        bool   `bson:"automod_enabled" json:"automod_enabled"`
	AutomodLoggingEnabled bool   `bson:"automod_logging_enabled" json:"automod_logging_enabled"`
	AutomodLogChannelID   string `bson:"automod_log_channel_id" json:"automod_log_channel_id"`
	AutomodMuteDuration   int64  `bson:"automod_mute_duration" json:"automod_mute_duration"` // segundos
	AutomodSpamLimit      int64  `bson:"automod_spam_limit" json:"automod_spam_limit"`
	AutomodSpamWindow     int64  `bson:"automod_spam_window" json:"automod_spam_window"` // segundos

	// Tryouts
	TryoutChannelID    string `bson:"tryout_channel_id" json:"tryout_channel_id"`
	TryoutLogChannelID string `bson:"tryout_log_channel_id" json:"tryout_log_channel_id"`

	// Moderation
	ModLogChannelID   string `bson:"mod_log_channel_id" json:"mod_log_channel_id"`
	GlobalBansEnabled bool   `bson:"global_bans_enabled" json:"global_bans_enabled"`

	// Role and user lists
	ModerationAllowedRoleIDs []string `bson:"moderation_allowed_role_ids" json:"moderation_allowed_role_ids"`
	AutomodExemptRoleIDs     []string `bson:"automod_exempt_role_ids" json:"automod_exempt_role_ids"`
	ProtectedUserIDs         []string `bson:"protected_user_ids" json:"protected_user_ids"`
	TryoutRequiredRoleIDs    []string `bson:"tryout_required_role_ids" json:"tryout_required_role_ids"`
	TryoutPingRoleIDs        []string `bson:"tryout_ping_role_ids" json:"tryout_ping_role_ids"`

	// Auto-promotion
	AutopromotionChannelID string `bson:"autopromotion_channel_id" json:"autopromotion_channel_id"`
}
