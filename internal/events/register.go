// Package events provides a registry for organizing bot events.
// Events are organized by category (guild, member, message, voice, etc.)
package events

import (
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
)

// RegisterAll registers all events with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	logger.System("📋 Registrando eventos del bot...", "Events")

	eh := discord.NewEventHandler(client)

	// Ready event (bot startup)
	RegisterReadyEvent(eh)

	// Guild events (server join/leave)
	RegisterGuildEvents(eh)

	// Member events (join/leave/update)
	RegisterMemberEvents(eh)

	// Message events (create/update/delete)
	RegisterMessageEvents(eh)

	// Reaction events (auto-promotion approvals)
	RegisterReactionEvents(eh)

	// Voice events (join/leave/move)
	RegisterVoiceEvents(eh)

	// Shard lifecycle logs
	RegisterShardEvents(client)

	logger.Success("✅ Todos los eventos registrados correctamente", "Events")
}
