// Package owner implements the /owner command group, registered only
// in the development guild and restricted to the bot owners: eval,
// blacklist management, record lookups and internal stats.
package owner

import (
	"fmt"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/config"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// invokerID extracts the user ID no matter if the interaction came
// from a guild or a DM
func invokerID(ctx *discord.CommandContext) string {
	if ctx.Interaction.Member != nil && ctx.Interaction.Member.User != nil {
		return ctx.Interaction.Member.User.ID
	}
	if ctx.Interaction.User != nil {
		return ctx.Interaction.User.ID
	}
	return ""
}

// requireOwner rejects the interaction when the user is not in the
// configured owner list
func requireOwner(ctx *discord.CommandContext) bool {
	cfg := config.Get()
	if cfg != nil && cfg.IsOwner(invokerID(ctx)) {
		return true
	}
	sendErrorEmbed(ctx, "Acceso Denegado", "❌ Este comando es solo para los dueños del bot.")
	return false
}

// getUserName obtiene el nombre del usuario de manera segura
func getUserName(ctx *discord.CommandContext) string {
	if ctx.Interaction.Member != nil && ctx.Interaction.Member.User != nil {
		return ctx.Interaction.Member.User.Username
	}
	if ctx.Interaction.User != nil {
		return ctx.Interaction.User.Username
	}
	return "Unknown"
}

// sendErrorEmbed envía un embed de error efímero
func sendErrorEmbed(ctx *discord.CommandContext, title, description string) {
	embed := &discordgo.MessageEmbed{
		Title:       "❌ " + title,
		Description: description,
		Color:       0xFF0000,
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	err := ctx.Session.InteractionRespond(ctx.Interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})

	if err != nil {
		logger.Error(fmt.Sprintf("Error enviando embed de error: %v", err), "CMD-Owner")
	}
}

// blacklistTypeName devuelve el nombre legible del tipo
func blacklistTypeName(tipo string) string {
	if tipo == "user" {
		return "Usuario"
	}
	return "Servidor"
}

// blacklistTypeEmoji devuelve el emoji del tipo
func blacklistTypeEmoji(tipo string) string {
	if tipo == "user" {
		return "👤"
	}
	return "🏰"
}
