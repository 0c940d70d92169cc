// Package owner - /owner blacklist subcommands
package owner

import (
	"fmt"
	"strings"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/errors"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/SDHSDevs/SDHSBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// blacklistListLimit caps how many entries the list embed shows
const blacklistListLimit = 20

// createBlacklistAddCommand creates the /owner blacklist add subcommand
func createBlacklistAddCommand() *discord.Command {
	return discord.NewCommand(
		"add",
		"Añade un usuario o servidor a la blacklist",
		"owner",
		blacklistAddHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "tipo",
			Description: "Tipo de entrada a bloquear",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Usuario", Value: "user"},
				{Name: "Servidor", Value: "guild"},
			},
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "id",
			Description: "ID del usuario o servidor a bloquear",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "razon",
			Description: "Razón del bloqueo",
			Required:    false,
		},
	).AsDev()
}

func blacklistAddHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		if !requireOwner(ctx) {
			return
		}

		tipo := ctx.GetStringOption("tipo")
		id := ctx.GetStringOption("id")
		razon := ctx.GetStringOption("razon")
		if razon == "" {
			razon = "Sin razón especificada"
		}

		blacklistType := models.BlacklistTypeGuild
		if tipo == "user" {
			blacklistType = models.BlacklistTypeUser
		}

		entry, err := database.AddToBlacklist(id, blacklistType, razon, invokerID(ctx))
		if err != nil {
			if err == database.ErrBlacklistEntryExists {
				sendErrorEmbed(ctx, "Error", fmt.Sprintf("❌ El %s `%s` ya está en la blacklist.", blacklistTypeName(tipo), id))
				return
			}
			logger.Error(fmt.Sprintf("Error añadiendo a blacklist: %v", err), "CMD-OwnerBlacklist")
			sendErrorEmbed(ctx, "Error", "❌ Error al añadir a la blacklist.")
			return
		}

		ctx.ReplyEphemeralEmbed(&discordgo.MessageEmbed{
			Title:       "🚫 Añadido a la Blacklist",
			Description: fmt.Sprintf("El %s ha sido bloqueado correctamente.", blacklistTypeName(tipo)),
			Color:       0xFF0000,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Tipo", Value: blacklistTypeEmoji(tipo) + " " + blacklistTypeName(tipo), Inline: true},
				{Name: "ID", Value: fmt.Sprintf("`%s`", id), Inline: true},
				{Name: "Razón", Value: entry.Reason, Inline: false},
			},
			Timestamp: time.Now().Format(time.RFC3339),
			Footer: &discordgo.MessageEmbedFooter{
				Text: fmt.Sprintf("Bloqueado por %s", getUserName(ctx)),
			},
		})

		logger.Info(fmt.Sprintf("Usuario %s añadió %s %s a la blacklist", getUserName(ctx), tipo, id), "CMD-OwnerBlacklist")
	}()

	return nil
}

// createBlacklistRemoveCommand creates the /owner blacklist remove subcommand
func createBlacklistRemoveCommand() *discord.Command {
	return discord.NewCommand(
		"remove",
		"Elimina un usuario o servidor de la blacklist",
		"owner",
		blacklistRemoveHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "id",
			Description: "ID del usuario o servidor a desbloquear",
			Required:    true,
		},
	).AsDev()
}

func blacklistRemoveHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		if !requireOwner(ctx) {
			return
		}

		id := ctx.GetStringOption("id")

		entry, err := database.GetBlacklistEntry(id)
		if err != nil {
			if err == database.ErrBlacklistEntryNotFound {
				sendErrorEmbed(ctx, "Error", fmt.Sprintf("❌ La entrada `%s` no está en la blacklist.", id))
				return
			}
			logger.Error(fmt.Sprintf("Error obteniendo entrada de blacklist: %v", err), "CMD-OwnerBlacklist")
			sendErrorEmbed(ctx, "Error", "❌ Error al obtener la entrada de la blacklist.")
			return
		}

		if err := database.RemoveFromBlacklist(id); err != nil {
			logger.Error(fmt.Sprintf("Error eliminando de blacklist: %v", err), "CMD-OwnerBlacklist")
			sendErrorEmbed(ctx, "Error", "❌ Error al eliminar de la blacklist.")
			return
		}

		tipo := string(entry.Type)
		ctx.ReplyEphemeralEmbed(&discordgo.MessageEmbed{
			Title:       "✅ Eliminado de la Blacklist",
			Description: fmt.Sprintf("El %s ha sido desbloqueado correctamente.", blacklistTypeName(tipo)),
			Color:       0x00FF00,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Tipo", Value: blacklistTypeEmoji(tipo) + " " + blacklistTypeName(tipo), Inline: true},
				{Name: "ID", Value: fmt.Sprintf("`%s`", id), Inline: true},
				{Name: "Razón Original", Value: entry.Reason, Inline: false},
				{Name: "Bloqueado desde", Value: fmt.Sprintf("<t:%d:R>", entry.CreatedAt.Unix()), Inline: true},
			},
			Timestamp: time.Now().Format(time.RFC3339),
			Footer: &discordgo.MessageEmbedFooter{
				Text: fmt.Sprintf("Desbloqueado por %s", getUserName(ctx)),
			},
		})

		logger.Info(fmt.Sprintf("Usuario %s eliminó %s de la blacklist", getUserName(ctx), id), "CMD-OwnerBlacklist")
	}()

	return nil
}

// createBlacklistListCommand creates the /owner blacklist list subcommand
func createBlacklistListCommand() *discord.Command {
	return discord.NewCommand(
		"list",
		"Muestra todas las entradas de la blacklist",
		"owner",
		blacklistListHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "tipo",
			Description: "Filtrar por tipo de entrada",
			Required:    false,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Usuario", Value: "user"},
				{Name: "Servidor", Value: "guild"},
			},
		},
	).AsDev()
}

func blacklistListHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		if !requireOwner(ctx) {
			return
		}

		var entries []*models.BlacklistEntry
		var err error
		switch ctx.GetStringOption("tipo") {
		case "user":
			entries, err = database.GetBlacklistEntriesByType(models.BlacklistTypeUser)
		case "guild":
			entries, err = database.GetBlacklistEntriesByType(models.BlacklistTypeGuild)
		default:
			entries, err = database.GetAllBlacklistEntries()
		}
		if err != nil {
			logger.Error(fmt.Sprintf("Error listando blacklist: %v", err), "CMD-OwnerBlacklist")
			sendErrorEmbed(ctx, "Error", "❌ Error al consultar la blacklist.")
			return
		}

		if len(entries) == 0 {
			ctx.ReplyEphemeralEmbed(&discordgo.MessageEmbed{
				Title:       "📋 Blacklist",
				Description: "La blacklist está vacía.",
				Color:       0x3498DB,
			})
			return
		}

		var b strings.Builder
		for i, entry := range entries {
			if i >= blacklistListLimit {
				fmt.Fprintf(&b, "\n… y %d más", len(entries)-blacklistListLimit)
				break
			}
			fmt.Fprintf(&b, "%s `%s` — %s (<t:%d:R>)\n",
				blacklistTypeEmoji(string(entry.Type)), entry.ID, entry.Reason, entry.CreatedAt.Unix())
		}

		ctx.ReplyEphemeralEmbed(&discordgo.MessageEmbed{
			Title:       fmt.Sprintf("📋 Blacklist (%d entradas)", len(entries)),
			Description: b.String(),
			Color:       0x3498DB,
			Timestamp:   time.Now().Format(time.RFC3339),
		})
	}()

	return nil
}
