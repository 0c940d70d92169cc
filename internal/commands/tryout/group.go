// Package tryout - /tryout group subcommands
package tryout

import (
	"fmt"
	"strings"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/SDHSDevs/SDHSBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// createGroupAddCommand creates the /tryout group add subcommand
func createGroupAddCommand() *discord.Command {
	return discord.NewCommand(
		"add",
		"Agrega o actualiza un grupo de tryouts",
		"tryout",
		groupAddHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "grupo",
			Description: "ID del grupo de Roblox",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "evento",
			Description: "Nombre del evento que aparece en los anuncios",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "descripcion",
			Description: "Descripción por defecto de los tryouts del grupo",
			Required:    true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "requisitos",
			Description: "Requisitos separados por comas (vacío usa los generales)",
			Required:    false,
		},
	).RequiresDatabase()
}

// groupAddHandler handles the /tryout group add command
func groupAddHandler(ctx *discord.CommandContext) error {
	if !requireTryoutStaff(ctx) {
		return nil
	}

	groupID := ctx.GetStringOption("grupo")
	eventName := ctx.GetStringOption("evento")
	description := ctx.GetStringOption("descripcion")
	if groupID == "" || eventName == "" || description == "" {
		return ctx.ReplyEphemeral("❌ Debes especificar grupo, evento y descripción.")
	}

	requirements := splitRequirements(ctx.GetStringOption("requisitos"))

	if err := ctx.Defer(); err != nil {
		return err
	}

	err := database.SetTryoutGroup(models.TryoutGroup{
		GuildID:      ctx.Interaction.GuildID,
		GroupID:      groupID,
		EventName:    eventName,
		Description:  description,
		Requirements: requirements,
	})
	if err != nil {
		logger.Error(fmt.Sprintf("Error guardando TryoutGroup: %v", err), "CMD-TryoutGroup")
		return ctx.EditReplyEmbed(&discordgo.MessageEmbed{
			Title:       "❌ Error al guardar el grupo",
			Description: fmt.Sprintf("No se pudo guardar el grupo.\nError: `%v`", err),
			Color:       0xFF0000,
		})
	}

	reqField := "Generales"
	if len(requirements) > 0 {
		reqField = fmt.Sprintf("%d propios", len(requirements))
	}

	return ctx.EditReplyEmbed(&discordgo.MessageEmbed{
		Title:       "✅ Grupo configurado",
		Description: fmt.Sprintf("El grupo **%s** quedó disponible para `/tryout host`.", eventName),
		Color:       0x00FF00,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "ID", Value: fmt.Sprintf("`%s`", groupID), Inline: true},
			{Name: "Requisitos", Value: reqField, Inline: true},
			{Name: "Descripción", Value: description, Inline: false},
		},
		Footer:    requestedBy(ctx),
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// createGroupRemoveCommand creates the /tryout group remove subcommand
func createGroupRemoveCommand() *discord.Command {
	return discord.NewCommand(
		"remove",
		"Elimina un grupo de tryouts configurado",
		"tryout",
		groupRemoveHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         "grupo",
			Description:  "Grupo a eliminar",
			Required:     true,
			Autocomplete: true,
		},
	).WithAutoComplete(groupAutoComplete).
		RequiresDatabase()
}

// groupRemoveHandler handles the /tryout group remove command
func groupRemoveHandler(ctx *discord.CommandContext) error {
	if !requireTryoutStaff(ctx) {
		return nil
	}

	groupID := ctx.GetStringOption("grupo")
	if groupID == "" {
		return ctx.ReplyEphemeral("❌ Debes especificar el grupo.")
	}

	if err := ctx.Defer(); err != nil {
		return err
	}

	removed, err := database.RemoveTryoutGroup(ctx.Interaction.GuildID, groupID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error guardando TryoutGroup: %v", err), "CMD-TryoutGroup")
		return ctx.EditReply("❌ No se pudo eliminar el grupo.")
	}
	if !removed {
		return ctx.EditReplyEmbed(&discordgo.MessageEmbed{
			Title:       "❌ Grupo no encontrado",
			Description: fmt.Sprintf("No existe un grupo con ID `%s`.", groupID),
			Color:       0xFF0000,
		})
	}

	return ctx.EditReplyEmbed(&discordgo.MessageEmbed{
		Title:       "🗑️ Grupo eliminado",
		Description: fmt.Sprintf("El grupo `%s` ya no está disponible para tryouts.", groupID),
		Color:       0x00FF00,
		Footer:      requestedBy(ctx),
		Timestamp:   time.Now().Format(time.RFC3339),
	})
}

// createGroupListCommand creates the /tryout group list subcommand
func createGroupListCommand() *discord.Command {
	return discord.NewCommand(
		"list",
		"Muestra los grupos de tryouts configurados",
		"tryout",
		groupListHandler,
	).RequiresDatabase()
}

// groupListHandler handles the /tryout group list command
func groupListHandler(ctx *discord.CommandContext) error {
	if err := ctx.Defer(); err != nil {
		return err
	}

	groups, err := database.ListTryoutGroups(ctx.Interaction.GuildID)
	if err != nil {
		logger.Error(fmt.Sprintf("Error DB TryoutGroup: %v", err), "CMD-TryoutGroup")
		return ctx.EditReply("❌ Error al consultar la base de datos.")
	}

	if len(groups) == 0 {
		return ctx.EditReplyEmbed(&discordgo.MessageEmbed{
			Title:       "ℹ️ Sin grupos configurados",
			Description: "No hay grupos de tryouts configurados.\nAgrega uno con `/tryout group add`.",
			Color:       0x3498DB,
		})
	}

	var b strings.Builder
	for _, group := range groups {
		reqs := "generales"
		if len(group.Requirements) > 0 {
			reqs = fmt.Sprintf("%d propios", len(group.Requirements))
		}
		fmt.Fprintf(&b, "• **%s** (`%s`) · Requisitos: %s\n", group.EventName, group.GroupID, reqs)
	}

	return ctx.EditReplyEmbed(&discordgo.MessageEmbed{
		Title:       fmt.Sprintf("📚 Grupos de tryouts (%d)", len(groups)),
		Description: b.String(),
		Color:       0x3498DB,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "💫 Developed by SDHS Devs | SDHS Bot Go",
		},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// splitRequirements parses the comma separated requirements option
func splitRequirements(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
