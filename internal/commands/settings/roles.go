// Package settings - /settings roles command
package settings

import (
	"fmt"

	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/errors"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/SDHSDevs/SDHSBotGo/pkg/models"
	"github.com/bwmarrin/discordgo"
)

// roleLists maps the option choices onto settings list fields. The
// protected users list holds user IDs, everything else role IDs.
var roleLists = map[string]struct {
	Field string
	Label string
	Users bool
}{
	"moderacion":        {"moderation_allowed_role_ids", "Roles de moderación", false},
	"exentos_automod":   {"automod_exempt_role_ids", "Roles exentos de AutoMod", false},
	"protegidos":        {"protected_user_ids", "Usuarios protegidos", true},
	"tryout_requeridos": {"tryout_required_role_ids", "Roles requeridos para tryouts", false},
	"tryout_ping":       {"tryout_ping_role_ids", "Roles a mencionar en tryouts", false},
}

// createRolesCommand creates the /settings roles subcommand
func createRolesCommand() *discord.Command {
	return discord.NewCommand(
		"roles",
		"Gestiona las listas de roles y usuarios protegidos",
		"settings",
		rolesHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "lista",
			Description: "Lista a modificar",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Roles de moderación", Value: "moderacion"},
				{Name: "Roles exentos de AutoMod", Value: "exentos_automod"},
				{Name: "Usuarios protegidos", Value: "protegidos"},
				{Name: "Roles requeridos para tryouts", Value: "tryout_requeridos"},
				{Name: "Roles a mencionar en tryouts", Value: "tryout_ping"},
			},
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "accion",
			Description: "Agregar o quitar",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Agregar", Value: "agregar"},
				{Name: "Quitar", Value: "quitar"},
			},
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionRole,
			Name:        "rol",
			Description: "Rol (para listas de roles)",
			Required:    false,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "usuario",
			Description: "Usuario (para la lista de protegidos)",
			Required:    false,
		},
	).WithUserPermissions(discordgo.PermissionAdministrator).
		RequiresDatabase()
}

// rolesHandler handles the /settings roles command
func rolesHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		if !requireAdmin(ctx) {
			return
		}

		choice := ctx.GetStringOption("lista")
		action := ctx.GetStringOption("accion")
		meta, ok := roleLists[choice]
		if !ok {
			ctx.ReplyEphemeral("❌ Lista desconocida.")
			return
		}

		// 1. Resolver la entrada según el tipo de lista
		var id, mention string
		if meta.Users {
			user := ctx.GetUserOption("usuario")
			if user == nil {
				ctx.ReplyEphemeral("❌ Esta lista necesita la opción `usuario`.")
				return
			}
			id = user.ID
			mention = fmt.Sprintf("<@%s>", id)
		} else {
			role := ctx.GetRoleOption("rol")
			if role == nil {
				ctx.ReplyEphemeral("❌ Esta lista necesita la opción `rol`.")
				return
			}
			id = role.ID
			mention = fmt.Sprintf("<@&%s>", id)
		}

		if err := ctx.Defer(); err != nil {
			return
		}

		settings, err := database.GetServerSettings(ctx.Interaction.GuildID)
		if err != nil || settings == nil {
			logger.Error(fmt.Sprintf("Error cargando configuración: %v", err), "CMD-Settings")
			ctx.EditReply("❌ No se pudo cargar la configuración del servidor.")
			return
		}

		// 2. Mutar la lista
		current := listFor(settings, choice)
		updated, changed := mutateList(current, id, action == "agregar")
		if !changed {
			if action == "agregar" {
				ctx.EditReply(fmt.Sprintf("ℹ️ %s ya está en **%s**.", mention, meta.Label))
			} else {
				ctx.EditReply(fmt.Sprintf("ℹ️ %s no está en **%s**.", mention, meta.Label))
			}
			return
		}

		if err := database.SetServerSetting(ctx.Interaction.GuildID, meta.Field, updated); err != nil {
			logger.Error(fmt.Sprintf("Error guardando lista %s: %v", meta.Field, err), "CMD-Settings")
			ctx.EditReply("❌ No se pudo guardar la lista.")
			return
		}

		if action == "agregar" {
			ctx.EditReply(fmt.Sprintf("✅ %s agregado a **%s** (%d en total).", mention, meta.Label, len(updated)))
		} else {
			ctx.EditReply(fmt.Sprintf("✅ %s quitado de **%s** (%d en total).", mention, meta.Label, len(updated)))
		}
	}()

	return nil
}

// listFor returns the named list from a settings document
func listFor(s *models.ServerSettings, choice string) []string {
	switch choice {
	case "moderacion":
		return s.ModerationAllowedRoleIDs
	case "exentos_automod":
		return s.AutomodExemptRoleIDs
	case "protegidos":
		return s.ProtectedUserIDs
	case "tryout_requeridos":
		return s.TryoutRequiredRoleIDs
	case "tryout_ping":
		return s.TryoutPingRoleIDs
	}
	return nil
}

// mutateList adds or removes an ID and reports whether the list changed
func mutateList(list []string, id string, add bool) ([]string, bool) {
	idx := -1
	for i, v := range list {
		if v == id {
			idx = i
			break
		}
	}

	if add {
		if idx >= 0 {
			return list, false
		}
		return append(append([]string{}, list...), id), true
	}

	if idx < 0 {
		return list, false
	}
	updated := append([]string{}, list[:idx]...)
	return append(updated, list[idx+1:]...), true
}
