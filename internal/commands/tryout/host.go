// Package tryout - /tryout host command
package tryout

import (
	"fmt"
	"strings"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/errors"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// voiceInviteMaxAge bounds the lifetime of the invite attached to the
// announcement, in seconds
const voiceInviteMaxAge = 86400

// createHostCommand creates the /tryout host subcommand
func createHostCommand() *discord.Command {
	return discord.NewCommand(
		"host",
		"Anuncia un tryout para un grupo configurado",
		"tryout",
		hostHandler,
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         "grupo",
			Description:  "Grupo que realiza el tryout",
			Required:     true,
			Autocomplete: true,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "cohost",
			Description: "Co-anfitrión del tryout",
			Required:    false,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "bloqueo",
			Description: "Minutos hasta el cierre de inscripciones (10 por defecto)",
			Required:    false,
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionChannel,
			Name:        "voz",
			Description: "Canal de voz del tryout (se genera una invitación)",
			Required:    false,
			ChannelTypes: []discordgo.ChannelType{
				discordgo.ChannelTypeGuildVoice,
				discordgo.ChannelTypeGuildStageVoice,
			},
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "descripcion",
			Description: "Descripción propia para este tryout (por defecto la del grupo)",
			Required:    false,
		},
	).WithAutoComplete(groupAutoComplete).
		RequiresDatabase()
}

// hostHandler handles the /tryout host command
func hostHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		// 1. Permisos y argumentos
		if !requireTryoutStaff(ctx) {
			return
		}

		groupID := ctx.GetStringOption("grupo")
		if groupID == "" {
			ctx.ReplyEphemeral("❌ Debes especificar un grupo.")
			return
		}

		lockMinutes := ctx.GetIntOption("bloqueo")
		if lockMinutes == 0 {
			lockMinutes = 10
		}
		if lockMinutes < 1 || lockMinutes > 1440 {
			ctx.ReplyEphemeral("❌ El tiempo de bloqueo debe estar entre 1 y 1440 minutos.")
			return
		}

		// 2. Feedback inicial
		embedProcess := &discordgo.MessageEmbed{
			Title:       "📣 Preparando tryout...",
			Description: "Generando el anuncio del tryout...\n\nEspere un momento...",
			Color:       0xFFFF00,
			Footer:      requestedBy(ctx),
			Timestamp:   time.Now().Format(time.RFC3339),
		}
		if err := ctx.ReplyEmbed(embedProcess); err != nil {
			logger.Error(fmt.Sprintf("Error enviando reply inicial: %v", err), "CMD-TryoutHost")
			return
		}

		// 3. Grupo configurado
		group, err := database.GetTryoutGroup(ctx.Interaction.GuildID, groupID)
		if err != nil {
			logger.Error(fmt.Sprintf("Error DB TryoutHost: %v", err), "CMD-TryoutHost")
			ctx.EditReply("❌ Error al consultar la base de datos.")
			return
		}
		if group == nil {
			ctx.EditReplyEmbed(&discordgo.MessageEmbed{
				Title:       "❌ Grupo no configurado",
				Description: fmt.Sprintf("No existe un grupo con ID `%s`.\nAgrégalo con `/tryout group add`.", groupID),
				Color:       0xFF0000,
			})
			return
		}

		description := ctx.GetStringOption("descripcion")
		if description == "" {
			description = group.Description
		}

		cohostID := ""
		if cohost := ctx.GetUserOption("cohost"); cohost != nil {
			cohostID = cohost.ID
		}

		// 4. Invitación al canal de voz
		voiceChannelID := ""
		voiceInvite := ""
		if voice := ctx.GetChannelOption("voz"); voice != nil {
			voiceChannelID = voice.ID
			invite, err := ctx.Client.Gateway().CreateVoiceInvite(voice.ID, voiceInviteMaxAge)
			if err != nil {
				logger.Warn(fmt.Sprintf("No se pudo crear la invitación de voz: %v", err), "CMD-TryoutHost")
			} else {
				voiceInvite = invite
			}
		}

		// 5. Registrar la sesión
		settings, err := database.GetServerSettings(ctx.Interaction.GuildID)
		if err != nil {
			logger.Error(fmt.Sprintf("Error DB TryoutHost: %v", err), "CMD-TryoutHost")
			ctx.EditReply("❌ Error al consultar la base de datos.")
			return
		}

		announceChannelID := ctx.Interaction.ChannelID
		if settings != nil && settings.TryoutChannelID != "" {
			announceChannelID = settings.TryoutChannelID
		}

		lockAt := time.Now().Add(time.Duration(lockMinutes) * time.Minute)

		sessionID, err := database.CreateTryoutSession(database.CreateTryoutSessionOptions{
			GuildID:        ctx.Interaction.GuildID,
			HostID:         ctx.User().ID,
			GroupID:        group.GroupID,
			GroupName:      group.EventName,
			ChannelID:      announceChannelID,
			VoiceChannelID: voiceChannelID,
			VoiceInvite:    voiceInvite,
			Requirements:   group.Requirements,
			Description:    description,
			LockTimestamp:  lockAt,
		})
		if err != nil {
			logger.Error(fmt.Sprintf("Error guardando TryoutSession: %v", err), "CMD-TryoutHost")
			ctx.EditReplyEmbed(&discordgo.MessageEmbed{
				Title:       "❌ Error al registrar el tryout",
				Description: fmt.Sprintf("No se pudo registrar la sesión.\nError: `%v`", err),
				Color:       0xFF0000,
			})
			return
		}

		// 6. Anuncio público
		content := announcementText(ctx.User().ID, cohostID, group.EventName, description, voiceInvite, lockAt, group.Requirements)
		if settings != nil && len(settings.TryoutPingRoleIDs) > 0 {
			mentions := make([]string, 0, len(settings.TryoutPingRoleIDs))
			for _, roleID := range settings.TryoutPingRoleIDs {
				mentions = append(mentions, fmt.Sprintf("<@&%s>", roleID))
			}
			content = strings.Join(mentions, " ") + "\n\n" + content
		}

		if _, err := ctx.Session.ChannelMessageSend(announceChannelID, content); err != nil {
			logger.Error(fmt.Sprintf("Error enviando anuncio de tryout: %v", err), "CMD-TryoutHost")
			ctx.EditReplyEmbed(&discordgo.MessageEmbed{
				Title:       "❌ Error al anunciar el tryout",
				Description: fmt.Sprintf("La sesión `%s` quedó registrada pero el anuncio no se pudo enviar a <#%s>.", sessionID, announceChannelID),
				Color:       0xFF0000,
			})
			return
		}

		// 7. Confirmación y log
		voiceField := "—"
		if voiceInvite != "" {
			voiceField = voiceInvite
		}
		ctx.EditReplyEmbed(&discordgo.MessageEmbed{
			Title:       "✅ Tryout anunciado",
			Description: fmt.Sprintf("El tryout de **%s** fue anunciado en <#%s>.", group.EventName, announceChannelID),
			Color:       0x00FF00,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Sesión", Value: fmt.Sprintf("`%s`", sessionID), Inline: true},
				{Name: "Cierra", Value: fmt.Sprintf("<t:%d:R>", lockAt.Unix()), Inline: true},
				{Name: "Voz", Value: voiceField, Inline: true},
			},
			Footer:    requestedBy(ctx),
			Timestamp: time.Now().Format(time.RFC3339),
		})

		sendTryoutLog(ctx, &discordgo.MessageEmbed{
			Title: "📋 Tryout iniciado",
			Color: 0x3498DB,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Grupo", Value: fmt.Sprintf("%s (`%s`)", group.EventName, group.GroupID), Inline: true},
				{Name: "Anfitrión", Value: fmt.Sprintf("<@%s>", ctx.User().ID), Inline: true},
				{Name: "Sesión", Value: fmt.Sprintf("`%s`", sessionID), Inline: true},
				{Name: "Cierra", Value: fmt.Sprintf("<t:%d:F>", lockAt.Unix()), Inline: false},
			},
			Timestamp: time.Now().Format(time.RFC3339),
		})

		logger.Info(fmt.Sprintf("📣 Tryout %s anunciado por %s en %s", sessionID, ctx.User().String(), ctx.Interaction.GuildID), "CMD-TryoutHost")
	}()

	return nil
}

// groupAutoComplete suggests configured tryout groups
func groupAutoComplete(ctx *discord.CommandContext) {
	go func() {
		defer errors.RecoverMiddleware()()

		groups, err := database.ListTryoutGroups(ctx.Interaction.GuildID)
		if err != nil || len(groups) == 0 {
			return
		}

		partial := strings.ToLower(ctx.GetStringOption("grupo"))

		choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, 25)
		for _, group := range groups {
			if partial != "" &&
				!strings.Contains(strings.ToLower(group.EventName), partial) &&
				!strings.Contains(strings.ToLower(group.GroupID), partial) {
				continue
			}
			choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
				Name:  choiceName(fmt.Sprintf("%s (%s)", group.EventName, group.GroupID)),
				Value: group.GroupID,
			})
			if len(choices) >= 25 {
				break
			}
		}

		ctx.SendAutoCompleteChoices(choices)
	}()
}
