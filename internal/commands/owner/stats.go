// Package owner - /owner stats command
package owner

import (
	"fmt"
	"runtime"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/errors"
	"github.com/bwmarrin/discordgo"
)

// createStatsCommand creates the /owner stats subcommand
func createStatsCommand() *discord.Command {
	return discord.NewCommand(
		"stats",
		"Muestra estadísticas internas del proceso",
		"owner",
		ownerStatsHandler,
	).RequiresDatabase().AsDev()
}

func ownerStatsHandler(ctx *discord.CommandContext) error {
	go func() {
		defer errors.RecoverMiddleware()()

		if !requireOwner(ctx) {
			return
		}

		ctx.Defer()

		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		dbStatus := "❌ Sin conexión"
		if db := database.Get(); db != nil {
			if latency, err := db.Ping(); err == nil {
				dbStatus = fmt.Sprintf("✅ %s", latency.Round(time.Millisecond))
			}
		}

		blacklistCount := 0
		if entries, err := database.GetAllBlacklistEntries(); err == nil {
			blacklistCount = len(entries)
		}

		queryCache := 0
		if database.GlobalBlacklistDM != nil {
			queryCache = database.GlobalBlacklistDM.CacheSize()
		}

		commandStats := "—"
		if stats, err := database.GetCommandStats(ctx.Interaction.GuildID); err == nil {
			commandStats = fmt.Sprintf("%d ejecutados / %d fallidos", stats.Total, stats.Failed)
		}

		uptime := time.Since(ctx.Client.StartTime).Round(time.Second)

		ctx.EditReplyEmbed(&discordgo.MessageEmbed{
			Title: "🔧 Estadísticas internas",
			Color: 0x5865F2,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "🖥 RAM (en uso)", Value: fmt.Sprintf("%.2f MB", float64(m.Alloc)/1024/1024), Inline: true},
				{Name: "🗃 RAM (reservada)", Value: fmt.Sprintf("%.2f MB", float64(m.Sys)/1024/1024), Inline: true},
				{Name: "♻️ Ciclos de GC", Value: fmt.Sprintf("%d", m.NumGC), Inline: true},
				{Name: "⚙️ Goroutines", Value: fmt.Sprintf("%d", runtime.NumGoroutine()), Inline: true},
				{Name: "⏱ Uptime", Value: uptime.String(), Inline: true},
				{Name: "🏠 Servidores", Value: fmt.Sprintf("%d", ctx.Client.GuildCount()), Inline: true},
				{Name: "🗄 MongoDB", Value: dbStatus, Inline: true},
				{Name: "🚫 Blacklist", Value: fmt.Sprintf("%d entradas", blacklistCount), Inline: true},
				{Name: "🧠 Caché de consultas", Value: fmt.Sprintf("%d entradas", queryCache), Inline: true},
				{Name: "📊 Comandos (este servidor)", Value: commandStats, Inline: true},
			},
			Footer: &discordgo.MessageEmbedFooter{
				Text:    "💫 - Developed by SDHS Devs",
				IconURL: ctx.Client.Session.State.User.AvatarURL(""),
			},
			Timestamp: time.Now().Format(time.RFC3339),
		})
	}()

	return nil
}
