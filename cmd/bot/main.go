// Package main is the entry point for the SDHS Bot Go application.
// It initializes all systems and starts the Discord bot.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/internal/commands"
	"github.com/SDHSDevs/SDHSBotGo/internal/events"
	"github.com/SDHSDevs/SDHSBotGo/pkg/ai"
	"github.com/SDHSDevs/SDHSBotGo/pkg/automod"
	"github.com/SDHSDevs/SDHSBotGo/pkg/bloxlink"
	"github.com/SDHSDevs/SDHSBotGo/pkg/config"
	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/errors"
	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/SDHSDevs/SDHSBotGo/pkg/moderation"
	"github.com/SDHSDevs/SDHSBotGo/pkg/mqtt"
	"github.com/SDHSDevs/SDHSBotGo/pkg/promotion"
	"github.com/SDHSDevs/SDHSBotGo/pkg/roblox"
	"github.com/SDHSDevs/SDHSBotGo/pkg/web"
)

// statusPublishInterval is how often the bot reports itself over MQTT
const statusPublishInterval = 60 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System("Iniciando SDHS Bot Go...", "Main")
	logger.Info(fmt.Sprintf("Directorio de trabajo: %s", getCurrentDir()), "Main")

	// Initialize error handler
	var discordClient *discord.ExtendedClient
	errors.Init(cfg.ErrorWebhook, func() {
		if discordClient != nil {
			err := discordClient.Stop()
			if err != nil {
				return
			}
		}
	})

	// Initialize database
	db, err := database.Init(cfg.MongoDBURL, cfg.DBName)
	if err != nil {
		logger.Error(fmt.Sprintf("Error connecting to database: %v", err), "Main")
		// Continue without database- it will attempt to reconnect
	}
	defer func() {
		if db != nil {
			err := db.Disconnect()
			if err != nil {
				return
			}
		}
	}()

	// Initialize global DataManagers
	if db != nil {
		database.InitGlobalDataManagers(db)

		// Initialize blacklist cache at startup and start auto-refresh
		if err := database.InitBlacklistCache(); err != nil {
			logger.Warn(fmt.Sprintf("Error inicializando caché de blacklist: %v", err), "Main")
		}
		database.StartBlacklistCacheRefresh()
		defer database.StopBlacklistCacheRefresh()
	}

	// Initialize MQTT
	mqttClientID := "sdhsbot"
	if !cfg.IsProd() {
		mqttClientID = "sdhsbot_canary"
	}

	mqttClient := mqtt.Init(
		cfg.MQTTHost,
		cfg.MQTTPort,
		cfg.MQTTUser,
		cfg.MQTTPassword,
		mqttClientID,
	)
	defer mqttClient.Destroy()

	// Initialize web server
	webServer := web.Init(cfg.LogsWebServerHook)
	web.SetupAPIRoutes(webServer)
	webServer.StartAsync(cfg.Port)

	// Initialize Discord client
	discordClient, err = discord.Init(cfg.BotToken)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		os.Exit(1)
	}

	// Initialize the automod pipeline and its collaborators
	checker := automod.Init(cfg.ProfanityListURL, cfg.RobloxGroupID)
	defer checker.Stop()
	promotion.Init()
	if cfg.OpenAIAPIKey != "" {
		ai.Init(cfg.OpenAIAPIKey)
	}
	if cfg.BloxlinkAPIKey != "" {
		bloxlink.Init(cfg.BloxlinkAPIKey)
	}
	if cfg.RobloxCookie != "" {
		roblox.Init(cfg.RobloxCookie, cfg.RobloxGroupID)
	}

	// Initialize the moderation orchestrator over the live gateway
	moderation.Init(moderation.Options{
		Gateway:  discordClient.Gateway(),
		Registry: moderation.MongoRegistry{},
		Ledger:   moderation.MongoLedger{},
		Settings: moderation.MongoSettings{},
		Resolver: moderation.BloxlinkResolver{},
		AdminIDs: cfg.GlobalBanAdmins,
	})

	// Register commands using the commands package
	commands.RegisterAll(discordClient)

	// Register events using the events package
	events.RegisterAll(discordClient)

	// Start the bot
	if err := discordClient.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Error starting Discord client: %v", err), "Main")
		os.Exit(1)
	}
	defer func(discordClient *discord.ExtendedClient) {
		err := discordClient.Stop()
		if err != nil {
			return
		}
	}(discordClient)

	// Telemetry over MQTT: stats responder and periodic status publishes
	startTelemetry(discordClient, mqttClient)

	logger.Success("SDHS Bot Go iniciado correctamente!", "Main")

	// Wait for interrupt signal
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.System("Apagando SDHS Bot Go...", "Main")
}

// startTelemetry answers stats requests and publishes the bot status
// on a fixed interval
func startTelemetry(client *discord.ExtendedClient, mc *mqtt.MqttCommunicator) {
	if mc == nil {
		return
	}

	mc.On("stats", func(payload map[string]interface{}) (interface{}, error) {
		stats := map[string]interface{}{
			"guilds":   client.GuildCount(),
			"commands": client.Commands.Size(),
			"uptime":   time.Since(client.StartTime).Seconds(),
		}

		if guildID, ok := payload["guild_id"].(string); ok && guildID != "" {
			if usage, err := database.GetCommandStats(guildID); err == nil {
				stats["command_usage"] = usage
			}
		}

		return stats, nil
	})

	go func() {
		ticker := time.NewTicker(statusPublishInterval)
		defer ticker.Stop()

		for range ticker.C {
			if !mc.IsConnected() {
				continue
			}

			status := map[string]interface{}{
				"online": client.IsReady(),
				"guilds": client.GuildCount(),
				"uptime": time.Since(client.StartTime).Seconds(),
				"at":     time.Now().UnixMilli(),
			}

			if err := mc.Publish("sdhs/status/bot", status); err != nil {
				logger.Debug(fmt.Sprintf("No se pudo publicar el estado del bot: %v", err), "Main")
			}
		}
	}()
}

// getCurrentDir returns the current working directory
func getCurrentDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "unknown"
	}
	return dir
}
