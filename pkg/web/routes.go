// Package web provides API routes for the web server.
package web

import (
	"net/http"
	"strconv"

	"github.com/SDHSDevs/SDHSBotGo/pkg/database"
	"github.com/SDHSDevs/SDHSBotGo/pkg/discord"
	"github.com/SDHSDevs/SDHSBotGo/pkg/models"
	"github.com/gin-gonic/gin"
)

// SetupAPIRoutes sets up the API routes
func SetupAPIRoutes(s *Server) {
	api := s.Group("/api")
	{
		api.GET("/status", statusHandler)
		api.GET("/health", healthHandler)
	}

	s.POST("/token", tokenHandler)
	s.GET("/live", liveHandler)

	bot := s.Group("/bot", authMiddleware())
	{
		bot.GET("/servers", botServersHandler)
	}

	guild := s.Group("/server/:id", authMiddleware())
	{
		guild.GET("/settings", serverSettingsHandler)
		guild.GET("/tryout-groups", tryoutGroupsHandler)
		guild.GET("/active-tryouts", activeTryoutsHandler)
		guild.GET("/warnings/:user", warningsHandler)
		guild.GET("/command-stats", commandStatsHandler)
		guild.GET("/cases", casesHandler)
	}
}

// statusHandler returns the bot and database status
func statusHandler(c *gin.Context) {
	db := database.Get()
	client := discord.Get()

	dbStatus, dbOnline := db.GetStatus()

	botOnline := false
	if client != nil {
		botOnline = client.IsReady()
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"database": gin.H{
			"status":   dbStatus,
			"isOnline": dbOnline,
		},
		"bot": gin.H{
			"isOnline": botOnline,
		},
	})
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "SDHS Bot Go is running",
	})
}

// botServersHandler lists every guild the bot currently sits in
func botServersHandler(c *gin.Context) {
	client := discord.Get()

	if client == nil || !client.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "El bot no está disponible en este momento.",
		})
		return
	}

	state := client.Session.State
	state.RLock()
	servers := make([]gin.H, 0, len(state.Guilds))
	for _, g := range state.Guilds {
		servers = append(servers, gin.H{
			"id":          g.ID,
			"name":        g.Name,
			"memberCount": g.MemberCount,
			"icon":        g.Icon,
		})
	}
	state.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"count":   len(servers),
		"servers": servers,
	})
}

// serverSettingsHandler returns the stored settings for a guild
func serverSettingsHandler(c *gin.Context) {
	settings, err := database.GetServerSettings(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "No se pudo obtener la configuración del servidor.",
		})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// tryoutGroupsHandler returns the tryout groups registered for a guild
func tryoutGroupsHandler(c *gin.Context) {
	groups, err := database.ListTryoutGroups(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "No se pudieron obtener los grupos de tryout.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(groups),
		"groups": groups,
	})
}

// activeTryoutsHandler returns the tryout sessions still running in a guild
func activeTryoutsHandler(c *gin.Context) {
	sessions, err := database.ListActiveTryouts(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "No se pudieron obtener las sesiones de tryout.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(sessions),
		"sessions": sessions,
	})
}

// warningsHandler returns the active warnings of a member
func warningsHandler(c *gin.Context) {
	warns, err := database.GetWarnings(c.Param("id"), c.Param("user"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "No se pudieron obtener las advertencias.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(warns),
		"warnings": warns,
	})
}

// commandStatsHandler returns command usage counters for a guild.
// With ?recent=N the response also carries the last N executions.
func commandStatsHandler(c *gin.Context) {
	stats, err := database.GetCommandStats(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "No se pudieron obtener las estadísticas de comandos.",
		})
		return
	}

	recent, err := strconv.ParseInt(c.DefaultQuery("recent", "0"), 10, 64)
	if err != nil || recent < 0 || recent > 50 {
		recent = 0
	}
	if recent == 0 {
		c.JSON(http.StatusOK, stats)
		return
	}

	entries, err := database.ListRecentCommands(c.Param("id"), recent)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "No se pudieron obtener las ejecuciones recientes.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":  stats,
		"recent": entries,
	})
}

// casesHandler returns the newest moderation cases of a guild,
// optionally filtered to one user with ?user=<id>
func casesHandler(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "25"), 10, 64)
	if err != nil || limit <= 0 || limit > 100 {
		limit = 25
	}

	var cases []*models.Case
	if user := c.Query("user"); user != "" {
		cases, err = database.ListUserCases(c.Param("id"), user, limit)
	} else {
		cases, err = database.ListCases(c.Param("id"), limit)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "No se pudieron obtener los casos de moderación.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(cases),
		"cases": cases,
	})
}
