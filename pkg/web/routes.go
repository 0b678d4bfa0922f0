package web

import (
	"net/http"

	"github.com/PancyStudios/PancyGuardGo/pkg/config"
	"github.com/PancyStudios/PancyGuardGo/pkg/database"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/gin-gonic/gin"
)

// SetupAPIRoutes registra las rutas del API y el feed de auditoría
func SetupAPIRoutes(s *Server) {
	api := s.Group("/api")
	{
		api.GET("/status", statusHandler)
		api.GET("/health", healthHandler)
		api.GET("/bot", botInfoHandler)
		api.GET("/feed", s.feed.Handler)
	}
}

// statusHandler devuelve el estado del bot, la base de datos y el feed
func statusHandler(c *gin.Context) {
	db := database.Get()
	client := discord.Get()
	server := Get()

	dbStatus, dbOnline := db.GetStatus()

	botOnline := false
	if client != nil {
		botOnline = client.IsReady()
	}

	feedClients := 0
	if server != nil {
		feedClients = server.Feed().ClientCount()
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
		"feed": gin.H{
			"clients": feedClients,
		},
	})
}

// healthHandler responde un chequeo de salud simple
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "PancyGuard Go is running",
		"version": config.Version,
	})
}

// botInfoHandler devuelve información del bot
func botInfoHandler(c *gin.Context) {
	client := discord.Get()

	if client == nil || !client.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "El bot no está disponible en este momento.",
		})
		return
	}

	user := client.Session.State.User

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"avatar":   user.Avatar,
		"guilds":   client.GuildCount(),
		"uptime":   client.Uptime().String(),
		"isReady":  client.IsReady(),
	})
}
