// Package web expone el servidor HTTP del bot: estado, estadísticas de
// moderación y un feed en vivo de eventos de auditoría por websocket.
package web

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Server representa el servidor web
type Server struct {
	engine *gin.Engine
	feed   *FeedHub
}

var server *Server

// Init inicializa el servidor global
func Init() *Server {
	server = NewServer()
	return server
}

// Get devuelve el servidor global
func Get() *Server {
	return server
}

// NewServer crea el servidor con sus middlewares
func NewServer() *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine: engine,
		feed:   NewFeedHub(),
	}
	s.engine.Use(s.rateLimitMiddleware())
	return s
}

// Engine devuelve el motor Gin subyacente
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Feed devuelve el hub del feed de auditoría
func (s *Server) Feed() *FeedHub {
	return s.feed
}

// Group crea un grupo de rutas
func (s *Server) Group(path string) *gin.RouterGroup {
	return s.engine.Group(path)
}

// StartAsync arranca el servidor en una goroutine
func (s *Server) StartAsync(port string) {
	go func() {
		logger.System(fmt.Sprintf("Servidor web escuchando en el puerto %s", port), "WebServer")
		if err := s.engine.Run(":" + port); err != nil {
			logger.Error(fmt.Sprintf("Error en el servidor web: %v", err), "WebServer")
		}
	}()
}

// rateLimitMiddleware limita las solicitudes por IP
func (s *Server) rateLimitMiddleware() gin.HandlerFunc {
	type clientInfo struct {
		count   int
		resetAt time.Time
	}
	var mu sync.Mutex
	clients := make(map[string]*clientInfo)

	const (
		window      = 60 * time.Second
		maxRequests = 100
	)

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		info, exists := clients[ip]
		if !exists || now.After(info.resetAt) {
			clients[ip] = &clientInfo{count: 1, resetAt: now.Add(window)}
			mu.Unlock()
			c.Next()
			return
		}
		info.count++
		count := info.count
		mu.Unlock()

		if count > maxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Demasiadas solicitudes, por favor intente de nuevo más tarde.",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
