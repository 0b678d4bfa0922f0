package web

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/PancyStudios/PancyGuardGo/pkg/moderation"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pingPeriod     = 30 * time.Second
	clientBuffer   = 16
	maxFeedClients = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// El feed es de solo lectura para paneles internos
	CheckOrigin: func(r *http.Request) bool { return true },
}

// feedClient es una conexión suscrita al feed de auditoría
type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

// FeedHub retransmite eventos de auditoría a los clientes websocket
// conectados. Implementa moderation.Notifier; un cliente lento pierde
// eventos en vez de bloquear la acción de moderación.
type FeedHub struct {
	mu      sync.RWMutex
	clients map[*feedClient]bool
}

// NewFeedHub crea un hub sin clientes
func NewFeedHub() *FeedHub {
	return &FeedHub{clients: make(map[*feedClient]bool)}
}

var _ moderation.Notifier = (*FeedHub)(nil)

// Notify serializa el evento y lo difunde a todos los clientes
func (h *FeedHub) Notify(_ context.Context, event moderation.AuditEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error(fmt.Sprintf("No se pudo serializar el evento para el feed: %v", err), "AuditFeed")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// Cliente saturado: el evento se descarta para él
		}
	}
}

// ClientCount devuelve el número de clientes conectados
func (h *FeedHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *FeedHub) register(c *feedClient) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.clients) >= maxFeedClients {
		return false
	}
	h.clients[c] = true
	return true
}

func (h *FeedHub) unregister(c *feedClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Handler actualiza la conexión HTTP a websocket y la suscribe al feed
func (h *FeedHub) Handler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn(fmt.Sprintf("Fallo al abrir websocket del feed: %v", err), "AuditFeed")
		return
	}

	client := &feedClient{
		conn: conn,
		send: make(chan []byte, clientBuffer),
	}
	if !h.register(client) {
		conn.Close()
		return
	}

	logger.Debug("Cliente conectado al feed de auditoría", "AuditFeed")

	go h.writePump(client)
	go h.readPump(client)
}

// writePump envía eventos y pings al cliente
func (h *FeedHub) writePump(c *feedClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump descarta la entrada del cliente y detecta la desconexión
func (h *FeedHub) readPump(c *feedClient) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
		logger.Debug("Cliente desconectado del feed de auditoría", "AuditFeed")
	}()

	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
