// Package web provides the live event feed for dashboard clients.
package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SDHSDevs/SDHSBotGo/pkg/logger"
	"github.com/SDHSDevs/SDHSBotGo/pkg/mqtt"
	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

const writeTimeout = 10 * time.Second

// LiveEvent is a single frame pushed to connected dashboards.
type LiveEvent struct {
	Kind string      `json:"kind"`
	Data interface{} `json:"data"`
	At   int64       `json:"at"`
}

// LiveHub fans events out to every connected websocket client.
type LiveHub struct {
	clients    map[*websocket.Conn]bool
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	events     chan LiveEvent
}

// NewLiveHub creates a hub. Run must be started for it to deliver anything.
func NewLiveHub() *LiveHub {
	return &LiveHub{
		clients:    make(map[*websocket.Conn]bool),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		events:     make(chan LiveEvent, 16),
	}
}

// Run owns the client set. All membership changes and writes happen here.
func (h *LiveHub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.clients[conn] = true
			logger.Debug(fmt.Sprintf("Cliente conectado al feed en vivo (%d activos)", len(h.clients)), "WebServer")

		case conn := <-h.unregister:
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}

		case event := <-h.events:
			frame, err := json.Marshal(event)
			if err != nil {
				continue
			}
			for conn := range h.clients {
				conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
					delete(h.clients, conn)
					conn.Close()
				}
			}
		}
	}
}

// Broadcast queues an event for every connected client. Drops the event if
// the hub is backed up rather than blocking the caller.
func (h *LiveHub) Broadcast(kind string, data interface{}) {
	event := LiveEvent{
		Kind: kind,
		Data: data,
		At:   time.Now().UnixMilli(),
	}

	select {
	case h.events <- event:
	default:
		logger.Debug("Feed en vivo saturado, evento descartado", "WebServer")
	}
}

// BroadcastEvent pushes a moderation event to dashboard clients and mirrors
// it to the MQTT broker. Safe to call before the web server is initialized.
func BroadcastEvent(kind string, data interface{}) {
	if s := Get(); s != nil {
		s.hub.Broadcast(kind, data)
	}
	mqtt.PublishModerationEvent(kind, data)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Dashboards are served from another origin; host filtering already
	// happened in the logs middleware.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveHandler upgrades the request and keeps the connection registered
// until the peer goes away.
func liveHandler(c *gin.Context) {
	s := Get()
	if s == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Service Unavailable",
			"message": "El feed en vivo no está disponible.",
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn(fmt.Sprintf("Error actualizando conexión websocket: %v", err), "WebServer")
		return
	}

	s.hub.register <- conn

	// Reads are discarded; the loop exists to notice the peer closing.
	go func() {
		conn.SetReadLimit(512)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.hub.unregister <- conn
				return
			}
		}
	}()
}
