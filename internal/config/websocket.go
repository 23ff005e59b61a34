package config

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
	// ReadLimit caps the size of a single client message.
	ReadLimit int64
}

// NewWebSocket accepts any origin in development and falls back to
// gorilla's same-origin check otherwise.
func NewWebSocket(c *Config) *WebSocket {
	upgrader := websocket.Upgrader{
		HandshakeTimeout: 10 * time.Second,
		ReadBufferSize:   1024,
		WriteBufferSize:  4096,
	}
	if c.Development {
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	}

	return &WebSocket{
		Upgrader:  upgrader,
		ReadLimit: 4096,
	}
}
