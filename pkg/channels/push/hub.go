package push

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/FeoreV/telegram-ecommerce-cms-sub017/pkg/logger"
	"github.com/FeoreV/telegram-ecommerce-cms-sub017/pkg/notifications"
)

// Hub tracks the active websocket connections of each recipient and doubles
// as the PUSH channel adapter: Deliver writes the payload to every
// connection the recipient has open.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu    sync.RWMutex
	conns map[string][]*client
}

type client struct {
	conn *websocket.Conn
	mu   sync.Mutex // serializes writes; gorilla allows one concurrent writer
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithHubLogger sets the logger for the Hub.
func WithHubLogger(logger *slog.Logger) HubOption {
	return func(h *Hub) {
		h.logger = logger
	}
}

// NewHub creates an empty push hub.
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		conns:  make(map[string][]*client),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP upgrades the request to a websocket and registers it under the
// recipient id from the `recipientId` query parameter. The connection stays
// registered until the peer disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	recipientID := r.URL.Query().Get("recipientId")
	if recipientID == "" {
		http.Error(w, "recipientId is required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.LogAttrs(r.Context(), slog.LevelWarn, "Failed to upgrade push connection",
			logger.RecipientID(recipientID),
			logger.Error(err),
		)
		return
	}

	c := &client{conn: conn}
	h.register(recipientID, c)

	// Reader loop: drains control/heartbeat frames and detects disconnect.
	go func() {
		defer h.unregister(recipientID, c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) register(recipientID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[recipientID] = append(h.conns[recipientID], c)
}

func (h *Hub) unregister(recipientID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.conns[recipientID]
	for i, existing := range conns {
		if existing == c {
			h.conns[recipientID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.conns[recipientID]) == 0 {
		delete(h.conns, recipientID)
	}
	_ = c.conn.Close()
}

// Connected reports whether the recipient has at least one open connection.
func (h *Hub) Connected(recipientID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[recipientID]) > 0
}

func (h *Hub) Channel() notifications.Channel {
	return notifications.ChannelPush
}

// AttemptDeliver writes the payload as JSON to every open connection of the
// recipient. A recipient with no connection is a delivery failure, not a
// silent success, so callers can fall back to other channels.
func (h *Hub) AttemptDeliver(ctx context.Context, recipientID string, payload notifications.Payload) error {
	h.mu.RLock()
	conns := append([]*client(nil), h.conns[recipientID]...)
	h.mu.RUnlock()

	if len(conns) == 0 {
		return ErrNoActiveConnection
	}

	msg, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	var delivered int
	for _, c := range conns {
		c.mu.Lock()
		err := c.conn.WriteMessage(websocket.TextMessage, msg)
		c.mu.Unlock()
		if err != nil {
			h.logger.LogAttrs(ctx, slog.LevelWarn, "Failed to write push message",
				logger.RecipientID(recipientID),
				logger.NotificationID(payload.ID),
				logger.Error(err),
			)
			continue
		}
		delivered++
	}

	if delivered == 0 {
		return ErrWriteFailed
	}
	return nil
}
