package ws

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"checkflow/internal/service"
)

const (
	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
	readLimit    = 512
)

// Handler upgrades watch requests to WebSocket connections.
type Handler struct {
	hub        *Hub
	sessionSvc *service.SessionService
	upgrader   websocket.Upgrader
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, sessionSvc *service.SessionService) *Handler {
	return &Handler{
		hub:        hub,
		sessionSvc: sessionSvc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin checks are handled by the deployment proxy
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Watch handles GET /v1/ws/sessions/{id}/watch. Watchers receive
// progress_update and session_completed events as answers come in.
func (h *Handler) Watch(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	// The session must exist before a watcher can attach.
	if _, err := h.sessionSvc.Get(r.Context(), sessionID); err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed for session %s: %v", sessionID, err)
		return
	}

	conn := &Connection{
		SessionID: sessionID,
		Send:      make(chan []byte, 256),
		Hub:       h.hub,
	}
	h.hub.Register(conn)

	go conn.writeLoop(wsConn)
	go conn.readLoop(wsConn)
}

// readLoop drains the socket so control frames are processed. Watchers
// are read-only; any payload from the client is discarded.
func (c *Connection) readLoop(wsConn *websocket.Conn) {
	defer func() {
		c.Hub.Unregister(c)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(readLimit)
	wsConn.SetReadDeadline(time.Now().Add(pongTimeout))
	wsConn.SetPongHandler(func(string) error {
		return wsConn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		if _, _, err := wsConn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Watcher read error on session %s: %v", c.SessionID, err)
			}
			return
		}
	}
}

// writeLoop pushes hub messages to the socket and keeps the connection
// alive with periodic pings.
func (c *Connection) writeLoop(wsConn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				// Hub closed the channel: session deleted or watcher evicted
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := wsConn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
