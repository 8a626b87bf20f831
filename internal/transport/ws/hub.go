package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgProgressUpdate   MessageType = "progress_update"
	MsgSessionCompleted MessageType = "session_completed"
	MsgSessionClosed    MessageType = "session_closed"
	MsgError            MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Connection represents one WebSocket watcher
type Connection struct {
	SessionID string
	Send      chan []byte
	Hub       *Hub
}

// envelope is the internal fan-out unit carried on the hub's channel.
type envelope struct {
	sessionID  string
	message    *Message
	disconnect bool
}

// Hub fans session events out to WebSocket watchers. A session can
// have any number of watchers (the client filling in the flow plus
// dashboards following along). All channel operations funnel through
// run so the watcher registry has a single writer.
type Hub struct {
	mu       sync.RWMutex
	watchers map[string]map[*Connection]bool

	register   chan *Connection
	unregister chan *Connection
	events     chan envelope
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		watchers:   make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		events:     make(chan envelope, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.addWatcher(conn)
		case conn := <-h.unregister:
			h.dropWatcher(conn)
		case ev := <-h.events:
			h.fanOut(ev)
		}
	}
}

func (h *Hub) addWatcher(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.watchers[conn.SessionID] == nil {
		h.watchers[conn.SessionID] = make(map[*Connection]bool)
	}
	h.watchers[conn.SessionID][conn] = true
	log.Printf("Watcher attached to session %s", conn.SessionID)
}

func (h *Hub) dropWatcher(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.watchers[conn.SessionID]
	if !conns[conn] {
		return
	}
	delete(conns, conn)
	close(conn.Send)
	if len(conns) == 0 {
		delete(h.watchers, conn.SessionID)
	}
	log.Printf("Watcher detached from session %s", conn.SessionID)
}

func (h *Hub) fanOut(ev envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conns := h.watchers[ev.sessionID]
	if ev.message != nil {
		data, err := json.Marshal(ev.message)
		if err == nil {
			for conn := range conns {
				select {
				case conn.Send <- data:
				default:
					// Slow watcher; skip rather than block the hub
				}
			}
		}
	}
	if ev.disconnect {
		for conn := range conns {
			close(conn.Send)
		}
		delete(h.watchers, ev.sessionID)
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToSession fans a message out to every watcher of a session
// (implements service.Broadcaster).
func (h *Hub) BroadcastToSession(sessionID string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Broadcast marshal error for session %s: %v", sessionID, err)
		return
	}
	h.events <- envelope{
		sessionID: sessionID,
		message:   &Message{Type: MessageType(msgType), Payload: data},
	}
}

// DisconnectSession notifies and closes every watcher of a session
// (implements service.Broadcaster).
func (h *Hub) DisconnectSession(sessionID string) {
	payload, _ := json.Marshal(map[string]string{"sessionId": sessionID})
	h.events <- envelope{
		sessionID:  sessionID,
		message:    &Message{Type: MsgSessionClosed, Payload: payload},
		disconnect: true,
	}
}
