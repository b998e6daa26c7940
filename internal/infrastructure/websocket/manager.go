package websocket

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"fleamarket/pkg/logger"
)

// Client pairs one user with one live websocket connection. The ID is unique
// per connection so that a late teardown of a superseded connection can never
// evict its replacement from the registry.
type Client struct {
	ID     string
	UserID int64
	Conn   *websocket.Conn
	Send   chan []byte

	mu     sync.Mutex
	closed bool
}

func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		ID:   uuid.NewString(),
		Conn: conn,
		Send: make(chan []byte, 256),
	}
}

// Close signals the write pump to send a close frame and shut the transport
// down. Safe to call more than once and concurrently with Queue.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

// Queue hands a payload to the write pump without blocking. A closed client
// or a full buffer drops the payload; the poll channel is the durability
// backstop.
func (c *Client) Queue(payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- payload:
		return true
	default:
		return false
	}
}

// Manager is the connection registry: at most one live client per user id.
// Entries are independent per user, so a single mutex around the map is the
// only serialization needed.
type Manager struct {
	mu      sync.RWMutex
	clients map[int64]*Client
}

func NewManager() *Manager {
	return &Manager{
		clients: make(map[int64]*Client),
	}
}

// Register binds a client to a user id. An existing connection for the same
// user is closed and removed first, then the new entry is inserted; this
// ordering guarantees at most one live handle per user at completion. A client
// re-authenticating as a different user drops its previous binding so pushes
// for the old user cannot reach the new user's socket.
func (m *Manager) Register(userID int64, client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if client.UserID != 0 && client.UserID != userID {
		if current, ok := m.clients[client.UserID]; ok && current.ID == client.ID {
			logger.Info("Rebinding connection %s: user %d to user %d", client.ID, client.UserID, userID)
			delete(m.clients, client.UserID)
		}
	}

	if existing, ok := m.clients[userID]; ok {
		logger.Info("Replacing existing connection for user %d", userID)
		existing.Close()
		delete(m.clients, userID)
	}

	client.UserID = userID
	m.clients[userID] = client
	logger.Info("Client registered: user %d (%s)", userID, client.ID)
}

// Unregister removes the entry for the client's user only when the registered
// client is this exact connection. A close racing with a replacement must not
// evict the newer connection.
func (m *Manager) Unregister(client *Client) {
	if client.UserID == 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if current, ok := m.clients[client.UserID]; ok && current.ID == client.ID {
		delete(m.clients, client.UserID)
		current.Close()
		logger.Info("Client unregistered: user %d (%s)", client.UserID, client.ID)
	}
}

func (m *Manager) Lookup(userID int64) (*Client, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	client, ok := m.clients[userID]
	return client, ok
}

// SendToUser delivers a payload to the user's live connection, if any.
// Best-effort: a missing or unwritable connection is not an error, the
// recipient will catch up over the poll channel.
func (m *Manager) SendToUser(userID int64, payload []byte) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	client, ok := m.clients[userID]
	if !ok {
		logger.Debug("No live connection for user %d, skipping push", userID)
		return
	}
	if !client.Queue(payload) {
		logger.Debug("Send buffer full for user %d, dropping push", userID)
	}
}

// CloseAll tears down every registered connection; used at shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for userID, client := range m.clients {
		client.Close()
		delete(m.clients, userID)
	}
}

// FrameHandler processes one inbound frame from a client. Implemented at the
// API boundary, where commands are dispatched to the chat use case.
type FrameHandler interface {
	HandleFrame(client *Client, frame []byte)
}

// ReadPump reads frames from the connection until it closes, then removes the
// registry entry. Messages already persisted stay retrievable via poll.
func (c *Client) ReadPump(m *Manager, handler FrameHandler) {
	defer func() {
		m.Unregister(c)
		c.Close()
		c.Conn.Close()
	}()

	for {
		_, frame, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("websocket read error: %v", err)
			}
			break
		}
		handler.HandleFrame(c, frame)
	}
}

// WritePump sends queued payloads to the connection. Closing the Send channel
// makes it emit a close frame and shut the transport down.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		payload, ok := <-c.Send
		if !ok {
			c.Conn.WriteControl(websocket.CloseMessage, []byte{}, time.Now().Add(time.Second))
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logger.Debug("websocket write error: %v", err)
			return
		}
	}
}
