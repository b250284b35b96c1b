package feed

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Manager tracks connected clients and fans out pre-encoded telemetry
// snapshots to all of them. It is the single-symbol collapse of the
// teacher's session.Manager: no ticker-to-locate resolution and no
// per-client format negotiation, since there is exactly one symbol and
// one wire format (JSON, produced upstream by the telemetry sampler).
type Manager struct {
	mu         sync.RWMutex
	clients    map[uint64]*Client
	bufferSize int
}

// NewManager creates a broadcast hub whose clients get an outbound queue
// of bufferSize messages each.
func NewManager(bufferSize int) *Manager {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &Manager{
		clients:    make(map[uint64]*Client),
		bufferSize: bufferSize,
	}
}

// Register adds a newly upgraded connection and returns its Client.
func (m *Manager) Register(conn *websocket.Conn) *Client {
	c := NewClient(conn, m.bufferSize)

	m.mu.Lock()
	m.clients[c.ID] = c
	m.mu.Unlock()

	log.Printf("client %d connected (%s)", c.ID, conn.RemoteAddr())
	return c
}

// Unregister removes and closes a client.
func (m *Manager) Unregister(c *Client) {
	m.mu.Lock()
	delete(m.clients, c.ID)
	m.mu.Unlock()

	c.Close()
	log.Printf("client %d disconnected", c.ID)
}

// Broadcast fans a single pre-encoded message out to every connected
// client. A client whose outbound buffer is full simply drops the
// message (see Client.Send) rather than stalling the broadcaster.
func (m *Manager) Broadcast(data []byte) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.clients {
		c.Send(data)
	}
}

// ClientCount returns the number of connected clients.
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}
