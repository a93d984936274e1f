package websocket

import (
	"net"
	"sync"

	"github.com/gorilla/websocket"
)

// Conn wraps a *websocket.Conn with a write lock. gorilla/websocket
// permits only one writer at a time, and the leaderboard handler writes
// from both its read loop and the Redis subscription goroutine.
type Conn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// NewConn wraps an upgraded connection.
func NewConn(conn *websocket.Conn) *Conn {
	return &Conn{conn: conn}
}

// Close closes the underlying connection.
func (c *Conn) Close() error {
	return c.conn.Close()
}

// RemoteAddr returns the remote network address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}
