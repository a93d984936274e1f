package websocket

import "time"

// WriteTyped sends a strongly-typed response payload over the WebSocket.
// The write lock covers the deadline too, so concurrent senders cannot
// clobber each other's timeouts.
func WriteTyped(c *Conn, v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteJSON(v)
}

// WriteError sends a typed ErrorResponse over the WebSocket.
func WriteError(c *Conn, errMsg string) error {
	return WriteTyped(c, ErrorResponse{
		Event: EventError,
		Error: errMsg,
	})
}

// ReadJSON reads and decodes a message into the provided structure.
// It sets a read deadline. The handler is the sole reader, so reads
// need no lock.
func ReadJSON(c *Conn, v interface{}) error {
	c.conn.SetReadDeadline(time.Now().Add(5 * time.Minute))
	return c.conn.ReadJSON(v)
}
