package server

import (
	"sync"

	"github.com/gorilla/websocket"
)

// playerConn serializes writes to one websocket connection. The
// underlying connection supports a single concurrent writer, but both
// the client's own read loop and session broadcasts from other
// players' read loops write to it.
type playerConn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func newPlayerConn(ws *websocket.Conn) *playerConn {
	return &playerConn{ws: ws}
}

// ReadJSON is only called from the connection's single read loop.
func (c *playerConn) ReadJSON(v interface{}) error {
	return c.ws.ReadJSON(v)
}

func (c *playerConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(v)
}

func (c *playerConn) Close() error {
	return c.ws.Close()
}
