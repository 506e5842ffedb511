package internal

import (
	"context"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// Conn wraps the read side of a websocket.Conn with an optional
// per-read timeout. The push stream is read-only; posting goes over the
// REST API.
type Conn struct {
	ws          *websocket.Conn
	readTimeout time.Duration
}

func NewConn(ws *websocket.Conn, readTimeout time.Duration) *Conn {
	return &Conn{ws: ws, readTimeout: readTimeout}
}

func (c *Conn) Read(ctx context.Context, v any) error {
	if c.readTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.readTimeout)
		defer cancel()
	}
	return wsjson.Read(ctx, c.ws, v)
}

func (c *Conn) Close(code websocket.StatusCode, reason string) error {
	return c.ws.Close(code, reason)
}
