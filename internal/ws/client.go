package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"telegram_initdata/internal/initdata"
	"telegram_initdata/internal/logger"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = 25 * time.Second

	// init data is capped at 4096 bytes; leave room for the envelope
	maxMessageSize = 8192
	verifyTimeout  = 5 * time.Second
)

type Client struct {
	Conn *websocket.Conn
	Send chan []byte

	hub       *Hub
	log       *slog.Logger
	done      chan struct{}
	closeOnce sync.Once
}

func NewClient(conn *websocket.Conn, hub *Hub, log *slog.Logger) *Client {
	return &Client{
		Conn: conn,
		Send: make(chan []byte, 16),
		hub:  hub,
		log:  log,
		done: make(chan struct{}),
	}
}

// Run serves the connection until the peer goes away.
func (c *Client) Run() {
	if !c.hub.register(c) {
		_ = c.Conn.Close()
		return
	}
	defer c.hub.unregister(c)

	go c.writePump()
	c.queue(map[string]string{"type": MsgReady})
	c.readPump()
}

func (c *Client) readPump() {
	defer c.stop()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug("ws read error", "error", err)
			}
			return
		}
		c.handle(msg)
	}
}

func (c *Client) handle(msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		c.queue(ErrorPayload{Type: MsgError, Message: "bad frame"})
		return
	}

	switch env.Type {
	case MsgPing:
		c.queue(map[string]string{"type": MsgPong})
	case MsgAuth:
		c.queue(c.verify(env.InitData))
	default:
		c.queue(ErrorPayload{Type: MsgError, Message: "unknown type"})
	}
}

func (c *Client) verify(raw string) AuthResultPayload {
	ctx, cancel := context.WithTimeout(logger.IntoContext(context.Background(), c.log), verifyTimeout)
	defer cancel()

	data, err := c.hub.verifier.Authenticate(ctx, raw)
	if err != nil {
		switch kind := initdata.Kind(err); kind {
		case "internal", "empty_token":
			c.log.Error("ws verify failed", "error", err)
			return AuthResultPayload{Type: MsgAuthResult, Error: "internal error"}
		default:
			return AuthResultPayload{Type: MsgAuthResult, Error: "invalid init data", Reason: kind}
		}
	}
	return AuthResultPayload{Type: MsgAuthResult, OK: true, InitData: data}
}

func (c *Client) queue(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		c.log.Error("ws encode", "error", err)
		return
	}
	select {
	case c.Send <- b:
	case <-c.done:
	default:
		// slow reader; drop the connection rather than block the read loop
		c.stop()
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case msg := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.Conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (c *Client) stop() {
	c.closeOnce.Do(func() { close(c.done) })
}
