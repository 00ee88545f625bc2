// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/danielhkuo/gala-live/events"
)

const (
	// Time allowed to write a frame to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Clients send nothing but control frames
	maxMessageSize = 512

	sendQueueSize = 64
)

var (
	ErrConnClosed = errors.New("connection closed")
	ErrQueueFull  = errors.New("send queue full")
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Transport serves the push endpoint and keeps the registry in sync with
// connection lifecycle.
type Transport struct {
	registry *Registry
	now      func() time.Time
}

func NewTransport(registry *Registry) *Transport {
	return &Transport{registry: registry, now: time.Now}
}

// ServeWS handles GET /ws
func (t *Transport) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error
		slog.Warn("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}

	c := newClient(ws)

	// The handshake frame is queued before registration so it is always
	// the first frame the peer sees.
	hello, err := events.Encode(events.Connected{ServerTime: t.now().UTC()})
	if err == nil {
		c.send <- hello
	}

	t.registry.Register(c)
	defer func() {
		t.registry.Unregister(c)
		c.close()
	}()

	go c.writePump()
	c.readPump()
}

// client is a single websocket session
type client struct {
	id        string
	ws        *websocket.Conn
	send      chan []byte
	open      atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(ws *websocket.Conn) *client {
	c := &client{
		id:   uuid.NewString(),
		ws:   ws,
		send: make(chan []byte, sendQueueSize),
		done: make(chan struct{}),
	}
	c.open.Store(true)
	return c
}

func (c *client) ID() string { return c.id }

func (c *client) Open() bool { return c.open.Load() }

// Send queues a frame without blocking
func (c *client) Send(frame []byte) error {
	if !c.open.Load() {
		return ErrConnClosed
	}
	select {
	case c.send <- frame:
		return nil
	case <-c.done:
		return ErrConnClosed
	default:
		return ErrQueueFull
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		c.open.Store(false)
		close(c.done)
		c.ws.Close()
	})
}

// readPump drains control frames until the peer goes away
func (c *client) readPump() {
	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("push connection error", "conn", c.id, "error", err)
			}
			return
		}
		// Application frames from clients carry no meaning
	}
}

// writePump is the only writer on the socket, so frames leave in queue order
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case frame := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, frame); err != nil {
				slog.Debug("push write failed", "conn", c.id, "error", err)
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
