// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package liveclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/gala-live/events"
)

// DefaultReconnectDelay is the fixed wait between a close and the next attempt
const DefaultReconnectDelay = 3 * time.Second

// PushPath is where the server exposes the push transport
const PushPath = "/ws"

// State of the supervised connection
type State int32

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// Handler receives every decoded push event, including CONNECTED
type Handler func(events.Event)

// Transport is one open push connection
type Transport interface {
	ReadMessage() ([]byte, error)
	Close() error
}

// DialFunc opens a Transport to url
type DialFunc func(ctx context.Context, url string) (Transport, error)

// Options configures a Supervisor. Zero values select the defaults.
type Options struct {
	ReconnectDelay time.Duration
	Dial           DialFunc
	Clock          Clock
}

// Supervisor owns the lifecycle of a single push connection: it connects,
// notices close or error, and reconnects after a fixed delay.
type Supervisor struct {
	url   string
	delay time.Duration
	dial  DialFunc
	clock Clock

	ctx    context.Context
	cancel context.CancelFunc

	// handler is read on every frame so replacing it takes effect at once
	handler atomic.Pointer[Handler]

	mu     sync.Mutex
	state  State
	conn   Transport
	timer  Timer
	gen    uint64
	closed bool
}

func NewSupervisor(pushURL string, opts Options) *Supervisor {
	if opts.ReconnectDelay <= 0 {
		opts.ReconnectDelay = DefaultReconnectDelay
	}
	if opts.Dial == nil {
		opts.Dial = DialWebSocket
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Supervisor{
		url:    pushURL,
		delay:  opts.ReconnectDelay,
		dial:   opts.Dial,
		clock:  opts.Clock,
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetHandler replaces the current message handler without touching the
// connection. A nil handler drops frames.
func (s *Supervisor) SetHandler(h Handler) {
	if h == nil {
		s.handler.Store(nil)
		return
	}
	s.handler.Store(&h)
}

// State reports the current connection state
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start begins connecting. Calling it while connecting or connected is a no-op.
func (s *Supervisor) Start() {
	s.connect()
}

// Close cancels any pending reconnect, closes the active transport and
// prevents further attempts.
func (s *Supervisor) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	conn := s.conn
	s.conn = nil
	s.state = Disconnected
	s.mu.Unlock()

	s.cancel()
	if conn != nil {
		conn.Close()
	}
}

func (s *Supervisor) connect() {
	s.mu.Lock()
	if s.closed || s.state != Disconnected {
		s.mu.Unlock()
		return
	}
	s.state = Connecting
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	go s.run(gen)
}

func (s *Supervisor) run(gen uint64) {
	conn, err := s.dial(s.ctx, s.url)

	s.mu.Lock()
	if s.closed || gen != s.gen {
		s.mu.Unlock()
		if conn != nil {
			conn.Close()
		}
		return
	}
	if err != nil {
		slog.Warn("push connect failed", "url", s.url, "error", err, "retry_in", s.delay)
		s.disconnectedLocked()
		s.mu.Unlock()
		return
	}
	s.conn = conn
	s.state = Connected
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	slog.Info("push connected", "url", s.url)
	err = s.readLoop(conn)

	// Errors and clean closes take the same path
	conn.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || gen != s.gen {
		return
	}
	slog.Warn("push disconnected", "error", err, "retry_in", s.delay)
	s.conn = nil
	s.disconnectedLocked()
}

// disconnectedLocked schedules one reconnect unless one is already pending
func (s *Supervisor) disconnectedLocked() {
	s.state = Disconnected
	if s.closed || s.timer != nil {
		return
	}
	var t Timer
	t = s.clock.AfterFunc(s.delay, func() {
		s.mu.Lock()
		if s.timer != t {
			// Stopped or superseded after it had already fired
			s.mu.Unlock()
			return
		}
		s.timer = nil
		s.mu.Unlock()
		s.connect()
	})
	s.timer = t
}

func (s *Supervisor) readLoop(conn Transport) error {
	for {
		raw, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		ev, err := events.Decode(raw)
		if err != nil {
			slog.Warn("dropping push frame", "error", err)
			continue
		}
		if h := s.handler.Load(); h != nil {
			(*h)(ev)
		}
	}
}

// WebSocketURL maps an API base URL onto the push endpoint, choosing wss
// for https and ws otherwise.
func WebSocketURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}
	switch u.Scheme {
	case "https", "wss":
		u.Scheme = "wss"
	case "http", "ws":
		u.Scheme = "ws"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", errors.New("server URL has no host")
	}
	u.Path = strings.TrimRight(u.Path, "/") + PushPath
	u.RawQuery = ""
	u.Fragment = ""
	return u.String(), nil
}

type wsTransport struct {
	conn *websocket.Conn
}

func (t wsTransport) ReadMessage() ([]byte, error) {
	_, data, err := t.conn.ReadMessage()
	return data, err
}

func (t wsTransport) Close() error {
	return t.conn.Close()
}

// DialWebSocket is the default DialFunc
func DialWebSocket(ctx context.Context, pushURL string) (Transport, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, pushURL, nil)
	if err != nil {
		return nil, err
	}
	return wsTransport{conn: conn}, nil
}
