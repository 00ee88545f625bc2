// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/danielhkuo/gala-live/events"
	"github.com/danielhkuo/gala-live/metrics"
)

// Conn is one open push session as seen by the registry.
// Send must not block; it either queues the frame or returns an error.
type Conn interface {
	ID() string
	Open() bool
	Send(frame []byte) error
}

// Registry tracks open push connections and fans envelopes out to them.
// The mutex serializes register, unregister and broadcast, so two
// broadcasts are queued on every connection in the same order.
type Registry struct {
	mu    sync.Mutex
	conns map[Conn]struct{}
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[Conn]struct{})}
}

// Register adds conn to the active set. Registering twice is a no-op.
func (r *Registry) Register(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[conn]; ok {
		return
	}
	r.conns[conn] = struct{}{}
	metrics.ConnectionsOpen.Set(float64(len(r.conns)))
	slog.Info("push connection registered", "conn", conn.ID(), "connections", len(r.conns))
}

// Unregister removes conn. Unknown or already removed handles are ignored.
func (r *Registry) Unregister(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[conn]; !ok {
		return
	}
	delete(r.conns, conn)
	metrics.ConnectionsOpen.Set(float64(len(r.conns)))
	slog.Info("push connection unregistered", "conn", conn.ID(), "connections", len(r.conns))
}

// Count returns the number of registered connections
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}

// Broadcast encodes e once and hands the frame to every open connection.
// Connections that are closed or fail to accept the frame are skipped;
// they stay registered until their own close path unregisters them.
// The only error returned is an encoding failure.
func (r *Registry) Broadcast(e events.Event) (int, error) {
	frame, err := events.Encode(e)
	if err != nil {
		return 0, fmt.Errorf("failed to encode broadcast: %w", err)
	}

	kind := string(e.Kind())
	metrics.BroadcastsTotal.WithLabelValues(kind).Inc()

	r.mu.Lock()
	defer r.mu.Unlock()

	delivered := 0
	for conn := range r.conns {
		if deliver(conn, frame) {
			delivered++
			continue
		}
		metrics.DeliveriesSkipped.WithLabelValues(kind).Inc()
	}
	return delivered, nil
}

func deliver(conn Conn, frame []byte) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Warn("push send panicked", "conn", conn.ID(), "panic", rec)
			ok = false
		}
	}()
	if !conn.Open() {
		return false
	}
	if err := conn.Send(frame); err != nil {
		slog.Debug("push send skipped", "conn", conn.ID(), "error", err)
		return false
	}
	return true
}
