// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"log/slog"

	"github.com/danielhkuo/gala-live/events"
	"github.com/danielhkuo/gala-live/metrics"
)

// Broadcaster is what the publisher needs from the registry
type Broadcaster interface {
	Broadcast(e events.Event) (int, error)
}

// Publisher is the post-commit hook mutation handlers call once their
// write has succeeded. Publish never fails the caller.
type Publisher struct {
	b Broadcaster
}

func NewPublisher(b Broadcaster) *Publisher {
	return &Publisher{b: b}
}

// Publish makes exactly one broadcast attempt for e. Errors and panics are
// logged and swallowed; a missed event is picked up by the next snapshot.
func (p *Publisher) Publish(e events.Event) {
	if e == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			metrics.PublishFailures.Inc()
			slog.Error("publish panicked", "kind", e.Kind(), "panic", rec)
		}
	}()

	if p == nil || p.b == nil {
		metrics.PublishFailures.Inc()
		slog.Warn("publish skipped, no broadcaster", "kind", e.Kind())
		return
	}

	delivered, err := p.b.Broadcast(e)
	if err != nil {
		metrics.PublishFailures.Inc()
		slog.Error("publish failed", "kind", e.Kind(), "error", err)
		return
	}
	slog.Debug("event published", "kind", e.Kind(), "delivered", delivered)
}
