// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package liveclient is the display half of the live push layer.

# Supervisor

A Supervisor keeps one push connection alive:

	sup := liveclient.NewSupervisor(pushURL, liveclient.Options{})
	sup.SetHandler(screen.Apply)
	sup.Start()
	defer sup.Close()

States cycle disconnected → connecting → connected → disconnected. Every
close or error schedules a single reconnect after ReconnectDelay (3s by
default). The handler slot can be replaced at any time without touching
the connection.

# Screen

A Screen holds the local collections of one display surface:

  - check-ins, keyed by id, oldest first, plus the 15 most recent
  - wish cards, keyed by id, newest first
  - the current team grouping, replaced wholesale
  - award speech and lottery result slots, last write wins, auto-dismissed
    after 15s and 12s

Pushes that arrive before the first snapshot are held back and replayed on
top of it. Later snapshots only add what is missing; they never undo a push.

# Sync

Sync seeds a Screen from a Fetcher and re-fetches on an interval so a push
missed during a disconnect is eventually shown. The first fetch is retried
until it succeeds, since buffered pushes stay hidden until then:

	err := liveclient.Sync(ctx, client, screen, liveclient.DefaultRefreshInterval, liveclient.DefaultReconnectDelay)
*/
package liveclient
