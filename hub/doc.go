// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package hub is the server half of the live push layer.

# Registry

A Registry holds the set of open push connections. It is constructed once
in main and injected wherever it is needed:

	reg := hub.NewRegistry()
	pub := hub.NewPublisher(reg)
	ws := hub.NewTransport(reg)

Broadcast encodes the envelope once and queues it on every open connection.
A connection that is closed or whose queue is full is skipped; it is removed
only by its own close path.

# Publisher

Mutation handlers call Publish after their write commits:

	h.pub.Publish(events.NewCheckin(checkin))

Publish never returns an error. Failures are logged and counted in
gala_push_publish_failures_total.

# Transport

ServeWS upgrades GET /ws to a websocket. The first frame on every connection
is a CONNECTED envelope with the server time. After that the server only
pushes; frames sent by the client are read and discarded.
*/
package hub
