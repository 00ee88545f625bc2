// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the gala live API server.

Attendees check in, post wish cards and answer quiz questions from their
phones; hosts draw lotteries, announce awards and split the room into
teams. Every change is pushed over a WebSocket to the big screen, which
reconciles pushes with REST snapshots (see package liveclient and the
bigscreen command).

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	ADMIN_KEY=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -admin-key "..."

Generate a key with:

	go run ./cmd/genkey

# Configuration

Required settings:

  - ADMIN_KEY (-admin-key): Shared secret for the host endpoints
  - DATABASE_URL (-d): Required when DATABASE_TYPE is postgres

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite, file gala.db)
  - EVENT_TITLE (-title): Shown on the big screen (default: Annual Gala)
  - LOG_LEVEL (-log-level): debug, info, warn, error (default: info)
  - SPEECH_TEMPLATE: text/template for award speeches

A .env file in the working directory is loaded first.

# Architecture

  - handlers: HTTP request handlers (check-ins, wishes, quiz, lottery, awards, groups)
  - hub: Push connection registry, publisher and WebSocket transport
  - events: Push envelope and event kinds
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, admin guard, JSON helpers
  - models: Request/response and domain types
  - auth: Admin key validation
  - db: Connection and schema for sqlite and postgres
  - metrics: Prometheus collectors
  - speech: Award speech writer
  - liveclient: Big screen connection supervisor and state
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
