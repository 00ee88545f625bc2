// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first if present. Variables
already set in the environment are not overridden.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - DatabaseURL: sqlite file path or PostgreSQL URL (default: gala.db for sqlite)
  - AdminKey: Secret expected in the X-Admin-Key header (required)
  - EventTitle: Title shown on the big screen (default: Annual Gala)
  - LogLevel: debug, info, warn or error (default: info)

# CLI Flags

	-p          Server port
	-d          Database URL
	-t          Database type
	-admin-key  Admin key
	-title      Event title
	-log-level  Log level

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	ADMIN_KEY     → -admin-key
	EVENT_TITLE   → -title
	LOG_LEVEL     → -log-level
*/
package cliparse
