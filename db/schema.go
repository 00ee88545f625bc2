// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

func init() {
	// Queries are written with ? placeholders and rebound per driver
	sqlx.BindDriver(TypeSQLite, sqlx.QUESTION)
}

// Open connects to the configured database and verifies the connection.
func Open(dbType, url string) (*sqlx.DB, error) {
	var driver string
	switch dbType {
	case TypeSQLite:
		driver = "sqlite"
	case TypePostgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sqlx.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dbType, err)
	}

	if dbType == TypeSQLite {
		// One writer at a time; also keeps :memory: databases on a single connection
		conn.SetMaxOpenConns(1)
		conn.SetConnMaxLifetime(0)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", dbType, err)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sqlx.DB) error {
	_, err := db.Exec(schemaFor(db.DriverName()))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func schemaFor(driver string) string {
	id, ts := "INTEGER PRIMARY KEY AUTOINCREMENT", "TIMESTAMP"
	if driver == TypePostgres {
		id, ts = "BIGSERIAL PRIMARY KEY", "TIMESTAMPTZ"
	}
	return strings.NewReplacer("{{ID}}", id, "{{TS}}", ts).Replace(schema)
}

// IsUniqueViolation reports whether err comes from a UNIQUE or PRIMARY KEY
// constraint on either supported driver.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

// Now returns the timestamp stored with new rows
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

const schema = `
-- Check-ins (one per employee)
CREATE TABLE IF NOT EXISTS checkin (
    id {{ID}},
    user_name TEXT NOT NULL UNIQUE,
    department TEXT NOT NULL DEFAULT '',
    avatar_url TEXT NOT NULL DEFAULT '',
    created_at {{TS}} NOT NULL
);

-- Wish cards
CREATE TABLE IF NOT EXISTS wish_card (
    id {{ID}},
    user_name TEXT NOT NULL,
    content TEXT NOT NULL,
    created_at {{TS}} NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_wish_card_user ON wish_card(user_name);

-- Quiz
CREATE TABLE IF NOT EXISTS quiz_question (
    id {{ID}},
    prompt TEXT NOT NULL,
    options TEXT NOT NULL,
    answer_index INTEGER NOT NULL,
    reward BIGINT NOT NULL DEFAULT 0 CHECK (reward >= 0),
    created_at {{TS}} NOT NULL
);

CREATE TABLE IF NOT EXISTS quiz_answer (
    id {{ID}},
    question_id BIGINT NOT NULL REFERENCES quiz_question(id) ON DELETE CASCADE,
    user_name TEXT NOT NULL,
    choice INTEGER NOT NULL,
    correct BOOLEAN NOT NULL,
    reward BIGINT NOT NULL DEFAULT 0,
    created_at {{TS}} NOT NULL,
    UNIQUE (question_id, user_name)
);

CREATE INDEX IF NOT EXISTS idx_quiz_answer_user ON quiz_answer(user_name);

-- Lottery winners
CREATE TABLE IF NOT EXISTS lottery_winner (
    id {{ID}},
    event TEXT NOT NULL,
    user_name TEXT NOT NULL,
    department TEXT NOT NULL DEFAULT '',
    drawn_at {{TS}} NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_lottery_winner_event ON lottery_winner(event);

-- Awards
CREATE TABLE IF NOT EXISTS award (
    id {{ID}},
    winner_name TEXT NOT NULL,
    award_name TEXT NOT NULL,
    speech TEXT NOT NULL,
    created_at {{TS}} NOT NULL
);

-- Current team grouping (replaced wholesale)
CREATE TABLE IF NOT EXISTS team_group (
    idx INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    members TEXT NOT NULL
);
`
