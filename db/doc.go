// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates its schema.

# Drivers

Two drivers are supported:

  - sqlite (modernc.org/sqlite, pure Go): default, also used by tests with ":memory:"
  - postgres (github.com/lib/pq)

	conn, err := db.Open("sqlite", "gala.db")

Handlers write queries with ? placeholders and pass them through
conn.Rebind, so the same SQL runs on both.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - checkin: One row per employee (user_name unique)
  - wish_card: Wish cards
  - quiz_question: Questions with hidden answer index and reward (cents)
  - quiz_answer: One answer per user per question
  - lottery_winner: One row per winner per draw
  - award: Generated award speeches
  - team_group: The current grouping only

# Relationships

	quiz_question 1──* quiz_answer

List columns (quiz options, group members) are JSON arrays in TEXT.
*/
package db
