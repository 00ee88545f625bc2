// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/danielhkuo/gala-live/auth"
	"github.com/danielhkuo/gala-live/cliparse"
	"github.com/danielhkuo/gala-live/db"
	"github.com/danielhkuo/gala-live/events"
	"github.com/danielhkuo/gala-live/models"
	"github.com/jmoiron/sqlx"
)

// TestAdminKey is the admin key in GetTestConfig
const TestAdminKey = "test-admin-key"

// SetupTestDB creates a fresh in-memory sqlite database with the full schema.
// The database is closed when the test ends.
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.Open(db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: db.TypeSQLite,
		DatabaseURL:  ":memory:",
		AdminKey:     TestAdminKey,
		EventTitle:   "Test Gala",
		LogLevel:     "error",
	}
}

// AdminHeaders returns headers carrying the test admin key
func AdminHeaders() map[string]string {
	return map[string]string{auth.AdminKeyHeader: TestAdminKey}
}

// CreateTestCheckin inserts a check-in and returns it with its ID
func CreateTestCheckin(t *testing.T, conn *sqlx.DB, userName, department string) models.Checkin {
	t.Helper()

	c := models.Checkin{UserName: userName, Department: department, CreatedAt: db.Now()}
	err := conn.QueryRowx(conn.Rebind(`
		INSERT INTO checkin (user_name, department, avatar_url, created_at)
		VALUES (?, ?, '', ?)
		RETURNING id
	`), c.UserName, c.Department, c.CreatedAt).Scan(&c.ID)
	if err != nil {
		t.Fatalf("Failed to create test checkin: %v", err)
	}

	return c
}

// CreateTestQuestion inserts a quiz question and returns its ID
func CreateTestQuestion(t *testing.T, conn *sqlx.DB, options []string, answerIndex int, reward int64) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRowx(conn.Rebind(`
		INSERT INTO quiz_question (prompt, options, answer_index, reward, created_at)
		VALUES ('Test question?', ?, ?, ?, ?)
		RETURNING id
	`), models.StringList(options), answerIndex, reward, db.Now()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	return id
}

// RecordingPublisher collects published events for assertions
type RecordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *RecordingPublisher) Publish(e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

// Events returns a copy of everything published so far
func (p *RecordingPublisher) Events() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
