// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/gala-live/auth"
	"github.com/danielhkuo/gala-live/metrics"
	"github.com/danielhkuo/gala-live/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestWithLogging_PassesThrough(t *testing.T) {
	testCases := []struct {
		name       string
		write      func(w http.ResponseWriter)
		wantStatus int
		wantBody   string
	}{
		{"implicit 200", func(w http.ResponseWriter) { w.Write([]byte("[]")) }, http.StatusOK, "[]"},
		{"created", func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":1}`))
		}, http.StatusCreated, `{"id":1}`},
		{"conflict", func(w http.ResponseWriter) { w.WriteHeader(http.StatusConflict) }, http.StatusConflict, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := WithLogging(func(w http.ResponseWriter, r *http.Request) { tc.write(w) })
			w := httptest.NewRecorder()

			handler(w, httptest.NewRequest("POST", "/checkins", nil))

			if w.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, w.Code)
			}
			if w.Body.String() != tc.wantBody {
				t.Errorf("Expected body %q, got %q", tc.wantBody, w.Body.String())
			}
		})
	}
}

func TestWithLogging_RecordsMetrics(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /quiz/probe/{id}", WithLogging(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	counter := metrics.HTTPRequestsTotal.WithLabelValues("GET", "GET /quiz/probe/{id}", "418")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"1", "2"} {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest("GET", "/quiz/probe/"+id, nil))
	}

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("Expected 2 requests under the route pattern, got %v", got)
	}
}

func TestWithAdmin(t *testing.T) {
	called := false
	handler := WithAdmin("secret", func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})

	testCases := []struct {
		name       string
		key        string
		wantStatus int
		wantCalled bool
	}{
		{"missing key", "", http.StatusUnauthorized, false},
		{"wrong key", "nope", http.StatusUnauthorized, false},
		{"correct key", "secret", http.StatusNoContent, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			called = false
			req := httptest.NewRequest("POST", "/admin/groups", nil)
			if tc.key != "" {
				req.Header.Set(auth.AdminKeyHeader, tc.key)
			}
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, w.Code)
			}
			if called != tc.wantCalled {
				t.Errorf("Expected handler called=%v, got %v", tc.wantCalled, called)
			}
		})
	}
}

func TestJSONResponse(t *testing.T) {
	t.Run("empty list stays an array", func(t *testing.T) {
		w := httptest.NewRecorder()
		JSONResponse(w, http.StatusOK, []models.Checkin{})

		if w.Header().Get("Content-Type") != "application/json" {
			t.Errorf("Unexpected Content-Type %q", w.Header().Get("Content-Type"))
		}
		if body := strings.TrimSpace(w.Body.String()); body != "[]" {
			t.Errorf("Expected [], got %s", body)
		}
	})

	t.Run("answer result", func(t *testing.T) {
		w := httptest.NewRecorder()
		JSONResponse(w, http.StatusCreated, models.SubmitAnswerResponse{Correct: true, Reward: 500})

		if w.Code != http.StatusCreated {
			t.Errorf("Expected status 201, got %d", w.Code)
		}
		if body := strings.TrimSpace(w.Body.String()); body != `{"correct":true,"reward":500}` {
			t.Errorf("Unexpected body %s", body)
		}
	})
}

func TestErrorResponse(t *testing.T) {
	for _, status := range []int{
		http.StatusBadRequest,
		http.StatusForbidden,
		http.StatusConflict,
		http.StatusBadGateway,
	} {
		w := httptest.NewRecorder()
		ErrorResponse(w, status, "Already checked in")

		var resp models.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}
		if w.Code != status || resp.Error != http.StatusText(status) || resp.Message != "Already checked in" {
			t.Errorf("status %d: got code %d body %+v", status, w.Code, resp)
		}
	}
}

func TestParseJSONBody(t *testing.T) {
	t.Run("answer request", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/quiz/questions/1/answers",
			strings.NewReader(`{"userName":"Alice","choice":2,"extra":true}`))

		var parsed models.SubmitAnswerRequest
		if err := ParseJSONBody(req, &parsed); err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if parsed.UserName != "Alice" || parsed.Choice != 2 {
			t.Errorf("Unexpected request %+v", parsed)
		}
	})

	for _, body := range []string{"", "{invalid json}", `{"userName":7}`} {
		req := httptest.NewRequest("POST", "/checkins", strings.NewReader(body))
		var parsed models.CreateCheckinRequest
		if err := ParseJSONBody(req, &parsed); err == nil {
			t.Errorf("Expected error for body %q", body)
		}
	}
}

func TestCORS(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("handled"))
	}))

	t.Run("admin preflight", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/admin/lottery/draw", nil)
		req.Header.Set("Origin", "http://host-console.local")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK || w.Body.Len() != 0 {
			t.Errorf("Preflight should stop before the handler, got %d %q", w.Code, w.Body.String())
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "http://host-console.local" {
			t.Error("Expected the request origin to be reflected")
		}
		if !strings.Contains(w.Header().Get("Access-Control-Allow-Headers"), auth.AdminKeyHeader) {
			t.Errorf("Expected %s in allowed headers", auth.AdminKeyHeader)
		}
	})

	t.Run("phone without origin", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("POST", "/checkins", nil))

		if w.Body.String() != "handled" {
			t.Error("Expected next handler to be called")
		}
		if w.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Error("Expected wildcard origin")
		}
	})
}

func TestGetClientIP(t *testing.T) {
	testCases := []struct {
		name       string
		header     string
		value      string
		remoteAddr string
		want       string
	}{
		{"forwarded chain", "X-Forwarded-For", "203.0.113.9, 10.0.0.1", "127.0.0.1:1", "203.0.113.9"},
		{"real ip", "X-Real-IP", "203.0.113.50", "10.0.0.1:1", "203.0.113.50"},
		{"remote addr", "", "", "192.168.1.50:54321", "192.168.1.50"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/ws", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.header != "" {
				req.Header.Set(tc.header, tc.value)
			}
			if got := GetClientIP(req); got != tc.want {
				t.Errorf("Expected %s, got %s", tc.want, got)
			}
		})
	}
}
