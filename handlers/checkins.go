// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/gala-live/db"
	"github.com/danielhkuo/gala-live/events"
	"github.com/danielhkuo/gala-live/metrics"
	"github.com/danielhkuo/gala-live/middleware"
	"github.com/danielhkuo/gala-live/models"
	"github.com/jmoiron/sqlx"
)

type CheckinHandler struct {
	db  *sqlx.DB
	pub Publisher
}

func NewCheckinHandler(db *sqlx.DB, pub Publisher) *CheckinHandler {
	return &CheckinHandler{db: db, pub: pub}
}

// Create handles POST /checkins
func (h *CheckinHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCheckinRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	userName, ok := cleanText(req.UserName, maxNameLen)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "userName is required (max 64 characters)")
		return
	}
	department := strings.TrimSpace(req.Department)
	if len([]rune(department)) > maxNameLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "department is too long")
		return
	}
	avatarURL := strings.TrimSpace(req.AvatarURL)
	if len(avatarURL) > maxURLLen {
		middleware.ErrorResponse(w, http.StatusBadRequest, "avatarUrl is too long")
		return
	}

	checkin := models.Checkin{
		UserName:   userName,
		Department: department,
		AvatarURL:  avatarURL,
		CreatedAt:  db.Now(),
	}

	err := h.db.QueryRowx(h.db.Rebind(`
		INSERT INTO checkin (user_name, department, avatar_url, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`), checkin.UserName, checkin.Department, checkin.AvatarURL, checkin.CreatedAt).Scan(&checkin.ID)
	if db.IsUniqueViolation(err) {
		middleware.ErrorResponse(w, http.StatusConflict, "Already checked in")
		return
	}
	if err != nil {
		slog.Error("failed to insert checkin", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to check in")
		return
	}

	metrics.CheckinsCreated.Inc()
	slog.Info("checked in", "checkin_id", checkin.ID, "user", checkin.UserName)

	middleware.JSONResponse(w, http.StatusCreated, checkin)
	h.pub.Publish(events.NewCheckin(checkin))
}

// List handles GET /checkins, oldest first
func (h *CheckinHandler) List(w http.ResponseWriter, r *http.Request) {
	checkins := []models.Checkin{}
	err := h.db.SelectContext(r.Context(), &checkins, `
		SELECT id, user_name, department, avatar_url, created_at
		FROM checkin
		ORDER BY id ASC
	`)
	if err != nil {
		slog.Error("failed to list checkins", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, checkins)
}
