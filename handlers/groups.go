// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/gala-live/events"
	"github.com/danielhkuo/gala-live/middleware"
	"github.com/danielhkuo/gala-live/models"
	"github.com/jmoiron/sqlx"
)

type GroupHandler struct {
	db      *sqlx.DB
	pub     Publisher
	shuffle Shuffler
}

func NewGroupHandler(db *sqlx.DB, pub Publisher) *GroupHandler {
	return &GroupHandler{db: db, pub: pub, shuffle: defaultShuffle}
}

// List handles GET /groups
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups := []models.Group{}
	err := h.db.SelectContext(r.Context(), &groups, `
		SELECT idx, name, members FROM team_group ORDER BY idx ASC
	`)
	if err != nil {
		slog.Error("failed to list groups", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, groups)
}

// Generate handles POST /admin/groups
func (h *GroupHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateGroupsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var members []string
	err := h.db.SelectContext(r.Context(), &members, `SELECT user_name FROM checkin ORDER BY id ASC`)
	if err != nil {
		slog.Error("failed to load members", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if req.GroupCount < 1 || req.GroupCount > len(members) {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("groupCount must be between 1 and %d checked-in members", len(members)))
		return
	}

	groups := DealGroups(members, req.GroupCount, h.shuffle)

	if err := h.replaceGroups(r, groups); err != nil {
		slog.Error("failed to store groups", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store groups")
		return
	}

	slog.Info("groups generated", "groups", len(groups), "members", len(members))

	middleware.JSONResponse(w, http.StatusOK, groups)
	h.pub.Publish(events.TeamGroups(groups))
}

// replaceGroups swaps the stored grouping for groups in one transaction
func (h *GroupHandler) replaceGroups(r *http.Request, groups []models.Group) error {
	tx, err := h.db.BeginTxx(r.Context(), nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM team_group`); err != nil {
		return fmt.Errorf("failed to clear groups: %w", err)
	}

	insert := tx.Rebind(`INSERT INTO team_group (idx, name, members) VALUES (?, ?, ?)`)
	for _, g := range groups {
		if _, err := tx.Exec(insert, g.Index, g.Name, g.Members); err != nil {
			return fmt.Errorf("failed to insert group %d: %w", g.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit groups: %w", err)
	}
	return nil
}
