// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/gala-live/cliparse"
	"github.com/danielhkuo/gala-live/middleware"
	"github.com/danielhkuo/gala-live/models"
	"github.com/jmoiron/sqlx"
)

// ConnectionCounter reports live push connections; *hub.Registry satisfies it
type ConnectionCounter interface {
	Count() int
}

type StatsHandler struct {
	db    *sqlx.DB
	cfg   cliparse.Config
	conns ConnectionCounter
}

func NewStatsHandler(db *sqlx.DB, cfg cliparse.Config, conns ConnectionCounter) *StatsHandler {
	return &StatsHandler{db: db, cfg: cfg, conns: conns}
}

// Get handles GET /stats
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp := models.StatsResponse{EventTitle: h.cfg.EventTitle}

	err := h.db.QueryRowxContext(r.Context(), `
		SELECT (SELECT COUNT(*) FROM checkin), (SELECT COUNT(*) FROM wish_card)
	`).Scan(&resp.Checkins, &resp.WishCards)
	if err != nil {
		slog.Error("failed to count stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if h.conns != nil {
		resp.Connections = h.conns.Count()
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
