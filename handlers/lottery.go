// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/gala-live/db"
	"github.com/danielhkuo/gala-live/events"
	"github.com/danielhkuo/gala-live/metrics"
	"github.com/danielhkuo/gala-live/middleware"
	"github.com/danielhkuo/gala-live/models"
	"github.com/jmoiron/sqlx"
)

type participant struct {
	UserName   string `db:"user_name"`
	Department string `db:"department"`
}

type LotteryHandler struct {
	db      *sqlx.DB
	pub     Publisher
	shuffle Shuffler
}

func NewLotteryHandler(db *sqlx.DB, pub Publisher) *LotteryHandler {
	return &LotteryHandler{db: db, pub: pub, shuffle: defaultShuffle}
}

// Draw handles POST /admin/lottery/draw
func (h *LotteryHandler) Draw(w http.ResponseWriter, r *http.Request) {
	var req models.DrawLotteryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	event, ok := cleanText(req.Event, maxTitleLen)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event is required (max 128 characters)")
		return
	}
	if req.MaxWinners < 1 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "maxWinners must be at least 1")
		return
	}

	var pool []participant
	err := h.db.SelectContext(r.Context(), &pool, `
		SELECT user_name, department FROM checkin ORDER BY id ASC
	`)
	if err != nil {
		slog.Error("failed to load participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if len(pool) == 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "No checked-in participants to draw from")
		return
	}

	drawn := DrawWinners(pool, req.MaxWinners, h.shuffle)

	winners, err := h.saveWinners(r, event, drawn)
	if err != nil {
		slog.Error("failed to store winners", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store winners")
		return
	}

	metrics.LotteryDraws.Inc()
	slog.Info("lottery drawn", "event", event, "winners", len(winners), "pool", len(pool))

	result := events.LotteryResult{Event: event, Winners: winners}
	middleware.JSONResponse(w, http.StatusCreated, result)
	h.pub.Publish(result)
}

func (h *LotteryHandler) saveWinners(r *http.Request, event string, drawn []participant) ([]models.LotteryWinner, error) {
	tx, err := h.db.BeginTxx(r.Context(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := db.Now()
	insert := tx.Rebind(`
		INSERT INTO lottery_winner (event, user_name, department, drawn_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`)

	winners := make([]models.LotteryWinner, 0, len(drawn))
	for _, p := range drawn {
		winner := models.LotteryWinner{
			Event:      event,
			UserName:   p.UserName,
			Department: p.Department,
			DrawnAt:    now,
		}
		if err := tx.QueryRowx(insert, winner.Event, winner.UserName, winner.Department, winner.DrawnAt).Scan(&winner.ID); err != nil {
			return nil, fmt.Errorf("failed to insert winner: %w", err)
		}
		winners = append(winners, winner)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit winners: %w", err)
	}
	return winners, nil
}

// ListWinners handles GET /lottery/winners
func (h *LotteryHandler) ListWinners(w http.ResponseWriter, r *http.Request) {
	winners := []models.LotteryWinner{}
	err := h.db.SelectContext(r.Context(), &winners, `
		SELECT id, event, user_name, department, drawn_at
		FROM lottery_winner
		ORDER BY id ASC
	`)
	if err != nil {
		slog.Error("failed to list winners", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, winners)
}
