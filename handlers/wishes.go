// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/gala-live/db"
	"github.com/danielhkuo/gala-live/events"
	"github.com/danielhkuo/gala-live/metrics"
	"github.com/danielhkuo/gala-live/middleware"
	"github.com/danielhkuo/gala-live/models"
	"github.com/jmoiron/sqlx"
)

type WishHandler struct {
	db  *sqlx.DB
	pub Publisher
}

func NewWishHandler(db *sqlx.DB, pub Publisher) *WishHandler {
	return &WishHandler{db: db, pub: pub}
}

// Create handles POST /wishes
func (h *WishHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWishCardRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	userName, ok := cleanText(req.UserName, maxNameLen)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "userName is required (max 64 characters)")
		return
	}
	content, ok := cleanText(req.Content, maxContentLen)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "content is required (max 280 characters)")
		return
	}

	card := models.WishCard{
		UserName:  userName,
		Content:   content,
		CreatedAt: db.Now(),
	}

	err := h.db.QueryRowx(h.db.Rebind(`
		INSERT INTO wish_card (user_name, content, created_at)
		VALUES (?, ?, ?)
		RETURNING id
	`), card.UserName, card.Content, card.CreatedAt).Scan(&card.ID)
	if err != nil {
		slog.Error("failed to insert wish card", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save wish card")
		return
	}

	metrics.WishCardsCreated.Inc()
	slog.Info("wish card created", "wish_id", card.ID, "user", card.UserName)

	middleware.JSONResponse(w, http.StatusCreated, card)
	h.pub.Publish(events.NewWishCard(card))
}

// List handles GET /wishes, newest first
func (h *WishHandler) List(w http.ResponseWriter, r *http.Request) {
	cards := []models.WishCard{}
	err := h.db.SelectContext(r.Context(), &cards, `
		SELECT id, user_name, content, created_at
		FROM wish_card
		ORDER BY id DESC
	`)
	if err != nil {
		slog.Error("failed to list wish cards", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, cards)
}
