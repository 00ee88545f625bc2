// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/gala-live/db"
	"github.com/danielhkuo/gala-live/events"
	"github.com/danielhkuo/gala-live/middleware"
	"github.com/danielhkuo/gala-live/models"
	"github.com/danielhkuo/gala-live/speech"
	"github.com/jmoiron/sqlx"
)

const speechTimeout = 10 * time.Second

type AwardHandler struct {
	db     *sqlx.DB
	pub    Publisher
	writer speech.Writer
}

func NewAwardHandler(db *sqlx.DB, pub Publisher, writer speech.Writer) *AwardHandler {
	return &AwardHandler{db: db, pub: pub, writer: writer}
}

// GenerateSpeech handles POST /admin/awards/speech
func (h *AwardHandler) GenerateSpeech(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateSpeechRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	winnerName, ok := cleanText(req.WinnerName, maxNameLen)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "winnerName is required (max 64 characters)")
		return
	}
	awardName, ok := cleanText(req.AwardName, maxTitleLen)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "awardName is required (max 128 characters)")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), speechTimeout)
	defer cancel()

	text, err := h.writer.Write(ctx, winnerName, awardName)
	if err != nil {
		slog.Error("speech writer failed", "winner", winnerName, "award", awardName, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Failed to write speech")
		return
	}

	award := models.Award{
		WinnerName: winnerName,
		AwardName:  awardName,
		Speech:     text,
		CreatedAt:  db.Now(),
	}
	err = h.db.QueryRowx(h.db.Rebind(`
		INSERT INTO award (winner_name, award_name, speech, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`), award.WinnerName, award.AwardName, award.Speech, award.CreatedAt).Scan(&award.ID)
	if err != nil {
		slog.Error("failed to insert award", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store award")
		return
	}

	slog.Info("award speech generated", "award_id", award.ID, "winner", winnerName, "award", awardName)

	middleware.JSONResponse(w, http.StatusCreated, award)
	h.pub.Publish(events.AwardSpeech{
		WinnerName: award.WinnerName,
		AwardName:  award.AwardName,
		Speech:     award.Speech,
	})
}
