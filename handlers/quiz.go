// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/gala-live/db"
	"github.com/danielhkuo/gala-live/metrics"
	"github.com/danielhkuo/gala-live/middleware"
	"github.com/danielhkuo/gala-live/models"
	"github.com/jmoiron/sqlx"
)

const maxQuizOptions = 8

type QuizHandler struct {
	db *sqlx.DB
}

func NewQuizHandler(db *sqlx.DB) *QuizHandler {
	return &QuizHandler{db: db}
}

// CreateQuestion handles POST /admin/quiz/questions
func (h *QuizHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	prompt, ok := cleanText(req.Prompt, maxContentLen)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "prompt is required (max 280 characters)")
		return
	}
	if len(req.Options) < 2 || len(req.Options) > maxQuizOptions {
		middleware.ErrorResponse(w, http.StatusBadRequest, "between 2 and 8 options are required")
		return
	}
	options := make(models.StringList, len(req.Options))
	for i, opt := range req.Options {
		label, ok := cleanText(opt, maxTitleLen)
		if !ok {
			middleware.ErrorResponse(w, http.StatusBadRequest, "option labels must be non-empty (max 128 characters)")
			return
		}
		options[i] = label
	}
	if req.AnswerIndex < 0 || req.AnswerIndex >= len(options) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "answerIndex is out of range")
		return
	}
	if req.Reward < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "reward must not be negative")
		return
	}

	q := models.QuizQuestion{
		Prompt:      prompt,
		Options:     options,
		AnswerIndex: req.AnswerIndex,
		Reward:      req.Reward,
		CreatedAt:   db.Now(),
	}
	err := h.db.QueryRowx(h.db.Rebind(`
		INSERT INTO quiz_question (prompt, options, answer_index, reward, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`), q.Prompt, q.Options, q.AnswerIndex, q.Reward, q.CreatedAt).Scan(&q.ID)
	if err != nil {
		slog.Error("failed to insert question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
		return
	}

	slog.Info("quiz question created", "question_id", q.ID, "options", len(q.Options))

	middleware.JSONResponse(w, http.StatusCreated, q)
}

// ListQuestions handles GET /quiz/questions. Answers are never serialized.
func (h *QuizHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions := []models.QuizQuestion{}
	err := h.db.SelectContext(r.Context(), &questions, `
		SELECT id, prompt, options, answer_index, reward, created_at
		FROM quiz_question
		ORDER BY id ASC
	`)
	if err != nil {
		slog.Error("failed to list questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, questions)
}

// SubmitAnswer handles POST /quiz/questions/{id}/answers
func (h *QuizHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	questionID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "invalid question id")
		return
	}

	var req models.SubmitAnswerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	userName, ok := cleanText(req.UserName, maxNameLen)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "userName is required (max 64 characters)")
		return
	}

	var q models.QuizQuestion
	err = h.db.GetContext(r.Context(), &q, h.db.Rebind(`
		SELECT id, prompt, options, answer_index, reward, created_at
		FROM quiz_question WHERE id = ?
	`), questionID)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to load question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if req.Choice < 0 || req.Choice >= len(q.Options) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "choice is out of range")
		return
	}

	// Only checked-in attendees may play
	var checkedIn int
	err = h.db.GetContext(r.Context(), &checkedIn,
		h.db.Rebind(`SELECT COUNT(*) FROM checkin WHERE user_name = ?`), userName)
	if err != nil {
		slog.Error("failed to check attendance", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if checkedIn == 0 {
		middleware.ErrorResponse(w, http.StatusForbidden, "Check in before answering")
		return
	}

	answer := models.QuizAnswer{
		QuestionID: q.ID,
		UserName:   userName,
		Choice:     req.Choice,
		Correct:    req.Choice == q.AnswerIndex,
		CreatedAt:  db.Now(),
	}
	if answer.Correct {
		answer.Reward = q.Reward
	}

	_, err = h.db.ExecContext(r.Context(), h.db.Rebind(`
		INSERT INTO quiz_answer (question_id, user_name, choice, correct, reward, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), answer.QuestionID, answer.UserName, answer.Choice, answer.Correct, answer.Reward, answer.CreatedAt)
	if db.IsUniqueViolation(err) {
		middleware.ErrorResponse(w, http.StatusConflict, "Already answered this question")
		return
	}
	if err != nil {
		slog.Error("failed to insert answer", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit answer")
		return
	}

	metrics.QuizAnswers.WithLabelValues(strconv.FormatBool(answer.Correct)).Inc()
	slog.Info("quiz answered", "question_id", q.ID, "user", userName, "correct", answer.Correct)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitAnswerResponse{
		Correct: answer.Correct,
		Reward:  answer.Reward,
	})
}

// Rewards handles GET /quiz/rewards, highest total first
func (h *QuizHandler) Rewards(w http.ResponseWriter, r *http.Request) {
	totals := []models.RewardTotal{}
	err := h.db.SelectContext(r.Context(), &totals, `
		SELECT user_name,
		       COALESCE(SUM(reward), 0) AS total,
		       SUM(CASE WHEN correct THEN 1 ELSE 0 END) AS correct
		FROM quiz_answer
		GROUP BY user_name
		ORDER BY total DESC, user_name ASC
	`)
	if err != nil {
		slog.Error("failed to aggregate rewards", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, totals)
}
