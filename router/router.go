// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/gala-live/cliparse"
	"github.com/danielhkuo/gala-live/handlers"
	"github.com/danielhkuo/gala-live/hub"
	"github.com/danielhkuo/gala-live/middleware"
	"github.com/danielhkuo/gala-live/speech"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(db *sqlx.DB, cfg cliparse.Config, registry *hub.Registry, writer speech.Writer) *http.ServeMux {
	mux := http.NewServeMux()

	publisher := hub.NewPublisher(registry)
	transport := hub.NewTransport(registry)

	// Initialize handlers
	checkinHandler := handlers.NewCheckinHandler(db, publisher)
	wishHandler := handlers.NewWishHandler(db, publisher)
	quizHandler := handlers.NewQuizHandler(db)
	lotteryHandler := handlers.NewLotteryHandler(db, publisher)
	awardHandler := handlers.NewAwardHandler(db, publisher, writer)
	groupHandler := handlers.NewGroupHandler(db, publisher)
	statsHandler := handlers.NewStatsHandler(db, cfg, registry)

	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.WithAdmin(cfg.AdminKey, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// Push channel (not wrapped: the upgrade needs the raw ResponseWriter)
	mux.HandleFunc("GET /ws", transport.ServeWS)

	// Attendee operations (public)
	mux.HandleFunc("POST /checkins", middleware.WithLogging(checkinHandler.Create))
	mux.HandleFunc("GET /checkins", middleware.WithLogging(checkinHandler.List))
	mux.HandleFunc("POST /wishes", middleware.WithLogging(wishHandler.Create))
	mux.HandleFunc("GET /wishes", middleware.WithLogging(wishHandler.List))
	mux.HandleFunc("GET /groups", middleware.WithLogging(groupHandler.List))
	mux.HandleFunc("GET /stats", middleware.WithLogging(statsHandler.Get))

	mux.HandleFunc("GET /quiz/questions", middleware.WithLogging(quizHandler.ListQuestions))
	mux.HandleFunc("POST /quiz/questions/{id}/answers", middleware.WithLogging(quizHandler.SubmitAnswer))
	mux.HandleFunc("GET /quiz/rewards", middleware.WithLogging(quizHandler.Rewards))
	mux.HandleFunc("GET /lottery/winners", middleware.WithLogging(lotteryHandler.ListWinners))

	// Host operations (admin, requires X-Admin-Key)
	mux.HandleFunc("POST /admin/quiz/questions", admin(quizHandler.CreateQuestion))
	mux.HandleFunc("POST /admin/lottery/draw", admin(lotteryHandler.Draw))
	mux.HandleFunc("POST /admin/awards/speech", admin(awardHandler.GenerateSpeech))
	mux.HandleFunc("POST /admin/groups", admin(groupHandler.Generate))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(cfg.EventTitle + " live API v1"))
	})

	return mux
}
