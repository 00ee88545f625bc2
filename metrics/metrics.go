// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gala_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gala_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Push metrics
	ConnectionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gala_push_connections_open",
			Help: "Currently registered push connections",
		},
	)

	BroadcastsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gala_push_broadcasts_total",
			Help: "Total broadcasts issued",
		},
		[]string{"kind"},
	)

	DeliveriesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gala_push_deliveries_skipped_total",
			Help: "Per-connection deliveries skipped (closed or send failure)",
		},
		[]string{"kind"},
	)

	PublishFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gala_push_publish_failures_total",
			Help: "Publish attempts that failed before reaching any connection",
		},
	)

	// Business metrics
	CheckinsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gala_checkins_created_total",
			Help: "Total check-ins",
		},
	)

	WishCardsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gala_wish_cards_created_total",
			Help: "Total wish cards",
		},
	)

	QuizAnswers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gala_quiz_answers_total",
			Help: "Total quiz answers",
		},
		[]string{"correct"}, // "true" or "false"
	)

	LotteryDraws = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gala_lottery_draws_total",
			Help: "Total lottery draws",
		},
	)
)
