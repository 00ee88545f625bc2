// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the gala API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, registry, speechWriter)

The registry is shared by the push endpoint (connections register there)
and the mutation handlers (events are broadcast through it).

# Endpoints

Health and monitoring:

	GET /health
	GET /metrics - Prometheus exposition

Push channel:

	GET /ws - WebSocket; CONNECTED first, then one frame per mutation

Attendees (public):

	POST /checkins                    - Check in
	GET  /checkins                    - Check-in snapshot, oldest first
	POST /wishes                      - Post a wish card
	GET  /wishes                      - Wish cards, newest first
	GET  /groups                      - Current team grouping
	GET  /stats                       - Header counters
	GET  /quiz/questions              - Questions without answers
	POST /quiz/questions/{id}/answers - Answer a question
	GET  /quiz/rewards                - Reward totals per attendee
	GET  /lottery/winners             - All drawn winners

Host (admin, requires X-Admin-Key):

	POST /admin/quiz/questions - Add a question
	POST /admin/lottery/draw   - Draw winners
	POST /admin/awards/speech  - Announce an award
	POST /admin/groups         - Regroup checked-in attendees
*/
package router
