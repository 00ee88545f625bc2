// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /checkins", middleware.WithLogging(handler))

Logs completion (method, path, status, duration_ms) and records
gala_http_requests_total and gala_http_request_duration_seconds labelled by
the matched route pattern. The push endpoint is not wrapped: the upgrade
needs the original http.Hijacker.

# Admin Guard

	mux.HandleFunc("POST /admin/groups", middleware.WithLogging(
		middleware.WithAdmin(cfg.AdminKey, groupHandler.Generate)))

Responds 401 unless X-Admin-Key matches.

# CORS Middleware

Enable cross-origin requests from the phone pages and the big screen:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, OPTIONS with headers
Content-Type, Authorization, X-Admin-Key.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies:

	var req models.CreateCheckinRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
