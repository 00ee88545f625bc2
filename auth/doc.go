// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth guards the admin-only endpoints.

# Admin Key

Admin routes (lottery draw, award speech, grouping, quiz authoring) require
the X-Admin-Key header to match the configured ADMIN_KEY:

	if err := auth.ValidateRequest(r, cfg.AdminKey); err != nil {
		// 401
	}

Both values are hashed with SHA-256 and compared with hmac.Equal, so the
comparison takes the same time whatever the input length.

# Generating a Key

	key, err := auth.GenerateAdminKey()

Returns 24 random bytes (192 bits) as URL-safe base64 without padding.
The genkey command prints one.
*/
package auth
