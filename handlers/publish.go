// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"strings"
	"unicode/utf8"

	"github.com/danielhkuo/gala-live/events"
)

// Publisher receives one event per committed mutation. Implementations
// must not block or fail the request; *hub.Publisher satisfies this.
type Publisher interface {
	Publish(e events.Event)
}

// Field limits for phone-submitted text
const (
	maxNameLen    = 64
	maxURLLen     = 512
	maxContentLen = 280
	maxTitleLen   = 128
)

// cleanText trims s and reports whether it is non-empty and within max runes
func cleanText(s string, max int) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && utf8.RuneCountInString(s) <= max
}
