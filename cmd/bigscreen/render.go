// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/gala-live/liveclient"
	"github.com/danielhkuo/gala-live/models"
)

const (
	clearScreen  = "\033[H\033[2J"
	maxWishLines = 10
)

// render prints one frame of the big screen. Announcements overlay the
// current view.
func render(w io.Writer, s *liveclient.Screen, stats models.StatsResponse, state liveclient.State, now time.Time) {
	var b strings.Builder
	b.WriteString(clearScreen)

	title := stats.EventTitle
	if title == "" {
		title = "Gala"
	}
	fmt.Fprintf(&b, "== %s ==  %s checked in · %s wishes · %s screens · push %s\n\n",
		title,
		humanize.Comma(int64(len(s.Checkins()))),
		humanize.Comma(int64(len(s.WishCards()))),
		humanize.Comma(int64(stats.Connections)),
		state)

	if award, ok := s.Award(); ok {
		fmt.Fprintf(&b, "*** %s: %s ***\n%s\n\n", award.AwardName, award.WinnerName, award.Speech)
	}
	if result, ok := s.Lottery(); ok {
		fmt.Fprintf(&b, "*** %s winners ***\n", result.Event)
		for i, winner := range result.Winners {
			fmt.Fprintf(&b, "  %s  %s", humanize.Ordinal(i+1), winner.UserName)
			if winner.Department != "" {
				fmt.Fprintf(&b, " (%s)", winner.Department)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	switch s.View() {
	case liveclient.ViewWishes:
		b.WriteString("Wish wall\n")
		for i, card := range s.WishCards() {
			if i == maxWishLines {
				break
			}
			fmt.Fprintf(&b, "  %q  (%s, %s)\n", card.Content, card.UserName,
				humanize.RelTime(card.CreatedAt, now, "ago", "from now"))
		}
	case liveclient.ViewGroups:
		b.WriteString("Teams\n")
		for _, g := range s.Groups() {
			fmt.Fprintf(&b, "  %s: %s\n", g.Name, strings.Join(g.Members, ", "))
		}
	default:
		b.WriteString("Recent check-ins\n")
		for _, c := range s.Recent() {
			fmt.Fprintf(&b, "  %s", c.UserName)
			if c.Department != "" {
				fmt.Fprintf(&b, " · %s", c.Department)
			}
			fmt.Fprintf(&b, "  %s\n", humanize.RelTime(c.CreatedAt, now, "ago", "from now"))
		}
	}

	io.WriteString(w, b.String())
}
