// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the gala API.

# Handler Types

Each handler is a struct holding its database and collaborators:

  - CheckinHandler: Attendee check-in and the check-in snapshot
  - WishHandler: Wish cards
  - QuizHandler: Quiz questions, answers and reward totals
  - LotteryHandler: Lottery draws and winner history
  - AwardHandler: Award speeches
  - GroupHandler: Random team grouping
  - StatsHandler: Counters for the big screen header

Handlers are created via constructor functions:

	checkins := handlers.NewCheckinHandler(db, publisher)

# Live Updates

Mutation handlers publish exactly one event after their write commits:

	POST /checkins             → NEW_CHECKIN
	POST /wishes               → NEW_WISH_CARD
	POST /admin/awards/speech  → AWARD_SPEECH
	POST /admin/lottery/draw   → LOTTERY_RESULT
	POST /admin/groups         → TEAM_GROUPS

Rejected requests publish nothing. The Publisher never fails a request; an
event lost in delivery is recovered by the screen's next snapshot.

# Randomness

Lottery draws and grouping use a Shuffler (rand.Shuffle by default):

	winners := handlers.DrawWinners(pool, 3, rand.Shuffle)
	groups := handlers.DealGroups(members, 4, rand.Shuffle)

DrawWinners picks without replacement. DealGroups deals round-robin, so
group sizes differ by at most one.

# Error Handling

All errors return JSON via middleware.ErrorResponse:

	400 Bad Request      - Invalid input
	401 Unauthorized     - Missing or wrong X-Admin-Key (see middleware.WithAdmin)
	403 Forbidden        - Quiz answer from someone not checked in
	404 Not Found        - Unknown quiz question
	409 Conflict         - Duplicate check-in or answer, lottery with no participants
	502 Bad Gateway      - Speech writer failed
	500 Internal Error   - Database errors

# Testing

Tests run against an in-memory sqlite database from testutil.SetupTestDB
and record events with testutil.RecordingPublisher.
*/
package handlers
