// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

All JSON uses camelCase keys because the same records travel inside push
envelopes to the big screen (see package events).

# Request Types

  - CreateCheckinRequest: userName, department, avatarUrl
  - CreateWishCardRequest: userName, content
  - CreateQuestionRequest: prompt, options, answerIndex, reward
  - SubmitAnswerRequest: userName, choice
  - DrawLotteryRequest: event, maxWinners
  - GenerateSpeechRequest: winnerName, awardName
  - GenerateGroupsRequest: groupCount

# Domain Types

  - Checkin: one per employee, keyed by id
  - WishCard: free-text card shown newest-first
  - QuizQuestion / QuizAnswer: quiz with a per-question cash reward (cents)
  - LotteryWinner: one row per winner per draw
  - Award: generated award speech
  - Group: one team of the current grouping

# Display Constants

	AwardSpeechDisplay   = 15s
	LotteryResultDisplay = 12s
	RecentCheckinLimit   = 15
*/
package models
