package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Default display windows for ephemeral announcements on the big screen
const (
	AwardSpeechDisplay   = 15 * time.Second
	LotteryResultDisplay = 12 * time.Second
)

// RecentCheckinLimit bounds the "recent activity" column on the big screen
const RecentCheckinLimit = 15

// Request types

type CreateCheckinRequest struct {
	UserName   string `json:"userName"`
	Department string `json:"department"`
	AvatarURL  string `json:"avatarUrl"`
}

type CreateWishCardRequest struct {
	UserName string `json:"userName"`
	Content  string `json:"content"`
}

type CreateQuestionRequest struct {
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
	Reward      int64    `json:"reward"` // in cents
}

type SubmitAnswerRequest struct {
	UserName string `json:"userName"`
	Choice   int    `json:"choice"`
}

type DrawLotteryRequest struct {
	Event      string `json:"event"`
	MaxWinners int    `json:"maxWinners"`
}

type GenerateSpeechRequest struct {
	WinnerName string `json:"winnerName"`
	AwardName  string `json:"awardName"`
}

type GenerateGroupsRequest struct {
	GroupCount int `json:"groupCount"`
}

// Response types

type SubmitAnswerResponse struct {
	Correct bool  `json:"correct"`
	Reward  int64 `json:"reward"`
}

type RewardTotal struct {
	UserName string `json:"userName" db:"user_name"`
	Total    int64  `json:"total" db:"total"`
	Correct  int    `json:"correct" db:"correct"`
}

type StatsResponse struct {
	EventTitle  string `json:"eventTitle"`
	Checkins    int    `json:"checkins"`
	WishCards   int    `json:"wishCards"`
	Connections int    `json:"connections"`
}

// Domain types

type Checkin struct {
	ID         int64     `json:"id" db:"id"`
	UserName   string    `json:"userName" db:"user_name"`
	Department string    `json:"department,omitempty" db:"department"`
	AvatarURL  string    `json:"avatarUrl,omitempty" db:"avatar_url"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

type WishCard struct {
	ID        int64     `json:"id" db:"id"`
	UserName  string    `json:"userName" db:"user_name"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type QuizQuestion struct {
	ID          int64      `json:"id" db:"id"`
	Prompt      string     `json:"prompt" db:"prompt"`
	Options     StringList `json:"options" db:"options"`
	AnswerIndex int        `json:"-" db:"answer_index"` // Never expose in JSON
	Reward      int64      `json:"reward" db:"reward"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

type QuizAnswer struct {
	ID         int64     `json:"id" db:"id"`
	QuestionID int64     `json:"questionId" db:"question_id"`
	UserName   string    `json:"userName" db:"user_name"`
	Choice     int       `json:"choice" db:"choice"`
	Correct    bool      `json:"correct" db:"correct"`
	Reward     int64     `json:"reward" db:"reward"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

type LotteryWinner struct {
	ID         int64     `json:"id" db:"id"`
	Event      string    `json:"event" db:"event"`
	UserName   string    `json:"userName" db:"user_name"`
	Department string    `json:"department,omitempty" db:"department"`
	DrawnAt    time.Time `json:"drawnAt" db:"drawn_at"`
}

type Award struct {
	ID         int64     `json:"id" db:"id"`
	WinnerName string    `json:"winnerName" db:"winner_name"`
	AwardName  string    `json:"awardName" db:"award_name"`
	Speech     string    `json:"speech" db:"speech"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

type Group struct {
	Index   int        `json:"index" db:"idx"`
	Name    string     `json:"name" db:"name"`
	Members StringList `json:"members" db:"members"`
}

// StringList is stored as a JSON array in a TEXT column
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("failed to decode string list: %w", err)
	}
	*l = out
	return nil
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
