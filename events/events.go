// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/gala-live/models"
)

// Kind is the "type" tag of a push envelope
type Kind string

const (
	KindConnected     Kind = "CONNECTED"
	KindNewCheckin    Kind = "NEW_CHECKIN"
	KindNewWishCard   Kind = "NEW_WISH_CARD"
	KindAwardSpeech   Kind = "AWARD_SPEECH"
	KindLotteryResult Kind = "LOTTERY_RESULT"
	KindTeamGroups    Kind = "TEAM_GROUPS"
)

var (
	ErrMalformed   = errors.New("malformed envelope")
	ErrUnknownKind = errors.New("unknown event kind")
)

// Event is implemented only by the payload types in this package.
type Event interface {
	Kind() Kind
	sealed()
}

// Envelope is the unit of transport. It carries no sequence number;
// ordering is the delivery order on one connection.
type Envelope struct {
	Type Kind            `json:"type"`
	Data json.RawMessage `json:"data"`
}

type Connected struct {
	ServerTime time.Time `json:"serverTime"`
}

type NewCheckin models.Checkin

type NewWishCard models.WishCard

type AwardSpeech struct {
	WinnerName string `json:"winnerName"`
	AwardName  string `json:"awardName"`
	Speech     string `json:"speech"`
}

type LotteryResult struct {
	Event   string                 `json:"event"`
	Winners []models.LotteryWinner `json:"winners"`
}

// TeamGroups is always the complete replacement grouping.
type TeamGroups []models.Group

func (Connected) Kind() Kind     { return KindConnected }
func (NewCheckin) Kind() Kind    { return KindNewCheckin }
func (NewWishCard) Kind() Kind   { return KindNewWishCard }
func (AwardSpeech) Kind() Kind   { return KindAwardSpeech }
func (LotteryResult) Kind() Kind { return KindLotteryResult }
func (TeamGroups) Kind() Kind    { return KindTeamGroups }

func (Connected) sealed()     {}
func (NewCheckin) sealed()    {}
func (NewWishCard) sealed()   {}
func (AwardSpeech) sealed()   {}
func (LotteryResult) sealed() {}
func (TeamGroups) sealed()    {}

// Encode serializes an event into its wire envelope
func Encode(e Event) ([]byte, error) {
	if e == nil {
		return nil, fmt.Errorf("encode: %w", ErrMalformed)
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", e.Kind(), err)
	}
	return json.Marshal(Envelope{Type: e.Kind(), Data: data})
}

// Decode parses a wire envelope into its typed event.
// Invalid JSON yields ErrMalformed; an unrecognised tag yields ErrUnknownKind.
func Decode(raw []byte) (Event, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var (
		ev  Event
		err error
	)
	switch env.Type {
	case KindConnected:
		// The handshake payload is optional
		if isEmptyPayload(env.Data) {
			return Connected{}, nil
		}
		ev, err = decodeAs[Connected](env.Data)
	case KindNewCheckin:
		ev, err = decodeAs[NewCheckin](env.Data)
	case KindNewWishCard:
		ev, err = decodeAs[NewWishCard](env.Data)
	case KindAwardSpeech:
		ev, err = decodeAs[AwardSpeech](env.Data)
	case KindLotteryResult:
		ev, err = decodeAs[LotteryResult](env.Data)
	case KindTeamGroups:
		ev, err = decodeAs[TeamGroups](env.Data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, env.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s payload: %v", ErrMalformed, env.Type, err)
	}
	return ev, nil
}

var errMissingPayload = errors.New("missing data")

func isEmptyPayload(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeAs[T Event](data json.RawMessage) (Event, error) {
	if isEmptyPayload(data) {
		return nil, errMissingPayload
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}
