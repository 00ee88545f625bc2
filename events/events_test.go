// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/danielhkuo/gala-live/models"
)

func TestEncodeEnvelopeShape(t *testing.T) {
	raw, err := Encode(NewCheckin{ID: 1, UserName: "A"})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if generic["type"] != "NEW_CHECKIN" {
		t.Errorf("Expected type NEW_CHECKIN, got %v", generic["type"])
	}
	data, ok := generic["data"].(map[string]any)
	if !ok {
		t.Fatalf("Expected data object, got %T", generic["data"])
	}
	if data["id"] != float64(1) || data["userName"] != "A" {
		t.Errorf("Unexpected payload: %v", data)
	}
}

func TestDecodeEachKind(t *testing.T) {
	testCases := []struct {
		name string
		in   Event
	}{
		{"checkin", NewCheckin{ID: 7, UserName: "Bo"}},
		{"wish", NewWishCard{ID: 3, UserName: "Cy", Content: "more snacks"}},
		{"award", AwardSpeech{WinnerName: "Di", AwardName: "MVP", Speech: "well done"}},
		{"lottery", LotteryResult{Event: "Grand Prize", Winners: []models.LotteryWinner{{ID: 1, UserName: "Ed"}}}},
		{"groups", TeamGroups{{Index: 0, Name: "Team 1", Members: models.StringList{"a", "b"}}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := Encode(tc.in)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			out, err := Decode(raw)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if out.Kind() != tc.in.Kind() {
				t.Errorf("Expected kind %s, got %s", tc.in.Kind(), out.Kind())
			}
		})
	}
}

func TestDecodeAwardFields(t *testing.T) {
	raw := []byte(`{"type":"AWARD_SPEECH","data":{"winnerName":"Di","awardName":"MVP","speech":"hi"}}`)
	ev, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	award, ok := ev.(AwardSpeech)
	if !ok {
		t.Fatalf("Expected AwardSpeech, got %T", ev)
	}
	if award.WinnerName != "Di" || award.AwardName != "MVP" || award.Speech != "hi" {
		t.Errorf("Unexpected award: %+v", award)
	}
}

func TestDecodeMalformed(t *testing.T) {
	testCases := []string{
		`not json`,
		`{"type":"NEW_CHECKIN","data":"oops"}`,
		`{"type":"NEW_CHECKIN"}`,
		`{"type":"NEW_WISH_CARD","data":null}`,
		`{"type":"LOTTERY_RESULT","data": null }`,
		`{"type":"TEAM_GROUPS"}`,
	}
	for _, raw := range testCases {
		_, err := Decode([]byte(raw))
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("Decode(%q): expected ErrMalformed, got %v", raw, err)
		}
	}
}

func TestDecodeConnectedWithoutData(t *testing.T) {
	for _, raw := range []string{`{"type":"CONNECTED"}`, `{"type":"CONNECTED","data":null}`} {
		ev, err := Decode([]byte(raw))
		if err != nil {
			t.Fatalf("Decode(%q) failed: %v", raw, err)
		}
		if _, ok := ev.(Connected); !ok {
			t.Errorf("Decode(%q): expected Connected, got %T", raw, ev)
		}
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	_, err := Decode([]byte(`{"type":"SOMETHING_ELSE","data":{}}`))
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Expected ErrUnknownKind, got %v", err)
	}
}
