// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package liveclient

import (
	"fmt"
	"testing"
	"time"

	"github.com/danielhkuo/gala-live/events"
	"github.com/danielhkuo/gala-live/models"
)

func newTestScreen(t *testing.T) (*Screen, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	s := NewScreen(ScreenOptions{Clock: clock})
	t.Cleanup(s.Close)
	return s, clock
}

func checkin(id int64, name string) events.NewCheckin {
	return events.NewCheckin{ID: id, UserName: name}
}

func emptySnapshot() Snapshot {
	return Snapshot{Checkins: []models.Checkin{}, WishCards: []models.WishCard{}, Groups: []models.Group{}}
}

// TestScenarioAAndB: empty snapshot, one push, then the identical echo
func TestScenarioAAndB(t *testing.T) {
	s, _ := newTestScreen(t)
	s.ApplySnapshot(emptySnapshot())

	s.Apply(checkin(1, "A"))

	got := s.Checkins()
	if len(got) != 1 || got[0].ID != 1 || got[0].UserName != "A" {
		t.Fatalf("Expected [{1 A}], got %+v", got)
	}
	if recent := s.Recent(); len(recent) != 1 || recent[0].ID != 1 {
		t.Fatalf("Expected recent [{1}], got %+v", recent)
	}

	s.Apply(checkin(1, "A"))

	if n := len(s.Checkins()); n != 1 {
		t.Errorf("Duplicate echo produced %d entries", n)
	}
	if n := len(s.Recent()); n != 1 {
		t.Errorf("Duplicate echo produced %d recent entries", n)
	}
}

func TestNoDuplicateCheckins(t *testing.T) {
	s, _ := newTestScreen(t)
	s.ApplySnapshot(Snapshot{Checkins: []models.Checkin{{ID: 2, UserName: "B"}}})

	for _, id := range []int64{1, 2, 3, 1, 3, 3, 4, 2} {
		s.Apply(checkin(id, fmt.Sprintf("user%d", id)))
	}

	seen := map[int64]int{}
	for _, c := range s.Checkins() {
		seen[c.ID]++
	}
	if len(seen) != 4 {
		t.Errorf("Expected 4 unique ids, got %v", seen)
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("id %d appears %d times", id, n)
		}
	}
}

func TestDuplicatePushDoesNotOverwrite(t *testing.T) {
	s, _ := newTestScreen(t)
	s.ApplySnapshot(Snapshot{Checkins: []models.Checkin{{ID: 5, UserName: "original"}}})

	s.Apply(checkin(5, "changed"))

	if got := s.Checkins()[0].UserName; got != "original" {
		t.Errorf("Expected existing record to be kept, got %q", got)
	}
}

// TestPushBeforeSnapshot covers both arrival orders for id=42
func TestPushBeforeSnapshot(t *testing.T) {
	testCases := []struct {
		name     string
		snapshot []models.Checkin
	}{
		{"snapshot without 42", []models.Checkin{{ID: 40}, {ID: 41}}},
		{"snapshot already has 42", []models.Checkin{{ID: 41}, {ID: 42}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestScreen(t)

			s.Apply(checkin(42, "early"))
			if len(s.Checkins()) != 0 {
				t.Fatal("Push should wait for the baseline")
			}

			s.ApplySnapshot(Snapshot{Checkins: tc.snapshot})

			count := 0
			for _, c := range s.Checkins() {
				if c.ID == 42 {
					count++
				}
			}
			if count != 1 {
				t.Errorf("Expected id 42 exactly once, got %d", count)
			}
		})
	}
}

func TestPushAfterSnapshot(t *testing.T) {
	s, _ := newTestScreen(t)
	s.ApplySnapshot(Snapshot{Checkins: []models.Checkin{{ID: 1}}})
	s.Apply(checkin(42, "late"))
	s.Apply(checkin(42, "late"))

	if got := s.Checkins(); len(got) != 2 || got[1].ID != 42 {
		t.Errorf("Expected [1 42], got %+v", got)
	}
}

func TestLaterSnapshotDoesNotRegress(t *testing.T) {
	s, _ := newTestScreen(t)
	s.ApplySnapshot(emptySnapshot())
	s.Apply(checkin(1, "A"))
	s.Apply(checkin(2, "B"))

	// A stale refetch that predates both pushes
	s.ApplySnapshot(emptySnapshot())
	if n := len(s.Checkins()); n != 2 {
		t.Fatalf("Stale snapshot removed pushed records: %d left", n)
	}

	// A refetch that contains a check-in the screen missed
	s.ApplySnapshot(Snapshot{Checkins: []models.Checkin{{ID: 1}, {ID: 2}, {ID: 3, UserName: "missed"}}})
	got := s.Checkins()
	if len(got) != 3 || got[2].ID != 3 {
		t.Errorf("Expected missed record to be filled in, got %+v", got)
	}
	if got[0].UserName != "A" {
		t.Errorf("Snapshot overwrote pushed record: %+v", got[0])
	}
}

func TestRecentIsBounded(t *testing.T) {
	s, _ := newTestScreen(t)
	s.ApplySnapshot(emptySnapshot())

	for i := int64(1); i <= 20; i++ {
		s.Apply(checkin(i, fmt.Sprintf("u%d", i)))
	}

	recent := s.Recent()
	if len(recent) != 15 {
		t.Fatalf("Expected 15 recent, got %d", len(recent))
	}
	for i, c := range recent {
		if want := int64(20 - i); c.ID != want {
			t.Errorf("recent[%d] = %d, want %d", i, c.ID, want)
		}
	}
	if n := len(s.Checkins()); n != 20 {
		t.Errorf("Full list should keep all 20, got %d", n)
	}
}

func TestRecentSeededFromSnapshot(t *testing.T) {
	s, _ := newTestScreen(t)
	var list []models.Checkin
	for i := int64(1); i <= 18; i++ {
		list = append(list, models.Checkin{ID: i})
	}
	s.ApplySnapshot(Snapshot{Checkins: list})

	recent := s.Recent()
	if len(recent) != 15 || recent[0].ID != 18 || recent[14].ID != 4 {
		t.Errorf("Unexpected recent view: first=%d last=%d len=%d", recent[0].ID, recent[len(recent)-1].ID, len(recent))
	}
}

func TestWishCardsNewestFirst(t *testing.T) {
	s, _ := newTestScreen(t)
	s.ApplySnapshot(Snapshot{WishCards: []models.WishCard{{ID: 2}, {ID: 1}}})

	s.Apply(events.NewWishCard{ID: 3, Content: "c"})
	s.Apply(events.NewWishCard{ID: 3, Content: "c"})
	s.Apply(events.NewWishCard{ID: 4, Content: "d"})

	got := s.WishCards()
	want := []int64{4, 3, 2, 1}
	if len(got) != len(want) {
		t.Fatalf("Expected %d cards, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("cards[%d] = %d, want %d", i, got[i].ID, want[i])
		}
	}
}

func TestWishPushBeforeSnapshot(t *testing.T) {
	s, _ := newTestScreen(t)
	s.Apply(events.NewWishCard{ID: 9})
	s.ApplySnapshot(Snapshot{WishCards: []models.WishCard{{ID: 8}, {ID: 7}}})

	got := s.WishCards()
	if len(got) != 3 || got[0].ID != 9 {
		t.Errorf("Expected early push on top, got %+v", got)
	}
}

// TestAwardLastWriteWins: the second speech replaces the first and the
// first one's timer cannot dismiss it
func TestAwardLastWriteWins(t *testing.T) {
	s, clock := newTestScreen(t)

	s.Apply(events.AwardSpeech{WinnerName: "First", AwardName: "MVP", Speech: "one"})
	clock.Advance(10 * time.Second)
	s.Apply(events.AwardSpeech{WinnerName: "Second", AwardName: "MVP", Speech: "two"})

	award, ok := s.Award()
	if !ok || award.WinnerName != "Second" {
		t.Fatalf("Expected second award displayed, got %+v (%v)", award, ok)
	}

	// The first speech's deadline passes
	clock.Advance(6 * time.Second)
	award, ok = s.Award()
	if !ok || award.WinnerName != "Second" {
		t.Fatalf("Second award dismissed early, got %+v (%v)", award, ok)
	}

	clock.Advance(9 * time.Second)
	if _, ok := s.Award(); ok {
		t.Error("Expected award to auto-dismiss after 15s")
	}
}

func TestLotteryAutoDismiss(t *testing.T) {
	s, clock := newTestScreen(t)
	s.Apply(events.LotteryResult{Event: "Grand", Winners: []models.LotteryWinner{{UserName: "A"}}})

	clock.Advance(11 * time.Second)
	if _, ok := s.Lottery(); !ok {
		t.Fatal("Lottery dismissed too early")
	}
	clock.Advance(time.Second)
	if _, ok := s.Lottery(); ok {
		t.Error("Expected lottery to auto-dismiss after 12s")
	}
}

func TestManualDismiss(t *testing.T) {
	s, clock := newTestScreen(t)
	s.Apply(events.AwardSpeech{WinnerName: "A"})
	s.Apply(events.LotteryResult{Event: "E"})

	s.DismissAward()
	s.DismissLottery()

	if _, ok := s.Award(); ok {
		t.Error("Award still shown after dismiss")
	}
	if _, ok := s.Lottery(); ok {
		t.Error("Lottery still shown after dismiss")
	}
	if clock.Pending() != 0 {
		t.Errorf("Expected dismiss to cancel timers, %d pending", clock.Pending())
	}
}

func TestGroupsReplacedWholesale(t *testing.T) {
	s, _ := newTestScreen(t)
	s.ApplySnapshot(Snapshot{Groups: []models.Group{
		{Index: 0, Name: "Team 1", Members: models.StringList{"a", "b"}},
		{Index: 1, Name: "Team 2", Members: models.StringList{"c"}},
	}})

	s.Apply(events.TeamGroups{{Index: 0, Name: "Team 1", Members: models.StringList{"c", "a", "b"}}})

	groups := s.Groups()
	if len(groups) != 1 || len(groups[0].Members) != 3 {
		t.Fatalf("Expected the pushed grouping only, got %+v", groups)
	}

	// A later snapshot must not undo the pushed grouping
	s.ApplySnapshot(Snapshot{Groups: []models.Group{{Index: 0}, {Index: 1}}})
	if n := len(s.Groups()); n != 1 {
		t.Errorf("Snapshot overwrote pushed groups: %d groups", n)
	}
}

func TestViewSwitching(t *testing.T) {
	s, _ := newTestScreen(t)
	s.ApplySnapshot(emptySnapshot())

	s.Apply(events.TeamGroups{})
	if s.View() != ViewGroups {
		t.Errorf("Expected groups view, got %s", s.View())
	}
	s.Apply(events.NewWishCard{ID: 1})
	if s.View() != ViewWishes {
		t.Errorf("Expected wishes view, got %s", s.View())
	}
	s.Apply(checkin(1, "A"))
	if s.View() != ViewCheckins {
		t.Errorf("Expected checkins view, got %s", s.View())
	}

	// Announcements overlay without switching
	s.Apply(events.AwardSpeech{WinnerName: "A"})
	if s.View() != ViewCheckins {
		t.Errorf("Award should not switch view, got %s", s.View())
	}

	// Switching never touches collections
	s.SetView(ViewGroups)
	if len(s.Checkins()) != 1 || len(s.WishCards()) != 1 {
		t.Error("View switch altered collections")
	}
}

func TestOnChangeFiresOnlyForChanges(t *testing.T) {
	s, _ := newTestScreen(t)
	calls := 0
	s.OnChange(func() {
		calls++
		// Reading inside the callback must not deadlock
		_ = s.Checkins()
	})

	s.ApplySnapshot(emptySnapshot())
	s.Apply(checkin(1, "A"))
	s.Apply(checkin(1, "A"))
	s.Apply(events.Connected{})

	if calls != 2 {
		t.Errorf("Expected 2 change notifications, got %d", calls)
	}
}

func TestClosedScreenIgnoresInput(t *testing.T) {
	s, clock := newTestScreen(t)
	s.ApplySnapshot(emptySnapshot())
	s.Apply(events.AwardSpeech{WinnerName: "A"})

	s.Close()
	s.Apply(checkin(1, "A"))

	if len(s.Checkins()) != 0 {
		t.Error("Closed screen accepted a push")
	}
	if clock.Pending() != 0 {
		t.Errorf("Close left %d timers pending", clock.Pending())
	}
}
