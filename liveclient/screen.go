// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package liveclient

import (
	"sync"
	"time"

	"github.com/danielhkuo/gala-live/events"
	"github.com/danielhkuo/gala-live/models"
)

// View is the surface currently in the foreground of the big screen
type View string

const (
	ViewCheckins View = "checkins"
	ViewWishes   View = "wishes"
	ViewGroups   View = "groups"
)

// ScreenOptions configures a Screen. Zero values select the defaults.
type ScreenOptions struct {
	RecentLimit    int
	AwardDisplay   time.Duration
	LotteryDisplay time.Duration
	Clock          Clock
}

// Snapshot is one bulk read of the collections a screen displays.
// A nil slice means that collection was not fetched.
type Snapshot struct {
	Checkins  []models.Checkin
	WishCards []models.WishCard
	Groups    []models.Group
}

// slot holds one ephemeral announcement. seq tells a stale timer
// apart from the one guarding the current value.
type slot[T any] struct {
	value *T
	timer Timer
	seq   uint64
}

// Screen is the local view of one display surface. It merges snapshot
// reads and push events without duplicating, regressing or losing records.
type Screen struct {
	recentLimit    int
	awardDisplay   time.Duration
	lotteryDisplay time.Duration
	clock          Clock

	mu sync.Mutex

	checkins        *Feed[models.Checkin]
	recent          []models.Checkin
	checkinsSeeded  bool
	pendingCheckins []models.Checkin

	wishes        *Feed[models.WishCard]
	wishesSeeded  bool
	pendingWishes []models.WishCard

	groups       []models.Group
	groupsPushed bool

	award   slot[events.AwardSpeech]
	lottery slot[events.LotteryResult]

	view     View
	onChange func()
	closed   bool
}

func NewScreen(opts ScreenOptions) *Screen {
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = models.RecentCheckinLimit
	}
	if opts.AwardDisplay <= 0 {
		opts.AwardDisplay = models.AwardSpeechDisplay
	}
	if opts.LotteryDisplay <= 0 {
		opts.LotteryDisplay = models.LotteryResultDisplay
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	return &Screen{
		recentLimit:    opts.RecentLimit,
		awardDisplay:   opts.AwardDisplay,
		lotteryDisplay: opts.LotteryDisplay,
		clock:          opts.Clock,
		checkins:       NewFeed(func(c models.Checkin) int64 { return c.ID }, false),
		wishes:         NewFeed(func(w models.WishCard) int64 { return w.ID }, true),
		view:           ViewCheckins,
	}
}

// OnChange registers the refresh callback. It runs after every change,
// outside the screen's lock.
func (s *Screen) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Apply layers one push event on top of the local state
func (s *Screen) Apply(ev events.Event) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	changed := false
	switch e := ev.(type) {
	case events.Connected:
		// Handshake only; state resumes as it was
	case events.NewCheckin:
		changed = s.pushCheckinLocked(models.Checkin(e))
	case events.NewWishCard:
		changed = s.pushWishLocked(models.WishCard(e))
	case events.AwardSpeech:
		showSlot(s, &s.award, e, s.awardDisplay)
		changed = true
	case events.LotteryResult:
		showSlot(s, &s.lottery, e, s.lotteryDisplay)
		changed = true
	case events.TeamGroups:
		s.groups = cloneGroups(e)
		s.groupsPushed = true
		s.view = ViewGroups
		changed = true
	}

	s.unlockAndNotify(changed)
}

func (s *Screen) pushCheckinLocked(c models.Checkin) bool {
	if !s.checkinsSeeded {
		// Replayed on top of the snapshot once it lands
		s.pendingCheckins = append(s.pendingCheckins, c)
		return false
	}
	if !s.checkins.Add(c) {
		return false
	}
	s.recent = append([]models.Checkin{c}, s.recent...)
	if len(s.recent) > s.recentLimit {
		s.recent = s.recent[:s.recentLimit]
	}
	s.view = ViewCheckins
	return true
}

func (s *Screen) pushWishLocked(w models.WishCard) bool {
	if !s.wishesSeeded {
		s.pendingWishes = append(s.pendingWishes, w)
		return false
	}
	if !s.wishes.Add(w) {
		return false
	}
	s.view = ViewWishes
	return true
}

// ApplySnapshot installs a bulk read. The first snapshot of a collection
// becomes its baseline and any pushes that beat it are replayed on top.
// Later snapshots only fill in records missing locally.
func (s *Screen) ApplySnapshot(snap Snapshot) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	changed := false
	if snap.Checkins != nil {
		changed = s.seedCheckinsLocked(snap.Checkins) || changed
	}
	if snap.WishCards != nil {
		changed = s.seedWishesLocked(snap.WishCards) || changed
	}
	if snap.Groups != nil && !s.groupsPushed {
		s.groups = cloneGroups(snap.Groups)
		changed = true
	}

	s.unlockAndNotify(changed)
}

func (s *Screen) seedCheckinsLocked(list []models.Checkin) bool {
	if s.checkinsSeeded {
		if s.checkins.Merge(list) == 0 {
			return false
		}
		s.recent = s.checkins.Newest(s.recentLimit)
		return true
	}

	s.checkins.Merge(list)
	s.recent = s.checkins.Newest(s.recentLimit)
	s.checkinsSeeded = true

	pending := s.pendingCheckins
	s.pendingCheckins = nil
	for _, c := range pending {
		s.pushCheckinLocked(c)
	}
	return true
}

func (s *Screen) seedWishesLocked(list []models.WishCard) bool {
	if s.wishesSeeded {
		return s.wishes.Merge(list) > 0
	}

	s.wishes.Merge(list)
	s.wishesSeeded = true

	pending := s.pendingWishes
	s.pendingWishes = nil
	for _, w := range pending {
		s.pushWishLocked(w)
	}
	return true
}

// showSlot replaces whatever the slot displays and restarts its dismiss timer
func showSlot[T any](s *Screen, sl *slot[T], v T, d time.Duration) {
	if sl.timer != nil {
		sl.timer.Stop()
	}
	sl.seq++
	seq := sl.seq
	sl.value = &v
	sl.timer = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		if s.closed || sl.seq != seq {
			s.mu.Unlock()
			return
		}
		changed := clearSlot(sl)
		s.unlockAndNotify(changed)
	})
}

func clearSlot[T any](sl *slot[T]) bool {
	if sl.timer != nil {
		sl.timer.Stop()
		sl.timer = nil
	}
	sl.seq++
	if sl.value == nil {
		return false
	}
	sl.value = nil
	return true
}

// DismissAward hides the award speech before its timeout
func (s *Screen) DismissAward() {
	s.mu.Lock()
	changed := clearSlot(&s.award)
	s.unlockAndNotify(changed)
}

// DismissLottery hides the lottery result before its timeout
func (s *Screen) DismissLottery() {
	s.mu.Lock()
	changed := clearSlot(&s.lottery)
	s.unlockAndNotify(changed)
}

// Close cancels announcement timers. The screen ignores input afterwards.
func (s *Screen) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	clearSlot(&s.award)
	clearSlot(&s.lottery)
}

// SetView switches the foreground surface
func (s *Screen) SetView(v View) {
	s.mu.Lock()
	changed := s.view != v
	s.view = v
	s.unlockAndNotify(changed)
}

func (s *Screen) unlockAndNotify(changed bool) {
	fn := s.onChange
	s.mu.Unlock()
	if changed && fn != nil {
		fn()
	}
}

func (s *Screen) Checkins() []models.Checkin {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkins.Items()
}

// Recent returns the bounded recent-activity view, most recent first
func (s *Screen) Recent() []models.Checkin {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Checkin, len(s.recent))
	copy(out, s.recent)
	return out
}

func (s *Screen) WishCards() []models.WishCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishes.Items()
}

func (s *Screen) Groups() []models.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneGroups(s.groups)
}

// Award returns the award speech on display, if any
func (s *Screen) Award() (events.AwardSpeech, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.award.value == nil {
		return events.AwardSpeech{}, false
	}
	return *s.award.value, true
}

// Lottery returns the lottery result on display, if any
func (s *Screen) Lottery() (events.LotteryResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lottery.value == nil {
		return events.LotteryResult{}, false
	}
	return *s.lottery.value, true
}

func (s *Screen) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

func cloneGroups(in []models.Group) []models.Group {
	out := make([]models.Group, len(in))
	for i, g := range in {
		g.Members = append(models.StringList(nil), g.Members...)
		out[i] = g
	}
	return out
}
