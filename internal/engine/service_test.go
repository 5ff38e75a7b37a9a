package engine

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func openTestEngine(t *testing.T, store *memStore, logger *zap.Logger) (*Engine, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: day1}
	if logger == nil {
		logger = zap.NewNop()
	}
	e, err := Open(context.Background(), Options{
		UserID:      "hunter",
		Clock:       clock,
		Location:    time.UTC,
		Rand:        rand.New(rand.NewSource(1)),
		Persistence: store,
		Logger:      logger,
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return e, clock
}

func TestOpenFreshPlayer(t *testing.T) {
	store := &memStore{}
	e, _ := openTestEngine(t, store, nil)

	p := e.Player()
	if p.Level != 1 || p.XPToNextLevel != 1000 || p.Rank != RankE {
		t.Fatalf("player=%+v", p)
	}
	if len(questsOfType(e, QuestDaily)) != len(builtinDailies()) {
		t.Fatalf("dailies not created")
	}
	if store.saves == 0 || store.state == nil {
		t.Fatalf("state was not saved")
	}
	if store.state.Checkpoint == nil || store.state.Checkpoint.Date != "2025-03-10" {
		t.Fatalf("checkpoint not taken")
	}
}

func TestOpenRepairsEmptyCollections(t *testing.T) {
	broken := &State{Player: Player{Level: 0, XP: 2500, Gold: -5}}
	store := &memStore{state: broken}
	e, _ := openTestEngine(t, store, nil)

	s := e.Snapshot()
	if len(s.Bosses) == 0 || len(s.ShopItems) == 0 || len(s.SkillNodes) == 0 || len(s.Quests) == 0 {
		t.Fatalf("collections not repaired: %+v", s)
	}
	p := s.Player
	if p.Level != 2 || p.XP != 1500 || p.XPToNextLevel != 2000 || p.Gold != 0 {
		t.Fatalf("player not normalized: level=%d xp=%d next=%d gold=%d", p.Level, p.XP, p.XPToNextLevel, p.Gold)
	}
	if !hasEvent(e.DrainEvents(), EventSystemRepair) {
		t.Fatalf("expected system_repair events")
	}
}

func TestOpenFoldsOverflowingStatProgress(t *testing.T) {
	p := NewPlayer()
	p.Stats[StatSTR] = 3
	p.StatProgress[StatSTR] = 250
	p.StatProgress[StatINT] = -20
	store := &memStore{state: &State{Player: p}}
	e, _ := openTestEngine(t, store, nil)

	got := e.Player()
	if got.Stats[StatSTR] != 5 || got.StatProgress[StatSTR] != 50 {
		t.Fatalf("STR stat=%d progress=%d, want 5 and 50", got.Stats[StatSTR], got.StatProgress[StatSTR])
	}
	if got.StatProgress[StatINT] != 0 {
		t.Fatalf("INT progress=%d, want 0", got.StatProgress[StatINT])
	}
}

func TestReopenSameDayKeepsProgress(t *testing.T) {
	store := &memStore{}
	e, _ := openTestEngine(t, store, nil)
	q := dailyByTemplate(t, e, "daily-study")
	if _, err := e.CompleteQuest(context.Background(), q.ID); err != nil {
		t.Fatalf("CompleteQuest: %v", err)
	}

	again, _ := openTestEngine(t, store, nil)
	got := dailyByTemplate(t, again, "daily-study")
	if got.ID != q.ID || !got.IsCompleted {
		t.Fatalf("daily after reopen=%+v", got)
	}
}

func TestSaveFailureIsLoggedNotReturned(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	store := &memStore{}
	e, _ := openTestEngine(t, store, zap.New(core))

	store.err = errors.New("disk full")
	if _, err := e.AddGold(context.Background(), 50); err != nil {
		t.Fatalf("AddGold: %v", err)
	}
	if e.Player().Gold != 50 {
		t.Fatalf("local mutation lost")
	}
	if logs.FilterMessage("save snapshot failed").Len() != 1 {
		t.Fatalf("expected one save failure log, got %d", logs.Len())
	}
}

func TestWarningIsMatchedByCode(t *testing.T) {
	w := warnf(WarnGateBusy, "Igris is already in progress")
	if !errors.Is(w, ErrGateBusy) || errors.Is(w, ErrBossNotFound) {
		t.Fatalf("warning matching by code failed")
	}
	if w.Error() == "" {
		t.Fatalf("empty warning message")
	}
}

func TestDateKeysAcrossDST(t *testing.T) {
	days, err := DatesBetween("2025-03-08", "2025-03-11")
	if err != nil {
		t.Fatalf("DatesBetween: %v", err)
	}
	want := []string{"2025-03-08", "2025-03-09", "2025-03-10"}
	if len(days) != len(want) {
		t.Fatalf("days=%v, want %v", days, want)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Fatalf("days=%v, want %v", days, want)
		}
	}
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("no tzdata: %v", err)
	}
	late := time.Date(2025, 3, 10, 23, 30, 0, 0, loc)
	if got := DateKey(late, loc); got != "2025-03-10" {
		t.Fatalf("DateKey=%s, want local date", got)
	}
	if got := DateKey(late, time.UTC); got != "2025-03-11" {
		t.Fatalf("DateKey in UTC=%s, want 2025-03-11", got)
	}
}

func TestTitles(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	if n := NewTitleChecker(e.Snapshot()).CountEarned(); n != 0 {
		t.Fatalf("earned=%d for a fresh player", n)
	}
	e.state.Player.Level = 10
	e.state.Player.Streak = 10
	earned := map[string]bool{}
	for _, title := range e.Titles() {
		earned[title.ID] = title.Earned
	}
	if !earned["awakened"] || !earned["hunter"] || !earned["consistent"] || earned["elite"] {
		t.Fatalf("titles=%v", earned)
	}
}
