package engine

import (
	"context"
	"errors"
	"testing"
	"time"
)

func addPenalty(e *Engine, scopeDate string) Quest {
	q := e.newPenaltyQuest(penaltyTemplates[0], PenaltyGroupDaily, scopeDate, "test")
	q.ScopeDate = scopeDate
	e.state.Quests = append(e.state.Quests, q)
	return q
}

func TestPenaltyExpiryDeductsThirtyPercent(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	p := &e.state.Player
	p.XP = 999
	p.Gold = 155
	p.StatProgress[StatSTR] = 55
	p.StatProgress[StatINT] = 10
	p.StatProgress[StatAGI] = 3
	p.Stats[StatVIT] = 4
	p.EgoDeathStreak = 6
	addPenalty(e, "2025-03-09")
	addPenalty(e, "2025-03-08")

	res, err := e.CheckPenaltyExpiry(context.Background())
	if err != nil {
		t.Fatalf("CheckPenaltyExpiry: %v", err)
	}
	if len(res.Expired) != 2 {
		t.Fatalf("expired=%d, want 2", len(res.Expired))
	}
	got := e.Player()
	if got.XP != 700 || res.XPLost != 299 {
		t.Fatalf("xp=%d lost=%d, want 700 and 299", got.XP, res.XPLost)
	}
	if got.Gold != 109 || res.GoldLost != 46 {
		t.Fatalf("gold=%d lost=%d, want 109 and 46", got.Gold, res.GoldLost)
	}
	want := map[Stat]int{StatSTR: 39, StatINT: 7, StatAGI: 3, StatVIT: 0, StatPER: 0}
	for s, v := range want {
		if got.StatProgress[s] != v {
			t.Fatalf("%s progress=%d, want %d", s, got.StatProgress[s], v)
		}
	}
	if got.Stats[StatVIT] != 4 {
		t.Fatalf("stat levels must not change, VIT=%d", got.Stats[StatVIT])
	}
	if got.EgoDeathStreak != 0 {
		t.Fatalf("ego death streak=%d, want 0", got.EgoDeathStreak)
	}
	if n := len(questsOfType(e, QuestPenalty)); n != 0 {
		t.Fatalf("penalties left=%d, want 0", n)
	}
}

func TestTodaysPenaltyDoesNotExpire(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	e.state.Player.Gold = 100
	addPenalty(e, "2025-03-10")

	res, err := e.CheckPenaltyExpiry(context.Background())
	if err != nil {
		t.Fatalf("CheckPenaltyExpiry: %v", err)
	}
	if res.Failed() || e.Player().Gold != 100 {
		t.Fatalf("fresh penalty punished: %+v", res)
	}
}

func TestCompletingPenaltyRemovesIt(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	q := addPenalty(e, "2025-03-10")

	res, err := e.CompleteQuest(context.Background(), q.ID)
	if err != nil {
		t.Fatalf("CompleteQuest: %v", err)
	}
	if res.XPAwarded != 0 || res.GoldAwarded != 0 {
		t.Fatalf("penalty rewarded: %+v", res)
	}
	if n := len(questsOfType(e, QuestPenalty)); n != 0 {
		t.Fatalf("penalties left=%d, want 0", n)
	}
}

func TestCheckInStreakAndEgoDeath(t *testing.T) {
	e, clock := newTestEngine(t, Options{})
	ctx := context.Background()

	res, err := e.CheckIn(ctx)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if res.Streak != 1 || res.EgoDeathStreak != 1 {
		t.Fatalf("first check-in=%+v", res)
	}
	if _, err := e.CheckIn(ctx); !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("second check-in err=%v, want ErrAlreadyCheckedIn", err)
	}

	clock.Advance(24 * time.Hour)
	addPenalty(e, "2025-03-11")
	res, err = e.CheckIn(ctx)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if res.Streak != 2 || res.EgoDeathStreak != 1 || res.EgoDeathUp {
		t.Fatalf("check-in with outstanding penalty=%+v", res)
	}

	clock.Advance(48 * time.Hour)
	e.state.Quests = nil
	res, err = e.CheckIn(ctx)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if res.Streak != 1 || res.EgoDeathStreak != 2 {
		t.Fatalf("check-in after a gap=%+v", res)
	}
}
