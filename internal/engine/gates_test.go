package engine

import (
	"context"
	"errors"
	"testing"
)

func TestGatesOpenWithRank(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	ctx := context.Background()

	if b := e.findBoss("gate-E"); b.Status != BossAvailable {
		t.Fatalf("gate-E=%s, want AVAILABLE", b.Status)
	}
	if b := e.findBoss("gate-D"); b.Status != BossLocked {
		t.Fatalf("gate-D=%s, want LOCKED", b.Status)
	}

	// levels 1..9 need 45000 XP in total
	res, err := e.AddXP(ctx, 45000)
	if err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	if res.LevelAfter != 10 || res.RankAfter != RankD || !res.RankUp() {
		t.Fatalf("xp result=%+v, want level 10 rank D", res)
	}
	if b := e.findBoss("gate-D"); b.Status != BossAvailable {
		t.Fatalf("gate-D=%s after rank up, want AVAILABLE", b.Status)
	}
	if b := e.findBoss("gate-C"); b.Status != BossLocked {
		t.Fatalf("gate-C=%s, want LOCKED", b.Status)
	}
	events := e.DrainEvents()
	if !hasEvent(events, EventRankUp) || !hasEvent(events, EventBossUnlocked) {
		t.Fatalf("expected rank_up and boss_unlocked events")
	}
}

func TestEnterLockedGate(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	_, err := e.EnterGate(context.Background(), "gate-S")
	var gate GateError
	if !errors.As(err, &gate) {
		t.Fatalf("err=%v, want GateError", err)
	}
	if gate.RequiredLevel != MinLevelForRank(RankS) {
		t.Fatalf("required level=%d, want %d", gate.RequiredLevel, MinLevelForRank(RankS))
	}
}

func TestOnlyOneGateAtATime(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	ctx := context.Background()
	if _, err := e.AddXP(ctx, 45000); err != nil {
		t.Fatalf("AddXP: %v", err)
	}
	if _, err := e.EnterGate(ctx, "gate-E"); err != nil {
		t.Fatalf("EnterGate: %v", err)
	}
	_, err := e.EnterGate(ctx, "gate-D")
	if !errors.Is(err, ErrGateBusy) {
		t.Fatalf("err=%v, want ErrGateBusy", err)
	}
	if b := e.findBoss("gate-D"); b.Status != BossAvailable {
		t.Fatalf("gate-D=%s, want AVAILABLE", b.Status)
	}
	if n := len(questsOfType(e, QuestBoss)); n != 1 {
		t.Fatalf("boss quests=%d, want 1", n)
	}
}

func TestDefeatingBoss(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	ctx := context.Background()
	e.state.Player.Streak = 60
	q, err := e.EnterGate(ctx, "gate-E")
	if err != nil {
		t.Fatalf("EnterGate: %v", err)
	}
	res, err := e.CompleteQuest(ctx, q.ID)
	if err != nil {
		t.Fatalf("CompleteQuest: %v", err)
	}
	xp, _ := BossRewards(RankE)
	if res.XPAwarded != xp {
		t.Fatalf("xp=%d, want %d regardless of streak", res.XPAwarded, xp)
	}
	for _, s := range AllStats {
		if res.StatDeltas[s] != BossStatProgress {
			t.Fatalf("%s progress=%d, want %d", s, res.StatDeltas[s], BossStatProgress)
		}
	}
	if b := e.findBoss("gate-E"); b.Status != BossDefeated {
		t.Fatalf("gate-E=%s, want DEFEATED", b.Status)
	}
	if _, err := e.EnterGate(ctx, "gate-E"); !errors.Is(err, ErrBossUnavailable) {
		t.Fatalf("re-entering a defeated gate err=%v", err)
	}
}

func TestRecalibrateBoss(t *testing.T) {
	gen := &fakeGenerator{content: &GeneratedContent{Title: "Shadow of Doubt", Description: "It feeds on hesitation."}}
	e, _ := newTestEngine(t, Options{Generator: gen})
	ctx := context.Background()
	if _, err := e.AddXP(ctx, 45000); err != nil {
		t.Fatalf("AddXP: %v", err)
	}

	b, err := e.RecalibrateBoss(ctx, "gate-E")
	if err != nil {
		t.Fatalf("RecalibrateBoss: %v", err)
	}
	xp, gold := BossRewards(RankD)
	if b.Rank != RankD || b.XPReward != xp || b.GoldReward != gold {
		t.Fatalf("boss=%+v, want rank D rewards %d/%d", b, xp, gold)
	}
	if b.Name != "Shadow of Doubt" || e.findBoss("gate-E").Name != "Shadow of Doubt" {
		t.Fatalf("boss name=%q, want generated name", b.Name)
	}
}

func TestRecalibrateFallsBackToTemplate(t *testing.T) {
	e, _ := newTestEngine(t, Options{Generator: &fakeGenerator{err: errGenerator}})
	b, err := e.RecalibrateBoss(context.Background(), "gate-E")
	if err != nil {
		t.Fatalf("RecalibrateBoss: %v", err)
	}
	found := false
	for _, tmpl := range bossTemplates {
		if tmpl.Title == b.Name {
			found = true
		}
	}
	if !found || b.Status != BossAvailable {
		t.Fatalf("boss=%+v, want a template boss", b)
	}
}

func TestRecalibrateActiveGateIsRejected(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	ctx := context.Background()
	if _, err := e.EnterGate(ctx, "gate-E"); err != nil {
		t.Fatalf("EnterGate: %v", err)
	}
	if _, err := e.RecalibrateBoss(ctx, "gate-E"); !errors.Is(err, ErrGateBusy) {
		t.Fatalf("err=%v, want ErrGateBusy", err)
	}
}
