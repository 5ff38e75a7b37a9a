package engine

import (
	"context"
	"errors"
	"testing"
	"time"
)

func isPenaltyTemplate(title string) bool {
	for _, t := range penaltyTemplates {
		if t.Title == title {
			return true
		}
	}
	return false
}

func TestAbandonWithImmunitySkipsPenalty(t *testing.T) {
	e, clock := newTestEngine(t, Options{})
	ctx := context.Background()
	if _, err := e.AddBuff(ctx, Buff{Type: BuffPenaltyImmunity, Name: "Ward", UsesRemaining: 1, Duration: 72 * time.Hour}); err != nil {
		t.Fatalf("AddBuff: %v", err)
	}
	q := dailyByTemplate(t, e, "daily-run")

	res, err := e.AbandonQuest(ctx, q.ID)
	if err != nil {
		t.Fatalf("AbandonQuest: %v", err)
	}
	if !res.Immune || res.Penalty != nil {
		t.Fatalf("result=%+v, want immune without penalty", res)
	}
	if _, found := e.findQuest(q.ID); found != nil {
		t.Fatalf("abandoned quest still present")
	}
	if n := len(questsOfType(e, QuestPenalty)); n != 0 {
		t.Fatalf("penalties=%d, want 0", n)
	}
	buffs := e.Buffs()
	if len(buffs) != 1 || buffs[0].UsesRemaining != 0 {
		t.Fatalf("buffs after use=%+v, want one buff at 0 uses", buffs)
	}

	clock.Advance(time.Minute)
	if _, err := e.RunCleanup(ctx); err != nil {
		t.Fatalf("RunCleanup: %v", err)
	}
	if n := len(e.Buffs()); n != 0 {
		t.Fatalf("buffs after cleanup=%d, want 0", n)
	}
}

func TestAbandonIssuesOnePenalty(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	ctx := context.Background()
	q := dailyByTemplate(t, e, "daily-study")

	res, err := e.AbandonQuest(ctx, q.ID)
	if err != nil {
		t.Fatalf("AbandonQuest: %v", err)
	}
	penalties := questsOfType(e, QuestPenalty)
	if len(penalties) != 1 {
		t.Fatalf("penalties=%d, want 1", len(penalties))
	}
	p := penalties[0]
	if p.ID != res.Penalty.ID || p.SourceTitle != q.Title || p.PenaltyGroup != PenaltyGroupAbandon {
		t.Fatalf("penalty=%+v", p)
	}
	if !isPenaltyTemplate(p.Title) {
		t.Fatalf("penalty title %q is not a template", p.Title)
	}
	if _, found := e.findQuest(q.ID); found != nil {
		t.Fatalf("abandoned quest still present")
	}
}

func TestAbandonPenaltyIsRejected(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	ctx := context.Background()
	q := dailyByTemplate(t, e, "daily-study")
	res, err := e.AbandonQuest(ctx, q.ID)
	if err != nil {
		t.Fatalf("AbandonQuest: %v", err)
	}
	e.DrainEvents()

	_, err = e.AbandonQuest(ctx, res.Penalty.ID)
	if !errors.Is(err, ErrPenaltyNotAbandoned) {
		t.Fatalf("err=%v, want ErrPenaltyNotAbandoned", err)
	}
	if n := len(questsOfType(e, QuestPenalty)); n != 1 {
		t.Fatalf("penalties=%d, want 1", n)
	}
	if !hasEvent(e.DrainEvents(), EventWarning) {
		t.Fatalf("expected a warning event")
	}
}

func TestAbandonUnknownQuest(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	if _, err := e.AbandonQuest(context.Background(), "nope"); !errors.Is(err, ErrQuestNotFound) {
		t.Fatalf("err=%v, want ErrQuestNotFound", err)
	}
}

func TestAbandonUsesGeneratedPenalty(t *testing.T) {
	gen := &fakeGenerator{content: &GeneratedContent{Title: "  Trial of Shame ", Description: "Run until sunrise."}}
	e, _ := newTestEngine(t, Options{Generator: gen})
	q := dailyByTemplate(t, e, "daily-run")

	res, err := e.AbandonQuest(context.Background(), q.ID)
	if err != nil {
		t.Fatalf("AbandonQuest: %v", err)
	}
	if res.Penalty.Title != "Trial of Shame" || res.Penalty.Description != "Run until sunrise." {
		t.Fatalf("penalty=%+v", res.Penalty)
	}
	if gen.calls != 1 {
		t.Fatalf("generator calls=%d, want 1", gen.calls)
	}
	stored := questsOfType(e, QuestPenalty)[0]
	if stored.Title != "Trial of Shame" || stored.XPReward != 0 {
		t.Fatalf("stored penalty=%+v", stored)
	}
}

func TestAbandonFallsBackWhenGeneratorFails(t *testing.T) {
	cases := map[string]Options{
		"error":   {Generator: &fakeGenerator{err: errGenerator}},
		"timeout": {Generator: &fakeGenerator{block: true}, GeneratorTimeout: 20 * time.Millisecond},
		"empty":   {Generator: &fakeGenerator{content: &GeneratedContent{Title: "   "}}},
	}
	for name, opts := range cases {
		t.Run(name, func(t *testing.T) {
			e, _ := newTestEngine(t, opts)
			q := dailyByTemplate(t, e, "daily-run")
			res, err := e.AbandonQuest(context.Background(), q.ID)
			if err != nil {
				t.Fatalf("AbandonQuest: %v", err)
			}
			if res.Penalty == nil || !isPenaltyTemplate(res.Penalty.Title) {
				t.Fatalf("penalty=%+v, want template fallback", res.Penalty)
			}
		})
	}
}

func TestAbandonBossReopensGate(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	ctx := context.Background()
	q, err := e.EnterGate(ctx, "gate-E")
	if err != nil {
		t.Fatalf("EnterGate: %v", err)
	}
	if _, err := e.AbandonQuest(ctx, q.ID); err != nil {
		t.Fatalf("AbandonQuest: %v", err)
	}
	b := e.findBoss("gate-E")
	if b.Status != BossAvailable || b.QuestID != "" {
		t.Fatalf("boss=%+v, want AVAILABLE", b)
	}
}

func TestAbandonMarksLinkedTaskMissed(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	ctx := context.Background()
	task, err := e.ScheduleTask(ctx, ScheduleTaskInput{Title: "Write report"})
	if err != nil {
		t.Fatalf("ScheduleTask: %v", err)
	}
	if _, err := e.AbandonQuest(ctx, task.LinkedQuestID); err != nil {
		t.Fatalf("AbandonQuest: %v", err)
	}
	if got := e.findTask(task.ID).Status; got != TaskMissed {
		t.Fatalf("task status=%s, want MISSED", got)
	}
}
