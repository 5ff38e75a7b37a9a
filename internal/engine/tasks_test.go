package engine

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestScheduleAndCompleteTask(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	ctx := context.Background()

	task, err := e.ScheduleTask(ctx, ScheduleTaskInput{
		Title:       "Deep work block",
		Group:       TaskGroupSkillProtocol,
		Difficulty:  RankC,
		TargetStats: []Stat{StatINT, StatINT, StatPER},
	})
	if err != nil {
		t.Fatalf("ScheduleTask: %v", err)
	}
	_, q := e.findQuest(task.LinkedQuestID)
	if q == nil || q.Type != QuestSkillChallenge || len(q.TargetStats) != 2 {
		t.Fatalf("linked quest=%+v", q)
	}

	if _, err := e.StartTask(ctx, task.ID); err != nil {
		t.Fatalf("StartTask: %v", err)
	}
	res, err := e.CompleteTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	xp, _ := DefaultQuestRewards(RankC)
	if res.XPAwarded != xp || res.StatDeltas[StatINT] != 40 {
		t.Fatalf("result=%+v", res)
	}
	if got := e.findTask(task.ID).Status; got != TaskCompleted {
		t.Fatalf("task status=%s, want COMPLETED", got)
	}
	if _, err := e.CompleteTask(ctx, task.ID); !errors.Is(err, ErrTaskClosed) {
		t.Fatalf("err=%v, want ErrTaskClosed", err)
	}
}

func TestScheduleTaskValidation(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	ctx := context.Background()
	cases := []ScheduleTaskInput{
		{Title: "   "},
		{Title: "Past", Date: "2025-03-09"},
		{Title: "Bad date", Date: "tomorrow"},
		{Title: "Bad group", Group: "WEEKLY"},
		{Title: "Too many", TargetStats: []Stat{StatSTR, StatAGI, StatINT, StatVIT}},
	}
	for _, in := range cases {
		if _, err := e.ScheduleTask(ctx, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("ScheduleTask(%+v) err=%v, want ErrInvalidInput", in, err)
		}
	}
	if len(e.Tasks()) != 0 {
		t.Fatalf("rejected tasks were stored")
	}
}

func TestFutureTaskSurvivesRollover(t *testing.T) {
	e, clock := newTestEngine(t, Options{})
	ctx := context.Background()
	reconcile(t, e)
	task, err := e.ScheduleTask(ctx, ScheduleTaskInput{Title: "Dentist", Date: "2025-03-12"})
	if err != nil {
		t.Fatalf("ScheduleTask: %v", err)
	}
	clock.Advance(24 * time.Hour)
	reconcile(t, e)
	if got := e.findTask(task.ID).Status; got != TaskScheduled {
		t.Fatalf("future task status=%s, want SCHEDULED", got)
	}
}

func TestCreateQuestRejectsEngineTypes(t *testing.T) {
	e, _ := newTestEngine(t, Options{})
	for _, qt := range []QuestType{QuestDaily, QuestBoss, QuestPenalty} {
		_, err := e.CreateQuest(context.Background(), CreateQuestInput{Type: qt, Title: "x"})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("CreateQuest(%s) err=%v, want ErrInvalidInput", qt, err)
		}
	}
	q, err := e.CreateQuest(context.Background(), CreateQuestInput{Type: QuestOptional, Title: "Read", Difficulty: RankB})
	if err != nil {
		t.Fatalf("CreateQuest: %v", err)
	}
	if xp, gold := DefaultQuestRewards(RankB); q.XPReward != xp || q.GoldReward != gold {
		t.Fatalf("rewards=%d/%d, want defaults", q.XPReward, q.GoldReward)
	}
}
