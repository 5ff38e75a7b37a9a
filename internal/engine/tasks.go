package engine

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

type ScheduleTaskInput struct {
	Title string
	// Date is a date key; empty means today.
	Date        string
	Group       TaskGroup
	Difficulty  Rank
	TargetStats []Stat
}

// ScheduleTask plans a task for a day together with the quest that rewards
// it. OPTIONAL tasks get an OPTIONAL quest, SKILL_PROTOCOL tasks a
// SKILL_CHALLENGE quest. Tasks still open after their day are swept as missed.
func (e *Engine) ScheduleTask(ctx context.Context, in ScheduleTaskInput) (*ScheduledTask, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	today := e.today()
	date := in.Date
	if date == "" {
		date = today
	}
	if _, err := ParseDateKey(date, e.loc); err != nil {
		return nil, e.warn(warnf(WarnInvalidInput, "invalid date %q", in.Date))
	}
	if date < today {
		return nil, e.warn(warnf(WarnInvalidInput, "cannot schedule a task in the past (%s)", date))
	}

	qt := QuestOptional
	switch in.Group {
	case TaskGroupOptional, "":
		in.Group = TaskGroupOptional
	case TaskGroupSkillProtocol:
		qt = QuestSkillChallenge
	default:
		return nil, e.warn(warnf(WarnInvalidInput, "invalid task group %q", in.Group))
	}

	q, err := e.buildQuest(CreateQuestInput{
		Type:        qt,
		Title:       in.Title,
		Domain:      "task",
		Difficulty:  in.Difficulty,
		TargetStats: in.TargetStats,
	})
	if err != nil {
		var w Warning
		if errors.As(err, &w) {
			return nil, e.warn(w)
		}
		return nil, err
	}
	q.ScopeDate = date

	t := ScheduledTask{
		ID:            e.newID(),
		Title:         q.Title,
		Date:          date,
		Group:         in.Group,
		Status:        TaskScheduled,
		LinkedQuestID: q.ID,
		CreatedAt:     e.now(),
	}
	e.state.Quests = append(e.state.Quests, q)
	e.state.Tasks = append(e.state.Tasks, t)
	e.log.Debug("task scheduled", zap.String("task", t.ID), zap.String("date", date))
	e.save(ctx)
	return &t, nil
}

// StartTask marks a scheduled task as in progress.
func (e *Engine) StartTask(ctx context.Context, id string) (*ScheduledTask, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, err := e.openTask(id)
	if err != nil {
		return nil, err
	}
	t.Status = TaskInProgress
	e.save(ctx)
	out := *t
	return &out, nil
}

// CompleteTask closes a task and completes its linked quest.
func (e *Engine) CompleteTask(ctx context.Context, id string) (*CompleteResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t, err := e.openTask(id)
	if err != nil {
		return nil, err
	}
	if _, q := e.findQuest(t.LinkedQuestID); q != nil && !q.IsCompleted {
		return e.completeQuest(ctx, q.ID)
	}
	now := e.now()
	t.Status = TaskCompleted
	t.ClosedAt = &now
	e.save(ctx)
	p := e.state.Player
	return &CompleteResult{
		LevelBefore: p.Level,
		LevelAfter:  p.Level,
		RankBefore:  p.Rank,
		RankAfter:   p.Rank,
	}, nil
}

func (e *Engine) openTask(id string) (*ScheduledTask, error) {
	t := e.findTask(id)
	if t == nil {
		return nil, e.warn(warnf(WarnTaskNotFound, "task %s not found", id))
	}
	if t.Status.IsTerminal() {
		return nil, e.warn(warnf(WarnTaskClosed, "task %q is already %s", t.Title, t.Status))
	}
	return t, nil
}
