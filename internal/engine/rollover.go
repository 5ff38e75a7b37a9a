package engine

import (
	"context"
	"sort"

	"go.uber.org/zap"
)

type RolloverResult struct {
	Today string
	// SameDay is set when the reconciliation already ran today.
	SameDay         bool
	DaysSwept       []string
	TasksMissed     int
	PenaltiesIssued int
	StreakReset     bool
	Expiry          ExpiryResult
	DailiesCreated  int
	CheckpointTaken bool
}

// RunDailyReconciliation brings the state up to today: it sweeps every day
// boundary crossed since the last login, punishes expired penalties, rotates
// the daily quests and takes the day's checkpoint. Running it again on the
// same day changes nothing.
func (e *Engine) RunDailyReconciliation(ctx context.Context) (*RolloverResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	res, err := e.reconcile()
	if err != nil {
		return nil, err
	}
	e.save(ctx)
	return res, nil
}

func (e *Engine) reconcile() (*RolloverResult, error) {
	now := e.now()
	today := DateKey(now, e.loc)
	e.cleanupBuffs(now)

	p := &e.state.Player
	res := &RolloverResult{Today: today}
	res.SameDay = !p.LastLoginAt.IsZero() && DateKey(p.LastLoginAt, e.loc) == today

	if !res.SameDay {
		days, err := e.sweepRange(today)
		if err != nil {
			return nil, err
		}
		for _, d := range days {
			missed, issued := e.sweepDay(d)
			res.TasksMissed += missed
			res.PenaltiesIssued += issued
		}
		res.DaysSwept = days

		reset, err := e.resetStaleStreak(today)
		if err != nil {
			return nil, err
		}
		res.StreakReset = reset

		res.Expiry = e.checkPenaltyExpiry()

		issued, created := e.refreshDailies(today)
		res.PenaltiesIssued += issued
		res.DailiesCreated = created

		e.emit(EventRollover, "new day %s: %d days swept, %d penalties issued", today, len(days), res.PenaltiesIssued)
		e.log.Info("daily rollover",
			zap.String("today", today),
			zap.Int("daysSwept", len(days)),
			zap.Int("tasksMissed", res.TasksMissed),
			zap.Int("penalties", res.PenaltiesIssued),
		)
	}

	p.LastLoginAt = now
	if cp := e.state.Checkpoint; cp == nil || cp.Date != today {
		snap := e.state.Clone()
		snap.Checkpoint = nil
		e.state.Checkpoint = &Checkpoint{Date: today, State: snap}
		res.CheckpointTaken = true
	}
	e.pruneConsolidations(today)
	return res, nil
}

// sweepRange lists the days to sweep: from the last login day, or the oldest
// open task if earlier, up to but excluding today. The last login day is
// included because the session that ended on it never saw its midnight, so
// its own open tasks are still unswept.
func (e *Engine) sweepRange(today string) ([]string, error) {
	from := today
	if last := e.state.Player.LastLoginAt; !last.IsZero() {
		from = DateKey(last, e.loc)
	}
	for _, t := range e.state.Tasks {
		if !t.Status.IsTerminal() && t.Date < from {
			from = t.Date
		}
	}
	return DatesBetween(from, today)
}

// sweepDay closes the open tasks scheduled for date and issues one penalty
// per task group that missed anything.
func (e *Engine) sweepDay(date string) (missed, issued int) {
	now := e.now()
	byGroup := map[TaskGroup][]string{}
	for i := range e.state.Tasks {
		t := &e.state.Tasks[i]
		if t.Date != date || t.Status.IsTerminal() {
			continue
		}
		t.Status = TaskMissed
		t.ClosedAt = &now
		missed++
		byGroup[t.Group] = append(byGroup[t.Group], t.Title)
		e.emit(EventTaskMissed, "task %q missed on %s", t.Title, date)
		if _, q := e.findQuest(t.LinkedQuestID); q != nil && !q.IsCompleted {
			e.removeQuest(q.ID)
		}
	}
	for _, g := range []TaskGroup{TaskGroupOptional, TaskGroupSkillProtocol} {
		if e.issueConsolidatedPenalty(string(g), date, byGroup[g]) {
			issued++
		}
	}
	return missed, issued
}

func (e *Engine) resetStaleStreak(today string) (bool, error) {
	p := &e.state.Player
	if p.Streak == 0 || p.LastCheckInAt.IsZero() {
		return false, nil
	}
	yesterday, err := AddDays(today, -1)
	if err != nil {
		return false, err
	}
	if DateKey(p.LastCheckInAt, e.loc) >= yesterday {
		return false, nil
	}
	e.emit(EventRollover, "streak of %d lost", p.Streak)
	p.Streak = 0
	return true, nil
}

// refreshDailies penalizes stale unfinished dailies once per stale date,
// drops them and makes sure today's set exists.
func (e *Engine) refreshDailies(today string) (issued, created int) {
	missed := map[string][]string{}
	kept := e.state.Quests[:0:0]
	present := map[string]bool{}
	for _, q := range e.state.Quests {
		if q.Type != QuestDaily {
			kept = append(kept, q)
			continue
		}
		if q.ScopeDate == today {
			kept = append(kept, q)
			present[q.TemplateID] = true
			continue
		}
		if !q.IsCompleted && !q.PenaltyExempt {
			missed[q.ScopeDate] = append(missed[q.ScopeDate], q.Title)
		}
		e.emit(EventQuestExpired, "daily %q from %s expired", q.Title, q.ScopeDate)
	}
	e.state.Quests = kept

	dates := make([]string, 0, len(missed))
	for d := range missed {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		if e.issueConsolidatedPenalty(PenaltyGroupDaily, d, missed[d]) {
			issued++
		}
	}

	now := e.now()
	for _, t := range builtinDailies() {
		if present[t.ID] {
			continue
		}
		e.state.Quests = append(e.state.Quests, e.dailyQuest(t, today, now))
		created++
	}
	return issued, created
}

// RunCleanup is the periodic pass a host runs while a session is open. It
// settles buffs and runs the reconciliation when midnight has passed.
func (e *Engine) RunCleanup(ctx context.Context) (*RolloverResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	e.cleanupBuffs(now)
	var res *RolloverResult
	if DateKey(e.state.Player.LastLoginAt, e.loc) != DateKey(now, e.loc) {
		r, err := e.reconcile()
		if err != nil {
			return nil, err
		}
		res = r
	}
	e.save(ctx)
	return res, nil
}

// RestoreCheckpoint rolls the state back to today's checkpoint.
func (e *Engine) RestoreCheckpoint(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cp := e.state.Checkpoint
	if cp == nil || cp.State == nil || cp.Date != e.today() {
		return e.warn(warnf(WarnNoCheckpoint, "no checkpoint for today"))
	}
	restored := cp.State.Clone()
	restored.Checkpoint = cp
	e.state = restored
	e.repair()
	e.emit(EventRestored, "state restored to the checkpoint of %s", cp.Date)
	e.log.Info("checkpoint restored", zap.String("date", cp.Date))
	e.save(ctx)
	return nil
}
