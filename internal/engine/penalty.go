package engine

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// PenaltyExpiryPercent is the share of XP, gold and stat progress lost when a
// penalty quest is left unresolved past its day.
const PenaltyExpiryPercent = 30

// consolidationMarkDays is how long consolidation marks are kept.
const consolidationMarkDays = 45

type ExpiryResult struct {
	Expired      []Quest
	XPLost       int
	GoldLost     int
	ProgressLost map[Stat]int
}

func (r ExpiryResult) Failed() bool { return len(r.Expired) > 0 }

func (e *Engine) pickPenaltyTemplate() contentTemplate {
	return penaltyTemplates[e.rng.Intn(len(penaltyTemplates))]
}

func (e *Engine) newPenaltyQuest(t contentTemplate, group, sourceDate, sourceTitle string) Quest {
	now := e.now()
	return Quest{
		ID:           e.newID(),
		Type:         QuestPenalty,
		Title:        t.Title,
		Description:  t.Description,
		Difficulty:   RankE,
		Domain:       "penalty",
		CreatedAt:    now,
		ScopeDate:    DateKey(now, e.loc),
		PenaltyGroup: group,
		SourceDate:   sourceDate,
		SourceTitle:  sourceTitle,
	}
}

func (e *Engine) hasConsolidation(group, date string) bool {
	for _, m := range e.state.Consolidations {
		if m.Group == group && m.Date == date {
			return true
		}
	}
	for _, q := range e.state.Quests {
		if q.Type == QuestPenalty && q.PenaltyGroup == group && q.SourceDate == date {
			return true
		}
	}
	return false
}

// issueConsolidatedPenalty creates one penalty for every missed item of a
// group on a date. A second call for the same group and date does nothing.
func (e *Engine) issueConsolidatedPenalty(group, date string, missed []string) bool {
	if len(missed) == 0 || e.hasConsolidation(group, date) {
		return false
	}
	source := missed[0]
	if len(missed) > 1 {
		source = fmt.Sprintf("%d missed %s obligations", len(missed), strings.ToLower(group))
	}
	q := e.newPenaltyQuest(e.pickPenaltyTemplate(), group, date, source)
	e.state.Quests = append(e.state.Quests, q)
	e.state.Consolidations = append(e.state.Consolidations, ConsolidationMark{Group: group, Date: date})
	e.emit(EventPenaltyIssued, "penalty %q issued for %s on %s", q.Title, source, date)
	e.log.Info("consolidated penalty issued",
		zap.String("group", group),
		zap.String("date", date),
		zap.Int("missed", len(missed)),
	)
	return true
}

// pruneConsolidations drops marks too old to matter for re-entry.
func (e *Engine) pruneConsolidations(today string) {
	cutoff, err := AddDays(today, -consolidationMarkDays)
	if err != nil {
		return
	}
	out := e.state.Consolidations[:0]
	for _, m := range e.state.Consolidations {
		if m.Date >= cutoff {
			out = append(out, m)
		}
	}
	e.state.Consolidations = out
}

// CheckPenaltyExpiry punishes penalty quests left unresolved past their day.
func (e *Engine) CheckPenaltyExpiry(ctx context.Context) (ExpiryResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	res := e.checkPenaltyExpiry()
	if res.Failed() {
		e.save(ctx)
	}
	return res, nil
}

func (e *Engine) checkPenaltyExpiry() ExpiryResult {
	today := e.today()
	res := ExpiryResult{ProgressLost: map[Stat]int{}}

	kept := e.state.Quests[:0:0]
	for _, q := range e.state.Quests {
		if q.Type == QuestPenalty && !q.IsCompleted && q.ScopeDate < today {
			res.Expired = append(res.Expired, q)
			continue
		}
		kept = append(kept, q)
	}
	if !res.Failed() {
		return res
	}
	e.state.Quests = kept

	p := &e.state.Player
	res.XPLost = p.XP * PenaltyExpiryPercent / 100
	p.XP -= res.XPLost
	res.GoldLost = p.Gold * PenaltyExpiryPercent / 100
	p.Gold -= res.GoldLost
	loss := map[Stat]int{}
	for _, s := range AllStats {
		if n := p.StatProgress[s] * PenaltyExpiryPercent / 100; n > 0 {
			loss[s] = -n
			res.ProgressLost[s] = n
		}
	}
	ApplyStatDeltas(p, loss)
	p.EgoDeathStreak = 0

	titles := make([]string, len(res.Expired))
	for i, q := range res.Expired {
		titles[i] = q.Title
	}
	e.emit(EventPenaltyExpired, "penalty failed (%s): -%d XP, -%d gold, stat progress -%d%%",
		strings.Join(titles, ", "), res.XPLost, res.GoldLost, PenaltyExpiryPercent)
	e.log.Warn("penalty expired",
		zap.Int("count", len(res.Expired)),
		zap.Int("xpLost", res.XPLost),
		zap.Int("goldLost", res.GoldLost),
	)
	return res
}

func (e *Engine) hasOutstandingPenalty() bool {
	for _, q := range e.state.Quests {
		if q.Type == QuestPenalty && !q.IsCompleted {
			return true
		}
	}
	return false
}

type CheckInResult struct {
	Streak         int
	EgoDeathStreak int
	EgoDeathUp     bool
}

// CheckIn records today's check-in. The streak continues from yesterday or
// restarts at 1; the ego death streak grows when no penalty is outstanding.
func (e *Engine) CheckIn(ctx context.Context) (*CheckInResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	today := DateKey(now, e.loc)
	p := &e.state.Player
	if !p.LastCheckInAt.IsZero() && DateKey(p.LastCheckInAt, e.loc) == today {
		return nil, e.warn(warnf(WarnAlreadyCheckedIn, "already checked in today"))
	}

	yesterday, err := AddDays(today, -1)
	if err != nil {
		return nil, err
	}
	if !p.LastCheckInAt.IsZero() && DateKey(p.LastCheckInAt, e.loc) == yesterday {
		p.Streak++
	} else {
		p.Streak = 1
	}
	p.LastCheckInAt = now

	res := &CheckInResult{}
	if p.LastEgoDeathDate != today && !e.hasOutstandingPenalty() {
		p.EgoDeathStreak++
		p.LastEgoDeathDate = today
		res.EgoDeathUp = true
	}
	res.Streak = p.Streak
	res.EgoDeathStreak = p.EgoDeathStreak

	e.emit(EventCheckIn, "check-in: streak %d, ego death streak %d", p.Streak, p.EgoDeathStreak)
	e.save(ctx)
	return res, nil
}
