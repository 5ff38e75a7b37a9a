package engine

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type CompleteResult struct {
	QuestID       string
	QuestType     QuestType
	XPAwarded     int
	GoldAwarded   int
	StreakPercent int
	// StatDeltas is the progress granted; StatPoints the stat levels it produced.
	StatDeltas  map[Stat]int
	StatPoints  map[Stat]int
	LevelBefore int
	LevelAfter  int
	RankBefore  Rank
	RankAfter   Rank
	// LevelUpStats lists the stats raised by level-ups.
	LevelUpStats []Stat
}

func (r CompleteResult) LevelUp() bool { return r.LevelAfter > r.LevelBefore }
func (r CompleteResult) RankUp() bool  { return r.RankAfter != r.RankBefore }

// CompleteQuest applies the quest's reward. Penalty quests are removed on
// completion; every other quest stays as a completed record.
func (e *Engine) CompleteQuest(ctx context.Context, id string) (*CompleteResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.completeQuest(ctx, id)
}

func (e *Engine) completeQuest(ctx context.Context, id string) (*CompleteResult, error) {
	now := e.now()
	e.cleanupBuffs(now)

	_, q := e.findQuest(id)
	if q == nil {
		return nil, e.warn(warnf(WarnQuestNotFound, "quest %s not found", id))
	}
	if q.IsCompleted {
		return nil, e.warn(warnf(WarnQuestCompleted, "quest %q is already completed", q.Title))
	}
	quest := q.clone()

	p := &e.state.Player
	reward := ComputeReward(quest, *p, p.ActiveBuffs, now)
	xpRes := e.applyXP(reward.XP)
	gold := AddGold(p, reward.Gold)
	statRes := e.applyStatDeltas(reward.StatDeltas)

	switch quest.Type {
	case QuestPenalty:
		e.removeQuest(quest.ID)
		e.emit(EventPenaltyCleared, "penalty %q cleared", quest.Title)
	case QuestBoss:
		q.IsCompleted = true
		q.CompletedAt = &now
		if b := e.findBoss(quest.BossID); b != nil {
			b.Status = BossDefeated
			e.emit(EventBossDefeated, "%s defeated", b.Name)
		}
	case QuestDaily, QuestOptional, QuestSkillChallenge:
		q.IsCompleted = true
		q.CompletedAt = &now
	}

	if t := e.taskForQuest(quest.ID); t != nil && !t.Status.IsTerminal() {
		t.Status = TaskCompleted
		t.ClosedAt = &now
	}

	e.emit(EventQuestCompleted, "%s: +%d XP, +%d gold", quest.Title, reward.XP, gold)
	e.log.Info("quest completed",
		zap.String("quest", quest.ID),
		zap.String("type", string(quest.Type)),
		zap.Int("xp", reward.XP),
		zap.Int("gold", gold),
	)
	e.save(ctx)

	return &CompleteResult{
		QuestID:       quest.ID,
		QuestType:     quest.Type,
		XPAwarded:     reward.XP,
		GoldAwarded:   gold,
		StreakPercent: reward.StreakPercent,
		StatDeltas:    reward.StatDeltas,
		StatPoints:    statRes.Gained,
		LevelBefore:   xpRes.LevelBefore,
		LevelAfter:    xpRes.LevelAfter,
		RankBefore:    xpRes.RankBefore,
		RankAfter:     xpRes.RankAfter,
		LevelUpStats:  xpRes.StatBonuses,
	}, nil
}

// AddXP grants XP outside of quest completion.
func (e *Engine) AddXP(ctx context.Context, amount int) (XPResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if amount < 0 {
		return XPResult{}, e.warn(warnf(WarnInvalidInput, "xp amount must not be negative"))
	}
	res := e.applyXP(amount)
	e.save(ctx)
	return res, nil
}

// AddGold changes the gold balance. Negative amounts spend gold down to zero.
func (e *Engine) AddGold(ctx context.Context, amount int) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	applied := AddGold(&e.state.Player, amount)
	e.save(ctx)
	return applied, nil
}

// applyXP runs the progression ledger and emits level and rank events.
func (e *Engine) applyXP(amount int) XPResult {
	res := ApplyXP(&e.state.Player, amount, e.rng)
	if res.LevelUp() {
		e.emit(EventLevelUp, "level %d → %d (stat bonus: %s)", res.LevelBefore, res.LevelAfter, joinStats(res.StatBonuses))
		e.evaluateSkillUnlocks()
	}
	if res.RankUp() {
		e.emit(EventRankUp, "rank %s → %s", res.RankBefore, res.RankAfter)
		e.refreshBossLocks()
	}
	return res
}

func (e *Engine) applyStatDeltas(deltas map[Stat]int) StatResult {
	res := ApplyStatDeltas(&e.state.Player, deltas)
	for _, s := range AllStats {
		if n := res.Gained[s]; n > 0 {
			e.emit(EventStatUp, "%s +%d (now %d)", s, n, e.state.Player.Stats[s])
		}
	}
	if len(res.Gained) > 0 {
		e.evaluateSkillUnlocks()
	}
	return res
}

// evaluateSkillUnlocks unlocks every node whose stat requirement is met.
func (e *Engine) evaluateSkillUnlocks() {
	for i := range e.state.SkillNodes {
		n := &e.state.SkillNodes[i]
		if n.Unlocked {
			continue
		}
		if e.state.Player.Stats[n.Stat] >= n.RequiredStat {
			n.Unlocked = true
			e.emit(EventSkillUnlocked, "skill %q unlocked", n.Name)
		}
	}
}

func joinStats(stats []Stat) string {
	parts := make([]string, len(stats))
	for i, s := range stats {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

func (r CompleteResult) String() string {
	return fmt.Sprintf("+%d XP, +%d gold (level %d → %d)", r.XPAwarded, r.GoldAwarded, r.LevelBefore, r.LevelAfter)
}
