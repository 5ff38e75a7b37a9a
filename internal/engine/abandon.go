package engine

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type AbandonResult struct {
	QuestID string
	// Immune is set when a penalty immunity buff absorbed the abandonment.
	Immune  bool
	Penalty *Quest
}

// AbandonQuest drops a quest. Unless an immunity buff absorbs it, exactly one
// penalty quest takes its place. Penalty quests cannot be abandoned.
func (e *Engine) AbandonQuest(ctx context.Context, id string) (*AbandonResult, error) {
	res, req, err := e.abandon(ctx, id)
	if err != nil || req == nil {
		return res, err
	}

	// The penalty already exists with template text; only its wording changes.
	c, genErr := e.generate(ctx, *req)

	e.mu.Lock()
	defer e.mu.Unlock()
	if genErr != nil {
		e.log.Warn("penalty content fallback", zap.String("quest", res.Penalty.ID), zap.Error(genErr))
		return res, nil
	}
	_, q := e.findQuest(res.Penalty.ID)
	if q == nil || q.IsCompleted {
		return res, nil
	}
	q.Title = strings.TrimSpace(c.Title)
	if c.Description != "" {
		q.Description = c.Description
	}
	out := q.clone()
	res.Penalty = &out
	e.save(ctx)
	return res, nil
}

// abandon performs the local mutation and returns the enrichment request for
// the new penalty, if any.
func (e *Engine) abandon(ctx context.Context, id string) (*AbandonResult, *ContentRequest, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	e.cleanupBuffs(now)

	_, q := e.findQuest(id)
	if q == nil {
		return nil, nil, e.warn(warnf(WarnQuestNotFound, "quest %s not found", id))
	}
	quest := q.clone()
	switch quest.Type {
	case QuestPenalty:
		return nil, nil, e.warn(warnf(WarnPenaltyNotAbandoned, "penalty %q cannot be abandoned", quest.Title))
	case QuestDaily, QuestBoss, QuestOptional, QuestSkillChallenge:
	}
	if quest.IsCompleted {
		return nil, nil, e.warn(warnf(WarnQuestCompleted, "quest %q is already completed", quest.Title))
	}

	e.removeQuest(quest.ID)
	if quest.Type == QuestBoss {
		if b := e.findBoss(quest.BossID); b != nil && b.Status == BossActive {
			b.Status = BossAvailable
			b.QuestID = ""
		}
	}
	if t := e.taskForQuest(quest.ID); t != nil && !t.Status.IsTerminal() {
		t.Status = TaskMissed
		t.ClosedAt = &now
		e.emit(EventTaskMissed, "task %q missed", t.Title)
	}
	e.emit(EventQuestAbandoned, "%s abandoned", quest.Title)

	res := &AbandonResult{QuestID: quest.ID}
	if b, ok := ConsumeImmunity(e.state.Player.ActiveBuffs, now); ok {
		res.Immune = true
		e.emit(EventImmunityUsed, "%s absorbed the penalty (%d uses left)", buffLabel(*b), b.UsesRemaining)
		e.save(ctx)
		return res, nil, nil
	}

	p := e.newPenaltyQuest(e.pickPenaltyTemplate(), PenaltyGroupAbandon, DateKey(now, e.loc), quest.Title)
	e.state.Quests = append(e.state.Quests, p)
	e.emit(EventPenaltyIssued, "penalty %q issued for abandoning %s", p.Title, quest.Title)
	e.log.Info("quest abandoned", zap.String("quest", quest.ID), zap.String("penalty", p.ID))
	e.save(ctx)

	out := p.clone()
	res.Penalty = &out
	player := e.state.Player
	return res, &ContentRequest{
		Kind:        ContentPenalty,
		PlayerLevel: player.Level,
		PlayerRank:  player.Rank,
		Difficulty:  RankE,
		Context:     fmt.Sprintf("the player abandoned %q", quest.Title),
	}, nil
}
