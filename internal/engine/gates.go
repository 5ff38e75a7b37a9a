package engine

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// GateForRank returns the gate error for a boss the player's rank cannot
// reach yet, or nil when it is reachable.
func GateForRank(player, boss Rank) error {
	if player.Order() >= boss.Order() {
		return nil
	}
	return GateError{Feature: string(boss) + "-rank gate", RequiredLevel: MinLevelForRank(boss)}
}

// refreshBossLocks opens every locked gate the player's rank has reached.
// Gates never lock again.
func (e *Engine) refreshBossLocks() {
	r := e.state.Player.Rank
	for i := range e.state.Bosses {
		b := &e.state.Bosses[i]
		if b.Status != BossLocked || GateForRank(r, b.Rank) != nil {
			continue
		}
		b.Status = BossAvailable
		e.emit(EventBossUnlocked, "%s gate opened: %s", b.Rank, b.Name)
	}
}

func (e *Engine) activeBoss() *Boss {
	for i := range e.state.Bosses {
		if e.state.Bosses[i].Status == BossActive {
			return &e.state.Bosses[i]
		}
	}
	return nil
}

// EnterGate starts the boss fight behind a gate. Only one gate may be active;
// a second attempt is rejected rather than queued.
func (e *Engine) EnterGate(ctx context.Context, bossID string) (*Quest, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b := e.findBoss(bossID)
	if b == nil {
		return nil, e.warn(warnf(WarnBossNotFound, "boss %s not found", bossID))
	}
	if active := e.activeBoss(); active != nil {
		return nil, e.warn(warnf(WarnGateBusy, "%s is already in progress", active.Name))
	}
	switch b.Status {
	case BossLocked:
		err := GateForRank(e.state.Player.Rank, b.Rank)
		if err == nil {
			err = GateError{Feature: b.Name}
		}
		e.emit(EventWarning, "%s", err.Error())
		return nil, err
	case BossDefeated:
		return nil, e.warn(warnf(WarnBossUnavailable, "%s is already defeated", b.Name))
	case BossAvailable, BossActive:
	}

	now := e.now()
	q := Quest{
		ID:          e.newID(),
		Type:        QuestBoss,
		Title:       b.Name,
		Description: b.Description,
		Difficulty:  b.Rank,
		XPReward:    b.XPReward,
		GoldReward:  b.GoldReward,
		Domain:      "gate",
		CreatedAt:   now,
		ScopeDate:   DateKey(now, e.loc),
		BossID:      b.ID,
	}
	e.state.Quests = append(e.state.Quests, q)
	b.Status = BossActive
	b.QuestID = q.ID

	e.emit(EventBossUnlocked, "entered the %s gate: %s", b.Rank, b.Name)
	e.log.Info("gate entered", zap.String("boss", b.ID), zap.String("quest", q.ID))
	e.save(ctx)
	out := q.clone()
	return &out, nil
}

// RecalibrateBoss rescales a gate to the player's current rank. The gate gets
// a template name first; generated content replaces it when available.
func (e *Engine) RecalibrateBoss(ctx context.Context, bossID string) (*Boss, error) {
	b, req, err := e.recalibrate(ctx, bossID)
	if err != nil {
		return nil, err
	}

	c, genErr := e.generate(ctx, *req)

	e.mu.Lock()
	defer e.mu.Unlock()
	if genErr != nil {
		e.log.Warn("boss content fallback", zap.String("boss", bossID), zap.Error(genErr))
		return b, nil
	}
	cur := e.findBoss(bossID)
	if cur == nil || cur.Status != BossAvailable || cur.Rank != b.Rank {
		return b, nil
	}
	cur.Name = strings.TrimSpace(c.Title)
	if c.Description != "" {
		cur.Description = c.Description
	}
	e.save(ctx)
	out := *cur
	return &out, nil
}

func (e *Engine) recalibrate(ctx context.Context, bossID string) (*Boss, *ContentRequest, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	b := e.findBoss(bossID)
	if b == nil {
		return nil, nil, e.warn(warnf(WarnBossNotFound, "boss %s not found", bossID))
	}
	switch b.Status {
	case BossActive:
		return nil, nil, e.warn(warnf(WarnGateBusy, "%s is in progress and cannot be recalibrated", b.Name))
	case BossLocked:
		if err := GateForRank(e.state.Player.Rank, b.Rank); err != nil {
			e.emit(EventWarning, "%s", err.Error())
			return nil, nil, err
		}
	case BossAvailable, BossDefeated:
	}

	p := e.state.Player
	t := bossTemplates[e.rng.Intn(len(bossTemplates))]
	b.Rank = p.Rank
	b.XPReward, b.GoldReward = BossRewards(p.Rank)
	b.Name = t.Title
	b.Description = t.Description
	b.Status = BossAvailable
	b.QuestID = ""

	e.emit(EventBossUnlocked, "%s recalibrated to rank %s", b.Name, b.Rank)
	e.save(ctx)
	out := *b
	return &out, &ContentRequest{
		Kind:        ContentBoss,
		PlayerLevel: p.Level,
		PlayerRank:  p.Rank,
		Difficulty:  p.Rank,
		Context:     fmt.Sprintf("a rank %s gate boss worth %d XP", p.Rank, b.XPReward),
	}, nil
}
