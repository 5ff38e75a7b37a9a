package engine

import (
	"context"
	"errors"
	"slices"
	"time"
)

// MaxTargetStats caps how many stats one quest can advance.
const MaxTargetStats = 3

type CreateQuestInput struct {
	Type        QuestType
	Title       string
	Description string
	Domain      string
	Difficulty  Rank
	// Zero rewards fall back to the difficulty defaults.
	XPReward    int
	GoldReward  int
	TargetStats []Stat
}

// DefaultQuestRewards is the base XP and gold for a user quest of difficulty d.
func DefaultQuestRewards(d Rank) (xp, gold int) {
	switch d {
	case RankS:
		return 1000, 200
	case RankA:
		return 600, 120
	case RankB:
		return 400, 80
	case RankC:
		return 250, 50
	case RankD:
		return 150, 30
	default:
		return 100, 20
	}
}

// CreateQuest adds a user-defined OPTIONAL or SKILL_CHALLENGE quest.
// Daily, boss and penalty quests are only created by the engine itself.
func (e *Engine) CreateQuest(ctx context.Context, in CreateQuestInput) (*Quest, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	q, err := e.buildQuest(in)
	if err != nil {
		var w Warning
		if errors.As(err, &w) {
			return nil, e.warn(w)
		}
		return nil, err
	}
	e.state.Quests = append(e.state.Quests, q)
	e.save(ctx)
	out := q.clone()
	return &out, nil
}

func (e *Engine) buildQuest(in CreateQuestInput) (Quest, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return Quest{}, err
	}
	switch in.Type {
	case QuestOptional, QuestSkillChallenge:
	case QuestDaily, QuestBoss, QuestPenalty:
		return Quest{}, warnf(WarnInvalidInput, "%s quests cannot be created directly", in.Type)
	default:
		return Quest{}, warnf(WarnInvalidInput, "invalid quest type: %q", in.Type)
	}
	d := in.Difficulty
	if d == "" {
		d = RankE
	}
	if !d.IsValid() {
		return Quest{}, warnf(WarnInvalidInput, "invalid difficulty: %q", in.Difficulty)
	}
	if len(in.TargetStats) > MaxTargetStats {
		return Quest{}, warnf(WarnInvalidInput, "a quest can target at most %d stats", MaxTargetStats)
	}
	var stats []Stat
	for _, s := range in.TargetStats {
		if !s.IsValid() {
			return Quest{}, warnf(WarnInvalidInput, "invalid stat: %q", s)
		}
		if !slices.Contains(stats, s) {
			stats = append(stats, s)
		}
	}
	if in.XPReward < 0 || in.GoldReward < 0 {
		return Quest{}, warnf(WarnInvalidInput, "rewards must not be negative")
	}
	xp, gold := in.XPReward, in.GoldReward
	if xp == 0 && gold == 0 {
		xp, gold = DefaultQuestRewards(d)
	}

	now := e.now()
	return Quest{
		ID:          e.newID(),
		Type:        in.Type,
		Title:       title,
		Description: in.Description,
		Difficulty:  d,
		XPReward:    xp,
		GoldReward:  gold,
		Domain:      in.Domain,
		TargetStats: stats,
		CreatedAt:   now,
		ScopeDate:   DateKey(now, e.loc),
	}, nil
}

func (e *Engine) dailyQuestsFor(date string) []Quest {
	now := e.now()
	var out []Quest
	for _, t := range builtinDailies() {
		out = append(out, e.dailyQuest(t, date, now))
	}
	return out
}

func (e *Engine) dailyQuest(t DailyTemplate, date string, now time.Time) Quest {
	return Quest{
		ID:            e.newID(),
		Type:          QuestDaily,
		Title:         t.Title,
		Difficulty:    t.Difficulty,
		XPReward:      t.XPReward,
		GoldReward:    t.GoldReward,
		Domain:        t.Domain,
		TargetStats:   slices.Clone(t.TargetStats),
		CreatedAt:     now,
		ScopeDate:     date,
		TemplateID:    t.ID,
		PenaltyExempt: t.Exempt,
	}
}
