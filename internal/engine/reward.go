package engine

import "time"

// BossStatProgress is the flat progress a boss grants to every stat.
const BossStatProgress = 60

// Reward is the outcome of completing a quest, before it is applied.
type Reward struct {
	XP         int
	Gold       int
	StatDeltas map[Stat]int
	// StreakPercent is the XP multiplier applied, in percent (100 = ×1.0).
	StreakPercent int
}

// StreakPercent returns the XP multiplier for a check-in streak, in percent.
func StreakPercent(streak int) int {
	switch {
	case streak >= 60:
		return 300
	case streak >= 45:
		return 250
	case streak >= 30:
		return 200
	case streak >= 10:
		return 150
	default:
		return 100
	}
}

// StatProgressForDifficulty is the per-stat progress a quest of the given
// difficulty grants.
func StatProgressForDifficulty(d Rank) int {
	switch d {
	case RankS:
		return 100
	case RankA:
		return 80
	case RankB:
		return 60
	case RankC:
		return 40
	case RankD:
		return 30
	default:
		return 20
	}
}

// ComputeReward works out XP, gold and stat progress for completing q.
// It does not mutate anything.
func ComputeReward(q Quest, p Player, buffs []Buff, now time.Time) Reward {
	r := Reward{StatDeltas: map[Stat]int{}, StreakPercent: 100}

	switch q.Type {
	case QuestPenalty:
		return r
	case QuestBoss:
		r.XP = q.XPReward
		r.Gold = applyPercent(q.GoldReward, GoldPercent(buffs, now))
		for _, s := range AllStats {
			r.StatDeltas[s] = applyPercent(BossStatProgress, StatPercent(buffs, s, now))
		}
		return r
	case QuestDaily, QuestOptional, QuestSkillChallenge:
		r.StreakPercent = StreakPercent(p.Streak)
		r.XP = applyPercent(q.XPReward, r.StreakPercent)
		r.Gold = applyPercent(q.GoldReward, GoldPercent(buffs, now))
		base := StatProgressForDifficulty(q.Difficulty)
		for _, s := range q.TargetStats {
			if !s.IsValid() {
				continue
			}
			r.StatDeltas[s] += applyPercent(base, StatPercent(buffs, s, now))
		}
		return r
	default:
		return r
	}
}

// applyPercent floors v × pct / 100 using integer math.
func applyPercent(v, pct int) int {
	if v <= 0 {
		return 0
	}
	return v * pct / 100
}
