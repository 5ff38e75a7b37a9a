package engine

import (
	"testing"
	"time"
)

func TestStreakPercentSteps(t *testing.T) {
	cases := []struct {
		streak int
		want   int
	}{
		{0, 100}, {9, 100}, {10, 150}, {29, 150}, {30, 200}, {44, 200}, {45, 250}, {59, 250}, {60, 300}, {400, 300},
	}
	for _, c := range cases {
		if got := StreakPercent(c.streak); got != c.want {
			t.Fatalf("StreakPercent(%d)=%d, want %d", c.streak, got, c.want)
		}
	}
}

func TestStreakMultiplierAppliesOnlyToXP(t *testing.T) {
	now := day1
	q := Quest{Type: QuestDaily, XPReward: 100, GoldReward: 20, Difficulty: RankE, TargetStats: []Stat{StatSTR}}

	p := NewPlayer()
	p.Streak = 9
	at9 := ComputeReward(q, p, nil, now)
	p.Streak = 10
	at10 := ComputeReward(q, p, nil, now)

	if at10.XP*2 != at9.XP*3 {
		t.Fatalf("xp at 9=%d, at 10=%d, want a 1.5x step", at9.XP, at10.XP)
	}
	if at9.Gold != at10.Gold || at9.StatDeltas[StatSTR] != at10.StatDeltas[StatSTR] {
		t.Fatalf("streak changed gold or stat progress")
	}
}

func TestBossRewardIgnoresStreak(t *testing.T) {
	now := day1
	q := Quest{Type: QuestBoss, XPReward: 1500, GoldReward: 300, Difficulty: RankE}
	p := NewPlayer()

	base := ComputeReward(q, p, nil, now)
	for _, streak := range []int{10, 30, 60} {
		p.Streak = streak
		r := ComputeReward(q, p, nil, now)
		if r.XP != base.XP || r.XP != 1500 {
			t.Fatalf("boss xp at streak %d=%d, want 1500", streak, r.XP)
		}
	}
	for _, s := range AllStats {
		if base.StatDeltas[s] != BossStatProgress {
			t.Fatalf("boss progress for %s=%d, want %d", s, base.StatDeltas[s], BossStatProgress)
		}
	}
}

func TestStatProgressByDifficulty(t *testing.T) {
	want := map[Rank]int{RankE: 20, RankD: 30, RankC: 40, RankB: 60, RankA: 80, RankS: 100}
	for r, progress := range want {
		q := Quest{Type: QuestOptional, XPReward: 10, Difficulty: r, TargetStats: []Stat{StatPER}}
		got := ComputeReward(q, NewPlayer(), nil, day1).StatDeltas
		if got[StatPER] != progress || len(got) != 1 {
			t.Fatalf("difficulty %s: deltas=%v, want PER %d only", r, got, progress)
		}
	}
}

func TestBuffMultipliers(t *testing.T) {
	now := day1
	later := now.Add(time.Hour)
	buffs := []Buff{
		{Type: BuffStatAll, Value: 20, ExpiresAt: later},
		{Type: BuffStatSingle, Value: 50, TargetStats: []Stat{StatINT}, ExpiresAt: later},
		{Type: BuffGoldMultiplier, Value: 50, ExpiresAt: later},
		// paused and expired buffs do not count
		{Type: BuffGoldMultiplier, Value: 100, ExpiresAt: later.Add(time.Hour), Paused: true},
		{Type: BuffStatAll, Value: 100, ExpiresAt: now},
	}
	q := Quest{Type: QuestSkillChallenge, XPReward: 100, GoldReward: 20, Difficulty: RankE, TargetStats: []Stat{StatINT, StatSTR}}

	r := ComputeReward(q, NewPlayer(), buffs, now)
	if r.StatDeltas[StatSTR] != 24 {
		t.Fatalf("STR progress=%d, want 24", r.StatDeltas[StatSTR])
	}
	if r.StatDeltas[StatINT] != 34 {
		t.Fatalf("INT progress=%d, want 34", r.StatDeltas[StatINT])
	}
	if r.Gold != 30 {
		t.Fatalf("gold=%d, want 30", r.Gold)
	}
	if r.XP != 100 {
		t.Fatalf("xp=%d, want 100", r.XP)
	}
}

func TestPenaltyQuestYieldsNothing(t *testing.T) {
	p := NewPlayer()
	p.Streak = 60
	r := ComputeReward(Quest{Type: QuestPenalty, XPReward: 500, GoldReward: 100}, p, nil, day1)
	if r.XP != 0 || r.Gold != 0 || len(r.StatDeltas) != 0 {
		t.Fatalf("penalty reward=%+v, want zero", r)
	}
}
