package engine

import "math/rand"

const (
	// XPPerLevel scales the XP needed to clear a level: level × XPPerLevel.
	XPPerLevel = 1000

	// StatProgressCap is the progress needed for one stat point.
	StatProgressCap = 100

	// LevelUpStatPicks is how many distinct stats gain a point on each level-up.
	LevelUpStatPicks = 3
)

// rankThresholds maps the minimum level to its rank, highest first.
var rankThresholds = []struct {
	level int
	rank  Rank
}{
	{85, RankS},
	{65, RankA},
	{45, RankB},
	{25, RankC},
	{10, RankD},
}

// XPForLevel returns the XP needed to leave the given level.
func XPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return level * XPPerLevel
}

// RankForLevel derives the rank from the level.
func RankForLevel(level int) Rank {
	for _, t := range rankThresholds {
		if level >= t.level {
			return t.rank
		}
	}
	return RankE
}

// MinLevelForRank is the lowest level with the given rank.
func MinLevelForRank(r Rank) int {
	for _, t := range rankThresholds {
		if t.rank == r {
			return t.level
		}
	}
	return 1
}

// XPResult reports what happened during an XP grant.
type XPResult struct {
	XPApplied   int
	LevelBefore int
	LevelAfter  int
	RankBefore  Rank
	RankAfter   Rank
	// StatBonuses lists the stats raised by level-ups, three per level gained.
	StatBonuses []Stat
}

func (r XPResult) LevelUp() bool { return r.LevelAfter > r.LevelBefore }
func (r XPResult) RankUp() bool  { return r.RankAfter.Order() > r.RankBefore.Order() }

// ApplyXP adds amount to the player's XP and runs every level-up it triggers.
// Negative amounts drain XP within the current level and never remove levels.
func ApplyXP(p *Player, amount int, rng *rand.Rand) XPResult {
	ensureStatMaps(p)
	res := XPResult{
		XPApplied:   amount,
		LevelBefore: p.Level,
		RankBefore:  p.Rank,
	}

	p.XPToNextLevel = XPForLevel(p.Level)
	p.XP += amount
	if p.XP < 0 {
		p.XP = 0
	}
	for p.XP >= p.XPToNextLevel {
		p.XP -= p.XPToNextLevel
		p.Level++
		p.XPToNextLevel = XPForLevel(p.Level)
		for _, s := range pickStats(rng, LevelUpStatPicks) {
			p.Stats[s]++
			res.StatBonuses = append(res.StatBonuses, s)
		}
	}

	// Levels never drop, so the derived rank never drops either.
	p.Rank = RankForLevel(p.Level)
	res.LevelAfter = p.Level
	res.RankAfter = p.Rank
	return res
}

// pickStats selects n distinct stats uniformly at random.
func pickStats(rng *rand.Rand, n int) []Stat {
	perm := rng.Perm(len(AllStats))
	if n > len(perm) {
		n = len(perm)
	}
	out := make([]Stat, 0, n)
	for _, i := range perm[:n] {
		out = append(out, AllStats[i])
	}
	return out
}

// StatResult reports stat points gained per stat.
type StatResult struct {
	Gained map[Stat]int
}

// ApplyStatDeltas adds progress deltas and converts every full 100 into a stat point.
// Negative results clamp at zero.
func ApplyStatDeltas(p *Player, deltas map[Stat]int) StatResult {
	ensureStatMaps(p)
	res := StatResult{Gained: map[Stat]int{}}
	for _, s := range AllStats {
		d, ok := deltas[s]
		if !ok || d == 0 {
			continue
		}
		prog := p.StatProgress[s] + d
		if prog < 0 {
			prog = 0
		}
		for prog >= StatProgressCap {
			prog -= StatProgressCap
			p.Stats[s]++
			res.Gained[s]++
		}
		p.StatProgress[s] = prog
	}
	return res
}

// AddGold changes the gold balance, clamping at zero.
func AddGold(p *Player, amount int) int {
	before := p.Gold
	p.Gold += amount
	if p.Gold < 0 {
		p.Gold = 0
	}
	return p.Gold - before
}

// ensureStatMaps fills missing maps and folds overflowing progress into stat
// points.
func ensureStatMaps(p *Player) {
	if p.Stats == nil {
		p.Stats = map[Stat]int{}
	}
	if p.StatProgress == nil {
		p.StatProgress = map[Stat]int{}
	}
	for _, s := range AllStats {
		if p.Stats[s] < 0 {
			p.Stats[s] = 0
		}
		v := p.StatProgress[s]
		if v < 0 {
			v = 0
		}
		p.Stats[s] += v / StatProgressCap
		p.StatProgress[s] = v % StatProgressCap
	}
}
