package engine

// Title is a badge the player earns from progression milestones.
type Title struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

// TitleChecker derives titles from a state snapshot.
type TitleChecker struct {
	state *State
}

func NewTitleChecker(s *State) *TitleChecker {
	return &TitleChecker{state: s}
}

// Titles returns every title with its earned status.
func (c *TitleChecker) Titles() []Title {
	return []Title{
		// Level milestones
		c.levelTitle("awakened", "The Awakened", "Reach level 2", "🌱", 2),
		c.levelTitle("hunter", "Hunter", "Reach level 10", "🗡", 10),
		c.levelTitle("elite", "Elite Hunter", "Reach level 25", "⚔", 25),
		c.levelTitle("national", "National Level", "Reach level 65", "🌟", 65),

		// Rank milestones
		c.rankTitle("rank_c", "C-Rank Hunter", "Reach rank C", "🥉", RankC),
		c.rankTitle("rank_a", "A-Rank Hunter", "Reach rank A", "🥈", RankA),
		c.rankTitle("rank_s", "Shadow Monarch", "Reach rank S", "👑", RankS),

		// Streaks
		c.streakTitle("consistent", "Consistent", "Check in 10 days in a row", "🔥", 10),
		c.streakTitle("relentless", "Relentless", "Check in 30 days in a row", "⚡", 30),
		c.egoDeathTitle("ego_death", "Ego Death", "7 days without an outstanding penalty", "🕯", 7),

		// Stats
		c.statTitle("iron", "Iron Will", "Any stat at level 10", "💪", 10),

		// Gates
		c.bossTitle("gate_breaker", "Gate Breaker", "Defeat a boss", "🚪", 1),
		c.bossTitle("monarch_slayer", "Monarch Slayer", "Defeat every boss", "🏆", len(allRanks)),
	}
}

// CountEarned returns how many titles have been earned.
func (c *TitleChecker) CountEarned() int {
	count := 0
	for _, t := range c.Titles() {
		if t.Earned {
			count++
		}
	}
	return count
}

func (c *TitleChecker) levelTitle(id, name, desc, icon string, level int) Title {
	return Title{ID: id, Name: name, Description: desc, Icon: icon, Earned: c.state.Player.Level >= level}
}

func (c *TitleChecker) rankTitle(id, name, desc, icon string, r Rank) Title {
	return Title{ID: id, Name: name, Description: desc, Icon: icon, Earned: c.state.Player.Rank.Order() >= r.Order()}
}

func (c *TitleChecker) streakTitle(id, name, desc, icon string, days int) Title {
	return Title{ID: id, Name: name, Description: desc, Icon: icon, Earned: c.state.Player.Streak >= days}
}

func (c *TitleChecker) egoDeathTitle(id, name, desc, icon string, days int) Title {
	return Title{ID: id, Name: name, Description: desc, Icon: icon, Earned: c.state.Player.EgoDeathStreak >= days}
}

func (c *TitleChecker) statTitle(id, name, desc, icon string, level int) Title {
	earned := false
	for _, s := range AllStats {
		if c.state.Player.Stats[s] >= level {
			earned = true
			break
		}
	}
	return Title{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *TitleChecker) bossTitle(id, name, desc, icon string, count int) Title {
	defeated := 0
	for _, b := range c.state.Bosses {
		if b.Status == BossDefeated {
			defeated++
		}
	}
	return Title{ID: id, Name: name, Description: desc, Icon: icon, Earned: defeated >= count}
}

// Titles is a convenience wrapper over the current state.
func (e *Engine) Titles() []Title {
	e.mu.Lock()
	defer e.mu.Unlock()
	return NewTitleChecker(e.state).Titles()
}
