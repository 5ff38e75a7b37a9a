package engine

import "go.uber.org/zap"

// repair substitutes built-in collections for missing or empty ones and
// normalizes player fields. It must run before the rollover, which needs a
// quest set to work on.
func (e *Engine) repair() {
	s := e.state
	var repaired []string

	if len(s.Quests) == 0 {
		s.Quests = e.dailyQuestsFor(e.today())
		repaired = append(repaired, "quests")
	}
	if len(s.Bosses) == 0 {
		s.Bosses = builtinBosses()
		repaired = append(repaired, "bosses")
	}
	if len(s.ShopItems) == 0 {
		s.ShopItems = builtinShopItems()
		repaired = append(repaired, "shop items")
	}
	if len(s.SkillNodes) == 0 {
		s.SkillNodes = builtinSkillNodes()
		repaired = append(repaired, "skill nodes")
	}

	p := &s.Player
	if p.Level < 1 {
		p.Level = 1
		repaired = append(repaired, "level")
	}
	p.XPToNextLevel = XPForLevel(p.Level)
	if p.XP < 0 {
		p.XP = 0
	}
	if p.Gold < 0 {
		p.Gold = 0
	}
	ensureStatMaps(p)
	// A corrupted snapshot can hold more XP than the level allows.
	if p.XP >= p.XPToNextLevel {
		ApplyXP(p, 0, e.rng)
	}
	p.Rank = RankForLevel(p.Level)

	for _, what := range repaired {
		e.emit(EventSystemRepair, "restored default %s", what)
	}
	if len(repaired) > 0 {
		e.log.Info("state repaired", zap.Strings("collections", repaired))
	}
	e.refreshBossLocks()
}
