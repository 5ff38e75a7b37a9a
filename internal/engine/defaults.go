package engine

import "time"

// DailyTemplate is one entry of the canonical daily quest set.
type DailyTemplate struct {
	ID          string
	Title       string
	Domain      string
	Difficulty  Rank
	XPReward    int
	GoldReward  int
	TargetStats []Stat
	// Exempt dailies never feed a missed-daily penalty.
	Exempt bool
}

func builtinDailies() []DailyTemplate {
	return []DailyTemplate{
		{ID: "daily-strength", Title: "100 Push-ups", Domain: "fitness", Difficulty: RankE, XPReward: 100, GoldReward: 20, TargetStats: []Stat{StatSTR, StatVIT}},
		{ID: "daily-run", Title: "10km Run", Domain: "fitness", Difficulty: RankD, XPReward: 120, GoldReward: 25, TargetStats: []Stat{StatAGI, StatVIT}},
		{ID: "daily-study", Title: "Deep Study (90 min)", Domain: "mind", Difficulty: RankD, XPReward: 120, GoldReward: 25, TargetStats: []Stat{StatINT}},
		{ID: "daily-meditation", Title: "Meditation (20 min)", Domain: "mind", Difficulty: RankE, XPReward: 80, GoldReward: 15, TargetStats: []Stat{StatPER, StatINT}},
		{ID: "daily-hydration", Title: "Hydration Log", Domain: "recovery", Difficulty: RankE, XPReward: 50, GoldReward: 10, TargetStats: []Stat{StatVIT}, Exempt: true},
	}
}

type contentTemplate struct {
	Title       string
	Description string
}

var penaltyTemplates = []contentTemplate{
	{"Survival Protocol: 200 Squats", "Complete 200 bodyweight squats before midnight."},
	{"Cold Exposure", "Take a three minute cold shower."},
	{"Digital Fast", "No social media or video streaming for the rest of the day."},
	{"Penalty Zone: 5km Run", "Run 5km without stopping."},
	{"Silent Hour", "Sit for one hour with no phone, music or screens."},
	{"Discipline Ledger", "Write one page on why the obligation was missed and how to prevent it."},
}

var bossTemplates = []contentTemplate{
	{"Igris the Crimson Knight", "A sworn guardian that tests sustained effort."},
	{"Cerberus of the Gate", "Three heads, three habits. Keep all of them alive for a week."},
	{"The Architect's Shadow", "A long-form project that demands a finished deliverable."},
	{"Baran, Demon Monarch", "A month of unbroken discipline."},
	{"Frost Queen of Procrastination", "Clear the backlog that has been frozen for too long."},
	{"Kargalgan the Orc Shaman", "Conquer a new skill from zero to demonstrable."},
}

// BossRewards returns the calibrated XP and gold for a boss of rank r.
func BossRewards(r Rank) (xp, gold int) {
	switch r {
	case RankS:
		return 50000, 10000
	case RankA:
		return 25000, 5000
	case RankB:
		return 12000, 2400
	case RankC:
		return 6000, 1200
	case RankD:
		return 3000, 600
	default:
		return 1500, 300
	}
}

func builtinBosses() []Boss {
	out := make([]Boss, 0, len(allRanks))
	for i, r := range allRanks {
		xp, gold := BossRewards(r)
		t := bossTemplates[i%len(bossTemplates)]
		out = append(out, Boss{
			ID:          "gate-" + string(r),
			Name:        t.Title,
			Description: t.Description,
			Rank:        r,
			Status:      BossLocked,
			XPReward:    xp,
			GoldReward:  gold,
		})
	}
	return out
}

func builtinShopItems() []ShopItem {
	return []ShopItem{
		{ID: "elixir-vigor", Name: "Elixir of Vigor", Cost: 300, Kind: ShopItemBuff, Buff: &Buff{Type: BuffStatAll, Name: "Vigor", Value: 20, Duration: 24 * time.Hour}},
		{ID: "focus-draught", Name: "Focus Draught", Cost: 200, Kind: ShopItemBuff, Buff: &Buff{Type: BuffStatSingle, Name: "Focus", Value: 50, TargetStats: []Stat{StatINT}, Duration: 24 * time.Hour}},
		{ID: "midas-sigil", Name: "Midas Sigil", Cost: 400, Kind: ShopItemBuff, Buff: &Buff{Type: BuffGoldMultiplier, Name: "Midas", Value: 50, Duration: 24 * time.Hour}},
		{ID: "shadow-ward", Name: "Shadow Ward", Cost: 800, Kind: ShopItemBuff, Buff: &Buff{Type: BuffPenaltyImmunity, Name: "Shadow Ward", UsesRemaining: 1, Duration: 72 * time.Hour}},
		{ID: "mystery-box", Name: "Mystery Box", Cost: 150, Kind: ShopItemMysteryBox},
	}
}

func builtinSkillNodes() []SkillNode {
	return []SkillNode{
		{ID: "iron-body", Name: "Iron Body", Stat: StatSTR, RequiredStat: 5},
		{ID: "shadow-step", Name: "Shadow Step", Stat: StatAGI, RequiredStat: 5},
		{ID: "analyst", Name: "Analyst", Stat: StatINT, RequiredStat: 5},
		{ID: "regeneration", Name: "Regeneration", Stat: StatVIT, RequiredStat: 5},
		{ID: "keen-senses", Name: "Keen Senses", Stat: StatPER, RequiredStat: 5},
		{ID: "berserker", Name: "Berserker", Stat: StatSTR, RequiredStat: 15},
		{ID: "strategist", Name: "Strategist", Stat: StatINT, RequiredStat: 15},
	}
}
