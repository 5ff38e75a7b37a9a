package engine

// Stat is one of the five player attributes.
type Stat string

const (
	StatSTR Stat = "STR"
	StatAGI Stat = "AGI"
	StatINT Stat = "INT"
	StatVIT Stat = "VIT"
	StatPER Stat = "PER"
)

// AllStats is the canonical stat order. Random selection and rendering iterate it.
var AllStats = []Stat{StatSTR, StatAGI, StatINT, StatVIT, StatPER}

func (s Stat) IsValid() bool {
	switch s {
	case StatSTR, StatAGI, StatINT, StatVIT, StatPER:
		return true
	default:
		return false
	}
}

func (s Stat) Name() string {
	switch s {
	case StatSTR:
		return "Strength"
	case StatAGI:
		return "Agility"
	case StatINT:
		return "Intelligence"
	case StatVIT:
		return "Vitality"
	case StatPER:
		return "Perception"
	default:
		return string(s)
	}
}

// Rank is used both for the player tier and for quest/boss difficulty.
type Rank string

const (
	RankE Rank = "E"
	RankD Rank = "D"
	RankC Rank = "C"
	RankB Rank = "B"
	RankA Rank = "A"
	RankS Rank = "S"
)

var allRanks = []Rank{RankE, RankD, RankC, RankB, RankA, RankS}

func (r Rank) IsValid() bool {
	return r.Order() >= 0
}

// Order returns 0 for E through 5 for S, or -1 for an unknown rank.
func (r Rank) Order() int {
	for i, v := range allRanks {
		if v == r {
			return i
		}
	}
	return -1
}

type QuestType string

const (
	QuestDaily          QuestType = "DAILY"
	QuestBoss           QuestType = "BOSS"
	QuestPenalty        QuestType = "PENALTY"
	QuestSkillChallenge QuestType = "SKILL_CHALLENGE"
	QuestOptional       QuestType = "OPTIONAL"
)

func (t QuestType) IsValid() bool {
	switch t {
	case QuestDaily, QuestBoss, QuestPenalty, QuestSkillChallenge, QuestOptional:
		return true
	default:
		return false
	}
}

type BuffType string

const (
	BuffStatAll         BuffType = "STAT_ALL"
	BuffStatSingle      BuffType = "STAT_SINGLE"
	BuffGoldMultiplier  BuffType = "GOLD_MULTIPLIER"
	BuffPenaltyImmunity BuffType = "PENALTY_IMMUNITY"
)

func (t BuffType) IsValid() bool {
	switch t {
	case BuffStatAll, BuffStatSingle, BuffGoldMultiplier, BuffPenaltyImmunity:
		return true
	default:
		return false
	}
}

type TaskStatus string

const (
	TaskScheduled  TaskStatus = "SCHEDULED"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
	TaskMissed     TaskStatus = "MISSED"
)

// IsTerminal reports whether no further transition is allowed.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskCompleted || s == TaskMissed
}

// TaskGroup is the consolidation group a scheduled task belongs to.
type TaskGroup string

const (
	TaskGroupOptional      TaskGroup = "OPTIONAL"
	TaskGroupSkillProtocol TaskGroup = "SKILL_PROTOCOL"
)

func (g TaskGroup) IsValid() bool {
	return g == TaskGroupOptional || g == TaskGroupSkillProtocol
}

// Penalty groups used for consolidation marks.
const (
	PenaltyGroupDaily         = "DAILY"
	PenaltyGroupOptional      = "OPTIONAL"
	PenaltyGroupSkillProtocol = "SKILL_PROTOCOL"
	PenaltyGroupAbandon       = "ABANDON"
)

type BossStatus string

const (
	BossLocked    BossStatus = "LOCKED"
	BossAvailable BossStatus = "AVAILABLE"
	BossActive    BossStatus = "ACTIVE"
	BossDefeated  BossStatus = "DEFEATED"
)

type ShopItemKind string

const (
	ShopItemBuff       ShopItemKind = "BUFF"
	ShopItemMysteryBox ShopItemKind = "MYSTERY_BOX"
)
