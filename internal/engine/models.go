package engine

import (
	"slices"
	"time"
)

type Player struct {
	Level          int          `json:"level"`
	XP             int          `json:"xp"`
	XPToNextLevel  int          `json:"xpToNextLevel"`
	Rank           Rank         `json:"rank"`
	Gold           int          `json:"gold"`
	Stats          map[Stat]int `json:"stats"`
	StatProgress   map[Stat]int `json:"statProgress"`
	Streak         int          `json:"streak"`
	EgoDeathStreak int          `json:"egoDeathStreak"`
	// LastEgoDeathDate is the date key of the last ego death increment.
	LastEgoDeathDate string    `json:"lastEgoDeathDate,omitempty"`
	LastLoginAt      time.Time `json:"lastLoginDate"`
	LastCheckInAt    time.Time `json:"lastCheckInDate"`
	ActiveBuffs      []Buff    `json:"activeBuffs"`
}

// NewPlayer returns a level 1 player with every stat at zero.
func NewPlayer() Player {
	p := Player{
		Level:         1,
		XPToNextLevel: XPForLevel(1),
		Rank:          RankE,
		Stats:         map[Stat]int{},
		StatProgress:  map[Stat]int{},
	}
	for _, s := range AllStats {
		p.Stats[s] = 0
		p.StatProgress[s] = 0
	}
	return p
}

type Quest struct {
	ID          string     `json:"id"`
	Type        QuestType  `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Difficulty  Rank       `json:"difficulty"`
	XPReward    int        `json:"xpReward"`
	GoldReward  int        `json:"goldReward"`
	Domain      string     `json:"domain,omitempty"`
	TargetStats []Stat     `json:"targetStats,omitempty"`
	IsCompleted bool       `json:"isCompleted"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	// ScopeDate is the date key a DAILY or PENALTY quest belongs to.
	ScopeDate     string `json:"scopeDate,omitempty"`
	TemplateID    string `json:"templateId,omitempty"`
	PenaltyExempt bool   `json:"penaltyExempt,omitempty"`

	PenaltyGroup string `json:"penaltyGroup,omitempty"`
	SourceDate   string `json:"sourceDate,omitempty"`
	SourceTitle  string `json:"sourceTitle,omitempty"`

	BossID string `json:"bossId,omitempty"`
}

type Buff struct {
	ID            string        `json:"id"`
	Type          BuffType      `json:"type"`
	Name          string        `json:"name,omitempty"`
	Value         int           `json:"value"`
	TargetStats   []Stat        `json:"targetStats,omitempty"`
	ExpiresAt     time.Time     `json:"expiresAt"`
	Duration      time.Duration `json:"duration"`
	UsesRemaining int           `json:"usesRemaining,omitempty"`
	Paused        bool          `json:"paused"`
	ActivatesAt   *time.Time    `json:"activatesAt,omitempty"`
	Source        string        `json:"source,omitempty"`
}

type ScheduledTask struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Date          string     `json:"date"`
	Group         TaskGroup  `json:"group"`
	Status        TaskStatus `json:"status"`
	LinkedQuestID string     `json:"linkedQuestId,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	ClosedAt      *time.Time `json:"closedAt,omitempty"`
}

type Boss struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Rank        Rank       `json:"rank"`
	Status      BossStatus `json:"status"`
	XPReward    int        `json:"xpReward"`
	GoldReward  int        `json:"goldReward"`
	QuestID     string     `json:"questId,omitempty"`
}

type ShopItem struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Cost int          `json:"cost"`
	Kind ShopItemKind `json:"kind"`
	// Buff is the template granted by BUFF items; ID and timing are filled on purchase.
	Buff *Buff `json:"buff,omitempty"`
}

type SkillNode struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Stat         Stat   `json:"stat"`
	RequiredStat int    `json:"requiredStat"`
	Unlocked     bool   `json:"unlocked"`
}

// ConsolidationMark records that a consolidated penalty was issued for a group
// and missed date.
type ConsolidationMark struct {
	Group string `json:"group"`
	Date  string `json:"date"`
}

// Checkpoint is a same-day rollback point.
type Checkpoint struct {
	Date  string `json:"date"`
	State *State `json:"state"`
}

// State is the full progression snapshot loaded from and saved to persistence.
type State struct {
	Player         Player              `json:"player"`
	Quests         []Quest             `json:"quests"`
	Tasks          []ScheduledTask     `json:"tasks"`
	Bosses         []Boss              `json:"bosses"`
	ShopItems      []ShopItem          `json:"shopItems"`
	SkillNodes     []SkillNode         `json:"skillNodes"`
	Consolidations []ConsolidationMark `json:"consolidations,omitempty"`
	Checkpoint     *Checkpoint         `json:"checkpoint,omitempty"`
}

func (b Buff) clone() Buff {
	b.TargetStats = slices.Clone(b.TargetStats)
	if b.ActivatesAt != nil {
		t := *b.ActivatesAt
		b.ActivatesAt = &t
	}
	return b
}

func (q Quest) clone() Quest {
	q.TargetStats = slices.Clone(q.TargetStats)
	if q.CompletedAt != nil {
		t := *q.CompletedAt
		q.CompletedAt = &t
	}
	return q
}

func (p Player) clone() Player {
	stats := make(map[Stat]int, len(p.Stats))
	for k, v := range p.Stats {
		stats[k] = v
	}
	progress := make(map[Stat]int, len(p.StatProgress))
	for k, v := range p.StatProgress {
		progress[k] = v
	}
	p.Stats = stats
	p.StatProgress = progress
	buffs := make([]Buff, len(p.ActiveBuffs))
	for i := range p.ActiveBuffs {
		buffs[i] = p.ActiveBuffs[i].clone()
	}
	p.ActiveBuffs = buffs
	return p
}

// Clone deep-copies the state. The checkpoint is carried over by reference since
// it is never mutated in place.
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	out := &State{
		Player:         s.Player.clone(),
		Quests:         make([]Quest, len(s.Quests)),
		Tasks:          make([]ScheduledTask, len(s.Tasks)),
		Bosses:         slices.Clone(s.Bosses),
		SkillNodes:     slices.Clone(s.SkillNodes),
		Consolidations: slices.Clone(s.Consolidations),
		ShopItems:      make([]ShopItem, len(s.ShopItems)),
		Checkpoint:     s.Checkpoint,
	}
	for i := range s.Quests {
		out.Quests[i] = s.Quests[i].clone()
	}
	for i, t := range s.Tasks {
		if t.ClosedAt != nil {
			c := *t.ClosedAt
			t.ClosedAt = &c
		}
		out.Tasks[i] = t
	}
	for i, item := range s.ShopItems {
		if item.Buff != nil {
			b := item.Buff.clone()
			item.Buff = &b
		}
		out.ShopItems[i] = item
	}
	return out
}
