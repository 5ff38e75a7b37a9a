package engine

import (
	"fmt"
	"time"
)

type EventKind string

const (
	EventQuestCompleted EventKind = "quest_completed"
	EventQuestAbandoned EventKind = "quest_abandoned"
	EventQuestExpired   EventKind = "quest_expired"
	EventLevelUp        EventKind = "level_up"
	EventRankUp         EventKind = "rank_up"
	EventStatUp         EventKind = "stat_up"
	EventPenaltyIssued  EventKind = "penalty_issued"
	EventPenaltyCleared EventKind = "penalty_cleared"
	EventPenaltyExpired EventKind = "penalty_expired"
	EventImmunityUsed   EventKind = "immunity_used"
	EventBuffQueued     EventKind = "buff_queued"
	EventBuffActivated  EventKind = "buff_activated"
	EventBuffExpired    EventKind = "buff_expired"
	EventTaskMissed     EventKind = "task_missed"
	EventBossUnlocked   EventKind = "boss_unlocked"
	EventBossDefeated   EventKind = "boss_defeated"
	EventSkillUnlocked  EventKind = "skill_unlocked"
	EventCheckIn        EventKind = "check_in"
	EventMysteryBox     EventKind = "mystery_box"
	EventRollover       EventKind = "rollover"
	EventSystemRepair   EventKind = "system_repair"
	EventRestored       EventKind = "checkpoint_restored"
	EventWarning        EventKind = "warning"
)

// Event is a notification for presentation layers and the audit log.
type Event struct {
	Kind    EventKind
	Message string
	At      time.Time
}

func (e *Engine) emit(kind EventKind, format string, args ...any) {
	e.events = append(e.events, Event{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		At:      e.clock.Now(),
	})
}

// warn records a warning event and returns it as an error.
func (e *Engine) warn(w Warning) error {
	e.emit(EventWarning, "%s", w.Error())
	e.log.Warn("action rejected", zapWarning(w)...)
	return w
}
