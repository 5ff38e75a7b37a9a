package engine

import "fmt"

// GateError indicates a gate is locked behind a required level.
// This is returned by gate checks and should be shown to the user.
type GateError struct {
	Feature       string
	RequiredLevel int
}

func (e GateError) Error() string {
	if e.RequiredLevel <= 0 {
		return fmt.Sprintf("'%s' is locked", e.Feature)
	}
	return fmt.Sprintf("'%s' unlocks at level %d", e.Feature, e.RequiredLevel)
}

type WarningCode string

const (
	WarnQuestNotFound        WarningCode = "quest_not_found"
	WarnQuestCompleted       WarningCode = "quest_already_completed"
	WarnPenaltyNotAbandoned  WarningCode = "penalty_not_abandonable"
	WarnGateBusy             WarningCode = "gate_already_active"
	WarnBossNotFound         WarningCode = "boss_not_found"
	WarnBossUnavailable      WarningCode = "boss_unavailable"
	WarnAlreadyCheckedIn     WarningCode = "already_checked_in"
	WarnInsufficientGold     WarningCode = "insufficient_gold"
	WarnItemNotFound         WarningCode = "item_not_found"
	WarnTaskNotFound         WarningCode = "task_not_found"
	WarnTaskClosed           WarningCode = "task_closed"
	WarnNoCheckpoint         WarningCode = "no_checkpoint"
	WarnInvalidInput         WarningCode = "invalid_input"
)

// Warning is returned when an action would break an invariant. The state is
// left untouched and the same warning is emitted as an event.
type Warning struct {
	Code    WarningCode
	Message string
}

func (w Warning) Error() string {
	if w.Message == "" {
		return string(w.Code)
	}
	return w.Message
}

// Is matches warnings by code so sentinels work with errors.Is.
func (w Warning) Is(target error) bool {
	t, ok := target.(Warning)
	return ok && t.Code == w.Code
}

var (
	ErrQuestNotFound       = Warning{Code: WarnQuestNotFound}
	ErrQuestCompleted      = Warning{Code: WarnQuestCompleted}
	ErrPenaltyNotAbandoned = Warning{Code: WarnPenaltyNotAbandoned}
	ErrGateBusy            = Warning{Code: WarnGateBusy}
	ErrBossNotFound        = Warning{Code: WarnBossNotFound}
	ErrBossUnavailable     = Warning{Code: WarnBossUnavailable}
	ErrAlreadyCheckedIn    = Warning{Code: WarnAlreadyCheckedIn}
	ErrInsufficientGold    = Warning{Code: WarnInsufficientGold}
	ErrItemNotFound        = Warning{Code: WarnItemNotFound}
	ErrTaskNotFound        = Warning{Code: WarnTaskNotFound}
	ErrTaskClosed          = Warning{Code: WarnTaskClosed}
	ErrNoCheckpoint        = Warning{Code: WarnNoCheckpoint}
	ErrInvalidInput        = Warning{Code: WarnInvalidInput}
)

func warnf(code WarningCode, format string, args ...any) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}
