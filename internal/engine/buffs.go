package engine

import (
	"context"
	"fmt"
	"time"
)

type buffCategory string

const (
	categoryStat     buffCategory = "stat"
	categoryGold     buffCategory = "gold"
	categoryImmunity buffCategory = "immunity"
)

// category returns the buff's category and whether only one buff of it may be
// active at a time.
func (t BuffType) category() (buffCategory, bool) {
	switch t {
	case BuffStatAll, BuffStatSingle:
		return categoryStat, true
	case BuffGoldMultiplier:
		return categoryGold, true
	case BuffPenaltyImmunity:
		return categoryImmunity, false
	default:
		return "", false
	}
}

// IsActive reports whether the buff currently modifies anything.
func (b Buff) IsActive(now time.Time) bool {
	if b.Paused || !now.Before(b.ExpiresAt) {
		return false
	}
	if b.Type == BuffPenaltyImmunity && b.UsesRemaining <= 0 {
		return false
	}
	return true
}

func (b Buff) appliesTo(s Stat) bool {
	switch b.Type {
	case BuffStatAll:
		return true
	case BuffStatSingle:
		for _, t := range b.TargetStats {
			if t == s {
				return true
			}
		}
		return false
	case BuffGoldMultiplier, BuffPenaltyImmunity:
		return false
	default:
		return false
	}
}

// StatPercent is the aggregate stat progress multiplier for s, in percent.
func StatPercent(buffs []Buff, s Stat, now time.Time) int {
	pct := 100
	for _, b := range buffs {
		if b.IsActive(now) && b.appliesTo(s) {
			pct += b.Value
		}
	}
	return pct
}

// GoldPercent is the aggregate gold multiplier, in percent.
func GoldPercent(buffs []Buff, now time.Time) int {
	pct := 100
	for _, b := range buffs {
		if b.Type == BuffGoldMultiplier && b.IsActive(now) {
			pct += b.Value
		}
	}
	return pct
}

// QueueBuff admits b into the ledger. When a buff of the same exclusive
// category is already running, b is paused and scheduled to start where the
// queue ends.
func QueueBuff(buffs []Buff, b Buff, now time.Time) ([]Buff, Buff, error) {
	if !b.Type.IsValid() {
		return buffs, b, fmt.Errorf("invalid buff type: %q", b.Type)
	}
	if b.Duration <= 0 {
		if !b.ExpiresAt.After(now) {
			return buffs, b, fmt.Errorf("buff %s has no duration", b.ID)
		}
		b.Duration = b.ExpiresAt.Sub(now)
	}
	if b.Type == BuffPenaltyImmunity && b.UsesRemaining <= 0 {
		b.UsesRemaining = 1
	}

	cat, exclusive := b.Type.category()
	var tail time.Time
	if exclusive {
		for _, other := range buffs {
			oc, _ := other.Type.category()
			if oc != cat || !other.ExpiresAt.After(now) {
				continue
			}
			if other.ExpiresAt.After(tail) {
				tail = other.ExpiresAt
			}
		}
	}

	if tail.IsZero() {
		b.Paused = false
		b.ActivatesAt = nil
		b.ExpiresAt = now.Add(b.Duration)
	} else {
		start := tail
		b.Paused = true
		b.ActivatesAt = &start
		b.ExpiresAt = start.Add(b.Duration)
	}
	return append(buffs, b), b, nil
}

// BuffSweep lists what a cleanup pass changed.
type BuffSweep struct {
	Activated []Buff
	Pruned    []Buff
}

// CleanupBuffs drops expired or used-up buffs and starts queued ones whose
// start time has passed.
func CleanupBuffs(buffs []Buff, now time.Time) ([]Buff, BuffSweep) {
	var sweep BuffSweep
	out := buffs[:0:0]
	for _, b := range buffs {
		if !now.Before(b.ExpiresAt) || (b.Type == BuffPenaltyImmunity && b.UsesRemaining <= 0) {
			sweep.Pruned = append(sweep.Pruned, b)
			continue
		}
		if b.Paused && b.ActivatesAt != nil && !now.Before(*b.ActivatesAt) {
			b.Paused = false
			b.ActivatesAt = nil
			sweep.Activated = append(sweep.Activated, b)
		}
		out = append(out, b)
	}
	return out, sweep
}

// ConsumeImmunity spends one use of the first active penalty immunity buff.
// The buff stays in the ledger until the next cleanup even at zero uses.
func ConsumeImmunity(buffs []Buff, now time.Time) (*Buff, bool) {
	for i := range buffs {
		if buffs[i].Type == BuffPenaltyImmunity && buffs[i].IsActive(now) {
			buffs[i].UsesRemaining--
			return &buffs[i], true
		}
	}
	return nil, false
}

// AddBuff puts a buff into the player's ledger, queueing it behind a running
// buff of the same category.
func (e *Engine) AddBuff(ctx context.Context, b Buff) (Buff, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	out, err := e.addBuff(b)
	if err != nil {
		return Buff{}, e.warn(warnf(WarnInvalidInput, "%v", err))
	}
	e.save(ctx)
	return out, nil
}

func (e *Engine) addBuff(b Buff) (Buff, error) {
	now := e.now()
	e.cleanupBuffs(now)
	if b.ID == "" {
		b.ID = e.newID()
	}
	buffs, added, err := QueueBuff(e.state.Player.ActiveBuffs, b, now)
	if err != nil {
		return Buff{}, err
	}
	e.state.Player.ActiveBuffs = buffs
	if added.Paused {
		e.emit(EventBuffQueued, "%s queued, starts %s", buffLabel(added), added.ActivatesAt.In(e.loc).Format("Jan 2 15:04"))
	} else {
		e.emit(EventBuffActivated, "%s active until %s", buffLabel(added), added.ExpiresAt.In(e.loc).Format("Jan 2 15:04"))
	}
	return added.clone(), nil
}

func (e *Engine) cleanupBuffs(now time.Time) {
	buffs, sweep := CleanupBuffs(e.state.Player.ActiveBuffs, now)
	e.state.Player.ActiveBuffs = buffs
	for _, b := range sweep.Pruned {
		e.emit(EventBuffExpired, "%s expired", buffLabel(b))
	}
	for _, b := range sweep.Activated {
		e.emit(EventBuffActivated, "%s active until %s", buffLabel(b), b.ExpiresAt.In(e.loc).Format("Jan 2 15:04"))
	}
}

func buffLabel(b Buff) string {
	if b.Name != "" {
		return b.Name
	}
	return string(b.Type)
}
