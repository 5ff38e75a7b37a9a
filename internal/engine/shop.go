package engine

import (
	"context"
	"time"
)

type MysteryOutcome string

const (
	MysteryGold     MysteryOutcome = "gold"
	MysteryXP       MysteryOutcome = "xp"
	MysteryStatBuff MysteryOutcome = "stat_buff"
	MysteryGoldBuff MysteryOutcome = "gold_buff"
	MysteryImmunity MysteryOutcome = "immunity"
)

type MysteryResult struct {
	Outcome MysteryOutcome
	Gold    int
	XP      XPResult
	Buff    *Buff
}

type PurchaseResult struct {
	Item    ShopItem
	Spent   int
	Buff    *Buff
	Mystery *MysteryResult
}

// Purchase spends gold on a shop item and applies it.
func (e *Engine) Purchase(ctx context.Context, itemID string) (*PurchaseResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var item *ShopItem
	for i := range e.state.ShopItems {
		if e.state.ShopItems[i].ID == itemID {
			item = &e.state.ShopItems[i]
			break
		}
	}
	if item == nil {
		return nil, e.warn(warnf(WarnItemNotFound, "shop item %s not found", itemID))
	}
	p := &e.state.Player
	if p.Gold < item.Cost {
		return nil, e.warn(warnf(WarnInsufficientGold, "%s costs %d gold (have %d)", item.Name, item.Cost, p.Gold))
	}

	res := &PurchaseResult{Item: *item, Spent: item.Cost}
	switch item.Kind {
	case ShopItemBuff:
		if item.Buff == nil {
			return nil, e.warn(warnf(WarnInvalidInput, "shop item %s has no buff", item.ID))
		}
		tmpl := item.Buff.clone()
		tmpl.ID = ""
		tmpl.Source = item.ID
		b, err := e.addBuff(tmpl)
		if err != nil {
			return nil, e.warn(warnf(WarnInvalidInput, "%v", err))
		}
		res.Buff = &b
	case ShopItemMysteryBox:
		m := e.rollMysteryBox()
		res.Mystery = &m
	default:
		return nil, e.warn(warnf(WarnInvalidInput, "unknown shop item kind %q", item.Kind))
	}
	AddGold(p, -item.Cost)

	e.save(ctx)
	return res, nil
}

// ApplyMysteryBoxRoll rolls the mystery box table once and applies the outcome.
func (e *Engine) ApplyMysteryBoxRoll(ctx context.Context) (MysteryResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	res := e.rollMysteryBox()
	e.save(ctx)
	return res, nil
}

func (e *Engine) rollMysteryBox() MysteryResult {
	roll := e.rng.Intn(100)
	var res MysteryResult
	switch {
	case roll < 35:
		res.Outcome = MysteryGold
		res.Gold = AddGold(&e.state.Player, 50+e.rng.Intn(151))
		e.emit(EventMysteryBox, "mystery box: +%d gold", res.Gold)
	case roll < 65:
		res.Outcome = MysteryXP
		res.XP = e.applyXP(100 + e.rng.Intn(201))
		e.emit(EventMysteryBox, "mystery box: +%d XP", res.XP.XPApplied)
	case roll < 80:
		res.Outcome = MysteryStatBuff
		res.Buff = e.mysteryBuff(Buff{Type: BuffStatAll, Name: "Mystic Surge", Value: 10, Duration: 24 * time.Hour})
	case roll < 90:
		res.Outcome = MysteryGoldBuff
		res.Buff = e.mysteryBuff(Buff{Type: BuffGoldMultiplier, Name: "Lucky Coin", Value: 25, Duration: 24 * time.Hour})
	default:
		res.Outcome = MysteryImmunity
		res.Buff = e.mysteryBuff(Buff{Type: BuffPenaltyImmunity, Name: "Guardian Seal", UsesRemaining: 1, Duration: 72 * time.Hour})
	}
	return res
}

func (e *Engine) mysteryBuff(b Buff) *Buff {
	b.Source = "mystery-box"
	added, err := e.addBuff(b)
	if err != nil {
		// Built-in templates always carry a duration.
		e.log.Error("mystery box buff rejected")
		return nil
	}
	e.emit(EventMysteryBox, "mystery box: %s", buffLabel(added))
	return &added
}
