package sheet

import (
	"fmt"

	apperrors "github.com/greathall/greathall/internal/platform/errors"
	"github.com/greathall/greathall/internal/rules"
)

// HitDiceBuckets groups class entries by hit die in first-seen order. A
// multiclass sheet with two d8 classes shows one d8 bucket whose total is
// the sum of both levels.
func (s PrivateSheet) HitDiceBuckets() []rules.HitDiceBucket {
	var order []string
	byDie := make(map[string]rules.HitDiceBucket)
	for _, entry := range s.Classes {
		bucket, ok := byDie[entry.HitDie]
		if !ok {
			order = append(order, entry.HitDie)
			bucket = rules.HitDiceBucket{Die: entry.HitDie}
		}
		bucket.Total += entry.Level
		bucket.Used += entry.HitDiceUsed
		byDie[entry.HitDie] = bucket
	}

	buckets := make([]rules.HitDiceBucket, 0, len(order))
	for _, die := range order {
		buckets = append(buckets, byDie[die])
	}
	return buckets
}

// SpendHitDice spends count dice from the die's bucket and redistributes
// the new used total across same-die class entries in declaration order,
// filling each entry up to its level before moving on.
func (s PrivateSheet) SpendHitDice(die string, count int) (PrivateSheet, error) {
	if _, err := rules.ParseHitDie(die); err != nil {
		return s, err
	}

	var bucket rules.HitDiceBucket
	found := false
	for _, b := range s.HitDiceBuckets() {
		if b.Die == die {
			bucket = b
			found = true
			break
		}
	}
	if !found {
		return s, apperrors.WithMetadata(apperrors.CodeRulesHitDiceExhausted,
			fmt.Sprintf("no %s hit dice on this sheet", die),
			map[string]string{"Die": die, "Count": fmt.Sprintf("%d", count), "Remaining": "0"})
	}

	spent, err := rules.SpendHitDice(bucket, count)
	if err != nil {
		return s, err
	}
	return s.redistributeHitDice(die, spent.Used), nil
}

// ApplyLongRest applies long rest recovery to the whole sheet: hit points
// to effective max, temp cleared, per-die bucket recovery, spell slots
// restored, exhaustion reduced, death saves reset.
func (s PrivateSheet) ApplyLongRest() PrivateSheet {
	state := rules.LongRest(rules.RestState{
		HP:         s.HP,
		HPBonus:    s.HPBonus,
		HitDice:    s.HitDiceBuckets(),
		Slots:      s.SpellSlots,
		Exhaustion: s.Exhaustion,
		DeathSaves: s.DeathSaves,
	})

	s.HP = state.HP
	s.SpellSlots = state.Slots
	s.Exhaustion = state.Exhaustion
	s.DeathSaves = state.DeathSaves
	for _, bucket := range state.HitDice {
		s = s.redistributeHitDice(bucket.Die, bucket.Used)
	}
	return s
}

// ApplyDamage applies damage to the sheet's hit points, temp first.
func (s PrivateSheet) ApplyDamage(amount int) PrivateSheet {
	s.HP = rules.ApplyDamage(s.HP, amount)
	return s
}

// ApplyHeal heals the sheet up to effective max and resets death saves.
func (s PrivateSheet) ApplyHeal(amount int) PrivateSheet {
	s.HP, s.DeathSaves = rules.ApplyHeal(s.HP, s.HPBonus, amount, s.DeathSaves)
	return s
}

// redistributeHitDice spreads a bucket's used count across same-die class
// entries in declaration order, capping each entry at its level.
func (s PrivateSheet) redistributeHitDice(die string, used int) PrivateSheet {
	classes := make([]ClassEntry, len(s.Classes))
	copy(classes, s.Classes)

	remaining := used
	for i := range classes {
		if classes[i].HitDie != die {
			continue
		}
		take := classes[i].Level
		if take > remaining {
			take = remaining
		}
		classes[i].HitDiceUsed = take
		remaining -= take
	}

	s.Classes = classes
	return s
}
