package rules

// EffectiveMaxHP is the sheet's max hit points plus any bonus maximum.
func EffectiveMaxHP(max, bonus int) int {
	return max + bonus
}

// ApplyDamage subtracts damage from temporary hit points first, then from
// current, flooring current at zero. Zero or negative amounts are no-ops.
func ApplyDamage(hp HitPoints, amount int) HitPoints {
	if amount <= 0 {
		return hp
	}
	remaining := amount
	if hp.Temp > 0 {
		if hp.Temp >= remaining {
			hp.Temp -= remaining
			remaining = 0
		} else {
			remaining -= hp.Temp
			hp.Temp = 0
		}
	}
	if remaining > 0 {
		hp.Current -= remaining
		if hp.Current < 0 {
			hp.Current = 0
		}
	}
	return hp
}

// ApplyHeal raises current hit points up to the effective max and resets
// death save counters. Zero or negative amounts are no-ops.
func ApplyHeal(hp HitPoints, bonus, amount int, saves DeathSaves) (HitPoints, DeathSaves) {
	if amount <= 0 {
		return hp, saves
	}
	max := EffectiveMaxHP(hp.Max, bonus)
	hp.Current += amount
	if hp.Current > max {
		hp.Current = max
	}
	return hp, DeathSaves{}
}

// ToggleDeathSave applies the click-to-undo rule for a death save box:
// clicking box index i (0-based) sets the counter to i when it already
// equals i+1, otherwise to i+1. The result stays in 0..3.
func ToggleDeathSave(count, index int) int {
	if index < 0 {
		return count
	}
	if index > 2 {
		index = 2
	}
	if count == index+1 {
		return index
	}
	return index + 1
}

// ClampAbilityScore clamps a raw score to the storable range 1..30.
func ClampAbilityScore(score int) int {
	if score < 1 {
		return 1
	}
	if score > 30 {
		return 30
	}
	return score
}

// ClampCurrentHP clamps current hit points to 0..effective max.
func ClampCurrentHP(current, max, bonus int) int {
	if current < 0 {
		return 0
	}
	if m := EffectiveMaxHP(max, bonus); current > m {
		return m
	}
	return current
}

// ClampSlots caps every slot's current count at its max and floors at zero.
func ClampSlots(slots SpellSlots) SpellSlots {
	clamped := make(SpellSlots, len(slots))
	for level, slot := range slots {
		if slot.Current > slot.Max {
			slot.Current = slot.Max
		}
		if slot.Current < 0 {
			slot.Current = 0
		}
		clamped[level] = slot
	}
	return clamped
}
