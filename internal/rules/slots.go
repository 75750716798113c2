package rules

import (
	"fmt"

	apperrors "github.com/greathall/greathall/internal/platform/errors"
)

// Slot max tables indexed by character level 1..20. Each row holds the max
// slot count for spell levels 1..9.

// Full casters: wizard, cleric, druid, sorcerer, bard.
var fullCasterSlots = map[int][9]int{
	1:  {2},
	2:  {3},
	3:  {4, 2},
	4:  {4, 3},
	5:  {4, 3, 2},
	6:  {4, 3, 3},
	7:  {4, 3, 3, 1},
	8:  {4, 3, 3, 2},
	9:  {4, 3, 3, 3, 1},
	10: {4, 3, 3, 3, 2},
	11: {4, 3, 3, 3, 2, 1},
	12: {4, 3, 3, 3, 2, 1},
	13: {4, 3, 3, 3, 2, 1, 1},
	14: {4, 3, 3, 3, 2, 1, 1},
	15: {4, 3, 3, 3, 2, 1, 1, 1},
	16: {4, 3, 3, 3, 2, 1, 1, 1},
	17: {4, 3, 3, 3, 2, 1, 1, 1, 1},
	18: {4, 3, 3, 3, 3, 1, 1, 1, 1},
	19: {4, 3, 3, 3, 3, 2, 1, 1, 1},
	20: {4, 3, 3, 3, 3, 2, 2, 1, 1},
}

// Half casters: paladin, ranger, artificer. No slots at level 1.
var halfCasterSlots = map[int][9]int{
	1:  {},
	2:  {2},
	3:  {3},
	4:  {3},
	5:  {4, 2},
	6:  {4, 2},
	7:  {4, 3},
	8:  {4, 3},
	9:  {4, 3, 2},
	10: {4, 3, 2},
	11: {4, 3, 3},
	12: {4, 3, 3},
	13: {4, 3, 3, 1},
	14: {4, 3, 3, 1},
	15: {4, 3, 3, 2},
	16: {4, 3, 3, 2},
	17: {4, 3, 3, 3, 1},
	18: {4, 3, 3, 3, 1},
	19: {4, 3, 3, 3, 2},
	20: {4, 3, 3, 3, 2},
}

// Warlocks: pact magic puts every slot at a single spell level.
var warlockSlots = map[int][9]int{
	1:  {1},
	2:  {2},
	3:  {0, 2},
	4:  {0, 2},
	5:  {0, 0, 2},
	6:  {0, 0, 2},
	7:  {0, 0, 0, 2},
	8:  {0, 0, 0, 2},
	9:  {0, 0, 0, 0, 2},
	10: {0, 0, 0, 0, 2},
	11: {0, 0, 0, 0, 3},
	12: {0, 0, 0, 0, 3},
	13: {0, 0, 0, 0, 3},
	14: {0, 0, 0, 0, 3},
	15: {0, 0, 0, 0, 3},
	16: {0, 0, 0, 0, 3},
	17: {0, 0, 0, 0, 4},
	18: {0, 0, 0, 0, 4},
	19: {0, 0, 0, 0, 4},
	20: {0, 0, 0, 0, 4},
}

// SpellSlotsForLevel returns the fully recovered slot table for an
// automatic caster archetype at a character level. Every spell level 1..9
// is present in the result; levels without slots carry zero current and
// max. CasterManual returns the existing slots unchanged so GM-authored
// counts survive recomputation.
func SpellSlotsForLevel(casterType CasterType, level int, existing SpellSlots) (SpellSlots, error) {
	if level < 1 || level > 20 {
		return nil, apperrors.WithMetadata(apperrors.CodeCharacterInvalidLevel,
			fmt.Sprintf("level %d out of range 1..20", level),
			map[string]string{"Level": fmt.Sprintf("%d", level)})
	}

	var row [9]int
	switch casterType {
	case CasterFull:
		row = fullCasterSlots[level]
	case CasterHalf:
		row = halfCasterSlots[level]
	case CasterWarlock:
		row = warlockSlots[level]
	case CasterNone:
		// all zero
	case CasterManual:
		return existing, nil
	default:
		return nil, apperrors.WithMetadata(apperrors.CodeCharacterInvalidCasterType,
			fmt.Sprintf("invalid caster type %q", casterType),
			map[string]string{"CasterType": string(casterType)})
	}

	slots := make(SpellSlots, 9)
	for i := 0; i < 9; i++ {
		slots[i+1] = SlotState{Current: row[i], Max: row[i]}
	}
	return slots, nil
}

// ReconcileSpellSlots recomputes a sheet's slot table after a level or
// caster type change. Automatic archetypes get the full table for the new
// level, CasterNone clears every slot, and CasterManual keeps whatever the
// GM stored.
func ReconcileSpellSlots(casterType CasterType, level int, existing SpellSlots) (SpellSlots, error) {
	return SpellSlotsForLevel(casterType, level, existing)
}

// RestoreSpellSlots sets every slot's current count to its max, returning a
// new table. Used by long rests for all archetypes including pact magic.
func RestoreSpellSlots(slots SpellSlots) SpellSlots {
	restored := make(SpellSlots, len(slots))
	for level, slot := range slots {
		restored[level] = SlotState{Current: slot.Max, Max: slot.Max}
	}
	return restored
}

// SpendSpellSlot decrements the current count for a spell level.
func SpendSpellSlot(slots SpellSlots, level int) (SpellSlots, error) {
	if level < 1 || level > 9 {
		return nil, apperrors.WithMetadata(apperrors.CodeRulesInvalidSpellLevel,
			fmt.Sprintf("spell level %d out of range 1..9", level),
			map[string]string{"Level": fmt.Sprintf("%d", level)})
	}
	slot := slots[level]
	if slot.Current <= 0 {
		return slots, nil
	}
	spent := make(SpellSlots, len(slots))
	for l, s := range slots {
		spent[l] = s
	}
	spent[level] = SlotState{Current: slot.Current - 1, Max: slot.Max}
	return spent, nil
}
