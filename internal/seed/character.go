package seed

import (
	"fmt"

	"github.com/greathall/greathall/internal/rules"
	"github.com/greathall/greathall/internal/sheet"
)

// classTemplate describes one seedable class.
type classTemplate struct {
	name       string
	hitDie     string
	casterType rules.CasterType
	casting    rules.Ability
}

var classTemplates = []classTemplate{
	{name: "Fighter", hitDie: "d10", casterType: rules.CasterNone},
	{name: "Barbarian", hitDie: "d12", casterType: rules.CasterNone},
	{name: "Rogue", hitDie: "d8", casterType: rules.CasterNone},
	{name: "Wizard", hitDie: "d6", casterType: rules.CasterFull, casting: rules.Intelligence},
	{name: "Cleric", hitDie: "d8", casterType: rules.CasterFull, casting: rules.Wisdom},
	{name: "Bard", hitDie: "d8", casterType: rules.CasterFull, casting: rules.Charisma},
	{name: "Paladin", hitDie: "d10", casterType: rules.CasterHalf, casting: rules.Charisma},
	{name: "Ranger", hitDie: "d10", casterType: rules.CasterHalf, casting: rules.Wisdom},
	{name: "Warlock", hitDie: "d8", casterType: rules.CasterWarlock, casting: rules.Charisma},
}

var hitDieSides = map[string]int{"d6": 6, "d8": 8, "d10": 10, "d12": 12}

// rollAbility rolls 4d6 and drops the lowest die.
func (g *Generator) rollAbility() int {
	lowest, total := 7, 0
	for i := 0; i < 4; i++ {
		die := g.rng.Intn(6) + 1
		total += die
		if die < lowest {
			lowest = die
		}
	}
	return total - lowest
}

func (g *Generator) rollAbilities() rules.AbilityScores {
	return rules.AbilityScores{
		Str: g.rollAbility(),
		Dex: g.rollAbility(),
		Con: g.rollAbility(),
		Int: g.rollAbility(),
		Wis: g.rollAbility(),
		Cha: g.rollAbility(),
	}
}

// characterUpdate builds the post-creation update that fleshes a default
// character out into a leveled one.
func (g *Generator) characterUpdate(level int) (sheet.Update, error) {
	class := classTemplates[g.rng.Intn(len(classTemplates))]
	abilities := g.rollAbilities()

	conMod := rules.AbilityModifier(abilities.Con)
	sides := hitDieSides[class.hitDie]
	maxHP := sides + conMod
	for i := 1; i < level; i++ {
		maxHP += g.rng.Intn(sides) + 1 + conMod
	}
	if maxHP < 1 {
		maxHP = 1
	}
	hp := rules.HitPoints{Current: maxHP, Max: maxHP}

	slots, err := rules.SpellSlotsForLevel(class.casterType, level, nil)
	if err != nil {
		return sheet.Update{}, fmt.Errorf("derive spell slots: %w", err)
	}

	classes := []sheet.ClassEntry{{
		Name:                class.name,
		Level:               level,
		HitDie:              class.hitDie,
		CasterType:          class.casterType,
		SpellcastingAbility: class.casting,
	}}

	ac := 10 + rules.AbilityModifier(abilities.Dex)
	xp := 0
	if threshold, ok := rules.XPForNextLevel(level - 1); ok && level > 1 {
		xp = threshold
	}

	return sheet.Update{
		Abilities:  &abilities,
		HP:         &hp,
		AC:         &ac,
		Classes:    &classes,
		SpellSlots: &slots,
		XP:         &xp,
	}, nil
}

func (g *Generator) characterName() string {
	return firstNames[g.rng.Intn(len(firstNames))] + " " + surnames[g.rng.Intn(len(surnames))]
}

func (g *Generator) gameName() string {
	return "The " + gameAdjectives[g.rng.Intn(len(gameAdjectives))] + " " + gameNouns[g.rng.Intn(len(gameNouns))]
}
