// Package rules implements the derived-stat calculations for the D&D-like
// sheet system: ability and skill modifiers, proficiency bonus, spell slot
// tables, hit dice recovery, and hit point arithmetic. Every function is
// pure; callers own persistence and policy.
package rules

import (
	"fmt"

	apperrors "github.com/greathall/greathall/internal/platform/errors"
)

// Ability is one of the six ability score identifiers.
type Ability string

const (
	Strength     Ability = "str"
	Dexterity    Ability = "dex"
	Constitution Ability = "con"
	Intelligence Ability = "int"
	Wisdom       Ability = "wis"
	Charisma     Ability = "cha"
)

// AbilityOrder lists abilities in conventional sheet order.
var AbilityOrder = []Ability{Strength, Dexterity, Constitution, Intelligence, Wisdom, Charisma}

// ParseAbility validates an ability identifier.
func ParseAbility(s string) (Ability, error) {
	switch Ability(s) {
	case Strength, Dexterity, Constitution, Intelligence, Wisdom, Charisma:
		return Ability(s), nil
	}
	return "", apperrors.WithMetadata(apperrors.CodeRulesUnknownAbility,
		fmt.Sprintf("unknown ability %q", s),
		map[string]string{"Ability": s})
}

// AbilityScores holds the six raw ability scores.
type AbilityScores struct {
	Str int `json:"str"`
	Dex int `json:"dex"`
	Con int `json:"con"`
	Int int `json:"int"`
	Wis int `json:"wis"`
	Cha int `json:"cha"`
}

// Score returns the raw score for an ability. Unknown abilities score zero;
// use ParseAbility at input boundaries.
func (a AbilityScores) Score(ability Ability) int {
	switch ability {
	case Strength:
		return a.Str
	case Dexterity:
		return a.Dex
	case Constitution:
		return a.Con
	case Intelligence:
		return a.Int
	case Wisdom:
		return a.Wis
	case Charisma:
		return a.Cha
	}
	return 0
}

// Skill is one of the eighteen skill identifiers.
type Skill string

const (
	Acrobatics     Skill = "Acrobatics"
	AnimalHandling Skill = "Animal Handling"
	Arcana         Skill = "Arcana"
	Athletics      Skill = "Athletics"
	Deception      Skill = "Deception"
	History        Skill = "History"
	Insight        Skill = "Insight"
	Intimidation   Skill = "Intimidation"
	Investigation  Skill = "Investigation"
	Medicine       Skill = "Medicine"
	Nature         Skill = "Nature"
	Perception     Skill = "Perception"
	Performance    Skill = "Performance"
	Persuasion     Skill = "Persuasion"
	Religion       Skill = "Religion"
	SleightOfHand  Skill = "Sleight of Hand"
	Stealth        Skill = "Stealth"
	Survival       Skill = "Survival"
)

// skillAbilities maps each skill to its governing ability (SRD 5.2).
var skillAbilities = map[Skill]Ability{
	Acrobatics:     Dexterity,
	AnimalHandling: Wisdom,
	Arcana:         Intelligence,
	Athletics:      Strength,
	Deception:      Charisma,
	History:        Intelligence,
	Insight:        Wisdom,
	Intimidation:   Charisma,
	Investigation:  Intelligence,
	Medicine:       Wisdom,
	Nature:         Intelligence,
	Perception:     Wisdom,
	Performance:    Charisma,
	Persuasion:     Charisma,
	Religion:       Intelligence,
	SleightOfHand:  Dexterity,
	Stealth:        Dexterity,
	Survival:       Wisdom,
}

// Skills lists every skill in alphabetical order.
func Skills() []Skill {
	return []Skill{
		Acrobatics, AnimalHandling, Arcana, Athletics, Deception, History,
		Insight, Intimidation, Investigation, Medicine, Nature, Perception,
		Performance, Persuasion, Religion, SleightOfHand, Stealth, Survival,
	}
}

// AbilityForSkill returns the ability governing a skill.
func AbilityForSkill(skill Skill) (Ability, error) {
	ability, ok := skillAbilities[skill]
	if !ok {
		return "", apperrors.WithMetadata(apperrors.CodeRulesUnknownSkill,
			fmt.Sprintf("unknown skill %q", skill),
			map[string]string{"Skill": string(skill)})
	}
	return ability, nil
}

// ProficiencyRank grades training in a skill.
type ProficiencyRank int

const (
	RankNone       ProficiencyRank = 0
	RankProficient ProficiencyRank = 1
	RankExpertise  ProficiencyRank = 2
)

// CasterType classifies a class's spellcasting progression.
type CasterType string

const (
	CasterNone    CasterType = "none"
	CasterFull    CasterType = "full"
	CasterHalf    CasterType = "half"
	CasterWarlock CasterType = "warlock"
	CasterManual  CasterType = "manual"
)

// ParseCasterType validates a caster type identifier.
func ParseCasterType(s string) (CasterType, error) {
	switch CasterType(s) {
	case CasterNone, CasterFull, CasterHalf, CasterWarlock, CasterManual:
		return CasterType(s), nil
	}
	return "", apperrors.WithMetadata(apperrors.CodeCharacterInvalidCasterType,
		fmt.Sprintf("invalid caster type %q", s),
		map[string]string{"CasterType": s})
}

// HitPoints is the persisted hit point triple. Bonus max HP lives outside
// this struct so effective max stays a derived value.
type HitPoints struct {
	Current int `json:"current"`
	Max     int `json:"max"`
	Temp    int `json:"temp"`
}

// DeathSaves tracks death saving throw counters. The engine never enforces
// stabilization or death; callers decide what three of either means.
type DeathSaves struct {
	Successes int `json:"successes"`
	Failures  int `json:"failures"`
}

// SlotState is the current/max pair for one spell level.
type SlotState struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// SpellSlots maps spell level 1..9 to slot state.
type SpellSlots map[int]SlotState

// HitDiceBucket aggregates same-die hit dice across class entries.
type HitDiceBucket struct {
	Die   string `json:"die"`
	Total int    `json:"total"`
	Used  int    `json:"used"`
}

// Remaining returns the unspent dice in the bucket, never negative.
func (b HitDiceBucket) Remaining() int {
	if r := b.Total - b.Used; r > 0 {
		return r
	}
	return 0
}

// ValidHitDice enumerates the accepted hit die identifiers.
var ValidHitDice = []string{"d6", "d8", "d10", "d12"}

// ParseHitDie validates a hit die identifier.
func ParseHitDie(s string) (string, error) {
	for _, die := range ValidHitDice {
		if s == die {
			return s, nil
		}
	}
	return "", apperrors.WithMetadata(apperrors.CodeRulesInvalidHitDie,
		fmt.Sprintf("invalid hit die %q", s),
		map[string]string{"Die": s})
}
