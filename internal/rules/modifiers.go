package rules

import "fmt"

// AbilityModifier computes floor((score-10)/2). Defined for any integer;
// callers clamp stored scores with ClampAbilityScore.
func AbilityModifier(score int) int {
	return floorDiv(score-10, 2)
}

// ProficiencyBonus computes floor((level-1)/4)+2 for levels 1..20.
func ProficiencyBonus(level int) int {
	return (level-1)/4 + 2
}

// SkillModifier computes ability modifier plus rank-scaled proficiency
// bonus for the skill's governing ability.
func SkillModifier(scores AbilityScores, skill Skill, rank ProficiencyRank, level int) (int, error) {
	ability, err := AbilityForSkill(skill)
	if err != nil {
		return 0, err
	}
	return AbilityModifier(scores.Score(ability)) + int(rank)*ProficiencyBonus(level), nil
}

// SavingThrowModifier computes ability modifier plus proficiency bonus when
// the character is proficient in the save.
func SavingThrowModifier(scores AbilityScores, ability Ability, proficient bool, level int) int {
	mod := AbilityModifier(scores.Score(ability))
	if proficient {
		mod += ProficiencyBonus(level)
	}
	return mod
}

// AttackBonus computes ability modifier plus proficiency bonus (when
// proficient) plus any flat extra bonus.
func AttackBonus(scores AbilityScores, ability Ability, proficient bool, level, extra int) int {
	bonus := AbilityModifier(scores.Score(ability)) + extra
	if proficient {
		bonus += ProficiencyBonus(level)
	}
	return bonus
}

// InitiativeModifier is the dexterity modifier unless the sheet carries a
// manual override.
func InitiativeModifier(scores AbilityScores, override *int) int {
	if override != nil {
		return *override
	}
	return AbilityModifier(scores.Dex)
}

// FormatBonus renders a modifier with an explicit sign, e.g. "+3" or "-1".
func FormatBonus(bonus int) string {
	if bonus >= 0 {
		return fmt.Sprintf("+%d", bonus)
	}
	return fmt.Sprintf("%d", bonus)
}

// FormatDamage renders a damage expression with its flat bonus inline,
// e.g. "1d8+3", "1d6-1", or the bare dice when the bonus is zero.
func FormatDamage(dice string, bonus int) string {
	if dice == "" {
		return ""
	}
	if bonus == 0 {
		return dice
	}
	if bonus > 0 {
		return fmt.Sprintf("%s+%d", dice, bonus)
	}
	return fmt.Sprintf("%s%d", dice, bonus)
}

// floorDiv divides rounding toward negative infinity, matching the sheet
// math for negative modifiers (score 3 yields -4, not -3).
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
