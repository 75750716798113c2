package rules

import (
	"errors"
	"testing"

	apperrors "github.com/greathall/greathall/internal/platform/errors"
)

func TestAbilityModifier(t *testing.T) {
	tests := []struct {
		score int
		want  int
	}{
		{1, -5},
		{3, -4},
		{8, -1},
		{9, -1},
		{10, 0},
		{11, 0},
		{12, 1},
		{17, 3},
		{20, 5},
		{30, 10},
	}
	for _, tt := range tests {
		if got := AbilityModifier(tt.score); got != tt.want {
			t.Fatalf("AbilityModifier(%d) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestProficiencyBonus(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 2},
		{4, 2},
		{5, 3},
		{8, 3},
		{9, 4},
		{12, 4},
		{13, 5},
		{16, 5},
		{17, 6},
		{20, 6},
	}
	for _, tt := range tests {
		if got := ProficiencyBonus(tt.level); got != tt.want {
			t.Fatalf("ProficiencyBonus(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestSkillModifier(t *testing.T) {
	scores := AbilityScores{Str: 16, Dex: 14, Con: 12, Int: 10, Wis: 13, Cha: 8}

	tests := []struct {
		skill Skill
		rank  ProficiencyRank
		level int
		want  int
	}{
		{Athletics, RankNone, 1, 3},
		{Athletics, RankProficient, 1, 5},
		{Athletics, RankExpertise, 1, 7},
		{Stealth, RankProficient, 5, 5},
		{Persuasion, RankNone, 1, -1},
		{Perception, RankProficient, 9, 5},
	}
	for _, tt := range tests {
		got, err := SkillModifier(scores, tt.skill, tt.rank, tt.level)
		if err != nil {
			t.Fatalf("SkillModifier(%s): %v", tt.skill, err)
		}
		if got != tt.want {
			t.Fatalf("SkillModifier(%s, rank %d, level %d) = %d, want %d",
				tt.skill, tt.rank, tt.level, got, tt.want)
		}
	}
}

func TestSkillModifierUnknownSkill(t *testing.T) {
	_, err := SkillModifier(AbilityScores{}, Skill("Basketweaving"), RankNone, 1)
	if !errors.Is(err, apperrors.New(apperrors.CodeRulesUnknownSkill, "")) {
		t.Fatalf("expected unknown skill error, got %v", err)
	}
}

func TestSavingThrowModifier(t *testing.T) {
	scores := AbilityScores{Str: 16, Dex: 14, Con: 12, Int: 10, Wis: 13, Cha: 8}

	if got := SavingThrowModifier(scores, Strength, false, 1); got != 3 {
		t.Fatalf("unproficient str save = %d, want 3", got)
	}
	if got := SavingThrowModifier(scores, Strength, true, 1); got != 5 {
		t.Fatalf("proficient str save = %d, want 5", got)
	}
	if got := SavingThrowModifier(scores, Charisma, true, 17); got != 5 {
		t.Fatalf("proficient cha save at 17 = %d, want 5", got)
	}
}

func TestAttackBonus(t *testing.T) {
	scores := AbilityScores{Str: 18, Dex: 14}

	if got := AttackBonus(scores, Strength, true, 5, 0); got != 7 {
		t.Fatalf("proficient str attack = %d, want 7", got)
	}
	if got := AttackBonus(scores, Dexterity, false, 5, 1); got != 3 {
		t.Fatalf("unproficient dex attack with extra = %d, want 3", got)
	}
}

func TestInitiativeModifier(t *testing.T) {
	scores := AbilityScores{Dex: 16}
	if got := InitiativeModifier(scores, nil); got != 3 {
		t.Fatalf("initiative = %d, want 3", got)
	}
	override := 7
	if got := InitiativeModifier(scores, &override); got != 7 {
		t.Fatalf("overridden initiative = %d, want 7", got)
	}
}

func TestFormatBonus(t *testing.T) {
	if got := FormatBonus(3); got != "+3" {
		t.Fatalf("FormatBonus(3) = %q, want +3", got)
	}
	if got := FormatBonus(0); got != "+0" {
		t.Fatalf("FormatBonus(0) = %q, want +0", got)
	}
	if got := FormatBonus(-2); got != "-2" {
		t.Fatalf("FormatBonus(-2) = %q, want -2", got)
	}
}

func TestFormatDamage(t *testing.T) {
	tests := []struct {
		dice  string
		bonus int
		want  string
	}{
		{"1d8", 3, "1d8+3"},
		{"1d8", 0, "1d8"},
		{"2d6", -1, "2d6-1"},
		{"", 3, ""},
	}
	for _, tt := range tests {
		if got := FormatDamage(tt.dice, tt.bonus); got != tt.want {
			t.Fatalf("FormatDamage(%q, %d) = %q, want %q", tt.dice, tt.bonus, got, tt.want)
		}
	}
}

func TestAbilityForSkillCoversAllSkills(t *testing.T) {
	if got := len(Skills()); got != 18 {
		t.Fatalf("skill count = %d, want 18", got)
	}
	for _, skill := range Skills() {
		if _, err := AbilityForSkill(skill); err != nil {
			t.Fatalf("AbilityForSkill(%s): %v", skill, err)
		}
	}
}

func TestParseAbility(t *testing.T) {
	if _, err := ParseAbility("dex"); err != nil {
		t.Fatalf("parse dex: %v", err)
	}
	if _, err := ParseAbility("luck"); err == nil {
		t.Fatal("expected error for unknown ability")
	}
}
