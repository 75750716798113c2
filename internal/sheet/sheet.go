// Package sheet defines the logical Character entity as the union of a
// public profile and a private sheet, together with the split and merge
// algorithms that keep the two halves consistent. The public half is a
// fixed allow-list of roster fields; everything else is private.
package sheet

import (
	"fmt"
	"strings"

	apperrors "github.com/greathall/greathall/internal/platform/errors"
	"github.com/greathall/greathall/internal/rules"
)

// SheetType identifies the rules edition and actor kind a sheet uses.
type SheetType string

const (
	SheetCharacter2024 SheetType = "character-2024"
	SheetCharacter2014 SheetType = "character-2014"
	SheetMob2024       SheetType = "mob-2024"
	SheetMob2014       SheetType = "mob-2014"
)

// ParseSheetType validates a sheet type identifier.
func ParseSheetType(s string) (SheetType, error) {
	switch SheetType(s) {
	case SheetCharacter2024, SheetCharacter2014, SheetMob2024, SheetMob2014:
		return SheetType(s), nil
	}
	return "", apperrors.WithMetadata(apperrors.CodeCharacterInvalidSheetType,
		fmt.Sprintf("invalid sheet type %q", s),
		map[string]string{"SheetType": s})
}

// IsMob reports whether the sheet describes a GM-run minion rather than a
// player character.
func (s SheetType) IsMob() bool {
	return strings.HasPrefix(string(s), "mob-")
}

// PublicProfile is the roster-visible half of a character. Its field set
// is the complete public allow-list; anything not here is private.
type PublicProfile struct {
	ID                string    `json:"id"`
	GameID            string    `json:"gameId"`
	OwnerID           string    `json:"ownerId"`
	Name              string    `json:"name"`
	Avatar            string    `json:"avatar"`
	SheetType         SheetType `json:"sheetType"`
	Hidden            bool      `json:"isHidden"`
	PublicDescription string    `json:"publicDescription"`
	CreatedAt         int64     `json:"createdAt"`
	UpdatedAt         int64     `json:"updatedAt"`
}

// ClassEntry is one class a character has levels in. Multiclass characters
// carry several entries; the first entry is the primary class.
type ClassEntry struct {
	Name                string           `json:"name"`
	Subclass            string           `json:"subclass"`
	Level               int              `json:"level"`
	HitDie              string           `json:"hitDie"`
	HitDiceUsed         int              `json:"hitDiceUsed"`
	CasterType          rules.CasterType `json:"casterType"`
	SpellcastingAbility rules.Ability    `json:"spellcastingAbility"`
}

// Currency holds coinage by denomination.
type Currency struct {
	CP int `json:"cp"`
	SP int `json:"sp"`
	EP int `json:"ep"`
	GP int `json:"gp"`
	PP int `json:"pp"`
}

// ArmorTraining flags the armor categories a character can wear.
type ArmorTraining struct {
	Light   bool `json:"light"`
	Medium  bool `json:"medium"`
	Heavy   bool `json:"heavy"`
	Shields bool `json:"shields"`
}

// Action is an attack or usable feature on the sheet.
type Action struct {
	Name        string        `json:"name"`
	Kind        string        `json:"kind"`
	Ability     rules.Ability `json:"ability"`
	Proficient  bool          `json:"proficient"`
	ExtraBonus  int           `json:"extraBonus"`
	Damage      string        `json:"damage"`
	DamageBonus int           `json:"damageBonus"`
	DamageType  string        `json:"damageType"`
	Description string        `json:"description"`
}

// Spell is a known or prepared spell.
type Spell struct {
	Name        string `json:"name"`
	Level       int    `json:"level"`
	Prepared    bool   `json:"prepared"`
	Description string `json:"description"`
}

// Item is an inventory entry.
type Item struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
}

// PrivateSheet is the owner- and GM-visible half of a character.
type PrivateSheet struct {
	Abilities           rules.AbilityScores                 `json:"abilities"`
	HP                  rules.HitPoints                     `json:"hp"`
	HPBonus             int                                 `json:"hpBonus"`
	AC                  int                                 `json:"ac"`
	Speed               int                                 `json:"speed"`
	InitiativeOverride  *int                                `json:"initiativeOverride,omitempty"`
	Inspiration         bool                                `json:"inspiration"`
	Exhaustion          int                                 `json:"exhaustion"`
	DeathSaves          rules.DeathSaves                    `json:"deathSaves"`
	Skills              map[rules.Skill]rules.ProficiencyRank `json:"skills"`
	SavingThrows        map[rules.Ability]bool              `json:"savingThrows"`
	Classes             []ClassEntry                        `json:"classes"`
	SpellSlots          rules.SpellSlots                    `json:"spellSlots"`
	Spells              []Spell                             `json:"spells"`
	Actions             []Action                            `json:"actions"`
	Inventory           []Item                              `json:"inventory"`
	Currency            Currency                            `json:"currency"`
	ArmorTraining       ArmorTraining                       `json:"armorTraining"`
	WeaponProficiencies string                              `json:"weaponProficiencies"`
	ToolProficiencies   string                              `json:"toolProficiencies"`
	Race                string                              `json:"race"`
	Background          string                              `json:"background"`
	XP                  int                                 `json:"xp"`
	Notes               string                              `json:"notes"`
	Biography           string                              `json:"biography"`
}

// Character is the merged view of a public profile and its private sheet.
// The two halves have disjoint field sets, so merging never lets stale
// public data clobber private data.
type Character struct {
	PublicProfile
	PrivateSheet
}

// Merge combines the two halves into the logical character.
func Merge(pub PublicProfile, priv PrivateSheet) Character {
	return Character{PublicProfile: pub, PrivateSheet: priv}
}

// Split decomposes a character back into its persisted halves.
func (c Character) Split() (PublicProfile, PrivateSheet) {
	return c.PublicProfile, c.PrivateSheet
}

// NewCharacterInput describes the input for creating a character.
type NewCharacterInput struct {
	GameID    string
	OwnerID   string
	Name      string
	SheetType SheetType
}

// NewCharacter builds a default character. The id and timestamps are
// assigned by the service layer at write time.
func NewCharacter(input NewCharacterInput) (Character, error) {
	gameID := strings.TrimSpace(input.GameID)
	ownerID := strings.TrimSpace(input.OwnerID)
	name := strings.TrimSpace(input.Name)

	if gameID == "" {
		return Character{}, apperrors.New(apperrors.CodeCharacterEmptyGameID, "game id is required")
	}
	if ownerID == "" {
		return Character{}, apperrors.New(apperrors.CodeCharacterEmptyOwnerID, "owner id is required")
	}
	if name == "" {
		return Character{}, apperrors.New(apperrors.CodeCharacterEmptyName, "character name is required")
	}

	sheetType := input.SheetType
	if sheetType == "" {
		sheetType = SheetCharacter2024
	}
	if _, err := ParseSheetType(string(sheetType)); err != nil {
		return Character{}, err
	}

	skills := make(map[rules.Skill]rules.ProficiencyRank, 18)
	for _, skill := range rules.Skills() {
		skills[skill] = rules.RankNone
	}
	saves := make(map[rules.Ability]bool, 6)
	for _, ability := range rules.AbilityOrder {
		saves[ability] = false
	}

	return Character{
		PublicProfile: PublicProfile{
			GameID:    gameID,
			OwnerID:   ownerID,
			Name:      name,
			SheetType: sheetType,
		},
		PrivateSheet: PrivateSheet{
			Abilities:    rules.AbilityScores{Str: 10, Dex: 10, Con: 10, Int: 10, Wis: 10, Cha: 10},
			HP:           rules.HitPoints{Current: 10, Max: 10, Temp: 0},
			AC:           10,
			Speed:        30,
			Skills:       skills,
			SavingThrows: saves,
			Classes: []ClassEntry{{
				Level:      1,
				HitDie:     "d8",
				CasterType: rules.CasterNone,
			}},
			SpellSlots: rules.SpellSlots{},
			Spells:     []Spell{},
			Actions:    []Action{},
			Inventory:  []Item{},
		},
	}, nil
}

// TotalLevel sums levels across every class entry.
func (s PrivateSheet) TotalLevel() int {
	total := 0
	for _, entry := range s.Classes {
		total += entry.Level
	}
	return total
}

// PrimaryClass returns the first class entry, the convenience view for
// single-class sheets.
func (s PrivateSheet) PrimaryClass() (ClassEntry, bool) {
	if len(s.Classes) == 0 {
		return ClassEntry{}, false
	}
	return s.Classes[0], true
}

// ProficiencyBonus derives the sheet's proficiency bonus from total level.
func (s PrivateSheet) ProficiencyBonus() int {
	level := s.TotalLevel()
	if level < 1 {
		level = 1
	}
	return rules.ProficiencyBonus(level)
}

// CasterType is the primary class's spellcasting archetype.
func (s PrivateSheet) CasterType() rules.CasterType {
	primary, ok := s.PrimaryClass()
	if !ok || primary.CasterType == "" {
		return rules.CasterNone
	}
	return primary.CasterType
}

// SkillModifier computes the sheet's modifier for a skill.
func (s PrivateSheet) SkillModifier(skill rules.Skill) (int, error) {
	return rules.SkillModifier(s.Abilities, skill, s.Skills[skill], maxInt(1, s.TotalLevel()))
}

// SavingThrowModifier computes the sheet's modifier for a saving throw.
func (s PrivateSheet) SavingThrowModifier(ability rules.Ability) int {
	return rules.SavingThrowModifier(s.Abilities, ability, s.SavingThrows[ability], maxInt(1, s.TotalLevel()))
}

// EffectiveMaxHP is max hit points plus the bonus maximum.
func (s PrivateSheet) EffectiveMaxHP() int {
	return rules.EffectiveMaxHP(s.HP.Max, s.HPBonus)
}

// Initiative is the sheet's initiative modifier, honoring a manual
// override when one is set.
func (s PrivateSheet) Initiative() int {
	return rules.InitiativeModifier(s.Abilities, s.InitiativeOverride)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
