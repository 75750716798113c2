package sheet

import "github.com/greathall/greathall/internal/rules"

// Update is a typed partial change to a character. Nil fields are
// untouched. Identity fields (id, gameId, ownerId) and timestamps are not
// updatable; the classification into public and private halves is total by
// construction.
type Update struct {
	// Public allow-list fields.
	Name              *string
	Avatar            *string
	SheetType         *SheetType
	Hidden            *bool
	PublicDescription *string

	// Private sheet fields.
	Abilities               *rules.AbilityScores
	HP                      *rules.HitPoints
	HPBonus                 *int
	AC                      *int
	Speed                   *int
	InitiativeOverride      *int
	ClearInitiativeOverride bool
	Inspiration             *bool
	Exhaustion              *int
	DeathSaves              *rules.DeathSaves
	Skills                  map[rules.Skill]rules.ProficiencyRank
	SavingThrows            map[rules.Ability]bool
	Classes                 *[]ClassEntry
	SpellSlots              *rules.SpellSlots
	Spells                  *[]Spell
	Actions                 *[]Action
	Inventory               *[]Item
	Currency                *Currency
	ArmorTraining           *ArmorTraining
	WeaponProficiencies     *string
	ToolProficiencies       *string
	Race                    *string
	Background              *string
	XP                      *int
	Notes                   *string
	Biography               *string
}

// PublicPatch is the public half of a split update.
type PublicPatch struct {
	Name              *string
	Avatar            *string
	SheetType         *SheetType
	Hidden            *bool
	PublicDescription *string
}

// PrivatePatch is the private half of a split update.
type PrivatePatch struct {
	Abilities               *rules.AbilityScores
	HP                      *rules.HitPoints
	HPBonus                 *int
	AC                      *int
	Speed                   *int
	InitiativeOverride      *int
	ClearInitiativeOverride bool
	Inspiration             *bool
	Exhaustion              *int
	DeathSaves              *rules.DeathSaves
	Skills                  map[rules.Skill]rules.ProficiencyRank
	SavingThrows            map[rules.Ability]bool
	Classes                 *[]ClassEntry
	SpellSlots              *rules.SpellSlots
	Spells                  *[]Spell
	Actions                 *[]Action
	Inventory               *[]Item
	Currency                *Currency
	ArmorTraining           *ArmorTraining
	WeaponProficiencies     *string
	ToolProficiencies       *string
	Race                    *string
	Background              *string
	XP                      *int
	Notes                   *string
	Biography               *string
}

// Split classifies the update into its public and private halves. Every
// field belongs to exactly one side.
func (u Update) Split() (PublicPatch, PrivatePatch) {
	pub := PublicPatch{
		Name:              u.Name,
		Avatar:            u.Avatar,
		SheetType:         u.SheetType,
		Hidden:            u.Hidden,
		PublicDescription: u.PublicDescription,
	}
	priv := PrivatePatch{
		Abilities:               u.Abilities,
		HP:                      u.HP,
		HPBonus:                 u.HPBonus,
		AC:                      u.AC,
		Speed:                   u.Speed,
		InitiativeOverride:      u.InitiativeOverride,
		ClearInitiativeOverride: u.ClearInitiativeOverride,
		Inspiration:             u.Inspiration,
		Exhaustion:              u.Exhaustion,
		DeathSaves:              u.DeathSaves,
		Skills:                  u.Skills,
		SavingThrows:            u.SavingThrows,
		Classes:                 u.Classes,
		SpellSlots:              u.SpellSlots,
		Spells:                  u.Spells,
		Actions:                 u.Actions,
		Inventory:               u.Inventory,
		Currency:                u.Currency,
		ArmorTraining:           u.ArmorTraining,
		WeaponProficiencies:     u.WeaponProficiencies,
		ToolProficiencies:       u.ToolProficiencies,
		Race:                    u.Race,
		Background:              u.Background,
		XP:                      u.XP,
		Notes:                   u.Notes,
		Biography:               u.Biography,
	}
	return pub, priv
}

// IsEmpty reports whether the patch touches no public field.
func (p PublicPatch) IsEmpty() bool {
	return p.Name == nil && p.Avatar == nil && p.SheetType == nil &&
		p.Hidden == nil && p.PublicDescription == nil
}

// IsEmpty reports whether the patch touches no private field.
func (p PrivatePatch) IsEmpty() bool {
	return p.Abilities == nil && p.HP == nil && p.HPBonus == nil &&
		p.AC == nil && p.Speed == nil &&
		p.InitiativeOverride == nil && !p.ClearInitiativeOverride &&
		p.Inspiration == nil && p.Exhaustion == nil && p.DeathSaves == nil &&
		p.Skills == nil && p.SavingThrows == nil && p.Classes == nil &&
		p.SpellSlots == nil && p.Spells == nil && p.Actions == nil &&
		p.Inventory == nil && p.Currency == nil && p.ArmorTraining == nil &&
		p.WeaponProficiencies == nil && p.ToolProficiencies == nil &&
		p.Race == nil && p.Background == nil && p.XP == nil &&
		p.Notes == nil && p.Biography == nil
}

// ApplyTo merges the patch into a public profile.
func (p PublicPatch) ApplyTo(profile PublicProfile) PublicProfile {
	if p.Name != nil {
		profile.Name = *p.Name
	}
	if p.Avatar != nil {
		profile.Avatar = *p.Avatar
	}
	if p.SheetType != nil {
		profile.SheetType = *p.SheetType
	}
	if p.Hidden != nil {
		profile.Hidden = *p.Hidden
	}
	if p.PublicDescription != nil {
		profile.PublicDescription = *p.PublicDescription
	}
	return profile
}

// ApplyTo merges the patch into a private sheet.
func (p PrivatePatch) ApplyTo(s PrivateSheet) PrivateSheet {
	if p.Abilities != nil {
		s.Abilities = *p.Abilities
	}
	if p.HP != nil {
		s.HP = *p.HP
	}
	if p.HPBonus != nil {
		s.HPBonus = *p.HPBonus
	}
	if p.AC != nil {
		s.AC = *p.AC
	}
	if p.Speed != nil {
		s.Speed = *p.Speed
	}
	if p.ClearInitiativeOverride {
		s.InitiativeOverride = nil
	} else if p.InitiativeOverride != nil {
		override := *p.InitiativeOverride
		s.InitiativeOverride = &override
	}
	if p.Inspiration != nil {
		s.Inspiration = *p.Inspiration
	}
	if p.Exhaustion != nil {
		s.Exhaustion = *p.Exhaustion
	}
	if p.DeathSaves != nil {
		s.DeathSaves = *p.DeathSaves
	}
	if p.Skills != nil {
		merged := make(map[rules.Skill]rules.ProficiencyRank, len(s.Skills))
		for skill, rank := range s.Skills {
			merged[skill] = rank
		}
		for skill, rank := range p.Skills {
			merged[skill] = rank
		}
		s.Skills = merged
	}
	if p.SavingThrows != nil {
		merged := make(map[rules.Ability]bool, len(s.SavingThrows))
		for ability, proficient := range s.SavingThrows {
			merged[ability] = proficient
		}
		for ability, proficient := range p.SavingThrows {
			merged[ability] = proficient
		}
		s.SavingThrows = merged
	}
	if p.Classes != nil {
		s.Classes = *p.Classes
	}
	if p.SpellSlots != nil {
		s.SpellSlots = *p.SpellSlots
	}
	if p.Spells != nil {
		s.Spells = *p.Spells
	}
	if p.Actions != nil {
		s.Actions = *p.Actions
	}
	if p.Inventory != nil {
		s.Inventory = *p.Inventory
	}
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
	if p.ArmorTraining != nil {
		s.ArmorTraining = *p.ArmorTraining
	}
	if p.WeaponProficiencies != nil {
		s.WeaponProficiencies = *p.WeaponProficiencies
	}
	if p.ToolProficiencies != nil {
		s.ToolProficiencies = *p.ToolProficiencies
	}
	if p.Race != nil {
		s.Race = *p.Race
	}
	if p.Background != nil {
		s.Background = *p.Background
	}
	if p.XP != nil {
		s.XP = *p.XP
	}
	if p.Notes != nil {
		s.Notes = *p.Notes
	}
	if p.Biography != nil {
		s.Biography = *p.Biography
	}
	return s
}
