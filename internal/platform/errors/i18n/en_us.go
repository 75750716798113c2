package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeGameNameEmpty           = "GAME_NAME_EMPTY"
	CodeGameEmptyGmID           = "GAME_EMPTY_GM_ID"
	CodeGamePlayerAlreadyMember = "GAME_PLAYER_ALREADY_MEMBER"
	CodeGamePlayerNotMember     = "GAME_PLAYER_NOT_MEMBER"
	CodeGameGmRemovalForbidden  = "GAME_GM_REMOVAL_FORBIDDEN"
	CodeGameGmOnlyOperation     = "GAME_GM_ONLY_OPERATION"

	CodeCharacterEmptyGameID       = "CHARACTER_EMPTY_GAME_ID"
	CodeCharacterEmptyOwnerID      = "CHARACTER_EMPTY_OWNER_ID"
	CodeCharacterEmptyName         = "CHARACTER_EMPTY_NAME"
	CodeCharacterInvalidSheetType  = "CHARACTER_INVALID_SHEET_TYPE"
	CodeCharacterMissingSheet      = "CHARACTER_MISSING_SHEET"
	CodeCharacterInvalidAbility    = "CHARACTER_INVALID_ABILITY_SCORE"
	CodeCharacterInvalidLevel      = "CHARACTER_INVALID_LEVEL"
	CodeCharacterImmutableField    = "CHARACTER_IMMUTABLE_FIELD"
	CodeCharacterInvalidHitPoints  = "CHARACTER_INVALID_HIT_POINTS"
	CodeCharacterInvalidCasterType = "CHARACTER_INVALID_CASTER_TYPE"

	CodeItemEmptyName         = "ITEM_EMPTY_NAME"
	CodeItemInvalidType       = "ITEM_INVALID_TYPE"
	CodeItemInvalidVisibility = "ITEM_INVALID_VISIBILITY"

	CodeRulesUnknownSkill      = "RULES_UNKNOWN_SKILL"
	CodeRulesUnknownAbility    = "RULES_UNKNOWN_ABILITY"
	CodeRulesInvalidHitDie     = "RULES_INVALID_HIT_DIE"
	CodeRulesHitDiceExhausted  = "RULES_HIT_DICE_EXHAUSTED"
	CodeRulesInvalidSpellLevel = "RULES_INVALID_SPELL_LEVEL"

	CodeNotFound      = "NOT_FOUND"
	CodeWriteConflict = "WRITE_CONFLICT"
	CodePathInvalid   = "PATH_INVALID"

	CodeSeedOutOfRange = "SEED_OUT_OF_RANGE"
)

var enUSCatalog = &Catalog{
	locale: "en-US",
	messages: map[Code]string{
		// Game errors
		CodeGameNameEmpty:           "Game name cannot be empty",
		CodeGameEmptyGmID:           "Game master is required",
		CodeGamePlayerAlreadyMember: "Player is already in the game",
		CodeGamePlayerNotMember:     "Player {{.PlayerID}} is not a member of the game",
		CodeGameGmRemovalForbidden:  "The game master cannot be removed from the game",
		CodeGameGmOnlyOperation:     "Only the game master can perform this operation",

		// Character errors
		CodeCharacterEmptyGameID:       "Character must belong to a game",
		CodeCharacterEmptyOwnerID:      "Character must have an owner",
		CodeCharacterEmptyName:         "Character name cannot be empty",
		CodeCharacterInvalidSheetType:  "Unknown sheet type {{.SheetType}}",
		CodeCharacterMissingSheet:      "Character {{.CharacterID}} has no sheet data",
		CodeCharacterInvalidAbility:    "Ability score {{.Score}} is out of range",
		CodeCharacterInvalidLevel:      "Character level {{.Level}} is out of range",
		CodeCharacterImmutableField:    "Field {{.Field}} cannot be changed",
		CodeCharacterInvalidHitPoints:  "Hit points are invalid",
		CodeCharacterInvalidCasterType: "Unknown caster type {{.CasterType}}",

		// Item errors
		CodeItemEmptyName:         "Item name cannot be empty",
		CodeItemInvalidType:       "Unknown item type {{.Type}}",
		CodeItemInvalidVisibility: "Unknown item visibility {{.Visibility}}",

		// Rules errors
		CodeRulesUnknownSkill:      "Unknown skill {{.Skill}}",
		CodeRulesUnknownAbility:    "Unknown ability {{.Ability}}",
		CodeRulesInvalidHitDie:     "Unknown hit die {{.Die}}",
		CodeRulesHitDiceExhausted:  "Not enough {{.Die}} hit dice remaining",
		CodeRulesInvalidSpellLevel: "Spell level {{.Level}} is out of range",

		// Storage errors
		CodeNotFound:      "The requested record was not found",
		CodeWriteConflict: "The write was rejected, please retry",
		CodePathInvalid:   "Invalid document path",

		// Seed errors
		CodeSeedOutOfRange: "Seed value is out of range",
	},
}
