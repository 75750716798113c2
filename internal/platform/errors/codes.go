// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Game errors
	CodeGameNameEmpty           Code = "GAME_NAME_EMPTY"
	CodeGameEmptyGmID           Code = "GAME_EMPTY_GM_ID"
	CodeGamePlayerAlreadyMember Code = "GAME_PLAYER_ALREADY_MEMBER"
	CodeGamePlayerNotMember     Code = "GAME_PLAYER_NOT_MEMBER"
	CodeGameGmRemovalForbidden  Code = "GAME_GM_REMOVAL_FORBIDDEN"
	CodeGameGmOnlyOperation     Code = "GAME_GM_ONLY_OPERATION"

	// Character errors
	CodeCharacterEmptyGameID       Code = "CHARACTER_EMPTY_GAME_ID"
	CodeCharacterEmptyOwnerID      Code = "CHARACTER_EMPTY_OWNER_ID"
	CodeCharacterEmptyName         Code = "CHARACTER_EMPTY_NAME"
	CodeCharacterInvalidSheetType  Code = "CHARACTER_INVALID_SHEET_TYPE"
	CodeCharacterMissingSheet      Code = "CHARACTER_MISSING_SHEET"
	CodeCharacterInvalidAbility    Code = "CHARACTER_INVALID_ABILITY_SCORE"
	CodeCharacterInvalidLevel      Code = "CHARACTER_INVALID_LEVEL"
	CodeCharacterImmutableField    Code = "CHARACTER_IMMUTABLE_FIELD"
	CodeCharacterInvalidHitPoints  Code = "CHARACTER_INVALID_HIT_POINTS"
	CodeCharacterInvalidCasterType Code = "CHARACTER_INVALID_CASTER_TYPE"

	// Item errors
	CodeItemEmptyName         Code = "ITEM_EMPTY_NAME"
	CodeItemInvalidType       Code = "ITEM_INVALID_TYPE"
	CodeItemInvalidVisibility Code = "ITEM_INVALID_VISIBILITY"

	// Rules errors
	CodeRulesUnknownSkill      Code = "RULES_UNKNOWN_SKILL"
	CodeRulesUnknownAbility    Code = "RULES_UNKNOWN_ABILITY"
	CodeRulesInvalidHitDie     Code = "RULES_INVALID_HIT_DIE"
	CodeRulesHitDiceExhausted  Code = "RULES_HIT_DICE_EXHAUSTED"
	CodeRulesInvalidSpellLevel Code = "RULES_INVALID_SPELL_LEVEL"

	// Storage errors
	CodeNotFound      Code = "NOT_FOUND"
	CodeWriteConflict Code = "WRITE_CONFLICT"
	CodePathInvalid   Code = "PATH_INVALID"

	// Random/seed errors
	CodeSeedOutOfRange Code = "SEED_OUT_OF_RANGE"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeGameNameEmpty,
		CodeGameEmptyGmID,
		CodeCharacterEmptyGameID,
		CodeCharacterEmptyOwnerID,
		CodeCharacterEmptyName,
		CodeCharacterInvalidSheetType,
		CodeCharacterInvalidAbility,
		CodeCharacterInvalidLevel,
		CodeCharacterImmutableField,
		CodeCharacterInvalidHitPoints,
		CodeCharacterInvalidCasterType,
		CodeItemEmptyName,
		CodeItemInvalidType,
		CodeItemInvalidVisibility,
		CodeRulesUnknownSkill,
		CodeRulesUnknownAbility,
		CodeRulesInvalidHitDie,
		CodeRulesInvalidSpellLevel,
		CodePathInvalid,
		CodeSeedOutOfRange:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow the operation
	case CodeGamePlayerNotMember,
		CodeGameGmRemovalForbidden,
		CodeRulesHitDiceExhausted:
		return codes.FailedPrecondition

	// PermissionDenied - caller lacks the required role
	case CodeGameGmOnlyOperation:
		return codes.PermissionDenied

	// AlreadyExists
	case CodeGamePlayerAlreadyMember:
		return codes.AlreadyExists

	// NotFound - missing records, including a public record without its sheet
	case CodeNotFound,
		CodeCharacterMissingSheet:
		return codes.NotFound

	// Aborted - rejected atomic writes
	case CodeWriteConflict:
		return codes.Aborted

	default:
		return codes.Internal
	}
}
