package characters

import (
	"fmt"

	"github.com/greathall/greathall/internal/docstore"
)

// Persisted layout: a character's public profile lives at
// games/{gameId}/characters/{id}; its private sheet lives at
// games/{gameId}/characters/{id}/private/sheet.

// PrivateDocID is the fixed document id of the private sheet.
const PrivateDocID = "sheet"

// PublicCollection is the collection holding a game's public profiles.
func PublicCollection(gameID string) string {
	return fmt.Sprintf("games/%s/characters", gameID)
}

// PublicPath addresses one character's public profile.
func PublicPath(gameID, characterID string) docstore.Path {
	return docstore.Path{Collection: PublicCollection(gameID), ID: characterID}
}

// PrivateCollection is the collection holding one character's private
// documents.
func PrivateCollection(gameID, characterID string) string {
	return fmt.Sprintf("games/%s/characters/%s/private", gameID, characterID)
}

// PrivatePath addresses one character's private sheet.
func PrivatePath(gameID, characterID string) docstore.Path {
	return docstore.Path{Collection: PrivateCollection(gameID, characterID), ID: PrivateDocID}
}
