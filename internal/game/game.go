// Package game defines the Game and GameItem entities and their
// membership rules: the GM is always a member, cannot be removed, and GM
// transfer requires the new GM to already be a member.
package game

import (
	"fmt"
	"strings"

	apperrors "github.com/greathall/greathall/internal/platform/errors"
)

// Game is a campaign owned by a single GM with a set of member players.
type Game struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	GmID        string   `json:"gmId"`
	PlayerIDs   []string `json:"playerIds"`
	System      string   `json:"system"`
	CreatedAt   int64    `json:"createdAt"`
	UpdatedAt   int64    `json:"updatedAt"`
}

// DefaultSystem is the rules system assigned when none is given.
const DefaultSystem = "dnd"

// NewGameInput describes the input for creating a game.
type NewGameInput struct {
	Name        string
	Description string
	GmID        string
	System      string
}

// NewGame builds a game with the GM as its first member. The id and
// timestamps are assigned by the service layer at write time.
func NewGame(input NewGameInput) (Game, error) {
	name := strings.TrimSpace(input.Name)
	gmID := strings.TrimSpace(input.GmID)

	if name == "" {
		return Game{}, apperrors.New(apperrors.CodeGameNameEmpty, "game name is required")
	}
	if gmID == "" {
		return Game{}, apperrors.New(apperrors.CodeGameEmptyGmID, "gm id is required")
	}

	system := input.System
	if system == "" {
		system = DefaultSystem
	}

	return Game{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		GmID:        gmID,
		PlayerIDs:   []string{gmID},
		System:      system,
	}, nil
}

// IsGameMaster reports whether a user is the game's GM.
func (g Game) IsGameMaster(userID string) bool {
	return g.GmID == userID
}

// IsPlayer reports whether a user is a member of the game.
func (g Game) IsPlayer(userID string) bool {
	for _, id := range g.PlayerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// AddPlayer returns the game with the player appended. Adding an existing
// member fails.
func (g Game) AddPlayer(playerID string) (Game, error) {
	if g.IsPlayer(playerID) {
		return g, apperrors.WithMetadata(apperrors.CodeGamePlayerAlreadyMember,
			fmt.Sprintf("player %s is already a member of game %s", playerID, g.ID),
			map[string]string{"PlayerID": playerID, "GameID": g.ID})
	}
	players := make([]string, len(g.PlayerIDs), len(g.PlayerIDs)+1)
	copy(players, g.PlayerIDs)
	g.PlayerIDs = append(players, playerID)
	return g, nil
}

// RemovePlayer returns the game with the player removed. The GM cannot be
// removed and absent players fail.
func (g Game) RemovePlayer(playerID string) (Game, error) {
	if playerID == g.GmID {
		return g, apperrors.WithMetadata(apperrors.CodeGameGmRemovalForbidden,
			fmt.Sprintf("cannot remove gm %s from game %s", playerID, g.ID),
			map[string]string{"PlayerID": playerID, "GameID": g.ID})
	}
	if !g.IsPlayer(playerID) {
		return g, apperrors.WithMetadata(apperrors.CodeGamePlayerNotMember,
			fmt.Sprintf("player %s is not a member of game %s", playerID, g.ID),
			map[string]string{"PlayerID": playerID, "GameID": g.ID})
	}
	players := make([]string, 0, len(g.PlayerIDs)-1)
	for _, id := range g.PlayerIDs {
		if id != playerID {
			players = append(players, id)
		}
	}
	g.PlayerIDs = players
	return g, nil
}

// TransferGM moves the GM role to another member. Only the current GM may
// transfer and the new GM must already be a member.
func (g Game) TransferGM(currentGmID, newGmID string) (Game, error) {
	if g.GmID != currentGmID {
		return g, apperrors.WithMetadata(apperrors.CodeGameGmOnlyOperation,
			fmt.Sprintf("user %s is not the gm of game %s", currentGmID, g.ID),
			map[string]string{"UserID": currentGmID, "GameID": g.ID})
	}
	if !g.IsPlayer(newGmID) {
		return g, apperrors.WithMetadata(apperrors.CodeGamePlayerNotMember,
			fmt.Sprintf("new gm %s is not a member of game %s", newGmID, g.ID),
			map[string]string{"PlayerID": newGmID, "GameID": g.ID})
	}
	g.GmID = newGmID
	return g, nil
}
