package game

import (
	"fmt"
	"strings"

	apperrors "github.com/greathall/greathall/internal/platform/errors"
)

// ItemType classifies a shared game asset.
type ItemType string

const (
	ItemMap   ItemType = "map"
	ItemNote  ItemType = "note"
	ItemImage ItemType = "image"
)

// Visibility controls who can see a game item. Items have a single flag,
// not a public/private document split.
type Visibility string

const (
	VisibleToAll Visibility = "all"
	VisibleToGM  Visibility = "gm"
)

// Item is a shared asset (map, note, or image) scoped to a game.
type Item struct {
	ID          string     `json:"id"`
	GameID      string     `json:"gameId"`
	Name        string     `json:"name"`
	Type        ItemType   `json:"type"`
	ImageURL    string     `json:"imageUrl"`
	Description string     `json:"description"`
	VisibleTo   Visibility `json:"visibleTo"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   int64      `json:"createdAt"`
	UpdatedAt   int64      `json:"updatedAt"`
}

// NewItemInput describes the input for creating a game item.
type NewItemInput struct {
	GameID      string
	Name        string
	Type        ItemType
	ImageURL    string
	Description string
	VisibleTo   Visibility
	CreatedBy   string
}

// NewItem builds a validated game item. Visibility defaults to all.
func NewItem(input NewItemInput) (Item, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return Item{}, apperrors.New(apperrors.CodeItemEmptyName, "item name is required")
	}

	switch input.Type {
	case ItemMap, ItemNote, ItemImage:
	default:
		return Item{}, apperrors.WithMetadata(apperrors.CodeItemInvalidType,
			fmt.Sprintf("invalid item type %q", input.Type),
			map[string]string{"Type": string(input.Type)})
	}

	visibleTo := input.VisibleTo
	if visibleTo == "" {
		visibleTo = VisibleToAll
	}
	switch visibleTo {
	case VisibleToAll, VisibleToGM:
	default:
		return Item{}, apperrors.WithMetadata(apperrors.CodeItemInvalidVisibility,
			fmt.Sprintf("invalid item visibility %q", input.VisibleTo),
			map[string]string{"Visibility": string(input.VisibleTo)})
	}

	return Item{
		GameID:      strings.TrimSpace(input.GameID),
		Name:        name,
		Type:        input.Type,
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Description: strings.TrimSpace(input.Description),
		VisibleTo:   visibleTo,
		CreatedBy:   strings.TrimSpace(input.CreatedBy),
	}, nil
}

// VisibleBy reports whether a viewer can see the item.
func (i Item) VisibleBy(g Game, userID string) bool {
	if i.VisibleTo == VisibleToAll {
		return true
	}
	return g.IsGameMaster(userID)
}
