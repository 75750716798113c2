package games

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/greathall/greathall/internal/docstore"
	"github.com/greathall/greathall/internal/game"
	apperrors "github.com/greathall/greathall/internal/platform/errors"
)

// CreateItem validates the input and writes a new item into the game's
// items collection.
func (s *Service) CreateItem(ctx context.Context, input game.NewItemInput) (game.Item, error) {
	item, err := game.NewItem(input)
	if err != nil {
		return game.Item{}, err
	}

	itemID, err := s.newID()
	if err != nil {
		return game.Item{}, fmt.Errorf("generate item id: %w", err)
	}
	now := s.now().UnixMilli()
	item.ID = itemID
	item.CreatedAt = now
	item.UpdatedAt = now

	data, err := docstore.Encode(item)
	if err != nil {
		return game.Item{}, err
	}
	if err := s.store.Set(ctx, itemPath(item.GameID, itemID), data); err != nil {
		return game.Item{}, err
	}
	return item, nil
}

// GetItem reads one item.
func (s *Service) GetItem(ctx context.Context, gameID, itemID string) (game.Item, error) {
	snap, err := s.store.Get(ctx, itemPath(gameID, itemID))
	if err != nil {
		return game.Item{}, err
	}
	if !snap.Exists {
		return game.Item{}, itemNotFound(gameID, itemID)
	}
	return decodeItem(snap)
}

// UpdateItemInput is a partial change to an item. Nil fields are
// untouched.
type UpdateItemInput struct {
	Name        *string
	ImageURL    *string
	Description *string
	VisibleTo   *game.Visibility
}

// UpdateItem changes an item's descriptive fields or visibility.
func (s *Service) UpdateItem(ctx context.Context, gameID, itemID string, input UpdateItemInput) (game.Item, error) {
	item, err := s.GetItem(ctx, gameID, itemID)
	if err != nil {
		return game.Item{}, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return game.Item{}, apperrors.New(apperrors.CodeItemEmptyName, "item name is required")
		}
		item.Name = name
	}
	if input.ImageURL != nil {
		item.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.Description != nil {
		item.Description = strings.TrimSpace(*input.Description)
	}
	if input.VisibleTo != nil {
		switch *input.VisibleTo {
		case game.VisibleToAll, game.VisibleToGM:
			item.VisibleTo = *input.VisibleTo
		default:
			return game.Item{}, apperrors.WithMetadata(apperrors.CodeItemInvalidVisibility,
				fmt.Sprintf("invalid item visibility %q", *input.VisibleTo),
				map[string]string{"Visibility": string(*input.VisibleTo)})
		}
	}

	item.UpdatedAt = s.now().UnixMilli()
	data, err := docstore.Encode(item)
	if err != nil {
		return game.Item{}, err
	}
	if err := s.store.Set(ctx, itemPath(gameID, itemID), data); err != nil {
		return game.Item{}, err
	}
	return item, nil
}

// DeleteItem removes one item. Deleting an absent item is a no-op.
func (s *Service) DeleteItem(ctx context.Context, gameID, itemID string) error {
	return s.store.Delete(ctx, itemPath(gameID, itemID))
}

// ListItems returns the items visible to a viewer, sorted by name. The
// GM sees every item; players do not see gm-only items.
func (s *Service) ListItems(ctx context.Context, gameID, viewerID string) ([]game.Item, error) {
	g, err := s.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}
	snaps, err := s.store.List(ctx, ItemsCollection(gameID))
	if err != nil {
		return nil, err
	}

	items := make([]game.Item, 0, len(snaps))
	for _, snap := range snaps {
		item, err := decodeItem(snap)
		if err != nil {
			return nil, err
		}
		if !item.VisibleBy(g, viewerID) {
			continue
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func decodeItem(snap docstore.Snapshot) (game.Item, error) {
	var item game.Item
	if err := docstore.Decode(snap.Data, &item); err != nil {
		return game.Item{}, err
	}
	return item, nil
}

func itemNotFound(gameID, itemID string) error {
	return apperrors.WithMetadata(apperrors.CodeNotFound,
		fmt.Sprintf("item %s not found", itemID),
		map[string]string{"GameID": gameID, "ItemID": itemID})
}
