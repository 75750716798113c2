// Package games persists games and their shared table items on top of a
// document store.
package games

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/greathall/greathall/internal/docstore"
	"github.com/greathall/greathall/internal/game"
	apperrors "github.com/greathall/greathall/internal/platform/errors"
	"github.com/greathall/greathall/internal/platform/id"
)

// Collection is the docstore collection holding game documents.
const Collection = "games"

// ItemsCollection is the collection holding one game's items.
func ItemsCollection(gameID string) string {
	return fmt.Sprintf("games/%s/items", gameID)
}

func gamePath(gameID string) docstore.Path {
	return docstore.Path{Collection: Collection, ID: gameID}
}

func itemPath(gameID, itemID string) docstore.Path {
	return docstore.Path{Collection: ItemsCollection(gameID), ID: itemID}
}

// Service owns game and item persistence.
type Service struct {
	store docstore.Store
	now   func() time.Time
	newID func() (string, error)
}

// NewService creates a game service on top of a document store.
func NewService(store docstore.Store) *Service {
	return &Service{store: store, now: time.Now, newID: id.NewID}
}

// Create validates the input and writes a new game with the GM as its
// first member.
func (s *Service) Create(ctx context.Context, input game.NewGameInput) (game.Game, error) {
	g, err := game.NewGame(input)
	if err != nil {
		return game.Game{}, err
	}

	gameID, err := s.newID()
	if err != nil {
		return game.Game{}, fmt.Errorf("generate game id: %w", err)
	}
	now := s.now().UnixMilli()
	g.ID = gameID
	g.CreatedAt = now
	g.UpdatedAt = now

	if err := s.put(ctx, g); err != nil {
		return game.Game{}, err
	}
	return g, nil
}

// Get reads one game.
func (s *Service) Get(ctx context.Context, gameID string) (game.Game, error) {
	snap, err := s.store.Get(ctx, gamePath(gameID))
	if err != nil {
		return game.Game{}, err
	}
	if !snap.Exists {
		return game.Game{}, notFound(gameID)
	}
	return decodeGame(snap)
}

// ListUserGames returns every game the user belongs to, as GM or player,
// newest activity first.
func (s *Service) ListUserGames(ctx context.Context, userID string) ([]game.Game, error) {
	snaps, err := s.store.Query(ctx, Collection, membershipFilter(userID))
	if err != nil {
		return nil, err
	}
	games, err := decodeGames(snaps)
	if err != nil {
		return nil, err
	}
	sortGames(games)
	return games, nil
}

// UpdateGameInput is a partial change to a game's descriptive fields.
// Nil fields are untouched.
type UpdateGameInput struct {
	Name        *string
	Description *string
}

// UpdateInfo changes a game's name or description.
func (s *Service) UpdateInfo(ctx context.Context, gameID string, input UpdateGameInput) (game.Game, error) {
	g, err := s.Get(ctx, gameID)
	if err != nil {
		return game.Game{}, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return game.Game{}, apperrors.New(apperrors.CodeGameNameEmpty, "game name is required")
		}
		g.Name = name
	}
	if input.Description != nil {
		g.Description = strings.TrimSpace(*input.Description)
	}

	return s.save(ctx, g)
}

// AddPlayer adds a player to a game's membership.
func (s *Service) AddPlayer(ctx context.Context, gameID, playerID string) (game.Game, error) {
	g, err := s.Get(ctx, gameID)
	if err != nil {
		return game.Game{}, err
	}
	g, err = g.AddPlayer(playerID)
	if err != nil {
		return game.Game{}, err
	}
	return s.save(ctx, g)
}

// RemovePlayer removes a player from a game's membership. The GM cannot
// be removed; transfer the role first.
func (s *Service) RemovePlayer(ctx context.Context, gameID, playerID string) (game.Game, error) {
	g, err := s.Get(ctx, gameID)
	if err != nil {
		return game.Game{}, err
	}
	g, err = g.RemovePlayer(playerID)
	if err != nil {
		return game.Game{}, err
	}
	return s.save(ctx, g)
}

// TransferGM hands the GM role to another member.
func (s *Service) TransferGM(ctx context.Context, gameID, currentGmID, newGmID string) (game.Game, error) {
	g, err := s.Get(ctx, gameID)
	if err != nil {
		return game.Game{}, err
	}
	g, err = g.TransferGM(currentGmID, newGmID)
	if err != nil {
		return game.Game{}, err
	}
	return s.save(ctx, g)
}

// Delete removes a game and its items in one atomic batch. Only the GM
// may delete a game. Character documents are owned by the character
// service and removed through it.
func (s *Service) Delete(ctx context.Context, gameID, requesterID string) error {
	g, err := s.Get(ctx, gameID)
	if err != nil {
		return err
	}
	if !g.IsGameMaster(requesterID) {
		return apperrors.WithMetadata(apperrors.CodeGameGmOnlyOperation,
			"only the gm may delete a game",
			map[string]string{"GameID": gameID, "UserID": requesterID})
	}

	items, err := s.store.List(ctx, ItemsCollection(gameID))
	if err != nil {
		return err
	}
	writes := make([]docstore.Write, 0, len(items)+1)
	writes = append(writes, docstore.Write{Kind: docstore.WriteDelete, Path: gamePath(gameID)})
	for _, snap := range items {
		writes = append(writes, docstore.Write{Kind: docstore.WriteDelete, Path: snap.Path})
	}
	return s.store.Apply(ctx, writes)
}

// SubscribeGame watches one game. onChange receives nil when the game is
// absent or deleted.
func (s *Service) SubscribeGame(ctx context.Context, gameID string, onChange func(*game.Game), onError func(error)) (docstore.Unsubscribe, error) {
	return s.store.Watch(ctx, gamePath(gameID), func(snap docstore.Snapshot) {
		if !snap.Exists {
			onChange(nil)
			return
		}
		g, err := decodeGame(snap)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(&g)
	}, onError)
}

// SubscribeUserGames watches the set of games a user belongs to, emitted
// newest activity first.
func (s *Service) SubscribeUserGames(ctx context.Context, userID string, onChange func([]game.Game), onError func(error)) (docstore.Unsubscribe, error) {
	return s.store.WatchQuery(ctx, Collection, membershipFilter(userID), func(snaps []docstore.Snapshot) {
		games, err := decodeGames(snaps)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		sortGames(games)
		onChange(games)
	}, onError)
}

func (s *Service) put(ctx context.Context, g game.Game) error {
	data, err := docstore.Encode(g)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, gamePath(g.ID), data)
}

func (s *Service) save(ctx context.Context, g game.Game) (game.Game, error) {
	g.UpdatedAt = s.now().UnixMilli()
	if err := s.put(ctx, g); err != nil {
		return game.Game{}, err
	}
	return g, nil
}

// membershipFilter matches games the user belongs to. The GM is always a
// member, but gmId is checked too so games predating the auto-membership
// rule still match.
func membershipFilter(userID string) docstore.Filter {
	return func(data map[string]any) bool {
		if data["gmId"] == userID {
			return true
		}
		players, ok := data["playerIds"].([]any)
		if !ok {
			return false
		}
		for _, p := range players {
			if p == userID {
				return true
			}
		}
		return false
	}
}

func decodeGame(snap docstore.Snapshot) (game.Game, error) {
	var g game.Game
	if err := docstore.Decode(snap.Data, &g); err != nil {
		return game.Game{}, err
	}
	return g, nil
}

func decodeGames(snaps []docstore.Snapshot) ([]game.Game, error) {
	games := make([]game.Game, 0, len(snaps))
	for _, snap := range snaps {
		g, err := decodeGame(snap)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, nil
}

func sortGames(games []game.Game) {
	sort.Slice(games, func(i, j int) bool {
		if games[i].UpdatedAt != games[j].UpdatedAt {
			return games[i].UpdatedAt > games[j].UpdatedAt
		}
		return games[i].ID < games[j].ID
	})
}

func notFound(gameID string) error {
	return apperrors.WithMetadata(apperrors.CodeNotFound,
		fmt.Sprintf("game %s not found", gameID),
		map[string]string{"GameID": gameID})
}
