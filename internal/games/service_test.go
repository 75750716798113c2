package games

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/greathall/greathall/internal/docstore/memory"
	"github.com/greathall/greathall/internal/game"
	apperrors "github.com/greathall/greathall/internal/platform/errors"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	service := NewService(memory.New())
	ids := 0
	service.newID = func() (string, error) {
		ids++
		return fmt.Sprintf("id%d", ids), nil
	}
	clock := int64(1000)
	service.now = func() time.Time {
		clock++
		return time.UnixMilli(clock)
	}
	return service
}

func createTestGame(t *testing.T, service *Service, name, gmID string) game.Game {
	t.Helper()
	g, err := service.Create(context.Background(), game.NewGameInput{Name: name, GmID: gmID})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	return g
}

func TestCreateGame(t *testing.T) {
	service := newTestService(t)

	g := createTestGame(t, service, "Curse of the Crag", "gm")
	if g.ID == "" {
		t.Fatal("expected assigned id")
	}
	if !g.IsGameMaster("gm") || !g.IsPlayer("gm") {
		t.Error("expected gm to be a member of the new game")
	}
	if g.System != game.DefaultSystem {
		t.Errorf("expected default system, got %q", g.System)
	}

	got, err := service.Get(context.Background(), g.ID)
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if got.Name != "Curse of the Crag" {
		t.Errorf("expected persisted name, got %q", got.Name)
	}
}

func TestGetAbsentGame(t *testing.T) {
	service := newTestService(t)

	_, err := service.Get(context.Background(), "missing")
	if !apperrors.Is(err, apperrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListUserGamesNewestFirst(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	first := createTestGame(t, service, "First", "gm")
	second := createTestGame(t, service, "Second", "gm")
	createTestGame(t, service, "Other", "someone-else")

	// Touching the older game moves it to the front.
	if _, err := service.AddPlayer(ctx, first.ID, "u1"); err != nil {
		t.Fatalf("add player: %v", err)
	}

	userGames, err := service.ListUserGames(ctx, "gm")
	if err != nil {
		t.Fatalf("list user games: %v", err)
	}
	if len(userGames) != 2 {
		t.Fatalf("expected two games, got %d", len(userGames))
	}
	if userGames[0].ID != first.ID || userGames[1].ID != second.ID {
		t.Errorf("expected newest activity first, got %s then %s", userGames[0].ID, userGames[1].ID)
	}

	// A plain player sees the game too.
	playerGames, err := service.ListUserGames(ctx, "u1")
	if err != nil {
		t.Fatalf("list player games: %v", err)
	}
	if len(playerGames) != 1 || playerGames[0].ID != first.ID {
		t.Fatalf("expected player membership to count, got %+v", playerGames)
	}
}

func TestUpdateInfo(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	g := createTestGame(t, service, "Working Title", "gm")
	name := "  Curse of the Crag  "
	description := "A low-level romp."
	updated, err := service.UpdateInfo(ctx, g.ID, UpdateGameInput{Name: &name, Description: &description})
	if err != nil {
		t.Fatalf("update game: %v", err)
	}
	if updated.Name != "Curse of the Crag" {
		t.Errorf("expected trimmed name, got %q", updated.Name)
	}
	if updated.Description != description {
		t.Errorf("expected description set, got %q", updated.Description)
	}
	if updated.UpdatedAt <= g.UpdatedAt {
		t.Errorf("expected updatedAt to advance, got %d <= %d", updated.UpdatedAt, g.UpdatedAt)
	}

	empty := "   "
	if _, err := service.UpdateInfo(ctx, g.ID, UpdateGameInput{Name: &empty}); !apperrors.Is(err, apperrors.CodeGameNameEmpty) {
		t.Fatalf("expected empty name rejected, got %v", err)
	}
}

func TestMembershipOperations(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	g := createTestGame(t, service, "Curse of the Crag", "gm")

	g2, err := service.AddPlayer(ctx, g.ID, "u1")
	if err != nil {
		t.Fatalf("add player: %v", err)
	}
	if !g2.IsPlayer("u1") {
		t.Error("expected u1 added")
	}

	if _, err := service.AddPlayer(ctx, g.ID, "u1"); !apperrors.Is(err, apperrors.CodeGamePlayerAlreadyMember) {
		t.Fatalf("expected duplicate player rejected, got %v", err)
	}

	if _, err := service.RemovePlayer(ctx, g.ID, "gm"); !apperrors.Is(err, apperrors.CodeGameGmRemovalForbidden) {
		t.Fatalf("expected gm removal rejected, got %v", err)
	}

	if _, err := service.TransferGM(ctx, g.ID, "u1", "gm"); !apperrors.Is(err, apperrors.CodeGameGmOnlyOperation) {
		t.Fatalf("expected non-gm transfer rejected, got %v", err)
	}
	if _, err := service.TransferGM(ctx, g.ID, "gm", "stranger"); !apperrors.Is(err, apperrors.CodeGamePlayerNotMember) {
		t.Fatalf("expected transfer to non-member rejected, got %v", err)
	}

	g3, err := service.TransferGM(ctx, g.ID, "gm", "u1")
	if err != nil {
		t.Fatalf("transfer gm: %v", err)
	}
	if !g3.IsGameMaster("u1") || !g3.IsPlayer("gm") {
		t.Errorf("expected u1 as gm with old gm still a member, got %+v", g3)
	}

	g4, err := service.RemovePlayer(ctx, g.ID, "gm")
	if err != nil {
		t.Fatalf("remove former gm: %v", err)
	}
	if g4.IsPlayer("gm") {
		t.Error("expected former gm removable after transfer")
	}
}

func TestDeleteGame(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	g := createTestGame(t, service, "Curse of the Crag", "gm")
	if _, err := service.CreateItem(ctx, game.NewItemInput{
		GameID:    g.ID,
		Name:      "Crag Overview",
		Type:      game.ItemMap,
		CreatedBy: "gm",
	}); err != nil {
		t.Fatalf("create item: %v", err)
	}

	if err := service.Delete(ctx, g.ID, "u1"); !apperrors.Is(err, apperrors.CodeGameGmOnlyOperation) {
		t.Fatalf("expected non-gm delete rejected, got %v", err)
	}

	if err := service.Delete(ctx, g.ID, "gm"); err != nil {
		t.Fatalf("delete game: %v", err)
	}
	if _, err := service.Get(ctx, g.ID); !apperrors.Is(err, apperrors.CodeNotFound) {
		t.Fatalf("expected game gone, got %v", err)
	}
	items, err := service.store.List(ctx, ItemsCollection(g.ID))
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected items removed with the game, got %d", len(items))
	}
}

func TestSubscribeGame(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	g := createTestGame(t, service, "Curse of the Crag", "gm")

	var emissions []*game.Game
	unsubscribe, err := service.SubscribeGame(ctx, g.ID, func(g *game.Game) {
		emissions = append(emissions, g)
	}, nil)
	if err != nil {
		t.Fatalf("subscribe game: %v", err)
	}
	defer unsubscribe()

	if len(emissions) != 1 || emissions[0] == nil {
		t.Fatalf("expected immediate emission of current state, got %+v", emissions)
	}

	name := "Renamed"
	if _, err := service.UpdateInfo(ctx, g.ID, UpdateGameInput{Name: &name}); err != nil {
		t.Fatalf("update game: %v", err)
	}
	if len(emissions) != 2 || emissions[1].Name != "Renamed" {
		t.Fatalf("expected rename emission, got %+v", emissions)
	}

	if err := service.Delete(ctx, g.ID, "gm"); err != nil {
		t.Fatalf("delete game: %v", err)
	}
	if len(emissions) != 3 || emissions[2] != nil {
		t.Fatalf("expected nil emission on delete, got %+v", emissions)
	}
}

func TestSubscribeUserGames(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t)

	g := createTestGame(t, service, "Curse of the Crag", "gm")

	var emissions [][]game.Game
	unsubscribe, err := service.SubscribeUserGames(ctx, "u1", func(games []game.Game) {
		emissions = append(emissions, games)
	}, nil)
	if err != nil {
		t.Fatalf("subscribe user games: %v", err)
	}
	defer unsubscribe()

	if len(emissions) != 1 || len(emissions[0]) != 0 {
		t.Fatalf("expected empty initial emission, got %+v", emissions)
	}

	if _, err := service.AddPlayer(ctx, g.ID, "u1"); err != nil {
		t.Fatalf("add player: %v", err)
	}
	last := emissions[len(emissions)-1]
	if len(last) != 1 || last[0].ID != g.ID {
		t.Fatalf("expected game to appear after joining, got %+v", last)
	}
}
