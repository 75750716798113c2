// Package seed generates demo games, characters, and items for local
// development, writing through the regular services so seeded data obeys
// the same validation and document layout as real data.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/greathall/greathall/internal/characters"
	"github.com/greathall/greathall/internal/docstore"
	"github.com/greathall/greathall/internal/game"
	"github.com/greathall/greathall/internal/games"
	"github.com/greathall/greathall/internal/sheet"
	"github.com/greathall/greathall/internal/telemetry"
)

// Config holds generation parameters.
type Config struct {
	DBPath         string `env:"GREATHALL_SEED_DB_PATH" envDefault:"greathall.db"`
	Memory         bool   `env:"GREATHALL_SEED_MEMORY"`
	Games          int    `env:"GREATHALL_SEED_GAMES" envDefault:"1"`
	CharactersPer  int    `env:"GREATHALL_SEED_CHARACTERS" envDefault:"4"`
	PlayersPerGame int    `env:"GREATHALL_SEED_PLAYERS" envDefault:"3"`
	Seed           int64  `env:"GREATHALL_SEED_SEED"`
	Verbose        bool   `env:"GREATHALL_SEED_VERBOSE"`
}

// Generator seeds demo data into a document store.
type Generator struct {
	config     Config
	rng        *rand.Rand
	games      *games.Service
	characters *characters.Service
}

// New creates a generator over a document store. A zero seed picks one
// from the clock and, in verbose mode, prints it for reproducibility.
func New(store docstore.Store, cfg Config) *Generator {
	seedVal := cfg.Seed
	if seedVal == 0 {
		seedVal = time.Now().UnixNano()
		if cfg.Verbose {
			fmt.Fprintf(os.Stderr, "using seed: %d\n", seedVal)
		}
	}
	return &Generator{
		config:     cfg,
		rng:        rand.New(rand.NewSource(seedVal)),
		games:      games.NewService(store),
		characters: characters.NewService(store, telemetry.NewEmitter(store)),
	}
}

// Run generates the configured number of games, each with players,
// characters, and a few shared items.
func (g *Generator) Run(ctx context.Context) error {
	numGames := g.config.Games
	if numGames < 1 {
		numGames = 1
	}
	for i := 0; i < numGames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.generateGame(ctx); err != nil {
			return fmt.Errorf("generate game %d: %w", i+1, err)
		}
	}
	if g.config.Verbose {
		fmt.Fprintf(os.Stderr, "seeded %d game(s)\n", numGames)
	}
	return nil
}

func (g *Generator) generateGame(ctx context.Context) error {
	gmID := g.playerID(0)
	created, err := g.games.Create(ctx, game.NewGameInput{
		Name: g.gameName(),
		GmID: gmID,
	})
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	if g.config.Verbose {
		fmt.Fprintf(os.Stderr, "game %s: %s\n", created.ID, created.Name)
	}

	numPlayers := g.config.PlayersPerGame
	if numPlayers < 1 {
		numPlayers = 1
	}
	players := make([]string, 0, numPlayers)
	for i := 0; i < numPlayers; i++ {
		playerID := g.playerID(i + 1)
		if _, err := g.games.AddPlayer(ctx, created.ID, playerID); err != nil {
			return fmt.Errorf("add player %s: %w", playerID, err)
		}
		players = append(players, playerID)
	}

	numCharacters := g.config.CharactersPer
	if numCharacters < 1 {
		numCharacters = 1
	}
	for i := 0; i < numCharacters; i++ {
		owner := players[i%len(players)]
		if err := g.generateCharacter(ctx, created.ID, owner); err != nil {
			return err
		}
	}

	return g.generateItems(ctx, created.ID, gmID)
}

func (g *Generator) generateCharacter(ctx context.Context, gameID, ownerID string) error {
	name := g.characterName()
	created, err := g.characters.Create(ctx, sheet.NewCharacterInput{
		GameID:  gameID,
		OwnerID: ownerID,
		Name:    name,
	})
	if err != nil {
		return fmt.Errorf("create character %s: %w", name, err)
	}

	level := g.rng.Intn(5) + 1
	update, err := g.characterUpdate(level)
	if err != nil {
		return err
	}
	if _, err := g.characters.Update(ctx, gameID, created.ID, update); err != nil {
		return fmt.Errorf("level character %s: %w", name, err)
	}
	if g.config.Verbose {
		fmt.Fprintf(os.Stderr, "  character %s: %s (level %d)\n", created.ID, name, level)
	}
	return nil
}

func (g *Generator) generateItems(ctx context.Context, gameID, gmID string) error {
	inputs := []game.NewItemInput{
		{
			GameID:    gameID,
			Name:      mapTitles[g.rng.Intn(len(mapTitles))],
			Type:      game.ItemMap,
			VisibleTo: game.VisibleToAll,
			CreatedBy: gmID,
		},
		{
			GameID:    gameID,
			Name:      noteTitles[g.rng.Intn(len(noteTitles))],
			Type:      game.ItemNote,
			VisibleTo: game.VisibleToGM,
			CreatedBy: gmID,
		},
	}
	for _, input := range inputs {
		if _, err := g.games.CreateItem(ctx, input); err != nil {
			return fmt.Errorf("create item %s: %w", input.Name, err)
		}
	}
	return nil
}

func (g *Generator) playerID(i int) string {
	return playerNames[i%len(playerNames)]
}
