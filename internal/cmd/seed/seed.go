// Package seed wires the seed generator into a runnable command.
package seed

import (
	"context"
	"flag"
	"fmt"

	"github.com/greathall/greathall/internal/docstore"
	"github.com/greathall/greathall/internal/docstore/memory"
	"github.com/greathall/greathall/internal/docstore/sqlite"
	platformcmd "github.com/greathall/greathall/internal/platform/cmd"
	"github.com/greathall/greathall/internal/seed"
)

// ParseConfig loads environment defaults and then parses flags into the
// generator configuration.
func ParseConfig(fs *flag.FlagSet, args []string) (seed.Config, error) {
	var cfg seed.Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return seed.Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "sqlite database path")
	fs.BoolVar(&cfg.Memory, "memory", cfg.Memory, "seed an in-memory store (for smoke testing the generator)")
	fs.IntVar(&cfg.Games, "games", cfg.Games, "number of games to generate")
	fs.IntVar(&cfg.CharactersPer, "characters", cfg.CharactersPer, "characters per game")
	fs.IntVar(&cfg.PlayersPerGame, "players", cfg.PlayersPerGame, "players per game, gm excluded")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for reproducibility (0 = random)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose output")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return seed.Config{}, err
	}
	return cfg, nil
}

// Run opens the configured store and executes the generator under the
// shared telemetry entrypoint.
func Run(ctx context.Context, cfg seed.Config) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceSeed, func(ctx context.Context) error {
		store, cleanup, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		return seed.New(store, cfg).Run(ctx)
	})
}

func openStore(cfg seed.Config) (docstore.Store, func(), error) {
	if cfg.Memory {
		return memory.New(), func() {}, nil
	}
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite store: %w", err)
	}
	return store, func() { _ = store.Close() }, nil
}
