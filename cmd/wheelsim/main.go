// Command wheelsim plays batches of seeded encounters headlessly and
// prints aggregate balance numbers.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/adapters/decks"
	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/adapters/rng"
	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/config"
	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/domain"
	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/sim"
)

var (
	games     int
	workers   int
	seed      uint64
	archetype string
	maxRounds int
	catalogue string
	asJSON    bool
)

func init() {
	flag.IntVar(&games, "games", 1000, "Number of encounters to play")
	flag.IntVar(&workers, "workers", 0, "Number of worker goroutines (0 = CPU count)")
	flag.Uint64Var(&seed, "seed", 0, "Master seed (0 = random)")
	flag.StringVar(&archetype, "archetype", "", "Pin every game to one enemy (bandit, sorcerer, beast); empty rotates")
	flag.IntVar(&maxRounds, "max-rounds", 500, "Rounds before a game counts as a stalemate")
	flag.StringVar(&catalogue, "catalogue", "", "Card catalogue YAML (default: embedded, or CATALOGUE_PATH)")
	flag.BoolVar(&asJSON, "json", false, "Print stats as JSON")
}

func main() {
	flag.Parse()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	var arch domain.Archetype
	if archetype != "" {
		if arch, err = domain.ParseArchetype(archetype); err != nil {
			logger.Error("bad archetype", "error", err)
			os.Exit(2)
		}
	}
	if seed == 0 {
		seed = rng.NewSeed()
	}
	if catalogue == "" {
		catalogue = cfg.CataloguePath
	}

	store := decks.NewEmbeddedStore(domain.DefaultPreEffects())
	if catalogue != "" {
		if store, err = decks.NewFileStore(catalogue, domain.DefaultPreEffects()); err != nil {
			logger.Error("failed to read catalogue", "error", err)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("running", "games", games, "seed", seed, "archetype", arch, "workers", workers)
	start := time.Now()
	stats, err := sim.RunBatch(ctx, store, sim.Config{
		Games:     games,
		Workers:   workers,
		Seed:      seed,
		Archetype: arch,
		MaxRounds: maxRounds,
		Rules:     cfg.Rules,
	})
	if err != nil {
		logger.Error("simulation failed", "error", err)
		os.Exit(1)
	}
	logger.Info("done", "elapsed", time.Since(start).Round(time.Millisecond))

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(stats); err != nil {
			logger.Error("encode stats", "error", err)
			os.Exit(1)
		}
		return
	}
	printStats(seed, stats)
}

func printStats(seed uint64, s sim.Stats) {
	pct := func(n int) float64 { return 100 * float64(n) / float64(s.Games) }

	fmt.Printf("Seed:        %d\n", seed)
	fmt.Printf("Games:       %d (avg %.1f rounds)\n", s.Games, s.AvgRounds)
	fmt.Printf("Player wins: %d (%.1f%%)\n", s.PlayerWins, pct(s.PlayerWins))
	fmt.Printf("Enemy wins:  %d (%.1f%%)\n", s.EnemyWins, pct(s.EnemyWins))
	fmt.Printf("Draws:       %d\n", s.Draws)
	fmt.Printf("Stalemates:  %d\n", s.Stalemates)
	fmt.Printf("0-step:      %d rounds\n", s.ZeroStepRounds)
	fmt.Printf("Skipped:     %d rounds\n", s.SkippedRounds)

	fmt.Println("\nLandings:")
	for _, id := range domain.SectionIDs {
		fmt.Printf("  %-16s %d\n", id, s.SectionHits[id])
	}

	fmt.Println("\nBy enemy:")
	archs := make([]domain.Archetype, 0, len(s.ByArchetype))
	for a := range s.ByArchetype {
		archs = append(archs, a)
	}
	slices.Sort(archs)
	for _, a := range archs {
		st := s.ByArchetype[a]
		fmt.Printf("  %-10s %5d games  %5.1f%% player wins\n", a, st.Games, 100*st.WinRate)
	}
}
