// Package sim plays many seeded encounters headlessly and aggregates the
// results. The player side picks a uniformly random hand card each round.
package sim

import (
	"context"
	"fmt"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/adapters/rng"
	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/app"
	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/domain"
	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/ports"
)

type Config struct {
	Games   int
	Workers int
	Seed    uint64
	// Archetype pins every game to one enemy. Empty rotates through all.
	Archetype domain.Archetype
	MaxRounds int
	Rules     domain.Rules
}

// GameResult is the summary of one simulated encounter.
type GameResult struct {
	Seed        uint64
	Archetype   domain.Archetype
	Rounds      int
	Victor      domain.Side
	Stalemate   bool
	ZeroSteps   int
	Skipped     int
	SectionHits map[domain.SectionID]int
	PlayerHP    int
	EnemyHP     int
}

// RunGame plays a single encounter to its end or to maxRounds.
func RunGame(ctx context.Context, store ports.DeckStore, rules domain.Rules, arch domain.Archetype, seed uint64, maxRounds int) (GameResult, error) {
	r := rng.New(seed)
	n := 0
	nextID := func() string {
		n++
		return "c" + strconv.Itoa(n)
	}

	setup, err := app.LoadSetup(ctx, store, rules, arch, nextID)
	if err != nil {
		return GameResult{}, err
	}
	enc, err := domain.NewEncounter(setup, r)
	if err != nil {
		return GameResult{}, err
	}

	res := GameResult{Seed: seed, Archetype: arch, SectionHits: make(map[domain.SectionID]int)}
	for enc.Phase != domain.PhaseEnded {
		if err := ctx.Err(); err != nil {
			return GameResult{}, err
		}
		if res.Rounds >= maxRounds || len(enc.Player.Hand) == 0 {
			res.Stalemate = true
			break
		}

		if enc, _, err = enc.StartPreview(r); err != nil {
			return GameResult{}, err
		}
		pick := enc.Player.Hand[r.Intn(len(enc.Player.Hand))]
		if enc, err = enc.ChooseCard(pick.ID); err != nil {
			return GameResult{}, err
		}
		var out domain.RoundOutcome
		if enc, out, err = enc.ResolveRound(r); err != nil {
			return GameResult{}, err
		}

		res.Rounds++
		switch {
		case out.Skipped:
			res.Skipped++
		case out.Move == 0:
			res.ZeroSteps++
		case out.Section != nil:
			res.SectionHits[*out.Section]++
		}
	}

	res.Victor, _ = enc.Victor()
	res.PlayerHP, res.EnemyHP = enc.Player.HP, enc.Enemy.HP
	return res, nil
}

// RunBatch plays cfg.Games encounters across a bounded worker pool. Game
// seeds are drawn up front from cfg.Seed, so results do not depend on the
// worker count.
func RunBatch(ctx context.Context, store ports.DeckStore, cfg Config) (Stats, error) {
	if cfg.Games < 1 {
		return Stats{}, fmt.Errorf("games must be positive, got %d", cfg.Games)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	maxRounds := cfg.MaxRounds
	if maxRounds <= 0 {
		maxRounds = 500
	}

	master := rng.New(cfg.Seed)
	results := make([]GameResult, cfg.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range cfg.Games {
		seed := master.Uint64()
		arch := cfg.Archetype
		if arch == "" {
			arch = domain.Archetypes[i%len(domain.Archetypes)]
		}
		g.Go(func() error {
			res, err := RunGame(ctx, store, cfg.Rules, arch, seed, maxRounds)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i, seed, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return Aggregate(results), nil
}
