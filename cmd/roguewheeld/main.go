package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/adapters/decks"
	httpadapter "github.com/flimmbark-source/Rogue-Wheel-Archived/internal/adapters/http"
	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/adapters/rng"
	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/app"
	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/config"
	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/domain"
	"github.com/flimmbark-source/Rogue-Wheel-Archived/internal/spin"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logger.Warn("failed to read .env", "error", envErr)
	}

	deckStore, err := newDeckStore(cfg.CataloguePath)
	if err != nil {
		logger.Error("failed to load catalogue", "path", cfg.CataloguePath, "error", err)
		os.Exit(1)
	}

	svc := app.NewDuelService(deckStore, cfg.Rules,
		func(seed uint64) domain.RNG { return rng.New(seed) },
		logger,
		app.WithDefaultArchetype(cfg.DefaultArchetype),
		app.WithMaxDuels(cfg.MaxDuels),
	)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(svc, spin.Options{Tempo: cfg.SpinTempo})
	handler.Register(e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr, "default_archetype", cfg.DefaultArchetype)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

// newDeckStore reads the catalogue from path, or the embedded one when
// path is empty. The file is parsed up front so a bad catalogue fails at
// startup.
func newDeckStore(path string) (*decks.EmbeddedStore, error) {
	effects := domain.DefaultPreEffects()
	store := decks.NewEmbeddedStore(effects)
	if path != "" {
		var err error
		if store, err = decks.NewFileStore(path, effects); err != nil {
			return nil, err
		}
	}
	if err := store.Load(); err != nil {
		return nil, err
	}
	return store, nil
}
