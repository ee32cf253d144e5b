package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/slithergg/tournament-backend/internal/config"
	"github.com/slithergg/tournament-backend/internal/game"
	"github.com/slithergg/tournament-backend/internal/httpapi"
	"github.com/slithergg/tournament-backend/internal/hub"
	"github.com/slithergg/tournament-backend/internal/logging"
	"github.com/slithergg/tournament-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogFile)
	defer func() { _ = logger.Sync() }()

	var archive game.Archiver
	if cfg.DatabaseURL != "" {
		a, err := store.Open(cfg.DatabaseURL)
		if err != nil {
			logger.Fatalw("open results archive", "err", err)
		}
		archive = a
		logger.Info("results archive enabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	h := hub.New(ctx, hub.Options{
		Log:          logger,
		TickInterval: cfg.TickInterval,
		Quorum:       cfg.Quorum,
		CleanupDelay: cfg.CleanupDelay,
		Archive:      archive,
	})

	if cfg.DemoTournaments {
		seedDemoTournaments(h)
	}

	srv := &http.Server{Addr: cfg.Addr, Handler: httpapi.SetupRoutes(h, logger)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infow("game server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatalw("server error", "err", err)
	}
}

func seedDemoTournaments(h *hub.Hub) {
	for _, cfg := range []game.Config{
		{
			ID:           "speed-dash-1",
			Name:         "Speed Dash Championship",
			PrizePool:    0.8,
			MaxPlayers:   50,
			DelayMinutes: 2,
		},
		{
			ID:           "mega-battle-1",
			Name:         "Mega Battle Royale",
			PrizePool:    2.5,
			MaxPlayers:   100,
			DelayMinutes: 5,
		},
	} {
		reply := make(chan game.Summary, 1)
		h.Post(hub.Create{Cfg: cfg, Reply: reply})
		<-reply
	}
}
