package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/regionflags/internal/admin"
	"github.com/udisondev/regionflags/internal/admin/commands"
	"github.com/udisondev/regionflags/internal/config"
	"github.com/udisondev/regionflags/internal/db"
	"github.com/udisondev/regionflags/internal/engine"
	"github.com/udisondev/regionflags/internal/gateway"
	"github.com/udisondev/regionflags/internal/model"
	"github.com/udisondev/regionflags/internal/region"
	"github.com/udisondev/regionflags/internal/world"
	"github.com/udisondev/regionflags/internal/zone"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadServer(config.Path())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("regionflags starting",
		"log_level", cfg.LogLevel,
		"storage", cfg.StorageType,
		"listen", cfg.ListenAddress)

	// Без хранилища конфигурация регионов не переживёт рестарт, поэтому
	// ошибка здесь останавливает запуск.
	storage, err := db.Open(ctx, cfg.StorageType, cfg.StorageDSN())
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer storage.Close()
	slog.Info("storage ready", "type", cfg.StorageType)

	zones, err := zone.LoadFile(cfg.RegionsFile)
	if err != nil {
		return fmt.Errorf("loading regions: %w", err)
	}

	store := region.NewStore(zones, storage)
	syncer := region.NewSyncer(store, storage)
	if _, err := syncer.LoadAll(ctx); err != nil {
		return err
	}

	w := world.New()
	for _, sp := range cfg.Spawns {
		npc := w.SpawnNpc(sp.TemplateID, sp.Name, model.NewLocation(sp.X, sp.Y), sp.MaxHP, sp.Friendly)
		slog.Debug("npc spawned", "npc", npc.ObjectID(), "name", sp.Name, "x", sp.X, "y", sp.Y)
	}
	slog.Info("world ready", "npcs", w.NpcCount())

	eng := engine.New(engine.Config{
		MaxPlayers: cfg.MaxPlayers,
		TileSize:   cfg.TileSize,
		HealAmount: cfg.HealAmount,
	}, zones, store, w, nil)

	handler := admin.NewHandler()
	commands.RegisterAll(handler, store, syncer, eng)
	slog.Info("admin commands registered", "count", handler.Count())

	gw := gateway.New(gateway.Config{Admins: cfg.Admins}, eng, w, handler)
	eng.SetNotifier(gw)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", gw.Handle)
	srv := &http.Server{
		Addr:              cfg.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting region effect engine", "tick", cfg.TickRate)
		if err := eng.Run(gctx, cfg.TickRate); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("region effect engine: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		slog.Info("starting websocket gateway", "address", cfg.ListenAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("websocket gateway: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		reloadOnHangup(gctx, syncer)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("http shutdown", "err", err)
		}
		gw.Close()
		eng.Stop()
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("regionflags stopped")
	return nil
}

// reloadOnHangup reloads region configuration from storage on every SIGHUP.
func reloadOnHangup(ctx context.Context, syncer *region.Syncer) {
	hupCh := make(chan os.Signal, 1)
	signal.Notify(hupCh, syscall.SIGHUP)
	defer signal.Stop(hupCh)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hupCh:
			if err := syncer.Reload(ctx); err != nil {
				slog.Error("region reload failed", "err", err)
				continue
			}
			slog.Info("region configuration reloaded")
		}
	}
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
