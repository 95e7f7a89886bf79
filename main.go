// blaze-and-steel plays Blaze and Steel in the current terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"blaze-and-steel/internal/audio"
	"blaze-and-steel/internal/config"
	"blaze-and-steel/internal/game"
	"blaze-and-steel/internal/save"
	"blaze-and-steel/internal/tui"
)

func main() {
	cfgPath := flag.String("config", os.Getenv("BLAZE_CONFIG"), "Path to the YAML config file (BLAZE_CONFIG)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *cfgPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Log to a file so the screen stays clean.
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	logFile, err := os.OpenFile(filepath.Join(cfg.DataDir, "blaze.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	level, _ := config.ParseLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: level})))

	store, err := save.Open(cfg)
	if err != nil {
		return fmt.Errorf("opening %s store: %w", cfg.Storage.Backend, err)
	}
	defer store.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	player := audio.New(cfg.Game.Volume)
	player.Attach(screen)

	g := game.New(game.Options{
		Context:              ctx,
		Saves:                save.NewGateway(store, cfg.Storage.Key),
		Rand:                 game.NewRand(cfg.Game.Seed),
		Audio:                player,
		CancelStaleCallbacks: cfg.Game.CancelStaleCallbacks,
		RunLogDir:            cfg.DataDir,
	})

	slog.Info("game started", "backend", cfg.Storage.Backend, "key", cfg.Storage.Key)
	defer slog.Info("game closed")
	return tui.Run(ctx, tui.Options{Screen: screen, Game: g, Audio: player})
}
