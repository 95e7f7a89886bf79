// blaze-server serves Blaze and Steel over SSH. Every connection plays its own
// single-player game, saved under a key derived from the SSH user name.
// Build:
//
//	go build -o blaze-server ./cmd/server
//
// Usage:
//
//	./blaze-server [-config blaze.yaml]
//
// Connect with:
//
//	ssh -t -p 2222 hero@localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"
	"golang.org/x/sync/errgroup"

	"blaze-and-steel/internal/audio"
	"blaze-and-steel/internal/config"
	"blaze-and-steel/internal/game"
	"blaze-and-steel/internal/save"
	internalssh "blaze-and-steel/internal/ssh"
	"blaze-and-steel/internal/tui"
)

// shutdownTimeout bounds how long open sessions may delay shutdown.
const shutdownTimeout = 5 * time.Second

// maxNameBytes caps the user part of a save key.
const maxNameBytes = 16

func main() {
	cfgPath := flag.String("config", os.Getenv("BLAZE_CONFIG"), "Path to the YAML config file (BLAZE_CONFIG)")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, *cfgPath); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	store, err := save.Open(cfg)
	if err != nil {
		return fmt.Errorf("opening %s store: %w", cfg.Storage.Backend, err)
	}
	defer store.Close()
	slog.Info("save store ready", "backend", cfg.Storage.Backend, "path", cfg.StoragePath())

	signer, err := loadOrCreateHostKey(cfg.Server.HostKey)
	if err != nil {
		return fmt.Errorf("host key: %w", err)
	}

	h := &handler{cfg: cfg, store: store}
	srv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: h.handleSession,
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// Accept any authentication; the user name only selects the save.
		HostSigners: []gossh.Signer{signer},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("ssh server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, gossh.ErrServerClosed) {
			return fmt.Errorf("ssh server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("graceful shutdown timed out, closing sessions", "error", err)
			return srv.Close()
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// handler runs one game per SSH connection over a shared store.
type handler struct {
	cfg   config.Config
	store save.BlobStore
}

// allowedTerms lists the TERM values passed to terminfo. Anything else falls
// back to xterm-256color so a client cannot point the lookup elsewhere.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode-256color": true,
}

// termMu protects os.Setenv("TERM") around screen creation.
var termMu sync.Mutex

// handleSession is the gliderlabs SSH handler for one connection. It blocks
// for the duration of the game so the session stays open.
func (h *handler) handleSession(s gossh.Session) {
	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintf(s, "This game requires a PTY. Connect with: ssh -t -p %d <host>\n", h.cfg.Server.Port)
		return
	}

	name := sanitizeName(s.User())
	if name == "" {
		name = "guest"
	}
	log := slog.With("user", name, "remote", s.RemoteAddr().String())

	term := pty.Term
	if !allowedTerms[term] {
		term = "xterm-256color"
	}

	// TERM must be set in the process environment before NewTerminfoScreenFromTty.
	tty := internalssh.NewSessionTty(s, pty, winCh)
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(s, "Screen init failed: %v\n", err)
		return
	}
	defer screen.Fini()

	player := audio.New(h.cfg.Game.Volume)
	player.Attach(screen)

	g := game.New(game.Options{
		Context:              s.Context(),
		Saves:                save.NewGateway(h.store, saveKey(h.cfg.Storage.Key, name)),
		Rand:                 game.NewRand(h.cfg.Game.Seed),
		Audio:                player,
		Logger:               log,
		CancelStaleCallbacks: h.cfg.Game.CancelStaleCallbacks,
		RunLogDir:            filepath.Join(h.cfg.DataDir, "runs", name),
	})

	log.Info("session started", "term", term)
	err = tui.Run(s.Context(), tui.Options{Screen: screen, Game: g, Audio: player, Logger: log})
	if err != nil {
		log.Warn("session ended with error", "error", err)
		return
	}
	log.Info("session ended")
}

// saveKey derives the per-user snapshot key, e.g. "blazeAndSteelSave-hero".
func saveKey(base, name string) string {
	return base + "-" + name
}

// sanitizeName strips control characters from an SSH user name and cuts it to
// at most maxNameBytes bytes without splitting a rune.
func sanitizeName(s string) string {
	out := make([]rune, 0, len(s))
	size := 0
	for _, r := range s {
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			continue
		}
		n := len(string(r))
		if size+n > maxNameBytes {
			break
		}
		out = append(out, r)
		size += n
	}
	return string(out)
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			slog.Info("loaded host key", "path", path)
			return signer, nil
		}
	}

	slog.Info("generating new ed25519 host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persist for next run (non-fatal if it fails).
	pemBlock, err := xssh.MarshalPrivateKey(key, "blaze-and-steel server")
	if err != nil {
		slog.Warn("encode host key", "error", err)
		return signer, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		slog.Warn("create host key dir", "path", path, "error", err)
		return signer, nil
	}
	if err := os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600); err != nil {
		slog.Warn("write host key", "path", path, "error", err)
	}
	return signer, nil
}
