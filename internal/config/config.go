package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g. BLAZE_LOG_LEVEL.
const EnvPrefix = "BLAZE_"

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds everything the binaries need to start a game.
type Config struct {
	LogLevel string  `yaml:"log_level" env:"LOG_LEVEL"`
	DataDir  string  `yaml:"data_dir" env:"DATA_DIR"`
	Storage  Storage `yaml:"storage" envPrefix:"STORAGE_"`
	Server   Server  `yaml:"server" envPrefix:"SERVER_"`
	Game     Game    `yaml:"game" envPrefix:"GAME_"`
}

// Storage selects where snapshots are written.
type Storage struct {
	Backend string `yaml:"backend" env:"BACKEND"`
	// Path is a directory for the file backend and a database file for sqlite.
	// Empty means a default under DataDir.
	Path string `yaml:"path" env:"PATH"`
	Key  string `yaml:"key" env:"KEY"`
}

// Server configures the SSH front-end.
type Server struct {
	Port    int    `yaml:"port" env:"PORT"`
	HostKey string `yaml:"host_key" env:"HOST_KEY"`
}

// Game tunes engine behavior.
type Game struct {
	// CancelStaleCallbacks drops pending mission rewards and enemy turns when
	// a session ends (new game, load, reset, rebirth).
	CancelStaleCallbacks bool    `yaml:"cancel_stale_callbacks" env:"CANCEL_STALE_CALLBACKS"`
	Volume               float64 `yaml:"volume" env:"VOLUME"`
	Seed                 int64   `yaml:"seed" env:"SEED"` // 0 seeds from the clock
}

// Default returns the configuration used when no file or environment is present.
func Default() Config {
	return Config{
		LogLevel: "info",
		DataDir:  DefaultDataDir(),
		Storage: Storage{
			Backend: BackendFile,
			Key:     "blazeAndSteelSave",
		},
		Server: Server{
			Port:    2222,
			HostKey: ".ssh/blaze_host_ed25519",
		},
		Game: Game{
			CancelStaleCallbacks: true,
			Volume:               0.5,
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies BLAZE_*
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the binaries cannot run with.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("storage.backend %q: want file, sqlite or memory", c.Storage.Backend)
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return fmt.Errorf("storage.key is required")
	}
	if c.Game.Volume < 0 || c.Game.Volume > 1 {
		return fmt.Errorf("game.volume %v out of range [0,1]", c.Game.Volume)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// StoragePath resolves the backend location, defaulting under DataDir.
func (c Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	switch c.Storage.Backend {
	case BackendSQLite:
		return filepath.Join(c.DataDir, "blaze.db")
	case BackendFile:
		return filepath.Join(c.DataDir, "saves")
	}
	return ""
}

// ParseLevel maps a log level name (debug, info, warn, error) to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level %q: %w", s, err)
	}
	return lvl, nil
}

// DefaultDataDir follows the XDG Base Directory layout:
// $XDG_DATA_HOME/blaze-and-steel, defaulting to ~/.local/share/blaze-and-steel.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ".blaze-and-steel"
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "blaze-and-steel")
}
