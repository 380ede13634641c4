package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/tnguyen21/scenebook/internal/scene"
)

const DefaultConfigPath = "~/.config/scenebook/scenebook.yaml"

type Store struct {
	Backend string `yaml:"backend" env:"SCENEBOOK_STORE_BACKEND"`
	Path    string `yaml:"path" env:"SCENEBOOK_STORE_PATH"`
}

type Log struct {
	File  string `yaml:"file" env:"SCENEBOOK_LOG_FILE"`
	Level string `yaml:"level" env:"SCENEBOOK_LOG_LEVEL"`
}

type Config struct {
	Port            int          `yaml:"port" env:"SCENEBOOK_PORT"`
	HostKeyDir      string       `yaml:"host_key_dir" env:"SCENEBOOK_HOST_KEY_DIR"`
	AutosaveSeconds int          `yaml:"autosave_seconds" env:"SCENEBOOK_AUTOSAVE_SECONDS"`
	Store           Store        `yaml:"store"`
	Log             Log          `yaml:"log"`
	Modes           []scene.Mode `yaml:"modes"`
}

func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Port:            2222,
		HostKeyDir:      filepath.Join(home, ".ssh"),
		AutosaveSeconds: 30,
		Store: Store{
			Backend: "yaml",
			Path:    filepath.Join(home, ".local", "share", "scenebook", "scenes.yaml"),
		},
		Log: Log{
			File:  filepath.Join(home, ".local", "state", "scenebook", "scenebook.log"),
			Level: "info",
		},
	}
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

// Load reads the YAML file at path over the defaults, then applies
// SCENEBOOK_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	resolved := expandPath(path)
	data, err := os.ReadFile(resolved)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config %s: %w", resolved, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", resolved, err)
		}
	}

	// Modes only come from the file; keep them away from the env parser.
	modes := cfg.Modes
	cfg.Modes = nil
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing environment: %w", err)
	}
	cfg.Modes = modes

	cfg.HostKeyDir = expandPath(cfg.HostKeyDir)
	cfg.Store.Path = expandPath(cfg.Store.Path)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := validate(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Catalog returns the configured modes, or the built-in catalog when none
// are configured.
func (c Config) Catalog() (*scene.Catalog, error) {
	if len(c.Modes) == 0 {
		return scene.DefaultCatalog(), nil
	}
	return scene.NewCatalog(c.Modes...)
}

func validate(cfg Config) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("port %d out of range (1-65535)", cfg.Port)
	}

	switch cfg.Store.Backend {
	case "yaml", "sqlite":
	default:
		return fmt.Errorf("store.backend %q must be yaml or sqlite", cfg.Store.Backend)
	}
	if cfg.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}

	if cfg.AutosaveSeconds < 0 {
		return fmt.Errorf("autosave_seconds must be >= 0")
	}

	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	if _, err := cfg.Catalog(); err != nil {
		return fmt.Errorf("modes: %w", err)
	}

	return nil
}
