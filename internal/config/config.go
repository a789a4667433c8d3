package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the tunables Tabula reads at startup.
type Config struct {
	FindQuiet  time.Duration
	WatchQuiet time.Duration
	PrefsPath  string
}

const (
	defaultConfigPath   = "~/.config/tabula/config.toml"
	defaultPrefsPath    = "~/.config/tabula/prefs.toml"
	defaultFindQuietMS  = 300
	defaultWatchQuietMS = 1000
)

// Load locates and parses the config file, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		FindQuiet:  defaultFindQuietMS * time.Millisecond,
		WatchQuiet: defaultWatchQuietMS * time.Millisecond,
		PrefsPath:  mustExpand(defaultPrefsPath),
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		FindQuietMS  int    `toml:"find_quiet_ms"`
		WatchQuietMS int    `toml:"watch_quiet_ms"`
		PrefsPath    string `toml:"prefs_path"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.FindQuietMS > 0 {
		cfg.FindQuiet = time.Duration(raw.FindQuietMS) * time.Millisecond
	}
	if raw.WatchQuietMS > 0 {
		cfg.WatchQuiet = time.Duration(raw.WatchQuietMS) * time.Millisecond
	}
	if prefs := strings.TrimSpace(raw.PrefsPath); prefs != "" {
		cfg.PrefsPath = mustExpand(prefs)
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
