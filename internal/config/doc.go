// Package config handles loading and parsing Tabula configuration files.
//
// # Overview
//
// This package reads Tabula's TOML configuration to discover the debounce
// windows used by the finder and the file watcher, plus the location of the
// preference file. All fields are optional; Tabula runs with sensible
// defaults when no config file exists.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/tabula/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/zero, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/tabula/config.toml
//   - Finder quiet window: 300ms
//   - Watcher quiet window: 1s
//   - Preference file: ~/.config/tabula/prefs.toml
//
// # TOML Format
//
// Example config.toml:
//
//	find_quiet_ms = 300
//	watch_quiet_ms = 1000
//	prefs_path = "~/.config/tabula/prefs.toml"
//
// All fields are optional. Tilde expansion is performed automatically.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// Missing config files are NOT an error - defaults are used instead.
// This allows Tabula to work out-of-the-box without configuration.
//
// # Design Philosophy
//
// This package follows the principle of sensible defaults. The config
// package is read-only and stateless - it loads configuration once at
// startup and returns an immutable Config struct. No global state or
// singleton patterns are used.
package config
