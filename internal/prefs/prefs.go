// Package prefs persists tabula user preferences.
// Preferences are stored in ~/.config/tabula/prefs.toml, split into a
// global scope shared by every document and a page scope keyed by the
// document being viewed.
package prefs

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Preference keys. Global keys apply to the whole installation; the
// last-tab key is page-scoped.
const (
	UseTabsKey    = "config:usetabs"
	ShowFinderKey = "config:showfinder"
	ThemeKey      = "config:theme"
)

// LastSectionKey returns the page-scoped key remembering the last active
// section of the named form.
func LastSectionKey(form string) string {
	return "config:" + form + ":last-tab"
}

const (
	defaultPrefsPath = "~/.config/tabula/prefs.toml"
	defaultTheme     = "Dracula"
)

// Store is the key-value preference contract: global items are shared by
// every page, page items are scoped to the current document. Reads take
// a fallback; writes persist immediately.
type Store interface {
	GetGlobalItem(key, fallback string) string
	SetGlobalItem(key, value string)
	GetPageItem(key, fallback string) string
	SetPageItem(key, value string)
}

// UseTabs reports the "use tabs for config tables" preference.
func UseTabs(s Store) bool {
	return s.GetGlobalItem(UseTabsKey, "yes") == "yes"
}

// SetUseTabs persists the tab-bar preference.
func SetUseTabs(s Store, useTabs bool) {
	s.SetGlobalItem(UseTabsKey, yesNo(useTabs))
}

// ShowFinder reports the "show the finder" preference.
func ShowFinder(s Store) bool {
	return s.GetGlobalItem(ShowFinderKey, "yes") == "yes"
}

// SetShowFinder persists the finder-visibility preference.
func SetShowFinder(s Store, show bool) {
	s.SetGlobalItem(ShowFinderKey, yesNo(show))
}

// Theme returns the preferred theme name.
func Theme(s Store) string {
	return s.GetGlobalItem(ThemeKey, defaultTheme)
}

// SetTheme persists the preferred theme name.
func SetTheme(s Store, name string) {
	s.SetGlobalItem(ThemeKey, name)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

type fileData struct {
	Global map[string]string            `toml:"global"`
	Pages  map[string]map[string]string `toml:"pages"`
}

// FileStore is a Store backed by a TOML file. Loading degrades
// gracefully: a missing or unreadable file behaves like an empty store.
// Every write rewrites the file; write failures are logged, not fatal,
// so a read-only home directory never breaks the UI.
type FileStore struct {
	path string
	page string
	data fileData
}

// NewFileStore opens (or lazily creates) the preference file at path,
// scoping page items to the given page name. An empty path uses the
// default location.
func NewFileStore(path, page string) *FileStore {
	s := &FileStore{path: path, page: page}
	s.data = loadFile(path)
	return s
}

func loadFile(path string) fileData {
	data := fileData{}
	resolved, err := resolvePath(path)
	if err != nil {
		return data
	}
	bytes, err := os.ReadFile(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("read prefs: %v", err)
		}
		return data
	}
	if err := toml.Unmarshal(bytes, &data); err != nil {
		log.Printf("parse prefs: %v", err)
		return fileData{}
	}
	return data
}

// GetGlobalItem returns the global value for key, or fallback.
func (s *FileStore) GetGlobalItem(key, fallback string) string {
	if v, ok := s.data.Global[key]; ok {
		return v
	}
	return fallback
}

// SetGlobalItem stores a global value and persists the file.
func (s *FileStore) SetGlobalItem(key, value string) {
	if s.data.Global == nil {
		s.data.Global = map[string]string{}
	}
	s.data.Global[key] = value
	s.save()
}

// GetPageItem returns the page-scoped value for key, or fallback.
func (s *FileStore) GetPageItem(key, fallback string) string {
	if v, ok := s.data.Pages[s.page][key]; ok {
		return v
	}
	return fallback
}

// SetPageItem stores a page-scoped value and persists the file.
func (s *FileStore) SetPageItem(key, value string) {
	if s.data.Pages == nil {
		s.data.Pages = map[string]map[string]string{}
	}
	if s.data.Pages[s.page] == nil {
		s.data.Pages[s.page] = map[string]string{}
	}
	s.data.Pages[s.page][key] = value
	s.save()
}

func (s *FileStore) save() {
	resolved, err := resolvePath(s.path)
	if err != nil {
		log.Printf("resolve prefs path: %v", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		log.Printf("create prefs dir: %v", err)
		return
	}
	bytes, err := toml.Marshal(s.data)
	if err != nil {
		log.Printf("marshal prefs: %v", err)
		return
	}
	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		log.Printf("write prefs: %v", err)
	}
}

// MemStore is an in-memory Store for tests and for tables constructed
// without a real backing file.
type MemStore struct {
	global map[string]string
	page   map[string]string
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		global: map[string]string{},
		page:   map[string]string{},
	}
}

// GetGlobalItem returns the global value for key, or fallback.
func (s *MemStore) GetGlobalItem(key, fallback string) string {
	if v, ok := s.global[key]; ok {
		return v
	}
	return fallback
}

// SetGlobalItem stores a global value.
func (s *MemStore) SetGlobalItem(key, value string) {
	s.global[key] = value
}

// GetPageItem returns the page-scoped value for key, or fallback.
func (s *MemStore) GetPageItem(key, fallback string) string {
	if v, ok := s.page[key]; ok {
		return v
	}
	return fallback
}

// SetPageItem stores a page-scoped value.
func (s *MemStore) SetPageItem(key, value string) {
	s.page[key] = value
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
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
