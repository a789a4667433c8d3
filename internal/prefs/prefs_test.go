package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_MissingFileUsesFallbacks(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s := NewFileStore("", "job/demo/configure")
	if got := s.GetGlobalItem(UseTabsKey, "yes"); got != "yes" {
		t.Fatalf("GetGlobalItem = %q, want fallback %q", got, "yes")
	}
	if got := s.GetPageItem(LastSectionKey("config"), "config_general"); got != "config_general" {
		t.Fatalf("GetPageItem = %q, want fallback %q", got, "config_general")
	}
}

func TestFileStore_WritesPersistAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")

	s := NewFileStore(path, "job/demo/configure")
	s.SetGlobalItem(UseTabsKey, "no")
	s.SetPageItem(LastSectionKey("config"), "config_build_triggers")

	reopened := NewFileStore(path, "job/demo/configure")
	if got := reopened.GetGlobalItem(UseTabsKey, "yes"); got != "no" {
		t.Fatalf("global after reopen = %q, want %q", got, "no")
	}
	if got := reopened.GetPageItem(LastSectionKey("config"), ""); got != "config_build_triggers" {
		t.Fatalf("page after reopen = %q, want %q", got, "config_build_triggers")
	}
}

func TestFileStore_PageItemsAreScopedByPage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")

	first := NewFileStore(path, "job/one/configure")
	first.SetPageItem(LastSectionKey("config"), "config_general")

	second := NewFileStore(path, "job/two/configure")
	if got := second.GetPageItem(LastSectionKey("config"), "none"); got != "none" {
		t.Fatalf("page item leaked across pages: %q", got)
	}
}

func TestFileStore_CorruptFileBehavesEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("not toml {{{{"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := NewFileStore(path, "p")
	if got := s.GetGlobalItem(ThemeKey, "Dracula"); got != "Dracula" {
		t.Fatalf("GetGlobalItem = %q, want fallback", got)
	}
}

func TestHelpers_DefaultsAndRoundTrip(t *testing.T) {
	s := NewMemStore()

	if !UseTabs(s) {
		t.Fatal("UseTabs default should be true")
	}
	if !ShowFinder(s) {
		t.Fatal("ShowFinder default should be true")
	}
	if Theme(s) != "Dracula" {
		t.Fatalf("Theme default = %q", Theme(s))
	}

	SetUseTabs(s, false)
	SetShowFinder(s, false)
	SetTheme(s, "Slate")

	if UseTabs(s) {
		t.Fatal("UseTabs should be false after SetUseTabs(false)")
	}
	if ShowFinder(s) {
		t.Fatal("ShowFinder should be false after SetShowFinder(false)")
	}
	if Theme(s) != "Slate" {
		t.Fatalf("Theme = %q, want Slate", Theme(s))
	}
}

func TestLastSectionKey(t *testing.T) {
	if got := LastSectionKey("config"); got != "config:config:last-tab" {
		t.Fatalf("LastSectionKey = %q", got)
	}
}
