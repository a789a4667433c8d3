package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rdavey/tabula/internal/config"
	"github.com/rdavey/tabula/internal/htmlform"
	"github.com/rdavey/tabula/internal/prefs"
	"github.com/rdavey/tabula/internal/state"
	"github.com/rdavey/tabula/internal/tablemeta"
)

func testDocument() *htmlform.Document {
	toggle := &tablemeta.Toggle{Name: "scm.enabled", Label: "Enable polling"}
	rows := []*tablemeta.Row{
		tablemeta.NewRow(0, 0, []tablemeta.Cell{{Text: "Project name"}}),
		tablemeta.NewRow(1, tablemeta.MarkSectionHeader, []tablemeta.Cell{{Text: "#Source Code Management"}}),
		tablemeta.NewRow(2, tablemeta.MarkRowSetStart, nil),
		tablemeta.NewRow(3, 0, []tablemeta.Cell{{Text: "Enable polling"}}, toggle),
		tablemeta.NewRow(4, 0, []tablemeta.Cell{{Text: "Repository URL"}, {Text: "https://example.org", Input: true}}),
		tablemeta.NewRow(5, tablemeta.MarkRowSetEnd, nil),
		tablemeta.NewRow(6, tablemeta.MarkButtonBar, []tablemeta.Cell{{Text: "Save"}}),
	}
	return &htmlform.Document{Tables: []*htmlform.Table{
		{FormName: "config", Rows: rows},
	}}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	store := &state.Store{}
	store.Update(testDocument(), nil)

	m := New(Options{
		Store:  store,
		Config: config.Config{FindQuiet: time.Millisecond, WatchQuiet: time.Millisecond},
		Prefs:  prefs.NewMemStore(),
	})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func activeID(m Model) string {
	if m.meta == nil || m.meta.ActiveSection() == nil {
		return ""
	}
	return m.meta.ActiveSection().ID
}

func TestNew_BuildsSectionsAndActivatesFirst(t *testing.T) {
	m := newTestModel(t)

	if m.meta == nil {
		t.Fatal("no engine built from document")
	}
	ids := m.meta.SectionIDs()
	if len(ids) != 2 || ids[0] != "config_general" || ids[1] != "config_source_code_management" {
		t.Fatalf("section ids = %v", ids)
	}
	if activeID(m) != "config_general" {
		t.Fatalf("active = %q, want config_general", activeID(m))
	}
	for _, s := range m.meta.Sections {
		if s.Activator() == nil {
			t.Fatalf("section %q has no activator", s.ID)
		}
	}
}

func TestUpdate_TabCyclesSections(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	if activeID(m) != "config_source_code_management" {
		t.Fatalf("active after tab = %q", activeID(m))
	}

	// Wraps around.
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	if activeID(m) != "config_general" {
		t.Fatalf("active after second tab = %q", activeID(m))
	}
}

func TestUpdate_DigitJumpsToSection(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	m = updated.(Model)
	if activeID(m) != "config_source_code_management" {
		t.Fatalf("active after '2' = %q", activeID(m))
	}
}

func TestToggleCursorRow_SyncsRowSetVisibility(t *testing.T) {
	m := newTestModel(t)
	m.jumpToSection(1)

	rows := m.visibleRows()
	toggleIdx := -1
	for i, row := range rows {
		if len(row.Controls()) == 1 {
			toggleIdx = i
		}
	}
	if toggleIdx < 0 {
		t.Fatal("no toggle row visible")
	}

	// Toggle is unchecked, so the guarded URL row must be hidden.
	for _, row := range rows {
		if strings.Contains(row.Text(), "Repository URL") {
			t.Fatal("guarded row visible while toggle unchecked")
		}
	}

	m.cursor = toggleIdx
	m.toggleCursorRow()

	found := false
	for _, row := range m.visibleRows() {
		if strings.Contains(row.Text(), "Repository URL") {
			found = true
		}
	}
	if !found {
		t.Fatal("guarded row still hidden after checking the toggle")
	}
}

func TestUpdate_StaleFindQuietMsgIsIgnored(t *testing.T) {
	m := newTestModel(t)

	stale := m.findToken.Next()
	live := m.findToken.Next()
	m.find.SetValue("polling")

	updated, _ := m.Update(findQuietMsg{id: stale})
	m = updated.(Model)
	if m.meta.FindQuery() != "" {
		t.Fatalf("stale quiet message ran the search, query = %q", m.meta.FindQuery())
	}

	updated, _ = m.Update(findQuietMsg{id: live})
	m = updated.(Model)
	if m.meta.FindQuery() != "polling" {
		t.Fatalf("live quiet message did not run the search, query = %q", m.meta.FindQuery())
	}
	if activeID(m) != "config_source_code_management" {
		t.Fatalf("active after search = %q", activeID(m))
	}
}

func TestUpdate_DocReloadedKeepsActiveSection(t *testing.T) {
	m := newTestModel(t)
	m.jumpToSection(1)
	if activeID(m) != "config_source_code_management" {
		t.Fatalf("active = %q", activeID(m))
	}

	m.store.Update(testDocument(), nil)
	updated, _ := m.Update(DocReloaded{})
	m = updated.(Model)

	if activeID(m) != "config_source_code_management" {
		t.Fatalf("active after reload = %q, want section carried over", activeID(m))
	}
}

func TestRenderRow_HighlightsMatches(t *testing.T) {
	m := newTestModel(t)
	m.jumpToSection(1)
	m.meta.ShowSections("polling")
	m.relay.Flush()

	var line string
	for _, row := range m.visibleRows() {
		if strings.Contains(row.Text(), "Enable polling") {
			line = m.renderRow(row, false)
		}
	}
	if line == "" {
		t.Fatal("matching row not visible")
	}
	if !strings.Contains(line, "polling") {
		t.Fatalf("rendered row = %q", line)
	}
}
