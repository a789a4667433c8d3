package tablemeta

import (
	"fmt"
	"log"
	"strings"

	"github.com/rdavey/tabula/internal/prefs"
	"github.com/rdavey/tabula/internal/sched"
)

// TableMeta owns the ordered section list for one configuration table
// and drives section activation and the search workflow. At most one
// section is active at a time; the section order is fixed at
// classification time.
//
// All mutation is expected to happen on a single cooperative loop.
// Show-listeners are fired through the injected scheduler so they run
// after the activation's own row mutations, FIFO per activation.
type TableMeta struct {
	FormName string
	TopRows  []*Row
	Sections []*Section

	// ButtonRows are the action-button rows pulled out of their section
	// at construction time; they are shown with every section.
	ButtonRows []*Row

	activeIndex   int
	findQuery     string
	showListeners []func(*Section)
	sched         sched.Scheduler
	prefs         prefs.Store
}

// New classifies topRows into sections and returns the table metadata.
// A nil scheduler falls back to a background FIFO loop; a nil store
// falls back to an in-memory preference store. The metadata persists the
// id of every activated section under the table's page-scoped last-tab
// key.
func New(formName string, topRows []*Row, scheduler sched.Scheduler, store prefs.Store) *TableMeta {
	if scheduler == nil {
		scheduler = sched.NewLoop()
	}
	if store == nil {
		store = prefs.NewMemStore()
	}
	t := &TableMeta{
		FormName:    formName,
		TopRows:     topRows,
		activeIndex: -1,
		sched:       scheduler,
		prefs:       store,
	}
	t.Sections = classify(t, topRows)
	t.detachButtonRows()
	t.OnShowSection(func(s *Section) {
		t.prefs.SetPageItem(prefs.LastSectionKey(t.FormName), s.ID)
	})
	return t
}

// detachButtonRows pulls rows marked as the action-button bar out of
// whichever section classification put them in and retags them with the
// fixed buttons id so they can always be shown.
func (t *TableMeta) detachButtonRows() {
	for _, section := range t.Sections {
		kept := section.Rows[:0]
		for _, row := range section.Rows {
			if row.Has(MarkButtonBar) {
				row.sectionID = ButtonsID
				t.ButtonRows = append(t.ButtonRows, row)
				continue
			}
			kept = append(kept, row)
		}
		section.Rows = kept
	}
}

// SectionCount returns the number of sections.
func (t *TableMeta) SectionCount() int {
	return len(t.Sections)
}

// HasSections reports whether the table produced any sections. A table
// with none is unexpected but non-fatal, so it is only logged.
func (t *TableMeta) HasSections() bool {
	if len(t.Sections) == 0 {
		log.Printf("configuration table %q without sections?", t.FormName)
		return false
	}
	return true
}

// SectionIDs returns the section ids in table order.
func (t *TableMeta) SectionIDs() []string {
	ids := make([]string, 0, len(t.Sections))
	for _, s := range t.Sections {
		ids = append(ids, s.ID)
	}
	return ids
}

// GetSection returns the first section with the given id, or nil.
func (t *TableMeta) GetSection(id string) *Section {
	if !t.HasSections() {
		return nil
	}
	for _, s := range t.Sections {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// ActiveSection returns the currently active section, or nil.
func (t *TableMeta) ActiveSection() *Section {
	if t.activeIndex < 0 || t.activeIndex >= len(t.Sections) {
		return nil
	}
	return t.Sections[t.activeIndex]
}

// ActiveSectionCount counts sections marked active. It is a diagnostic;
// the state machine keeps it at zero or one.
func (t *TableMeta) ActiveSectionCount() int {
	count := 0
	for _, s := range t.Sections {
		if s.active {
			count++
		}
	}
	return count
}

// FindQuery returns the current search query.
func (t *TableMeta) FindQuery() string {
	return t.findQuery
}

// ActivateSection activates the section with the given id through its
// affordance. A blank id is the one hard precondition and returns an
// error; an unknown id is a no-op.
func (t *TableMeta) ActivateSection(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("invalid section id %q", id)
	}
	if s := t.GetSection(id); s != nil {
		s.Activate()
	}
	return nil
}

// ActivateFirstSection activates the first section, if any.
func (t *TableMeta) ActivateFirstSection() {
	if t.HasSections() {
		_ = t.ActivateSection(t.Sections[0].ID)
	}
}

// ShowSection deactivates the current section and activates the given
// one: its rows are shown and marked active, header rows are hidden (the
// affordance text replaces them), button rows are shown, row-set
// visibility is synced, and the current search query is re-highlighted.
// Show-listeners fire afterwards, deferred. A nil or foreign section is
// a no-op.
func (t *TableMeta) ShowSection(section *Section) {
	if section == nil {
		return
	}
	idx := t.indexOf(section)
	if idx < 0 {
		return
	}

	t.DeactivateActiveSection()

	t.activeIndex = idx
	section.active = true
	if section.activator != nil {
		section.activator.SetActive(true)
	}
	for _, row := range section.Rows {
		row.SetActive(true)
		row.Show()
	}
	for _, row := range t.TopRows {
		if row.Has(MarkSectionHeader) {
			row.Hide()
		}
	}
	for _, row := range t.ButtonRows {
		row.Show()
	}

	section.UpdateRowSetVisibility()
	section.HighlightText(t.findQuery)

	t.fireShowListeners(section)
}

// ShowSectionID resolves id and shows that section; unknown ids degrade
// to a no-op.
func (t *TableMeta) ShowSectionID(id string) {
	t.ShowSection(t.GetSection(id))
}

// DeactivateActiveSection clears the active marks and hides every top
// row, leaving no section active.
func (t *TableMeta) DeactivateActiveSection() {
	for _, s := range t.Sections {
		s.active = false
		if s.activator != nil {
			s.activator.SetActive(false)
		}
	}
	for _, row := range t.TopRows {
		row.SetActive(false)
		row.Hide()
	}
	t.activeIndex = -1
}

// ShowSections is the search entry point. An empty query reveals every
// affordance and activates the first section if none is active (or just
// clears highlighting on the active one). A non-empty query hides the
// affordances of sections with no match and activates the first matching
// section; with no matches at all, the active section is deactivated and
// nothing is force-activated.
func (t *TableMeta) ShowSections(query string) {
	t.findQuery = query

	if query == "" {
		if !t.HasSections() {
			return
		}
		for _, s := range t.Sections {
			if s.activator != nil {
				s.activator.SetVisible(true)
			}
		}
		if active := t.ActiveSection(); active != nil {
			active.HighlightText(query)
		} else {
			t.ShowSection(t.Sections[0])
		}
		return
	}

	if !t.HasSections() {
		return
	}
	var matched []*Section
	for _, s := range t.Sections {
		if s.ContainsText(query) {
			matched = append(matched, s)
			if s.activator != nil {
				s.activator.SetVisible(true)
			}
		} else if s.activator != nil {
			s.activator.SetVisible(false)
		}
	}
	if len(matched) > 0 {
		t.ShowSection(matched[0])
	} else {
		t.DeactivateActiveSection()
	}
}

// OnShowSection registers a listener invoked, deferred, after every
// successful ShowSection with the activated section. Listeners must not
// synchronously trigger another activation.
func (t *TableMeta) OnShowSection(listener func(*Section)) {
	t.showListeners = append(t.showListeners, listener)
}

// RestoreLastSection activates the section remembered in the page-scoped
// last-tab preference, falling back to the first section when the
// remembered id no longer resolves.
func (t *TableMeta) RestoreLastSection() {
	if !t.HasSections() {
		return
	}
	id := t.prefs.GetPageItem(prefs.LastSectionKey(t.FormName), t.Sections[0].ID)
	t.ShowSectionID(id)
	if t.ActiveSection() == nil {
		t.ShowSection(t.Sections[0])
	}
}

func (t *TableMeta) fireShowListeners(section *Section) {
	for _, listener := range t.showListeners {
		listener := listener
		t.sched.Defer(func() {
			listener(section)
		})
	}
}

func (t *TableMeta) indexOf(section *Section) int {
	for i, s := range t.Sections {
		if s == section {
			return i
		}
	}
	return -1
}

func (t *TableMeta) removeSection(section *Section) {
	idx := t.indexOf(section)
	if idx < 0 {
		return
	}
	active := t.ActiveSection()
	t.Sections = append(t.Sections[:idx], t.Sections[idx+1:]...)
	if active == section {
		t.activeIndex = -1
	} else if active != nil {
		t.activeIndex = t.indexOf(active)
	}
}
