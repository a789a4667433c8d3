package tablemeta

import (
	"log"
	"strings"
)

// Activator is the navigation affordance bound to one section: a tab or
// accordion header the user can click. The presentation layer implements
// it; the engine only toggles its active/visible state and forwards
// clicks into ShowSection.
type Activator interface {
	Click()
	OnClick(fn func())
	SetActive(active bool)
	Active() bool
	SetVisible(visible bool)
	Visible() bool
}

// Section is a titled, contiguous group of configuration rows shown and
// hidden as a unit. Rows are fixed at classification time; row-sets are
// computed once on first access and cached.
type Section struct {
	Title string
	ID    string
	Rows  []*Row

	meta      *TableMeta
	rowSets   []*RowSet
	activator Activator
	active    bool
}

func newSection(meta *TableMeta, title string) *Section {
	return &Section{
		Title: title,
		ID:    ToID(title),
		meta:  meta,
	}
}

// SetActivator binds the section's navigation affordance and wires its
// click through to activation.
func (s *Section) SetActivator(a Activator) {
	s.activator = a
	a.OnClick(func() {
		s.meta.ShowSection(s)
	})
}

// Activator returns the bound affordance, or nil.
func (s *Section) Activator() Activator { return s.activator }

// Activate triggers the bound affordance's click. Without an affordance
// this is a no-op; it is logged because it usually means the navigation
// widget was never attached.
func (s *Section) Activate() {
	if s.activator == nil {
		log.Printf("no activator attached to section %q", s.ID)
		return
	}
	s.activator.Click()
}

// IsActive reports whether this is the table's active section.
func (s *Section) IsActive() bool { return s.active }

// ActiveRowCount counts the section's rows currently marked active.
func (s *Section) ActiveRowCount() int {
	count := 0
	for _, row := range s.Rows {
		if row.IsActive() {
			count++
		}
	}
	return count
}

// RowSets returns the section's row-sets, computing them on first access.
func (s *Section) RowSets() []*RowSet {
	if s.rowSets == nil {
		s.gatherRowSets()
	}
	return s.rowSets
}

// gatherRowSets scans the section's rows for groups bounded by start/end
// markers. Only groups with both an end marker and a bound toggle are
// retained. Nesting is unsupported: a start marker inside an open group
// replaces the accumulator, so the most recent open group wins.
func (s *Section) gatherRowSets() {
	s.rowSets = []*RowSet{}

	var cur *RowSet
	for _, row := range s.Rows {
		switch {
		case row.Has(MarkRowSetStart):
			cur = newRowSet(row)
		case cur == nil:
			// Outside any group.
		case row.Has(MarkRowSetEnd):
			cur.EndRow = row
			if cur.Toggle != nil {
				s.rowSets = append(s.rowSets, cur)
			}
			cur = nil
		case cur.Toggle == nil:
			cur.bindToggle(row)
		default:
			cur.Rows = append(cur.Rows, row)
		}
	}
}

// RowSetLabels returns the labels of the section's bound toggles.
func (s *Section) RowSetLabels() []string {
	var labels []string
	for _, rs := range s.RowSets() {
		if rs.Label != "" {
			labels = append(labels, rs.Label)
		}
	}
	return labels
}

// UpdateRowSetVisibility shows each row-set's guarded rows when its
// toggle is checked and hides them otherwise. Callers invoke this after
// any state change that could affect toggle values; it is not continuous.
func (s *Section) UpdateRowSetVisibility() {
	for _, rs := range s.RowSets() {
		if rs.Toggle == nil {
			continue
		}
		for _, row := range rs.Rows {
			if rs.Toggle.Checked {
				row.Show()
			} else {
				row.Hide()
			}
		}
	}
}

// HighlightText clears any prior highlight spans in the section's rows
// and, for a non-empty query, marks every case-insensitive match in
// non-input text. Calling it twice with the same query is equivalent to
// calling it once.
func (s *Section) HighlightText(query string) {
	for _, row := range s.Rows {
		row.clearHighlights()
	}
	if query == "" {
		return
	}
	re := matchPattern(query)
	for _, row := range s.Rows {
		row.highlight(re)
	}
}

// ContainsText reports whether any of the section's rows contains a
// case-insensitive match of query in non-input text.
func (s *Section) ContainsText(query string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	re := matchPattern(query)
	for _, row := range s.Rows {
		if row.matches(re) {
			return true
		}
	}
	return false
}

// AdoptSection merges the section with the given id into this one: its
// rows are retagged and appended, it is removed from the table, and its
// affordance is hidden. Unknown ids and self-adoption are no-ops.
func (s *Section) AdoptSection(id string) {
	donor := s.meta.GetSection(id)
	if donor == nil || donor == s {
		return
	}
	for _, row := range donor.Rows {
		row.sectionID = s.ID
		s.Rows = append(s.Rows, row)
	}
	donor.Rows = nil
	s.rowSets = nil
	if donor.activator != nil {
		donor.activator.SetVisible(false)
	}
	s.meta.removeSection(donor)
}
