package tablemeta

import (
	"regexp"
	"strings"
)

// Mark is a set of classification flags inferred from a row's markup.
type Mark uint8

const (
	// MarkSectionHeader starts a new section at this row.
	MarkSectionHeader Mark = 1 << iota
	// MarkRowSetStart opens a conditional row group.
	MarkRowSetStart
	// MarkRowSetEnd closes a conditional row group.
	MarkRowSetEnd
	// MarkButtonBar identifies the form's action-button row, which is
	// always shown regardless of the active section.
	MarkButtonBar
)

// Has reports whether m carries flag.
func (m Mark) Has(flag Mark) bool {
	return m&flag != 0
}

// Span is a half-open byte range [Start, End) into a cell's text.
type Span struct {
	Start int
	End   int
}

// Cell is one text fragment of a row. Input cells come from form
// controls and are excluded from search matching and highlighting.
type Cell struct {
	Text       string
	Input      bool
	Highlights []Span
}

// Toggle is the checkbox/radio control whose checked state gates a
// row-set's visibility. Pointers are shared between the row that carries
// the control and the row-set bound to it, so flipping Checked is visible
// to both.
type Toggle struct {
	Name    string
	Label   string
	Checked bool
}

// Row is a handle to one table row in document order. The document layer
// owns the content; the engine only reads marks and text and flips the
// visible/active presentation state.
type Row struct {
	index     int
	marks     Mark
	cells     []Cell
	controls  []*Toggle
	sectionID string
	visible   bool
	active    bool
}

// NewRow builds a row. Rows start visible and inactive.
func NewRow(index int, marks Mark, cells []Cell, controls ...*Toggle) *Row {
	return &Row{
		index:    index,
		marks:    marks,
		cells:    cells,
		controls: controls,
		visible:  true,
	}
}

// Index returns the row's position in document order.
func (r *Row) Index() int { return r.index }

// Has reports whether the row carries the given classification mark.
func (r *Row) Has(flag Mark) bool { return r.marks.Has(flag) }

// Cells returns the row's text fragments, including any highlight spans
// computed by the most recent HighlightText pass.
func (r *Row) Cells() []Cell { return r.cells }

// Controls returns the toggle-capable controls present on the row.
func (r *Row) Controls() []*Toggle { return r.controls }

// SectionID returns the id of the section the row was classified into.
func (r *Row) SectionID() string { return r.sectionID }

// Show marks the row visible.
func (r *Row) Show() { r.visible = true }

// Hide marks the row hidden.
func (r *Row) Hide() { r.visible = false }

// IsVisible reports the row's visibility state.
func (r *Row) IsVisible() bool { return r.visible }

// SetActive marks the row as belonging to the active section.
func (r *Row) SetActive(active bool) { r.active = active }

// IsActive reports whether the row belongs to the active section.
func (r *Row) IsActive() bool { return r.active }

// Text returns the row's visible text, input controls excluded.
func (r *Row) Text() string {
	var parts []string
	for _, cell := range r.cells {
		if cell.Input {
			continue
		}
		if cell.Text != "" {
			parts = append(parts, cell.Text)
		}
	}
	return strings.Join(parts, " ")
}

func (r *Row) matches(re *regexp.Regexp) bool {
	for _, cell := range r.cells {
		if cell.Input {
			continue
		}
		if re.MatchString(cell.Text) {
			return true
		}
	}
	return false
}

func (r *Row) clearHighlights() {
	for i := range r.cells {
		r.cells[i].Highlights = nil
	}
}

func (r *Row) highlight(re *regexp.Regexp) {
	for i := range r.cells {
		if r.cells[i].Input {
			continue
		}
		for _, loc := range re.FindAllStringIndex(r.cells[i].Text, -1) {
			r.cells[i].Highlights = append(r.cells[i].Highlights, Span{Start: loc[0], End: loc[1]})
		}
	}
}
