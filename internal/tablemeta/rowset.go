package tablemeta

// RowSet is a conditionally-visible contiguous group of rows inside a
// section, gated by a single toggle control. A row-set is only retained
// when both its end marker and a toggle were found; the gather loop in
// Section.RowSets enforces that.
type RowSet struct {
	StartRow *Row
	EndRow   *Row
	Toggle   *Toggle
	Label    string
	Rows     []*Row
}

func newRowSet(start *Row) *RowSet {
	rs := &RowSet{StartRow: start}
	rs.bindToggle(start)
	return rs
}

// bindToggle binds the row's toggle control when the row carries exactly
// one. Zero controls means keep looking on later rows; more than one is
// ambiguous and the row is left untracked rather than guessed at.
func (rs *RowSet) bindToggle(row *Row) {
	controls := row.Controls()
	if len(controls) != 1 {
		return
	}
	rs.Toggle = controls[0]
	rs.Label = controls[0].Label
}
