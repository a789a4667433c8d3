package tablemeta

// Shared fixture builders for the engine tests. Rows are synthetic; the
// engine only ever sees marks, cells, and controls, so no document is
// needed.

func textRow(index int, text string) *Row {
	return NewRow(index, 0, []Cell{{Text: text}})
}

func headerRow(index int, title string) *Row {
	return NewRow(index, MarkSectionHeader, []Cell{{Text: title}})
}

func startRow(index int, controls ...*Toggle) *Row {
	return NewRow(index, MarkRowSetStart, nil, controls...)
}

func endRow(index int) *Row {
	return NewRow(index, MarkRowSetEnd, nil)
}

func toggleRow(index int, controls ...*Toggle) *Row {
	return NewRow(index, 0, nil, controls...)
}

func buttonRow(index int) *Row {
	return NewRow(index, MarkButtonBar, []Cell{{Text: "Save"}, {Text: "Apply"}})
}

type fakeActivator struct {
	active  bool
	visible bool
	clicks  int
	onClick func()
}

func newFakeActivator() *fakeActivator {
	return &fakeActivator{visible: true}
}

func (a *fakeActivator) Click() {
	a.clicks++
	if a.onClick != nil {
		a.onClick()
	}
}

func (a *fakeActivator) OnClick(fn func())        { a.onClick = fn }
func (a *fakeActivator) SetActive(active bool)    { a.active = active }
func (a *fakeActivator) Active() bool             { return a.active }
func (a *fakeActivator) SetVisible(visible bool)  { a.visible = visible }
func (a *fakeActivator) Visible() bool            { return a.visible }

func attachActivators(t *TableMeta) map[string]*fakeActivator {
	activators := map[string]*fakeActivator{}
	for _, s := range t.Sections {
		a := newFakeActivator()
		s.SetActivator(a)
		activators[s.ID] = a
	}
	return activators
}
