package ui

// tabActivator is the navigation affordance the engine drives for one
// section. The view reads its flags to decide how to draw the tab or
// accordion header; clicks route back into the engine through the
// registered callback.
type tabActivator struct {
	title   string
	active  bool
	visible bool
	onClick func()
}

func newTabActivator(title string) *tabActivator {
	return &tabActivator{title: title, visible: true}
}

func (a *tabActivator) Click() {
	if a.onClick != nil {
		a.onClick()
	}
}

func (a *tabActivator) OnClick(fn func()) { a.onClick = fn }

func (a *tabActivator) SetActive(active bool) { a.active = active }

func (a *tabActivator) Active() bool { return a.active }

func (a *tabActivator) SetVisible(visible bool) { a.visible = visible }

func (a *tabActivator) Visible() bool { return a.visible }
