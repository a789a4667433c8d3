package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rdavey/tabula/internal/config"
	"github.com/rdavey/tabula/internal/diag"
	"github.com/rdavey/tabula/internal/prefs"
	"github.com/rdavey/tabula/internal/sched"
	"github.com/rdavey/tabula/internal/state"
	"github.com/rdavey/tabula/internal/tablemeta"
)

// Options configures the UI.
type Options struct {
	Context context.Context
	Store   *state.Store
	Config  config.Config
	Prefs   prefs.Store
	Diag    *diag.Buffer
	DocPath string

	// OnReady is called with the program's message injector before the
	// event loop starts, so the caller can wire external notifications
	// (file watches) into the UI.
	OnReady func(send func(tea.Msg))
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	store      *state.Store
	cfg        config.Config
	prefsStore prefs.Store
	diagBuf    *diag.Buffer
	docPath    string

	// Engine state
	meta  *tablemeta.TableMeta
	relay *sched.Manual

	// UI state
	theme      Theme
	width      int
	height     int
	ready      bool
	useTabs    bool
	showFinder bool
	showHelp   bool

	// Body state
	body   viewport.Model
	cursor int

	// Finder state
	find      textinput.Model
	findToken sched.Token
	finding   bool

	// Data state
	snapshot    state.Snapshot
	lastUpdated time.Time
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	store := opts.Prefs
	if store == nil {
		store = prefs.NewMemStore()
	}

	find := textinput.New()
	find.Prompt = "/"
	find.Placeholder = "find setting"
	find.CharLimit = 128

	m := Model{
		store:      opts.Store,
		cfg:        opts.Config,
		prefsStore: store,
		diagBuf:    opts.Diag,
		docPath:    opts.DocPath,
		relay:      &sched.Manual{},
		theme:      GetTheme(prefs.Theme(store)),
		useTabs:    prefs.UseTabs(store),
		showFinder: prefs.ShowFinder(store),
		find:       find,
	}
	m.rebuildMeta()
	return m
}

// rebuildMeta constructs the section engine from the latest document
// snapshot. On rebuild the previously active section and any pending
// search query are carried over so an external reload doesn't reset
// navigation.
func (m *Model) rebuildMeta() {
	prevActive := ""
	if m.meta != nil {
		if s := m.meta.ActiveSection(); s != nil {
			prevActive = s.ID
		}
	}

	if m.store == nil {
		return
	}
	m.snapshot = m.store.Snapshot()
	m.lastUpdated = m.snapshot.LastUpdated
	if !m.snapshot.HasDoc || len(m.snapshot.Doc.Tables) == 0 {
		m.meta = nil
		return
	}

	table := m.snapshot.Doc.Tables[0]
	meta := tablemeta.New(table.FormName, table.Rows, m.relay, m.prefsStore)
	for _, section := range meta.Sections {
		section.SetActivator(newTabActivator(section.Title))
	}
	if general := meta.GetSection(tablemeta.ToID("General")); general != nil {
		general.AdoptSection(tablemeta.ToID("Advanced Project Options"))
	}
	m.meta = meta

	if prevActive != "" {
		meta.ShowSectionID(prevActive)
	}
	if meta.ActiveSection() == nil {
		meta.RestoreLastSection()
	}
	if query := m.find.Value(); query != "" {
		meta.ShowSections(query)
	}
	m.relay.Flush()
	m.cursor = 0
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Messages

// DocReloaded is the message external callers inject when the document
// behind the table changed on disk and has been re-parsed into the store.
type DocReloaded struct{}

type findQuietMsg struct {
	id int
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.body = viewport.New(msg.Width, m.bodyHeight())
		} else {
			m.body.Width = msg.Width
			m.body.Height = m.bodyHeight()
		}
		m.ready = true
		m.syncBody()
		return m, nil

	case findQuietMsg:
		// Only the newest pending quiet-window expiry may run the
		// search; earlier ones were superseded by more typing.
		if m.meta != nil && m.findToken.Live(msg.id) {
			m.meta.ShowSections(m.find.Value())
			m.relay.Flush()
			m.cursor = 0
			m.syncBody()
		}
		return m, nil

	case DocReloaded:
		m.rebuildMeta()
		m.syncBody()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.finding {
		return m.handleFinderKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "/":
		m.showFinder = true
		m.finding = true
		m.find.Focus()
		return m, textinput.Blink

	case "tab", "right", "l":
		m.cycleSection(1)
		return m, nil

	case "shift+tab", "left", "h":
		m.cycleSection(-1)
		return m, nil

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.jumpToSection(int(msg.String()[0] - '1'))
		return m, nil

	case "j", "down":
		m.moveCursor(1)
		return m, nil

	case "k", "up":
		m.moveCursor(-1)
		return m, nil

	case "g", "home":
		m.cursor = 0
		m.syncBody()
		return m, nil

	case "G", "end":
		m.cursor = len(m.visibleRows()) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.syncBody()
		return m, nil

	case " ", "enter":
		m.toggleCursorRow()
		return m, nil

	case "f":
		m.showFinder = !m.showFinder
		prefs.SetShowFinder(m.prefsStore, m.showFinder)
		if !m.showFinder {
			m.clearFind()
		}
		return m, nil

	case "t":
		m.useTabs = !m.useTabs
		prefs.SetUseTabs(m.prefsStore, m.useTabs)
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		prefs.SetTheme(m.prefsStore, m.theme.Name)
		return m, nil

	case "esc":
		m.clearFind()
		return m, nil
	}

	return m, nil
}

// handleFinderKey routes input to the finder while it is focused. Every
// edit restarts the quiet window; the search itself only runs once
// typing pauses.
func (m Model) handleFinderKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		m.finding = false
		m.find.Blur()
		return m, nil
	case "esc":
		m.finding = false
		m.find.Blur()
		m.clearFind()
		return m, nil
	}

	before := m.find.Value()
	var cmd tea.Cmd
	m.find, cmd = m.find.Update(msg)
	if m.find.Value() == before {
		return m, cmd
	}

	id := m.findToken.Next()
	quiet := tea.Tick(m.cfg.FindQuiet, func(time.Time) tea.Msg {
		return findQuietMsg{id: id}
	})
	return m, tea.Batch(cmd, quiet)
}

// clearFind resets the query and restores the full section list.
func (m *Model) clearFind() {
	m.findToken.Next()
	if m.find.Value() == "" {
		return
	}
	m.find.SetValue("")
	if m.meta != nil {
		m.meta.ShowSections("")
		m.relay.Flush()
	}
	m.cursor = 0
	m.syncBody()
}

// cycleSection moves the active section by delta among sections whose
// affordances are visible, wrapping around.
func (m *Model) cycleSection(delta int) {
	if m.meta == nil {
		return
	}
	visible := m.navSections()
	if len(visible) == 0 {
		return
	}
	current := 0
	for i, s := range visible {
		if s.IsActive() {
			current = i
			break
		}
	}
	next := (current + delta + len(visible)) % len(visible)
	visible[next].Activate()
	m.relay.Flush()
	m.cursor = 0
	m.syncBody()
}

// jumpToSection activates the nth visible section.
func (m *Model) jumpToSection(n int) {
	if m.meta == nil {
		return
	}
	visible := m.navSections()
	if n < 0 || n >= len(visible) {
		return
	}
	visible[n].Activate()
	m.relay.Flush()
	m.cursor = 0
	m.syncBody()
}

// navSections returns the sections whose affordances are visible, in
// table order.
func (m *Model) navSections() []*tablemeta.Section {
	var visible []*tablemeta.Section
	for _, s := range m.meta.Sections {
		if a := s.Activator(); a != nil && !a.Visible() {
			continue
		}
		visible = append(visible, s)
	}
	return visible
}

// visibleRows returns the rows currently shown in the body, in document
// order, button rows last.
func (m *Model) visibleRows() []*tablemeta.Row {
	if m.meta == nil {
		return nil
	}
	var rows []*tablemeta.Row
	for _, row := range m.meta.TopRows {
		if row.IsVisible() && !row.Has(tablemeta.MarkButtonBar) {
			rows = append(rows, row)
		}
	}
	for _, row := range m.meta.ButtonRows {
		if row.IsVisible() {
			rows = append(rows, row)
		}
	}
	return rows
}

// moveCursor moves the body cursor and keeps it in view.
func (m *Model) moveCursor(delta int) {
	rows := m.visibleRows()
	if len(rows) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	m.syncBody()
}

// toggleCursorRow flips the toggle on the cursor row, if it has one, and
// re-syncs row-set visibility for the active section.
func (m *Model) toggleCursorRow() {
	rows := m.visibleRows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return
	}
	controls := rows[m.cursor].Controls()
	if len(controls) != 1 {
		return
	}
	controls[0].Checked = !controls[0].Checked
	if active := m.meta.ActiveSection(); active != nil {
		active.UpdateRowSetVisibility()
	}
	m.syncBody()
}

// bodyHeight returns the rows available to the body viewport after the
// fixed chrome (header, nav, finder, footer).
func (m *Model) bodyHeight() int {
	chrome := 3 // header + nav + footer
	if m.showFinder {
		chrome++
	}
	h := m.height - chrome
	if h < 1 {
		h = 1
	}
	return h
}

// syncBody re-renders the body viewport content and scrolls the cursor
// into view.
func (m *Model) syncBody() {
	if !m.ready {
		return
	}
	m.body.Height = m.bodyHeight()
	m.body.SetContent(m.renderBody())
	if m.cursor < m.body.YOffset {
		m.body.SetYOffset(m.cursor)
	}
	if m.cursor >= m.body.YOffset+m.body.Height {
		m.body.SetYOffset(m.cursor - m.body.Height + 1)
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	progOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		progOpts = append(progOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, progOpts...)
	if opts.OnReady != nil {
		opts.OnReady(func(msg tea.Msg) { p.Send(msg) })
	}
	_, err := p.Run()
	return err
}
