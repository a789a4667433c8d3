package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rdavey/tabula/internal/tablemeta"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderNav())
	b.WriteString("\n")
	b.WriteString(m.body.View())
	b.WriteString("\n")
	if m.showFinder {
		b.WriteString(m.renderFinder())
		b.WriteString("\n")
	}
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	parts := []string{styles.Logo.Render("tabula")}

	if m.meta != nil {
		parts = append(parts, styles.Text.Render(m.meta.FormName))
		parts = append(parts, styles.MutedText.Render(
			fmt.Sprintf("%d sections", m.meta.SectionCount())))
	} else {
		parts = append(parts, styles.WarningText.Render("no configuration table"))
	}

	if m.docPath != "" {
		parts = append(parts, styles.MutedText.Render(truncateMiddle(m.docPath, 50)))
	}

	if !m.lastUpdated.IsZero() {
		parts = append(parts, styles.MutedText.Render(m.lastUpdated.Format("15:04:05")))
	}

	if m.snapshot.IsStale() {
		parts = append(parts, styles.DangerText.Render("STALE"))
	} else if m.snapshot.LastError != nil {
		parts = append(parts, styles.DangerText.Render("RELOAD FAILED"))
	}

	if m.meta != nil {
		if active := m.meta.ActiveSection(); active != nil {
			if labels := active.RowSetLabels(); len(labels) > 0 {
				parts = append(parts, styles.FaintText.Render(
					truncate("groups: "+strings.Join(labels, ", "), 40)))
			}
		}
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

// renderNav renders the section affordances: a horizontal tab bar, or a
// compact accordion-style title line when tabs are turned off.
func (m Model) renderNav() string {
	styles := m.theme.Styles()

	if m.meta == nil {
		return styles.FaintText.Render("")
	}

	sections := m.meta.Sections
	var parts []string
	for _, s := range sections {
		a := s.Activator()
		if a != nil && !a.Visible() {
			continue
		}
		if m.useTabs {
			if s.IsActive() {
				parts = append(parts, styles.TabActive.Render(s.Title))
			} else {
				parts = append(parts, styles.TabInactive.Render(s.Title))
			}
			continue
		}
		marker := "▸"
		style := styles.MutedText
		if s.IsActive() {
			marker = "▾"
			style = styles.SectionTitle
		}
		parts = append(parts, style.Render(marker+" "+s.Title))
	}
	if len(parts) == 0 {
		return styles.WarningText.Render("no sections match")
	}

	sep := " "
	if !m.useTabs {
		sep = "   "
	}
	return lipgloss.NewStyle().Width(m.width).Render(strings.Join(parts, sep))
}

// renderBody renders the visible rows of the active section plus the
// form's button rows.
func (m Model) renderBody() string {
	rows := m.visibleRows()
	if len(rows) == 0 {
		return m.theme.Styles().FaintText.Render("  (no visible settings)")
	}

	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		lines = append(lines, m.renderRow(row, i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

// renderRow renders one table row: toggles as checkboxes, text cells
// with search highlights applied, input cells dimmed.
func (m Model) renderRow(row *tablemeta.Row, selected bool) string {
	styles := m.theme.Styles()

	var b strings.Builder
	for _, toggle := range row.Controls() {
		box := "[ ]"
		if toggle.Checked {
			box = "[x]"
		}
		b.WriteString(styles.AccentText.Render(box))
		if toggle.Label != "" {
			b.WriteString(" ")
			b.WriteString(styles.Text.Render(toggle.Label))
		}
		b.WriteString("  ")
	}

	for _, cell := range row.Cells() {
		if cell.Text == "" {
			continue
		}
		if cell.Input {
			b.WriteString(styles.MutedText.Render("[" + cell.Text + "]"))
			b.WriteString(" ")
			continue
		}
		b.WriteString(renderHighlighted(cell, styles))
		b.WriteString(" ")
	}

	line := "  " + strings.TrimRight(b.String(), " ")
	if selected {
		return styles.Selected.Render("▌") + line
	}
	return " " + line
}

// renderHighlighted renders a text cell with its match spans in the
// highlight style and the rest in plain text.
func renderHighlighted(cell tablemeta.Cell, styles Styles) string {
	if len(cell.Highlights) == 0 {
		return styles.Text.Render(cell.Text)
	}

	var b strings.Builder
	pos := 0
	for _, span := range cell.Highlights {
		if span.Start > pos {
			b.WriteString(styles.Text.Render(cell.Text[pos:span.Start]))
		}
		b.WriteString(styles.Highlight.Render(cell.Text[span.Start:span.End]))
		pos = span.End
	}
	if pos < len(cell.Text) {
		b.WriteString(styles.Text.Render(cell.Text[pos:]))
	}
	return b.String()
}

// renderFinder renders the search input line.
func (m Model) renderFinder() string {
	styles := m.theme.Styles()
	line := m.find.View()
	if query := m.find.Value(); query != "" && m.meta != nil {
		matches := 0
		for _, s := range m.meta.Sections {
			if s.ContainsText(query) {
				matches++
			}
		}
		line += "  " + styles.MutedText.Render(fmt.Sprintf("%d sections match", matches))
	}
	return line
}

// renderFooter renders the command hints bar.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	type cmd struct{ key, desc string }
	commands := []cmd{
		{"Tab", "Next section"},
		{"/", "Find"},
		{"Space", "Toggle"},
		{"t", "Tabs"},
		{"f", "Finder"},
		{"T", m.theme.Name},
		{"?", "Help"},
		{"q", "Quit"},
	}

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			styles.AccentText.Render(c.key)+":"+styles.MutedText.Render(c.desc))
	}

	if m.diagBuf != nil {
		if lines := m.diagBuf.Lines(); len(lines) > 0 {
			segments = append(segments,
				styles.WarningText.Render(truncate(lines[len(lines)-1], 40)))
		}
	}

	return styles.Footer.Width(m.width).Render(strings.Join(segments, "  "))
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	rows := [][2]string{
		{"Tab / Shift+Tab", "Next / previous section"},
		{"← → / h l", "Previous / next section"},
		{"1-9", "Jump to section"},
		{"j k / ↑ ↓", "Move cursor"},
		{"g / G", "First / last row"},
		{"Space, Enter", "Toggle the setting under the cursor"},
		{"/", "Focus the finder"},
		{"Esc", "Clear the finder"},
		{"f", "Show or hide the finder"},
		{"t", "Switch between tabs and section list"},
		{"T", "Cycle theme"},
		{"?", "This help"},
		{"q, Ctrl+C", "Quit"},
	}

	var b strings.Builder
	b.WriteString(styles.SectionTitle.Render("tabula keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			styles.AccentText.Render(fmt.Sprintf("%-16s", r[0])),
			styles.Text.Render(r[1])))
	}
	if m.diagBuf != nil {
		if lines := m.diagBuf.Lines(); len(lines) > 0 {
			b.WriteString("\n")
			b.WriteString(styles.WarningText.Render("recent warnings"))
			b.WriteString("\n")
			start := len(lines) - 5
			if start < 0 {
				start = 0
			}
			for _, line := range lines[start:] {
				b.WriteString("  " + styles.MutedText.Render(truncate(line, 76)) + "\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  press any key to close"))
	return b.String()
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

// truncateMiddle truncates a string in the middle, preserving start and end.
func truncateMiddle(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 5 {
		return s[:max]
	}
	// Keep more of the end (file name) than the start
	endLen := (max - 3) * 2 / 3
	startLen := max - 3 - endLen
	return s[:startLen] + "..." + s[len(s)-endLen:]
}
