package tablemeta

import "strings"

// classify partitions topRows, in order, into sections. Every row lands
// in exactly one section: a header row starts a new section and belongs
// to it, and rows before the first header fall into an implicit "General"
// section, which is always present even when it ends up empty. Malformed
// or missing headers therefore degrade to a single "General" section
// rather than failing.
func classify(meta *TableMeta, topRows []*Row) []*Section {
	if len(topRows) == 0 {
		return nil
	}
	general := newSection(meta, "General")
	sections := []*Section{general}
	cur := general

	for _, row := range topRows {
		if row.Has(MarkSectionHeader) {
			cur = newSection(meta, headerTitle(row))
			sections = append(sections, cur)
		}
		cur.Rows = append(cur.Rows, row)
		row.sectionID = cur.ID
	}
	return sections
}

// headerTitle derives a section title from a header row: the row's
// visible text with one leading marker hash stripped.
func headerTitle(row *Row) string {
	title := strings.TrimSpace(row.Text())
	title = strings.TrimPrefix(title, "#")
	return strings.TrimSpace(title)
}
