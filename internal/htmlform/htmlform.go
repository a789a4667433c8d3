// Package htmlform turns an HTML configuration form into the ordered
// row model the table engine works on. Only the marker conventions
// matter: rows are classified by the presence of the section-header,
// row-set-start, row-set-end and block-control classes, never by
// attribute values beyond the toggle's checked state.
package htmlform

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/rdavey/tabula/internal/tablemeta"
)

const (
	classSectionHeader = "section-header"
	classRowSetStart   = "row-set-start"
	classRowSetEnd     = "row-set-end"
	classBlockControl  = "block-control"
	configFormName     = "config"
	buttonBarID        = "bottom-sticker"
)

// Document is one parsed page holding its configuration tables.
type Document struct {
	Tables []*Table
}

// Table is one configuration table: the owning form's name plus the
// table's top-level rows in document order.
type Table struct {
	FormName string
	Rows     []*tablemeta.Row
}

// ParseFile parses the HTML document at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads an HTML document and extracts every configuration table:
// the immediate child tables of forms named "config".
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	doc := &Document{}
	walkElements(root, func(n *html.Node) {
		if !isConfigForm(n) {
			return
		}
		table := directChild(n, "table")
		if table == nil {
			return
		}
		doc.Tables = append(doc.Tables, buildTable(n, table))
	})
	return doc, nil
}

func isConfigForm(n *html.Node) bool {
	return n.Type == html.ElementNode && n.Data == "form" && attrOf(n, "name") == configFormName
}

func buildTable(form, table *html.Node) *Table {
	t := &Table{FormName: attrOf(form, "name")}

	body := directChild(table, "tbody")
	if body == nil {
		// The parser inserts tbody for well-formed tables; fall back to
		// the table itself for fragments.
		body = table
	}

	index := 0
	for tr := body.FirstChild; tr != nil; tr = tr.NextSibling {
		if !isElement(tr, "tr") {
			continue
		}
		t.Rows = append(t.Rows, buildRow(index, tr))
		index++
	}
	return t
}

func buildRow(index int, tr *html.Node) *tablemeta.Row {
	var marks tablemeta.Mark
	if hasClass(tr, classRowSetStart) {
		marks |= tablemeta.MarkRowSetStart
	}
	if hasClass(tr, classRowSetEnd) {
		marks |= tablemeta.MarkRowSetEnd
	}
	if hasClass(tr, classSectionHeader) || hasDescendantClass(tr, classSectionHeader) {
		marks |= tablemeta.MarkSectionHeader
	}
	if hasDescendantID(tr, buttonBarID) {
		marks |= tablemeta.MarkButtonBar
	}

	var cells []tablemeta.Cell
	var controls []*tablemeta.Toggle
	collectContent(tr, &cells, &controls)

	return tablemeta.NewRow(index, marks, cells, controls...)
}

// collectContent flattens a row's subtree into text cells and toggle
// controls. Control values become input cells so they stay out of search
// matching; control subtrees are not descended into.
func collectContent(n *html.Node, cells *[]tablemeta.Cell, controls *[]*tablemeta.Toggle) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		switch {
		case child.Type == html.TextNode:
			if text := collapseSpace(child.Data); text != "" {
				*cells = append(*cells, tablemeta.Cell{Text: text})
			}
		case child.Type != html.ElementNode:
		case child.Data == "script" || child.Data == "style":
		case isFormControl(child):
			if value := attrOf(child, "value"); value != "" {
				*cells = append(*cells, tablemeta.Cell{Text: value, Input: true})
			}
			if hasClass(child, classBlockControl) {
				*controls = append(*controls, &tablemeta.Toggle{
					Name:    attrOf(child, "name"),
					Label:   controlLabel(child),
					Checked: hasAttr(child, "checked"),
				})
			}
		default:
			collectContent(child, cells, controls)
		}
	}
}

func isFormControl(n *html.Node) bool {
	switch n.Data {
	case "input", "select", "textarea", "button":
		return true
	}
	return false
}

// controlLabel finds the text of a label element next to the control.
func controlLabel(n *html.Node) string {
	parent := n.Parent
	if parent == nil {
		return ""
	}
	var label string
	walkElements(parent, func(e *html.Node) {
		if label == "" && e.Data == "label" {
			label = collapseSpace(nodeText(e))
		}
	})
	return label
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			visit(child)
		}
	}
	visit(n)
	return b.String()
}

func walkElements(n *html.Node, fn func(*html.Node)) {
	if n.Type == html.ElementNode {
		fn(n)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walkElements(child, fn)
	}
}

func directChild(n *html.Node, name string) *html.Node {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if isElement(child, name) {
			return child
		}
	}
	return nil
}

func isElement(n *html.Node, name string) bool {
	return n.Type == html.ElementNode && n.Data == name
}

func attrOf(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func hasClass(n *html.Node, class string) bool {
	for _, field := range strings.Fields(attrOf(n, "class")) {
		if field == class {
			return true
		}
	}
	return false
}

func hasDescendantClass(n *html.Node, class string) bool {
	found := false
	walkElements(n, func(e *html.Node) {
		if e != n && hasClass(e, class) {
			found = true
		}
	})
	return found
}

func hasDescendantID(n *html.Node, id string) bool {
	found := false
	walkElements(n, func(e *html.Node) {
		if attrOf(e, "id") == id {
			found = true
		}
	})
	return found
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
