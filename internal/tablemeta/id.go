package tablemeta

import (
	"regexp"
	"strings"
)

const idPrefix = "config_"

// ButtonsID tags the always-visible action-button rows.
var ButtonsID = ToID("buttons")

var nonWord = regexp.MustCompile(`[\W_]+`)

// ToID normalizes a section title into its id: trimmed, lowercased, with
// every run of non-alphanumeric characters collapsed to one underscore,
// under a fixed namespace prefix. Ids are deterministic functions of the
// title, so duplicate titles collide (first section wins on lookup).
func ToID(title string) string {
	return idPrefix + strings.ToLower(nonWord.ReplaceAllString(strings.TrimSpace(title), "_"))
}

// matchPattern compiles a case-insensitive literal matcher for query.
// Both section filtering and highlighting use the same matcher so the
// filter never keeps a section the highlighter cannot mark.
func matchPattern(query string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(query))
}
