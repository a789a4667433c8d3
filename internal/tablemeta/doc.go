// Package tablemeta is the sectioning and navigation engine for one
// configuration table.
//
// # Overview
//
// A configuration form arrives as one long, flat table. This package
// imposes structure on it: rows are partitioned into titled sections,
// each section owns conditionally-visible row groups gated by toggle
// controls, and a per-table state machine drives section activation,
// incremental search, and preference persistence.
//
// The engine is presentation-free. It works on an ordered list of Row
// handles carrying classification marks and text cells; the document
// layer (htmlform) produces the rows, the UI layer attaches navigation
// affordances and renders visibility state.
//
// # Components
//
//   - row.go: Row handle, classification marks, cells, highlight spans
//   - id.go: title-to-id slug normalization and the search matcher
//   - classify.go: partitions rows into sections at header boundaries
//   - rowset.go: conditional row group bound to one toggle control
//   - section.go: one titled row range with lazy row-set extraction
//   - metadata.go: the per-table state machine (TableMeta)
//
// # Section Classification
//
// A row marked as a section header starts a new section and belongs to
// it; rows before the first header fall into an implicit "General"
// section. Every row lands in exactly one section, so concatenating the
// sections' rows in order reproduces the original row sequence. Rows
// carrying the button-bar mark are pulled out after classification and
// shown with every section.
//
// Malformed input degrades instead of failing: a table without headers
// becomes a single "General" section, a table without rows produces no
// sections at all (logged, non-fatal).
//
// # Row-Sets
//
// Inside a section, rows between a start and end marker form a row-set
// whose visibility follows one toggle control's checked state. A group
// is only retained when both its end marker and a toggle were found;
// anything else is silently discarded. Nesting is unsupported: a start
// marker inside an open group replaces it.
//
// # Activation
//
// At most one section is active at a time. ShowSection hides everything,
// shows the target's rows plus the button rows, syncs row-set
// visibility, re-applies the current search highlight, and then fires
// registered show-listeners through the injected scheduler so they run
// after the activation's own row mutations, FIFO per activation.
//
// # Search
//
// ShowSections filters the section list by case-insensitive literal
// match over non-input text. Matching sections keep their affordances
// visible and the first match is activated; with no matches nothing is
// force-activated. The same matcher drives inline highlighting, so the
// filter never keeps a section the highlighter cannot mark.
//
// # Dependencies
//
// The constructor takes two small injected interfaces: sched.Scheduler
// for listener deferral and prefs.Store for the use-tabs, show-finder,
// and last-active-section preferences. Tests pass sched.Manual and
// prefs.MemStore for deterministic, storage-free runs.
package tablemeta
