// Package ui provides the terminal user interface for Tabula.
//
// # Architecture Overview
//
// The UI is built on Bubble Tea's model-update-view loop. A single root
// Model owns the section engine (tablemeta.TableMeta), the finder input,
// and the body viewport; every keystroke and external notification flows
// through Update.
//
// # Package Structure
//
// The package is organized into focused modules:
//
//   - model.go: Root Model, message handling, key bindings, and the Run function
//   - view.go: Header, navigation bar, body, finder, footer, and help rendering
//   - theme.go: Color themes and pre-built Lipgloss styles
//   - activator.go: The navigation affordance the section engine drives
//
// # Engine Integration
//
// The Model constructs a TableMeta from the latest document snapshot and
// attaches a tabActivator to every section. The engine's deferred
// show-listeners run through a manual scheduler the Model drains at the
// end of each update, so listeners observe fully mutated row state but
// never interleave with an activation in progress.
//
// # Navigation
//
// Sections render either as a horizontal tab bar or as a compact section
// list, controlled by the "use tabs" preference. The finder narrows the
// visible affordances to matching sections after a quiet window; matches
// in the active section's rows are highlighted inline.
//
// # External Notifications
//
// File watchers inject DocReloaded through the injector handed to
// Options.OnReady. On reload the Model rebuilds the engine, carrying over
// the active section and any pending search query.
package ui
