// Package state provides thread-safe document state for the Tabula
// application.
//
// # Overview
//
// This package implements a simple but thread-safe store for sharing the
// parsed configuration document between the watcher's reload subscriber
// and the UI. It acts as the coordination point where reloads meet
// rendering.
//
// # Architecture
//
// The package follows a producer-consumer pattern:
//
//	Producer (reload subscriber):   Consumer (UI):
//	┌────────────────────┐         ┌─────────────────┐
//	│ htmlform.ParseFile │         │                 │
//	│        ↓           │         │                 │
//	│   store.Update()   │────────→│ store.Snapshot()│
//	│        ↓           │ (mutex) │        ↓        │
//	│     repeat...      │         │  rebuild engine │
//	└────────────────────┘         └─────────────────┘
//
// # Update Semantics
//
// The Update method has special error handling behavior:
//
//	// Success case: replace the document
//	store.Update(doc, nil)
//	→ snapshot.Doc = doc
//	→ snapshot.LastError = nil
//	→ snapshot.ConsecutiveFailures = 0
//
//	// Error case: keep the old document, record the error
//	store.Update(nil, err)
//	→ snapshot.Doc = <unchanged>
//	→ snapshot.LastError = err
//	→ snapshot.ConsecutiveFailures++
//
// This ensures the UI always has the most recent successfully parsed
// document to display, while also being informed of reload failures.
// After two consecutive failures the snapshot reports itself stale so
// the UI can warn that the display may no longer match the file.
//
// # Testing Considerations
//
// The Store is safe to construct with zero value:
//
//	store := &state.Store{}  // Ready to use immediately
//
// Snapshot() returns a zero Snapshot (HasDoc false) if never updated.
package state
