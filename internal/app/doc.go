// Package app provides the orchestration layer for the Tabula application.
//
// # Overview
//
// This package wires together configuration, preference storage, document
// parsing, the file watcher, and the UI to create the complete Tabula TUI
// experience. It serves as the composition root where all dependencies are
// initialized and connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load configuration from ~/.config/tabula/config.toml
//  2. Open the preference file, scoped to the document being viewed
//  3. Redirect the standard logger into the diagnostic buffer
//  4. Parse the configuration document (fatal when it cannot be read)
//  5. Start the file watcher, publishing change events on the bus
//  6. Start the TUI and block until the user exits or the context cancels
//
// # Data Flow
//
//	Run()
//	 ├─> config.Load()          Read tunables
//	 ├─> prefs.NewFileStore()   Open preference file
//	 ├─> htmlform.ParseFile()   Initial document parse
//	 ├─> state.Store{}          Shared document container
//	 ├─> watch.Start()          Filesystem watcher → bus
//	 └─> ui.Run()               Start TUI (blocks)
//
//	On a file change:
//	 watcher → (quiet window) → bus.Publish
//	   → subscriber re-parses the document
//	   → store.Update
//	   → ui receives DocReloaded and rebuilds its sections
//
// # Error Handling
//
// The app package distinguishes between fatal and recoverable errors:
//
// Fatal errors (returned from Run):
//   - No document path given
//   - Configuration file present but invalid
//   - Initial document parse failure
//   - Watcher startup failure
//
// Recoverable errors (recorded in the store, surfaced in the UI):
//   - Re-parse failures after a file change; the previous document stays
//     on screen and the snapshot is flagged stale after repeated failures
//
// # Configuration
//
// The Options struct allows callers to customize:
//
//   - DocPath: The configuration document to view (required)
//   - ConfigPath: Path to config.toml (default: ~/.config/tabula/config.toml)
//   - PrefsPath: Path to prefs.toml (default comes from config)
//   - NoWatch: Disable the file watcher entirely
//
// # Design Rationale
//
// This package intentionally keeps orchestration logic minimal and focused.
// Business logic lives in domain packages (tablemeta, htmlform, watch, ui).
// The app package simply connects these pieces with sensible defaults for
// the single-document viewing use case.
package app
