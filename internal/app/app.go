package app

import (
	"context"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rdavey/tabula/internal/bus"
	"github.com/rdavey/tabula/internal/config"
	"github.com/rdavey/tabula/internal/diag"
	"github.com/rdavey/tabula/internal/htmlform"
	"github.com/rdavey/tabula/internal/prefs"
	"github.com/rdavey/tabula/internal/state"
	"github.com/rdavey/tabula/internal/ui"
	"github.com/rdavey/tabula/internal/watch"
)

// Options configure the Tabula application.
type Options struct {
	DocPath    string // configuration document to view (required)
	ConfigPath string // empty uses default ~/.config/tabula/config.toml
	PrefsPath  string // empty uses the path from config
	NoWatch    bool   // disable the file watcher
}

// Run boots the Tabula TUI until the context is cancelled or the user
// quits.
func Run(ctx context.Context, opts Options) error {
	if opts.DocPath == "" {
		return fmt.Errorf("no document path given")
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = cfg.PrefsPath
	}
	store := prefs.NewFileStore(prefsPath, opts.DocPath)

	// The TUI owns the terminal, so everything logged through the
	// standard logger lands in a bounded buffer the UI surfaces.
	diagBuf := diag.NewBuffer(200)
	log.SetFlags(0)
	log.SetOutput(diagBuf)

	doc, err := htmlform.ParseFile(opts.DocPath)
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	docs := &state.Store{}
	docs.Update(doc, nil)

	events := bus.New()
	if !opts.NoWatch {
		watcher, err := watch.Start(opts.DocPath, cfg.WatchQuiet, events)
		if err != nil {
			return fmt.Errorf("watch document: %w", err)
		}
		defer watcher.Close()
	}

	uiOpts := ui.Options{
		Context: ctx,
		Store:   docs,
		Config:  cfg,
		Prefs:   store,
		Diag:    diagBuf,
		DocPath: opts.DocPath,
		OnReady: func(send func(tea.Msg)) {
			events.Subscribe(bus.RunStateChange, func(bus.Event) {
				reloaded, err := htmlform.ParseFile(opts.DocPath)
				docs.Update(reloaded, err)
				send(ui.DocReloaded{})
			})
		},
	}

	return ui.Run(uiOpts)
}
