package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rdavey/tabula/internal/bus"
)

func TestWatcher_PublishesAfterQuietWindow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.html")
	if err := os.WriteFile(path, []byte("<form name=\"config\"></form>"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	b := bus.New()
	events := make(chan bus.Event, 4)
	b.Subscribe(bus.RunStateChange, func(e bus.Event) { events <- e })

	w, err := Start(path, 10*time.Millisecond, b)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("<form name=\"config\"><table></table></form>"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case evt := <-events:
		if evt.Job != path {
			t.Fatalf("event Job = %q, want %q", evt.Job, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event published after write")
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.html")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	b := bus.New()
	events := make(chan bus.Event, 4)
	b.Subscribe(bus.RunStateChange, func(e bus.Event) { events <- e })

	w, err := Start(path, 10*time.Millisecond, b)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.html"), []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case evt := <-events:
		t.Fatalf("unexpected event for sibling file: %+v", evt)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestStart_MissingDirectoryErrors(t *testing.T) {
	b := bus.New()
	_, err := Start(filepath.Join(t.TempDir(), "nope", "config.html"), time.Millisecond, b)
	if err == nil {
		t.Fatal("Start returned nil error for missing directory")
	}
}
