package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/rdavey/tabula/internal/htmlform"
)

// Snapshot is the latest parsed document available to the UI.
type Snapshot struct {
	Doc                 *htmlform.Document
	HasDoc              bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsStale reports whether the document has failed to refresh repeatedly,
// so the UI can flag that what it shows may no longer match the file.
func (s Snapshot) IsStale() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates document updates between the watcher goroutine and
// the UI loop.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored document. When err is non-nil the previous
// document is kept but the error is recorded for visibility.
func (s *Store) Update(doc *htmlform.Document, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Doc = doc
	s.snapshot.HasDoc = doc != nil
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns the current snapshot. The document pointer is shared:
// the UI loop is its only consumer and takes ownership of walking it.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
