package state

import (
	"errors"
	"testing"

	"github.com/rdavey/tabula/internal/htmlform"
)

func TestStore_UpdateAndSnapshot(t *testing.T) {
	store := &Store{}

	if snap := store.Snapshot(); snap.HasDoc {
		t.Fatal("zero-value store should have no document")
	}

	doc := &htmlform.Document{}
	store.Update(doc, nil)

	snap := store.Snapshot()
	if !snap.HasDoc || snap.Doc != doc {
		t.Fatal("document not stored")
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v", snap.LastError)
	}
	if snap.LastUpdated.IsZero() {
		t.Fatal("LastUpdated not set")
	}
}

func TestStore_ErrorKeepsPreviousDocument(t *testing.T) {
	store := &Store{}
	doc := &htmlform.Document{}
	store.Update(doc, nil)

	parseErr := errors.New("parse document: boom")
	store.Update(nil, parseErr)

	snap := store.Snapshot()
	if snap.Doc != doc {
		t.Fatal("previous document should be kept on error")
	}
	if snap.LastError == nil || !errors.Is(snap.LastError, parseErr) {
		t.Fatalf("LastError = %v", snap.LastError)
	}
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d", snap.ConsecutiveFailures)
	}
}

func TestStore_StaleAfterRepeatedFailures(t *testing.T) {
	store := &Store{}
	store.Update(&htmlform.Document{}, nil)

	if store.Snapshot().IsStale() {
		t.Fatal("fresh store reported stale")
	}

	err := errors.New("boom")
	store.Update(nil, err)
	store.Update(nil, err)

	if !store.Snapshot().IsStale() {
		t.Fatal("store should be stale after two consecutive failures")
	}

	store.Update(&htmlform.Document{}, nil)
	if store.Snapshot().IsStale() {
		t.Fatal("successful update should reset the failure count")
	}
}
