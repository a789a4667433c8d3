package diag

import (
	"fmt"
	"log"
	"testing"
)

func TestBuffer_SplitsOnNewlines(t *testing.T) {
	b := NewBuffer(10)

	fmt.Fprint(b, "first\nsecond\n")

	lines := b.Lines()
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if lines[0] != "first" || lines[1] != "second" {
		t.Fatalf("lines = %v", lines)
	}
}

func TestBuffer_HoldsPartialLineAcrossWrites(t *testing.T) {
	b := NewBuffer(10)

	fmt.Fprint(b, "split ")
	if b.Len() != 0 {
		t.Fatalf("Len = %d before newline, want 0", b.Len())
	}
	fmt.Fprint(b, "line\n")

	lines := b.Lines()
	if len(lines) != 1 || lines[0] != "split line" {
		t.Fatalf("lines = %v", lines)
	}
}

func TestBuffer_DropsOldestBeyondCapacity(t *testing.T) {
	b := NewBuffer(3)
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(b, "line %d\n", i)
	}

	lines := b.Lines()
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	if lines[0] != "line 3" || lines[2] != "line 5" {
		t.Fatalf("lines = %v", lines)
	}
}

func TestBuffer_WorksAsLogOutput(t *testing.T) {
	b := NewBuffer(5)
	logger := log.New(b, "", 0)
	logger.Printf("section %s has no rows", "config_general")

	lines := b.Lines()
	if len(lines) != 1 || lines[0] != "section config_general has no rows" {
		t.Fatalf("lines = %v", lines)
	}
}
