// Package diag captures log output in a bounded in-memory buffer so the
// UI can surface recent warnings without writing to the terminal, which
// the TUI owns while it is running.
package diag

import (
	"strings"
	"sync"
)

// Buffer is an io.Writer that keeps the most recent lines written to it.
// It is safe for concurrent use; the standard log package serializes
// writes but the watcher goroutine reads lines back concurrently.
type Buffer struct {
	mu      sync.Mutex
	max     int
	ring    []string
	next    int
	count   int
	partial strings.Builder
}

// NewBuffer returns a buffer retaining at most maxLines lines.
func NewBuffer(maxLines int) *Buffer {
	if maxLines <= 0 {
		maxLines = 1
	}
	return &Buffer{max: maxLines, ring: make([]string, maxLines)}
}

// Write implements io.Writer. Input is split on newlines; a trailing
// fragment without a newline is held until the next write completes it.
func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, c := range string(p) {
		if c == '\n' {
			b.push(b.partial.String())
			b.partial.Reset()
			continue
		}
		b.partial.WriteRune(c)
	}
	return len(p), nil
}

func (b *Buffer) push(line string) {
	b.ring[b.next] = line
	b.next = (b.next + 1) % b.max
	if b.count < b.max {
		b.count++
	}
}

// Lines returns the retained lines, oldest first.
func (b *Buffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	lines := make([]string, b.count)
	if b.count == b.max {
		for i := 0; i < b.count; i++ {
			lines[i] = b.ring[(b.next+i)%b.max]
		}
	} else {
		copy(lines, b.ring[:b.count])
	}
	return lines
}

// Len returns the number of complete lines currently retained.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}
