package core

import (
	"fmt"
	"sync"
	"time"
)

// LogEntry is a single line of the operation log.
type LogEntry struct {
	Time    time.Time
	Message string
}

func (e LogEntry) String() string {
	return fmt.Sprintf("%s - %s", e.Time.Format(time.TimeOnly), e.Message)
}

// OperationLog is an in-memory, append-only trail of sandbox operations.
// It is for display only: nothing is persisted and entries are never evicted.
type OperationLog struct {
	mu      sync.Mutex
	entries []LogEntry
	now     func() time.Time
}

// NewOperationLog creates an empty log. A nil clock uses time.Now.
func NewOperationLog(now func() time.Time) *OperationLog {
	if now == nil {
		now = time.Now
	}
	return &OperationLog{now: now}
}

// Append records message with the current time.
func (l *OperationLog) Append(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Time: l.now(), Message: message})
}

// Entries returns a copy of the log, newest first.
func (l *OperationLog) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]LogEntry, len(l.entries))
	for i, e := range l.entries {
		out[len(l.entries)-1-i] = e
	}
	return out
}

// Len returns the number of entries.
func (l *OperationLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
