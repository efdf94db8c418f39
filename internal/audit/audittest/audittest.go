// AngelaMos | 2026
// audittest.go

// Package audittest provides an in-memory audit.Auditor for tests.
package audittest

import (
	"context"
	"sync"

	"github.com/advotec/advotec-api/internal/audit"
)

type Entry struct {
	Action   audit.Action
	Table    string
	RecordID string
	ActorID  string
}

type Auditor struct {
	mu      sync.Mutex
	entries []Entry
}

func (a *Auditor) Record(
	_ context.Context,
	action audit.Action,
	table, recordID, actorID string,
) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.entries = append(a.entries, Entry{
		Action:   action,
		Table:    table,
		RecordID: recordID,
		ActorID:  actorID,
	})
}

func (a *Auditor) Entries() []Entry {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}

var _ audit.Auditor = (*Auditor)(nil)
