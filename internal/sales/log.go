package sales

import (
	"context"
	"sort"
	"sync"
)

// Log is the append-only sale history, scoped to the owning account.
type Log interface {
	Append(ctx context.Context, owner string, rec Record) error
	List(ctx context.Context, owner string) ([]Record, error)
}

// InMemoryLog implements Log with in-process concurrency safety.
type InMemoryLog struct {
	mu      sync.RWMutex
	records map[string][]Record // owner -> records
}

// NewInMemoryLog creates an empty sale history.
func NewInMemoryLog() *InMemoryLog {
	return &InMemoryLog{records: make(map[string][]Record)}
}

var _ Log = (*InMemoryLog)(nil)

func (l *InMemoryLog) Append(ctx context.Context, owner string, rec Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records[owner] = append(l.records[owner], rec)
	return nil
}

// List returns the account's sales newest first.
func (l *InMemoryLog) List(ctx context.Context, owner string) ([]Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Record, len(l.records[owner]))
	copy(out, l.records[owner])
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
