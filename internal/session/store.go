package session

import (
	"context"
	"sync"
	"time"

	"lifeplan/internal/form"
)

// Store keeps form snapshots between requests and across restarts.
type Store interface {
	Get(ctx context.Context, id string) (form.Snapshot, bool, error)
	Set(ctx context.Context, id string, snap form.Snapshot, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	snap    form.Snapshot
	expires time.Time
}

type MemoryStore struct {
	mu   sync.Mutex
	data map[string]memoryEntry
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (form.Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data[id]
	if !ok {
		return form.Snapshot{}, false, nil
	}
	if m.now().After(entry.expires) {
		delete(m.data, id)
		return form.Snapshot{}, false, nil
	}
	return entry.snap, true, nil
}

func (m *MemoryStore) Set(_ context.Context, id string, snap form.Snapshot, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[id] = memoryEntry{snap: snap, expires: m.now().Add(ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, id)
	return nil
}
