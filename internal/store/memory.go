package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

var _ Store = (*Memory)(nil)

// Memory is an in-process Store.
type Memory struct {
	mu      sync.RWMutex
	records map[Key]Record
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		records: make(map[Key]Record),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (m *Memory) Upsert(_ context.Context, rec Record) (Record, error) {
	if err := rec.Key.Validate(); err != nil {
		return Record{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ts := m.now()
	if existing, ok := m.records[rec.Key]; ok {
		rec.ID = existing.ID
		rec.CreatedAt = existing.CreatedAt
	} else {
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
		rec.CreatedAt = ts
	}
	rec.UpdatedAt = ts

	m.records[rec.Key] = rec
	return rec, nil
}

func (m *Memory) Get(_ context.Context, key Key) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[key]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}
