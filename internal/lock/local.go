package lock

import (
	"context"
	"sync"
)

type localEntry struct {
	ch   chan struct{}
	refs int
}

// LocalManager is an in-process Manager keyed by string. Suitable for a
// single-instance deployment and for tests.
type LocalManager struct {
	mu      sync.Mutex
	entries map[string]*localEntry
}

func NewLocalManager() *LocalManager {
	return &LocalManager{entries: make(map[string]*localEntry)}
}

func (m *LocalManager) Acquire(ctx context.Context, key string) (func(), error) {
	m.mu.Lock()
	entry, ok := m.entries[key]
	if !ok {
		entry = &localEntry{ch: make(chan struct{}, 1)}
		m.entries[key] = entry
	}
	entry.refs++
	m.mu.Unlock()

	select {
	case entry.ch <- struct{}{}:
	case <-ctx.Done():
		m.release(key, entry, false)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			m.release(key, entry, true)
		})
	}, nil
}

func (m *LocalManager) release(key string, entry *localEntry, held bool) {
	if held {
		<-entry.ch
	}
	m.mu.Lock()
	entry.refs--
	if entry.refs == 0 {
		delete(m.entries, key)
	}
	m.mu.Unlock()
}
