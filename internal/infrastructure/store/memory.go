package store

import (
	"context"
	"sync"
)

// MemoryBackend keeps the session in process memory only.
type MemoryBackend struct {
	mu      sync.Mutex
	entries map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{entries: map[string]string{}}
}

func (b *MemoryBackend) Name() string { return "memory" }

func (b *MemoryBackend) Load(_ context.Context) (map[string]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return copyEntries(b.entries), nil
}

func (b *MemoryBackend) Save(_ context.Context, entries map[string]string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = copyEntries(entries)
	return nil
}

func (b *MemoryBackend) Remove(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = map[string]string{}
	return nil
}

// Set writes a single raw entry. Used to seed partial or corrupt state.
func (b *MemoryBackend) Set(key, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[key] = value
}

func copyEntries(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
