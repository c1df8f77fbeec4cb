package keystore

import (
	"context"
	"sync"
)

// MemoryKeystore is a process-local Keystore, used in tests and when no
// durable store is wanted.
type MemoryKeystore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryKeystore() *MemoryKeystore {
	return &MemoryKeystore{data: make(map[string]string)}
}

func (k *MemoryKeystore) Get(_ context.Context, key string) (string, bool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	val, ok := k.data[key]
	return val, ok, nil
}

func (k *MemoryKeystore) Set(_ context.Context, key, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.data[key] = value
	return nil
}

func (k *MemoryKeystore) Delete(_ context.Context, keys ...string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, key := range keys {
		delete(k.data, key)
	}
	return nil
}
