package service

import (
	"context"
	"sync"
)

// KeyedMutex is an in-process SubjectLocker: one mutex per key, created on
// first use. Suitable for single-instance deployments and tests; multi
// instance deployments use the Redis-backed locker instead.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Acquire locks the key's mutex and returns its unlock function. Key mutexes
// are never evicted; the key space (one per instructor) is small.
func (k *KeyedMutex) Acquire(_ context.Context, key string) (func(), error) {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock, nil
}
