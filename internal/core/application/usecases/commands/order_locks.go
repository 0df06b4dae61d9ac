package commands

import (
	"sync"

	"dispatch/internal/core/domain/model/kernel"
)

// OrderLockManager serializes lifecycle operations per order. Two concurrent
// requests touching the same order run one after the other; operations on
// different orders proceed in parallel. Locks are created on first use and
// kept for the process lifetime.
type OrderLockManager struct {
	mu    sync.Mutex
	locks map[kernel.UUID]*sync.Mutex
}

// NewOrderLockManager creates an empty lock manager.
func NewOrderLockManager() *OrderLockManager {
	return &OrderLockManager{
		locks: make(map[kernel.UUID]*sync.Mutex),
	}
}

// Lock acquires the lock for the given order and returns the matching unlock
// function.
func (m *OrderLockManager) Lock(orderID kernel.UUID) func() {
	m.mu.Lock()
	lock, ok := m.locks[orderID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[orderID] = lock
	}
	m.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
