package store

import (
	"sync"

	"github.com/smbtab/smbtab/pkg/smbios"
)

// MemStore is an in-memory table store. It backs tests and fixture runs,
// and is the reference behavior the persistent stores mirror.
type MemStore struct {
	mu      sync.Mutex
	next    smbios.Handle
	table   []byte
	records map[smbios.Handle][]byte
}

// NewMemStore creates an empty in-memory table.
func NewMemStore() *MemStore {
	return &MemStore{
		next:    FirstHandle,
		records: make(map[smbios.Handle][]byte),
	}
}

// Add registers rec, patching in the assigned handle.
func (m *MemStore) Add(rec []byte) (smbios.Handle, error) {
	if err := validateRecord(rec); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.next > LastHandle {
		return 0, ErrExhausted
	}

	h := m.next
	stored := withHandle(rec, h)
	m.table = append(m.table, stored...)
	m.records[h] = stored
	m.next++

	return h, nil
}

// Get returns the stored bytes for a handle.
func (m *MemStore) Get(h smbios.Handle) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[h]
	return rec, ok
}

// Len returns the number of registered records.
func (m *MemStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.records)
}

// Bytes returns a copy of the flattened table in registration order.
func (m *MemStore) Bytes() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]byte, len(m.table))
	copy(out, m.table)
	return out, nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}
