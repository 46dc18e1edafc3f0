package store

import (
	"context"
	"sync"
)

// MemorySlotRepo keeps slots in process memory. Nothing survives a restart.
type MemorySlotRepo struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemorySlotRepo returns an empty in-memory repo.
func NewMemorySlotRepo() *MemorySlotRepo {
	return &MemorySlotRepo{slots: make(map[string][]byte)}
}

func (r *MemorySlotRepo) Get(_ context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, ErrInvalidSlotName
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.slots[name]
	if !ok {
		return nil, ErrSlotNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (r *MemorySlotRepo) Put(_ context.Context, name string, data []byte) error {
	if name == "" {
		return ErrInvalidSlotName
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	r.mu.Lock()
	r.slots[name] = cp
	r.mu.Unlock()
	return nil
}

func (r *MemorySlotRepo) Delete(_ context.Context, name string) error {
	if name == "" {
		return ErrInvalidSlotName
	}
	r.mu.Lock()
	delete(r.slots, name)
	r.mu.Unlock()
	return nil
}
