package engine

import (
	"sync"
)

// Entry type IDs used by the handle table to keep value handles and cursor
// handles from crossing over.
const (
	slotValue uint32 = iota + 1
	slotArrayIter
	slotObjectIter
	slotStringIter
)

// table is the engine's handle table: a slice of entries plus a free list.
// Handle 0 is reserved and always invalid.
type table struct {
	entries  []slot
	freeList []Handle
	mu       sync.RWMutex
}

type slot struct {
	value  any
	typeID uint32
	valid  bool
}

func newTable(capacity int) *table {
	if capacity <= 0 {
		capacity = 64
	}
	return &table{
		entries:  make([]slot, 0, capacity),
		freeList: make([]Handle, 0, 16),
	}
}

// insert stores a value and returns its handle.
func (t *table) insert(typeID uint32, value any) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := slot{
		typeID: typeID,
		value:  value,
		valid:  true,
	}

	if len(t.freeList) > 0 {
		h := t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[h-1] = s
		return h
	}

	t.entries = append(t.entries, s)
	return Handle(len(t.entries))
}

// get retrieves a value by handle, checking the slot type.
func (t *table) get(h Handle, typeID uint32) (any, bool) {
	if h == 0 {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	idx := h - 1
	if uint64(idx) >= uint64(len(t.entries)) {
		return nil, false
	}

	s := t.entries[idx]
	if !s.valid || s.typeID != typeID {
		return nil, false
	}
	return s.value, true
}

// drop removes an entry and returns its value. Dropping an invalid or
// already dropped handle is a no-op.
func (t *table) drop(h Handle) (any, bool) {
	if h == 0 {
		return nil, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	idx := h - 1
	if uint64(idx) >= uint64(len(t.entries)) {
		return nil, false
	}

	s := &t.entries[idx]
	if !s.valid {
		return nil, false
	}

	value := s.value
	s.valid = false
	s.value = nil
	t.freeList = append(t.freeList, h)

	return value, true
}

// len returns the number of live entries.
func (t *table) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for _, s := range t.entries {
		if s.valid {
			count++
		}
	}
	return count
}
