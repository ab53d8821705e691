package grain

import (
	"sync"
)

// Instance is the read-only view of one live grain handed to render-side
// consumers. Snapshot fills these; writers never see them.
type Instance struct {
	Position    [3]float32
	Orientation [4]float32
}

// BatchEntry describes one grain to create in an AddBatch call.
type BatchEntry struct {
	Position    [3]float32
	Orientation [4]float32
	Hidden      bool
}

// grainSlot is the dense per-grain record.
type grainSlot struct {
	position    [3]float32
	orientation [4]float32
	hidden      bool
}

// storeImpl is the implementation of the Store interface.
type storeImpl struct {
	mu *sync.RWMutex

	// slots is the dense CPU-side grain data, the source of truth for grain
	// state. handles runs parallel to it so swap-remove can retarget the
	// handle of the slot that got moved.
	slots   []grainSlot
	handles []*grainImpl
}

// Store owns the live grain collection. Grain data lives in one dense array
// guarded by a single RWMutex; per-grain handles index into it. Readers take
// the read lock, so a Snapshot mid-mutation never observes a half-written
// batch.
type Store interface {
	// AddBatch creates one grain per entry under a single critical section.
	// Either every grain in the batch is visible to readers or none is.
	//
	// Parameters:
	//   - entries: the grains to create
	//
	// Returns:
	//   - []Grain: handles to the created grains, in entry order
	AddBatch(entries []BatchEntry) []Grain

	// Count returns the number of grains in the store, hidden included.
	//
	// Returns:
	//   - int: the grain count
	Count() int

	// Snapshot appends the position and orientation of every non-hidden grain
	// to dst and returns the extended slice. Pass a reused slice (reset to
	// length zero) to avoid per-frame allocations.
	//
	// Parameters:
	//   - dst: destination slice, appended to
	//
	// Returns:
	//   - []Instance: dst extended with all visible grains
	Snapshot(dst []Instance) []Instance

	// Clear removes every grain and invalidates all outstanding handles.
	Clear()
}

var _ Store = &storeImpl{}

// NewStore creates an empty grain store.
//
// Returns:
//   - Store: a new Store instance
func NewStore() Store {
	return &storeImpl{
		mu: &sync.RWMutex{},
	}
}

func (s *storeImpl) AddBatch(entries []BatchEntry) []Grain {
	if len(entries) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Grain, 0, len(entries))
	for _, e := range entries {
		h := &grainImpl{store: s, index: len(s.slots), valid: true}
		s.slots = append(s.slots, grainSlot{
			position:    e.Position,
			orientation: e.Orientation,
			hidden:      e.Hidden,
		})
		s.handles = append(s.handles, h)
		out = append(out, h)
	}
	return out
}

func (s *storeImpl) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.slots)
}

func (s *storeImpl) Snapshot(dst []Instance) []Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.slots {
		if s.slots[i].hidden {
			continue
		}
		dst = append(dst, Instance{
			Position:    s.slots[i].position,
			Orientation: s.slots[i].orientation,
		})
	}
	return dst
}

func (s *storeImpl) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, h := range s.handles {
		h.valid = false
	}
	s.slots = s.slots[:0]
	s.handles = s.handles[:0]
}

// remove deletes the slot at index by swapping the last slot into its place.
// Caller must hold the write lock via the handle path; this is only reached
// through Grain.Remove.
func (s *storeImpl) remove(index int) {
	last := len(s.slots) - 1
	if index != last {
		s.slots[index] = s.slots[last]
		s.handles[index] = s.handles[last]
		s.handles[index].index = index
	}
	s.slots = s.slots[:last]
	s.handles = s.handles[:last]
}
