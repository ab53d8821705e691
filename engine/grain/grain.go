package grain

// grainImpl is the implementation of the Grain interface. It stores no grain
// data itself; it indexes into the owning store's dense arrays.
type grainImpl struct {
	store *storeImpl
	index int
	valid bool
}

// Grain is a handle to one placed grain in a Store. Handles stay valid across
// other grains being removed (the store retargets them on swap-remove) and
// become invalid only when their own grain is removed or the store is cleared.
// Operations on an invalid handle are no-ops returning zero values.
type Grain interface {
	// Position returns the world-space position of the grain.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Orientation returns the orientation quaternion of the grain.
	//
	// Returns:
	//   - [4]float32: orientation as (x, y, z, w)
	Orientation() [4]float32

	// Hidden returns whether the grain is excluded from render snapshots.
	//
	// Returns:
	//   - bool: true if hidden
	Hidden() bool

	// Valid returns whether this handle still refers to a live grain.
	//
	// Returns:
	//   - bool: true if the grain exists
	Valid() bool

	// SetPosition sets the world-space position of the grain.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetOrientation sets the orientation quaternion of the grain.
	//
	// Parameters:
	//   - q: orientation as (x, y, z, w)
	SetOrientation(q [4]float32)

	// SetHidden includes or excludes the grain from render snapshots.
	//
	// Parameters:
	//   - hidden: true to hide
	SetHidden(hidden bool)

	// Remove deletes the grain from its store and invalidates this handle.
	Remove()
}

var _ Grain = &grainImpl{}

func (g *grainImpl) Position() [3]float32 {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()
	if !g.valid {
		return [3]float32{}
	}
	return g.store.slots[g.index].position
}

func (g *grainImpl) Orientation() [4]float32 {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()
	if !g.valid {
		return [4]float32{}
	}
	return g.store.slots[g.index].orientation
}

func (g *grainImpl) Hidden() bool {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()
	if !g.valid {
		return false
	}
	return g.store.slots[g.index].hidden
}

func (g *grainImpl) Valid() bool {
	g.store.mu.RLock()
	defer g.store.mu.RUnlock()
	return g.valid
}

func (g *grainImpl) SetPosition(x, y, z float32) {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	if !g.valid {
		return
	}
	g.store.slots[g.index].position = [3]float32{x, y, z}
}

func (g *grainImpl) SetOrientation(q [4]float32) {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	if !g.valid {
		return
	}
	g.store.slots[g.index].orientation = q
}

func (g *grainImpl) SetHidden(hidden bool) {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	if !g.valid {
		return
	}
	g.store.slots[g.index].hidden = hidden
}

func (g *grainImpl) Remove() {
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	if !g.valid {
		return
	}
	g.store.remove(g.index)
	g.valid = false
}
