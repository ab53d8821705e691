package zone

// zoneImpl is the implementation of the Zone interface.
type zoneImpl struct {
	center         [3]float32
	size           [3]float32
	requestedCount int
	floorLocked    bool
	floorY         float32
	obstacleMask   uint32
	checkRadius    float32
	maxRetries     int
}

// Zone describes an axis-aligned region of the world in which grains may be
// scattered. Zones are immutable once built; the planner reads them but never
// writes back, so a single zone can safely feed concurrent placement passes.
//
// A zone does not know how to place anything. It only carries the placement
// parameters (extent, requested count, floor lock, obstacle filter, retry
// budget) that the planner consumes.
type Zone interface {
	// Center returns the world-space center of the zone volume.
	//
	// Returns:
	//   - [3]float32: center as (x, y, z)
	Center() [3]float32

	// Size returns the full extent of the zone along each axis.
	//
	// Returns:
	//   - [3]float32: extent as (width, height, depth)
	Size() [3]float32

	// RequestedCount returns the number of grains this zone asks for.
	// Values of zero or less cause the planner to skip the zone.
	//
	// Returns:
	//   - int: the requested grain count
	RequestedCount() int

	// FloorLocked returns whether placed grains have their vertical coordinate
	// forced to FloorY instead of sampled from the zone volume.
	//
	// Returns:
	//   - bool: true if the zone is locked to a floor plane
	FloorLocked() bool

	// FloorY returns the world-space height grains snap to when the zone is
	// floor locked. Meaningless when FloorLocked is false.
	//
	// Returns:
	//   - float32: the floor height
	FloorY() float32

	// ObstacleMask returns the layer mask handed to the obstacle tester for
	// each candidate point. A mask of zero disables obstacle checking entirely.
	//
	// Returns:
	//   - uint32: the obstacle layer mask
	ObstacleMask() uint32

	// CheckRadius returns the clearance radius used for the obstacle test
	// around each candidate point.
	//
	// Returns:
	//   - float32: the check radius
	CheckRadius() float32

	// MaxRetries returns the per-grain attempt budget for the placement
	// search. The planner treats values below one as one.
	//
	// Returns:
	//   - int: the retry budget
	MaxRetries() int
}

var _ Zone = &zoneImpl{}

// NewZone creates a new immutable Zone centered at the given position with the
// given extent, requesting count grains, with any provided options applied.
//
// Parameters:
//   - center: world-space center of the zone volume
//   - size: full extent of the zone along each axis
//   - count: number of grains the zone requests
//   - opts: variadic list of ZoneBuilderOption functions to configure the zone
//
// Returns:
//   - Zone: a new Zone instance
func NewZone(center, size [3]float32, count int, opts ...ZoneBuilderOption) Zone {
	z := &zoneImpl{
		center:         center,
		size:           size,
		requestedCount: count,
		floorLocked:    false,
		floorY:         0,
		obstacleMask:   0,
		checkRadius:    0.5,
		maxRetries:     8,
	}
	for _, opt := range opts {
		opt(z)
	}
	return z
}

// FromBounds creates a Zone spanning the axis-aligned box between min and max,
// shrunk inward by inset on the horizontal axes. Useful for deriving a scatter
// region from floor geometry bounds so grains never hang off the edge.
//
// Parameters:
//   - min: minimum corner of the source bounds
//   - max: maximum corner of the source bounds
//   - inset: horizontal margin subtracted from each side (clamped so the zone
//     never inverts)
//   - count: number of grains the zone requests
//   - opts: variadic list of ZoneBuilderOption functions to configure the zone
//
// Returns:
//   - Zone: a new Zone instance covering the inset bounds
func FromBounds(min, max [3]float32, inset float32, count int, opts ...ZoneBuilderOption) Zone {
	center := [3]float32{
		(min[0] + max[0]) / 2,
		(min[1] + max[1]) / 2,
		(min[2] + max[2]) / 2,
	}
	size := [3]float32{
		max[0] - min[0] - 2*inset,
		max[1] - min[1],
		max[2] - min[2] - 2*inset,
	}
	if size[0] < 0 {
		size[0] = 0
	}
	if size[2] < 0 {
		size[2] = 0
	}
	return NewZone(center, size, count, opts...)
}

func (z *zoneImpl) Center() [3]float32 {
	return z.center
}

func (z *zoneImpl) Size() [3]float32 {
	return z.size
}

func (z *zoneImpl) RequestedCount() int {
	return z.requestedCount
}

func (z *zoneImpl) FloorLocked() bool {
	return z.floorLocked
}

func (z *zoneImpl) FloorY() float32 {
	return z.floorY
}

func (z *zoneImpl) ObstacleMask() uint32 {
	return z.obstacleMask
}

func (z *zoneImpl) CheckRadius() float32 {
	return z.checkRadius
}

func (z *zoneImpl) MaxRetries() int {
	return z.maxRetries
}
