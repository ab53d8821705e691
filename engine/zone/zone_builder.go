package zone

// ZoneBuilderOption is a function that configures a Zone instance during construction.
type ZoneBuilderOption func(*zoneImpl)

// WithFloorLock is an option builder that locks placed grains to a fixed
// world-space height instead of sampling the vertical coordinate from the
// zone volume.
//
// Parameters:
//   - floorY: the world-space height grains snap to
//
// Returns:
//   - ZoneBuilderOption: a function that applies the floor lock option to a zoneImpl
func WithFloorLock(floorY float32) ZoneBuilderOption {
	return func(z *zoneImpl) {
		z.floorLocked = true
		z.floorY = floorY
	}
}

// WithObstacleMask is an option builder that sets the layer mask handed to the
// obstacle tester. A mask of zero disables obstacle checking for the zone.
//
// Parameters:
//   - mask: the obstacle layer mask
//
// Returns:
//   - ZoneBuilderOption: a function that applies the mask option to a zoneImpl
func WithObstacleMask(mask uint32) ZoneBuilderOption {
	return func(z *zoneImpl) {
		z.obstacleMask = mask
	}
}

// WithCheckRadius is an option builder that sets the clearance radius used for
// the obstacle test around each candidate point.
//
// Parameters:
//   - radius: the check radius
//
// Returns:
//   - ZoneBuilderOption: a function that applies the radius option to a zoneImpl
func WithCheckRadius(radius float32) ZoneBuilderOption {
	return func(z *zoneImpl) {
		z.checkRadius = radius
	}
}

// WithMaxRetries is an option builder that sets the per-grain attempt budget
// for the placement search.
//
// Parameters:
//   - retries: the retry budget
//
// Returns:
//   - ZoneBuilderOption: a function that applies the retry option to a zoneImpl
func WithMaxRetries(retries int) ZoneBuilderOption {
	return func(z *zoneImpl) {
		z.maxRetries = retries
	}
}
