package placement

// ObstacleTester is the capability the planner consults before accepting a
// candidate point. Implementations typically wrap a physics broadphase or a
// spatial index; the planner only needs a yes/no answer.
//
// The planner may call Blocked from multiple goroutines concurrently, so
// implementations must be safe for concurrent reads.
type ObstacleTester interface {
	// Blocked reports whether anything on the masked layers occupies the
	// sphere of the given radius around the candidate point.
	//
	// Parameters:
	//   - point: world-space candidate position
	//   - radius: clearance radius around the candidate
	//   - mask: layer mask selecting which obstacles participate
	//
	// Returns:
	//   - bool: true if the candidate is obstructed
	Blocked(point [3]float32, radius float32, mask uint32) bool
}

// ObstacleTestFunc adapts a plain function to the ObstacleTester interface.
type ObstacleTestFunc func(point [3]float32, radius float32, mask uint32) bool

// Blocked calls the wrapped function.
//
// Parameters:
//   - point: world-space candidate position
//   - radius: clearance radius around the candidate
//   - mask: layer mask selecting which obstacles participate
//
// Returns:
//   - bool: true if the candidate is obstructed
func (f ObstacleTestFunc) Blocked(point [3]float32, radius float32, mask uint32) bool {
	return f(point, radius, mask)
}

var _ ObstacleTester = ObstacleTestFunc(nil)
