package placement

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/scatter-go/common"
	"github.com/Carmen-Shannon/scatter-go/engine/zone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floorZone(count int, opts ...zone.ZoneBuilderOption) zone.Zone {
	base := []zone.ZoneBuilderOption{zone.WithFloorLock(0)}
	return zone.NewZone([3]float32{0, 0, 0}, [3]float32{10, 0, 10}, count, append(base, opts...)...)
}

func TestPlanEmptyZoneList(t *testing.T) {
	p := NewPlanner()

	results, reports, err := p.Plan(nil)
	require.ErrorIs(t, err, ErrNoZones)
	assert.Nil(t, results)
	assert.Nil(t, reports)
}

func TestPlanZeroMaskPlacesFullCount(t *testing.T) {
	p := NewPlanner(WithSeed(42))

	results, reports, err := p.Plan([]zone.Zone{floorZone(500, zone.WithMaxRetries(1))})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, 500, reports[0].Placed)
	assert.Equal(t, 0, reports[0].Dropped)
	assert.Len(t, results, 500)
}

func TestPlanFloorLockPinsVerticalCoordinate(t *testing.T) {
	z := zone.NewZone([3]float32{0, 0, 0}, [3]float32{10, 0, 10}, 3,
		zone.WithFloorLock(0),
		zone.WithMaxRetries(1),
	)
	p := NewPlanner(WithSeed(7))

	results, _, err := p.Plan([]zone.Zone{z})
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Equal(t, float32(0), r.Position[1])
	}
}

func TestPlanStaysInsideZoneBounds(t *testing.T) {
	z := zone.NewZone([3]float32{5, 2, -3}, [3]float32{4, 1, 6}, 200)
	p := NewPlanner(WithSeed(99))

	results, _, err := p.Plan([]zone.Zone{z})
	require.NoError(t, err)
	require.Len(t, results, 200)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Position[0], float32(3))
		assert.LessOrEqual(t, r.Position[0], float32(7))
		assert.GreaterOrEqual(t, r.Position[1], float32(1.5))
		assert.LessOrEqual(t, r.Position[1], float32(2.5))
		assert.GreaterOrEqual(t, r.Position[2], float32(-6))
		assert.LessOrEqual(t, r.Position[2], float32(0))
	}
}

func TestPlanDeterministicForFixedSeed(t *testing.T) {
	zones := []zone.Zone{
		floorZone(300, zone.WithObstacleMask(1), zone.WithMaxRetries(4)),
		floorZone(150),
	}
	tester := ObstacleTestFunc(func(point [3]float32, radius float32, mask uint32) bool {
		return point[0] < -2
	})

	a, aReports, err := NewPlanner(WithSeed(1234), WithObstacleTester(tester)).Plan(zones)
	require.NoError(t, err)
	b, bReports, err := NewPlanner(WithSeed(1234), WithObstacleTester(tester)).Plan(zones)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, aReports, bReports)
}

func TestPlanDifferentSeedsDiverge(t *testing.T) {
	zones := []zone.Zone{floorZone(50)}

	a, _, err := NewPlanner(WithSeed(1)).Plan(zones)
	require.NoError(t, err)
	b, _, err := NewPlanner(WithSeed(2)).Plan(zones)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestPlanSeedZeroCoerced(t *testing.T) {
	p := NewPlanner(WithSeed(0))
	assert.Equal(t, DefaultSeed, p.Seed())

	zones := []zone.Zone{floorZone(20)}
	coerced, _, err := p.Plan(zones)
	require.NoError(t, err)
	explicit, _, err := NewPlanner(WithSeed(DefaultSeed)).Plan(zones)
	require.NoError(t, err)
	assert.Equal(t, explicit, coerced)
}

func TestPlanParallelMatchesSerial(t *testing.T) {
	zones := make([]zone.Zone, 8)
	for i := range zones {
		zones[i] = floorZone(200, zone.WithObstacleMask(1), zone.WithMaxRetries(6))
	}
	tester := ObstacleTestFunc(func(point [3]float32, radius float32, mask uint32) bool {
		return point[2] > 3
	})

	serial, serialReports, err := NewPlanner(WithSeed(555), WithObstacleTester(tester)).Plan(zones)
	require.NoError(t, err)
	parallel, parallelReports, err := NewPlanner(WithSeed(555), WithObstacleTester(tester), WithWorkers(4)).Plan(zones)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
	assert.Equal(t, serialReports, parallelReports)
}

func TestPlanSkipsNonPositiveRequestedCount(t *testing.T) {
	p := NewPlanner()

	results, reports, err := p.Plan([]zone.Zone{floorZone(0), floorZone(10)})
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, 0, reports[0].Placed)
	assert.Equal(t, 0, reports[0].Dropped)
	assert.Equal(t, 10, reports[1].Placed)
	assert.Len(t, results, 10)
}

func TestPlanDropsOnRetryExhaustion(t *testing.T) {
	blocked := ObstacleTestFunc(func(point [3]float32, radius float32, mask uint32) bool {
		return true
	})
	p := NewPlanner(WithObstacleTester(blocked))

	results, reports, err := p.Plan([]zone.Zone{floorZone(10, zone.WithObstacleMask(1), zone.WithMaxRetries(3))})
	require.NoError(t, err)
	assert.Empty(t, results)
	require.Len(t, reports, 1)
	assert.Equal(t, 10, reports[0].Requested)
	assert.Equal(t, 0, reports[0].Placed)
	assert.Equal(t, 10, reports[0].Dropped)
}

func TestPlanNeverExceedsRequestedCount(t *testing.T) {
	halfBlocked := ObstacleTestFunc(func(point [3]float32, radius float32, mask uint32) bool {
		return point[0] < 0
	})
	p := NewPlanner(WithSeed(17), WithObstacleTester(halfBlocked))

	results, reports, err := p.Plan([]zone.Zone{floorZone(100, zone.WithObstacleMask(1), zone.WithMaxRetries(2))})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.LessOrEqual(t, reports[0].Placed, 100)
	assert.Equal(t, reports[0].Placed+reports[0].Dropped, 100)
	assert.Len(t, results, reports[0].Placed)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Position[0], float32(0))
	}
}

func TestPlanMaxRetriesZeroMeansOneAttempt(t *testing.T) {
	calls := 0
	counting := ObstacleTestFunc(func(point [3]float32, radius float32, mask uint32) bool {
		calls++
		return true
	})
	p := NewPlanner(WithObstacleTester(counting))

	_, reports, err := p.Plan([]zone.Zone{floorZone(7, zone.WithObstacleMask(1), zone.WithMaxRetries(0))})
	require.NoError(t, err)
	assert.Equal(t, 7, calls)
	assert.Equal(t, 7, reports[0].Dropped)
}

func TestPlanObstacleMaskZeroSkipsTester(t *testing.T) {
	calls := 0
	counting := ObstacleTestFunc(func(point [3]float32, radius float32, mask uint32) bool {
		calls++
		return true
	})
	p := NewPlanner(WithObstacleTester(counting))

	results, _, err := p.Plan([]zone.Zone{floorZone(25)})
	require.NoError(t, err)
	assert.Equal(t, 0, calls)
	assert.Len(t, results, 25)
}

func TestPlanOrientationSpinSpansFullRange(t *testing.T) {
	p := NewPlanner(WithSeed(2024))

	results, _, err := p.Plan([]zone.Zone{floorZone(5000)})
	require.NoError(t, err)

	minYaw, maxYaw := math.Pi, -math.Pi
	for _, r := range results {
		forward := common.QuatRotate(r.Orientation, [3]float32{1, 0, 0})
		yaw := math.Atan2(float64(-forward[2]), float64(forward[0]))
		if yaw < minYaw {
			minYaw = yaw
		}
		if yaw > maxYaw {
			maxYaw = yaw
		}
	}
	// Spin is uniform over the full turn; with 5000 samples the extremes
	// land well past +-2.9 radians even with tilt wobble folded in.
	assert.Less(t, minYaw, -2.9)
	assert.Greater(t, maxYaw, 2.9)
}

func TestPlanOrientationTiltStaysBounded(t *testing.T) {
	p := NewPlanner(WithSeed(31))

	results, _, err := p.Plan([]zone.Zone{floorZone(2000)})
	require.NoError(t, err)

	// Two 10 degree tilts about orthogonal axes combine to at most
	// acos(cos^2(10 degrees)), roughly 14.1 degrees off vertical.
	maxLean := math.Acos(math.Cos(maxTiltRad) * math.Cos(maxTiltRad))
	for _, r := range results {
		up := common.QuatRotate(r.Orientation, [3]float32{0, 1, 0})
		lean := math.Acos(float64(up[1]))
		assert.LessOrEqual(t, lean, maxLean+1e-3)
	}
}
