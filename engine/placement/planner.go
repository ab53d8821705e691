package placement

import (
	"errors"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/scatter-go/common"
	"github.com/Carmen-Shannon/scatter-go/engine/zone"
)

// ErrNoZones is returned by Plan when the zone list is empty. Callers that
// gather zones asynchronously should treat it as a retry-later signal rather
// than a hard failure.
var ErrNoZones = errors.New("no zones available for placement")

// DefaultSeed is the seed used when the configured seed is zero. Zero is
// reserved to mean "unset", so it is coerced to this fixed value to keep
// placement deterministic rather than silently degenerate.
const DefaultSeed int64 = 0x5EEDED

const (
	// maxTiltRad is the per-axis tilt limit for accepted grains, ±10 degrees.
	maxTiltRad = 10.0 * math.Pi / 180.0
)

// Result is one accepted placement: where the grain goes and how it is turned.
type Result struct {
	Position    [3]float32
	Orientation [4]float32
	ZoneIndex   int
}

// ZoneReport summarizes the outcome of the placement search for one zone.
// Dropped counts candidates that exhausted their retry budget; drops are
// expected behavior in crowded zones, not errors.
type ZoneReport struct {
	ZoneIndex int
	Requested int
	Placed    int
	Dropped   int
}

// plannerImpl is the implementation of the Planner interface.
type plannerImpl struct {
	seed      int64
	workers   int
	obstacles ObstacleTester

	// planPool manages a bounded set of reusable goroutines for the parallel
	// per-zone search. Workers persist across Plan calls so repeated spawn
	// passes do not pay goroutine spawn/teardown overhead. Nil when the
	// planner runs serially.
	planPool worker.DynamicWorkerPool
	taskID   int
}

// Planner runs the randomized placement search over a set of zones and
// returns accepted placements in deterministic zone order.
//
// Determinism: for a given seed and zone list, Plan produces bit-identical
// output regardless of the configured worker count. Each zone draws from its
// own RNG stream derived from the planner seed and the zone's index, so
// parallel execution cannot perturb the sequence of another zone.
type Planner interface {
	// Plan searches every zone for placements. Zones with a non-positive
	// requested count are skipped with a warning. Candidates that fail the
	// obstacle test are retried up to the zone's retry budget and dropped
	// once it is exhausted.
	//
	// Parameters:
	//   - zones: the zones to populate, in commit order
	//
	// Returns:
	//   - []Result: accepted placements grouped by zone, in zone order
	//   - []ZoneReport: one report per input zone, in zone order
	//   - error: ErrNoZones if zones is empty, nil otherwise
	Plan(zones []zone.Zone) ([]Result, []ZoneReport, error)

	// Seed returns the effective seed the planner draws from. If the
	// configured seed was zero this is DefaultSeed.
	//
	// Returns:
	//   - int64: the effective seed
	Seed() int64
}

var _ Planner = &plannerImpl{}

// NewPlanner creates a new Planner with any provided options applied.
// Without options the planner runs serially with the default seed and no
// obstacle testing.
//
// Parameters:
//   - opts: variadic list of PlannerBuilderOption functions to configure the planner
//
// Returns:
//   - Planner: a new Planner instance
func NewPlanner(opts ...PlannerBuilderOption) Planner {
	p := &plannerImpl{
		seed:    DefaultSeed,
		workers: 1,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.seed == 0 {
		p.seed = DefaultSeed
	}
	if p.workers < 1 {
		p.workers = 1
	}

	// Initialize the pool after options so WithWorkers can override the default.
	// Queue size of 256 accommodates typical zone counts with headroom.
	if p.workers > 1 {
		p.planPool = worker.NewDynamicWorkerPool(p.workers, 256, 1*time.Second)
	}
	return p
}

func (p *plannerImpl) Seed() int64 {
	return p.seed
}

func (p *plannerImpl) Plan(zones []zone.Zone) ([]Result, []ZoneReport, error) {
	if len(zones) == 0 {
		return nil, nil, ErrNoZones
	}

	perZone := make([][]Result, len(zones))
	reports := make([]ZoneReport, len(zones))

	if p.planPool != nil && len(zones) > 1 {
		var wg sync.WaitGroup
		for i, z := range zones {
			wg.Add(1)
			iCap, zCap := i, z
			id := p.taskID
			p.taskID++
			p.planPool.SubmitTask(worker.Task{
				ID: id,
				Do: func() (any, error) {
					defer wg.Done()
					perZone[iCap], reports[iCap] = p.planZone(iCap, zCap)
					return nil, nil
				},
			})
		}
		wg.Wait()
	} else {
		for i, z := range zones {
			perZone[i], reports[i] = p.planZone(i, z)
		}
	}

	total, dropped := 0, 0
	for _, r := range reports {
		total += r.Placed
		dropped += r.Dropped
	}
	results := make([]Result, 0, total)
	for _, zr := range perZone {
		results = append(results, zr...)
	}

	log.Printf("[Planner] placed %d grains across %d zones (%d dropped)", total, len(zones), dropped)
	return results, reports, nil
}

// planZone runs the retry-bounded search for a single zone on its own RNG
// stream. Safe to call concurrently for distinct zone indices.
func (p *plannerImpl) planZone(index int, z zone.Zone) ([]Result, ZoneReport) {
	report := ZoneReport{ZoneIndex: index, Requested: z.RequestedCount()}

	if z.RequestedCount() <= 0 {
		log.Printf("[Planner] zone %d requests %d grains, skipping", index, z.RequestedCount())
		return nil, report
	}

	rng := rand.New(rand.NewSource(subSeed(p.seed, index)))

	center := z.Center()
	size := z.Size()
	retries := z.MaxRetries()
	if retries < 1 {
		retries = 1
	}
	mask := z.ObstacleMask()
	checkObstacles := mask != 0 && p.obstacles != nil

	results := make([]Result, 0, z.RequestedCount())
	for g := 0; g < z.RequestedCount(); g++ {
		placed := false
		for attempt := 0; attempt < retries; attempt++ {
			candidate := [3]float32{
				center[0] + (rng.Float32()-0.5)*size[0],
				center[1] + (rng.Float32()-0.5)*size[1],
				center[2] + (rng.Float32()-0.5)*size[2],
			}
			if z.FloorLocked() {
				candidate[1] = z.FloorY()
			}
			if checkObstacles && p.obstacles.Blocked(candidate, z.CheckRadius(), mask) {
				continue
			}

			// Accepted. Orientation is drawn only now so rejected candidates
			// never consume orientation samples.
			spin := (rng.Float32() - 0.5) * 2 * math.Pi
			tiltX := (rng.Float32() - 0.5) * 2 * maxTiltRad
			tiltZ := (rng.Float32() - 0.5) * 2 * maxTiltRad

			results = append(results, Result{
				Position:    candidate,
				Orientation: common.QuatFromEuler(tiltX, spin, tiltZ),
				ZoneIndex:   index,
			})
			placed = true
			break
		}
		if !placed {
			report.Dropped++
		}
	}
	report.Placed = len(results)

	if report.Dropped > 0 {
		log.Printf("[Planner] zone %d dropped %d of %d grains after %d retries each", index, report.Dropped, report.Requested, retries)
	}
	return results, report
}

// subSeed derives the RNG seed for one zone from the planner seed. The mix
// constant is the 64-bit golden ratio, which keeps adjacent zone streams
// uncorrelated.
func subSeed(seed int64, zoneIndex int) int64 {
	return seed ^ (int64(zoneIndex)+1)*-0x61C8864680B583EB
}
