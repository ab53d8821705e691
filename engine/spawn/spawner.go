package spawn

import (
	"errors"
	"log"

	"github.com/Carmen-Shannon/scatter-go/engine/grain"
	"github.com/Carmen-Shannon/scatter-go/engine/placement"
	"github.com/Carmen-Shannon/scatter-go/engine/zone"
)

// ZoneProvider yields the current zone list. Returning an empty slice is the
// "zone data not baked yet" signal; the spawner retries on a later tick.
type ZoneProvider func() []zone.Zone

// spawnerImpl is the implementation of the Spawner interface.
type spawnerImpl struct {
	sessions  SessionSet
	planner   placement.Planner
	committer Committer
	zones     ZoneProvider
	template  grain.Template

	// noZonesWarned latches the empty-zone-list diagnostic so the polling
	// loop does not repeat it every tick.
	noZonesWarned bool
}

// Spawner drives the once-per-session plan-and-commit pass from the engine
// tick loop. Update polls the session registry each tick and defers without
// logging while the session singleton is in a transient state (zero or
// multiple live sessions) or while zone data is unavailable; once conditions
// stabilize it runs the pass exactly once and marks the session fulfilled.
//
// Misconfiguration (no template assigned) still fulfills the session, with
// an error-level diagnostic and zero creations, so the tick loop can never
// get stuck retrying a pass that cannot succeed.
type Spawner interface {
	// Update runs one polling step. Call once per engine tick.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous tick (unused, part of the
	//     tick contract)
	Update(deltaTime float32)
}

var _ Spawner = &spawnerImpl{}

// NewSpawner creates a Spawner with any provided options applied. The session
// set, planner, and committer are required and NewSpawner panics if any of
// them is nil. A spawner without a zone provider defers forever; a spawner
// without a template fulfills its session with zero grains.
//
// Parameters:
//   - sessions: the live session registry
//   - planner: the placement planner
//   - committer: the committer applying accepted placements
//   - opts: variadic list of SpawnerBuilderOption functions to configure the spawner
//
// Returns:
//   - Spawner: a new Spawner instance
func NewSpawner(sessions SessionSet, planner placement.Planner, committer Committer, opts ...SpawnerBuilderOption) Spawner {
	if sessions == nil {
		panic("spawn: NewSpawner requires a non-nil session set")
	}
	if planner == nil {
		panic("spawn: NewSpawner requires a non-nil planner")
	}
	if committer == nil {
		panic("spawn: NewSpawner requires a non-nil committer")
	}
	s := &spawnerImpl{
		sessions:  sessions,
		planner:   planner,
		committer: committer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *spawnerImpl) Update(deltaTime float32) {
	// Transient singleton multiplicity resolves itself within a few ticks.
	// No logging here, this path runs every tick during scene transitions.
	sess, ok := s.sessions.Active()
	if !ok {
		return
	}
	if sess.Fulfilled() {
		return
	}

	if s.template == nil {
		log.Printf("[Spawner] ERROR: no placement template assigned, fulfilling session with zero grains")
		sess.Fulfill()
		return
	}

	var zones []zone.Zone
	if s.zones != nil {
		zones = s.zones()
	}

	results, _, err := s.planner.Plan(zones)
	if err != nil {
		if errors.Is(err, placement.ErrNoZones) {
			if !s.noZonesWarned {
				log.Printf("[Spawner] no zones available yet, deferring spawn pass")
				s.noZonesWarned = true
			}
			return
		}
		log.Printf("[Spawner] placement failed: %v", err)
		return
	}

	created := s.committer.Commit(results, s.template)
	sess.Fulfill()
	log.Printf("[Spawner] session fulfilled with %d grains from template %q", len(created), s.template.Name())
}
