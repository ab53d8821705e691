package placement

// PlannerBuilderOption is a function that configures a Planner instance during construction.
type PlannerBuilderOption func(*plannerImpl)

// WithSeed is an option builder that sets the placement seed. A seed of zero
// is coerced to DefaultSeed; every non-zero seed yields its own deterministic
// placement for a given zone list.
//
// Parameters:
//   - seed: the placement seed
//
// Returns:
//   - PlannerBuilderOption: a function that applies the seed option to a plannerImpl
func WithSeed(seed int64) PlannerBuilderOption {
	return func(p *plannerImpl) {
		p.seed = seed
	}
}

// WithWorkers is an option builder that sets the number of pool workers used
// for the per-zone placement search. Values below two keep the planner
// serial. Output is identical at any worker count.
//
// Parameters:
//   - workers: the worker count
//
// Returns:
//   - PlannerBuilderOption: a function that applies the workers option to a plannerImpl
func WithWorkers(workers int) PlannerBuilderOption {
	return func(p *plannerImpl) {
		p.workers = workers
	}
}

// WithObstacleTester is an option builder that sets the obstacle capability
// consulted for each candidate point. Without a tester every candidate is
// considered clear, regardless of zone masks.
//
// Parameters:
//   - tester: the obstacle capability
//
// Returns:
//   - PlannerBuilderOption: a function that applies the tester option to a plannerImpl
func WithObstacleTester(tester ObstacleTester) PlannerBuilderOption {
	return func(p *plannerImpl) {
		p.obstacles = tester
	}
}
