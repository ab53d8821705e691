package spawn

import (
	"github.com/Carmen-Shannon/scatter-go/engine/grain"
	"github.com/Carmen-Shannon/scatter-go/engine/zone"
)

// SpawnerBuilderOption is a function that configures a Spawner instance during construction.
type SpawnerBuilderOption func(*spawnerImpl)

// WithTemplate is an option builder that sets the archetype grains are
// created from. Without a template the spawner fulfills its session with
// zero grains and an error-level diagnostic.
//
// Parameters:
//   - tmpl: the grain template
//
// Returns:
//   - SpawnerBuilderOption: a function that applies the template option to a spawnerImpl
func WithTemplate(tmpl grain.Template) SpawnerBuilderOption {
	return func(s *spawnerImpl) {
		s.template = tmpl
	}
}

// WithZoneProvider is an option builder that sets the source of the zone
// list. The provider is re-queried every tick until it yields zones.
//
// Parameters:
//   - provider: the zone source
//
// Returns:
//   - SpawnerBuilderOption: a function that applies the provider option to a spawnerImpl
func WithZoneProvider(provider ZoneProvider) SpawnerBuilderOption {
	return func(s *spawnerImpl) {
		s.zones = provider
	}
}

// WithZones is an option builder that sets a fixed zone list, for callers
// whose zones are known at construction time.
//
// Parameters:
//   - zones: the fixed zone list
//
// Returns:
//   - SpawnerBuilderOption: a function that applies the zones option to a spawnerImpl
func WithZones(zones []zone.Zone) SpawnerBuilderOption {
	return func(s *spawnerImpl) {
		s.zones = func() []zone.Zone { return zones }
	}
}
