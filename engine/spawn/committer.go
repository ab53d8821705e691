package spawn

import (
	"log"

	"github.com/Carmen-Shannon/scatter-go/engine/grain"
	"github.com/Carmen-Shannon/scatter-go/engine/placement"
)

// committerImpl is the implementation of the Committer interface.
type committerImpl struct {
	store grain.Store
}

// Committer materializes accepted placements into the grain store. The whole
// result set is staged as a pending-creation log and applied in one batch, so
// readers of the store never observe a partially committed spawn pass.
type Committer interface {
	// Commit stages one creation per placement result and applies them
	// atomically. Grains inherit the template's default hidden state.
	//
	// Parameters:
	//   - results: the planner's accepted placements
	//   - tmpl: the archetype for created grains
	//
	// Returns:
	//   - []grain.Grain: handles to the created grains, in result order
	Commit(results []placement.Result, tmpl grain.Template) []grain.Grain
}

var _ Committer = &committerImpl{}

// NewCommitter creates a Committer targeting the given store. The store is
// required and NewCommitter panics if it is nil.
//
// Parameters:
//   - store: the grain store creations are applied to
//
// Returns:
//   - Committer: a new Committer instance
func NewCommitter(store grain.Store) Committer {
	if store == nil {
		panic("spawn: NewCommitter requires a non-nil store")
	}
	return &committerImpl{store: store}
}

func (c *committerImpl) Commit(results []placement.Result, tmpl grain.Template) []grain.Grain {
	if len(results) == 0 {
		return nil
	}

	hidden := false
	if tmpl != nil {
		hidden = tmpl.DefaultHidden()
	}

	// Stage everything first; AddBatch applies the log under one lock.
	pending := make([]grain.BatchEntry, 0, len(results))
	for _, r := range results {
		pending = append(pending, grain.BatchEntry{
			Position:    r.Position,
			Orientation: r.Orientation,
			Hidden:      hidden,
		})
	}
	created := c.store.AddBatch(pending)

	log.Printf("[Committer] materialized %d grains", len(created))
	return created
}
