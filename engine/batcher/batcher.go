package batcher

import (
	"log"

	"github.com/Carmen-Shannon/scatter-go/common"
	"github.com/Carmen-Shannon/scatter-go/engine/grain"
	"github.com/Carmen-Shannon/scatter-go/engine/renderer"
)

// MaxBatch is the instance ceiling for a single draw call, inherited from
// the renderer's instance buffer window.
const MaxBatch = renderer.MaxInstancesPerDraw

// batcherImpl is the implementation of the Batcher interface.
type batcherImpl struct {
	store     grain.Store
	resources Resources
	r         renderer.Renderer

	// Pre-allocated slices reused each frame to avoid per-frame allocations.
	snapshot      []grain.Instance
	matrixScratch []float32

	// missingWarned latches the missing-resource diagnostic; a resource swap
	// (generation change) re-arms it. drawErrWarned does the same for draw
	// submission failures.
	missingWarned  bool
	drawErrWarned  bool
	lastGeneration uint64
	seenGeneration bool
}

// Batcher renders every visible grain each frame through instanced draw
// calls. It snapshots the store once per frame, partitions the snapshot into
// groups of at most MaxBatch, builds the model matrix for each member, and
// submits exactly one draw per group. Missing resources make the frame a
// no-op with a one-time diagnostic.
type Batcher interface {
	// Draw renders one frame of grains. Call between the renderer's
	// BeginFrame and EndFrame.
	Draw()
}

var _ Batcher = &batcherImpl{}

// NewBatcher creates a Batcher reading grains from the given store and
// submitting through the given renderer. All three collaborators are
// required and NewBatcher panics if any of them is nil.
//
// Parameters:
//   - store: the grain store snapshotted each frame
//   - resources: the mesh/material/scale triple
//   - r: the renderer draws are submitted to
//
// Returns:
//   - Batcher: a new Batcher instance
func NewBatcher(store grain.Store, resources Resources, r renderer.Renderer) Batcher {
	if store == nil {
		panic("batcher: NewBatcher requires a non-nil store")
	}
	if resources == nil {
		panic("batcher: NewBatcher requires a non-nil resources triple")
	}
	if r == nil {
		panic("batcher: NewBatcher requires a non-nil renderer")
	}
	return &batcherImpl{
		store:         store,
		resources:     resources,
		r:             r,
		matrixScratch: make([]float32, MaxBatch*16),
	}
}

func (b *batcherImpl) Draw() {
	m, mat, scale, gen := b.resources.Current()
	if !b.seenGeneration || gen != b.lastGeneration {
		// A swap re-arms the one-time diagnostics so a broken reconfiguration
		// is reported again instead of silently inheriting the old latch.
		b.missingWarned = false
		b.drawErrWarned = false
		b.lastGeneration = gen
		b.seenGeneration = true
	}

	if m == nil || mat == nil {
		if !b.missingWarned {
			log.Printf("[Batcher] mesh or material unset, skipping grain rendering")
			b.missingWarned = true
		}
		return
	}

	b.snapshot = b.store.Snapshot(b.snapshot[:0])
	total := len(b.snapshot)
	if total == 0 {
		return
	}

	opts := renderer.DrawOptions{
		CastShadows:    mat.CastsShadows(),
		UseLightProbes: mat.UseLightProbes(),
	}

	for start := 0; start < total; start += MaxBatch {
		end := start + MaxBatch
		if end > total {
			end = total
		}
		count := end - start

		for i := 0; i < count; i++ {
			inst := &b.snapshot[start+i]
			common.BuildTRSMatrix(b.matrixScratch[i*16:(i+1)*16], inst.Position, inst.Orientation, scale)
		}

		data := common.SliceToBytes(b.matrixScratch[:count*16])
		if err := b.r.DrawInstanced(m, mat, data, uint32(count), opts); err != nil {
			if !b.drawErrWarned {
				log.Printf("[Batcher] draw submission failed: %v", err)
				b.drawErrWarned = true
			}
			return
		}
	}
}

// SplitBatches returns the group sizes the batcher uses for a given total:
// ceil(total/MaxBatch) groups, all of size MaxBatch except possibly the last.
//
// Parameters:
//   - total: the number of instances to partition
//
// Returns:
//   - []int: the per-group sizes, empty for non-positive totals
func SplitBatches(total int) []int {
	if total <= 0 {
		return nil
	}
	sizes := make([]int, 0, (total+MaxBatch-1)/MaxBatch)
	for start := 0; start < total; start += MaxBatch {
		size := MaxBatch
		if total-start < MaxBatch {
			size = total - start
		}
		sizes = append(sizes, size)
	}
	return sizes
}
