package renderer

import (
	"github.com/Carmen-Shannon/scatter-go/engine/material"
	"github.com/Carmen-Shannon/scatter-go/engine/mesh"
)

// MaxInstancesPerDraw is the per-draw instance ceiling supported by the
// renderer's instance buffer window. Callers submitting more instances must
// split them across multiple draws.
const MaxInstancesPerDraw = 1023

// DrawOptions selects optional render features for one instanced draw.
// The unlit backend renders nothing beyond base geometry, so both flags are
// effectively advisory; draws requesting either feature are still rendered
// unlit with a one-time diagnostic.
type DrawOptions struct {
	CastShadows    bool
	UseLightProbes bool
}

// Renderer is the narrow GPU submission surface the instance batcher draws
// through. One frame is BeginFrame, any number of DrawInstanced calls, then
// EndFrame and Present. All methods must be called from the goroutine that
// owns GPU submission.
type Renderer interface {
	// Resize reconfigures the surface and depth buffer for a new pixel size.
	//
	// Parameters:
	//   - width: surface width in pixels
	//   - height: surface height in pixels
	Resize(width, height int)

	// SetCamera uploads the combined view-projection matrix used by all
	// draws in subsequent frames.
	//
	// Parameters:
	//   - viewProj: column-major 4x4 matrix (16 floats)
	SetCamera(viewProj []float32)

	// BeginFrame acquires the next swapchain texture and opens the frame's
	// render pass. Must be paired with EndFrame.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// DrawInstanced encodes one instanced draw of the given mesh. The
	// instance data is a packed array of column-major 4x4 model matrices,
	// one per instance, at most MaxInstancesPerDraw of them.
	//
	// Parameters:
	//   - m: the geometry to draw
	//   - mat: the material tinting the draw
	//   - instanceData: packed model matrices (64 bytes per instance)
	//   - instanceCount: number of instances in instanceData
	//   - opts: optional render features for this draw
	//
	// Returns:
	//   - error: an error if the draw could not be encoded
	DrawInstanced(m mesh.Mesh, mat material.Material, instanceData []byte, instanceCount uint32, opts DrawOptions) error

	// EndFrame closes the render pass and submits the frame's command buffer.
	EndFrame()

	// Present presents the rendered frame and releases the swapchain texture.
	Present()

	// Release frees all GPU resources owned by the renderer.
	Release()
}
