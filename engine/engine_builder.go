package engine

import (
	"time"

	"github.com/Carmen-Shannon/scatter-go/engine/renderer"
	"github.com/Carmen-Shannon/scatter-go/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the engine tick rate in ticks per second.
// Registered Systems are updated at this rate.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - tps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(tps float64) EngineBuilderOption {
	return func(e *engine) {
		if tps <= 0 {
			tps = 60.0
		}
		e.engineTickRate = time.Second / time.Duration(tps)
	}
}

// WithWindow sets a pre-configured window for the engine to use.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer the engine submits frames through. Without
// a renderer the render loop is a no-op, which is how headless setups run.
//
// Parameters:
//   - r: a pre-configured Renderer instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.r = r
	}
}

// WithSystem registers a System with the tick loop during construction.
// Systems are updated in registration order.
//
// Parameters:
//   - s: the System to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSystem(s System) EngineBuilderOption {
	return func(e *engine) {
		e.systems = append(e.systems, s)
	}
}

// WithDrawer registers a Drawer with the render loop during construction.
// Drawers run in registration order within each frame.
//
// Parameters:
//   - d: the Drawer to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithDrawer(d Drawer) EngineBuilderOption {
	return func(e *engine) {
		e.drawers = append(e.drawers, d)
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Second / time.Duration(fps)
	}
}
