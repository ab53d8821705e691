package renderer

import "github.com/cogentcore/webgpu/wgpu"

// RendererBuilderOption is a function that configures a Renderer instance during construction.
type RendererBuilderOption func(*wgpuRendererImpl)

// WithPresentModeVSync is an option builder that selects FIFO presentation,
// capping the frame rate to the display refresh rate.
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode to a wgpuRendererImpl
func WithPresentModeVSync() RendererBuilderOption {
	return func(r *wgpuRendererImpl) {
		r.presentMode = wgpu.PresentModeFifo
	}
}

// WithPresentModeUncapped is an option builder that selects immediate
// presentation with no frame rate cap.
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode to a wgpuRendererImpl
func WithPresentModeUncapped() RendererBuilderOption {
	return func(r *wgpuRendererImpl) {
		r.presentMode = wgpu.PresentModeImmediate
	}
}

// WithClearColor is an option builder that sets the color the frame is
// cleared to before any draws.
//
// Parameters:
//   - red, green, blue, alpha: clear color components in [0, 1]
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color to a wgpuRendererImpl
func WithClearColor(red, green, blue, alpha float64) RendererBuilderOption {
	return func(r *wgpuRendererImpl) {
		r.clearColor = wgpu.Color{R: red, G: green, B: blue, A: alpha}
	}
}

// WithForceFallbackAdapter is an option builder that forces selection of the
// software fallback adapter, useful on machines without a usable GPU.
//
// Returns:
//   - RendererBuilderOption: a function that applies the adapter option to a wgpuRendererImpl
func WithForceFallbackAdapter() RendererBuilderOption {
	return func(r *wgpuRendererImpl) {
		r.forceFallbackAdapter = true
	}
}
