package engine

import (
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/scatter-go/engine/profiler"
	"github.com/Carmen-Shannon/scatter-go/engine/renderer"
	"github.com/Carmen-Shannon/scatter-go/engine/window"
)

// System is a unit of simulation logic driven by the fixed-rate tick loop.
// The spawner is a System; so is anything else that needs per-tick polling.
type System interface {
	// Update advances the system by one tick.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous tick
	Update(deltaTime float32)
}

// Drawer is a unit of render submission driven once per frame between the
// renderer's BeginFrame and EndFrame. The instance batcher is a Drawer.
type Drawer interface {
	// Draw encodes this drawer's submissions for the current frame.
	Draw()
}

// engine implements the Engine interface.
// Coordinates the tick, render, and window threads.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window
	r      renderer.Renderer

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	systems []System
	drawers []Drawer

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point. It owns the fixed-rate tick loop that
// drives registered Systems and the render loop that drives registered
// Drawers inside the renderer's frame lifecycle.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer the engine submits frames through.
	//
	// Returns:
	//   - renderer.Renderer: the renderer instance
	Renderer() renderer.Renderer

	// Profiler returns the engine's profiler instance.
	//
	// Returns:
	//   - *profiler.Profiler: the profiler
	Profiler() *profiler.Profiler

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	// Registered Systems are updated at this rate.
	//
	// Parameters:
	//   - tps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(tps float64)

	// SetTickCallback registers a function called each engine tick after all
	// Systems have updated.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers a function called each render frame after
	// all Drawers have run.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames
	// per second. Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddSystem registers a System with the tick loop. Systems update in
	// registration order.
	//
	// Parameters:
	//   - s: the System to register
	AddSystem(s System)

	// AddDrawer registers a Drawer with the render loop. Drawers run in
	// registration order within each frame.
	//
	// Parameters:
	//   - d: the Drawer to register
	AddDrawer(d Drawer)

	// Run starts the main engine loop (blocks until the window closes).
	Run()

	// Quit signals all engine goroutines to stop and shuts down the engine.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// The window and renderer are supplied via options; without them the engine
// still runs its tick loop, which is how headless tests drive Systems.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		profiler:        profiler.NewProfiler(),
		engineTickRate:  time.Second / 60,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil && e.r != nil {
		e.window.SetResizeCallback(func(width, height int) {
			e.r.Resize(width, height)
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.r
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

func (e *engine) Run() {
	e.handle()
	if e.window != nil {
		e.window.ProcessMessages()
	} else {
		<-e.quitChannel
	}
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running = false
		close(e.quitChannel)
	})
}

// handle launches the tick, render, and quit goroutines.
func (e *engine) handle() {
	e.wg.Add(3)
	go e.handleTick()
	go e.handleRender()
	go e.handleQuit()
}

// handleTick runs the fixed-rate tick loop in its own goroutine.
// Updates every registered System then fires the tick callback, and listens
// for dynamic rate changes via tickRateChannel. Exits on quit.
func (e *engine) handleTick() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			for _, s := range e.systems {
				s.Update(dt)
			}
			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleRender runs the uncapped (or frame-limited) render loop in its own
// goroutine. Each frame it runs the full lifecycle: BeginFrame, every Drawer
// in order, EndFrame, Present. Recovers from panics to avoid crashing the
// process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("render goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastRender).Seconds())
			lastRender = now

			if e.r != nil {
				if err := e.r.BeginFrame(); err == nil {
					for _, d := range e.drawers {
						d.Draw()
					}
					e.r.EndFrame()
					e.r.Present()
				}
			}

			if e.renderCallback != nil {
				e.renderCallback(dt)
			}

			if e.profilingEnabled && e.profiler != nil {
				e.profiler.Tick()
			}

			// Frame rate limiting
			if e.renderFrameLimit > 0 {
				elapsed := time.Since(lastRender)
				if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(tps float64) {
	if tps <= 0 {
		tps = 60
	}
	newRate := time.Second / time.Duration(tps)

	if e.running {
		// Non-blocking send - if the channel holds a pending value, replace it
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Second / time.Duration(fps)
}

func (e *engine) AddSystem(s System) {
	e.systems = append(e.systems, s)
}

func (e *engine) AddDrawer(d Drawer) {
	e.drawers = append(e.drawers, d)
}
