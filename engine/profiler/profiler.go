package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame rate, memory statistics, and the live instance count
// for performance monitoring. Outputs stats to the log at a configurable
// interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	// instanceCounter, when set, is sampled at each log interval to report
	// how many grains the renderer is carrying.
	instanceCounter func() int
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
}

// SetInstanceCounter registers a function sampled at each log interval to
// include the live instance count in the stats line.
//
// Parameters:
//   - counter: function returning the current instance count (or nil to disable)
func (p *Profiler) SetInstanceCounter(counter func() int) {
	p.instanceCounter = counter
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, instance count, heap usage, allocation rate, GC count, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var lastPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses.
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
	}

	instances := -1
	if p.instanceCounter != nil {
		instances = p.instanceCounter()
	}

	if instances >= 0 {
		log.Printf("[Profiler] FPS: %.2f | Instances: %d | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs) | Sys: %.2f MB",
			fps, instances, allocMB, allocRateMB, gcCount, lastPauseUs, sysMB)
	} else {
		log.Printf("[Profiler] FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs) | Sys: %.2f MB",
			fps, allocMB, allocRateMB, gcCount, lastPauseUs, sysMB)
	}

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
