package telemetry

import "github.com/vburojevic/rdb/internal/wire"

// VisualMetric is one CPU/GPU frame snapshot from the visual
// profiler.
type VisualMetric struct {
	FrameNumber uint64
	Areas       []wire.VisualArea
}

// VisualProfiler accumulates visual profiler frames in arrival order.
type VisualProfiler struct {
	frames []VisualMetric
}

// NewVisualProfiler creates an empty visual profiler aggregator.
func NewVisualProfiler() *VisualProfiler {
	return &VisualProfiler{}
}

// AddFrame stores one frame.
func (v *VisualProfiler) AddFrame(frame wire.VisualProfilerFrame) {
	areas := make([]wire.VisualArea, len(frame.Areas))
	copy(areas, frame.Areas)
	v.frames = append(v.frames, VisualMetric{
		FrameNumber: frame.FrameNumber,
		Areas:       areas,
	})
}

// Frames returns all stored metrics, oldest first.
func (v *VisualProfiler) Frames() []VisualMetric { return v.frames }

// LastFrame returns the most recent metric.
func (v *VisualProfiler) LastFrame() (VisualMetric, bool) {
	if len(v.frames) == 0 {
		return VisualMetric{}, false
	}
	return v.frames[len(v.frames)-1], true
}

// Reset drops all frames.
func (v *VisualProfiler) Reset() { v.frames = nil }
