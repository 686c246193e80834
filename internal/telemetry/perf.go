// Package telemetry accumulates the streams a debugged target emits:
// performance monitor samples, script/server profiler frames, visual
// (CPU/GPU) frames, network profiler traffic, and memory usage.
//
// All aggregators are exclusively owned and mutated by the session's
// dispatch path; none of them are safe for concurrent writers.
package telemetry

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
)

// MonitorKind selects how a monitor's value is rendered.
type MonitorKind int

const (
	// MonitorQuantity is a plain count or ratio.
	MonitorQuantity MonitorKind = iota
	// MonitorMemory is a byte count, humanized for display.
	MonitorMemory
	// MonitorTime is a duration in seconds, shown in milliseconds.
	MonitorTime
)

// Monitor describes one performance monitor slot.
type Monitor struct {
	Name string
	Kind MonitorKind
}

// PerfHistory holds performance samples newest-first with a running
// per-monitor maximum. The maximum is a watermark: once raised it is
// never lowered within a session, so graph scales stay stable.
type PerfHistory struct {
	monitors []Monitor
	max      []float64
	// history[0] is the most recent sample. Each sample has one slot
	// per monitor.
	history [][]float64
	// cap bounds the history length; 0 means unbounded, matching the
	// original editor behavior. Long headless attach sessions set a
	// cap via config.
	cap int
}

// NewPerfHistory creates a history for the given monitor set.
func NewPerfHistory(monitors []Monitor, cap int) *PerfHistory {
	return &PerfHistory{
		monitors: monitors,
		max:      make([]float64, len(monitors)),
		cap:      cap,
	}
}

// AddFrame pushes one sample to the front and raises watermarks.
// Samples shorter than the monitor set are padded with zeros; longer
// ones keep their extra slots so unknown monitors still export.
func (h *PerfHistory) AddFrame(values []float64) {
	sample := make([]float64, len(values))
	copy(sample, values)
	for i, v := range sample {
		if i < len(h.max) && v > h.max[i] {
			h.max[i] = v
		}
	}
	h.history = append([][]float64{sample}, h.history...)
	if h.cap > 0 && len(h.history) > h.cap {
		h.history = h.history[:h.cap]
	}
}

// Len returns the number of stored samples.
func (h *PerfHistory) Len() int { return len(h.history) }

// At returns sample i, 0 being the most recent.
func (h *PerfHistory) At(i int) []float64 { return h.history[i] }

// Max returns the watermark for monitor i.
func (h *PerfHistory) Max(i int) float64 {
	if i < 0 || i >= len(h.max) {
		return 0
	}
	return h.max[i]
}

// Monitors returns the monitor set.
func (h *PerfHistory) Monitors() []Monitor { return h.monitors }

// Names returns the monitor names in slot order.
func (h *PerfHistory) Names() []string {
	names := make([]string, len(h.monitors))
	for i, m := range h.monitors {
		names[i] = m.Name
	}
	return names
}

// Label renders value for monitor i: bytes humanized for memory
// monitors, milliseconds with two decimals for time monitors, plain
// number otherwise.
func (h *PerfHistory) Label(i int, value float64) string {
	kind := MonitorQuantity
	if i >= 0 && i < len(h.monitors) {
		kind = h.monitors[i].Kind
	}
	switch kind {
	case MonitorMemory:
		if value < 0 {
			value = 0
		}
		return humanize.IBytes(uint64(value))
	case MonitorTime:
		return fmt.Sprintf("%.2f ms", value*1000)
	default:
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
}

// Reset drops all samples and watermarks, keeping the monitor set.
func (h *PerfHistory) Reset() {
	h.history = nil
	h.max = make([]float64, len(h.monitors))
}
