package telemetry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vburojevic/rdb/internal/wire"
)

// Item is one profiled function. Self excludes time spent in callees;
// Total includes it.
type Item struct {
	Signature string
	Name      string
	Script    string
	Line      int
	Calls     int
	Self      float64
	Total     float64
}

// Category groups items under a server or synthetic heading.
type Category struct {
	Signature string
	Name      string
	TotalTime float64
	Items     []Item
}

// Metric is one structured profiler frame snapshot.
type Metric struct {
	FrameNumber      uint64
	FrameTime        float64
	IdleTime         float64
	PhysicsTime      float64
	PhysicsFrameTime float64
	// Final marks a "profile_total" snapshot, accumulated over the
	// whole profiling run rather than one frame.
	Final      bool
	Categories []Category
}

// Profiler aggregates script/server profiler frames. Numeric
// signature IDs resolve to qualified names through a per-session
// signature dictionary; the dictionary is cleared on every
// (re)enable so stale IDs cannot alias across enable cycles.
type Profiler struct {
	signatures map[int64]string
	frames     []Metric
	capturing  bool
	seeking    bool
}

// NewProfiler creates an empty profiler aggregator.
func NewProfiler() *Profiler {
	return &Profiler{
		signatures: make(map[int64]string),
		capturing:  true,
	}
}

// AddSignature caches one signature mapping.
func (p *Profiler) AddSignature(id int64, name string) {
	p.signatures[id] = name
}

// ClearSignatures drops the signature dictionary. Called when the
// remote profiler is (re)enabled.
func (p *Profiler) ClearSignatures() {
	p.signatures = make(map[int64]string)
}

// SetCapturing mirrors the target's break state for hosts: the session
// clears it while the target is breaked and restores it on resume.
// Frame intake itself is not gated; a breaked target simply stops
// sending frames.
func (p *Profiler) SetCapturing(on bool) { p.capturing = on }

// Capturing reports the mirrored capture state.
func (p *Profiler) Capturing() bool { return p.capturing }

// SetSeeking marks the profiler as inspecting a historical frame.
func (p *Profiler) SetSeeking(on bool) { p.seeking = on }

// Seeking reports whether the profiler is seeked to a past frame.
func (p *Profiler) Seeking() bool { return p.seeking }

// DisableSeeking leaves seek mode; called when execution resumes.
func (p *Profiler) DisableSeeking() { p.seeking = false }

// AddFrame converts a wire frame into a Metric and stores it. The
// metric carries a synthetic Frame Time category, one category per
// server, and a Script Functions category with signature IDs resolved
// through the dictionary.
func (p *Profiler) AddFrame(frame wire.ServersProfilerFrame, final bool) Metric {
	m := Metric{
		FrameNumber:      frame.FrameNumber,
		FrameTime:        frame.FrameTime,
		IdleTime:         frame.IdleTime,
		PhysicsTime:      frame.PhysicsTime,
		PhysicsFrameTime: frame.PhysicsFrameTime,
		Final:            final,
	}

	if len(frame.Servers) > 0 {
		frameTime := Category{
			Signature: "category_frame_time",
			Name:      "Frame Time",
			TotalTime: m.FrameTime,
			Items: []Item{
				{Signature: "physics_time", Name: "Physics Time", Calls: 1, Self: m.PhysicsTime, Total: m.PhysicsTime},
				{Signature: "idle_time", Name: "Idle Time", Calls: 1, Self: m.IdleTime, Total: m.IdleTime},
				{Signature: "physics_frame_time", Name: "Physics Frame Time", Calls: 1, Self: m.PhysicsFrameTime, Total: m.PhysicsFrameTime},
			},
		}
		m.Categories = append(m.Categories, frameTime)
	}

	for _, srv := range frame.Servers {
		c := Category{
			Signature: "categ::" + srv.Name,
			Name:      capitalize(srv.Name),
		}
		for _, fn := range srv.Functions {
			item := Item{
				Signature: "categ::" + srv.Name + "::" + fn.Name,
				Name:      capitalize(fn.Name),
				Calls:     1,
				Self:      fn.Time,
				Total:     fn.Time,
			}
			c.TotalTime += item.Total
			c.Items = append(c.Items, item)
		}
		m.Categories = append(m.Categories, c)
	}

	funcs := Category{
		Signature: "script_functions",
		Name:      "Script Functions",
		TotalTime: frame.ScriptTime,
	}
	for _, fn := range frame.ScriptFunctions {
		item := Item{
			Calls: fn.CallCount,
			Self:  fn.SelfTime,
			Total: fn.TotalTime,
		}
		if qualified, ok := p.signatures[fn.SignatureID]; ok {
			item.Signature = qualified
			if info := wire.ParseSignature(qualified); info.Resolved {
				item.Name = info.Name
				item.Script = info.Script
				item.Line = info.Line
			} else {
				item.Name = qualified
			}
		} else {
			item.Name = "SigErr " + strconv.FormatInt(fn.SignatureID, 10)
		}
		funcs.Items = append(funcs.Items, item)
	}
	m.Categories = append(m.Categories, funcs)

	p.frames = append(p.frames, m)
	return m
}

// Frames returns all stored metrics, oldest first.
func (p *Profiler) Frames() []Metric { return p.frames }

// LastFrame returns the most recent metric.
func (p *Profiler) LastFrame() (Metric, bool) {
	if len(p.frames) == 0 {
		return Metric{}, false
	}
	return p.frames[len(p.frames)-1], true
}

// CSVRows flattens the stored metrics for export: one header row,
// then one row per item with its category context.
func (p *Profiler) CSVRows() [][]string {
	rows := [][]string{{"frame", "category", "name", "script", "line", "calls", "self", "total"}}
	for _, m := range p.frames {
		for _, c := range m.Categories {
			for _, it := range c.Items {
				rows = append(rows, []string{
					strconv.FormatUint(m.FrameNumber, 10),
					c.Name,
					it.Name,
					it.Script,
					strconv.Itoa(it.Line),
					strconv.Itoa(it.Calls),
					fmt.Sprintf("%v", it.Self),
					fmt.Sprintf("%v", it.Total),
				})
			}
		}
	}
	return rows
}

// Reset drops all frames and signatures.
func (p *Profiler) Reset() {
	p.frames = nil
	p.signatures = make(map[int64]string)
	p.capturing = true
	p.seeking = false
}

// capitalize turns snake_case server names into display headings, e.g.
// "physics_2d" -> "Physics 2d".
func capitalize(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
