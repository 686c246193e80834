package debugger

import "github.com/vburojevic/rdb/internal/wire"

// StatusLevel colors a status text change.
type StatusLevel int

const (
	// StatusSuccess is an informational state change.
	StatusSuccess StatusLevel = iota
	// StatusWarning is a non-fatal condition, e.g. session closed.
	StatusWarning
	// StatusError is a break reason or protocol fault.
	StatusError
)

// EventSink receives the session's outward events. The core invokes
// it synchronously from the dispatch/tick path, so implementations
// must not call back into the session and should return quickly.
type EventSink interface {
	// Breaked fires on break-state transitions. canDebug reports
	// whether stepping is possible at this break.
	Breaked(breaked, canDebug bool)

	// Stopped fires once per session teardown.
	Stopped()

	// StopRequested fires when the remote asks the editor to shut the
	// session down; it precedes the Stopped event.
	StopRequested()

	// StatusText reports the human-readable session status line.
	StatusText(text string, level StatusLevel)

	// SetExecution points at the source position execution is
	// suspended at.
	SetExecution(file string, line int)

	// ClearExecution removes the execution pointer marker.
	ClearExecution()

	// FrameSelected fires when a stack frame becomes the selected
	// one; frame variables for it are requested right after.
	FrameSelected(frame int)

	// RemoteTreeUpdated fires after the scene mirror is replaced.
	RemoteTreeUpdated()

	// RemoteObjectUpdated fires after an inspected object is cached.
	RemoteObjectUpdated(id uint64)

	// ClickedControl reports the control the user clicked in the
	// running target.
	ClickedControl(name, class string)

	// Output delivers one joined block of remote stdout lines.
	Output(text string)

	// RuntimeError delivers one remote error/warning event, already
	// accumulated in the error log.
	RuntimeError(err wire.OutputError)

	// PerformanceFrame delivers one raw monitor sample, already
	// pushed to the performance history.
	PerformanceFrame(values []float64)
}

// NopSink discards all events. Embed it to implement only the events
// a host cares about.
type NopSink struct{}

var _ EventSink = NopSink{}

func (NopSink) Breaked(bool, bool)             {}
func (NopSink) Stopped()                       {}
func (NopSink) StopRequested()                 {}
func (NopSink) StatusText(string, StatusLevel) {}
func (NopSink) SetExecution(string, int)       {}
func (NopSink) ClearExecution()                {}
func (NopSink) FrameSelected(int)              {}
func (NopSink) RemoteTreeUpdated()             {}
func (NopSink) RemoteObjectUpdated(uint64)     {}
func (NopSink) ClickedControl(string, string)  {}
func (NopSink) Output(string)                  {}
func (NopSink) RuntimeError(wire.OutputError)  {}
func (NopSink) PerformanceFrame([]float64)     {}
