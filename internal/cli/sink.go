package cli

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/vburojevic/rdb/internal/debugger"
	"github.com/vburojevic/rdb/internal/wire"
)

// event is the machine-readable envelope for session events in json
// format.
type event struct {
	Type          string `json:"type"`
	SchemaVersion int    `json:"schemaVersion"`
	Payload       any    `json:"payload,omitempty"`
}

// streamSink renders session events to the terminal. The session
// invokes it synchronously from the drain path, so it only formats
// and writes; it never calls back into the session.
type streamSink struct {
	globals *Globals

	mu   sync.Mutex
	enc  *json.Encoder
	done chan struct{}
	once sync.Once
}

var _ debugger.EventSink = (*streamSink)(nil)

func newStreamSink(globals *Globals) *streamSink {
	s := &streamSink{
		globals: globals,
		done:    make(chan struct{}),
	}
	if globals.Format == "json" {
		s.enc = json.NewEncoder(globals.Stdout)
	}
	return s
}

// Done is closed once when the session tears down.
func (s *streamSink) Done() <-chan struct{} { return s.done }

func (s *streamSink) emit(typ string, payload any, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enc != nil {
		_ = s.enc.Encode(event{Type: typ, SchemaVersion: 1, Payload: payload})
		return
	}
	if s.globals.Quiet || text == "" {
		return
	}
	fmt.Fprintln(s.globals.Stdout, text)
}

func (s *streamSink) Breaked(breaked, canDebug bool) {
	state := "resumed"
	if breaked {
		state = "breaked"
	}
	s.emit("breaked", map[string]any{"breaked": breaked, "can_debug": canDebug},
		"-- target "+state)
}

func (s *streamSink) Stopped() {
	s.emit("stopped", nil, "-- session stopped")
	s.once.Do(func() { close(s.done) })
}

func (s *streamSink) StopRequested() {
	s.emit("stop_requested", nil, "-- remote requested shutdown")
}

func (s *streamSink) StatusText(text string, level debugger.StatusLevel) {
	if text == "" {
		return
	}
	prefix := ""
	switch level {
	case debugger.StatusWarning:
		prefix = "warning: "
	case debugger.StatusError:
		prefix = "error: "
	}
	s.emit("status", map[string]any{"text": text, "level": int(level)}, prefix+text)
}

func (s *streamSink) SetExecution(file string, line int) {
	s.emit("execution", map[string]any{"file": file, "line": line},
		fmt.Sprintf("-- suspended at %s:%d", file, line))
}

func (s *streamSink) ClearExecution() {
	s.emit("execution_clear", nil, "")
}

func (s *streamSink) FrameSelected(frame int) {
	s.emit("frame_selected", map[string]any{"frame": frame}, "")
}

func (s *streamSink) RemoteTreeUpdated() {
	s.emit("tree_updated", nil, "")
}

func (s *streamSink) RemoteObjectUpdated(id uint64) {
	s.emit("object_updated", map[string]any{"id": id}, "")
}

func (s *streamSink) ClickedControl(name, class string) {
	s.emit("clicked_ctrl", map[string]any{"name": name, "class": class},
		fmt.Sprintf("-- clicked %s (%s)", name, class))
}

func (s *streamSink) Output(text string) {
	s.emit("output", map[string]any{"text": text}, text)
}

func (s *streamSink) RuntimeError(oe wire.OutputError) {
	kind := "E"
	if oe.Warning {
		kind = "W"
	}
	title := oe.Description
	if title == "" {
		title = oe.Condition
	}
	s.emit("runtime_error", map[string]any{
		"warning": oe.Warning,
		"message": title,
		"file":    oe.SourceFile,
		"line":    oe.SourceLine,
		"func":    oe.SourceFunc,
	}, fmt.Sprintf("%s %s (%s:%d)", kind, title, oe.SourceFile, oe.SourceLine))
}

func (s *streamSink) PerformanceFrame(values []float64) {
	// Raw samples are noise in text mode; history and watermarks are
	// summarized at detach instead.
	if s.enc != nil {
		s.emit("perf_frame", map[string]any{"values": values}, "")
	}
}
