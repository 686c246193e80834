package debugger

import (
	"strings"

	"github.com/vburojevic/rdb/internal/wire"
)

// dispatchLocked routes one decoded message to the relevant
// sub-state. Unknown tags are logged and ignored for forward
// compatibility. Payload shapes are lenient: a malformed payload on a
// known telemetry tag skips the event. The exception is debug_enter,
// whose payload is arity-checked and fatal on violation because break
// state consistency depends on it.
func (s *Session) dispatchLocked(msg wire.Message) {
	switch msg.Tag {

	case wire.TagDebugEnter:
		if len(msg.Data) != 2 {
			s.log.Errorw("malformed debug_enter payload, closing session", "arity", len(msg.Data))
			s.stopAndNotifyLocked()
			return
		}
		canContinue, ok1 := wire.Bool(msg.Data[0])
		reason, ok2 := wire.Str(msg.Data[1])
		if !ok1 || !ok2 {
			s.log.Errorw("malformed debug_enter payload, closing session")
			s.stopAndNotifyLocked()
			return
		}
		s.putLocked(wire.TagGetStackDump, nil)
		s.breaked = true
		s.canDebug = canContinue
		s.sink.StatusText(reason, StatusError)
		s.sink.Breaked(true, canContinue)
		// Fresh break, fresh remote objects.
		s.Inspector.ClearCache()
		s.Profiler.SetCapturing(false)

	case wire.TagDebugExit:
		s.breaked = false
		s.canDebug = false
		s.clearExecutionLocked()
		s.sink.StatusText("Execution resumed.", StatusSuccess)
		s.sink.Breaked(false, false)
		s.Profiler.SetCapturing(true)
		s.Profiler.DisableSeeking()

	case wire.TagSetPID:
		if len(msg.Data) < 1 {
			return
		}
		if pid, ok := wire.Int(msg.Data[0]); ok {
			s.remotePID = pid
		}

	case wire.TagSceneClickCtrl:
		if len(msg.Data) < 2 {
			return
		}
		name, ok1 := wire.Str(msg.Data[0])
		class, ok2 := wire.Str(msg.Data[1])
		if ok1 && ok2 {
			s.sink.ClickedControl(name, class)
		}

	case wire.TagSceneTree:
		if err := s.Scene.Replace(msg.Data); err != nil {
			s.log.Warnw("scene tree deserialize failed", "error", err)
			return
		}
		s.sink.RemoteTreeUpdated()

	case wire.TagInspectObject:
		id, err := s.Inspector.AddObject(msg.Data)
		if err != nil {
			s.log.Warnw("inspect_object decode failed", "error", err)
			return
		}
		s.sink.RemoteObjectUpdated(id)

	case wire.TagMemoryUsage:
		usage, err := wire.DecodeResourceUsage(msg.Data)
		if err != nil {
			s.log.Warnw("memory usage decode failed", "error", err)
			return
		}
		s.Memory.Rebuild(usage.Infos)

	case wire.TagStackDump:
		dump, err := wire.DecodeStackDump(msg.Data)
		if err != nil {
			s.log.Warnw("stack dump decode failed", "error", err)
			return
		}
		s.stack = dump.Frames
		s.Inspector.ClearStackVariables()
		s.selectedFrame = -1
		if len(s.stack) > 0 {
			s.sink.SetExecution(s.stack[0].File, s.stack[0].Line)
			s.selectFrameLocked(0)
		}

	case wire.TagStackFrameVars:
		s.Inspector.ClearStackVariables()

	case wire.TagStackFrameVar:
		if err := s.Inspector.AddStackVariable(msg.Data); err != nil {
			s.log.Warnw("stack variable decode failed", "error", err)
		}

	case wire.TagOutput:
		if len(msg.Data) < 1 {
			return
		}
		raw, ok := wire.Values(msg.Data[0])
		if !ok {
			return
		}
		lines := make([]string, 0, len(raw))
		for _, v := range raw {
			if line, ok := wire.Str(v); ok {
				lines = append(lines, line)
			}
		}
		s.sink.Output(strings.Join(lines, "\n"))

	case wire.TagPerfProfileFrame:
		values := make([]float64, 0, len(msg.Data))
		for _, v := range msg.Data {
			f, ok := wire.Float(v)
			if !ok {
				return
			}
			values = append(values, f)
		}
		s.Perf.AddFrame(values)
		s.sink.PerformanceFrame(values)

	case wire.TagVisualFrame:
		frame, err := wire.DecodeVisualProfilerFrame(msg.Data)
		if err != nil {
			s.log.Warnw("visual profiler frame decode failed", "error", err)
			return
		}
		s.Visual.AddFrame(frame)

	case wire.TagFunctionSignature:
		sig, err := wire.DecodeFunctionSignature(msg.Data)
		if err != nil {
			s.log.Warnw("function signature decode failed", "error", err)
			return
		}
		s.Profiler.AddSignature(sig.ID, sig.Name)

	case wire.TagServersFrame, wire.TagServersTotal:
		frame, err := wire.DecodeServersProfilerFrame(msg.Data)
		if err != nil {
			s.log.Warnw("servers profiler frame decode failed", "error", err)
			return
		}
		s.Profiler.AddFrame(frame, msg.Tag == wire.TagServersTotal)

	case wire.TagNetworkFrame:
		frame, err := wire.DecodeNetworkProfilerFrame(msg.Data)
		if err != nil {
			s.log.Warnw("network profiler frame decode failed", "error", err)
			return
		}
		for _, info := range frame.Infos {
			s.Network.AddNodeFrame(info)
		}

	case wire.TagNetworkBandwidth:
		if len(msg.Data) < 2 {
			return
		}
		in, ok1 := wire.Int(msg.Data[0])
		out, ok2 := wire.Int(msg.Data[1])
		if ok1 && ok2 {
			s.Network.SetBandwidth(in, out)
		}

	case wire.TagError:
		oe, err := wire.DecodeOutputError(msg.Data)
		if err != nil {
			s.log.Warnw("error event decode failed", "error", err)
			return
		}
		s.Errors.Add(oe)
		s.sink.RuntimeError(oe)

	case wire.TagRequestQuit:
		s.sink.StopRequested()
		s.stopAndNotifyLocked()

	default:
		s.log.Warnw("unknown message", "tag", msg.Tag)
	}
}
