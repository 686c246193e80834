package wire

import "errors"

// ErrBadPayload reports a payload that could not be structurally
// decoded for its tag. Handlers treat this as best-effort telemetry
// loss, not a session fault, except where documented otherwise.
var ErrBadPayload = errors.New("wire: malformed message payload")

// reader walks a payload sequence with lenient coercion. Any
// out-of-range or uncoercible read poisons the reader; the caller
// checks err() once at the end.
type reader struct {
	data []any
	pos  int
	bad  bool
}

func (r *reader) next() (any, bool) {
	if r.bad || r.pos >= len(r.data) {
		r.bad = true
		return nil, false
	}
	v := r.data[r.pos]
	r.pos++
	return v, true
}

func (r *reader) str() string {
	v, ok := r.next()
	if !ok {
		return ""
	}
	s, ok := Str(v)
	if !ok {
		r.bad = true
	}
	return s
}

func (r *reader) int() int64 {
	v, ok := r.next()
	if !ok {
		return 0
	}
	n, ok := Int(v)
	if !ok {
		r.bad = true
	}
	return n
}

func (r *reader) float() float64 {
	v, ok := r.next()
	if !ok {
		return 0
	}
	f, ok := Float(v)
	if !ok {
		r.bad = true
	}
	return f
}

func (r *reader) boolean() bool {
	v, ok := r.next()
	if !ok {
		return false
	}
	b, ok := Bool(v)
	if !ok {
		r.bad = true
	}
	return b
}

func (r *reader) err() error {
	if r.bad {
		return ErrBadPayload
	}
	return nil
}

// count reads a length prefix and bounds it by the values remaining,
// so a lying prefix cannot force huge allocations.
func (r *reader) count(perItem int) int {
	n := int(r.int())
	if r.bad || n < 0 {
		r.bad = true
		return 0
	}
	if perItem > 0 && n*perItem > len(r.data)-r.pos {
		r.bad = true
		return 0
	}
	return n
}

// StackFrame is one frame of a remote stack dump.
type StackFrame struct {
	File     string
	Line     int
	Function string
}

// StackDump is the payload of a "stack_dump" message.
type StackDump struct {
	Frames []StackFrame
}

// Payload serializes d for the wire.
func (d StackDump) Payload() []any {
	out := []any{int64(len(d.Frames))}
	for _, f := range d.Frames {
		out = append(out, f.File, int64(f.Line), f.Function)
	}
	return out
}

// DecodeStackDump decodes a "stack_dump" payload.
func DecodeStackDump(data []any) (StackDump, error) {
	r := &reader{data: data}
	n := r.count(3)
	d := StackDump{Frames: make([]StackFrame, 0, n)}
	for i := 0; i < n; i++ {
		d.Frames = append(d.Frames, StackFrame{
			File:     r.str(),
			Line:     int(r.int()),
			Function: r.str(),
		})
	}
	if err := r.err(); err != nil {
		return StackDump{}, err
	}
	return d, nil
}

// OutputError is a remote-reported runtime error or warning. It is
// data accumulated by the client, never a fault of the session.
type OutputError struct {
	Hour, Minute, Second, Millisecond int
	SourceFile                        string
	SourceFunc                        string
	SourceLine                        int
	// Condition is the engine-level error condition text; Description
	// is the optional custom message shown in its place when present.
	Condition   string
	Description string
	Warning     bool
	Callstack   []StackFrame
}

// Payload serializes e for the wire.
func (e OutputError) Payload() []any {
	out := []any{
		int64(e.Hour), int64(e.Minute), int64(e.Second), int64(e.Millisecond),
		e.SourceFile, e.SourceFunc, int64(e.SourceLine),
		e.Condition, e.Description, e.Warning,
		int64(len(e.Callstack)),
	}
	for _, f := range e.Callstack {
		out = append(out, f.File, f.Function, int64(f.Line))
	}
	return out
}

// DecodeOutputError decodes an "error" payload.
func DecodeOutputError(data []any) (OutputError, error) {
	r := &reader{data: data}
	e := OutputError{
		Hour:        int(r.int()),
		Minute:      int(r.int()),
		Second:      int(r.int()),
		Millisecond: int(r.int()),
		SourceFile:  r.str(),
		SourceFunc:  r.str(),
		SourceLine:  int(r.int()),
		Condition:   r.str(),
		Description: r.str(),
		Warning:     r.boolean(),
	}
	n := r.count(3)
	for i := 0; i < n; i++ {
		e.Callstack = append(e.Callstack, StackFrame{
			File:     r.str(),
			Function: r.str(),
			Line:     int(r.int()),
		})
	}
	if err := r.err(); err != nil {
		return OutputError{}, err
	}
	return e, nil
}

// ResourceInfo describes one remotely loaded resource.
type ResourceInfo struct {
	Path   string
	Type   string
	Format string
	Bytes  int64
}

// ResourceUsage is the payload of a "memory:usage" message.
type ResourceUsage struct {
	Infos []ResourceInfo
}

// Payload serializes u for the wire.
func (u ResourceUsage) Payload() []any {
	out := []any{int64(len(u.Infos))}
	for _, ri := range u.Infos {
		out = append(out, ri.Path, ri.Type, ri.Format, ri.Bytes)
	}
	return out
}

// DecodeResourceUsage decodes a "memory:usage" payload.
func DecodeResourceUsage(data []any) (ResourceUsage, error) {
	r := &reader{data: data}
	n := r.count(4)
	u := ResourceUsage{Infos: make([]ResourceInfo, 0, n)}
	for i := 0; i < n; i++ {
		u.Infos = append(u.Infos, ResourceInfo{
			Path:   r.str(),
			Type:   r.str(),
			Format: r.str(),
			Bytes:  r.int(),
		})
	}
	if err := r.err(); err != nil {
		return ResourceUsage{}, err
	}
	return u, nil
}

// ServerFunction is one timed function within a server snapshot.
type ServerFunction struct {
	Name string
	Time float64
}

// ServerInfo is one server category in a servers profiler frame.
type ServerInfo struct {
	Name      string
	Functions []ServerFunction
}

// ScriptFunction is one profiled script function, identified by a
// numeric signature ID resolved through the session's signature
// dictionary.
type ScriptFunction struct {
	SignatureID int64
	CallCount   int
	TotalTime   float64
	SelfTime    float64
}

// ServersProfilerFrame is the payload of "servers:profile_frame" and
// "servers:profile_total" messages.
type ServersProfilerFrame struct {
	FrameNumber      uint64
	FrameTime        float64
	IdleTime         float64
	PhysicsTime      float64
	PhysicsFrameTime float64
	ScriptTime       float64
	Servers          []ServerInfo
	ScriptFunctions  []ScriptFunction
}

// Payload serializes f for the wire.
func (f ServersProfilerFrame) Payload() []any {
	out := []any{
		f.FrameNumber, f.FrameTime, f.IdleTime, f.PhysicsTime,
		f.PhysicsFrameTime, f.ScriptTime,
		int64(len(f.Servers)),
	}
	for _, srv := range f.Servers {
		out = append(out, srv.Name, int64(len(srv.Functions)))
		for _, fn := range srv.Functions {
			out = append(out, fn.Name, fn.Time)
		}
	}
	out = append(out, int64(len(f.ScriptFunctions)))
	for _, fn := range f.ScriptFunctions {
		out = append(out, fn.SignatureID, int64(fn.CallCount), fn.TotalTime, fn.SelfTime)
	}
	return out
}

// DecodeServersProfilerFrame decodes a servers profiler payload.
func DecodeServersProfilerFrame(data []any) (ServersProfilerFrame, error) {
	r := &reader{data: data}
	f := ServersProfilerFrame{
		FrameNumber:      uint64(r.int()),
		FrameTime:        r.float(),
		IdleTime:         r.float(),
		PhysicsTime:      r.float(),
		PhysicsFrameTime: r.float(),
		ScriptTime:       r.float(),
	}
	nServers := r.count(2)
	for i := 0; i < nServers; i++ {
		srv := ServerInfo{Name: r.str()}
		nFuncs := r.count(2)
		for j := 0; j < nFuncs; j++ {
			srv.Functions = append(srv.Functions, ServerFunction{
				Name: r.str(),
				Time: r.float(),
			})
		}
		f.Servers = append(f.Servers, srv)
	}
	nScript := r.count(4)
	for i := 0; i < nScript; i++ {
		f.ScriptFunctions = append(f.ScriptFunctions, ScriptFunction{
			SignatureID: r.int(),
			CallCount:   int(r.int()),
			TotalTime:   r.float(),
			SelfTime:    r.float(),
		})
	}
	if err := r.err(); err != nil {
		return ServersProfilerFrame{}, err
	}
	return f, nil
}

// VisualArea is one timed area of a visual (CPU/GPU) profiler frame.
type VisualArea struct {
	Name    string
	CPUMsec float64
	GPUMsec float64
}

// VisualProfilerFrame is the payload of a "visual:profile_frame"
// message.
type VisualProfilerFrame struct {
	FrameNumber uint64
	Areas       []VisualArea
}

// Payload serializes f for the wire.
func (f VisualProfilerFrame) Payload() []any {
	out := []any{f.FrameNumber, int64(len(f.Areas))}
	for _, a := range f.Areas {
		out = append(out, a.Name, a.CPUMsec, a.GPUMsec)
	}
	return out
}

// DecodeVisualProfilerFrame decodes a "visual:profile_frame" payload.
func DecodeVisualProfilerFrame(data []any) (VisualProfilerFrame, error) {
	r := &reader{data: data}
	f := VisualProfilerFrame{FrameNumber: uint64(r.int())}
	n := r.count(3)
	for i := 0; i < n; i++ {
		f.Areas = append(f.Areas, VisualArea{
			Name:    r.str(),
			CPUMsec: r.float(),
			GPUMsec: r.float(),
		})
	}
	if err := r.err(); err != nil {
		return VisualProfilerFrame{}, err
	}
	return f, nil
}

// NetworkNodeInfo is per-node RPC traffic in a network profiler frame.
// The node ID is an opaque remote identifier.
type NetworkNodeInfo struct {
	NodeID       int64
	NodePath     string
	IncomingRPC  int
	IncomingRSet int
	OutgoingRPC  int
	OutgoingRSet int
}

// NetworkProfilerFrame is the payload of a "network:profile_frame"
// message.
type NetworkProfilerFrame struct {
	Infos []NetworkNodeInfo
}

// Payload serializes f for the wire.
func (f NetworkProfilerFrame) Payload() []any {
	out := []any{int64(len(f.Infos))}
	for _, ni := range f.Infos {
		out = append(out, ni.NodeID, ni.NodePath,
			int64(ni.IncomingRPC), int64(ni.IncomingRSet),
			int64(ni.OutgoingRPC), int64(ni.OutgoingRSet))
	}
	return out
}

// DecodeNetworkProfilerFrame decodes a "network:profile_frame" payload.
func DecodeNetworkProfilerFrame(data []any) (NetworkProfilerFrame, error) {
	r := &reader{data: data}
	n := r.count(6)
	f := NetworkProfilerFrame{Infos: make([]NetworkNodeInfo, 0, n)}
	for i := 0; i < n; i++ {
		f.Infos = append(f.Infos, NetworkNodeInfo{
			NodeID:       r.int(),
			NodePath:     r.str(),
			IncomingRPC:  int(r.int()),
			IncomingRSet: int(r.int()),
			OutgoingRPC:  int(r.int()),
			OutgoingRSet: int(r.int()),
		})
	}
	if err := r.err(); err != nil {
		return NetworkProfilerFrame{}, err
	}
	return f, nil
}

// FunctionSignature associates a numeric profiler signature ID with a
// qualified function name, sent via "servers:function_signature".
type FunctionSignature struct {
	Name string
	ID   int64
}

// Payload serializes s for the wire.
func (s FunctionSignature) Payload() []any {
	return []any{s.Name, s.ID}
}

// DecodeFunctionSignature decodes a "servers:function_signature"
// payload.
func DecodeFunctionSignature(data []any) (FunctionSignature, error) {
	r := &reader{data: data}
	s := FunctionSignature{Name: r.str(), ID: r.int()}
	if err := r.err(); err != nil {
		return FunctionSignature{}, err
	}
	return s, nil
}
