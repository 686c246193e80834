// Package debugger implements the editor side of the remote debug
// session: lifecycle, the breakpoint/step state machine, bounded
// message draining, path interning, telemetry routing, and the
// live-edit relay.
package debugger

import (
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vburojevic/rdb/internal/errlog"
	"github.com/vburojevic/rdb/internal/inspector"
	"github.com/vburojevic/rdb/internal/scenetree"
	"github.com/vburojevic/rdb/internal/telemetry"
	"github.com/vburojevic/rdb/internal/transport"
	"github.com/vburojevic/rdb/internal/wire"
)

var (
	// ErrNoPeer reports Start with a nil transport.
	ErrNoPeer = errors.New("debugger: start requires a transport peer")

	// ErrSessionInactive reports an operation that needs an active
	// session.
	ErrSessionInactive = errors.New("debugger: session is not active")

	// ErrInvalidState reports a control call that is a programming
	// error in the current break state, e.g. Break while breaked.
	ErrInvalidState = errors.New("debugger: invalid call for current break state")
)

// ProfilerKind selects which remote profiler a control message
// targets.
type ProfilerKind int

const (
	// ProfilerServers is the combined script/server profiler.
	ProfilerServers ProfilerKind = iota
	// ProfilerVisual is the CPU/GPU frame profiler.
	ProfilerVisual
	// ProfilerNetwork is the RPC traffic profiler.
	ProfilerNetwork
)

const (
	// defaultDrainBudget bounds one tick's message draining so a
	// burst cannot starve the host loop.
	defaultDrainBudget = 20 * time.Millisecond

	defaultTickInterval = 50 * time.Millisecond

	minProfilerFunctions = 16
	maxProfilerFunctions = 512
)

// Options configures a Session. Zero values fall back to sane
// defaults.
type Options struct {
	Logger       *zap.SugaredLogger
	Clock        clock.Clock
	Sink         EventSink
	CameraSource CameraSource

	// Monitors is the performance monitor set the target reports, in
	// slot order.
	Monitors []telemetry.Monitor

	// DrainBudget bounds one tick's draining wall-clock time.
	DrainBudget time.Duration

	// TickInterval is the period of the background drain ticker.
	TickInterval time.Duration

	// PerfHistoryCap bounds the performance history length; 0 keeps
	// everything.
	PerfHistoryCap int

	// ProfilerMaxFunctions is sent with the servers profiler enable
	// request, clamped to [16, 512].
	ProfilerMaxFunctions int
}

// Session is one editor-side debug session. It exclusively owns its
// caches and aggregators; all mutation happens on the dispatch/tick
// path or in direct response to local calls, both serialized by the
// session lock.
type Session struct {
	mu sync.Mutex

	log       *zap.SugaredLogger
	clock     clock.Clock
	sink      EventSink
	camSource CameraSource

	drainBudget  time.Duration
	tickInterval time.Duration
	maxFuncsOpt  int

	id             uuid.UUID
	peer           transport.Peer
	tickerStop     chan struct{}
	skipBreak      bool
	liveDebug      bool
	breaked        bool
	canDebug       bool
	remotePID      int64
	cameraOverride CameraOverride

	stack         []wire.StackFrame
	selectedFrame int

	nodePathCache map[string]int64
	resPathCache  map[string]int64
	lastPathID    int64

	// Aggregators and mirrors, owned by the session. Read them freely;
	// never mutate them outside the session.
	Perf      *telemetry.PerfHistory
	Profiler  *telemetry.Profiler
	Visual    *telemetry.VisualProfiler
	Network   *telemetry.NetworkProfiler
	Memory    *telemetry.MemoryUsage
	Errors    *errlog.Log
	Scene     *scenetree.Tree
	Inspector *inspector.Cache
}

// New creates an inactive session.
func New(opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Sink == nil {
		opts.Sink = NopSink{}
	}
	if opts.DrainBudget <= 0 {
		opts.DrainBudget = defaultDrainBudget
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}
	if opts.ProfilerMaxFunctions == 0 {
		opts.ProfilerMaxFunctions = maxProfilerFunctions
	}

	return &Session{
		log:           opts.Logger,
		clock:         opts.Clock,
		sink:          opts.Sink,
		camSource:     opts.CameraSource,
		drainBudget:   opts.DrainBudget,
		tickInterval:  opts.TickInterval,
		maxFuncsOpt:   opts.ProfilerMaxFunctions,
		selectedFrame: -1,
		nodePathCache: make(map[string]int64),
		resPathCache:  make(map[string]int64),
		Perf:          telemetry.NewPerfHistory(opts.Monitors, opts.PerfHistoryCap),
		Profiler:      telemetry.NewProfiler(),
		Visual:        telemetry.NewVisualProfiler(),
		Network:       telemetry.NewNetworkProfiler(),
		Memory:        telemetry.NewMemoryUsage(),
		Errors:        errlog.New(),
		Scene:         scenetree.New(),
		Inspector:     inspector.New(),
	}
}

// ID returns the session's identifier, assigned on Start.
func (s *Session) ID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Start attaches the session to a transport peer. Any prior session
// is stopped first; counters, caches and histories reset.
func (s *Session) Start(peer transport.Peer) error {
	if peer == nil {
		return ErrNoPeer
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	s.id = uuid.New()
	s.peer = peer
	s.breaked = false
	s.canDebug = true
	s.cameraOverride = CameraNone
	s.lastPathID = 0

	s.Errors.Clear()
	s.Perf.Reset()
	s.Profiler.Reset()
	s.Visual.Reset()
	s.Network.Reset()
	s.Memory.Reset()
	s.Scene.Clear()
	s.Inspector.ClearCache()
	s.Inspector.ClearStackVariables()

	s.tickerStop = make(chan struct{})
	go s.run(s.tickerStop)

	s.log.Debugw("debug session started", "session", s.id.String())
	s.sink.StatusText("Debug session started.", StatusSuccess)
	return nil
}

// run drives the periodic drain ticks until the session stops.
func (s *Session) run(stop chan struct{}) {
	ticker := s.clock.Ticker(s.tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Tick()
		case <-stop:
			return
		}
	}
}

// Active reports whether a peer is attached.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeLocked()
}

func (s *Session) activeLocked() bool { return s.peer != nil }

// Breaked reports whether the target is suspended.
func (s *Session) Breaked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.breaked
}

// CanDebug reports whether stepping is possible at the current
// break.
func (s *Session) CanDebug() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canDebug
}

// RemotePID returns the target's process ID, when reported.
func (s *Session) RemotePID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remotePID
}

// Tick runs one drain pass: messages are popped and dispatched until
// the queue empties or the drain budget elapses. Undrained messages
// stay buffered in the transport for the next tick. Also forwards the
// camera override transform when one is active.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.activeLocked() {
		return
	}

	s.forwardCameraLocked()

	until := s.clock.Now().Add(s.drainBudget)
	for s.activeLocked() && s.peer.HasMessage() {
		raw, err := s.peer.GetMessage()
		if err != nil {
			s.log.Warnw("transport read failed", "error", err)
			s.stopAndNotifyLocked()
			return
		}
		msg, err := wire.DecodeEnvelope(raw)
		if err != nil {
			// The envelope shape is strict: no resync is attempted.
			s.log.Errorw("invalid message envelope, closing session", "error", err)
			s.stopAndNotifyLocked()
			return
		}
		s.dispatchLocked(msg)

		if s.clock.Now().After(until) {
			break
		}
	}
}

// Stop detaches the transport and resets execution state. Idempotent;
// unconditional and immediate, with no graceful drain of in-flight
// messages.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Session) stopLocked() {
	if s.tickerStop != nil {
		close(s.tickerStop)
		s.tickerStop = nil
	}

	s.breaked = false
	s.canDebug = false
	s.remotePID = 0
	s.cameraOverride = CameraNone
	s.clearExecutionLocked()
	s.Inspector.ClearCache()

	if s.peer != nil {
		if err := s.peer.Close(); err != nil {
			s.log.Debugw("peer close failed", "error", err)
		}
		s.peer = nil
		s.sink.StatusText("", StatusSuccess)
	}

	s.nodePathCache = make(map[string]int64)
	s.resPathCache = make(map[string]int64)
	s.Profiler.ClearSignatures()
}

func (s *Session) stopAndNotifyLocked() {
	s.stopLocked()
	s.sink.Stopped()
	s.sink.StatusText("Debug session closed.", StatusWarning)
}

// putLocked sends one message if the session is active. Sends are
// fire-and-forget; a failed send is logged and otherwise ignored.
func (s *Session) putLocked(tag string, data []any) {
	if !s.activeLocked() {
		return
	}
	if data == nil {
		data = []any{}
	}
	if err := s.peer.PutMessage([]any{tag, data}); err != nil {
		s.log.Warnw("message send failed", "tag", tag, "error", err)
	}
}

// clearExecutionLocked removes the execution pointer and drops stack
// state.
func (s *Session) clearExecutionLocked() {
	if len(s.stack) > 0 {
		s.sink.ClearExecution()
	}
	s.stack = nil
	s.selectedFrame = -1
	s.Inspector.ClearStackVariables()
}

// Break suspends the running target. Calling it while already breaked
// is a programming error.
func (s *Session) Break() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.activeLocked() {
		return ErrSessionInactive
	}
	if s.breaked {
		return ErrInvalidState
	}
	s.putLocked(wire.TagBreak, nil)
	return nil
}

// StepOver advances the breaked target one line, stepping over calls.
func (s *Session) StepOver() error {
	return s.stepControl(wire.TagNext)
}

// StepInto advances the breaked target one line, stepping into calls.
func (s *Session) StepInto() error {
	return s.stepControl(wire.TagStep)
}

// Continue resumes the breaked target.
func (s *Session) Continue() error {
	return s.stepControl(wire.TagContinue)
}

func (s *Session) stepControl(tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.activeLocked() {
		return ErrSessionInactive
	}
	if !s.breaked {
		return ErrInvalidState
	}
	s.clearExecutionLocked()
	s.putLocked(tag, nil)
	return nil
}

// BreakOnSeek breaks the target when the profiler seeks to a
// historical frame while execution is running.
func (s *Session) BreakOnSeek() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.activeLocked() || s.breaked {
		return
	}
	s.Profiler.SetSeeking(true)
	s.putLocked(wire.TagBreak, nil)
}

// SetSkipBreakpoints toggles breakpoint skipping on the target.
func (s *Session) SetSkipBreakpoints(skip bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skipBreak = skip
	s.putLocked(wire.TagSetSkipBreakpoints, []any{skip})
}

// SkipBreakpoints reports the current skip setting.
func (s *Session) SkipBreakpoints() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skipBreak
}

// SetBreakpoint adds or removes a breakpoint on the target.
func (s *Session) SetBreakpoint(path string, line int, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(wire.TagBreakpoint, []any{path, int64(line), enabled})
}

// ReloadScripts asks the target to hot-reload its scripts.
func (s *Session) ReloadScripts() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(wire.TagReloadScripts, nil)
}

// Stack returns the current stack dump, outermost frame first.
func (s *Session) Stack() []wire.StackFrame {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]wire.StackFrame, len(s.stack))
	copy(out, s.stack)
	return out
}

// SelectedFrame returns the selected stack frame index, -1 when no
// dump is loaded.
func (s *Session) SelectedFrame() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedFrame
}

// SelectFrame selects a stack frame and requests its variables.
func (s *Session) SelectFrame(frame int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.activeLocked() {
		return ErrSessionInactive
	}
	if frame < 0 || frame >= len(s.stack) {
		return ErrInvalidState
	}
	s.selectFrameLocked(frame)
	return nil
}

func (s *Session) selectFrameLocked(frame int) {
	s.selectedFrame = frame
	s.sink.FrameSelected(frame)
	s.putLocked(wire.TagGetStackFrameVars, []any{int64(frame)})
}

// RequestSceneTree asks for a fresh scene tree dump.
func (s *Session) RequestSceneTree() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(wire.TagRequestSceneTree, nil)
}

// InspectObject asks the target to describe a remote object.
func (s *Session) InspectObject(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(wire.TagInspectObject, []any{int64(id)})
}

// SetObjectProperty updates a property on a remote object.
func (s *Session) SetObjectProperty(id uint64, property string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(wire.TagSetObjectProperty, []any{int64(id), property, value})
}

// SaveNode asks the target to serialize a remote node to a file.
func (s *Session) SaveNode(id uint64, file string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(wire.TagSaveNode, []any{int64(id), file})
}

// RequestMemoryUsage asks for a fresh resource memory report.
func (s *Session) RequestMemoryUsage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(wire.TagRequestMemory, nil)
}

// SetProfilerEnabled toggles one of the remote profilers. Enabling
// the servers profiler clears the signature dictionary and carries
// the max-function-count option, clamped to [16, 512].
func (s *Session) SetProfilerEnabled(kind ProfilerKind, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := []any{enabled}
	switch kind {
	case ProfilerNetwork:
		s.putLocked(wire.TagProfilerNetwork, data)
	case ProfilerVisual:
		s.putLocked(wire.TagProfilerVisual, data)
	case ProfilerServers:
		if enabled {
			// Stale IDs must not alias across enable cycles.
			s.Profiler.ClearSignatures()
			maxFuncs := s.maxFuncsOpt
			if maxFuncs < minProfilerFunctions {
				maxFuncs = minProfilerFunctions
			} else if maxFuncs > maxProfilerFunctions {
				maxFuncs = maxProfilerFunctions
			}
			data = append(data, []any{int64(maxFuncs)})
		}
		s.putLocked(wire.TagProfilerServers, data)
	default:
		return ErrInvalidState
	}
	return nil
}

// SetCameraOverride switches the camera override, emitting the
// enable/disable toggles the transition implies.
func (s *Session) SetCameraOverride(override CameraOverride) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.cameraOverride
	switch {
	case override == Camera2D && prev != Camera2D:
		s.putLocked(wire.TagCamera2DSet, []any{true})
	case override != Camera2D && prev == Camera2D:
		s.putLocked(wire.TagCamera2DSet, []any{false})
	}
	switch {
	case override.Is3D() && !prev.Is3D():
		s.putLocked(wire.TagCamera3DSet, []any{true})
	case !override.Is3D() && prev.Is3D():
		s.putLocked(wire.TagCamera3DSet, []any{false})
	}
	s.cameraOverride = override
}

// GetCameraOverride returns the current override.
func (s *Session) GetCameraOverride() CameraOverride {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cameraOverride
}

// Affordances is the set of actions valid in the current state; a
// pure function of (active, breaked, canDebug).
type Affordances struct {
	CanBreak    bool
	CanContinue bool
	CanStep     bool
	CanCopy     bool
	CanInspect  bool
	CanLiveEdit bool
}

// Affordances computes the currently enabled actions.
func (s *Session) Affordances() Affordances {
	s.mu.Lock()
	defer s.mu.Unlock()
	active := s.activeLocked()
	return Affordances{
		CanBreak:    active && !s.breaked,
		CanContinue: active && s.breaked,
		CanStep:     active && s.breaked && s.canDebug,
		CanCopy:     active && s.breaked,
		CanInspect:  active,
		CanLiveEdit: active,
	}
}
