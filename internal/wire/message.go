// Package wire defines the debug-session wire protocol: a tagged
// message envelope carried over an ordered transport, plus typed
// decoders for the payloads the remote runtime sends.
//
// Every message on the wire is a 2-element array: a string tag and an
// array of loosely typed values. The envelope shape is strict; payload
// shapes are lenient except where a handler explicitly validates.
package wire

import "errors"

// Inbound tags. Bare tags are core session control; namespaced tags
// (scene:, servers:, network:, ...) group subsystems.
const (
	TagDebugEnter        = "debug_enter"
	TagDebugExit         = "debug_exit"
	TagSetPID            = "set_pid"
	TagStackDump         = "stack_dump"
	TagStackFrameVars    = "stack_frame_vars"
	TagStackFrameVar     = "stack_frame_var"
	TagOutput            = "output"
	TagError             = "error"
	TagRequestQuit       = "request_quit"
	TagSceneTree         = "scene:scene_tree"
	TagSceneClickCtrl    = "scene:click_ctrl"
	TagMemoryUsage       = "memory:usage"
	TagPerfProfileFrame  = "performance:profile_frame"
	TagVisualFrame       = "visual:profile_frame"
	TagServersFrame      = "servers:profile_frame"
	TagServersTotal      = "servers:profile_total"
	TagFunctionSignature = "servers:function_signature"
	TagNetworkFrame      = "network:profile_frame"
	TagNetworkBandwidth  = "network:bandwidth"
)

// Outbound tags.
const (
	TagSetSkipBreakpoints = "set_skip_breakpoints"
	TagNext               = "next"
	TagStep               = "step"
	TagBreak              = "break"
	TagContinue           = "continue"
	TagBreakpoint         = "breakpoint"
	TagReloadScripts      = "reload_scripts"
	TagGetStackDump       = "get_stack_dump"
	TagGetStackFrameVars  = "get_stack_frame_vars"
	TagRequestSceneTree   = "scene:request_scene_tree"
	TagInspectObject      = "scene:inspect_object"
	TagSetObjectProperty  = "scene:set_object_property"
	TagSaveNode           = "scene:save_node"
	TagRequestMemory      = "core:memory"
	TagProfilerNetwork    = "profiler:network"
	TagProfilerVisual     = "profiler:visual"
	TagProfilerServers    = "profiler:servers"

	TagCamera2DSet       = "scene:override_camera_2D:set"
	TagCamera2DTransform = "scene:override_camera_2D:transform"
	TagCamera3DSet       = "scene:override_camera_3D:set"
	TagCamera3DTransform = "scene:override_camera_3D:transform"

	TagLiveNodePath          = "scene:live_node_path"
	TagLiveResPath           = "scene:live_res_path"
	TagLiveNodeCall          = "scene:live_node_call"
	TagLiveNodeProp          = "scene:live_node_prop"
	TagLiveNodePropRes       = "scene:live_node_prop_res"
	TagLiveResCall           = "scene:live_res_call"
	TagLiveResProp           = "scene:live_res_prop"
	TagLiveResPropRes        = "scene:live_res_prop_res"
	TagLiveSetRoot           = "scene:live_set_root"
	TagLiveCreateNode        = "scene:live_create_node"
	TagLiveInstanceNode      = "scene:live_instance_node"
	TagLiveRemoveNode        = "scene:live_remove_node"
	TagLiveRemoveAndKeepNode = "scene:live_remove_and_keep_node"
	TagLiveRestoreNode       = "scene:live_restore_node"
	TagLiveDuplicateNode     = "scene:live_duplicate_node"
	TagLiveReparentNode      = "scene:live_reparent_node"
)

// ErrBadEnvelope reports a message that is not a (tag, payload) pair.
// It is fatal for the session: the decoder cannot resync a stream
// whose framing assumptions are broken.
var ErrBadEnvelope = errors.New("wire: malformed message envelope")

// Message is one decoded protocol message.
type Message struct {
	Tag  string
	Data []any
}

// Envelope returns the 2-element on-wire form of m.
func (m Message) Envelope() []any {
	data := m.Data
	if data == nil {
		data = []any{}
	}
	return []any{m.Tag, data}
}

// DecodeEnvelope validates the strict envelope shape and splits it
// into tag and payload. Anything other than [string, array] yields
// ErrBadEnvelope.
func DecodeEnvelope(raw []any) (Message, error) {
	if len(raw) != 2 {
		return Message{}, ErrBadEnvelope
	}
	tag, ok := raw[0].(string)
	if !ok {
		return Message{}, ErrBadEnvelope
	}
	data, ok := Values(raw[1])
	if !ok {
		return Message{}, ErrBadEnvelope
	}
	return Message{Tag: tag, Data: data}, nil
}

// Str reads v as a string.
func Str(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// Int reads v as an integer, coercing the numeric types the CBOR
// decoder may produce for any-typed targets.
func Int(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case int:
		return int64(n), true
	case uint:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint32:
		return int64(n), true
	case float64:
		return int64(n), true
	case float32:
		return int64(n), true
	}
	return 0, false
}

// Float reads v as a float, coercing integer representations.
func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

// Bool reads v as a bool.
func Bool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// Values reads v as a value sequence.
func Values(v any) ([]any, bool) {
	switch a := v.(type) {
	case []any:
		return a, true
	case nil:
		return nil, false
	}
	return nil, false
}
