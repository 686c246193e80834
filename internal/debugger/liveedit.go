package debugger

import "github.com/vburojevic/rdb/internal/wire"

// Live-edit relay: local edits performed in the editor replay onto
// the running target. All relays are gated on the live-debug flag and
// an active session; disabled relays emit nothing. Only value-typed
// arguments travel — object/reference-typed values never do.

// Ref marks a value as a reference to a remote resource rather than
// inline data. A Ref with a path is forwarded as the path; a Ref
// without one (unsaved, transient) is silently skipped.
type Ref struct {
	Path string
}

func isRef(v any) bool {
	_, ok := v.(Ref)
	return ok
}

// SetLiveDebug toggles the live-edit relay.
func (s *Session) SetLiveDebug(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.liveDebug = enabled
}

// LiveDebug reports whether the relay is enabled.
func (s *Session) LiveDebug() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liveDebug
}

func (s *Session) liveActiveLocked() bool {
	return s.liveDebug && s.activeLocked()
}

// LiveNodeCall relays a method call on a scene node. Calls carrying
// any reference-typed argument are dropped whole.
func (s *Session) LiveNodeCall(nodePath, method string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.liveActiveLocked() || nodePath == "" {
		return
	}
	for _, a := range args {
		if isRef(a) {
			return
		}
	}
	id := s.internNodePathLocked(nodePath)
	data := append([]any{id, method}, args...)
	s.putLocked(wire.TagLiveNodeCall, data)
}

// LiveResourceCall relays a method call on a resource.
func (s *Session) LiveResourceCall(resPath, method string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.liveActiveLocked() || resPath == "" {
		return
	}
	for _, a := range args {
		if isRef(a) {
			return
		}
	}
	id := s.internResPathLocked(resPath)
	data := append([]any{id, method}, args...)
	s.putLocked(wire.TagLiveResCall, data)
}

// LiveNodeProp relays a property change on a scene node. A Ref value
// is sent as the referenced resource's path via the *_prop_res
// variant; a pathless Ref is skipped.
func (s *Session) LiveNodeProp(nodePath, property string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.liveActiveLocked() || nodePath == "" {
		return
	}
	if ref, ok := value.(Ref); ok {
		if ref.Path == "" {
			return
		}
		id := s.internNodePathLocked(nodePath)
		s.putLocked(wire.TagLiveNodePropRes, []any{id, property, ref.Path})
		return
	}
	id := s.internNodePathLocked(nodePath)
	s.putLocked(wire.TagLiveNodeProp, []any{id, property, value})
}

// LiveResourceProp relays a property change on a resource.
func (s *Session) LiveResourceProp(resPath, property string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.liveActiveLocked() || resPath == "" {
		return
	}
	if ref, ok := value.(Ref); ok {
		if ref.Path == "" {
			return
		}
		id := s.internResPathLocked(resPath)
		s.putLocked(wire.TagLiveResPropRes, []any{id, property, ref.Path})
		return
	}
	id := s.internResPathLocked(resPath)
	s.putLocked(wire.TagLiveResProp, []any{id, property, value})
}

// LiveSetRoot points the target's live-edit machinery at the scene
// root being edited.
func (s *Session) LiveSetRoot(rootPath, sceneFile string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(wire.TagLiveSetRoot, []any{rootPath, sceneFile})
}

// LiveCreateNode replays a node creation.
func (s *Session) LiveCreateNode(parentPath, class, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.liveDebug {
		return
	}
	s.putLocked(wire.TagLiveCreateNode, []any{parentPath, class, name})
}

// LiveInstanceNode replays a scene instantiation.
func (s *Session) LiveInstanceNode(parentPath, scenePath, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.liveDebug {
		return
	}
	s.putLocked(wire.TagLiveInstanceNode, []any{parentPath, scenePath, name})
}

// LiveRemoveNode replays a node removal.
func (s *Session) LiveRemoveNode(atPath string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.liveDebug {
		return
	}
	s.putLocked(wire.TagLiveRemoveNode, []any{atPath})
}

// LiveRemoveAndKeepNode replays a removal that keeps the node around
// for a later restore.
func (s *Session) LiveRemoveAndKeepNode(atPath string, keepID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.liveDebug {
		return
	}
	s.putLocked(wire.TagLiveRemoveAndKeepNode, []any{atPath, int64(keepID)})
}

// LiveRestoreNode replays restoring a previously kept node.
func (s *Session) LiveRestoreNode(id uint64, atPath string, atPos int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.liveDebug {
		return
	}
	s.putLocked(wire.TagLiveRestoreNode, []any{int64(id), atPath, int64(atPos)})
}

// LiveDuplicateNode replays a node duplication.
func (s *Session) LiveDuplicateNode(atPath, newName string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.liveDebug {
		return
	}
	s.putLocked(wire.TagLiveDuplicateNode, []any{atPath, newName})
}

// LiveReparentNode replays moving a node to a new parent.
func (s *Session) LiveReparentNode(atPath, newParentPath, newName string, atPos int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.liveDebug {
		return
	}
	s.putLocked(wire.TagLiveReparentNode, []any{atPath, newParentPath, newName, int64(atPos)})
}
