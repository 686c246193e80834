package debugger

import "github.com/vburojevic/rdb/internal/wire"

// Path interning: live-edit messages address objects by small integer
// IDs instead of repeating full structural paths. IDs come from a
// single counter shared by the node-path and resource-path caches, so
// an ID is unambiguous regardless of namespace. Entries are never
// evicted except on full session stop.

// internNodePathLocked returns the ID for a scene-node path,
// registering it with the remote side on first use.
func (s *Session) internNodePathLocked(path string) int64 {
	if id, ok := s.nodePathCache[path]; ok {
		return id
	}
	s.lastPathID++
	id := s.lastPathID
	s.nodePathCache[path] = id
	s.putLocked(wire.TagLiveNodePath, []any{path, id})
	return id
}

// internResPathLocked returns the ID for a resource path, registering
// it with the remote side on first use.
func (s *Session) internResPathLocked(path string) int64 {
	if id, ok := s.resPathCache[path]; ok {
		return id
	}
	s.lastPathID++
	id := s.lastPathID
	s.resPathCache[path] = id
	s.putLocked(wire.TagLiveResPath, []any{path, id})
	return id
}

// InternNodePath exposes node-path interning for hosts that build
// their own live-edit traffic.
func (s *Session) InternNodePath(path string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.internNodePathLocked(path)
}

// InternResourcePath exposes resource-path interning.
func (s *Session) InternResourcePath(path string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.internResPathLocked(path)
}
