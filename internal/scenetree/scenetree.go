// Package scenetree mirrors the remote scene tree on the editor
// side. The mirror is replaced wholesale on every update; there is no
// incremental patching. Nodes live in an arena and reference children
// by index.
package scenetree

import "github.com/vburojevic/rdb/internal/wire"

// Node is one mirrored scene node.
type Node struct {
	Name     string
	Class    string
	ID       uint64
	Children []int
}

// Tree is the client-side mirror of the remote scene tree.
type Tree struct {
	nodes []Node
}

// New creates an empty mirror.
func New() *Tree {
	return &Tree{}
}

// Len returns the number of mirrored nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Root returns the root node index, if the tree is non-empty.
func (t *Tree) Root() (int, bool) {
	if len(t.nodes) == 0 {
		return 0, false
	}
	return 0, true
}

// NodeAt returns the node at arena index i.
func (t *Tree) NodeAt(i int) Node { return t.nodes[i] }

// Clear empties the mirror.
func (t *Tree) Clear() { t.nodes = nil }

// Replace clears the mirror and deserializes a fresh tree blob.
func (t *Tree) Replace(data []any) error {
	t.nodes = nil
	return t.Deserialize(data)
}

// Deserialize consumes a pre-order flat stream: for each node
// {child_count, name, class, instance_id}, followed by its children.
func (t *Tree) Deserialize(data []any) error {
	if len(data) == 0 {
		return nil
	}
	pos := 0
	if _, err := t.readNode(data, &pos); err != nil {
		t.nodes = nil
		return err
	}
	return nil
}

func (t *Tree) readNode(data []any, pos *int) (int, error) {
	if *pos+4 > len(data) {
		return 0, wire.ErrBadPayload
	}
	childCount, ok1 := wire.Int(data[*pos])
	name, ok2 := wire.Str(data[*pos+1])
	class, ok3 := wire.Str(data[*pos+2])
	id, ok4 := wire.Int(data[*pos+3])
	if !ok1 || !ok2 || !ok3 || !ok4 || childCount < 0 {
		return 0, wire.ErrBadPayload
	}
	*pos += 4

	idx := len(t.nodes)
	t.nodes = append(t.nodes, Node{Name: name, Class: class, ID: uint64(id)})

	for i := int64(0); i < childCount; i++ {
		child, err := t.readNode(data, pos)
		if err != nil {
			return 0, err
		}
		t.nodes[idx].Children = append(t.nodes[idx].Children, child)
	}
	return idx, nil
}

// Serialize emits the flat pre-order stream for the subtree rooted at
// idx. Used by tests and same-process targets.
func (t *Tree) Serialize(idx int) []any {
	n := t.nodes[idx]
	out := []any{int64(len(n.Children)), n.Name, n.Class, int64(n.ID)}
	for _, ci := range n.Children {
		out = append(out, t.Serialize(ci)...)
	}
	return out
}
