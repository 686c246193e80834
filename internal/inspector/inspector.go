// Package inspector caches remote objects the target has been asked
// to describe, keyed by object ID, plus the variable set of the
// currently selected stack frame.
package inspector

import "github.com/vburojevic/rdb/internal/wire"

// Property is one named property of a remote object.
type Property struct {
	Name  string
	Value any
}

// Object is the cached description of one remote object.
type Object struct {
	ID         uint64
	Class      string
	Properties []Property
}

// VarScope classifies a stack variable.
type VarScope int

const (
	// ScopeLocal is a frame-local variable.
	ScopeLocal VarScope = iota
	// ScopeMember is an instance member visible from the frame.
	ScopeMember
	// ScopeGlobal is a global or singleton binding.
	ScopeGlobal
)

// StackVariable is one variable of the selected stack frame.
type StackVariable struct {
	Name  string
	Scope VarScope
	Value any
}

// Cache holds inspected remote objects and frame variables. Owned and
// mutated exclusively by the session dispatch path.
type Cache struct {
	objects map[uint64]*Object
	vars    []StackVariable
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{objects: make(map[uint64]*Object)}
}

// AddObject decodes an object blob {id, class, prop_count, (name,
// value)...} and upserts it. Returns the object ID.
func (c *Cache) AddObject(data []any) (uint64, error) {
	if len(data) < 3 {
		return 0, wire.ErrBadPayload
	}
	id, ok1 := wire.Int(data[0])
	class, ok2 := wire.Str(data[1])
	count, ok3 := wire.Int(data[2])
	if !ok1 || !ok2 || !ok3 || count < 0 || int(count)*2 > len(data)-3 {
		return 0, wire.ErrBadPayload
	}

	obj := &Object{ID: uint64(id), Class: class}
	pos := 3
	for i := int64(0); i < count; i++ {
		name, ok := wire.Str(data[pos])
		if !ok {
			return 0, wire.ErrBadPayload
		}
		obj.Properties = append(obj.Properties, Property{Name: name, Value: data[pos+1]})
		pos += 2
	}
	c.objects[obj.ID] = obj
	return obj.ID, nil
}

// Object returns the cached object with the given ID.
func (c *Cache) Object(id uint64) (*Object, bool) {
	obj, ok := c.objects[id]
	return obj, ok
}

// Len returns the number of cached objects.
func (c *Cache) Len() int { return len(c.objects) }

// ClearCache drops all cached objects, forcing the next inspection to
// refetch from the remote.
func (c *Cache) ClearCache() {
	c.objects = make(map[uint64]*Object)
}

// AddStackVariable decodes one {name, scope, value} blob and appends
// it to the frame variable set.
func (c *Cache) AddStackVariable(data []any) error {
	if len(data) < 3 {
		return wire.ErrBadPayload
	}
	name, ok1 := wire.Str(data[0])
	scope, ok2 := wire.Int(data[1])
	if !ok1 || !ok2 {
		return wire.ErrBadPayload
	}
	c.vars = append(c.vars, StackVariable{
		Name:  name,
		Scope: VarScope(scope),
		Value: data[2],
	})
	return nil
}

// StackVariables returns the selected frame's variables in arrival
// order.
func (c *Cache) StackVariables() []StackVariable { return c.vars }

// StackVariable looks up a frame variable by name.
func (c *Cache) StackVariable(name string) (StackVariable, bool) {
	for _, v := range c.vars {
		if v.Name == name {
			return v, true
		}
	}
	return StackVariable{}, false
}

// ClearStackVariables drops the frame variable set; sent ahead of a
// fresh variable dump.
func (c *Cache) ClearStackVariables() {
	c.vars = nil
}
