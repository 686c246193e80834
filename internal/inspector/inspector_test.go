package inspector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/rdb/internal/wire"
)

func TestCacheAddObject(t *testing.T) {
	c := New()

	id, err := c.AddObject([]any{
		uint64(77), "CharacterBody2D", int64(2),
		"position", []any{1.0, 2.0},
		"visible", true,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(77), id)

	obj, ok := c.Object(77)
	require.True(t, ok)
	assert.Equal(t, "CharacterBody2D", obj.Class)
	require.Len(t, obj.Properties, 2)
	assert.Equal(t, "position", obj.Properties[0].Name)
	assert.Equal(t, Property{Name: "visible", Value: true}, obj.Properties[1])
}

func TestCacheAddObjectUpserts(t *testing.T) {
	c := New()

	_, err := c.AddObject([]any{uint64(5), "Node", int64(1), "visible", true})
	require.NoError(t, err)
	_, err = c.AddObject([]any{uint64(5), "Node", int64(1), "visible", false})
	require.NoError(t, err)

	assert.Equal(t, 1, c.Len())
	obj, _ := c.Object(5)
	assert.Equal(t, Property{Name: "visible", Value: false}, obj.Properties[0])
}

func TestCacheAddObjectMalformed(t *testing.T) {
	tests := []struct {
		name string
		data []any
	}{
		{"too short", []any{uint64(1), "Node"}},
		{"lying count", []any{uint64(1), "Node", int64(5), "visible", true}},
		{"negative count", []any{uint64(1), "Node", int64(-1)}},
		{"non-string property name", []any{uint64(1), "Node", int64(1), int64(9), true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			_, err := c.AddObject(tt.data)
			assert.ErrorIs(t, err, wire.ErrBadPayload)
			assert.Zero(t, c.Len())
		})
	}
}

func TestCacheClearCache(t *testing.T) {
	c := New()
	_, err := c.AddObject([]any{uint64(1), "Node", int64(0)})
	require.NoError(t, err)

	c.ClearCache()

	assert.Zero(t, c.Len())
	_, ok := c.Object(1)
	assert.False(t, ok)
}

func TestCacheStackVariables(t *testing.T) {
	c := New()

	require.NoError(t, c.AddStackVariable([]any{"velocity", int64(0), 12.5}))
	require.NoError(t, c.AddStackVariable([]any{"health", int64(1), int64(90)}))
	require.NoError(t, c.AddStackVariable([]any{"Engine", int64(2), nil}))

	vars := c.StackVariables()
	require.Len(t, vars, 3)
	assert.Equal(t, ScopeLocal, vars[0].Scope)
	assert.Equal(t, ScopeMember, vars[1].Scope)
	assert.Equal(t, ScopeGlobal, vars[2].Scope)

	v, ok := c.StackVariable("health")
	require.True(t, ok)
	assert.Equal(t, int64(90), v.Value)

	_, ok = c.StackVariable("mana")
	assert.False(t, ok)

	c.ClearStackVariables()
	assert.Empty(t, c.StackVariables())
}

func TestCacheAddStackVariableMalformed(t *testing.T) {
	c := New()
	assert.ErrorIs(t, c.AddStackVariable([]any{"velocity"}), wire.ErrBadPayload)
	assert.ErrorIs(t, c.AddStackVariable([]any{int64(1), int64(0), nil}), wire.ErrBadPayload)
}
