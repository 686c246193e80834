package errlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/rdb/internal/wire"
)

func scriptError() wire.OutputError {
	return wire.OutputError{
		Hour: 1, Minute: 2, Second: 3, Millisecond: 45,
		SourceFile: "res://player.gd",
		SourceFunc: "jump",
		SourceLine: 42,
		Condition:  "Index out of bounds",
		Callstack: []wire.StackFrame{
			{File: "res://player.gd", Function: "jump", Line: 42},
			{File: "res://main.gd", Function: "_input", Line: 7},
		},
	}
}

func TestLogAddScriptError(t *testing.T) {
	l := New()

	entry := l.Add(scriptError())

	n := l.NodeAt(entry)
	assert.Equal(t, "1:02:03:0045", n.Label)
	assert.Equal(t, "jump: Index out of bounds", n.Text)
	// The entry jumps to the top stack frame.
	require.NotNil(t, n.Meta)
	assert.Equal(t, "res://player.gd", n.Meta.File)
	assert.Equal(t, 42, n.Meta.Line)

	// No description, so no "<C++ Error>" child: source row plus two
	// stack frames.
	require.Len(t, n.Children, 3)

	source := l.NodeAt(n.Children[0])
	assert.Equal(t, "<Source>", source.Label)
	assert.Equal(t, "player.gd:42 @ jump()", source.Text)

	top := l.NodeAt(n.Children[1])
	assert.Equal(t, "<Stack Trace>", top.Label)
	assert.Equal(t, "player.gd:42 @ jump()", top.Text)

	second := l.NodeAt(n.Children[2])
	assert.Empty(t, second.Label)
	assert.Equal(t, "main.gd:7 @ _input()", second.Text)

	errors, warnings := l.Counts()
	assert.Equal(t, 1, errors)
	assert.Equal(t, 0, warnings)
}

func TestLogAddEngineErrorWithDescription(t *testing.T) {
	l := New()

	entry := l.Add(wire.OutputError{
		SourceFile:  "core/object/object.cpp",
		SourceFunc:  "get_property",
		SourceLine:  120,
		Condition:   "!is_valid()",
		Description: "Property does not exist",
	})

	n := l.NodeAt(entry)
	assert.Equal(t, "get_property: Property does not exist", n.Text)
	// Engine sources are not clickable.
	assert.Nil(t, n.Meta)

	require.Len(t, n.Children, 2)
	condition := l.NodeAt(n.Children[0])
	assert.Equal(t, "<C++ Error>", condition.Label)
	assert.Equal(t, "!is_valid()", condition.Text)

	source := l.NodeAt(n.Children[1])
	assert.Equal(t, "<C++ Source>", source.Label)
	assert.Equal(t, "core/object/object.cpp:120 @ get_property()", source.Text)

	assert.Contains(t, n.Tooltip, "Error: get_property: Property does not exist")
	assert.Contains(t, n.Tooltip, "C++ Error: !is_valid()")
}

func TestLogWarningCount(t *testing.T) {
	l := New()

	l.Add(wire.OutputError{Condition: "deprecated call", Warning: true})
	l.Add(wire.OutputError{Condition: "broke"})
	l.Add(wire.OutputError{Condition: "also deprecated", Warning: true})

	errors, warnings := l.Counts()
	assert.Equal(t, 1, errors)
	assert.Equal(t, 2, warnings)
	assert.Len(t, l.Entries(), 3)
}

func TestLogFormatEntry(t *testing.T) {
	l := New()
	entry := l.Add(scriptError())

	text := l.FormatEntry(entry)
	assert.Contains(t, text, "1:02:03:0045   jump: Index out of bounds\n")
	assert.Contains(t, text, "<Source>")
	assert.Contains(t, text, "main.gd:7 @ _input()")
}

func TestLogClear(t *testing.T) {
	l := New()
	l.Add(scriptError())
	l.Add(wire.OutputError{Condition: "w", Warning: true})

	l.Clear()

	assert.Zero(t, l.Len())
	assert.Empty(t, l.Entries())
	errors, warnings := l.Counts()
	assert.Zero(t, errors)
	assert.Zero(t, warnings)
}
