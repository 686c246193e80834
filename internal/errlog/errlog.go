// Package errlog accumulates remote-reported runtime errors and
// warnings as a tree: one entry per event, with child rows for the
// engine-level condition, the source location, and each stack frame.
//
// Nodes live in an arena and reference children by index, so the
// tree has no ownership cycles and stays trivially copyable.
package errlog

import (
	"fmt"
	"strings"

	"github.com/vburojevic/rdb/internal/wire"
)

// SourceRef points at a source location the host can jump to.
type SourceRef struct {
	File string
	Line int
}

// Node is one row of the error tree. Label is the left column, Text
// the right; Meta carries the clickable source location when one
// applies.
type Node struct {
	Label    string
	Text     string
	Tooltip  string
	Meta     *SourceRef
	Children []int
}

// Log is the error/warning tree plus monotonically increasing counts.
// Counts only reset on an explicit Clear.
type Log struct {
	nodes   []Node
	entries []int

	errorCount   int
	warningCount int
}

// New creates an empty log.
func New() *Log {
	return &Log{}
}

// Counts returns the error and warning totals since the last clear.
func (l *Log) Counts() (errors, warnings int) {
	return l.errorCount, l.warningCount
}

// Entries returns the arena indexes of the top-level entries in
// arrival order.
func (l *Log) Entries() []int { return l.entries }

// NodeAt returns the arena node at index i.
func (l *Log) NodeAt(i int) Node { return l.nodes[i] }

// Len returns the total arena size.
func (l *Log) Len() int { return len(l.nodes) }

// Add appends one remote error event and returns its entry index.
func (l *Log) Add(oe wire.OutputError) int {
	timestamp := fmt.Sprintf("%d:%02d:%02d:%04d", oe.Hour, oe.Minute, oe.Second, oe.Millisecond)

	// Project-local sources are clickable; engine sources are not.
	projectSource := strings.HasPrefix(oe.SourceFile, "res://")
	var sourceMeta *SourceRef
	if projectSource {
		sourceMeta = &SourceRef{File: oe.SourceFile, Line: oe.SourceLine}
	}

	title := ""
	if oe.SourceFunc != "" {
		title = oe.SourceFunc + ": "
	}
	// A custom description takes the title slot; the raw condition
	// then gets its own child row.
	if oe.Description != "" {
		title += oe.Description
	} else {
		title += oe.Condition
	}

	kind := "Error:"
	if oe.Warning {
		kind = "Warning:"
	}
	tooltip := kind + " " + title + "\n"

	entry := len(l.nodes)
	l.nodes = append(l.nodes, Node{
		Label: timestamp,
		Text:  title,
		Meta:  sourceMeta,
	})
	l.entries = append(l.entries, entry)

	if oe.Description != "" {
		l.addChild(entry, Node{
			Label: "<C++ Error>",
			Text:  oe.Condition,
			Meta:  sourceMeta,
		})
		tooltip += "C++ Error: " + oe.Condition + "\n"
	}

	sourceLabel := "<C++ Source>"
	sourceFile := oe.SourceFile
	if projectSource {
		sourceLabel = "<Source>"
		sourceFile = baseName(oe.SourceFile)
	}
	sourceText := fmt.Sprintf("%s:%d", sourceFile, oe.SourceLine)
	if oe.SourceFunc != "" {
		sourceText += " @ " + oe.SourceFunc + "()"
	}
	l.addChild(entry, Node{
		Label: sourceLabel,
		Text:  sourceText,
		Meta:  sourceMeta,
	})
	tooltip += strings.Trim(sourceLabel, "<>") + ": " + sourceText + "\n"

	for i, frame := range oe.Callstack {
		node := Node{
			Text: fmt.Sprintf("%s:%d @ %s()", baseName(frame.File), frame.Line, frame.Function),
			Meta: &SourceRef{File: frame.File, Line: frame.Line},
		}
		if i == 0 {
			node.Label = "<Stack Trace>"
			// The entry itself jumps to the top of the stack.
			l.nodes[entry].Meta = node.Meta
		}
		l.addChild(entry, node)
	}

	l.nodes[entry].Tooltip = tooltip

	if oe.Warning {
		l.warningCount++
	} else {
		l.errorCount++
	}
	return entry
}

func (l *Log) addChild(parent int, n Node) int {
	idx := len(l.nodes)
	l.nodes = append(l.nodes, n)
	l.nodes[parent].Children = append(l.nodes[parent].Children, idx)
	return idx
}

// FormatEntry renders one entry and its children as plain text, the
// form used when copying an error to the clipboard.
func (l *Log) FormatEntry(entry int) string {
	n := l.nodes[entry]
	padded := n.Label + "   "

	var b strings.Builder
	b.WriteString(padded + n.Text + "\n")
	for _, ci := range n.Children {
		c := l.nodes[ci]
		b.WriteString("  " + rightPad(c.Label, len(padded)) + c.Text + "\n")
	}
	return b.String()
}

// Clear drops the tree and resets both counts.
func (l *Log) Clear() {
	l.nodes = nil
	l.entries = nil
	l.errorCount = 0
	l.warningCount = 0
}

func baseName(path string) string {
	if i := strings.LastIndexAny(path, "/\\"); i >= 0 {
		return path[i+1:]
	}
	return path
}

func rightPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
