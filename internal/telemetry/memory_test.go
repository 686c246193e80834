package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/rdb/internal/wire"
)

func TestMemoryUsageRebuild(t *testing.T) {
	m := NewMemoryUsage()

	m.Rebuild([]wire.ResourceInfo{
		{Path: "res://tex/hero.png", Type: "Texture2D", Format: "RGBA8", Bytes: 4 << 20},
		{Path: "res://sfx/jump.ogg", Type: "AudioStream", Format: "OGG", Bytes: 1 << 20},
	})

	require.Len(t, m.Infos(), 2)
	assert.Equal(t, int64(5<<20), m.TotalBytes())
	assert.Equal(t, "5.0 MiB", m.TotalLabel())

	// A new report replaces the old one entirely.
	m.Rebuild([]wire.ResourceInfo{
		{Path: "res://tex/tiles.png", Type: "Texture2D", Format: "DXT5", Bytes: 1024},
	})
	require.Len(t, m.Infos(), 1)
	assert.Equal(t, int64(1024), m.TotalBytes())
}

func TestMemoryUsageReset(t *testing.T) {
	m := NewMemoryUsage()
	m.Rebuild([]wire.ResourceInfo{{Path: "res://a.png", Bytes: 10}})

	m.Reset()

	assert.Empty(t, m.Infos())
	assert.Zero(t, m.TotalBytes())
	assert.Equal(t, "0 B", m.TotalLabel())
}

func TestVisualProfiler(t *testing.T) {
	v := NewVisualProfiler()

	_, ok := v.LastFrame()
	assert.False(t, ok)

	v.AddFrame(wire.VisualProfilerFrame{
		FrameNumber: 1,
		Areas:       []wire.VisualArea{{Name: "Canvas", CPUMsec: 1.5, GPUMsec: 0.8}},
	})
	v.AddFrame(wire.VisualProfilerFrame{FrameNumber: 2})

	frames := v.Frames()
	require.Len(t, frames, 2)
	assert.Equal(t, uint64(1), frames[0].FrameNumber)
	require.Len(t, frames[0].Areas, 1)
	assert.Equal(t, "Canvas", frames[0].Areas[0].Name)

	last, ok := v.LastFrame()
	require.True(t, ok)
	assert.Equal(t, uint64(2), last.FrameNumber)

	v.Reset()
	assert.Empty(t, v.Frames())
}
