package debugger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vburojevic/rdb/internal/wire"
)

type fakeCamera struct {
	t2d Transform2D
	cam Camera3DState
	ok  bool
}

func (f *fakeCamera) Transform2D() (Transform2D, bool) { return f.t2d, f.ok }

func (f *fakeCamera) Camera3D(int) (Camera3DState, bool) { return f.cam, f.ok }

func TestCameraOverrideKinds(t *testing.T) {
	assert.False(t, CameraNone.Is3D())
	assert.False(t, Camera2D.Is3D())
	assert.True(t, Camera3D(0).Is3D())
	assert.True(t, Camera3D(2).Is3D())
	assert.Equal(t, 2, Camera3D(2).Viewport3D())
}

func TestSetCameraOverrideToggles(t *testing.T) {
	s, remote, _ := newTestSession(t, Options{})

	s.SetCameraOverride(Camera2D)
	msgs := drainOut(t, remote)
	require.Len(t, msgs, 1)
	assert.Equal(t, wire.TagCamera2DSet, msgs[0].Tag)
	assert.Equal(t, true, msgs[0].Data[0])

	// 2D to 3D: disable one, enable the other.
	s.SetCameraOverride(Camera3D(0))
	msgs = drainOut(t, remote)
	require.Len(t, msgs, 2)
	assert.Equal(t, wire.TagCamera2DSet, msgs[0].Tag)
	assert.Equal(t, false, msgs[0].Data[0])
	assert.Equal(t, wire.TagCamera3DSet, msgs[1].Tag)
	assert.Equal(t, true, msgs[1].Data[0])

	// Switching between 3D viewports emits no toggles.
	s.SetCameraOverride(Camera3D(1))
	assert.Empty(t, sentTags(t, remote))

	s.SetCameraOverride(CameraNone)
	msgs = drainOut(t, remote)
	require.Len(t, msgs, 1)
	assert.Equal(t, wire.TagCamera3DSet, msgs[0].Tag)
	assert.Equal(t, false, msgs[0].Data[0])

	assert.Equal(t, CameraNone, s.GetCameraOverride())
}

func TestTickForwards2DTransform(t *testing.T) {
	cam := &fakeCamera{t2d: Transform2D{1, 0, 0, 1, 64, 32}, ok: true}
	s, remote, _ := newTestSession(t, Options{CameraSource: cam})

	s.SetCameraOverride(Camera2D)
	drainOut(t, remote)

	s.Tick()
	msgs := drainOut(t, remote)
	require.Len(t, msgs, 1)
	assert.Equal(t, wire.TagCamera2DTransform, msgs[0].Tag)
	vals, ok := wire.Values(msgs[0].Data[0])
	require.True(t, ok)
	require.Len(t, vals, 6)
	x, _ := wire.Float(vals[4])
	assert.Equal(t, 64.0, x)

	// Another tick sends another snapshot.
	s.Tick()
	assert.Equal(t, []string{wire.TagCamera2DTransform}, sentTags(t, remote))
}

func TestTickForwards3DCamera(t *testing.T) {
	cam := &fakeCamera{cam: Camera3DState{Perspective: true, Depth: 70, ZNear: 0.05, ZFar: 4000}, ok: true}
	s, remote, _ := newTestSession(t, Options{CameraSource: cam})

	s.SetCameraOverride(Camera3D(0))
	drainOut(t, remote)

	s.Tick()
	msgs := drainOut(t, remote)
	require.Len(t, msgs, 1)
	assert.Equal(t, wire.TagCamera3DTransform, msgs[0].Tag)
	require.Len(t, msgs[0].Data, 5)
	persp, _ := wire.Bool(msgs[0].Data[1])
	assert.True(t, persp)
	depth, _ := wire.Float(msgs[0].Data[2])
	assert.Equal(t, 70.0, depth)
}

func TestTickSkipsCameraWithoutState(t *testing.T) {
	cam := &fakeCamera{ok: false}
	s, remote, _ := newTestSession(t, Options{CameraSource: cam})

	s.SetCameraOverride(Camera2D)
	drainOut(t, remote)

	s.Tick()
	assert.Empty(t, sentTags(t, remote))
}

func TestTickNoCameraOverride(t *testing.T) {
	cam := &fakeCamera{ok: true}
	s, remote, _ := newTestSession(t, Options{CameraSource: cam})

	s.Tick()
	assert.Empty(t, sentTags(t, remote))
}
