package debugger

import "github.com/vburojevic/rdb/internal/wire"

// CameraOverride selects which editor camera, if any, replaces the
// target's own camera while the session runs.
type CameraOverride int

const (
	// CameraNone leaves the target's camera alone.
	CameraNone CameraOverride = 0
	// Camera2D overrides with the editor's 2D view.
	Camera2D CameraOverride = 1

	camera3DBase CameraOverride = 2
)

// Camera3D overrides with the editor's 3D viewport at the given
// index.
func Camera3D(viewport int) CameraOverride {
	return camera3DBase + CameraOverride(viewport)
}

// Is3D reports whether o is a 3D viewport override.
func (o CameraOverride) Is3D() bool { return o >= camera3DBase }

// Viewport3D returns the viewport index of a 3D override.
func (o CameraOverride) Viewport3D() int { return int(o - camera3DBase) }

// Transform2D is a 2D affine transform in row-major 2x3 layout.
type Transform2D [6]float64

// Camera3DState is an editor 3D camera snapshot to forward to the
// target.
type Camera3DState struct {
	// Transform is the camera basis plus origin, 3x4 row-major.
	Transform [12]float64
	// Perspective selects the projection; Depth carries the FOV for
	// perspective cameras and the ortho size otherwise.
	Perspective bool
	Depth       float64
	ZNear       float64
	ZFar        float64
}

// CameraSource supplies the editor-side camera state forwarded once
// per tick while an override is active. Both methods return false
// when no usable state exists this tick.
type CameraSource interface {
	Transform2D() (Transform2D, bool)
	Camera3D(viewport int) (Camera3DState, bool)
}

// forwardCameraLocked sends the per-tick camera transform message for
// the active override.
func (s *Session) forwardCameraLocked() {
	if s.camSource == nil {
		return
	}
	switch {
	case s.cameraOverride == Camera2D:
		t, ok := s.camSource.Transform2D()
		if !ok {
			return
		}
		s.putLocked(wire.TagCamera2DTransform, transform2DPayload(t))
	case s.cameraOverride.Is3D():
		cam, ok := s.camSource.Camera3D(s.cameraOverride.Viewport3D())
		if !ok {
			return
		}
		s.putLocked(wire.TagCamera3DTransform, camera3DPayload(cam))
	}
}

func transform2DPayload(t Transform2D) []any {
	vals := make([]any, len(t))
	for i, v := range t {
		vals[i] = v
	}
	return []any{vals}
}

func camera3DPayload(cam Camera3DState) []any {
	basis := make([]any, len(cam.Transform))
	for i, v := range cam.Transform {
		basis[i] = v
	}
	return []any{basis, cam.Perspective, cam.Depth, cam.ZNear, cam.ZFar}
}
