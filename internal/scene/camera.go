package scene

import (
	"math"

	"github.com/litescript/ls-starfield/internal/astro"
)

// Orbit camera constants.
const (
	DefaultOrbitRadius = 50.0 // overview distance in parsecs
	CloseUpRadius      = 8.0  // target radius after selecting a star
	MinOrbitRadius     = 5.0
	MaxOrbitRadius     = 200.0

	DefaultTheta = math.Pi / 4
	DefaultPhi   = math.Pi / 4

	// PhiEpsilon keeps the polar angle away from the poles so the camera
	// never inverts.
	PhiEpsilon = 0.1

	RotateSpeed = 0.05 // radians per dragged cell
	PanSpeed    = 0.5  // parsecs per dragged cell at the view plane

	// EaseAlpha is the exponential smoothing factor applied once per tick.
	// For this scalar form convergence is monotonic with no overshoot.
	EaseAlpha = 0.1
)

// CameraState is the current render pose: orbit radius and angles around an
// orbit target, plus a pan offset. Mutated once per frame tick and by input
// handlers, always on the same logical thread.
type CameraState struct {
	OrbitRadius float64
	Theta       float64 // azimuthal angle in the XZ plane
	Phi         float64 // polar angle from +Y, clamped to (0, π)
	PanOffset   astro.Vec3
	OrbitTarget astro.Vec3
}

// CameraTargets are the goal values the CameraState eases toward. They are
// mutated by input and selection events, independent of frame cadence.
type CameraTargets struct {
	Radius        float64
	OrbitPosition astro.Vec3
}

// NewCameraState returns the default overview pose.
func NewCameraState() CameraState {
	return CameraState{
		OrbitRadius: DefaultOrbitRadius,
		Theta:       DefaultTheta,
		Phi:         DefaultPhi,
	}
}

// NewCameraTargets returns targets matching the default overview pose.
func NewCameraTargets() CameraTargets {
	return CameraTargets{Radius: DefaultOrbitRadius}
}

// Tick advances the state one frame toward the targets by exponential
// interpolation: value += (target - value) · α. It runs once per tick whether
// or not any input occurred that tick.
func (s *CameraState) Tick(t CameraTargets) {
	s.OrbitRadius += (t.Radius - s.OrbitRadius) * EaseAlpha
	s.OrbitTarget.X += (t.OrbitPosition.X - s.OrbitTarget.X) * EaseAlpha
	s.OrbitTarget.Y += (t.OrbitPosition.Y - s.OrbitTarget.Y) * EaseAlpha
	s.OrbitTarget.Z += (t.OrbitPosition.Z - s.OrbitTarget.Z) * EaseAlpha
}

// Rotate accumulates a primary-button drag into the orbit angles. Phi is
// clamped away from the poles.
func (s *CameraState) Rotate(dx, dy float64) {
	s.Theta -= dx * RotateSpeed
	s.Phi = clampFloat(s.Phi-dy*RotateSpeed, PhiEpsilon, math.Pi-PhiEpsilon)
}

// Pan accumulates a secondary-button drag into the pan offset, along the
// camera's local right and up axes.
func (s *CameraState) Pan(dx, dy float64) {
	right, up, _ := s.Basis()
	s.PanOffset = s.PanOffset.
		Add(right.Scale(-dx * PanSpeed)).
		Add(up.Scale(dy * PanSpeed))
}

// Center returns the point the camera looks at.
func (s CameraState) Center() astro.Vec3 {
	return s.OrbitTarget.Add(s.PanOffset)
}

// Position returns the camera's world position.
func (s CameraState) Position() astro.Vec3 {
	return s.Center().Add(astro.SphericalToCartesian(s.OrbitRadius, s.Theta, s.Phi))
}

// Basis returns the camera's local right, up and forward unit vectors.
func (s CameraState) Basis() (right, up, forward astro.Vec3) {
	forward = s.Center().Sub(s.Position()).Normalized()
	worldUp := astro.Vec3{Y: 1}
	right = forward.Cross(worldUp).Normalized()
	up = right.Cross(forward)
	return right, up, forward
}

// Zoom adjusts the target radius by a wheel delta, clamped to the orbit
// range. Zooming changes the target, not the radius itself; the per-tick
// easing carries the state there. Non-finite deltas are rejected and the
// previous target retained.
func (t *CameraTargets) Zoom(delta float64) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return
	}
	t.Radius = clampFloat(t.Radius+delta, MinOrbitRadius, MaxOrbitRadius)
}

// SetOrbitPosition points the camera target at a world position. Non-finite
// positions are rejected and the previous target retained.
func (t *CameraTargets) SetOrbitPosition(p astro.Vec3) {
	if !p.IsFinite() {
		return
	}
	t.OrbitPosition = p
}

// SetRadius sets the target radius directly, clamped to the orbit range.
// Non-finite values are rejected.
func (t *CameraTargets) SetRadius(r float64) {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return
	}
	t.Radius = clampFloat(r, MinOrbitRadius, MaxOrbitRadius)
}

// Reset restores the overview targets.
func (t *CameraTargets) Reset() {
	t.Radius = DefaultOrbitRadius
	t.OrbitPosition = astro.Vec3{}
}

// Selection holds the single selected star, if any. At most one star is
// selected at a time.
type Selection struct {
	Active bool
	Index  int // index into the visible buffer at selection time
	ID     int64
	Pos    astro.Vec3
}

// Controller owns the camera, targets and selection, and applies the
// interaction state machine transitions. All mutation happens synchronously
// inside input handlers or the per-tick update.
type Controller struct {
	Cam     CameraState
	Targets CameraTargets
	Sel     Selection
}

// NewController returns a controller in the default overview state.
func NewController() *Controller {
	return &Controller{
		Cam:     NewCameraState(),
		Targets: NewCameraTargets(),
	}
}

// Tick advances the camera one frame toward its targets.
func (c *Controller) Tick() {
	c.Cam.Tick(c.Targets)
}

// Rotate applies a primary-button drag.
func (c *Controller) Rotate(dx, dy float64) {
	c.Cam.Rotate(dx, dy)
}

// Pan applies a secondary-button drag.
func (c *Controller) Pan(dx, dy float64) {
	c.Cam.Pan(dx, dy)
}

// Zoom applies a wheel delta to the target radius.
func (c *Controller) Zoom(delta float64) {
	c.Targets.Zoom(delta)
}

// Click resolves a pointer click against the visible buffer. A hit selects
// the star and retargets the camera to it at close-up radius; a miss clears
// the selection and restores the overview targets. Returns true on a hit.
// A click against an empty buffer always misses.
func (c *Controller) Click(buf Buffer, px, py float64, vp Viewport) bool {
	result := Pick(c.Cam, buf, px, py, vp)
	if !result.Hit {
		c.Deselect()
		return false
	}

	c.Sel = Selection{
		Active: true,
		Index:  result.Index,
		ID:     result.Star.ID,
		Pos:    result.Star.Pos,
	}
	c.Targets.SetOrbitPosition(result.Star.Pos)
	c.Targets.SetRadius(CloseUpRadius)
	return true
}

// Deselect clears the selection and restores the overview targets.
func (c *Controller) Deselect() {
	c.Sel = Selection{}
	c.Targets.Reset()
}

// Reset returns the controller to its initial state. Called when a fresh
// catalog batch replaces the entity set, so no state points at stale stars.
func (c *Controller) Reset() {
	c.Cam = NewCameraState()
	c.Targets = NewCameraTargets()
	c.Sel = Selection{}
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
