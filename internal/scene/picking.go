package scene

import (
	"math"

	"github.com/litescript/ls-starfield/internal/astro"
)

const (
	// DefaultFovYDeg is the vertical field of view in degrees.
	DefaultFovYDeg = 60.0

	// nearPlane rejects points at or behind the camera.
	nearPlane = 0.1

	// cellAspect compensates for terminal cells being roughly twice as
	// tall as they are wide.
	cellAspect = 0.5

	// PickThreshold is the screen-space proximity radius for picking
	// point-rendered stars, in normalized device coordinates.
	PickThreshold = 0.08
)

// Viewport describes the render surface the scene is projected onto.
type Viewport struct {
	Width   int
	Height  int
	FovYDeg float64
}

// NewViewport returns a viewport with the default field of view.
func NewViewport(width, height int) Viewport {
	return Viewport{Width: width, Height: height, FovYDeg: DefaultFovYDeg}
}

// Aspect returns the width/height ratio corrected for cell shape.
func (v Viewport) Aspect() float64 {
	if v.Height <= 0 {
		return 1
	}
	return float64(v.Width) * cellAspect / float64(v.Height)
}

// NDC is a projected position in normalized device coordinates: X and Y in
// [-1,1] with Y up, plus the depth along the camera's forward axis.
type NDC struct {
	X, Y  float64
	Depth float64
}

// Cell is a character-grid coordinate with row 0 at the top.
type Cell struct {
	Col, Row int
}

// ToCell converts normalized device coordinates to a grid cell.
func (v Viewport) ToCell(n NDC) Cell {
	return Cell{
		Col: int((n.X + 1) / 2 * float64(v.Width)),
		Row: int((1 - n.Y) / 2 * float64(v.Height)),
	}
}

// FromCell converts a grid cell to a normalized pointer position.
func (v Viewport) FromCell(col, row int) (px, py float64) {
	if v.Width <= 1 || v.Height <= 1 {
		return 0, 0
	}
	px = float64(col)/float64(v.Width-1)*2 - 1
	py = 1 - float64(row)/float64(v.Height-1)*2
	return px, py
}

// ProjectPoint projects a world position through the camera's current pose
// into normalized device coordinates. ok is false for points at or behind
// the near plane.
func ProjectPoint(cam CameraState, p astro.Vec3, vp Viewport) (NDC, bool) {
	eye := cam.Position()
	right, up, forward := cam.Basis()

	d := p.Sub(eye)
	depth := d.Dot(forward)
	if depth <= nearPlane {
		return NDC{}, false
	}

	f := 1 / math.Tan(degToRad(vp.FovYDeg)/2)
	xc := d.Dot(right)
	yc := d.Dot(up)

	return NDC{
		X:     xc * f / (depth * vp.Aspect()),
		Y:     yc * f / depth,
		Depth: depth,
	}, true
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// PickResult is the outcome of a pick attempt.
type PickResult struct {
	Index int // index into the visible buffer
	Star  VisibleStar
	Hit   bool
}

// Pick casts the normalized pointer position (px, py in [-1,1], Y up) against
// the visible buffer: every star whose projected position lies within the
// screen-space threshold is a candidate, and the nearest candidate along the
// view ray wins. Filtered-out stars are never pickable since they are not in
// the buffer. An empty buffer always misses; Pick never panics.
func Pick(cam CameraState, buf Buffer, px, py float64, vp Viewport) PickResult {
	if math.IsNaN(px) || math.IsNaN(py) {
		return PickResult{Index: -1}
	}

	best := PickResult{Index: -1}
	bestDepth := math.Inf(1)

	for i, star := range buf.Visible() {
		ndc, ok := ProjectPoint(cam, star.Pos, vp)
		if !ok {
			continue
		}
		dx := ndc.X - px
		dy := ndc.Y - py
		if math.Sqrt(dx*dx+dy*dy) > PickThreshold {
			continue
		}
		if ndc.Depth < bestDepth {
			bestDepth = ndc.Depth
			best = PickResult{Index: i, Star: star, Hit: true}
		}
	}

	return best
}
