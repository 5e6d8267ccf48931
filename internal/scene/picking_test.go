package scene

import (
	"math"
	"testing"

	"github.com/litescript/ls-starfield/internal/astro"
	"github.com/litescript/ls-starfield/internal/photometry"
)

func TestProjectPointCenterAndBehind(t *testing.T) {
	cam := NewCameraState()
	vp := NewViewport(120, 40)

	// The camera looks at the origin, so the origin projects to (0,0).
	ndc, ok := ProjectPoint(cam, astro.Vec3{}, vp)
	if !ok {
		t.Fatal("origin should be visible")
	}
	if math.Abs(ndc.X) > 1e-9 || math.Abs(ndc.Y) > 1e-9 {
		t.Errorf("origin projected to (%v, %v), want center", ndc.X, ndc.Y)
	}
	if ndc.Depth <= 0 {
		t.Errorf("depth = %v, want positive", ndc.Depth)
	}

	// A point behind the camera is not projectable.
	behind := cam.Position().Add(cam.Position().Sub(cam.Center()).Normalized().Scale(10))
	if _, ok := ProjectPoint(cam, behind, vp); ok {
		t.Error("point behind the camera reported visible")
	}
}

func TestPickEmptyBufferAlwaysMisses(t *testing.T) {
	cam := NewCameraState()
	vp := NewViewport(120, 40)
	buf := BuildBuffer(nil, AllBands())

	// Must not panic and must never hit, including NaN pointer input.
	for _, pt := range [][2]float64{{0, 0}, {-1, 1}, {math.NaN(), 0.5}} {
		if result := Pick(cam, buf, pt[0], pt[1], vp); result.Hit {
			t.Errorf("pick at (%v, %v) hit on empty buffer", pt[0], pt[1])
		}
	}
}

func TestPickNearestAlongRayWins(t *testing.T) {
	cam := NewCameraState()
	vp := NewViewport(120, 40)

	// Both stars lie on the view ray through screen center; the near one
	// must win.
	eye := cam.Position()
	toward := cam.Center().Sub(eye).Normalized()
	near := StarEntity{ID: 1, Pos: eye.Add(toward.Scale(30))}
	far := StarEntity{ID: 2, Pos: eye.Add(toward.Scale(80))}

	buf := BuildBuffer([]StarEntity{far, near}, AllBands())
	result := Pick(cam, buf, 0, 0, vp)

	if !result.Hit {
		t.Fatal("expected hit at screen center")
	}
	if result.Star.ID != 1 {
		t.Errorf("picked star %d, want near star 1", result.Star.ID)
	}
}

func TestPickThresholdExcludesDistantPoints(t *testing.T) {
	cam := NewCameraState()
	vp := NewViewport(120, 40)

	star := StarEntity{ID: 1, Pos: astro.Vec3{}}
	buf := BuildBuffer([]StarEntity{star}, AllBands())

	// At center the star hits; at half a screen away it cannot.
	if result := Pick(cam, buf, 0, 0, vp); !result.Hit {
		t.Error("expected hit at star position")
	}
	if result := Pick(cam, buf, 0.5, 0.5, vp); result.Hit {
		t.Error("expected miss beyond the pick threshold")
	}
}

func TestFilteredOutStarsAreNotPickable(t *testing.T) {
	cam := NewCameraState()
	vp := NewViewport(120, 40)

	// A yellow/red star at screen center, with its band disabled.
	star := StarEntity{ID: 3, Pos: astro.Vec3{}}
	star.Props.Class = photometry.ClassSunlike

	bands := AllBands().With(photometry.BandYellowRed, false)
	buf := BuildBuffer([]StarEntity{star}, bands)

	if buf.Len() != 0 {
		t.Fatalf("star should be filtered out, buffer has %d", buf.Len())
	}
	if result := Pick(cam, buf, 0, 0, vp); result.Hit {
		t.Error("filtered-out star was picked")
	}
}

func TestViewportCellRoundTrip(t *testing.T) {
	vp := NewViewport(120, 40)

	cell := vp.ToCell(NDC{X: 0, Y: 0})
	if cell.Col != 60 || cell.Row != 20 {
		t.Errorf("center cell = %+v, want (60, 20)", cell)
	}

	px, py := vp.FromCell(cell.Col, cell.Row)
	if math.Abs(px) > 0.05 || math.Abs(py) > 0.05 {
		t.Errorf("round trip drifted: (%v, %v)", px, py)
	}

	// Degenerate viewport does not divide by zero.
	if px, py := NewViewport(1, 1).FromCell(0, 0); px != 0 || py != 0 {
		t.Errorf("degenerate viewport: (%v, %v)", px, py)
	}
}
