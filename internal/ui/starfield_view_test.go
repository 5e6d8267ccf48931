package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-starfield/internal/astro"
	"github.com/litescript/ls-starfield/internal/photometry"
	"github.com/litescript/ls-starfield/internal/scene"
	"github.com/litescript/ls-starfield/internal/state"
)

func testEntity(id int64, pos astro.Vec3, class photometry.SpectralClass) scene.StarEntity {
	return scene.StarEntity{
		ID:         id,
		Pos:        pos,
		DistancePc: pos.Norm(),
		Magnitude:  5.0,
		Props: photometry.Properties{
			TemperatureK: 5778,
			AbsoluteMag:  4.83,
			RadiusSolar:  1.0,
			Class:        class,
		},
	}
}

func testSnapshot(entities ...scene.StarEntity) state.Snapshot {
	return state.Snapshot{
		Entities:  entities,
		Batch:     1,
		LastFetch: time.Now(),
	}
}

func newTestStarfield(entities ...scene.StarEntity) StarfieldModel {
	m := NewStarfieldModel(scene.NewCameraState(), scene.AllBands())
	m = m.SetSize(120, 40)
	return m.UpdateData(testSnapshot(entities...))
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBandToggleRebuildsBuffer(t *testing.T) {
	m := newTestStarfield(
		testEntity(1, astro.Vec3{X: 1}, photometry.ClassHot),     // blue
		testEntity(2, astro.Vec3{Y: 1}, photometry.ClassWarm),    // white
		testEntity(3, astro.Vec3{Z: 1}, photometry.ClassSunlike), // yellow/red
	)
	if m.VisibleCount() != 3 {
		t.Fatalf("VisibleCount = %d, want 3", m.VisibleCount())
	}

	m, _ = m.Update(keyMsg("b"))
	if m.VisibleCount() != 2 {
		t.Errorf("after disabling blue, VisibleCount = %d, want 2", m.VisibleCount())
	}
	if m.Bands().Enabled(photometry.BandBlue) {
		t.Error("blue band still enabled after toggle")
	}

	m, _ = m.Update(keyMsg("b"))
	if m.VisibleCount() != 3 {
		t.Errorf("after re-enabling blue, VisibleCount = %d, want 3", m.VisibleCount())
	}
}

func TestDragRotatesCamera(t *testing.T) {
	m := newTestStarfield(testEntity(1, astro.Vec3{}, photometry.ClassSunlike))
	theta := m.Camera().Theta

	m, _ = m.Update(tea.MouseMsg{X: 40, Y: 20, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = m.Update(tea.MouseMsg{X: 50, Y: 20, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	m, _ = m.Update(tea.MouseMsg{X: 50, Y: 20, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	if m.Camera().Theta == theta {
		t.Error("left drag did not rotate the camera")
	}
	if m.Selection().Active {
		t.Error("drag with motion must not select")
	}
}

func TestWheelZoomEases(t *testing.T) {
	m := newTestStarfield(testEntity(1, astro.Vec3{}, photometry.ClassSunlike))
	start := m.Camera().OrbitRadius

	m, _ = m.Update(tea.MouseMsg{X: 40, Y: 20, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	for i := 0; i < 200; i++ {
		m = m.Tick()
	}

	if m.Camera().OrbitRadius >= start {
		t.Errorf("wheel up should zoom in: radius %v -> %v", start, m.Camera().OrbitRadius)
	}
}

func TestClickSelectsStarAtCenter(t *testing.T) {
	m := newTestStarfield(testEntity(42, astro.Vec3{}, photometry.ClassSunlike))

	// Mouse coordinates include the header offset.
	cx, cy := 60, 20+headerRows
	m.offsetY = headerRows
	m, _ = m.Update(tea.MouseMsg{X: cx, Y: cy, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = m.Update(tea.MouseMsg{X: cx, Y: cy, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	if !m.Selection().Active {
		t.Fatal("click on origin star did not select")
	}
	if m.Selection().ID != 42 {
		t.Errorf("selected ID = %d, want 42", m.Selection().ID)
	}
}

func TestClickEmptySpaceDeselects(t *testing.T) {
	m := newTestStarfield(testEntity(42, astro.Vec3{}, photometry.ClassSunlike))
	m.ctrl.Click(m.buf, 0, 0, m.viewport())
	if !m.Selection().Active {
		t.Fatal("setup: center click should select")
	}

	m, _ = m.Update(tea.MouseMsg{X: 5, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m, _ = m.Update(tea.MouseMsg{X: 5, Y: 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})

	if m.Selection().Active {
		t.Error("click on empty space did not deselect")
	}
}

func TestFilterRemovingSelectedStarDeselects(t *testing.T) {
	m := newTestStarfield(
		testEntity(1, astro.Vec3{}, photometry.ClassSunlike),
		testEntity(2, astro.Vec3{X: 5}, photometry.ClassHot),
	)
	m.ctrl.Click(m.buf, 0, 0, m.viewport())
	if !m.Selection().Active || m.Selection().ID != 1 {
		t.Fatalf("setup: expected star 1 selected, got %+v", m.Selection())
	}

	// Disabling yellow/red removes the selected sunlike star.
	m, _ = m.Update(keyMsg("y"))
	if m.Selection().Active {
		t.Error("selection survived its band being filtered out")
	}
}

func TestFilterKeepingSelectedStarReindexes(t *testing.T) {
	m := newTestStarfield(
		testEntity(1, astro.Vec3{X: 5}, photometry.ClassHot),
		testEntity(2, astro.Vec3{}, photometry.ClassSunlike),
	)
	m.ctrl.Click(m.buf, 0, 0, m.viewport())
	if !m.Selection().Active || m.Selection().ID != 2 {
		t.Fatalf("setup: expected star 2 selected, got %+v", m.Selection())
	}

	// Removing the blue band shifts the sunlike star to index 0.
	m, _ = m.Update(keyMsg("b"))
	sel := m.Selection()
	if !sel.Active || sel.ID != 2 {
		t.Fatalf("selection lost on unrelated filter change: %+v", sel)
	}
	if sel.Index != 0 {
		t.Errorf("selection index not reconciled: %d, want 0", sel.Index)
	}
}

func TestDataUpdateResetsCamera(t *testing.T) {
	m := newTestStarfield(testEntity(1, astro.Vec3{}, photometry.ClassSunlike))
	m.ctrl.Click(m.buf, 0, 0, m.viewport())
	for i := 0; i < 500; i++ {
		m = m.Tick()
	}
	if m.Camera().OrbitRadius > scene.CloseUpRadius+1 {
		t.Fatalf("setup: camera should have eased toward close-up, radius %v", m.Camera().OrbitRadius)
	}

	m = m.UpdateData(testSnapshot(testEntity(2, astro.Vec3{X: 1}, photometry.ClassHot)))
	if m.Selection().Active {
		t.Error("selection survived a batch swap")
	}
	for i := 0; i < 500; i++ {
		m = m.Tick()
	}
	if got := m.Camera().OrbitRadius; got < scene.DefaultOrbitRadius-1 {
		t.Errorf("camera did not return to overview radius: %v", got)
	}
}

func TestViewShowsSelectionInfoPanel(t *testing.T) {
	m := newTestStarfield(testEntity(42, astro.Vec3{}, photometry.ClassSunlike))
	m.ctrl.Click(m.buf, 0, 0, m.viewport())

	out := m.View()
	if !strings.Contains(out, "Gaia DR3 42") {
		t.Error("info panel missing the selected star ID")
	}
	if !strings.Contains(out, "5778 K") {
		t.Error("info panel missing the temperature")
	}
}

func TestViewTinyTerminal(t *testing.T) {
	m := NewStarfieldModel(scene.NewCameraState(), scene.AllBands()).SetSize(5, 2)
	if out := m.View(); !strings.Contains(out, "too small") {
		t.Errorf("tiny terminal View = %q", out)
	}
}

func TestStarGlyphBySize(t *testing.T) {
	cases := []struct {
		size float64
		want rune
	}{
		{2.0, '●'},
		{0.6, '✦'},
		{0.3, '∗'},
		{0.1, '·'},
	}
	for _, c := range cases {
		if got := starGlyph(c.size, false); got != c.want {
			t.Errorf("starGlyph(%v) = %q, want %q", c.size, got, c.want)
		}
	}
	if got := starGlyph(0.1, true); got != '◉' {
		t.Errorf("selected glyph = %q, want ◉", got)
	}
}
