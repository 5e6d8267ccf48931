package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-starfield/internal/photometry"
	"github.com/litescript/ls-starfield/internal/scene"
	"github.com/litescript/ls-starfield/internal/state"
)

// WheelZoomStep is the orbit radius change per scroll wheel notch.
const WheelZoomStep = 2.0

// StarfieldModel renders the 3D star catalog onto a character grid and
// owns the orbit camera controller.
type StarfieldModel struct {
	width  int
	height int
	// offsetY is the number of terminal rows above the canvas (header),
	// used to translate program mouse coordinates into canvas cells.
	offsetY int

	ctrl     *scene.Controller
	entities []scene.StarEntity
	buf      scene.Buffer
	bands    scene.BandSet
	dropped  int

	// Mouse drag tracking. A press/release pair with no motion in
	// between is a click (pick attempt); anything else is a drag.
	dragging   bool
	dragButton tea.MouseButton
	dragMoved  bool
	lastX      int
	lastY      int
}

// NewStarfieldModel creates a starfield view with the given initial
// camera pose and band filter.
func NewStarfieldModel(cam scene.CameraState, bands scene.BandSet) StarfieldModel {
	ctrl := scene.NewController()
	ctrl.Cam = cam
	ctrl.Targets.SetRadius(cam.OrbitRadius)
	return StarfieldModel{
		ctrl:  ctrl,
		bands: bands,
		buf:   scene.BuildBuffer(nil, bands),
	}
}

// SetSize updates the canvas dimensions.
func (m StarfieldModel) SetSize(width, height int) StarfieldModel {
	m.width = width
	m.height = height
	return m
}

// SetOffset records how many rows of chrome sit above the canvas.
func (m StarfieldModel) SetOffset(rows int) StarfieldModel {
	m.offsetY = rows
	return m
}

// UpdateData replaces the star set with a fresh batch. The camera is
// reset to the overview pose so a new catalog never inherits a stale
// selection or close-up target.
func (m StarfieldModel) UpdateData(snapshot state.Snapshot) StarfieldModel {
	m.entities = snapshot.Entities
	m.dropped = snapshot.Dropped
	m.buf = scene.BuildBuffer(m.entities, m.bands)
	m.ctrl.Reset()
	return m
}

// Tick advances the camera easing by one animation frame.
func (m StarfieldModel) Tick() StarfieldModel {
	m.ctrl.Tick()
	return m
}

// Bands returns the current band filter.
func (m StarfieldModel) Bands() scene.BandSet {
	return m.bands
}

// VisibleCount returns the number of stars passing the band filter.
func (m StarfieldModel) VisibleCount() int {
	return m.buf.Len()
}

// Dropped returns the per-batch count of records rejected during
// normalization or photometric estimation.
func (m StarfieldModel) Dropped() int {
	return m.dropped
}

// Selection returns the current selection state.
func (m StarfieldModel) Selection() scene.Selection {
	return m.ctrl.Sel
}

// Camera returns the current (eased) camera state.
func (m StarfieldModel) Camera() scene.CameraState {
	return m.ctrl.Cam
}

// Update implements the view's message handling.
func (m StarfieldModel) Update(msg tea.Msg) (StarfieldModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "b":
			m.toggleBand(photometry.BandBlue)
		case "w":
			m.toggleBand(photometry.BandWhite)
		case "y":
			m.toggleBand(photometry.BandYellowRed)
		case "r":
			m.ctrl.Reset()
		case "esc":
			if m.ctrl.Sel.Active {
				m.ctrl.Deselect()
			}
		}

	case tea.MouseMsg:
		m.handleMouse(msg)
	}

	return m, nil
}

func (m *StarfieldModel) toggleBand(b photometry.Band) {
	m.bands = m.bands.With(b, !m.bands.Enabled(b))
	m.buf = scene.BuildBuffer(m.entities, m.bands)
	m.reconcileSelection()
}

// reconcileSelection re-locates the selected star in the rebuilt buffer.
// If the band filter removed it, the selection is cleared and the camera
// returns to the overview pose.
func (m *StarfieldModel) reconcileSelection() {
	if !m.ctrl.Sel.Active {
		return
	}
	for i, vs := range m.buf.Visible() {
		if vs.ID == m.ctrl.Sel.ID {
			m.ctrl.Sel.Index = i
			return
		}
	}
	m.ctrl.Deselect()
}

func (m *StarfieldModel) handleMouse(msg tea.MouseMsg) {
	x := msg.X
	y := msg.Y - m.offsetY

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft, tea.MouseButtonRight:
			m.dragging = true
			m.dragButton = msg.Button
			m.dragMoved = false
			m.lastX, m.lastY = x, y
		case tea.MouseButtonWheelUp:
			m.ctrl.Zoom(-WheelZoomStep)
		case tea.MouseButtonWheelDown:
			m.ctrl.Zoom(WheelZoomStep)
		}

	case tea.MouseActionMotion:
		if !m.dragging {
			return
		}
		dx := x - m.lastX
		dy := y - m.lastY
		if dx == 0 && dy == 0 {
			return
		}
		m.dragMoved = true
		m.lastX, m.lastY = x, y
		switch m.dragButton {
		case tea.MouseButtonLeft:
			m.ctrl.Rotate(float64(dx), float64(dy))
		case tea.MouseButtonRight:
			m.ctrl.Pan(float64(dx), float64(dy))
		}

	case tea.MouseActionRelease:
		if m.dragging && !m.dragMoved && m.dragButton == tea.MouseButtonLeft {
			vp := m.viewport()
			px, py := vp.FromCell(x, y)
			m.ctrl.Click(m.buf, px, py, vp)
		}
		m.dragging = false
	}
}

func (m StarfieldModel) viewport() scene.Viewport {
	return scene.NewViewport(m.width, m.height)
}

// View renders the starfield canvas.
func (m StarfieldModel) View() string {
	if m.width < 20 || m.height < 8 {
		return "Terminal too small for starfield view"
	}

	grid := make([][]rune, m.height)
	colors := make([][]string, m.height)
	for y := range grid {
		grid[y] = make([]rune, m.width)
		colors[y] = make([]string, m.width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	vp := m.viewport()
	cam := m.ctrl.Cam

	// Stars keep their scene-buffer order; later (more distant along the
	// original ordering) stars never overwrite an already drawn cell.
	for _, vs := range m.buf.Visible() {
		ndc, ok := scene.ProjectPoint(cam, vs.Pos, vp)
		if !ok {
			continue
		}
		cell := vp.ToCell(ndc)
		if cell.Col < 0 || cell.Col >= m.width || cell.Row < 0 || cell.Row >= m.height {
			continue
		}
		selected := m.ctrl.Sel.Active && m.ctrl.Sel.ID == vs.ID
		if grid[cell.Row][cell.Col] != ' ' && !selected {
			continue
		}
		grid[cell.Row][cell.Col] = starGlyph(vs.RenderSize, selected)
		colors[cell.Row][cell.Col] = m.starColor(vs, ndc.Depth, selected)
	}

	m.drawConnector(grid, colors, vp)
	m.drawInfoPanel(grid, colors, vp)

	return renderColoredGrid(grid, colors)
}

// starGlyph maps a render size to a glyph. Sizes are already clamped to
// [0.1, 2.0] by the scene buffer.
func starGlyph(size float64, selected bool) rune {
	if selected {
		return '◉'
	}
	switch {
	case size >= 1.0:
		return '●'
	case size >= 0.45:
		return '✦'
	case size >= 0.2:
		return '∗'
	default:
		return '·'
	}
}

// starColor returns the star's class color dimmed by view depth, so
// nearer stars read brighter than far ones.
func (m StarfieldModel) starColor(vs scene.VisibleStar, depth float64, selected bool) string {
	hex := vs.Props.Class.Hex()
	if selected {
		return hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	// Fade toward black as depth approaches twice the orbit radius.
	far := 2 * m.ctrl.Cam.OrbitRadius
	if far <= 0 {
		far = 2 * scene.DefaultOrbitRadius
	}
	t := depth / far
	if t < 0 {
		t = 0
	}
	if t > 0.75 {
		t = 0.75
	}
	dimmed := c.BlendRgb(colorful.Color{R: 0, G: 0, B: 0}, t)
	return dimmed.Hex()
}

const infoPanelColor = "#AAAAAA"

// drawConnector draws a dotted line from the selected star to the info
// panel anchor.
func (m StarfieldModel) drawConnector(grid [][]rune, colors [][]string, vp scene.Viewport) {
	from, to, ok := m.ctrl.Connector(vp)
	if !ok {
		return
	}
	plotLine(grid, colors, from, to)
}

// plotLine draws a Bresenham line of connector dots between two cells,
// skipping occupied cells so stars stay visible through it.
func plotLine(grid [][]rune, colors [][]string, a, b scene.Cell) {
	dx := abs(b.Col - a.Col)
	dy := -abs(b.Row - a.Row)
	sx := 1
	if a.Col > b.Col {
		sx = -1
	}
	sy := 1
	if a.Row > b.Row {
		sy = -1
	}
	err := dx + dy

	x, y := a.Col, a.Row
	for {
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) && grid[y][x] == ' ' {
			grid[y][x] = '·'
			colors[y][x] = infoPanelColor
		}
		if x == b.Col && y == b.Row {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// drawInfoPanel writes the selected star's properties at the connector
// anchor in the lower-left of the canvas.
func (m StarfieldModel) drawInfoPanel(grid [][]rune, colors [][]string, vp scene.Viewport) {
	sel := m.ctrl.Sel
	if !sel.Active {
		return
	}
	star, ok := m.selectedStar()
	if !ok {
		return
	}

	_, anchor, connOK := m.ctrl.Connector(vp)
	if !connOK {
		return
	}

	lines := []string{
		fmt.Sprintf("Gaia DR3 %d", star.ID),
		fmt.Sprintf("dist  %.2f pc", star.DistancePc),
		fmt.Sprintf("T     %.0f K (%s)", star.Props.TemperatureK, star.Props.Class),
		fmt.Sprintf("R     %.2f R☉", star.Props.RadiusSolar),
		fmt.Sprintf("mag   %.2f (abs %.2f)", star.Magnitude, star.Props.AbsoluteMag),
		fmt.Sprintf("ra/dec %.3f° %+.3f°", star.RAdeg, star.DecDeg),
	}

	row := anchor.Row + 1
	for _, line := range lines {
		if row >= len(grid) {
			break
		}
		writeString(grid[row], colors[row], anchor.Col, line, infoPanelColor)
		row++
	}
}

func (m StarfieldModel) selectedStar() (scene.VisibleStar, bool) {
	sel := m.ctrl.Sel
	visible := m.buf.Visible()
	if sel.Index >= 0 && sel.Index < len(visible) && visible[sel.Index].ID == sel.ID {
		return visible[sel.Index], true
	}
	for _, vs := range visible {
		if vs.ID == sel.ID {
			return vs, true
		}
	}
	return scene.VisibleStar{}, false
}

func writeString(row []rune, rowColors []string, col int, s, color string) {
	for _, r := range s {
		if col < 0 {
			col++
			continue
		}
		if col >= len(row) {
			return
		}
		row[col] = r
		rowColors[col] = color
		col++
	}
}

func renderColoredGrid(grid [][]rune, colors [][]string) string {
	var b strings.Builder
	for y, row := range grid {
		for x, ch := range row {
			if ch == ' ' {
				b.WriteRune(ch)
				continue
			}
			hex := colors[y][x]
			if hex == "" {
				b.WriteRune(ch)
				continue
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
			b.WriteString(style.Render(string(ch)))
		}
		b.WriteRune('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
