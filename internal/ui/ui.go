// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starfield/internal/photometry"
	"github.com/litescript/ls-starfield/internal/scene"
	"github.com/litescript/ls-starfield/internal/state"
	"github.com/litescript/ls-starfield/internal/version"
)

// headerRows and footerRows are the lines of chrome around the canvas.
const (
	headerRows = 3
	footerRows = 2
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic snapshot refreshes and status updates.
	TickMsg time.Time

	// FrameTickMsg drives the camera easing animation.
	FrameTickMsg time.Time

	// DataUpdateMsg signals a fresh star batch is available.
	DataUpdateMsg struct {
		Snapshot state.Snapshot
	}

	// ErrorMsg signals a fetch or reload error.
	ErrorMsg struct {
		Error error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	state *state.Manager

	width  int
	height int
	ready  bool

	starfield StarfieldModel

	snapshot  state.Snapshot
	lastBatch uint64
	animTick  int
}

// New creates the root UI model.
func New(stateMgr *state.Manager, cam scene.CameraState, bands scene.BandSet) Model {
	return Model{
		state:     stateMgr,
		starfield: NewStarfieldModel(cam, bands).SetOffset(headerRows),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), frameTickCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		default:
			var cmd tea.Cmd
			m.starfield, cmd = m.starfield.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.starfield, cmd = m.starfield.Update(msg)
		cmds = append(cmds, cmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		canvasH := msg.Height - headerRows - footerRows
		if canvasH < 1 {
			canvasH = 1
		}
		m.starfield = m.starfield.SetSize(msg.Width, canvasH)

	case TickMsg:
		cmds = append(cmds, tickCmd())
		m.snapshot = m.state.Snapshot()
		if m.snapshot.Batch != m.lastBatch {
			m.lastBatch = m.snapshot.Batch
			m.starfield = m.starfield.UpdateData(m.snapshot)
		}

	case FrameTickMsg:
		cmds = append(cmds, frameTickCmd())
		m.animTick++
		m.starfield = m.starfield.Tick()

	case DataUpdateMsg:
		m.snapshot = msg.Snapshot
		if m.snapshot.Batch != m.lastBatch {
			m.lastBatch = m.snapshot.Batch
			m.starfield = m.starfield.UpdateData(m.snapshot)
		}

	case ErrorMsg:
		// The state manager already holds the error; next tick picks it
		// up for the footer. Nothing to do here beyond refreshing.
		m.snapshot = m.state.Snapshot()
	}

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.renderHeader() + "\n" + m.starfield.View() + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#8B5CF6")).Bold(true)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	title := titleStyle.Render("  LS-STARFIELD") +
		muted.Render(fmt.Sprintf(" · Gaia 3D Star Viewer · v%s", version.Version))

	bands := m.renderBandTabs()
	return title + "\n" + bands + "\n"
}

func (m Model) renderBandTabs() string {
	onStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	labels := []struct {
		band photometry.Band
		text string
	}{
		{photometry.BandBlue, "[b] Blue"},
		{photometry.BandWhite, "[w] White"},
		{photometry.BandYellowRed, "[y] Yellow/Red"},
	}

	bands := m.starfield.Bands()
	var parts []string
	for _, l := range labels {
		if bands.Enabled(l.band) {
			parts = append(parts, onStyle.Render("◉ "+l.text))
		} else {
			parts = append(parts, dimStyle.Render("○ "+l.text))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var status string
	switch {
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case !m.snapshot.LastFetch.IsZero():
		countdown := time.Until(m.snapshot.NextRefresh).Round(time.Second)
		if countdown < 0 {
			countdown = 0
		}
		stars := fmt.Sprintf("%d stars", m.starfield.VisibleCount())
		if m.snapshot.Dropped > 0 {
			stars += fmt.Sprintf(" (%d dropped)", m.snapshot.Dropped)
		}
		status = dimStyle.Render(stars) +
			dimStyle.Render(fmt.Sprintf(" | refresh in %ds", int(countdown.Seconds())))
		if m.snapshot.FetchDuration > 0 {
			status += dimStyle.Render(" (" + m.snapshot.FetchDuration.Round(time.Millisecond).String() + ")")
		}
	default:
		status = accentStyle.Render(spinner) + dimStyle.Render(" waiting for catalog...")
	}

	help := dimStyle.Render("drag: rotate | right-drag: pan | wheel: zoom | click: select | esc: deselect | r: reset | q: quit")

	return "  " + status + "\n  " + help
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func frameTickCmd() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return FrameTickMsg(t)
	})
}

// SendDataUpdate creates a command that sends a data update message.
func SendDataUpdate(snapshot state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return DataUpdateMsg{Snapshot: snapshot}
	}
}

// SendError creates a command that sends an error message.
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Error: err}
	}
}
