package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-starfield/internal/astro"
	"github.com/litescript/ls-starfield/internal/photometry"
	"github.com/litescript/ls-starfield/internal/scene"
	"github.com/litescript/ls-starfield/internal/state"
)

func newTestModel(t *testing.T) (Model, *state.Manager) {
	t.Helper()
	mgr := state.NewManager(state.DefaultConfig())
	m := New(mgr, scene.NewCameraState(), scene.AllBands())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 45})
	return updated.(Model), mgr
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t)
	for _, key := range []string{"q", "ctrl+c"} {
		var msg tea.KeyMsg
		if key == "ctrl+c" {
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		} else {
			msg = keyMsg(key)
		}
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%s did not produce a command", key)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s did not quit", key)
		}
	}
}

func TestDataUpdateSwapsBatch(t *testing.T) {
	m, mgr := newTestModel(t)

	mgr.Replace([]scene.StarEntity{
		testEntity(7, astro.Vec3{}, photometry.ClassSunlike),
	}, 2, 0)

	updated, _ := m.Update(DataUpdateMsg{Snapshot: mgr.Snapshot()})
	m = updated.(Model)
	if m.starfield.VisibleCount() != 1 {
		t.Errorf("VisibleCount = %d, want 1", m.starfield.VisibleCount())
	}
	if m.starfield.Dropped() != 2 {
		t.Errorf("Dropped = %d, want 2", m.starfield.Dropped())
	}

	// Re-delivering the same batch must not reset the camera.
	updatedAgain, _ := m.Update(DataUpdateMsg{Snapshot: mgr.Snapshot()})
	m2 := updatedAgain.(Model)
	if m2.lastBatch != m.lastBatch {
		t.Error("same batch counted twice")
	}
}

func TestFooterShowsErrorAndDropped(t *testing.T) {
	m, mgr := newTestModel(t)

	mgr.SetError(errors.New("tap timeout"))
	updated, _ := m.Update(TickMsg{})
	m = updated.(Model)
	if !strings.Contains(m.View(), "tap timeout") {
		t.Error("footer does not surface the fetch error")
	}

	mgr.Replace([]scene.StarEntity{
		testEntity(7, astro.Vec3{}, photometry.ClassSunlike),
	}, 3, 0)
	updated, _ = m.Update(TickMsg{})
	m = updated.(Model)
	view := m.View()
	if !strings.Contains(view, "1 stars") {
		t.Errorf("footer missing star count:\n%s", view)
	}
	if !strings.Contains(view, "3 dropped") {
		t.Errorf("footer missing dropped count:\n%s", view)
	}
}

func TestViewBeforeReady(t *testing.T) {
	mgr := state.NewManager(state.DefaultConfig())
	m := New(mgr, scene.NewCameraState(), scene.AllBands())
	if !strings.Contains(m.View(), "Initializing") {
		t.Error("unready model should show the init placeholder")
	}
}
