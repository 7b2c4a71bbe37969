// Package debugui provides Dear ImGui panels for inspecting and driving a
// running session. Render must be called between the backend's BeginFrame
// and EndFrame, on the goroutine that ticks the session.
package debugui

import (
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/cubekiller/game"
)

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// UI groups the debug windows of one session.
type UI struct {
	session   *game.Session
	panel     SessionPanel
	browser   EntityBrowser
	inspector EntityInspector
	perf      PerformanceStats
	input     InputState
	visible   bool
}

func New(session *game.Session) *UI {
	return &UI{
		session: session,
		browser: NewEntityBrowser(100),
		perf:    NewPerformanceStats(120),
		visible: true,
	}
}

// Toggle shows or hides every window.
func (u *UI) Toggle() {
	u.visible = !u.visible
}

// Input returns the capture state sampled by the last Render.
func (u *UI) Input() InputState {
	return u.input
}

// Render draws the debug windows for one frame.
func (u *UI) Render(dt time.Duration) {
	io := imgui.CurrentIO()
	u.input.WantCaptureMouse = io.WantCaptureMouse()
	u.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	if !u.visible {
		return
	}
	u.panel.Render(u.session)
	u.browser.Render(u.session.Registry())
	u.inspector.Render(u.session.Registry(), u.browser.Selected())
	u.perf.Render(u.session, dt)
}
