// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	"time"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/cubekiller/debugui"
)

// ToggleKey shows or hides the debug windows.
const ToggleKey = ebiten.KeyF1

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Overlay draws the debug UI over the game. It satisfies the overlay
// interface of the windowed front end.
type Overlay struct {
	backend ImguiBackend
	ui      *debugui.UI
}

// NewOverlay creates the backend and its window. It must be called before
// ebiten.RunGame.
func NewOverlay(title string, width, height int, ui *debugui.UI) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &Overlay{
		backend: ImguiBackend{EbitenBackend: backend},
		ui:      ui,
	}
}

// Update builds the ImGui frame. It runs before the session ticks so that
// the capture flags apply to this frame's input.
func (o *Overlay) Update(dt time.Duration) {
	if inpututil.IsKeyJustPressed(ToggleKey) {
		o.ui.Toggle()
	}
	o.backend.BeginFrame()
	o.ui.Render(dt)
	o.backend.EndFrame()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *Overlay) Layout(width, height int) {
	o.backend.Layout(width, height)
}

func (o *Overlay) WantCaptureMouse() bool {
	return o.ui.Input().WantCaptureMouse
}

func (o *Overlay) WantCaptureKeyboard() bool {
	return o.ui.Input().WantCaptureKeyboard
}
