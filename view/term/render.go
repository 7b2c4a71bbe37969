package term

import (
	"fmt"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/cubekiller/ecs"
	"github.com/plus3/cubekiller/game"
	"github.com/plus3/cubekiller/view"
)

// Terminal cells are about twice as tall as they are wide.
const (
	columnsPerUnit = 2.0
	cellAspect     = 0.5
)

var (
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	groundStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x2c, 0x3e, 0x50))
)

// avatarGlyphs are indexed by screen heading in eighths of a turn,
// clockwise from up.
var avatarGlyphs = []rune("↑↗→↘↓↙←↖")

// Renderer draws scene snapshots onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera view.Camera
}

func NewRenderer(screen tcell.Screen) *Renderer {
	r := &Renderer{
		screen: screen,
		camera: view.Camera{Scale: columnsPerUnit, Aspect: cellAspect},
	}
	r.Resize()
	return r
}

// Resize picks up the current screen size.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.Width = float64(w)
	r.camera.Height = float64(h)
}

func styleFor(c color.RGBA, opacity float64) tcell.Style {
	opacity = math.Max(0.2, math.Min(1, opacity))
	fg := tcell.NewRGBColor(
		int32(float64(c.R)*opacity),
		int32(float64(c.G)*opacity),
		int32(float64(c.B)*opacity),
	)
	return tcell.StyleDefault.Foreground(fg)
}

func (r *Renderer) put(x, y float64, ch rune, style tcell.Style) {
	cx, cy := int(math.Round(x)), int(math.Round(y))
	w, h := r.screen.Size()
	if cx < 0 || cy < 0 || cx >= w || cy >= h {
		return
	}
	r.screen.SetContent(cx, cy, ch, nil, style)
}

// Draw renders one frame. The avatar is always at the centre, heading up.
func (r *Renderer) Draw(snap view.Snapshot, state game.State) {
	r.screen.Clear()

	if avatar, ok := snap.Avatar(); ok {
		r.camera.Follow(avatar.Position, avatar.Orientation.Yaw)
		r.camera.Center.Y = 0
	}

	w, h := r.screen.Size()
	for y := 1; y < h; y += 2 {
		for x := (y / 2) % 4; x < w; x += 4 {
			r.screen.SetContent(x, y, '·', nil, groundStyle)
		}
	}

	for _, sp := range snap.Sprites {
		x, y := r.camera.Project(sp.Position)
		switch sp.Kind {
		case ecs.KindTarget:
			ch := '■'
			if sp.Opacity < 0.5 {
				ch = '□'
			}
			r.put(x, y, ch, styleFor(sp.Color, sp.Opacity))
		case ecs.KindProjectile:
			r.put(x, y, '•', styleFor(sp.Color, sp.Opacity))
		case ecs.KindAvatar:
			r.put(x, y, avatarGlyph(sp.Orientation.Yaw-r.camera.Yaw), styleFor(sp.Color, 1))
		}
	}
	for _, p := range snap.Particles {
		x, y := r.camera.Project(p.Position)
		r.put(x, y, '*', styleFor(p.Color, p.Alpha()))
	}

	r.drawText(0, 0, hudLine(snap, state), hudStyle)
	r.screen.Show()
}

func avatarGlyph(yaw float64) rune {
	// Positive yaw turns left, which is anticlockwise on screen.
	turns := math.Mod(-yaw/(2*math.Pi)+1, 1)
	i := int(math.Round(turns*8)) % 8
	return avatarGlyphs[i]
}

func hudLine(snap view.Snapshot, state game.State) string {
	line := fmt.Sprintf(" score %d  targets %d  field %s ", snap.Score, snap.LiveTargets, state.Variant)
	switch state.Phase {
	case game.PhasePaused:
		line += " [paused] "
	case game.PhaseEnded:
		line += " [game over] "
	}
	return line
}

func (r *Renderer) drawText(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
