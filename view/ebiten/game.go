// Package ebiten is the windowed front end. It ticks the session from
// ebiten's update loop and draws a top-down view that follows the avatar.
package ebiten

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/cubekiller/game"
	"github.com/plus3/cubekiller/input"
	"github.com/plus3/cubekiller/view"
)

const (
	ScreenWidth   = 1280
	ScreenHeight  = 720
	PixelsPerUnit = 24
)

// Overlay draws on top of the scene, such as the debug UI.
type Overlay interface {
	Update(dt time.Duration)
	Draw(screen *ebiten.Image)
	Layout(width, height int)
	WantCaptureMouse() bool
	WantCaptureKeyboard() bool
}

// Game implements ebiten.Game.
type Game struct {
	session    *game.Session
	scene      *view.Scene
	translator *input.Translator
	gesture    *input.Gesture
	keys       map[ebiten.Key]input.Action
	overlay    Overlay
	camera     view.Camera
	logger     *log.Logger

	actions []input.Action
	touch   ebiten.TouchID
	touched bool
	quit    bool
}

type Option func(*Game)

func WithOverlay(o Overlay) Option {
	return func(g *Game) {
		g.overlay = o
	}
}

func WithKeys(keys map[ebiten.Key]input.Action) Option {
	return func(g *Game) {
		g.keys = keys
	}
}

func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGame wires a loaded session and the scene it presents to.
func NewGame(session *game.Session, scene *view.Scene, opts ...Option) *Game {
	translator := input.NewTranslator(session)
	g := &Game{
		session:    session,
		scene:      scene,
		translator: translator,
		gesture:    input.NewGesture(translator),
		keys:       DefaultKeys,
		logger:     log.Default(),
		camera: view.Camera{
			Scale:     PixelsPerUnit,
			Elevation: PixelsPerUnit / 2,
			Width:     ScreenWidth,
			Height:    ScreenHeight,
		},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Game) tickDuration() time.Duration {
	return time.Second / time.Duration(ebiten.TPS())
}

func (g *Game) Update() error {
	dt := g.tickDuration()
	if g.overlay != nil {
		g.overlay.Update(dt)
	}

	g.readKeys()
	g.readPointer()
	if g.quit {
		g.session.Stop()
		g.logger.Printf("quit requested, final score %d", g.session.State().Score)
		return ebiten.Termination
	}

	g.session.Tick(dt)
	if g.session.State().Phase != game.PhasePaused {
		g.scene.Advance(dt)
	}
	return nil
}

func (g *Game) readKeys() {
	if g.overlay != nil && g.overlay.WantCaptureKeyboard() {
		return
	}
	g.actions = pressedActions(g.keys, g.actions[:0])
	for _, a := range g.actions {
		if !g.translator.Apply(a) && a == input.ActionQuit {
			g.quit = true
		}
	}
}

// readPointer feeds the left mouse button and the first touch into the
// gesture recognizer. The right button shoots.
func (g *Game) readPointer() {
	if g.overlay != nil && g.overlay.WantCaptureMouse() {
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.translator.ShootButton()
	}

	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.gesture.Press(float64(x), float64(y))
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.gesture.Release(float64(x), float64(y))
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.gesture.Move(float64(x), float64(y))
	}

	if !g.touched {
		if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
			g.touch, g.touched = ids[0], true
			tx, ty := ebiten.TouchPosition(g.touch)
			g.gesture.Press(float64(tx), float64(ty))
		}
		return
	}
	if inpututil.IsTouchJustReleased(g.touch) {
		tx, ty := inpututil.TouchPositionInPreviousTick(g.touch)
		g.gesture.Release(float64(tx), float64(ty))
		g.touched = false
		return
	}
	tx, ty := ebiten.TouchPosition(g.touch)
	g.gesture.Move(float64(tx), float64(ty))
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	snap := g.scene.Snapshot()
	if avatar, ok := snap.Avatar(); ok {
		g.camera.Follow(avatar.Position, avatar.Orientation.Yaw)
		g.camera.Center.Y = 0
	}

	cfg := g.session.Config()
	drawGrid(screen, g.camera)
	for _, sp := range snap.Sprites {
		drawSprite(screen, g.camera, cfg, sp)
	}
	drawParticles(screen, g.camera, snap.Particles)
	drawHUD(screen, hudLines(snap, g.session.State()))

	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.camera.Width = float64(outsideWidth)
	g.camera.Height = float64(outsideHeight)
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it closes.
func Run(g *Game, title string) error {
	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
