// Package term is the terminal front end. It plays the session in a tcell
// screen: arrow keys or hjkl steer, space shoots, and mouse drags pan.
package term

import (
	"context"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/cubekiller/game"
	"github.com/plus3/cubekiller/input"
	"github.com/plus3/cubekiller/view"
)

// Pixel size of a terminal cell, used so that mouse drags turn at the same
// rate as in the window.
const (
	cellPixelsX = 8
	cellPixelsY = 16
)

// Host runs a session inside a terminal.
type Host struct {
	screen     tcell.Screen
	session    *game.Session
	scene      *view.Scene
	renderer   *Renderer
	translator *input.Translator
	gesture    *input.Gesture
	logger     *log.Logger

	mouseDown bool
	shootDown bool
}

func NewHost(screen tcell.Screen, session *game.Session, scene *view.Scene, logger *log.Logger) *Host {
	if logger == nil {
		logger = log.Default()
	}
	translator := input.NewTranslator(session)
	return &Host{
		screen:     screen,
		session:    session,
		scene:      scene,
		renderer:   NewRenderer(screen),
		translator: translator,
		gesture:    input.NewGesture(translator),
		logger:     logger,
	}
}

// Run ticks and draws at the given interval until the context is cancelled
// or the player quits. The screen must already be initialized.
func (h *Host) Run(ctx context.Context, interval time.Duration) error {
	h.screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	defer h.screen.DisableMouse()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	go h.screen.ChannelEvents(events, quit)
	defer close(quit)

	for {
		select {
		case <-ctx.Done():
			h.session.Stop()
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !h.handle(ev) {
				h.session.Stop()
				h.logger.Printf("quit requested, final score %d", h.session.State().Score)
				return nil
			}

		case <-ticker.C:
			h.Step(interval)
		}
	}
}

// Step advances and redraws one frame.
func (h *Host) Step(dt time.Duration) {
	h.session.Tick(dt)
	if h.session.State().Phase != game.PhasePaused {
		h.scene.Advance(dt)
	}
	h.renderer.Draw(h.scene.Snapshot(), h.session.State())
}

// handle reports false when the player asked to quit.
func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a := KeyAction(ev)
		if a == input.ActionQuit {
			return false
		}
		h.translator.Apply(a)

	case *tcell.EventMouse:
		x, y := ev.Position()
		px, py := float64(x*cellPixelsX), float64(y*cellPixelsY)
		pressed := ev.Buttons()&tcell.Button1 != 0
		switch {
		case pressed && !h.mouseDown:
			h.gesture.Press(px, py)
		case pressed:
			h.gesture.Move(px, py)
		case h.mouseDown:
			h.gesture.Release(px, py)
		}
		h.mouseDown = pressed

		shoot := ev.Buttons()&tcell.Button2 != 0
		if shoot && !h.shootDown {
			h.translator.ShootButton()
		}
		h.shootDown = shoot

	case *tcell.EventResize:
		h.screen.Sync()
		h.renderer.Resize()
	}
	return true
}
