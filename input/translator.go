// Package input turns gestures and key presses into game commands.
package input

import (
	"math"

	"github.com/plus3/cubekiller/game"
)

// PanRadiansPerPixel converts horizontal drag distance into yaw.
const PanRadiansPerPixel = math.Pi / 300

// KeyTurnPixels is the drag distance a single turn key press stands for.
const KeyTurnPixels = 15

// Sink receives commands. *game.Session satisfies it.
type Sink interface {
	Enqueue(game.Command)
}

// Action is a front-end independent input event.
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveForward
	ActionShoot
	ActionTurnLeft
	ActionTurnRight
	ActionToggleField
	ActionPause
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionMoveForward:
		return "move-forward"
	case ActionShoot:
		return "shoot"
	case ActionTurnLeft:
		return "turn-left"
	case ActionTurnRight:
		return "turn-right"
	case ActionToggleField:
		return "toggle-field"
	case ActionPause:
		return "pause"
	case ActionQuit:
		return "quit"
	default:
		return "none"
	}
}

// Translator maps gestures onto commands for a sink.
type Translator struct {
	sink Sink
}

func NewTranslator(sink Sink) *Translator {
	return &Translator{sink: sink}
}

// Tap moves the avatar forward.
func (t *Translator) Tap() {
	t.sink.Enqueue(game.MoveForward())
}

// Pan turns the avatar by a horizontal drag of dx pixels. Dragging right
// turns right. Zero drags are dropped.
func (t *Translator) Pan(dx float64) {
	if dx == 0 {
		return
	}
	t.sink.Enqueue(game.Rotate(-PanRadiansPerPixel * dx))
}

func (t *Translator) ShootButton() {
	t.sink.Enqueue(game.Shoot())
}

func (t *Translator) Toggle() {
	t.sink.Enqueue(game.ToggleField())
}

func (t *Translator) Pause() {
	t.sink.Enqueue(game.TogglePause())
}

// Apply translates a key action. It reports false for actions that are not
// game commands, such as ActionQuit, leaving them to the host.
func (t *Translator) Apply(a Action) bool {
	switch a {
	case ActionMoveForward:
		t.Tap()
	case ActionShoot:
		t.ShootButton()
	case ActionTurnLeft:
		t.Pan(-KeyTurnPixels)
	case ActionTurnRight:
		t.Pan(KeyTurnPixels)
	case ActionToggleField:
		t.Toggle()
	case ActionPause:
		t.Pause()
	default:
		return false
	}
	return true
}
