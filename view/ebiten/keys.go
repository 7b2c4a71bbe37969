package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/cubekiller/input"
)

// DefaultKeys is the desktop key layout.
var DefaultKeys = map[ebiten.Key]input.Action{
	ebiten.KeyArrowUp:    input.ActionMoveForward,
	ebiten.KeyW:          input.ActionMoveForward,
	ebiten.KeySpace:      input.ActionShoot,
	ebiten.KeyArrowLeft:  input.ActionTurnLeft,
	ebiten.KeyA:          input.ActionTurnLeft,
	ebiten.KeyArrowRight: input.ActionTurnRight,
	ebiten.KeyD:          input.ActionTurnRight,
	ebiten.KeyF:          input.ActionToggleField,
	ebiten.KeyP:          input.ActionPause,
	ebiten.KeyEscape:     input.ActionQuit,
	ebiten.KeyQ:          input.ActionQuit,
}

const (
	repeatDelay    = 15
	repeatInterval = 4
)

// repeating reports whether a key held for the given number of ticks should
// fire this tick. Only turning repeats.
func repeating(a input.Action, ticks int) bool {
	if ticks == 1 {
		return true
	}
	if a != input.ActionTurnLeft && a != input.ActionTurnRight {
		return false
	}
	return ticks > repeatDelay && (ticks-repeatDelay)%repeatInterval == 0
}

// pressedActions appends the actions whose keys fire this tick.
func pressedActions(keys map[ebiten.Key]input.Action, dst []input.Action) []input.Action {
	for key, action := range keys {
		if repeating(action, inpututil.KeyPressDuration(key)) {
			dst = append(dst, action)
		}
	}
	return dst
}
