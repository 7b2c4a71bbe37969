package term

import (
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/cubekiller/input"
)

// KeyAction maps a key event onto an input action.
func KeyAction(ev *tcell.EventKey) input.Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.ActionMoveForward
	case tcell.KeyLeft:
		return input.ActionTurnLeft
	case tcell.KeyRight:
		return input.ActionTurnRight
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return input.ActionQuit
	case tcell.KeyRune:
	default:
		return input.ActionNone
	}

	switch ev.Rune() {
	case 'w', 'k':
		return input.ActionMoveForward
	case ' ':
		return input.ActionShoot
	case 'a', 'h':
		return input.ActionTurnLeft
	case 'd', 'l':
		return input.ActionTurnRight
	case 'f':
		return input.ActionToggleField
	case 'p':
		return input.ActionPause
	case 'q':
		return input.ActionQuit
	}
	return input.ActionNone
}
