package input_test

import (
	"math"
	"testing"

	"github.com/plus3/cubekiller/game"
	"github.com/plus3/cubekiller/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capture []game.Command

func (c *capture) Enqueue(cmd game.Command) { *c = append(*c, cmd) }

func TestTranslatorCommands(t *testing.T) {
	var got capture
	tr := input.NewTranslator(&got)

	tr.Tap()
	tr.ShootButton()
	tr.Toggle()
	tr.Pause()
	tr.Pan(0)
	tr.Pan(150)

	require.Len(t, got, 5)
	assert.Equal(t, game.CommandMoveForward, got[0].Kind)
	assert.Equal(t, game.CommandShoot, got[1].Kind)
	assert.Equal(t, game.CommandToggleField, got[2].Kind)
	assert.Equal(t, game.CommandTogglePause, got[3].Kind)
	assert.Equal(t, game.CommandRotate, got[4].Kind)
	assert.InDelta(t, -math.Pi/2, got[4].Yaw, 1e-12)
}

func TestApplyActions(t *testing.T) {
	var got capture
	tr := input.NewTranslator(&got)

	assert.True(t, tr.Apply(input.ActionTurnLeft))
	assert.True(t, tr.Apply(input.ActionTurnRight))
	assert.False(t, tr.Apply(input.ActionQuit))
	assert.False(t, tr.Apply(input.ActionNone))

	require.Len(t, got, 2)
	assert.Greater(t, got[0].Yaw, 0.0, "turning left increases yaw")
	assert.Less(t, got[1].Yaw, 0.0)
}

func TestGestureTap(t *testing.T) {
	var got capture
	g := input.NewGesture(input.NewTranslator(&got))

	g.Press(100, 100)
	g.Move(103, 101)
	assert.True(t, g.Active())
	g.Release(102, 102)

	assert.False(t, g.Active())
	require.Len(t, got, 1)
	assert.Equal(t, game.CommandMoveForward, got[0].Kind)
}

func TestGesturePan(t *testing.T) {
	var got capture
	g := input.NewGesture(input.NewTranslator(&got))

	g.Press(100, 100)
	g.Move(120, 100)
	g.Move(130, 100)
	g.Release(130, 100)

	require.Len(t, got, 2)
	total := 0.0
	for _, c := range got {
		assert.Equal(t, game.CommandRotate, c.Kind)
		total += c.Yaw
	}
	assert.InDelta(t, -input.PanRadiansPerPixel*30, total, 1e-12)
}

func TestGestureIgnoresStrayEvents(t *testing.T) {
	var got capture
	g := input.NewGesture(input.NewTranslator(&got))

	g.Move(10, 10)
	g.Release(10, 10)
	assert.Empty(t, got)
}
