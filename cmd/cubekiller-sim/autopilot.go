package main

import (
	"math"

	"github.com/plus3/cubekiller/ecs"
	"github.com/plus3/cubekiller/game"
	"github.com/plus3/cubekiller/vmath"
)

const (
	maxTurn      = math.Pi / 30
	aimTolerance = 0.03
)

// Autopilot plays a session: it turns toward the nearest target, shoots
// when lined up, and walks when nothing is in sight.
type Autopilot struct {
	session    *game.Session
	shootEvery int
	walkEvery  int
	tick       int
}

func NewAutopilot(session *game.Session, shootEvery, walkEvery int) *Autopilot {
	return &Autopilot{
		session:    session,
		shootEvery: max(1, shootEvery),
		walkEvery:  max(1, walkEvery),
	}
}

// heading returns the yaw that faces along v in the XZ plane.
func heading(v vmath.Vec3) float64 {
	return math.Atan2(-v.X, -v.Z)
}

// Step queues this tick's commands.
func (a *Autopilot) Step() {
	a.tick++
	pos, dir := a.session.Aim()

	target, ok := a.session.Registry().Nearest(pos, ecs.KindTarget)
	if !ok {
		if a.tick%a.walkEvery == 0 {
			a.session.Enqueue(game.MoveForward())
		}
		return
	}

	to := target.Position.Sub(pos)
	to.Y = 0
	turn := vmath.WrapAngle(heading(to) - heading(dir))
	if math.Abs(turn) > aimTolerance {
		a.session.Enqueue(game.Rotate(math.Max(-maxTurn, math.Min(maxTurn, turn))))
		return
	}
	if a.tick%a.shootEvery == 0 {
		a.session.Enqueue(game.Shoot())
	}
}
