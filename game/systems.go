package game

import (
	"time"

	"github.com/plus3/cubekiller/ecs"
	"github.com/plus3/cubekiller/physics"
	"github.com/plus3/cubekiller/random"
	"github.com/plus3/cubekiller/vmath"
)

// timeSystem advances the session clock.
type timeSystem struct{}

func (timeSystem) Execute(frame *Frame) {
	s := frame.Session
	s.state.Elapsed += frame.DeltaTime
	s.state.Ticks++
}

// commandSystem applies the player commands queued since the last tick.
type commandSystem struct{}

func (commandSystem) Execute(frame *Frame) {
	s := frame.Session
	s.inbox = s.queue.drain(s.inbox[:0])

	for _, cmd := range s.inbox {
		switch cmd.Kind {
		case CommandMoveForward:
			s.startMove()
		case CommandRotate:
			s.rotate(cmd.Yaw)
		case CommandShoot:
			s.state.ShootPending = true
		case CommandToggleField:
			if s.state.Variant == VariantFloating {
				s.state.Variant = VariantFalling
			} else {
				s.state.Variant = VariantFloating
			}
			s.logger.Printf("target variant switched to %s", s.state.Variant)
		case CommandTogglePause:
			frame.Commands.Defer(s.Pause)
		}
	}
}

// spawnSystem adds one target whenever the clock passes the next spawn time.
type spawnSystem struct{}

func (spawnSystem) Execute(frame *Frame) {
	s := frame.Session
	if s.state.Elapsed > s.state.NextSpawn {
		s.spawnTarget()
		s.state.NextSpawn = s.state.Elapsed + s.cfg.SpawnInterval
	}
}

// spawnTarget places a target at a random offset around the avatar.
func (s *Session) spawnTarget() ecs.EntityId {
	origin, _ := s.Aim()
	hw := s.cfg.HalfWidth
	offset := vmath.V3(float64(s.rng.Int(-hw, hw)), 0, float64(s.rng.Int(-hw, hw)))

	gravity := s.state.Variant == VariantFalling
	if gravity {
		offset.Y = s.rng.Float(0, s.cfg.SpawnHeight)
	}

	var orient vmath.Euler
	if s.cfg.RandomYaw {
		orient = vmath.YawOnly(s.rng.Yaw())
	}

	half := s.cfg.TargetSize / 2
	id := s.create(ecs.Desc{
		Kind:        ecs.KindTarget,
		Position:    origin.Add(offset),
		Orientation: orient,
		HalfExtents: vmath.V3(half, half, half),
		Body:        ecs.BodyDynamic,
		Gravity:     gravity,
		Color:       s.rng.Color(),
	})
	s.state.LiveTargets++
	s.state.Spawned++

	if s.cfg.FadeDuration > 0 {
		s.fades[id] = s.state.Elapsed
	} else {
		s.registry.SetOpacity(id, 1)
	}
	return id
}

// shootSystem fires at most one projectile per tick.
type shootSystem struct{}

func (shootSystem) Execute(frame *Frame) {
	s := frame.Session
	if !s.state.ShootPending {
		return
	}
	s.state.ShootPending = false
	s.fire()
}

func (s *Session) fire() ecs.EntityId {
	pos, dir := s.Aim()
	r := s.cfg.ProjectileRadius
	id := s.create(ecs.Desc{
		Kind:        ecs.KindProjectile,
		Position:    pos,
		Velocity:    dir.Scale(s.cfg.ProjectileSpeed),
		HalfExtents: vmath.V3(r, r, r),
		Body:        ecs.BodyDynamic,
		Color:       random.Hex(0xffffff),
		Opacity:     1,
	})
	s.state.Fired++
	s.audio.Play(SoundShot, 1)

	s.timers.Schedule(s.state.Elapsed+s.cfg.ProjectileTTL, id, func(time.Duration) {
		s.registry.SetBodyType(id, ecs.BodyStatic)
		s.destroy(id, false)
	})
	return id
}

// move is a one-shot displacement of the avatar spread over a duration.
type move struct {
	total    vmath.Vec3
	duration time.Duration
	elapsed  time.Duration
}

func (s *Session) startMove() {
	_, dir := s.Aim()
	s.moves = append(s.moves, move{
		total:    dir.Scale(s.cfg.MoveDistance),
		duration: s.cfg.MoveDuration,
	})
	if s.cfg.MoveDuration > 0 {
		s.bounces = append(s.bounces, 0)
	}
}

// rotate turns the avatar. In continuous steering the repeating movement is
// re-aimed along the new heading, replacing the previous one.
func (s *Session) rotate(delta float64) {
	e, ok := s.registry.Get(s.avatar)
	if !ok {
		return
	}
	orient := e.Orientation
	orient.Yaw = vmath.WrapAngle(orient.Yaw + delta)
	s.registry.SetOrientation(s.avatar, orient)

	if s.cfg.Steering == SteerContinuous {
		_, dir := s.Aim()
		s.steer = dir.Scale(s.cfg.SteerStep)
		s.steering = true
	}
}

// motionSystem runs avatar movement and the cosmetic bounce.
type motionSystem struct{}

func (motionSystem) Execute(frame *Frame) {
	s := frame.Session
	e, ok := s.registry.Get(s.avatar)
	if !ok {
		return
	}
	dt := frame.DeltaTime

	var delta vmath.Vec3
	kept := s.moves[:0]
	for _, m := range s.moves {
		if m.duration <= 0 {
			delta = delta.Add(m.total)
			continue
		}
		step := min(dt, m.duration-m.elapsed)
		delta = delta.Add(m.total.Scale(float64(step) / float64(m.duration)))
		m.elapsed += step
		if m.elapsed < m.duration {
			kept = append(kept, m)
		}
	}
	s.moves = kept

	if s.steering {
		delta = delta.Add(s.steer)
	}
	if delta != (vmath.Vec3{}) {
		s.registry.SetPosition(s.avatar, e.Position.Add(delta))
	}

	lift := 0.0
	bounces := s.bounces[:0]
	for _, t := range s.bounces {
		t += dt
		if t < s.cfg.MoveDuration {
			bounces = append(bounces, t)
			lift += s.bounceLift(t)
		}
	}
	s.bounces = bounces
	if lift != e.Lift {
		s.registry.SetLift(s.avatar, lift)
	}
}

// bounceLift rises to BounceHeight at half the move duration and falls back.
func (s *Session) bounceLift(t time.Duration) float64 {
	half := float64(s.cfg.MoveDuration) / 2
	x := float64(t) / half
	if x > 1 {
		x = 2 - x
	}
	return s.cfg.BounceHeight * max(0, x)
}

// physicsSystem steps the simulation and copies moved bodies back into the
// registry.
type physicsSystem struct{}

func (physicsSystem) Execute(frame *Frame) {
	s := frame.Session
	s.contacts = s.world.Step(frame.DeltaTime)
	for id, body := range s.world.Moving() {
		s.registry.SyncPosition(id, body.Position)
		s.registry.SyncVelocity(id, body.Velocity)
	}
}

// contactSystem turns begin-contact events into score and destruction.
type contactSystem struct{}

func (contactSystem) Execute(frame *Frame) {
	frame.Session.resolve(frame.Session.contacts, frame.Commands)
}

func (s *Session) resolve(contacts []physics.Contact, commands *Commands) {
	for _, c := range contacts {
		r := Classify(c)
		if r.Outcome == OutcomeIgnore {
			continue
		}
		if !s.registry.Alive(r.Target) || !s.registry.Alive(r.Other) {
			continue
		}

		switch r.Outcome {
		case OutcomeProjectileHit:
			s.award(s.cfg.Award(r.Outcome))
			s.destroyLater(r.Target)
			s.destroy(r.Other, false)
		case OutcomeAvatarHit:
			s.award(s.cfg.Award(r.Outcome))
			commands.Destroy(r.Target, true)
		case OutcomeTargetCollision:
			s.award(s.cfg.Award(r.Outcome))
			s.award(s.cfg.Award(r.Outcome))
			s.destroyLater(r.Target)
			s.destroyLater(r.Other)
		}
	}
}

// timerSystem fires delayed actions that are due.
type timerSystem struct{}

func (timerSystem) Execute(frame *Frame) {
	s := frame.Session
	s.timers.Advance(s.state.Elapsed, s.registry.Alive)
}

// fadeSystem fades new targets in linearly.
type fadeSystem struct{}

func (fadeSystem) Execute(frame *Frame) {
	s := frame.Session
	for id, born := range s.fades {
		if !s.registry.Alive(id) {
			delete(s.fades, id)
			continue
		}
		t := float64(s.state.Elapsed-born) / float64(s.cfg.FadeDuration)
		if t >= 1 {
			t = 1
			delete(s.fades, id)
		}
		s.registry.SetOpacity(id, t)
	}
}

// presentSystem forwards the tick's changes to the presenter.
type presentSystem struct{}

func (presentSystem) Execute(frame *Frame) {
	s := frame.Session
	s.registry.DrainDirty(func(e *ecs.Entity) {
		s.presenter.OnEntityUpdated(e.Id, e.VisualPosition(), e.Orientation, e.Opacity)
	})
	frame.Commands.Defer(s.publish)
}
