// Package game runs a CubeKiller session: it spawns targets, fires
// projectiles, resolves contacts into score and destruction, and reports
// every scene change to a Presenter.
//
// A Session is driven by calling Tick from a single goroutine. Only Enqueue
// may be called from other goroutines.
package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/plus3/cubekiller/ecs"
	"github.com/plus3/cubekiller/physics"
	"github.com/plus3/cubekiller/random"
	"github.com/plus3/cubekiller/timer"
	"github.com/plus3/cubekiller/vmath"
)

// ErrInvalidPhase is returned when an operation does not apply to the
// current phase.
var ErrInvalidPhase = errors.New("invalid phase")

// Session owns the state, registry and simulation of one game.
type Session struct {
	cfg       Config
	state     State
	world     *physics.World
	registry  *ecs.Registry
	timers    timer.Queue
	scheduler *Scheduler
	queue     commandQueue
	inbox     []Command

	rng       *random.Source
	presenter Presenter
	audio     AudioSink
	logger    *log.Logger

	avatar   ecs.EntityId
	ground   ecs.EntityId
	contacts []physics.Contact
	fades    map[ecs.EntityId]time.Duration

	moves    []move
	bounces  []time.Duration
	steering bool
	steer    vmath.Vec3

	reported    bool
	lastScore   int
	lastTargets int
}

// Option configures a Session.
type Option func(*Session)

func WithPresenter(p Presenter) Option {
	return func(s *Session) {
		if p != nil {
			s.presenter = p
		}
	}
}

func WithAudio(a AudioSink) Option {
	return func(s *Session) {
		if a != nil {
			s.audio = a
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSeed makes spawn placement and colors reproducible.
func WithSeed(seed uint64) Option {
	return func(s *Session) {
		s.rng = random.New(seed)
	}
}

// New validates cfg and builds a session in PhaseLoading.
func New(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:       cfg,
		presenter: NopPresenter{},
		audio:     NopAudio{},
		logger:    log.Default(),
		fades:     make(map[ecs.EntityId]time.Duration),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = random.NewRandom()
	}

	s.world = physics.NewWorld(
		physics.WithGravity(vmath.V3(0, cfg.Gravity, 0)),
		physics.WithCellSize(2*cfg.TargetSize),
	)
	s.registry = ecs.NewRegistry(s.world)
	s.state.Variant = cfg.Variant

	s.scheduler = NewScheduler(s)
	s.scheduler.Register(&timeSystem{})
	s.scheduler.Register(&commandSystem{})
	s.scheduler.Register(&spawnSystem{})
	s.scheduler.Register(&shootSystem{})
	s.scheduler.Register(&motionSystem{})
	s.scheduler.Register(&physicsSystem{})
	s.scheduler.Register(&contactSystem{})
	s.scheduler.Register(&timerSystem{})
	s.scheduler.Register(&fadeSystem{})
	s.scheduler.Register(&presentSystem{})
	return s, nil
}

// Load builds the field, the avatar and the initial targets, then starts play.
func (s *Session) Load() error {
	if s.state.Phase != PhaseLoading {
		return fmt.Errorf("%w: cannot load while %s", ErrInvalidPhase, s.state.Phase)
	}

	ext := s.cfg.GroundExtent
	s.ground = s.create(ecs.Desc{
		Kind:        ecs.KindGround,
		Position:    vmath.V3(0, -0.5, 0),
		HalfExtents: vmath.V3(ext, 0.5, ext),
		Body:        ecs.BodyStatic,
		Color:       random.Hex(0x2c3e50),
		Opacity:     1,
	})
	s.avatar = s.create(ecs.Desc{
		Kind:        ecs.KindAvatar,
		HalfExtents: vmath.V3(0.5, 0.5, 0.5),
		Body:        ecs.BodyKinematic,
		Color:       random.Hex(0xecf0f1),
		Opacity:     1,
	})
	for range s.cfg.InitialTargets {
		s.spawnTarget()
	}

	s.state.Phase = PhasePlaying
	s.publish()
	s.logger.Printf("session loaded: %d targets, %s variant, spawn every %s", s.state.LiveTargets, s.state.Variant, s.cfg.SpawnInterval)
	return nil
}

// Tick advances the session by dt. Outside PhasePlaying it only watches for
// a pause toggle.
func (s *Session) Tick(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	switch s.state.Phase {
	case PhasePlaying:
		s.scheduler.Once(dt)
	case PhasePaused:
		s.inbox = s.queue.drain(s.inbox[:0])
		for _, cmd := range s.inbox {
			if cmd.Kind == CommandTogglePause {
				s.TogglePause()
			}
		}
	}
}

// Run ticks the session at the given interval until ctx is cancelled or the
// session ends.
func (s *Session) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime)
			lastTime = now
			s.Tick(dt)
			if s.state.Phase == PhaseEnded {
				return
			}
		}
	}
}

// Enqueue queues a command for the next tick. It is safe for concurrent use.
func (s *Session) Enqueue(c Command) {
	s.queue.push(c)
}

func (s *Session) Pause() {
	if s.state.Phase != PhasePlaying {
		return
	}
	s.state.Phase = PhasePaused
	s.logger.Printf("session paused at %s", s.state.Elapsed)
}

func (s *Session) Resume() {
	if s.state.Phase != PhasePaused {
		return
	}
	s.state.Phase = PhasePlaying
	s.logger.Printf("session resumed at %s", s.state.Elapsed)
}

func (s *Session) TogglePause() {
	switch s.state.Phase {
	case PhasePlaying:
		s.Pause()
	case PhasePaused:
		s.Resume()
	}
}

// Stop ends the session. Targets and projectiles are removed without
// explosions; score and counters are kept.
func (s *Session) Stop() {
	if s.state.Phase == PhaseEnded {
		return
	}
	for e := range s.registry.All() {
		if e.Kind == ecs.KindTarget || e.Kind == ecs.KindProjectile {
			s.destroy(e.Id, false)
		}
	}
	s.timers.Clear()
	s.moves = nil
	s.bounces = nil
	s.steering = false
	s.state.ShootPending = false
	s.state.Phase = PhaseEnded
	s.publish()
	s.logger.Printf("session ended: score %d after %s", s.state.Score, s.state.Elapsed)
}

// State returns a copy of the game state.
func (s *Session) State() State {
	return s.state
}

func (s *Session) Config() Config {
	return s.cfg
}

func (s *Session) Registry() *ecs.Registry {
	return s.registry
}

func (s *Session) World() *physics.World {
	return s.world
}

// Avatar returns the avatar id, or zero before Load.
func (s *Session) Avatar() ecs.EntityId {
	return s.avatar
}

// Stats returns per-system timing for the tick.
func (s *Session) Stats() *SchedulerStats {
	return s.scheduler.GetStats()
}

// PendingTimers returns the number of delayed actions still queued.
func (s *Session) PendingTimers() int {
	return s.timers.Len()
}

// Aim returns the avatar position and its unit aim direction.
func (s *Session) Aim() (pos, dir vmath.Vec3) {
	e, ok := s.registry.Get(s.avatar)
	if !ok {
		return vmath.Vec3{}, s.cfg.AimOffset.Normalize()
	}
	aim := e.Orientation.ToWorld(e.Position, s.cfg.AimOffset)
	return e.Position, aim.Sub(e.Position).Normalize()
}

func (s *Session) create(desc ecs.Desc) ecs.EntityId {
	id := s.registry.Create(desc)
	e, _ := s.registry.Get(id)
	s.presenter.OnEntityCreated(id, e.Kind, e.VisualPosition(), e.Orientation, e.Color)
	return id
}

// destroy removes a target or projectile. Explosions sample the entity's
// transform now, not when the destruction was requested. It reports false
// if the entity is already gone.
func (s *Session) destroy(id ecs.EntityId, explode bool) bool {
	e, ok := s.registry.Get(id)
	if !ok {
		return false
	}
	kind := e.Kind
	if kind == ecs.KindAvatar || kind == ecs.KindGround {
		return false
	}

	if explode {
		s.presenter.OnExplosion(e.VisualPosition(), e.Orientation, e.Color)
		s.audio.Play(SoundExplosion, s.rng.Float(0.9, 1.1))
	}

	s.registry.Destroy(id)
	delete(s.fades, id)
	s.presenter.OnEntityDestroyed(id)

	if kind == ecs.KindTarget {
		s.state.LiveTargets--
		s.state.Destroyed++
	}
	return true
}

// destroyLater explodes a target after the hit delay.
func (s *Session) destroyLater(id ecs.EntityId) {
	s.timers.Schedule(s.state.Elapsed+s.cfg.HitDelay, id, func(time.Duration) {
		s.destroy(id, true)
	})
}

func (s *Session) award(points int) {
	if points > 0 {
		s.state.Score += points
	}
}

func (s *Session) publish() {
	if s.reported && s.lastScore == s.state.Score && s.lastTargets == s.state.LiveTargets {
		return
	}
	s.reported = true
	s.lastScore = s.state.Score
	s.lastTargets = s.state.LiveTargets
	s.presenter.OnScore(s.state.Score, s.state.LiveTargets)
}
