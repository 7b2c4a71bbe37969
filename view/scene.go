// Package view keeps a render-side copy of the game scene. The tick
// goroutine writes to it through the game.Presenter methods and render
// goroutines read consistent snapshots.
package view

import (
	"cmp"
	"image/color"
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/plus3/cubekiller/ecs"
	"github.com/plus3/cubekiller/game"
	"github.com/plus3/cubekiller/random"
	"github.com/plus3/cubekiller/vmath"
)

const (
	particlesPerExplosion = 24
	particleSpeed         = 4.0
	particleGravity       = -6.0
)

// Sprite is the drawable state of one entity.
type Sprite struct {
	Id          ecs.EntityId
	Kind        ecs.Kind
	Position    vmath.Vec3
	Orientation vmath.Euler
	Color       color.RGBA
	Opacity     float64
}

// Particle is one fragment of an explosion.
type Particle struct {
	Position vmath.Vec3
	Velocity vmath.Vec3
	Color    color.RGBA
	Age      time.Duration
	Life     time.Duration
}

// Alpha fades linearly over the particle's life.
func (p Particle) Alpha() float64 {
	if p.Life <= 0 {
		return 0
	}
	return math.Max(0, 1-float64(p.Age)/float64(p.Life))
}

// Snapshot is a copy of the scene at one instant.
type Snapshot struct {
	Sprites     []Sprite
	Particles   []Particle
	Score       int
	LiveTargets int
	Explosions  int
}

// Avatar returns the avatar sprite, if present.
func (s Snapshot) Avatar() (Sprite, bool) {
	for _, sp := range s.Sprites {
		if sp.Kind == ecs.KindAvatar {
			return sp, true
		}
	}
	return Sprite{}, false
}

// Scene implements game.Presenter.
type Scene struct {
	mu         sync.Mutex
	sprites    map[ecs.EntityId]*Sprite
	particles  []Particle
	rng        *random.Source
	explosions int

	score       atomic.Int64
	liveTargets atomic.Int64
}

func NewScene() *Scene {
	return &Scene{
		sprites: make(map[ecs.EntityId]*Sprite),
		rng:     random.NewRandom(),
	}
}

func (s *Scene) OnEntityCreated(id ecs.EntityId, kind ecs.Kind, pos vmath.Vec3, orient vmath.Euler, c color.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()

	opacity := 1.0
	if kind == ecs.KindTarget {
		opacity = 0
	}
	s.sprites[id] = &Sprite{Id: id, Kind: kind, Position: pos, Orientation: orient, Color: c, Opacity: opacity}
}

func (s *Scene) OnEntityUpdated(id ecs.EntityId, pos vmath.Vec3, orient vmath.Euler, opacity float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sp, ok := s.sprites[id]
	if !ok {
		return
	}
	sp.Position = pos
	sp.Orientation = orient
	sp.Opacity = opacity
}

func (s *Scene) OnEntityDestroyed(id ecs.EntityId) {
	s.mu.Lock()
	delete(s.sprites, id)
	s.mu.Unlock()
}

// OnExplosion scatters particles from pos in the entity's color.
func (s *Scene) OnExplosion(pos vmath.Vec3, orient vmath.Euler, c color.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.explosions++
	for range particlesPerExplosion {
		local := vmath.V3(s.rng.Float(-1, 1), s.rng.Float(0.2, 1), s.rng.Float(-1, 1)).Normalize()
		s.particles = append(s.particles, Particle{
			Position: pos,
			Velocity: orient.Rotate(local).Scale(particleSpeed * s.rng.Float(0.5, 1)),
			Color:    c,
			Life:     time.Duration(s.rng.Float(0.6, 1.0) * float64(time.Second)),
		})
	}
}

// OnScore may be called from any goroutine; the last write wins.
func (s *Scene) OnScore(score, liveTargets int) {
	s.score.Store(int64(score))
	s.liveTargets.Store(int64(liveTargets))
}

// Score returns the last reported score and live target count.
func (s *Scene) Score() (score, liveTargets int) {
	return int(s.score.Load()), int(s.liveTargets.Load())
}

// Advance ages particles by dt and drops the expired ones.
func (s *Scene) Advance(dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	secs := dt.Seconds()
	kept := s.particles[:0]
	for _, p := range s.particles {
		p.Age += dt
		if p.Age >= p.Life {
			continue
		}
		p.Velocity.Y += particleGravity * secs
		p.Position = p.Position.Add(p.Velocity.Scale(secs))
		kept = append(kept, p)
	}
	clear(s.particles[len(kept):])
	s.particles = kept
}

// Snapshot copies the scene. Sprites are ordered by kind, then id, so that
// ground draws first and the avatar draws under targets.
func (s *Scene) Snapshot() Snapshot {
	s.mu.Lock()
	snap := Snapshot{
		Sprites:    make([]Sprite, 0, len(s.sprites)),
		Particles:  slices.Clone(s.particles),
		Explosions: s.explosions,
	}
	for _, sp := range s.sprites {
		snap.Sprites = append(snap.Sprites, *sp)
	}
	s.mu.Unlock()

	slices.SortFunc(snap.Sprites, func(a, b Sprite) int {
		if c := cmp.Compare(drawOrder(a.Kind), drawOrder(b.Kind)); c != 0 {
			return c
		}
		return cmp.Compare(a.Id, b.Id)
	})
	snap.Score, snap.LiveTargets = s.Score()
	return snap
}

func drawOrder(k ecs.Kind) int {
	switch k {
	case ecs.KindGround:
		return 0
	case ecs.KindAvatar:
		return 1
	case ecs.KindTarget:
		return 2
	default:
		return 3
	}
}

var _ game.Presenter = (*Scene)(nil)
