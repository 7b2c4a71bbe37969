// Package physics is a small in-process simulation of axis-aligned boxes.
// It integrates gravity and velocities, rests falling bodies on the ground,
// and reports contact-begin events filtered by category and mask bits.
package physics

import (
	"iter"
	"math"
	"slices"
	"time"

	"github.com/kamstrup/intmap"
	"github.com/plus3/cubekiller/ecs"
	"github.com/plus3/cubekiller/vmath"
)

const (
	DefaultCellSize = 4.0
)

// DefaultGravity matches the usual scene gravity in metres per second squared.
var DefaultGravity = vmath.V3(0, -9.8, 0)

type body struct {
	id ecs.EntityId
	ecs.Body
}

func (b *body) bounds() (lo, hi vmath.Vec3) {
	return b.Position.Sub(b.HalfExtents), b.Position.Add(b.HalfExtents)
}

// World holds every simulated body. It implements ecs.Simulation and is not
// safe for concurrent use.
type World struct {
	gravity vmath.Vec3
	bodies  []*body
	index   *intmap.Map[ecs.EntityId, int]
	ground  []int

	grid     *spatialGrid
	touching map[pairKey]struct{}
	current  map[pairKey]struct{}
	checked  map[pairKey]struct{}
	contacts []Contact
}

// Option configures a World.
type Option func(*World)

// WithGravity sets the acceleration applied to dynamic bodies with gravity enabled.
func WithGravity(g vmath.Vec3) Option {
	return func(w *World) {
		w.gravity = g
	}
}

// WithCellSize sets the broad-phase cell size. Non-positive sizes are ignored.
func WithCellSize(size float64) Option {
	return func(w *World) {
		if size > 0 {
			w.grid = newSpatialGrid(size)
		}
	}
}

func NewWorld(opts ...Option) *World {
	w := &World{
		gravity:  DefaultGravity,
		index:    intmap.New[ecs.EntityId, int](256),
		grid:     newSpatialGrid(DefaultCellSize),
		touching: make(map[pairKey]struct{}),
		current:  make(map[pairKey]struct{}),
		checked:  make(map[pairKey]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// AddBody registers body under id, replacing any previous body with that id.
func (w *World) AddBody(id ecs.EntityId, b ecs.Body) {
	if b.Type == ecs.BodyStatic {
		b.Velocity = vmath.Vec3{}
	}
	if i, ok := w.index.Get(id); ok {
		w.bodies[i].Body = b
		return
	}
	w.index.Put(id, len(w.bodies))
	w.bodies = append(w.bodies, &body{id: id, Body: b})
}

// RemoveBody drops the body. Unknown ids are ignored.
func (w *World) RemoveBody(id ecs.EntityId) {
	i, ok := w.index.Get(id)
	if !ok {
		return
	}
	last := len(w.bodies) - 1
	if i != last {
		w.bodies[i] = w.bodies[last]
		w.index.Put(w.bodies[i].id, i)
	}
	w.bodies[last] = nil
	w.bodies = w.bodies[:last]
	w.index.Del(id)

	for pair := range w.touching {
		if pair.a == id || pair.b == id {
			delete(w.touching, pair)
		}
	}
}

func (w *World) lookup(id ecs.EntityId) *body {
	i, ok := w.index.Get(id)
	if !ok {
		return nil
	}
	return w.bodies[i]
}

func (w *World) SetVelocity(id ecs.EntityId, v vmath.Vec3) {
	b := w.lookup(id)
	if b == nil || b.Type == ecs.BodyStatic {
		return
	}
	b.Velocity = v
}

func (w *World) SetPosition(id ecs.EntityId, p vmath.Vec3) {
	if b := w.lookup(id); b != nil {
		b.Position = p
	}
}

// SetBodyType changes how the body moves. Static bodies lose their velocity.
func (w *World) SetBodyType(id ecs.EntityId, t ecs.BodyType) {
	b := w.lookup(id)
	if b == nil {
		return
	}
	b.Type = t
	if t == ecs.BodyStatic {
		b.Velocity = vmath.Vec3{}
	}
}

// Position returns the simulated position of id.
func (w *World) Position(id ecs.EntityId) (vmath.Vec3, bool) {
	b := w.lookup(id)
	if b == nil {
		return vmath.Vec3{}, false
	}
	return b.Position, true
}

// Velocity returns the simulated velocity of id.
func (w *World) Velocity(id ecs.EntityId) (vmath.Vec3, bool) {
	b := w.lookup(id)
	if b == nil {
		return vmath.Vec3{}, false
	}
	return b.Velocity, true
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// Touching reports whether a and b were in reportable contact at the end of
// the last step.
func (w *World) Touching(a, b ecs.EntityId) bool {
	_, ok := w.touching[makePair(a, b)]
	return ok
}

// Moving yields the id and state of every non-static body.
func (w *World) Moving() iter.Seq2[ecs.EntityId, ecs.Body] {
	return func(yield func(ecs.EntityId, ecs.Body) bool) {
		for _, b := range w.bodies {
			if b.Type == ecs.BodyStatic {
				continue
			}
			if !yield(b.id, b.Body) {
				return
			}
		}
	}
}

// Step advances the simulation by dt and returns the contacts that began
// during this step, ordered by body ids. The returned slice is reused by the
// next call.
func (w *World) Step(dt time.Duration) []Contact {
	secs := dt.Seconds()
	w.ground = w.ground[:0]

	for i, b := range w.bodies {
		switch b.Type {
		case ecs.BodyDynamic:
			if b.Gravity {
				b.Velocity = b.Velocity.Add(w.gravity.Scale(secs))
			}
			b.Position = b.Position.Add(b.Velocity.Scale(secs))
		case ecs.BodyKinematic:
			b.Position = b.Position.Add(b.Velocity.Scale(secs))
		}
		if b.Kind == ecs.KindGround {
			w.ground = append(w.ground, i)
		}
	}

	w.restOnGround()
	return w.detect()
}

// restOnGround stops gravity bodies that sank into a ground body from above.
// Ground extends without bound in X and Z; its half extents only give it
// thickness.
func (w *World) restOnGround() {
	for _, gi := range w.ground {
		g := w.bodies[gi]
		_, ghi := g.bounds()
		for _, b := range w.bodies {
			if b.Type != ecs.BodyDynamic || !b.Gravity || b.Kind == ecs.KindGround {
				continue
			}
			lo, _ := b.bounds()
			if lo.Y >= ghi.Y || b.Position.Y < g.Position.Y {
				continue
			}
			b.Position.Y = ghi.Y + b.HalfExtents.Y
			if b.Velocity.Y < 0 {
				b.Velocity.Y = 0
			}
		}
	}
}

func (w *World) detect() []Contact {
	w.grid.reset()
	clear(w.current)
	clear(w.checked)
	w.contacts = w.contacts[:0]

	for i, b := range w.bodies {
		if b.Kind == ecs.KindGround {
			continue
		}
		lo, hi := b.bounds()
		w.grid.insert(lo.X, lo.Z, hi.X, hi.Z, i)
	}

	w.grid.eachPair(func(i, j int) {
		w.test(w.bodies[i], w.bodies[j])
	})
	for _, gi := range w.ground {
		for j, b := range w.bodies {
			if j != gi {
				w.test(w.bodies[gi], b)
			}
		}
	}

	for pair := range w.current {
		if _, was := w.touching[pair]; was {
			continue
		}
		a, b := w.lookup(pair.a), w.lookup(pair.b)
		w.contacts = append(w.contacts, Contact{A: pair.a, B: pair.b, KindA: a.Kind, KindB: b.Kind})
	}
	w.touching, w.current = w.current, w.touching
	slices.SortFunc(w.contacts, compareContacts)
	return w.contacts
}

func (w *World) test(a, b *body) {
	pair := makePair(a.id, b.id)
	if _, done := w.checked[pair]; done {
		return
	}
	w.checked[pair] = struct{}{}

	if !ecs.Reportable(a.Category, a.Mask, b.Category, b.Mask) {
		return
	}
	if overlaps(a, b) {
		w.current[pair] = struct{}{}
	}
}

// overlaps is a strict AABB test; boxes that only share a face do not touch.
// Ground only takes part through its height.
func overlaps(a, b *body) bool {
	d := a.Position.Sub(b.Position)
	if a.Kind == ecs.KindGround || b.Kind == ecs.KindGround {
		return math.Abs(d.Y) < a.HalfExtents.Y+b.HalfExtents.Y
	}
	return math.Abs(d.X) < a.HalfExtents.X+b.HalfExtents.X &&
		math.Abs(d.Y) < a.HalfExtents.Y+b.HalfExtents.Y &&
		math.Abs(d.Z) < a.HalfExtents.Z+b.HalfExtents.Z
}
