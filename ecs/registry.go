// Package ecs owns every live game object. Entities live in a block arena
// and are addressed through an id index, so ids stay stable while slots are
// recycled.
package ecs

import (
	"iter"
	"math"

	"github.com/kamstrup/intmap"
	"github.com/plus3/cubekiller/vmath"
)

// Registry is the entity store. It is not safe for concurrent use.
type Registry struct {
	arena  arena
	index  *intmap.Map[EntityId, int]
	counts [kindCount]int
	lastId EntityId
	sim    Simulation
	dirty  []EntityId
}

// NewRegistry creates an empty registry. sim may be nil, in which case no
// physical state is mirrored anywhere.
func NewRegistry(sim Simulation) *Registry {
	return &Registry{
		index: intmap.New[EntityId, int](256),
		sim:   sim,
	}
}

// Create allocates an entity from desc and registers its body with the
// simulation.
func (r *Registry) Create(desc Desc) EntityId {
	r.lastId++
	id := r.lastId

	category, mask := desc.Category, desc.Mask
	if category == 0 && mask == 0 {
		category, mask = CollisionFor(desc.Kind)
	}

	e := Entity{
		Id:          id,
		Kind:        desc.Kind,
		Position:    desc.Position,
		Orientation: desc.Orientation,
		Velocity:    desc.Velocity,
		HalfExtents: desc.HalfExtents,
		Category:    category,
		Mask:        mask,
		Gravity:     desc.Gravity,
		Body:        desc.Body,
		Color:       desc.Color,
		Opacity:     desc.Opacity,
		Alive:       true,
	}
	if e.Body == BodyStatic {
		e.Velocity = vmath.Vec3{}
	}

	slot := r.arena.insert(e)
	r.index.Put(id, slot)
	r.counts[e.Kind]++

	if r.sim != nil {
		r.sim.AddBody(id, e.PhysicsBody())
	}
	return id
}

// Destroy removes the entity. It returns false, and changes nothing, when
// the id is unknown or already destroyed.
func (r *Registry) Destroy(id EntityId) bool {
	slot, ok := r.index.Get(id)
	if !ok {
		return false
	}
	e := r.arena.at(slot)
	if e == nil {
		r.index.Del(id)
		return false
	}

	r.counts[e.Kind]--
	e.Alive = false
	r.index.Del(id)
	r.arena.remove(slot)

	if r.sim != nil {
		r.sim.RemoveBody(id)
	}
	return true
}

// Get returns the live entity for id. The pointer is valid until the entity
// is destroyed.
func (r *Registry) Get(id EntityId) (*Entity, bool) {
	slot, ok := r.index.Get(id)
	if !ok {
		return nil, false
	}
	e := r.arena.at(slot)
	return e, e != nil
}

// Alive reports whether id names a live entity.
func (r *Registry) Alive(id EntityId) bool {
	_, ok := r.index.Get(id)
	return ok
}

// SetVelocity updates the velocity of a live entity. Static bodies keep a
// zero velocity.
func (r *Registry) SetVelocity(id EntityId, v vmath.Vec3) {
	e, ok := r.Get(id)
	if !ok {
		return
	}
	if e.Body == BodyStatic {
		v = vmath.Vec3{}
	}
	e.Velocity = v
	r.markDirty(e)
	if r.sim != nil {
		r.sim.SetVelocity(id, v)
	}
}

// SetPosition moves a live entity and teleports its body.
func (r *Registry) SetPosition(id EntityId, p vmath.Vec3) {
	e, ok := r.Get(id)
	if !ok {
		return
	}
	e.Position = p
	r.markDirty(e)
	if r.sim != nil {
		r.sim.SetPosition(id, p)
	}
}

// SyncPosition adopts a position computed by the simulation without
// echoing it back.
func (r *Registry) SyncPosition(id EntityId, p vmath.Vec3) {
	e, ok := r.Get(id)
	if !ok || e.Position == p {
		return
	}
	e.Position = p
	r.markDirty(e)
}

// SyncVelocity adopts a velocity computed by the simulation without
// echoing it back.
func (r *Registry) SyncVelocity(id EntityId, v vmath.Vec3) {
	if e, ok := r.Get(id); ok {
		e.Velocity = v
	}
}

func (r *Registry) SetOrientation(id EntityId, o vmath.Euler) {
	e, ok := r.Get(id)
	if !ok {
		return
	}
	e.Orientation = o
	r.markDirty(e)
}

// SetOpacity clamps opacity to [0, 1].
func (r *Registry) SetOpacity(id EntityId, opacity float64) {
	e, ok := r.Get(id)
	if !ok {
		return
	}
	e.Opacity = math.Max(0, math.Min(1, opacity))
	r.markDirty(e)
}

func (r *Registry) SetLift(id EntityId, lift float64) {
	e, ok := r.Get(id)
	if !ok {
		return
	}
	e.Lift = lift
	r.markDirty(e)
}

// SetBodyType changes how the simulation moves the entity. Switching to
// BodyStatic drops any residual velocity.
func (r *Registry) SetBodyType(id EntityId, t BodyType) {
	e, ok := r.Get(id)
	if !ok {
		return
	}
	e.Body = t
	if t == BodyStatic {
		e.Velocity = vmath.Vec3{}
	}
	if r.sim != nil {
		r.sim.SetBodyType(id, t)
	}
}

func (r *Registry) markDirty(e *Entity) {
	if e.dirty {
		return
	}
	e.dirty = true
	r.dirty = append(r.dirty, e.Id)
}

// DrainDirty calls fn once for every live entity changed since the last
// drain, in the order they were first changed.
func (r *Registry) DrainDirty(fn func(*Entity)) {
	for _, id := range r.dirty {
		e, ok := r.Get(id)
		if !ok {
			continue
		}
		e.dirty = false
		fn(e)
	}
	r.dirty = r.dirty[:0]
}

// Count returns the number of live entities of kind.
func (r *Registry) Count(kind Kind) int {
	if kind >= kindCount {
		return 0
	}
	return r.counts[kind]
}

// Len returns the number of live entities.
func (r *Registry) Len() int {
	return r.index.Len()
}

// All yields every live entity in slot order. Destroying entities during
// iteration is allowed.
func (r *Registry) All() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for slot := range r.arena.slots() {
			if e := r.arena.at(slot); e != nil {
				if !yield(e) {
					return
				}
			}
		}
	}
}

// OfKind yields every live entity of kind.
func (r *Registry) OfKind(kind Kind) iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for e := range r.All() {
			if e.Kind == kind && !yield(e) {
				return
			}
		}
	}
}

// Within yields every live entity whose position lies within radius of center.
func (r *Registry) Within(center vmath.Vec3, radius float64) iter.Seq[*Entity] {
	radiusSq := radius * radius
	return func(yield func(*Entity) bool) {
		for e := range r.All() {
			if e.Position.DistanceSq(center) <= radiusSq && !yield(e) {
				return
			}
		}
	}
}

// Nearest returns the live entity of kind closest to center.
func (r *Registry) Nearest(center vmath.Vec3, kind Kind) (*Entity, bool) {
	var best *Entity
	bestDist := math.Inf(1)
	for e := range r.OfKind(kind) {
		if d := e.Position.DistanceSq(center); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best, best != nil
}
