package ecs

import "github.com/plus3/cubekiller/vmath"

// Body is the physical description of an entity handed to a Simulation.
type Body struct {
	Kind        Kind
	Position    vmath.Vec3
	Velocity    vmath.Vec3
	HalfExtents vmath.Vec3
	Category    Category
	Mask        Category
	Gravity     bool
	Type        BodyType
}

// Simulation is the physics side of the registry. The registry mirrors
// every structural and physical change into it; the simulation only keeps
// entity ids as back-references.
type Simulation interface {
	AddBody(id EntityId, body Body)
	RemoveBody(id EntityId)
	SetVelocity(id EntityId, v vmath.Vec3)
	SetPosition(id EntityId, p vmath.Vec3)
	SetBodyType(id EntityId, t BodyType)
}
