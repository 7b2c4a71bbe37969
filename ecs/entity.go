package ecs

import (
	"image/color"

	"github.com/plus3/cubekiller/vmath"
)

// EntityId identifies an entity for the lifetime of its registry.
// Ids are never reused and zero is never issued.
type EntityId uint64

// Kind is the strongly typed role of an entity.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindAvatar
	KindTarget
	KindProjectile
	KindGround

	kindCount
)

func (k Kind) String() string {
	switch k {
	case KindAvatar:
		return "avatar"
	case KindTarget:
		return "target"
	case KindProjectile:
		return "projectile"
	case KindGround:
		return "ground"
	default:
		return "unknown"
	}
}

// Kinds lists every concrete kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindAvatar, KindTarget, KindProjectile, KindGround}
}

// BodyType controls how the simulation moves a body.
type BodyType uint8

const (
	// BodyDynamic bodies integrate velocity and, if enabled, gravity.
	BodyDynamic BodyType = iota
	// BodyKinematic bodies integrate velocity but ignore gravity.
	BodyKinematic
	// BodyStatic bodies never move and carry no velocity.
	BodyStatic
)

func (t BodyType) String() string {
	switch t {
	case BodyDynamic:
		return "dynamic"
	case BodyKinematic:
		return "kinematic"
	case BodyStatic:
		return "static"
	default:
		return "unknown"
	}
}

// Entity is the single record type stored by the Registry.
type Entity struct {
	Id          EntityId
	Kind        Kind
	Position    vmath.Vec3
	Orientation vmath.Euler
	Velocity    vmath.Vec3
	HalfExtents vmath.Vec3
	Category    Category
	Mask        Category
	Gravity     bool
	Body        BodyType
	Color       color.RGBA
	Opacity     float64
	// Lift is a cosmetic vertical offset for the visual proxy; it never
	// reaches the simulation.
	Lift  float64
	Alive bool

	dirty bool
}

// PhysicsBody describes the entity to the simulation.
func (e *Entity) PhysicsBody() Body {
	return Body{
		Kind:        e.Kind,
		Position:    e.Position,
		Velocity:    e.Velocity,
		HalfExtents: e.HalfExtents,
		Category:    e.Category,
		Mask:        e.Mask,
		Gravity:     e.Gravity,
		Type:        e.Body,
	}
}

// VisualPosition is the rendered position, including Lift.
func (e *Entity) VisualPosition() vmath.Vec3 {
	return e.Position.Add(vmath.Vec3{Y: e.Lift})
}

// Desc carries the initial state for Registry.Create.
// When Category and Mask are both zero the defaults from CollisionFor apply.
type Desc struct {
	Kind        Kind
	Position    vmath.Vec3
	Orientation vmath.Euler
	Velocity    vmath.Vec3
	HalfExtents vmath.Vec3
	Category    Category
	Mask        Category
	Gravity     bool
	Body        BodyType
	Color       color.RGBA
	Opacity     float64
}
