package physics_test

import (
	"testing"
	"time"

	"github.com/plus3/cubekiller/ecs"
	"github.com/plus3/cubekiller/physics"
	"github.com/plus3/cubekiller/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unit = vmath.V3(0.5, 0.5, 0.5)

func bodyOf(kind ecs.Kind, pos vmath.Vec3) ecs.Body {
	cat, mask := ecs.CollisionFor(kind)
	return ecs.Body{
		Kind:        kind,
		Position:    pos,
		HalfExtents: unit,
		Category:    cat,
		Mask:        mask,
		Type:        ecs.BodyKinematic,
	}
}

func TestIntegratesVelocity(t *testing.T) {
	w := physics.NewWorld()
	b := bodyOf(ecs.KindProjectile, vmath.Vec3{})
	b.Velocity = vmath.V3(0, 0, -8)
	w.AddBody(1, b)

	w.Step(500 * time.Millisecond)

	pos, ok := w.Position(1)
	require.True(t, ok)
	assert.True(t, pos.ApproxEqual(vmath.V3(0, 0, -4), 1e-9), "got %v", pos)
}

func TestGravityOnlyForDynamicBodiesThatWantIt(t *testing.T) {
	w := physics.NewWorld(physics.WithGravity(vmath.V3(0, -10, 0)))

	falling := bodyOf(ecs.KindTarget, vmath.V3(0, 10, 0))
	falling.Type = ecs.BodyDynamic
	falling.Gravity = true
	w.AddBody(1, falling)

	floating := bodyOf(ecs.KindTarget, vmath.V3(10, 10, 0))
	floating.Type = ecs.BodyDynamic
	w.AddBody(2, floating)

	kinematic := bodyOf(ecs.KindTarget, vmath.V3(20, 10, 0))
	kinematic.Gravity = true
	w.AddBody(3, kinematic)

	w.Step(time.Second)

	v, _ := w.Velocity(1)
	assert.InDelta(t, -10, v.Y, 1e-9)
	p, _ := w.Position(2)
	assert.Equal(t, 10.0, p.Y)
	p, _ = w.Position(3)
	assert.Equal(t, 10.0, p.Y)
}

func TestStaticBodiesDropVelocity(t *testing.T) {
	w := physics.NewWorld()
	b := bodyOf(ecs.KindProjectile, vmath.Vec3{})
	b.Velocity = vmath.V3(1, 0, 0)
	w.AddBody(1, b)

	w.SetBodyType(1, ecs.BodyStatic)
	v, _ := w.Velocity(1)
	assert.Equal(t, vmath.Vec3{}, v)

	w.SetVelocity(1, vmath.V3(5, 5, 5))
	w.Step(time.Second)
	p, _ := w.Position(1)
	assert.Equal(t, vmath.Vec3{}, p)
}

func TestBodiesRestOnGround(t *testing.T) {
	w := physics.NewWorld()
	ground := bodyOf(ecs.KindGround, vmath.V3(0, -0.5, 0))
	ground.HalfExtents = vmath.V3(50, 0.5, 50)
	ground.Type = ecs.BodyStatic
	w.AddBody(1, ground)

	target := bodyOf(ecs.KindTarget, vmath.V3(2, 3, 2))
	target.Type = ecs.BodyDynamic
	target.Gravity = true
	w.AddBody(2, target)

	for range 120 {
		contacts := w.Step(time.Second / 60)
		assert.Empty(t, contacts, "ground never reports contacts")
	}

	p, _ := w.Position(2)
	v, _ := w.Velocity(2)
	assert.InDelta(t, 0.5, p.Y, 1e-9)
	assert.Equal(t, 0.0, v.Y)
}

func TestGroundHasNoEdge(t *testing.T) {
	w := physics.NewWorld()
	ground := bodyOf(ecs.KindGround, vmath.V3(0, -0.5, 0))
	ground.HalfExtents = vmath.V3(10, 0.5, 10)
	ground.Type = ecs.BodyStatic
	w.AddBody(1, ground)

	far := bodyOf(ecs.KindTarget, vmath.V3(-40, 4, 300))
	far.Type = ecs.BodyDynamic
	far.Gravity = true
	w.AddBody(2, far)

	for range 180 {
		w.Step(time.Second / 60)
	}

	p, _ := w.Position(2)
	assert.InDelta(t, 0.5, p.Y, 1e-9)
	assert.Equal(t, -40.0, p.X)
}

func TestContactBeginsOnce(t *testing.T) {
	w := physics.NewWorld()
	w.AddBody(5, bodyOf(ecs.KindTarget, vmath.V3(0, 0, -3)))
	bullet := bodyOf(ecs.KindProjectile, vmath.Vec3{})
	bullet.Velocity = vmath.V3(0, 0, -1)
	w.AddBody(2, bullet)

	var began []physics.Contact
	for range 40 {
		began = append(began, w.Step(100*time.Millisecond)...)
	}

	require.Len(t, began, 1)
	assert.Equal(t, physics.Contact{A: 2, B: 5, KindA: ecs.KindProjectile, KindB: ecs.KindTarget}, began[0])
	assert.True(t, began[0].Involves(ecs.KindTarget))
	assert.False(t, began[0].Involves(ecs.KindGround))
}

func TestContactReportsAgainAfterSeparating(t *testing.T) {
	w := physics.NewWorld()
	w.AddBody(1, bodyOf(ecs.KindAvatar, vmath.Vec3{}))
	w.AddBody(2, bodyOf(ecs.KindTarget, vmath.V3(0.5, 0, 0)))

	assert.Len(t, w.Step(time.Millisecond), 1)
	assert.True(t, w.Touching(2, 1))
	assert.Empty(t, w.Step(time.Millisecond))

	w.SetPosition(2, vmath.V3(5, 0, 0))
	assert.Empty(t, w.Step(time.Millisecond))
	assert.False(t, w.Touching(1, 2))

	w.SetPosition(2, vmath.V3(0.5, 0, 0))
	assert.Len(t, w.Step(time.Millisecond), 1)
}

func TestMaskFiltering(t *testing.T) {
	w := physics.NewWorld()
	w.AddBody(1, bodyOf(ecs.KindAvatar, vmath.Vec3{}))
	w.AddBody(2, bodyOf(ecs.KindProjectile, vmath.Vec3{}))
	w.AddBody(3, bodyOf(ecs.KindProjectile, vmath.V3(0.1, 0, 0)))

	assert.Empty(t, w.Step(time.Millisecond), "avatar and projectiles do not react to each other")
}

func TestTouchingFacesDoNotCount(t *testing.T) {
	w := physics.NewWorld()
	w.AddBody(1, bodyOf(ecs.KindTarget, vmath.Vec3{}))
	w.AddBody(2, bodyOf(ecs.KindTarget, vmath.V3(1, 0, 0)))

	assert.Empty(t, w.Step(time.Millisecond))
}

func TestLargeBodiesAcrossCells(t *testing.T) {
	w := physics.NewWorld(physics.WithCellSize(1))
	big := bodyOf(ecs.KindTarget, vmath.Vec3{})
	big.HalfExtents = vmath.V3(10, 1, 10)
	w.AddBody(1, big)
	w.AddBody(2, bodyOf(ecs.KindProjectile, vmath.V3(-9, 0, 8)))
	w.AddBody(3, bodyOf(ecs.KindProjectile, vmath.V3(9, 0, -9)))

	contacts := w.Step(time.Millisecond)
	require.Len(t, contacts, 2)
	assert.Equal(t, ecs.EntityId(1), contacts[0].A)
	assert.Equal(t, ecs.EntityId(2), contacts[0].B)
	assert.Equal(t, ecs.EntityId(3), contacts[1].B)
}

func TestRemoveBody(t *testing.T) {
	w := physics.NewWorld()
	w.AddBody(1, bodyOf(ecs.KindAvatar, vmath.Vec3{}))
	w.AddBody(2, bodyOf(ecs.KindTarget, vmath.V3(0.2, 0, 0)))
	w.AddBody(3, bodyOf(ecs.KindTarget, vmath.V3(9, 0, 0)))
	w.Step(time.Millisecond)

	w.RemoveBody(2)
	w.RemoveBody(2)
	w.RemoveBody(42)

	assert.Equal(t, 2, w.Len())
	assert.False(t, w.Touching(1, 2))
	_, ok := w.Position(2)
	assert.False(t, ok)
	p, ok := w.Position(3)
	require.True(t, ok)
	assert.Equal(t, vmath.V3(9, 0, 0), p)

	moving := 0
	for range w.Moving() {
		moving++
	}
	assert.Equal(t, 2, moving)
}

func TestRegistryMirrorsIntoWorld(t *testing.T) {
	w := physics.NewWorld()
	registry := ecs.NewRegistry(w)

	id := registry.Create(ecs.Desc{Kind: ecs.KindProjectile, HalfExtents: unit, Body: ecs.BodyKinematic})
	registry.SetVelocity(id, vmath.V3(2, 0, 0))
	w.Step(time.Second)

	p, ok := w.Position(id)
	require.True(t, ok)
	assert.Equal(t, vmath.V3(2, 0, 0), p)

	registry.Destroy(id)
	assert.Equal(t, 0, w.Len())
}
