package game

import (
	"github.com/plus3/cubekiller/ecs"
	"github.com/plus3/cubekiller/physics"
)

// Outcome is the category of a resolved contact.
type Outcome uint8

const (
	OutcomeIgnore Outcome = iota
	// OutcomeProjectileHit: a projectile struck a target.
	OutcomeProjectileHit
	// OutcomeAvatarHit: the avatar ran into a target.
	OutcomeAvatarHit
	// OutcomeTargetCollision: two targets touched.
	OutcomeTargetCollision
)

func (o Outcome) String() string {
	switch o {
	case OutcomeProjectileHit:
		return "projectile-hit"
	case OutcomeAvatarHit:
		return "avatar-hit"
	case OutcomeTargetCollision:
		return "target-collision"
	default:
		return "ignore"
	}
}

// Resolution is a contact normalized so that Target names the target side.
type Resolution struct {
	Outcome Outcome
	Target  ecs.EntityId
	Other   ecs.EntityId
}

// Classify decides what a contact means from the kinds of its two sides.
// Any contact touching the ground is ignored before anything else.
func Classify(c physics.Contact) Resolution {
	if c.Involves(ecs.KindGround) {
		return Resolution{}
	}

	var (
		target, other ecs.EntityId
		otherKind     ecs.Kind
	)
	switch {
	case c.KindA == ecs.KindTarget:
		target, other, otherKind = c.A, c.B, c.KindB
	case c.KindB == ecs.KindTarget:
		target, other, otherKind = c.B, c.A, c.KindA
	default:
		return Resolution{}
	}

	r := Resolution{Target: target, Other: other}
	switch otherKind {
	case ecs.KindProjectile:
		r.Outcome = OutcomeProjectileHit
	case ecs.KindAvatar:
		r.Outcome = OutcomeAvatarHit
	case ecs.KindTarget:
		r.Outcome = OutcomeTargetCollision
	default:
		return Resolution{}
	}
	return r
}

// Award returns the score for one destroyed target of outcome o.
func (c Config) Award(o Outcome) int {
	switch o {
	case OutcomeProjectileHit:
		return c.ScoreProjectileHit
	case OutcomeAvatarHit:
		return c.ScoreAvatarHit
	case OutcomeTargetCollision:
		return c.ScoreTargetCollision
	default:
		return 0
	}
}
