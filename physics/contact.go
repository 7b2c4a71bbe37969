package physics

import (
	"cmp"

	"github.com/plus3/cubekiller/ecs"
)

// Contact reports that two bodies started touching during a step.
// A is always the smaller id.
type Contact struct {
	A, B         ecs.EntityId
	KindA, KindB ecs.Kind
}

// Involves reports whether either side of the contact has kind.
func (c Contact) Involves(kind ecs.Kind) bool {
	return c.KindA == kind || c.KindB == kind
}

// pairKey is an unordered body pair, normalized so a < b.
type pairKey struct {
	a, b ecs.EntityId
}

func makePair(a, b ecs.EntityId) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a, b}
}

func compareContacts(x, y Contact) int {
	if c := cmp.Compare(x.A, y.A); c != 0 {
		return c
	}
	return cmp.Compare(x.B, y.B)
}
