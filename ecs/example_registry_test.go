package ecs_test

import (
	"fmt"

	"github.com/plus3/cubekiller/ecs"
	"github.com/plus3/cubekiller/vmath"
)

// ExampleRegistry shows the basic entity lifecycle. Destroy is idempotent,
// so a late delayed callback for an entity that is already gone is harmless.
func ExampleRegistry() {
	registry := ecs.NewRegistry(nil)

	avatar := registry.Create(ecs.Desc{Kind: ecs.KindAvatar})
	target := registry.Create(ecs.Desc{
		Kind:     ecs.KindTarget,
		Position: vmath.V3(3, 0, -4),
	})

	fmt.Printf("targets: %d\n", registry.Count(ecs.KindTarget))

	fmt.Println(registry.Destroy(target))
	fmt.Println(registry.Destroy(target))

	fmt.Printf("targets: %d, avatar alive: %v\n", registry.Count(ecs.KindTarget), registry.Alive(avatar))

	// Output:
	// targets: 1
	// true
	// false
	// targets: 0, avatar alive: true
}
