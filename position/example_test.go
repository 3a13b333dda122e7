package position_test

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/gdxcore/ecs"
	"github.com/plus3/gdxcore/position"
)

// ExamplePosition_AddGlobalTranslation shows how a parent's scale affects the
// local translation needed to reach a global target.
func ExamplePosition_AddGlobalTranslation() {
	engine := ecs.NewEngine()

	ship := position.New().SetLocalTranslation(position.X(5)).SetLocalScale(position.X(3))
	turret := position.New()

	parent := engine.Create(func(e *ecs.Entity) { e.Named("ship").Add(ship) })
	engine.Create(func(e *ecs.Entity) { e.Named("turret").Add(turret).AttachTo(parent) })

	turret.AddGlobalTranslation(position.X(5))

	fmt.Printf("global x: %.2f\n", turret.Translation().X())
	fmt.Printf("local x: %.2f\n", turret.LocalTranslation().X())

	// Output:
	// global x: 10.00
	// local x: 1.67
}

// ExampleSimulate asks where a child would end up if its parent moved,
// without moving anything.
func ExampleSimulate() {
	engine := ecs.NewEngine()

	arm := position.New()
	hand := position.New().SetLocalTranslation(position.Y(2))

	shoulder := engine.Create(func(e *ecs.Entity) { e.Add(arm) })
	engine.Create(func(e *ecs.Entity) { e.Add(hand).AttachTo(shoulder) })

	reach := position.Simulate(arm, func(sim *position.Simulation) mgl32.Vec3 {
		sim.Position().AddLocalRotation(position.Z(-90))
		return hand.Translation()
	})

	fmt.Printf("would reach x: %.0f\n", reach.X())
	fmt.Printf("still at y: %.0f\n", hand.Translation().Y())

	// Output:
	// would reach x: 2
	// still at y: 2
}

// ExampleMoveable moves an entity to a target over two seconds.
func ExampleMoveable() {
	engine := ecs.NewEngine()
	p := position.New()
	entity := engine.Create(func(e *ecs.Entity) { e.Add(p) })

	move := position.NewMoveable(entity, mgl32.Vec3{4, 0, 0}, 2, nil)
	for !move.Update(0.5) {
		fmt.Printf("x=%.0f\n", p.Translation().X())
	}
	fmt.Printf("arrived x=%.0f\n", p.Translation().X())

	// Output:
	// x=1
	// x=2
	// x=3
	// arrived x=4
}
