package ecs_test

import (
	"fmt"
	"testing"

	"github.com/plus3/gdxcore/ecs"
)

func BenchmarkCreate(b *testing.B) {
	engine := ecs.NewEngine()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.Create(func(e *ecs.Entity) {
			e.Add(&Position{X: float32(i)}).Add(&Velocity{DX: 1})
		})
	}
}

func BenchmarkCreateDestroy(b *testing.B) {
	engine := ecs.NewEngine()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.Create(func(e *ecs.Entity) { e.Add(&Position{}) }).Destroy()
	}
}

func BenchmarkUpdate(b *testing.B) {
	for _, count := range []int{100, 1000, 10000} {
		b.Run(fmt.Sprintf("entities=%d", count), func(b *testing.B) {
			engine := ecs.NewEngine()
			engine.Register(&benchMovement{})
			for i := 0; i < count; i++ {
				engine.Create(func(e *ecs.Entity) {
					e.Add(&Position{})
					if i%2 == 0 {
						e.Add(&Velocity{DX: 1, DY: 1})
					}
				})
			}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				engine.Update(1.0 / 60)
			}
		})
	}
}

func BenchmarkTypedGet(b *testing.B) {
	engine := ecs.NewEngine()
	entity := engine.Create(func(e *ecs.Entity) { e.Add(&Position{}).Add(&Velocity{}).Add(&Health{}) })

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = HealthType.Get(entity)
	}
}

type benchMovement struct{}

func (benchMovement) Query() ecs.EntityQuery {
	return ecs.NewQuery(PositionType.Id(), VelocityType.Id())
}

func (benchMovement) Update(delta float32, entity *ecs.Entity) {
	position := PositionType.Get(entity)
	velocity := VelocityType.Get(entity)
	position.X += velocity.DX * delta
	position.Y += velocity.DY * delta
}
