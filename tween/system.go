package tween

import (
	"github.com/plus3/gdxcore/ecs"
)

// System advances every enabled tween of every Factory component.
type System struct{}

// NewSystem creates the tween system.
func NewSystem() *System {
	return &System{}
}

func (*System) Name() string { return "TweenSystem" }

func (*System) Query() ecs.EntityQuery {
	return ecs.NewQuery(Type.Id())
}

func (*System) Update(delta float32, entity *ecs.Entity) {
	for _, factory := range Type.All(entity) {
		// Tweens may remove themselves from a bound callback.
		for _, t := range factory.Tweens() {
			if t.Active() {
				t.Advance(delta)
			}
		}
	}
}
