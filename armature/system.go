package armature

import (
	"github.com/plus3/gdxcore/ecs"
)

// System advances every AnimatedModel.
type System struct{}

// NewSystem creates the animation system.
func NewSystem() *System {
	return &System{}
}

func (*System) Name() string { return "AnimationSystem" }

func (*System) Query() ecs.EntityQuery {
	return ecs.NewQuery(Type.Id())
}

func (*System) Update(delta float32, entity *ecs.Entity) {
	for _, model := range Type.All(entity) {
		model.Update(delta)
	}
}
