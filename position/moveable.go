package position

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/gdxcore/ecs"
	"github.com/plus3/gdxcore/interpolation"
	"github.com/plus3/gdxcore/tween"
)

// Moveable moves an entity's global translation toward a target once.
type Moveable struct {
	position *Position
	tween    *tween.Tween[mgl32.Vec3]
}

// NewMoveable moves entity from its current global translation to target over
// duration seconds. A nil interpolation means linear. The entity must hold a
// Position.
func NewMoveable(entity *ecs.Entity, target mgl32.Vec3, duration float32, i interpolation.Interpolation) *Moveable {
	position := Type.Get(entity)
	return &Moveable{
		position: position,
		tween:    tween.NewVec3(position.Translation(), target, duration, i),
	}
}

// NewMoveableTo moves entity to the current global translation of target.
func NewMoveableTo(entity, target *ecs.Entity, duration float32, i interpolation.Interpolation) *Moveable {
	return NewMoveable(entity, Type.Get(target).Translation(), duration, i)
}

// Update advances the move and reports whether it has finished.
func (m *Moveable) Update(delta float32) bool {
	result := m.tween.Update(delta)
	m.position.SetGlobalTranslation(XYZ(result.Value)...)
	return result.Percent >= 1
}

// Percent returns the completion of the move.
func (m *Moveable) Percent() float32 {
	return m.tween.Current().Percent
}
