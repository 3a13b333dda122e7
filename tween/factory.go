package tween

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/gdxcore/ecs"
	"github.com/plus3/gdxcore/interpolation"
)

// Type is the component type of Factory. An entity may hold several factories.
var Type = ecs.NewComponentType[*Factory]("TweenFactory")

// Factory is a component owning tweens. Tweens created through it loop by
// default and live until they are removed or the component leaves its entity.
type Factory struct {
	tweens []Runner
}

// NewFactory creates an empty factory component.
func NewFactory() *Factory {
	return &Factory{}
}

func (*Factory) Type() ecs.TypeId { return Type.Id() }

// OnRemoved drops every tween.
func (f *Factory) OnRemoved(*ecs.Entity) {
	f.Clear()
}

// Add registers an existing tween with f.
func Add[T any](f *Factory, t *Tween[T]) *Tween[T] {
	f.tweens = append(f.tweens, t)
	return t
}

// Create builds a tween with the factory defaults (looping, enabled) and registers it.
func Create[T any](f *Factory, shape Shape[T], start, end T, duration float32, i interpolation.Interpolation, opts ...Option) *Tween[T] {
	opts = append([]Option{WithLoop(true)}, opts...)
	return Add(f, New(shape, start, end, duration, i, opts...))
}

// Float creates a float32 tween owned by f.
func (f *Factory) Float(start, end, duration float32, i interpolation.Interpolation, opts ...Option) *Tween[float32] {
	return Create(f, Float, start, end, duration, i, opts...)
}

// Vec2 creates an mgl32.Vec2 tween owned by f.
func (f *Factory) Vec2(start, end mgl32.Vec2, duration float32, i interpolation.Interpolation, opts ...Option) *Tween[mgl32.Vec2] {
	return Create(f, Vec2, start, end, duration, i, opts...)
}

// Vec3 creates an mgl32.Vec3 tween owned by f.
func (f *Factory) Vec3(start, end mgl32.Vec3, duration float32, i interpolation.Interpolation, opts ...Option) *Tween[mgl32.Vec3] {
	return Create(f, Vec3, start, end, duration, i, opts...)
}

// Quat creates a rotation tween owned by f.
func (f *Factory) Quat(start, end mgl32.Quat, duration float32, i interpolation.Interpolation, opts ...Option) *Tween[mgl32.Quat] {
	return Create(f, Quat, start, end, duration, i, opts...)
}

// Remove unregisters t and reports whether it was owned by f.
func (f *Factory) Remove(t Runner) bool {
	idx := slices.Index(f.tweens, t)
	if idx < 0 {
		return false
	}
	f.tweens = slices.Delete(f.tweens, idx, idx+1)
	return true
}

// Clear unregisters every tween.
func (f *Factory) Clear() {
	f.tweens = nil
}

// Tweens returns the registered tweens in creation order.
func (f *Factory) Tweens() []Runner {
	return slices.Clone(f.tweens)
}

// Len returns the number of registered tweens.
func (f *Factory) Len() int {
	return len(f.tweens)
}
