// Package position implements the transform component and its parent/child
// hierarchy. Every Position holds a local translation, rotation and scale;
// its global transformation is the parent's global transformation times its
// local one, cached and recomputed on read after any change up the tree.
package position

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/gdxcore/ecs"
	"github.com/plus3/gdxcore/interpolation"
)

// Type is the component type of Position.
var Type = ecs.NewComponentType[*Position]("Position")

type transform struct {
	translation mgl32.Vec3
	rotation    mgl32.Quat
	scale       mgl32.Vec3
}

func identity() transform {
	return transform{
		rotation: mgl32.QuatIdent(),
		scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Position is the transform component. All mutators return the receiver so
// calls can be chained.
type Position struct {
	entity *ecs.Entity
	local  transform

	localMatrix    mgl32.Mat4
	globalMatrix   mgl32.Mat4
	globalRotation mgl32.Quat
	localDirty     bool
	globalDirty    bool
}

// New creates a Position at the origin with no rotation and unit scale.
func New() *Position {
	return &Position{
		local:       identity(),
		localDirty:  true,
		globalDirty: true,
	}
}

// FromTransformation creates a Position whose local transformation is m.
func FromTransformation(m mgl32.Mat4) *Position {
	return New().SetLocalTransform(m)
}

func (*Position) Type() ecs.TypeId { return Type.Id() }

// OnAdded binds the Position to its entity.
func (p *Position) OnAdded(entity *ecs.Entity) {
	p.entity = entity
	p.invalidate()
}

// OnRemoved unbinds the Position from its entity. Descendants stop
// inheriting its transform.
func (p *Position) OnRemoved(entity *ecs.Entity) {
	p.entity = nil
	p.globalDirty = true
	entity.ComponentUpdated(Type.Id())
	markDescendants(entity, 0)
}

// OnAttach keeps the local transform; the global one now follows parent.
// Descendants are reached through OnAncestorChanged.
func (p *Position) OnAttach(*ecs.Entity) {
	p.markStale()
}

// OnDetach keeps the local transform; the global one no longer follows parent.
func (p *Position) OnDetach(*ecs.Entity) {
	p.markStale()
}

// OnAncestorChanged marks the global state stale when an entity above this
// one, with or without a Position, was re-parented.
func (p *Position) OnAncestorChanged(*ecs.Entity) {
	p.markStale()
}

// Entity returns the entity owning the Position, if any.
func (p *Position) Entity() *ecs.Entity {
	return p.entity
}

// SetLocalTranslation replaces the given axes of the local translation.
func (p *Position) SetLocalTranslation(axes ...Axis) *Position {
	p.local.translation = setAxes(p.local.translation, axes)
	return p.invalidate()
}

// AddLocalTranslation adds to the given axes of the local translation.
func (p *Position) AddLocalTranslation(axes ...Axis) *Position {
	p.local.translation = addAxes(p.local.translation, axes)
	return p.invalidate()
}

// SetLocalRotation replaces the given Euler angles, in degrees, of the local
// rotation.
func (p *Position) SetLocalRotation(axes ...Axis) *Position {
	p.local.rotation = fromEuler(setAxes(toEuler(p.local.rotation), axes))
	return p.invalidate()
}

// SetLocalQuaternion replaces the local rotation.
func (p *Position) SetLocalQuaternion(q mgl32.Quat) *Position {
	p.local.rotation = q
	return p.invalidate()
}

// AddLocalRotation rotates by the given angles, in degrees, around the local
// axes. The result is not renormalised to a canonical sign, so four quarter
// turns end on the negated identity.
func (p *Position) AddLocalRotation(axes ...Axis) *Position {
	delta := fromEuler(setAxes(mgl32.Vec3{}, axes))
	p.local.rotation = p.local.rotation.Mul(delta)
	return p.invalidate()
}

// SetLocalScale replaces the given axes of the local scale.
func (p *Position) SetLocalScale(axes ...Axis) *Position {
	p.local.scale = setAxes(p.local.scale, axes)
	return p.invalidate()
}

// AddLocalScale adds to the given axes of the local scale.
func (p *Position) AddLocalScale(axes ...Axis) *Position {
	p.local.scale = addAxes(p.local.scale, axes)
	return p.invalidate()
}

// SetLocalTransform replaces translation, rotation and scale with the
// decomposition of m.
func (p *Position) SetLocalTransform(m mgl32.Mat4) *Position {
	p.local.translation, p.local.rotation, p.local.scale = interpolation.Decompose(m)
	return p.invalidate()
}

// SetGlobalTranslation moves the Position so that the given axes of its
// global translation take the given values.
func (p *Position) SetGlobalTranslation(axes ...Axis) *Position {
	target := setAxes(p.Translation(), axes)
	p.local.translation = p.toLocal(target)
	return p.invalidate()
}

// AddGlobalTranslation moves the Position by a global-space delta. Under a
// scaled parent the local translation moves by delta divided by the
// aggregate parent scale.
func (p *Position) AddGlobalTranslation(axes ...Axis) *Position {
	target := addAxes(p.Translation(), axes)
	p.local.translation = p.toLocal(target)
	return p.invalidate()
}

// SetGlobalTransform sets the local transform so that the global one equals m.
func (p *Position) SetGlobalTransform(m mgl32.Mat4) *Position {
	if parent := p.parent(0); parent != nil {
		m = parent.Transformation().Inv().Mul4(m)
	}
	return p.SetLocalTransform(m)
}

// AddRotationAround rotates the Position around pivot, a point in global
// space, by the given Euler angles in degrees. Both its global translation
// and its orientation turn.
func (p *Position) AddRotationAround(pivot mgl32.Vec3, axes ...Axis) *Position {
	delta := fromEuler(setAxes(mgl32.Vec3{}, axes))

	target := pivot.Add(delta.Rotate(p.Translation().Sub(pivot)))

	if parent := p.parent(0); parent != nil {
		parentRotation := parent.Quaternion()
		p.local.rotation = parentRotation.Inverse().Mul(delta).Mul(parentRotation).Mul(p.local.rotation)
	} else {
		p.local.rotation = delta.Mul(p.local.rotation)
	}
	p.local.translation = p.toLocal(target)
	return p.invalidate()
}

// Move translates the Position along its own local axes: the delta is
// rotated by the local rotation before it is added to the local translation.
func (p *Position) Move(axes ...Axis) *Position {
	delta := setAxes(mgl32.Vec3{}, axes)
	p.local.translation = p.local.translation.Add(p.local.rotation.Rotate(delta))
	return p.invalidate()
}

// Translation returns the global translation.
func (p *Position) Translation() mgl32.Vec3 {
	return p.Transformation().Col(3).Vec3()
}

// Rotation returns the global rotation as Euler angles in degrees.
func (p *Position) Rotation() mgl32.Vec3 {
	return toEuler(p.Quaternion())
}

// Quaternion returns the global rotation.
func (p *Position) Quaternion() mgl32.Quat {
	p.resolve(0)
	return p.globalRotation
}

// Scale returns the global scale.
func (p *Position) Scale() mgl32.Vec3 {
	_, _, scale := interpolation.Decompose(p.Transformation())
	return scale
}

// Transformation returns the global transformation matrix.
func (p *Position) Transformation() mgl32.Mat4 {
	p.resolve(0)
	return p.globalMatrix
}

// LocalTranslation returns the local translation.
func (p *Position) LocalTranslation() mgl32.Vec3 {
	return p.local.translation
}

// LocalRotation returns the local rotation as Euler angles in degrees.
func (p *Position) LocalRotation() mgl32.Vec3 {
	return toEuler(p.local.rotation)
}

// LocalQuaternion returns the local rotation.
func (p *Position) LocalQuaternion() mgl32.Quat {
	return p.local.rotation
}

// LocalScale returns the local scale.
func (p *Position) LocalScale() mgl32.Vec3 {
	return p.local.scale
}

// LocalTransformation returns the local transformation matrix.
func (p *Position) LocalTransformation() mgl32.Mat4 {
	if p.localDirty {
		p.localMatrix = interpolation.Compose(p.local.translation, p.local.rotation, p.local.scale)
		p.localDirty = false
	}
	return p.localMatrix
}

// toLocal converts a point in global space to the parent's space.
func (p *Position) toLocal(global mgl32.Vec3) mgl32.Vec3 {
	parent := p.parent(0)
	if parent == nil {
		return global
	}
	return mgl32.TransformCoordinate(global, parent.Transformation().Inv())
}

// parent returns the Position of the nearest ancestor holding one.
func (p *Position) parent(depth int) *Position {
	if p.entity == nil {
		return nil
	}
	ancestor, ok := p.entity.Parent()
	for ok {
		depth++
		if depth > ecs.MaxHierarchyDepth {
			panic(ecs.ErrHierarchyCycle)
		}
		if position, found := Type.Find(ancestor); found {
			return position
		}
		ancestor, ok = ancestor.Parent()
	}
	return nil
}

// resolve recomputes the cached global state if it is stale.
func (p *Position) resolve(depth int) {
	if depth > ecs.MaxHierarchyDepth {
		panic(ecs.ErrHierarchyCycle)
	}
	if !p.globalDirty {
		return
	}

	local := p.LocalTransformation()
	if parent := p.parent(depth); parent != nil {
		parent.resolve(depth + 1)
		p.globalMatrix = parent.globalMatrix.Mul4(local)
		p.globalRotation = parent.globalRotation.Mul(p.local.rotation)
	} else {
		p.globalMatrix = local
		p.globalRotation = p.local.rotation
	}
	p.globalDirty = false
}

// invalidate marks the local state changed.
func (p *Position) invalidate() *Position {
	p.localDirty = true
	p.markGlobalDirty()
	return p
}

// markGlobalDirty marks the global state of p and of every descendant stale
// and notifies their entities.
func (p *Position) markGlobalDirty() {
	p.globalDirty = true
	if p.entity == nil {
		return
	}
	p.entity.ComponentUpdated(Type.Id())
	markDescendants(p.entity, 0)
}

// markStale marks the global state of p stale without walking the tree.
func (p *Position) markStale() {
	p.globalDirty = true
	if p.entity != nil {
		p.entity.ComponentUpdated(Type.Id())
	}
}

func markDescendants(entity *ecs.Entity, depth int) {
	if depth > ecs.MaxHierarchyDepth {
		panic(ecs.ErrHierarchyCycle)
	}
	for _, child := range entity.Children() {
		for _, position := range Type.All(child) {
			position.globalDirty = true
		}
		child.ComponentUpdated(Type.Id())
		markDescendants(child, depth+1)
	}
}
