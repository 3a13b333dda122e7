package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/gdxcore/ecs"
	"github.com/plus3/gdxcore/position"
)

// BoundingBoxType is the component type of BoundingBox.
var BoundingBoxType = ecs.NewComponentType[*BoundingBox]("BoundingBox")

// BoundingBox is an axis aligned box in the entity's local space. Its world
// corners follow the entity's Position: they are recomputed on the next read
// after the Position reports a change, and the change is forwarded to the
// other components of the entity.
type BoundingBox struct {
	LocalMin mgl32.Vec3
	LocalMax mgl32.Vec3

	entity  *ecs.Entity
	dirty   bool
	corners [8]mgl32.Vec3
	min     mgl32.Vec3
	max     mgl32.Vec3
}

// NewBoundingBox creates a box from two opposite corners.
func NewBoundingBox(a, b mgl32.Vec3) *BoundingBox {
	box := &BoundingBox{dirty: true}
	for i := range 3 {
		box.LocalMin[i] = min(a[i], b[i])
		box.LocalMax[i] = max(a[i], b[i])
	}
	return box
}

// BoxFromTransformation transforms the cube spanning -1 to 1 on every axis
// by m and bounds the result.
func BoxFromTransformation(m mgl32.Mat4) *BoundingBox {
	corners := cubeCorners(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	return boundPoints(corners[:], m)
}

// BoxFromModel bounds every vertex of every primitive of model.
func BoxFromModel(model *Model) *BoundingBox {
	var points []mgl32.Vec3
	for _, primitive := range model.Primitives {
		for _, vertex := range primitive.Vertices {
			points = append(points, vertex.Position)
		}
	}
	if len(points) == 0 {
		return NewBoundingBox(mgl32.Vec3{}, mgl32.Vec3{})
	}
	return boundPoints(points, mgl32.Ident4())
}

func boundPoints(points []mgl32.Vec3, m mgl32.Mat4) *BoundingBox {
	lo := mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	hi := lo.Mul(-1)
	for _, p := range points {
		p = mgl32.TransformCoordinate(p, m)
		for i := range 3 {
			lo[i] = min(lo[i], p[i])
			hi[i] = max(hi[i], p[i])
		}
	}
	return NewBoundingBox(lo, hi)
}

func cubeCorners(lo, hi mgl32.Vec3) [8]mgl32.Vec3 {
	var corners [8]mgl32.Vec3
	for i := range corners {
		for axis := range 3 {
			if i&(1<<axis) == 0 {
				corners[i][axis] = lo[axis]
			} else {
				corners[i][axis] = hi[axis]
			}
		}
	}
	return corners
}

func (*BoundingBox) Type() ecs.TypeId { return BoundingBoxType.Id() }

func (b *BoundingBox) OnAdded(entity *ecs.Entity) {
	b.entity = entity
	b.dirty = true
}

func (b *BoundingBox) OnRemoved(*ecs.Entity) {
	b.entity = nil
	b.dirty = true
}

func (b *BoundingBox) OnComponentUpdated(changed ecs.TypeId) {
	if changed != position.Type.Id() {
		return
	}
	b.dirty = true
	if b.entity != nil {
		b.entity.ComponentUpdated(BoundingBoxType.Id())
	}
}

// Dirty reports whether the world corners are stale.
func (b *BoundingBox) Dirty() bool {
	return b.dirty
}

// Corners returns the eight corners in world space.
func (b *BoundingBox) Corners() [8]mgl32.Vec3 {
	b.resolve()
	return b.corners
}

// Min returns the smallest world-space corner of the box bounding Corners.
func (b *BoundingBox) Min() mgl32.Vec3 {
	b.resolve()
	return b.min
}

// Max returns the largest world-space corner of the box bounding Corners.
func (b *BoundingBox) Max() mgl32.Vec3 {
	b.resolve()
	return b.max
}

// Size returns the local extent of the box.
func (b *BoundingBox) Size() mgl32.Vec3 {
	return b.LocalMax.Sub(b.LocalMin)
}

// Contains reports whether point, in world space, lies inside Min and Max.
func (b *BoundingBox) Contains(point mgl32.Vec3) bool {
	b.resolve()
	for i := range 3 {
		if point[i] < b.min[i] || point[i] > b.max[i] {
			return false
		}
	}
	return true
}

// Touch forces the world corners to be recomputed on the next read, for
// callers that edit LocalMin or LocalMax.
func (b *BoundingBox) Touch() {
	b.dirty = true
	if b.entity != nil {
		b.entity.ComponentUpdated(BoundingBoxType.Id())
	}
}

func (b *BoundingBox) resolve() {
	if !b.dirty {
		return
	}

	world := mgl32.Ident4()
	if b.entity != nil {
		if p, ok := position.Type.Find(b.entity); ok {
			world = p.Transformation()
		}
	}

	b.corners = cubeCorners(b.LocalMin, b.LocalMax)
	b.min = mgl32.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	b.max = b.min.Mul(-1)
	for i, corner := range b.corners {
		corner = mgl32.TransformCoordinate(corner, world)
		b.corners[i] = corner
		for axis := range 3 {
			b.min[axis] = min(b.min[axis], corner[axis])
			b.max[axis] = max(b.max[axis], corner[axis])
		}
	}
	b.dirty = false
}
