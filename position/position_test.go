package position_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/gdxcore/ecs"
	"github.com/plus3/gdxcore/position"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 1e-3

func assertVec3(t *testing.T, expected, actual mgl32.Vec3, msgAndArgs ...any) {
	t.Helper()
	for i := range expected {
		assert.InDelta(t, expected[i], actual[i], epsilon, msgAndArgs...)
	}
}

// assertQuat compares (x, y, z, w) components.
func assertQuat(t *testing.T, expected [4]float32, actual mgl32.Quat) {
	t.Helper()
	got := [4]float32{actual.V[0], actual.V[1], actual.V[2], actual.W}
	for i := range expected {
		assert.InDelta(t, expected[i], got[i], epsilon, "expected %v, got %v", expected, got)
	}
}

func newEntity(engine *ecs.Engine, name string) (*ecs.Entity, *position.Position) {
	p := position.New()
	entity := engine.Create(func(e *ecs.Entity) { e.Named(name).Add(p) })
	return entity, p
}

func TestLocalScaleThenGlobalTranslation(t *testing.T) {
	engine := ecs.NewEngine()
	parent, parentPosition := newEntity(engine, "parent")
	child, childPosition := newEntity(engine, "child")
	child.AttachTo(parent)

	parentPosition.SetLocalTranslation(position.X(5))
	parentPosition.AddLocalScale(position.X(2))
	assert.InDelta(t, 3, parentPosition.Scale().X(), epsilon)
	assert.InDelta(t, 3, childPosition.Scale().X(), epsilon)
	assertVec3(t, mgl32.Vec3{5, 0, 0}, childPosition.Translation())

	childPosition.AddGlobalTranslation(position.X(5))
	assertVec3(t, mgl32.Vec3{10, 0, 0}, childPosition.Translation())
	assertVec3(t, mgl32.Vec3{5.0 / 3.0, 0, 0}, childPosition.LocalTranslation())

	childPosition.SetLocalTranslation(position.X(0))
	childPosition.AddLocalTranslation(position.X(5))
	assertVec3(t, mgl32.Vec3{20, 0, 0}, childPosition.Translation())
}

func TestSetGlobalTranslation(t *testing.T) {
	engine := ecs.NewEngine()
	parent, parentPosition := newEntity(engine, "parent")
	child, childPosition := newEntity(engine, "child")
	child.AttachTo(parent)
	parentPosition.SetLocalTranslation(position.X(1), position.Y(2)).SetLocalScale(position.X(2), position.Y(2), position.Z(2))

	childPosition.SetGlobalTranslation(position.X(7))
	assertVec3(t, mgl32.Vec3{7, 2, 0}, childPosition.Translation())
	assertVec3(t, mgl32.Vec3{3, 0, 0}, childPosition.LocalTranslation())

	childPosition.SetGlobalTranslation(position.X(7))
	assertVec3(t, mgl32.Vec3{3, 0, 0}, childPosition.LocalTranslation())

	childPosition.SetGlobalTranslation(position.Y(12), position.Z(-4))
	assertVec3(t, mgl32.Vec3{7, 12, -4}, childPosition.Translation())
	assertVec3(t, mgl32.Vec3{3, 5, -2}, childPosition.LocalTranslation())
}

func TestAddLocalRotationWrapsAround(t *testing.T) {
	tests := []struct {
		name  string
		axis  func(float32) position.Axis
		steps [4][4]float32
	}{
		{
			name: "y",
			axis: position.Y,
			steps: [4][4]float32{
				{0, 0.707, 0, 0.707},
				{0, 1, 0, 0},
				{0, 0.707, 0, -0.707},
				{0, 0, 0, -1},
			},
		},
		{
			name: "x",
			axis: position.X,
			steps: [4][4]float32{
				{0.707, 0, 0, 0.707},
				{1, 0, 0, 0},
				{0.707, 0, 0, -0.707},
				{0, 0, 0, -1},
			},
		},
		{
			name: "z",
			axis: position.Z,
			steps: [4][4]float32{
				{0, 0, 0.707, 0.707},
				{0, 0, 1, 0},
				{0, 0, 0.707, -0.707},
				{0, 0, 0, -1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := position.New()
			for _, expected := range tt.steps {
				p.AddLocalRotation(tt.axis(90))
				assertQuat(t, expected, p.LocalQuaternion())
			}
		})
	}
}

func TestGlobalRotationComposes(t *testing.T) {
	engine := ecs.NewEngine()
	parent, parentPosition := newEntity(engine, "parent")
	child, childPosition := newEntity(engine, "child")
	child.AttachTo(parent)

	parentPosition.AddLocalRotation(position.X(90))
	childPosition.AddLocalRotation(position.X(45))

	assert.InDelta(t, 135, childPosition.Rotation().X(), epsilon)
	assert.InDelta(t, 45, childPosition.LocalRotation().X(), epsilon)
}

func TestSetLocalRotation(t *testing.T) {
	p := position.New()
	p.SetLocalRotation(position.Y(30))
	p.SetLocalRotation(position.X(20))

	assertVec3(t, mgl32.Vec3{20, 30, 0}, p.LocalRotation())
}

func TestAddRotationAround(t *testing.T) {
	p := position.New().SetLocalTranslation(position.X(20))
	pivot := mgl32.Vec3{10, 0, 0}

	p.AddRotationAround(pivot, position.Z(90))
	assertVec3(t, mgl32.Vec3{10, 10, 0}, p.Translation())

	p.AddRotationAround(pivot, position.Z(90))
	assertVec3(t, mgl32.Vec3{0, 0, 0}, p.Translation())

	p.AddRotationAround(pivot, position.Z(-180))
	assertVec3(t, mgl32.Vec3{20, 0, 0}, p.Translation())
}

func TestAddRotationAroundUnderParent(t *testing.T) {
	engine := ecs.NewEngine()
	parent, parentPosition := newEntity(engine, "parent")
	child, childPosition := newEntity(engine, "child")
	child.AttachTo(parent)

	parentPosition.SetLocalTranslation(position.Y(5)).AddLocalRotation(position.Z(90))
	childPosition.SetGlobalTranslation(position.X(20), position.Y(0))
	assertVec3(t, mgl32.Vec3{20, 0, 0}, childPosition.Translation())

	childPosition.AddRotationAround(mgl32.Vec3{10, 0, 0}, position.Z(90))
	assertVec3(t, mgl32.Vec3{10, 10, 0}, childPosition.Translation())
	assertVec3(t, mgl32.Vec3{-1, 0, 0}, childPosition.Quaternion().Rotate(mgl32.Vec3{1, 0, 0}))
}

func TestMove(t *testing.T) {
	p := position.New()
	p.Move(position.X(10))
	assertVec3(t, mgl32.Vec3{10, 0, 0}, p.Translation())

	turned := position.New().AddLocalRotation(position.Y(90))
	turned.Move(position.X(10))
	assertVec3(t, mgl32.Vec3{0, 0, -10}, turned.Translation())
}

func TestSimulation(t *testing.T) {
	t.Run("rollback restores the exact state", func(t *testing.T) {
		p := position.New().SetLocalTranslation(position.X(1.5)).AddLocalRotation(position.Y(33))
		before := p.LocalTransformation()
		beforeRotation := p.LocalQuaternion()

		p.Simulation(func(sim *position.Simulation) {
			sim.Position().AddLocalScale(position.X(1)).AddLocalRotation(position.Z(12)).Move(position.Y(4))
			assert.InDelta(t, 2, p.Scale().X(), epsilon)
			sim.Rollback()
			sim.Rollback()
		})

		assert.Equal(t, before, p.LocalTransformation())
		assert.Equal(t, beforeRotation, p.LocalQuaternion())
		assert.Equal(t, mgl32.Vec3{1, 1, 1}, p.LocalScale())
	})

	t.Run("commit keeps the mutations", func(t *testing.T) {
		p := position.New()
		p.Simulation(func(sim *position.Simulation) {
			sim.Position().AddLocalScale(position.X(1))
			sim.Commit()
			sim.Rollback()
		})
		assert.InDelta(t, 2, p.Scale().X(), epsilon)
	})

	t.Run("undecided blocks roll back", func(t *testing.T) {
		p := position.New()
		p.Simulation(func(sim *position.Simulation) {
			sim.Position().SetLocalTranslation(position.X(100))
			assert.False(t, sim.Decided())
		})
		assert.Equal(t, mgl32.Vec3{}, p.LocalTranslation())
	})

	t.Run("panicking blocks roll back", func(t *testing.T) {
		p := position.New()
		assert.Panics(t, func() {
			p.Simulation(func(sim *position.Simulation) {
				sim.Position().SetLocalTranslation(position.X(100))
				panic("boom")
			})
		})
		assert.Equal(t, mgl32.Vec3{}, p.LocalTranslation())
	})

	t.Run("simulate returns the block result", func(t *testing.T) {
		engine := ecs.NewEngine()
		parent, parentPosition := newEntity(engine, "parent")
		child, childPosition := newEntity(engine, "child")
		child.AttachTo(parent)
		childPosition.SetLocalTranslation(position.X(1))

		landing := position.Simulate(parentPosition, func(sim *position.Simulation) mgl32.Vec3 {
			sim.Position().AddGlobalTranslation(position.Y(3))
			return childPosition.Translation()
		})

		assertVec3(t, mgl32.Vec3{1, 3, 0}, landing)
		assertVec3(t, mgl32.Vec3{1, 0, 0}, childPosition.Translation())
	})
}

func TestMoveable(t *testing.T) {
	engine := ecs.NewEngine()
	entity, p := newEntity(engine, "mover")

	moveable := position.NewMoveable(entity, mgl32.Vec3{10, 10, 10}, 10, nil)

	assert.False(t, moveable.Update(5))
	assertVec3(t, mgl32.Vec3{5, 5, 5}, p.Translation())

	assert.True(t, moveable.Update(5))
	assert.Equal(t, mgl32.Vec3{10, 10, 10}, p.Translation())
	assert.Equal(t, float32(1), moveable.Percent())

	target, targetPosition := newEntity(engine, "target")
	targetPosition.SetLocalTranslation(position.X(-4))
	back := position.NewMoveableTo(entity, target, 1, nil)
	assert.True(t, back.Update(2))
	assertVec3(t, mgl32.Vec3{-4, 0, 0}, p.Translation())
}

// geometry counts position updates like a bounding box would.
type geometry struct {
	updates int
}

var geometryType = ecs.NewComponentType[*geometry]("Geometry")

func (*geometry) Type() ecs.TypeId { return geometryType.Id() }

func (g *geometry) OnComponentUpdated(changed ecs.TypeId) {
	if changed == position.Type.Id() {
		g.updates++
	}
}

func TestDirtyPropagation(t *testing.T) {
	engine := ecs.NewEngine()
	root, rootPosition := newEntity(engine, "root")
	child, childPosition := newEntity(engine, "child")
	grandchild, grandchildPosition := newEntity(engine, "grandchild")
	child.AttachTo(root)
	grandchild.AttachTo(child)

	bounds := &geometry{}
	grandchild.Add(bounds)

	assertVec3(t, mgl32.Vec3{}, grandchildPosition.Translation())

	rootPosition.SetLocalTranslation(position.X(3))
	assert.Equal(t, 1, bounds.updates)
	assertVec3(t, mgl32.Vec3{3, 0, 0}, grandchildPosition.Translation())

	childPosition.AddLocalTranslation(position.Y(2))
	assert.Equal(t, 2, bounds.updates)
	assertVec3(t, mgl32.Vec3{3, 2, 0}, grandchildPosition.Translation())

	child.Detach()
	assert.Equal(t, 3, bounds.updates)
	assertVec3(t, mgl32.Vec3{0, 2, 0}, grandchildPosition.Translation())
}

// hierarchy is a(x=100) > mid(x=10) > group > leaf(x=1) next to a free
// root b(x=-50). group has no Position.
type hierarchy struct {
	a, b, mid, group, leaf *ecs.Entity
	midPosition            *position.Position
	leafPosition           *position.Position
}

func newHierarchy(engine *ecs.Engine) *hierarchy {
	h := &hierarchy{}
	var aPosition, bPosition *position.Position
	h.a, aPosition = newEntity(engine, "a")
	h.b, bPosition = newEntity(engine, "b")
	h.mid, h.midPosition = newEntity(engine, "mid")
	h.group = engine.Create(func(e *ecs.Entity) { e.Named("group") })
	h.leaf, h.leafPosition = newEntity(engine, "leaf")

	aPosition.SetLocalTranslation(position.X(100))
	bPosition.SetLocalTranslation(position.X(-50))
	h.midPosition.SetLocalTranslation(position.X(10))
	h.leafPosition.SetLocalTranslation(position.X(1))

	h.mid.AttachTo(h.a)
	h.group.AttachTo(h.mid)
	h.leaf.AttachTo(h.group)
	return h
}

func TestHierarchyChanges(t *testing.T) {
	tests := []struct {
		name   string
		change func(h *hierarchy)
		want   mgl32.Vec3
	}{
		{"reparent group without position", func(h *hierarchy) { h.group.AttachTo(h.b) }, mgl32.Vec3{-49, 0, 0}},
		{"detach group without position", func(h *hierarchy) { h.group.Detach() }, mgl32.Vec3{1, 0, 0}},
		{"reparent intermediate position", func(h *hierarchy) { h.mid.AttachTo(h.b) }, mgl32.Vec3{-39, 0, 0}},
		{"detach intermediate position", func(h *hierarchy) { h.mid.Detach() }, mgl32.Vec3{11, 0, 0}},
		{"reparent leaf", func(h *hierarchy) { h.leaf.AttachTo(h.b) }, mgl32.Vec3{-49, 0, 0}},
		{"remove intermediate position", func(h *hierarchy) { h.mid.Remove(h.midPosition) }, mgl32.Vec3{101, 0, 0}},
		{"replace intermediate position", func(h *hierarchy) {
			h.mid.Remove(h.midPosition)
			h.leafPosition.Translation()
			h.mid.Add(position.New().SetLocalTranslation(position.X(20)))
		}, mgl32.Vec3{121, 0, 0}},
		{"move new parent after reparent", func(h *hierarchy) {
			h.group.AttachTo(h.b)
			h.leafPosition.Translation()
			position.Type.Get(h.b).AddLocalTranslation(position.X(40))
		}, mgl32.Vec3{-9, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHierarchy(ecs.NewEngine())
			assertVec3(t, mgl32.Vec3{111, 0, 0}, h.leafPosition.Translation())

			tt.change(h)
			assertVec3(t, tt.want, h.leafPosition.Translation())
			assert.True(t, h.leafPosition.Transformation().ApproxEqualThreshold(
				mgl32.Translate3D(tt.want[0], tt.want[1], tt.want[2]), epsilon))
		})
	}
}

func TestRemovedPositionNotifiesDescendants(t *testing.T) {
	engine := ecs.NewEngine()
	h := newHierarchy(engine)
	bounds := &geometry{}
	h.leaf.Add(bounds)
	h.leafPosition.Translation()

	h.mid.Remove(h.midPosition)
	assert.Equal(t, 1, bounds.updates)
	assert.Nil(t, h.midPosition.Entity())

	h.group.AttachTo(h.b)
	assert.Equal(t, 2, bounds.updates)
}

func TestTransforms(t *testing.T) {
	engine := ecs.NewEngine()
	parent, parentPosition := newEntity(engine, "parent")
	child, childPosition := newEntity(engine, "child")
	child.AttachTo(parent)
	parentPosition.SetLocalTranslation(position.X(2)).SetLocalScale(position.X(2), position.Y(2), position.Z(2))

	global := mgl32.Translate3D(6, 4, 0).Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(90)))
	childPosition.SetGlobalTransform(global)

	assert.True(t, childPosition.Transformation().ApproxEqualThreshold(global, epsilon))
	assertVec3(t, mgl32.Vec3{2, 2, 0}, childPosition.LocalTranslation())
	assertVec3(t, mgl32.Vec3{0.5, 0.5, 0.5}, childPosition.LocalScale())
	assert.InDelta(t, 90, childPosition.Rotation().Z(), epsilon)

	standalone := position.FromTransformation(global)
	assertVec3(t, mgl32.Vec3{6, 4, 0}, standalone.Translation())
}

func TestDeepHierarchyIsRejected(t *testing.T) {
	engine := ecs.NewEngine()
	parent, _ := newEntity(engine, "root")

	require.PanicsWithValue(t, ecs.ErrHierarchyCycle, func() {
		for i := 0; i <= ecs.MaxHierarchyDepth+1; i++ {
			child, _ := newEntity(engine, "link")
			child.AttachTo(parent)
			parent = child
		}
	})
}
