package ecs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/plus3/gdxcore/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		generation uint32
		index      uint32
	}{
		{1, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{0, 1},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("generation=%d,index=%d", tt.generation, tt.index), func(t *testing.T) {
			id := ecs.NewEntityId(tt.generation, tt.index)
			assert.Equal(t, tt.generation, id.Generation())
			assert.Equal(t, tt.index, id.Index())
		})
	}
}

func TestCreateEntity(t *testing.T) {
	engine := ecs.NewEngine()

	entity := engine.Create(func(e *ecs.Entity) {
		e.Named("player").Add(&Position{X: 1, Y: 2}).Add(&Velocity{DX: 3})
	})

	assert.NotEqual(t, ecs.NoEntity, entity.Id())
	assert.Equal(t, "player", entity.Name())
	assert.True(t, entity.Alive())
	assert.Equal(t, 1, engine.Count())

	found, ok := engine.Entity(entity.Id())
	require.True(t, ok)
	assert.Same(t, entity, found)

	position := PositionType.Get(entity)
	assert.Equal(t, float32(1), position.X)
	assert.Equal(t, float32(2), position.Y)
	assert.True(t, VelocityType.Has(entity))
	assert.False(t, HealthType.Has(entity))
}

func TestComponentLookupErrors(t *testing.T) {
	engine := ecs.NewEngine()
	entity := engine.Create(func(e *ecs.Entity) {
		e.Named("lookup").Add(&Tag{Value: "a"}).Add(&Tag{Value: "b"})
	})

	_, err := PositionType.Lookup(entity)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ecs.ErrComponentMissing))

	var lookupErr *ecs.LookupError
	require.True(t, errors.As(err, &lookupErr))
	assert.Equal(t, "Position", lookupErr.Component)
	assert.Equal(t, "lookup", lookupErr.EntityName)
	assert.Equal(t, 0, lookupErr.Count)

	_, err = TagType.Lookup(entity)
	assert.ErrorIs(t, err, ecs.ErrComponentAmbiguous)

	assert.Panics(t, func() { PositionType.Get(entity) })

	tags := TagType.All(entity)
	require.Len(t, tags, 2)
	assert.Equal(t, "a", tags[0].Value)
	assert.Equal(t, "b", tags[1].Value)

	first, ok := TagType.Find(entity)
	require.True(t, ok)
	assert.Equal(t, "a", first.Value)
}

func TestRemoveComponent(t *testing.T) {
	engine := ecs.NewEngine()
	hooked := &Hooked{}
	tag := &Tag{Value: "x"}
	entity := engine.Create(func(e *ecs.Entity) {
		e.AddAll(hooked, tag, &Tag{Value: "y"})
	})

	signature := entity.Signature()

	assert.True(t, entity.Remove(tag))
	assert.False(t, entity.Remove(tag))
	assert.True(t, TagType.Has(entity))
	assert.Equal(t, signature, entity.Signature())

	assert.Equal(t, 1, entity.RemoveAll(TagType.Id()))
	assert.False(t, TagType.Has(entity))
	assert.NotEqual(t, signature, entity.Signature())

	assert.True(t, entity.Remove(hooked))
	assert.Equal(t, []string{"added", "removed"}, hooked.Events)
	assert.Empty(t, entity.Components())
}

func TestSignatureMatchesTypeSet(t *testing.T) {
	engine := ecs.NewEngine()
	a := engine.Create(func(e *ecs.Entity) { e.Add(&Position{}).Add(&Velocity{}) })
	b := engine.Create(func(e *ecs.Entity) { e.Add(&Velocity{}).Add(&Position{}) })
	c := engine.Create(func(e *ecs.Entity) { e.Add(&Position{}) })

	assert.Equal(t, a.Signature(), b.Signature())
	assert.NotEqual(t, a.Signature(), c.Signature())
	assert.Equal(t, a.Types(), b.Types())
}

func TestComponentUpdated(t *testing.T) {
	engine := ecs.NewEngine()
	hooked := &Hooked{}
	entity := engine.Create(func(e *ecs.Entity) {
		e.Add(hooked).Add(&Position{})
	})

	entity.ComponentUpdated(PositionType.Id())
	entity.ComponentUpdated(HookedType.Id())

	assert.Equal(t, []string{"added", "updated:Position"}, hooked.Events)
}

func TestHierarchyHooks(t *testing.T) {
	engine := ecs.NewEngine()
	parent := engine.Create(func(e *ecs.Entity) { e.Named("parent") })
	other := engine.Create(func(e *ecs.Entity) { e.Named("other") })

	hooked := &Hooked{}
	child := engine.Create(func(e *ecs.Entity) { e.Named("child").Add(hooked) })

	child.AttachTo(parent)
	got, ok := child.Parent()
	require.True(t, ok)
	assert.Same(t, parent, got)
	assert.Equal(t, []*ecs.Entity{child}, parent.Children())

	child.AttachTo(other)
	assert.Empty(t, parent.Children())
	assert.Equal(t, []*ecs.Entity{child}, other.Children())

	child.Destroy()
	assert.Empty(t, other.Children())
	assert.Equal(t, []string{
		"added",
		"attach:parent",
		"detach:parent",
		"attach:other",
		"detach:other",
		"removed",
	}, hooked.Events)
}

func TestAncestorHooks(t *testing.T) {
	engine := ecs.NewEngine()
	root := engine.Create(func(e *ecs.Entity) { e.Named("root") })
	group := engine.Create(func(e *ecs.Entity) { e.Named("group") })

	own := &Inherit{}
	leaf := engine.Create(func(e *ecs.Entity) { e.Named("leaf").Add(own) })
	deep := &Inherit{}
	engine.Create(func(e *ecs.Entity) { e.Named("deep").Add(deep).AttachTo(leaf) })

	leaf.AttachTo(group)
	assert.Empty(t, own.Moved)
	assert.Equal(t, []string{"leaf"}, deep.Moved)

	group.AttachTo(root)
	group.Detach()
	group.Detach()
	assert.Equal(t, []string{"group", "group"}, own.Moved)
	assert.Equal(t, []string{"leaf", "group", "group"}, deep.Moved)
}

func TestHierarchyCycle(t *testing.T) {
	engine := ecs.NewEngine()
	root := engine.Create(nil)
	child := engine.Create(nil).AttachTo(root)
	grandchild := engine.Create(nil).AttachTo(child)

	assert.PanicsWithValue(t, ecs.ErrHierarchyCycle, func() { root.AttachTo(grandchild) })
	assert.PanicsWithValue(t, ecs.ErrHierarchyCycle, func() { root.AttachTo(root) })

	_, hasParent := root.Parent()
	assert.False(t, hasParent)
}

func TestDestroyCascades(t *testing.T) {
	engine := ecs.NewEngine()
	var events []string
	record := func(name string) *ecs.Entity {
		hooked := &recordingComponent{name: name, events: &events}
		return engine.Create(func(e *ecs.Entity) { e.Named(name).Add(hooked) })
	}

	root := record("root")
	child := record("child").AttachTo(root)
	record("grandchild").AttachTo(child)
	survivor := record("survivor")

	root.Destroy()

	assert.Equal(t, 1, engine.Count())
	assert.False(t, root.Alive())
	assert.False(t, child.Alive())
	assert.True(t, survivor.Alive())
	assert.Equal(t, []string{"grandchild", "child", "root"}, events)

	_, ok := engine.Entity(child.Id())
	assert.False(t, ok)
}

func TestStaleIdDoesNotResolve(t *testing.T) {
	engine := ecs.NewEngine()
	first := engine.Create(nil)
	firstId := first.Id()
	first.Destroy()

	second := engine.Create(nil)
	assert.Equal(t, firstId.Index(), second.Id().Index())
	assert.Equal(t, firstId.Generation()+1, second.Id().Generation())

	_, ok := engine.Entity(firstId)
	assert.False(t, ok)

	assert.PanicsWithValue(t, ecs.ErrEntityDestroyed, func() { first.Add(&Tag{}) })
}

func TestEntitiesIterationOrder(t *testing.T) {
	engine := ecs.NewEngine()
	var ids []ecs.EntityId
	for i := 0; i < 5; i++ {
		ids = append(ids, engine.Create(func(e *ecs.Entity) { e.Add(&Position{X: float32(i)}) }).Id())
	}

	var seen []ecs.EntityId
	for entity := range engine.Entities() {
		seen = append(seen, entity.Id())
	}
	assert.Equal(t, ids, seen)

	count := 0
	for range engine.Find(ecs.NewQuery(VelocityType.Id())) {
		count++
	}
	assert.Zero(t, count)
}

type recordingComponent struct {
	name   string
	events *[]string
}

var recordingType = ecs.NewComponentType[*recordingComponent]("Recording")

func (*recordingComponent) Type() ecs.TypeId { return recordingType.Id() }

func (r *recordingComponent) OnRemoved(*ecs.Entity) {
	*r.events = append(*r.events, r.name)
}
