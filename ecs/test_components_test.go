package ecs_test

import "github.com/plus3/gdxcore/ecs"

// Common test component types
var (
	PositionType = ecs.NewComponentType[*Position]("Position")
	VelocityType = ecs.NewComponentType[*Velocity]("Velocity")
	HealthType   = ecs.NewComponentType[*Health]("Health")
	TagType      = ecs.NewComponentType[*Tag]("Tag")
	HookedType   = ecs.NewComponentType[*Hooked]("Hooked")
	InheritType  = ecs.NewComponentType[*Inherit]("Inherit")
)

type Position struct {
	X, Y float32
}

func (*Position) Type() ecs.TypeId { return PositionType.Id() }

type Velocity struct {
	DX, DY float32
}

func (*Velocity) Type() ecs.TypeId { return VelocityType.Id() }

type Health struct {
	Current int
	Max     int
}

func (*Health) Type() ecs.TypeId { return HealthType.Id() }

type Tag struct {
	Value string
}

func (*Tag) Type() ecs.TypeId { return TagType.Id() }

// Hooked records every lifecycle hook it receives.
type Hooked struct {
	Events []string
}

func (*Hooked) Type() ecs.TypeId { return HookedType.Id() }

func (h *Hooked) OnAdded(entity *ecs.Entity)   { h.Events = append(h.Events, "added") }
func (h *Hooked) OnRemoved(entity *ecs.Entity) { h.Events = append(h.Events, "removed") }
func (h *Hooked) OnAttach(parent *ecs.Entity)  { h.Events = append(h.Events, "attach:"+parent.Name()) }
func (h *Hooked) OnDetach(parent *ecs.Entity)  { h.Events = append(h.Events, "detach:"+parent.Name()) }
func (h *Hooked) OnComponentUpdated(changed ecs.TypeId) {
	h.Events = append(h.Events, "updated:"+ecs.TypeName(changed))
}

// Inherit records the entities whose moves it observed from below.
type Inherit struct {
	Moved []string
}

func (*Inherit) Type() ecs.TypeId { return InheritType.Id() }

func (i *Inherit) OnAncestorChanged(moved *ecs.Entity) { i.Moved = append(i.Moved, moved.Name()) }

// MovementSystem integrates velocity into position.
type MovementSystem struct {
	Updated []ecs.EntityId
}

func (s *MovementSystem) Query() ecs.EntityQuery {
	return ecs.NewQuery(PositionType.Id(), VelocityType.Id())
}

func (s *MovementSystem) Update(delta float32, entity *ecs.Entity) {
	s.Updated = append(s.Updated, entity.Id())
	position := PositionType.Get(entity)
	velocity := VelocityType.Get(entity)
	position.X += velocity.DX * delta
	position.Y += velocity.DY * delta
}

// trackingSystem remembers the entities that match its query.
type trackingSystem struct {
	query   ecs.EntityQuery
	tracked map[ecs.EntityId]bool
	added   int
	removed int
}

func newTrackingSystem(query ecs.EntityQuery) *trackingSystem {
	return &trackingSystem{query: query, tracked: map[ecs.EntityId]bool{}}
}

func (s *trackingSystem) Query() ecs.EntityQuery      { return s.query }
func (s *trackingSystem) Update(float32, *ecs.Entity) {}

func (s *trackingSystem) OnEntityAdded(entity *ecs.Entity) {
	s.added++
	s.tracked[entity.Id()] = true
}

func (s *trackingSystem) OnEntityRemoved(entity *ecs.Entity) {
	s.removed++
	delete(s.tracked, entity.Id())
}

// funcSystem runs fn for every matching entity.
type funcSystem struct {
	name  string
	query ecs.EntityQuery
	fn    func(delta float32, entity *ecs.Entity)
	posts int
}

func (s *funcSystem) Name() string                    { return s.name }
func (s *funcSystem) Query() ecs.EntityQuery          { return s.query }
func (s *funcSystem) Update(d float32, e *ecs.Entity) { s.fn(d, e) }
func (s *funcSystem) PostUpdate(float32)              { s.posts++ }
