package ecs

import (
	"encoding/binary"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/kamstrup/intmap"
)

// EntityId encodes both the arena generation (upper 32 bits) and the slot index (lower 32 bits)
type EntityId uint64

// NoEntity is the zero EntityId. Generations start at 1 so no live entity uses it.
const NoEntity EntityId = 0

// NewEntityId creates an EntityId from a generation and a slot index
func NewEntityId(generation uint32, index uint32) EntityId {
	return EntityId(uint64(generation)<<32 | uint64(index))
}

// Generation extracts the arena generation from the entity ID
func (e EntityId) Generation() uint32 {
	return uint32(e >> 32)
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

type entityState uint8

const (
	stateAlive entityState = iota
	statePending
	stateDying
	stateDestroyed
)

// Entity owns a set of components and its links in the parent/child tree.
// Entities are created and destroyed through an Engine only.
type Entity struct {
	id     EntityId
	engine *Engine
	name   string
	state  entityState

	// visible is set once systems have been able to see the entity
	visible bool

	components []Component
	index      *intmap.Map[TypeId, []Component]
	types      []TypeId
	signature  uint64

	parent   EntityId
	children []EntityId
}

func newEntity(engine *Engine, id EntityId) *Entity {
	e := &Entity{
		id:     id,
		engine: engine,
		index:  intmap.New[TypeId, []Component](4),
	}
	e.signature = signatureOf(nil)
	return e
}

// Id returns the entity's handle.
func (e *Entity) Id() EntityId {
	return e.id
}

// Engine returns the engine owning the entity.
func (e *Entity) Engine() *Engine {
	return e.engine
}

// Name returns the debug name of the entity.
func (e *Entity) Name() string {
	return e.name
}

// Named sets the debug name of the entity.
func (e *Entity) Named(name string) *Entity {
	e.name = name
	return e
}

// Alive reports whether the entity exists and is not being destroyed.
// Entities created during a tick are alive even though systems only see them from the next tick.
func (e *Entity) Alive() bool {
	return e.state == stateAlive || e.state == statePending
}

// Add attaches component to the entity and calls its OnAdded hook.
func (e *Entity) Add(component Component) *Entity {
	if e.state == stateDestroyed {
		panic(ErrEntityDestroyed)
	}

	before := e.engine.listenerMatches(e)

	typ := component.Type()
	existing, _ := e.index.Get(typ)
	e.index.Put(typ, append(existing, component))
	e.components = append(e.components, component)
	if len(existing) == 0 {
		e.types = append(e.types, typ)
		slices.Sort(e.types)
		e.signature = signatureOf(e.types)
	}

	if hook, ok := component.(AddedHook); ok {
		hook.OnAdded(e)
	}

	e.engine.reconcileListeners(e, before)
	return e
}

// AddAll attaches every component in order.
func (e *Entity) AddAll(components ...Component) *Entity {
	for _, component := range components {
		e.Add(component)
	}
	return e
}

// Remove detaches component from the entity and calls its OnRemoved hook.
// It reports whether the component was attached.
func (e *Entity) Remove(component Component) bool {
	typ := component.Type()
	existing, ok := e.index.Get(typ)
	if !ok {
		return false
	}
	idx := slices.IndexFunc(existing, func(c Component) bool { return c == component })
	if idx < 0 {
		return false
	}

	before := e.engine.listenerMatches(e)

	remaining := slices.Delete(slices.Clone(existing), idx, idx+1)
	if len(remaining) == 0 {
		e.index.Del(typ)
		e.types = slices.DeleteFunc(e.types, func(t TypeId) bool { return t == typ })
		e.signature = signatureOf(e.types)
	} else {
		e.index.Put(typ, remaining)
	}
	e.components = slices.DeleteFunc(e.components, func(c Component) bool { return c == component })

	if hook, ok := component.(RemovedHook); ok {
		hook.OnRemoved(e)
	}

	e.engine.reconcileListeners(e, before)
	return true
}

// RemoveAll detaches every component of the given type and returns how many were removed.
func (e *Entity) RemoveAll(typ TypeId) int {
	existing, ok := e.index.Get(typ)
	if !ok {
		return 0
	}
	for _, component := range slices.Clone(existing) {
		e.Remove(component)
	}
	return len(existing)
}

// Has reports whether the entity holds at least one component of typ.
func (e *Entity) Has(typ TypeId) bool {
	_, ok := e.index.Get(typ)
	return ok
}

// HasAll reports whether the entity's type set is a superset of types.
func (e *Entity) HasAll(types []TypeId) bool {
	for _, typ := range types {
		if !e.Has(typ) {
			return false
		}
	}
	return true
}

// Types returns the sorted set of component types attached to the entity.
func (e *Entity) Types() []TypeId {
	return slices.Clone(e.types)
}

// Components returns every attached component in insertion order.
func (e *Entity) Components() []Component {
	return slices.Clone(e.components)
}

// Signature is a hash of the entity's component type set. Two entities with
// the same set of types share a signature.
func (e *Entity) Signature() uint64 {
	return e.signature
}

func (e *Entity) componentsOf(typ TypeId) []Component {
	components, _ := e.index.Get(typ)
	return components
}

// ComponentUpdated notifies every other component of the entity that a
// component of type changed.
func (e *Entity) ComponentUpdated(changed TypeId) {
	for _, component := range e.components {
		if component.Type() == changed {
			continue
		}
		if hook, ok := component.(UpdatedHook); ok {
			hook.OnComponentUpdated(changed)
		}
	}
}

// Parent returns the parent entity, if any.
func (e *Entity) Parent() (*Entity, bool) {
	if e.parent == NoEntity {
		return nil, false
	}
	return e.engine.Entity(e.parent)
}

// Children returns the live child entities in attach order.
func (e *Entity) Children() []*Entity {
	children := make([]*Entity, 0, len(e.children))
	for _, id := range e.children {
		if child, ok := e.engine.Entity(id); ok {
			children = append(children, child)
		}
	}
	return children
}

// AttachTo makes parent the entity's parent. OnDetach(oldParent) fires on
// every component before OnAttach(parent). Attaching to a descendant panics
// with ErrHierarchyCycle. A nil parent detaches. Components of every
// descendant then receive OnAncestorChanged.
func (e *Entity) AttachTo(parent *Entity) *Entity {
	if parent == nil {
		e.Detach()
		return e
	}
	if parent.engine != e.engine {
		panic("ecs: cannot attach entities owned by different engines")
	}

	ancestor := parent
	for depth := 0; ; depth++ {
		if ancestor == e || depth > MaxHierarchyDepth {
			panic(ErrHierarchyCycle)
		}
		next, ok := ancestor.Parent()
		if !ok {
			break
		}
		ancestor = next
	}

	e.unlink()

	e.parent = parent.id
	parent.children = append(parent.children, e.id)
	for _, component := range slices.Clone(e.components) {
		if hook, ok := component.(AttachHook); ok {
			hook.OnAttach(parent)
		}
	}
	e.notifyDescendants(e, 0)
	return e
}

// Detach removes the entity from its parent, firing OnDetach on its components.
func (e *Entity) Detach() *Entity {
	if e.unlink() {
		e.notifyDescendants(e, 0)
	}
	return e
}

// unlink removes the entity from its parent's children and fires OnDetach.
// It reports whether a live parent was left.
func (e *Entity) unlink() bool {
	if e.parent == NoEntity {
		return false
	}
	parent, ok := e.Parent()
	e.parent = NoEntity
	if !ok {
		return false
	}

	parent.children = slices.DeleteFunc(parent.children, func(id EntityId) bool { return id == e.id })
	for _, component := range slices.Clone(e.components) {
		if hook, ok := component.(DetachHook); ok {
			hook.OnDetach(parent)
		}
	}
	return true
}

// notifyDescendants fires OnAncestorChanged(moved) below e.
func (e *Entity) notifyDescendants(moved *Entity, depth int) {
	if depth > MaxHierarchyDepth {
		panic(ErrHierarchyCycle)
	}
	for _, child := range e.Children() {
		for _, component := range slices.Clone(child.components) {
			if hook, ok := component.(AncestorHook); ok {
				hook.OnAncestorChanged(moved)
			}
		}
		child.notifyDescendants(moved, depth+1)
	}
}

// Destroy removes the entity and all its descendants from the engine.
func (e *Entity) Destroy() {
	e.engine.Destroy(e)
}

// signatureOf hashes a sorted slice of type ids
func signatureOf(types []TypeId) uint64 {
	buf := make([]byte, 0, len(types)*4)
	for _, typ := range types {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(typ))
	}
	return xxhash.Sum64(buf)
}
