package ecs

// TypeId identifies a component type. Ids are handed out by NewComponentType
// and stay stable for the lifetime of the process. Zero is never a valid id.
type TypeId uint32

// Component is a unit of data or behaviour owned by exactly one entity.
// Components are expected to be pointer types so that identity comparisons
// in Entity.Remove are meaningful.
type Component interface {
	Type() TypeId
}

// AddedHook is implemented by components that want to know when they are
// added to an entity.
type AddedHook interface {
	OnAdded(entity *Entity)
}

// RemovedHook is implemented by components that want to know when they are
// removed from an entity, including when the entity is destroyed.
type RemovedHook interface {
	OnRemoved(entity *Entity)
}

// AttachHook is called on every component of an entity after it has been
// attached to parent.
type AttachHook interface {
	OnAttach(parent *Entity)
}

// DetachHook is called on every component of an entity after it has been
// detached from parent.
type DetachHook interface {
	OnDetach(parent *Entity)
}

// UpdatedHook is called when another component of the same entity reports a
// change through Entity.ComponentUpdated.
type UpdatedHook interface {
	OnComponentUpdated(changed TypeId)
}

// AncestorHook is called on every component of every descendant of an entity
// after that entity was attached or detached. Components whose state derives
// from the chain of ancestors use it to notice moves further up the tree.
type AncestorHook interface {
	OnAncestorChanged(moved *Entity)
}
