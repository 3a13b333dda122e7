package ecs

// System represents a behavior that operates on entities with specific components.
// Each tick the Engine calls Update once for every live entity accepted by Query.
type System interface {
	Query() EntityQuery
	Update(delta float32, entity *Entity)
}

// PostUpdater is implemented by systems that need a pass after all of their
// per-entity updates of a tick.
type PostUpdater interface {
	PostUpdate(delta float32)
}

// EntityListener is implemented by systems that track the entities matching
// their query. OnEntityAdded fires when an entity starts matching (it becomes
// alive, or gains components) and OnEntityRemoved when it stops matching.
type EntityListener interface {
	OnEntityAdded(entity *Entity)
	OnEntityRemoved(entity *Entity)
}
