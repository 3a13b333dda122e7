package ecs

// Singleton provides cached access to the component of a type that exactly
// one entity of the engine is expected to hold, such as the active camera or
// global game state.
type Singleton[T Component] struct {
	engine *Engine
	typ    *ComponentType[T]
	holder EntityId
}

// NewSingleton creates a Singleton accessor. If no entity holds a component of
// typ and initializer is provided, an entity is created holding it. This
// guarantees the singleton exists after the call when an initializer is given.
func NewSingleton[T Component](engine *Engine, typ *ComponentType[T], initializer ...T) *Singleton[T] {
	s := &Singleton[T]{engine: engine, typ: typ}
	if !s.Exists() && len(initializer) > 0 {
		engine.Create(func(entity *Entity) {
			entity.Named(typ.Name()).Add(initializer[0])
		})
		s.updateCache()
	}
	return s
}

// Get returns the singleton component and whether it exists.
func (s *Singleton[T]) Get() (T, bool) {
	if entity, ok := s.Entity(); ok {
		return s.typ.Find(entity)
	}
	var zero T
	return zero, false
}

// Entity returns the entity holding the singleton component.
func (s *Singleton[T]) Entity() (*Entity, bool) {
	if entity, ok := s.engine.Entity(s.holder); ok && entity.Alive() && s.typ.Has(entity) {
		return entity, true
	}
	s.updateCache()
	if s.holder == NoEntity {
		return nil, false
	}
	return s.engine.Entity(s.holder)
}

// updateCache refreshes the cached holder from the engine
func (s *Singleton[T]) updateCache() {
	s.holder = NoEntity
	for entity := range s.engine.Find(NewQuery(s.typ.Id())) {
		s.holder = entity.Id()
		return
	}
}

// Exists reports whether some entity holds the singleton component.
func (s *Singleton[T]) Exists() bool {
	_, ok := s.Entity()
	return ok
}
