package ecs

import (
	"sync"
)

// registry keeps the display names of every component type. Index 0 is
// reserved so that the zero TypeId never names a real component.
var registry = struct {
	mu    sync.RWMutex
	names []string
}{names: []string{"<invalid>"}}

// ComponentType is a typed token for one component type. Create a single
// token per type, usually as a package level variable:
//
//	var PositionType = ecs.NewComponentType[*Position]("Position")
//
// The token is both the identity used by queries and the typed accessor used
// to read components back from an entity.
type ComponentType[T Component] struct {
	id   TypeId
	name string
}

// NewComponentType registers a new component type under name and returns its
// token. Each call yields a distinct TypeId.
func NewComponentType[T Component](name string) *ComponentType[T] {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	id := TypeId(len(registry.names))
	registry.names = append(registry.names, name)
	return &ComponentType[T]{id: id, name: name}
}

// TypeName returns the name a TypeId was registered with.
func TypeName(id TypeId) string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	if int(id) >= len(registry.names) {
		return "<unknown>"
	}
	return registry.names[id]
}

// Id returns the token's TypeId.
func (c *ComponentType[T]) Id() TypeId {
	return c.id
}

// Name returns the name the token was registered with.
func (c *ComponentType[T]) Name() string {
	return c.name
}

// Get returns the single component of this type attached to entity.
// It panics with a *LookupError if the entity holds zero or several of them:
// callers use Get for components the entity is required to have.
func (c *ComponentType[T]) Get(entity *Entity) T {
	v, err := c.Lookup(entity)
	if err != nil {
		panic(err)
	}
	return v
}

// Lookup is the non-panicking form of Get.
func (c *ComponentType[T]) Lookup(entity *Entity) (T, error) {
	var zero T
	components := entity.componentsOf(c.id)
	if len(components) != 1 {
		err := ErrComponentMissing
		if len(components) > 1 {
			err = ErrComponentAmbiguous
		}
		return zero, &LookupError{
			Entity:     entity.id,
			EntityName: entity.name,
			Component:  c.name,
			Count:      len(components),
			Err:        err,
		}
	}

	v, ok := components[0].(T)
	if !ok {
		return zero, &LookupError{
			Entity:     entity.id,
			EntityName: entity.name,
			Component:  c.name,
			Count:      1,
			Err:        ErrComponentMismatch,
		}
	}
	return v, nil
}

// Find returns the first component of this type, if any.
func (c *ComponentType[T]) Find(entity *Entity) (T, bool) {
	var zero T
	components := entity.componentsOf(c.id)
	if len(components) == 0 {
		return zero, false
	}
	v, ok := components[0].(T)
	return v, ok
}

// All returns every component of this type in the order they were added.
func (c *ComponentType[T]) All(entity *Entity) []T {
	components := entity.componentsOf(c.id)
	result := make([]T, 0, len(components))
	for _, component := range components {
		if v, ok := component.(T); ok {
			result = append(result, v)
		}
	}
	return result
}

// Has reports whether entity holds at least one component of this type.
func (c *ComponentType[T]) Has(entity *Entity) bool {
	return entity.Has(c.id)
}
