package ecs

import (
	"iter"

	"go.uber.org/zap"
)

// Engine owns every entity and system. Entities live in an arena of slots
// addressed by EntityId; a slot's generation is bumped when its entity is
// destroyed so stale ids never resolve to a newer entity.
type Engine struct {
	logger *zap.Logger

	slots       []*Entity
	generations []uint32
	freeSlots   []uint32
	count       int

	systems     []System
	systemStats []*systemStatsInternal
	matchMemo   []*signatureMemo

	commands *Commands
	updating bool
	ticks    uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used by the engine. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an empty engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger:   zap.NewNop(),
		commands: newCommands(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Logger returns the engine logger.
func (en *Engine) Logger() *zap.Logger {
	return en.logger
}

// Commands returns the buffer of operations flushed at the end of every tick.
func (en *Engine) Commands() *Commands {
	return en.commands
}

// Updating reports whether a tick is in progress.
func (en *Engine) Updating() bool {
	return en.updating
}

// Create allocates a new entity and runs configure on it.
//
// During a tick the entity is built immediately, so the returned handle is
// usable, but systems only see it from the next tick on.
func (en *Engine) Create(configure func(entity *Entity)) *Entity {
	var index uint32
	if n := len(en.freeSlots); n > 0 {
		index = en.freeSlots[n-1]
		en.freeSlots = en.freeSlots[:n-1]
	} else {
		index = uint32(len(en.slots))
		en.slots = append(en.slots, nil)
		en.generations = append(en.generations, 1)
	}

	entity := newEntity(en, NewEntityId(en.generations[index], index))
	if en.updating {
		entity.state = statePending
		en.commands.created = append(en.commands.created, entity)
	}
	en.slots[index] = entity
	en.count++

	if configure != nil {
		configure(entity)
	}

	if entity.state == stateAlive {
		entity.visible = true
		en.notifyAdded(entity)
	}

	en.logger.Debug("entity created",
		zap.Uint64("entity", uint64(entity.id)),
		zap.String("name", entity.name),
		zap.Int("components", len(entity.components)),
		zap.Bool("deferred", entity.state == statePending),
	)
	return entity
}

// Destroy removes entity and, first, all of its descendants. Every component
// receives OnDetach (when the entity had a parent) and then OnRemoved.
//
// During a tick the entity disappears from later systems at once and is
// removed at the end of the tick.
func (en *Engine) Destroy(entity *Entity) {
	if entity == nil || entity.engine != en {
		return
	}
	if entity.state == stateDestroyed || entity.state == stateDying {
		return
	}

	if en.updating {
		en.markDying(entity, 0)
		en.commands.Destroy(entity)
		return
	}
	en.destroy(entity, 0)
}

func (en *Engine) markDying(entity *Entity, depth int) {
	if depth > MaxHierarchyDepth {
		panic(ErrHierarchyCycle)
	}
	entity.state = stateDying
	for _, child := range entity.Children() {
		en.markDying(child, depth+1)
	}
}

func (en *Engine) destroy(entity *Entity, depth int) {
	if entity.state == stateDestroyed {
		return
	}
	if depth > MaxHierarchyDepth {
		panic(ErrHierarchyCycle)
	}

	for _, child := range entity.Children() {
		en.destroy(child, depth+1)
	}

	entity.Detach()

	if entity.visible {
		en.notifyRemoved(entity)
	}

	for _, component := range entity.Components() {
		if hook, ok := component.(RemovedHook); ok {
			hook.OnRemoved(entity)
		}
	}

	index := entity.id.Index()
	entity.state = stateDestroyed
	en.slots[index] = nil
	en.generations[index]++
	en.freeSlots = append(en.freeSlots, index)
	en.count--

	en.logger.Debug("entity destroyed",
		zap.Uint64("entity", uint64(entity.id)),
		zap.String("name", entity.name),
	)
}

// Entity resolves id to a live entity.
func (en *Engine) Entity(id EntityId) (*Entity, bool) {
	index := id.Index()
	if int(index) >= len(en.slots) {
		return nil, false
	}
	entity := en.slots[index]
	if entity == nil || entity.id != id || entity.state == stateDestroyed {
		return nil, false
	}
	return entity, true
}

// Count returns the number of entities in the arena, including the ones
// created or being destroyed during the current tick.
func (en *Engine) Count() int {
	return en.count
}

// Entities iterates every alive entity in slot order.
func (en *Engine) Entities() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, entity := range en.slots {
			if entity == nil || !entity.Alive() {
				continue
			}
			if !yield(entity) {
				return
			}
		}
	}
}

// Find iterates every alive entity accepted by query.
func (en *Engine) Find(query EntityQuery) iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for entity := range en.Entities() {
			if !query.Accept(entity) {
				continue
			}
			if !yield(entity) {
				return
			}
		}
	}
}

// listenerMatches records which listening systems currently accept entity.
func (en *Engine) listenerMatches(entity *Entity) []bool {
	if entity.state != stateAlive {
		return nil
	}
	var matches []bool
	for i, system := range en.systems {
		if _, ok := system.(EntityListener); !ok {
			continue
		}
		if matches == nil {
			matches = make([]bool, len(en.systems))
		}
		matches[i] = en.matchMemo[i].accept(system.Query(), entity)
	}
	return matches
}

// reconcileListeners notifies listening systems whose match result changed
// since listenerMatches was taken.
func (en *Engine) reconcileListeners(entity *Entity, before []bool) {
	if before == nil || entity.state != stateAlive {
		return
	}
	for i, system := range en.systems {
		listener, ok := system.(EntityListener)
		if !ok {
			continue
		}
		after := en.matchMemo[i].accept(system.Query(), entity)
		switch {
		case after && !before[i]:
			listener.OnEntityAdded(entity)
		case !after && before[i]:
			listener.OnEntityRemoved(entity)
		}
	}
}

func (en *Engine) notifyAdded(entity *Entity) {
	for i, system := range en.systems {
		listener, ok := system.(EntityListener)
		if !ok {
			continue
		}
		if en.matchMemo[i].accept(system.Query(), entity) {
			listener.OnEntityAdded(entity)
		}
	}
}

func (en *Engine) notifyRemoved(entity *Entity) {
	for i, system := range en.systems {
		listener, ok := system.(EntityListener)
		if !ok {
			continue
		}
		if en.matchMemo[i].accept(system.Query(), entity) {
			listener.OnEntityRemoved(entity)
		}
	}
}
