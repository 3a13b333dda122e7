package ecs

import "go.uber.org/zap"

// Commands provides a buffer for deferred engine operations that are executed at the end of a tick.
// This prevents structural changes to the entity set while systems iterate it.
type Commands struct {
	created  []*Entity
	destroys []*Entity
	defers   []func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues a function to run once the current tick has finished.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Destroy queues the destruction of entity for the end of the tick.
func (c *Commands) Destroy(entity *Entity) {
	c.destroys = append(c.destroys, entity)
}

// Pending reports whether any operation is waiting for a flush.
func (c *Commands) Pending() bool {
	return len(c.created)+len(c.destroys)+len(c.defers) > 0
}

// flush applies queued operations in order: destructions, promotion of
// entities created during the tick, then deferred functions.
func (c *Commands) flush(engine *Engine) {
	if ce := engine.logger.Check(zap.DebugLevel, "commands flushed"); ce != nil && c.Pending() {
		ce.Write(
			zap.Int("destroyed", len(c.destroys)),
			zap.Int("created", len(c.created)),
			zap.Int("deferred", len(c.defers)),
		)
	}

	for _, entity := range c.destroys {
		engine.destroy(entity, 0)
	}

	for _, entity := range c.created {
		if entity.state != statePending {
			continue
		}
		entity.state = stateAlive
		entity.visible = true
		engine.notifyAdded(entity)
	}

	// Deferred functions may queue more work; run until the buffer is drained.
	for len(c.defers) > 0 {
		defers := c.defers
		c.defers = nil
		for _, fn := range defers {
			fn()
		}
	}

	c.created = c.created[:0]
	c.destroys = c.destroys[:0]
}
