package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/gdxcore/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestEngineUpdate(t *testing.T) {
	t.Run("systems update matching entities in creation order", func(t *testing.T) {
		engine := ecs.NewEngine()
		movement := &MovementSystem{}
		engine.Register(movement)

		a := engine.Create(func(e *ecs.Entity) { e.Add(&Position{}).Add(&Velocity{DX: 10, DY: 20}) })
		engine.Create(func(e *ecs.Entity) { e.Add(&Position{}) })
		b := engine.Create(func(e *ecs.Entity) { e.Add(&Position{}).Add(&Velocity{DX: 1}) })

		engine.Update(0.5)

		assert.Equal(t, []ecs.EntityId{a.Id(), b.Id()}, movement.Updated)
		assert.Equal(t, float32(5), PositionType.Get(a).X)
		assert.Equal(t, float32(10), PositionType.Get(a).Y)
		assert.Equal(t, float32(0.5), PositionType.Get(b).X)
	})

	t.Run("systems run in registration order", func(t *testing.T) {
		engine := ecs.NewEngine()
		var order []string
		for _, name := range []string{"first", "second", "third"} {
			engine.Register(&funcSystem{
				name:  name,
				query: ecs.NewQuery(),
				fn:    func(float32, *ecs.Entity) { order = append(order, name) },
			})
		}
		engine.Create(nil)

		engine.Update(1)

		assert.Equal(t, []string{"first", "second", "third"}, order)
	})

	t.Run("entities created during a tick appear next tick", func(t *testing.T) {
		engine := ecs.NewEngine()
		var spawned *ecs.Entity
		seen := map[ecs.EntityId]int{}
		engine.Register(&funcSystem{
			name:  "spawner",
			query: ecs.NewQuery(TagType.Id()),
			fn: func(_ float32, entity *ecs.Entity) {
				seen[entity.Id()]++
				if spawned == nil {
					spawned = engine.Create(func(e *ecs.Entity) { e.Add(&Tag{Value: "spawned"}) })
				}
			},
		})
		engine.Create(func(e *ecs.Entity) { e.Add(&Tag{Value: "origin"}) })

		engine.Update(1)
		require.NotNil(t, spawned)
		assert.True(t, spawned.Alive())
		assert.Zero(t, seen[spawned.Id()])
		assert.Equal(t, 2, engine.Count())

		engine.Update(1)
		assert.Equal(t, 1, seen[spawned.Id()])
	})

	t.Run("entities destroyed during a tick are skipped at once", func(t *testing.T) {
		engine := ecs.NewEngine()
		victim := engine.Create(func(e *ecs.Entity) { e.Named("victim").Add(&Health{}) })
		killer := &funcSystem{
			name:  "killer",
			query: ecs.NewQuery(TagType.Id()),
			fn:    func(float32, *ecs.Entity) { victim.Destroy() },
		}
		var healed []string
		healer := &funcSystem{
			name:  "healer",
			query: ecs.NewQuery(HealthType.Id()),
			fn:    func(_ float32, e *ecs.Entity) { healed = append(healed, e.Name()) },
		}
		engine.Register(killer)
		engine.Register(healer)
		engine.Create(func(e *ecs.Entity) { e.Add(&Tag{}) })

		engine.Update(1)

		assert.Empty(t, healed)
		assert.False(t, victim.Alive())
		assert.Equal(t, 1, engine.Count())
		_, ok := engine.Entity(victim.Id())
		assert.False(t, ok)
	})

	t.Run("post update runs once per tick", func(t *testing.T) {
		engine := ecs.NewEngine()
		system := &funcSystem{name: "post", query: ecs.NewQuery(), fn: func(float32, *ecs.Entity) {}}
		engine.Register(system)

		engine.Update(1)
		engine.Update(1)

		assert.Equal(t, 2, system.posts)
	})

	t.Run("deferred commands run after the tick", func(t *testing.T) {
		engine := ecs.NewEngine()
		var log []string
		engine.Register(&funcSystem{
			name:  "deferring",
			query: ecs.NewQuery(),
			fn: func(float32, *ecs.Entity) {
				log = append(log, "update")
				engine.Commands().Defer(func() {
					assert.False(t, engine.Updating())
					log = append(log, "deferred")
				})
			},
		})
		engine.Create(nil)

		engine.Update(1)

		assert.Equal(t, []string{"update", "deferred"}, log)
		assert.False(t, engine.Commands().Pending())
	})
}

func TestEntityListener(t *testing.T) {
	engine := ecs.NewEngine()
	existing := engine.Create(func(e *ecs.Entity) { e.Add(&Position{}).Add(&Velocity{}) })

	tracker := newTrackingSystem(ecs.NewQuery(PositionType.Id(), VelocityType.Id()))
	engine.Register(tracker)
	assert.True(t, tracker.tracked[existing.Id()])

	entity := engine.Create(func(e *ecs.Entity) { e.Add(&Position{}) })
	assert.False(t, tracker.tracked[entity.Id()])

	velocity := &Velocity{}
	entity.Add(velocity)
	assert.True(t, tracker.tracked[entity.Id()])

	entity.Remove(velocity)
	assert.False(t, tracker.tracked[entity.Id()])

	existing.Destroy()
	assert.Empty(t, tracker.tracked)
	assert.Equal(t, 2, tracker.added)
	assert.Equal(t, 2, tracker.removed)
}

func TestEntityListenerDuringTick(t *testing.T) {
	engine := ecs.NewEngine()
	tracker := newTrackingSystem(ecs.NewQuery(TagType.Id()))
	var transient *ecs.Entity
	engine.Register(&funcSystem{
		name:  "churn",
		query: ecs.NewQuery(HealthType.Id()),
		fn: func(float32, *ecs.Entity) {
			transient = engine.Create(func(e *ecs.Entity) { e.Add(&Tag{Value: "transient"}) })
			transient.Destroy()
			engine.Create(func(e *ecs.Entity) { e.Add(&Tag{Value: "kept"}) })
		},
	})
	engine.Register(tracker)
	engine.Create(func(e *ecs.Entity) { e.Add(&Health{}) })

	engine.Update(1)

	assert.Equal(t, 1, tracker.added)
	assert.Zero(t, tracker.removed)
	assert.False(t, transient.Alive())
	assert.Len(t, tracker.tracked, 1)
}

func TestEngineStats(t *testing.T) {
	engine := ecs.NewEngine()
	engine.Register(&MovementSystem{})
	engine.Register(&funcSystem{name: "custom", query: ecs.NewQuery(), fn: func(float32, *ecs.Entity) {}})
	engine.Create(func(e *ecs.Entity) { e.Add(&Position{}).Add(&Velocity{}) })
	engine.Create(nil)

	engine.Update(1)
	engine.Update(1)

	stats := engine.Stats()
	assert.Equal(t, uint64(2), stats.Ticks)
	assert.Equal(t, 2, stats.Entities)
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(4), stats.TotalExecutions)

	require.Len(t, stats.Systems, 2)
	assert.Equal(t, "ecs_test.MovementSystem", stats.Systems[0].Name)
	assert.Equal(t, "include[Position,Velocity]", stats.Systems[0].Query)
	assert.Equal(t, int64(2), stats.Systems[0].EntityUpdates)
	assert.Equal(t, 1, stats.Systems[0].LastMatched)
	assert.Equal(t, "custom", stats.Systems[1].Name)
	assert.Equal(t, 2, stats.Systems[1].LastMatched)
	assert.LessOrEqual(t, stats.Systems[1].MinDuration, stats.Systems[1].MaxDuration)
}

func TestEngineRun(t *testing.T) {
	engine := ecs.NewEngine()
	movement := &MovementSystem{}
	engine.Register(movement)
	engine.Create(func(e *ecs.Entity) { e.Add(&Position{}).Add(&Velocity{DX: 1}) })

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan bool)
	go func() {
		engine.Run(ctx, 1*time.Millisecond)
		done <- true
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("engine did not stop after context cancellation")
	}

	assert.NotEmpty(t, movement.Updated)
}

func TestEngineLogging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	engine := ecs.NewEngine(ecs.WithLogger(zap.New(core)))

	engine.Register(&MovementSystem{})
	entity := engine.Create(func(e *ecs.Entity) { e.Named("logged") })
	entity.Destroy()

	assert.Equal(t, 1, logs.FilterMessage("system registered").Len())
	created := logs.FilterMessage("entity created").All()
	require.Len(t, created, 1)
	assert.Equal(t, "logged", created[0].ContextMap()["name"])
	assert.Equal(t, 1, logs.FilterMessage("entity destroyed").Len())
}
