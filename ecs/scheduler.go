package ecs

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

// EngineStats provides statistics about system execution.
type EngineStats struct {
	Ticks           uint64
	Entities        int
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Query          string
	ExecutionCount int64
	EntityUpdates  int64
	LastMatched    int
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	entityUpdates  int64
	lastMatched    int
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Named is implemented by systems that want a custom name in stats and logs.
type Named interface {
	Name() string
}

// signatureMemo caches query results per entity signature. Each entry keeps
// the type set it was computed for, so two type sets whose signatures collide
// never share a result.
type signatureMemo struct {
	results *intmap.Map[uint64, memoEntry]
}

type memoEntry struct {
	types  []TypeId
	accept bool
}

func newSignatureMemo() *signatureMemo {
	return &signatureMemo{results: intmap.New[uint64, memoEntry](16)}
}

func (m *signatureMemo) accept(query EntityQuery, entity *Entity) bool {
	if entry, found := m.results.Get(entity.signature); found && slices.Equal(entry.types, entity.types) {
		return entry.accept
	}
	ok := query.Accept(entity)
	m.results.Put(entity.signature, memoEntry{types: slices.Clone(entity.types), accept: ok})
	return ok
}

// Register appends a system. Systems run in registration order. Listening
// systems are told about every entity that already matches.
func (en *Engine) Register(system System) {
	en.systems = append(en.systems, system)
	en.matchMemo = append(en.matchMemo, newSignatureMemo())
	en.systemStats = append(en.systemStats, &systemStatsInternal{
		name:        systemName(system),
		minDuration: time.Duration(1<<63 - 1),
	})

	en.logger.Info("system registered",
		zap.String("system", systemName(system)),
		zap.Stringer("query", system.Query()),
	)

	if listener, ok := system.(EntityListener); ok {
		memo := en.matchMemo[len(en.matchMemo)-1]
		for entity := range en.Entities() {
			if entity.state == stateAlive && memo.accept(system.Query(), entity) {
				listener.OnEntityAdded(entity)
			}
		}
	}
}

// Systems returns the registered systems in execution order.
func (en *Engine) Systems() []System {
	out := make([]System, len(en.systems))
	copy(out, en.systems)
	return out
}

// Update runs one tick: every system, in registration order, updates every
// matching entity in slot order, then its PostUpdate runs. Queued commands
// are flushed once all systems have run.
func (en *Engine) Update(delta float32) {
	if en.updating {
		panic("ecs: Update called during a tick")
	}
	en.updating = true
	defer func() {
		en.updating = false
	}()

	for i, system := range en.systems {
		start := time.Now()
		query := system.Query()
		memo := en.matchMemo[i]

		matched := 0
		for _, entity := range en.slots {
			if entity == nil || entity.state != stateAlive {
				continue
			}
			if !memo.accept(query, entity) {
				continue
			}
			matched++
			system.Update(delta, entity)
		}

		if post, ok := system.(PostUpdater); ok {
			post.PostUpdate(delta)
		}

		duration := time.Since(start)
		stats := en.systemStats[i]
		stats.executionCount++
		stats.entityUpdates += int64(matched)
		stats.lastMatched = matched
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	en.updating = false
	en.commands.flush(en)
	en.ticks++
}

// Run executes ticks at the given interval until the context is cancelled.
func (en *Engine) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			en.Update(float32(dt))
		}
	}
}

// Stats returns statistics about system execution.
func (en *Engine) Stats() *EngineStats {
	stats := &EngineStats{
		Ticks:       en.ticks,
		Entities:    en.count,
		SystemCount: len(en.systems),
		Systems:     make([]SystemStats, len(en.systemStats)),
	}

	var totalExecs int64
	for i, internal := range en.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			Query:          en.systems[i].Query().String(),
			ExecutionCount: internal.executionCount,
			EntityUpdates:  internal.entityUpdates,
			LastMatched:    internal.lastMatched,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}

func systemName(system System) string {
	if named, ok := system.(Named); ok {
		return named.Name()
	}
	name := fmt.Sprintf("%T", system)
	if len(name) > 0 && name[0] == '*' {
		name = name[1:]
	}
	return name
}
