package debugui

import (
	"github.com/plus3/gdxcore/ecs"
)

// DebugUIType is the component type of DebugUI.
var DebugUIType = ecs.NewComponentType[*DebugUI]("DebugUI")

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntityId   ecs.EntityId
	filterText         string
	filterSignature    uint64
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	selectedEntityId ecs.EntityId
}

type SignatureViewerComponent struct {
	cache         *SignatureViewerCache
	selectedSig   uint64
	sortColumn    int
	sortAscending bool
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type QueryDebuggerComponent struct {
	selectedComponentTypes map[string]bool
	excludedComponentTypes map[string]bool
	cache                  *QueryDebuggerCache
}

// DebugUI bundles the debug windows of an engine. The entity selected in
// the browser is shown by the inspector, and a signature picked in the
// signature viewer filters the browser.
type DebugUI struct {
	Browser     EntityBrowserComponent
	Inspector   ComponentInspectorComponent
	Signatures  SignatureViewerComponent
	Performance PerformanceStatsComponent
	Queries     QueryDebuggerComponent
}

func (*DebugUI) Type() ecs.TypeId { return DebugUIType.Id() }

// Render draws every window.
func (d *DebugUI) Render(engine *ecs.Engine, delta float32) {
	d.Browser.Render(engine)
	d.Inspector.Render(engine, d.Browser.GetSelectedEntity())
	if picked := d.Signatures.Render(engine); picked != nil {
		d.Browser.filterSignature = *picked
		d.Browser.currentPage = 0
	}
	d.Performance.Render(engine, delta)
	d.Queries.Render(engine)
}

// DebugUISystem renders every DebugUI at the end of the tick.
type DebugUISystem struct{}

func (*DebugUISystem) Name() string { return "DebugUISystem" }

func (*DebugUISystem) Query() ecs.EntityQuery {
	return ecs.NewQuery(DebugUIType.Id())
}

func (*DebugUISystem) Update(delta float32, entity *ecs.Entity) {
	engine := entity.Engine()
	for _, ui := range DebugUIType.All(entity) {
		engine.Commands().Defer(func() { ui.Render(engine, delta) })
	}
}
