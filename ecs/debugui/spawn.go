package debugui

import "github.com/plus3/gdxcore/ecs"

// NewDebugUI creates the debug windows with their default settings.
func NewDebugUI() *DebugUI {
	return &DebugUI{
		Browser:     NewEntityBrowserComponent(100),
		Inspector:   NewComponentInspectorComponent(),
		Signatures:  NewSignatureViewerComponent(),
		Performance: NewPerformanceStatsComponent(120),
		Queries:     NewQueryDebuggerComponent(),
	}
}

// SpawnDebugUI registers the ImGui and debug window systems on engine and
// creates the entity holding the debug windows.
func SpawnDebugUI(engine *ecs.Engine) *ecs.Entity {
	engine.Register(NewImguiSystem(engine))
	engine.Register(&DebugUISystem{})
	return engine.Create(func(e *ecs.Entity) {
		e.Named("debugui").Add(NewDebugUI())
	})
}
