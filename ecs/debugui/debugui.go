// Package debugui provides immediate-mode GUI integration for engines using Dear ImGui.
// It manages ImGui rendering and input state through ECS components and systems.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/gdxcore/ecs"
)

var (
	ImguiItemType       = ecs.NewComponentType[*ImguiItem]("ImguiItem")
	ImguiInputStateType = ecs.NewComponentType[*ImguiInputState]("ImguiInputState")
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

func (*ImguiItem) Type() ecs.TypeId { return ImguiItemType.Id() }

// ImguiInputState tracks Dear ImGui's input capture state as a singleton component.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

func (*ImguiInputState) Type() ecs.TypeId { return ImguiInputStateType.Id() }

// ImguiSystem defers the render function of every ImguiItem to the end of
// the tick and refreshes the ImguiInputState singleton afterwards.
type ImguiSystem struct {
	input   *ecs.Singleton[*ImguiInputState]
	capture func() (mouse, keyboard bool)
}

// NewImguiSystem creates the system and the input state singleton of engine.
func NewImguiSystem(engine *ecs.Engine) *ImguiSystem {
	return &ImguiSystem{
		input:   ecs.NewSingleton(engine, ImguiInputStateType, &ImguiInputState{}),
		capture: currentCapture,
	}
}

func currentCapture() (bool, bool) {
	io := imgui.CurrentIO()
	return io.WantCaptureMouse(), io.WantCaptureKeyboard()
}

func (*ImguiSystem) Name() string { return "ImguiSystem" }

func (*ImguiSystem) Query() ecs.EntityQuery {
	return ecs.NewQuery(ImguiItemType.Id())
}

// Update queues the render functions of entity for execution.
func (i *ImguiSystem) Update(_ float32, entity *ecs.Entity) {
	for _, item := range ImguiItemType.All(entity) {
		if item.Render != nil {
			entity.Engine().Commands().Defer(item.Render)
		}
	}
}

// PostUpdate updates the input capture state.
func (i *ImguiSystem) PostUpdate(float32) {
	state, ok := i.input.Get()
	if !ok {
		return
	}
	state.WantCaptureMouse, state.WantCaptureKeyboard = i.capture()
}
