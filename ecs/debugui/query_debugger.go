package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/gdxcore/ecs"
)

type QueryDebuggerCache struct {
	componentTypes []string
	lastTick       uint64
	valid          bool
}

func NewQueryDebuggerComponent() QueryDebuggerComponent {
	return QueryDebuggerComponent{
		selectedComponentTypes: make(map[string]bool),
		excludedComponentTypes: make(map[string]bool),
		cache:                  &QueryDebuggerCache{},
	}
}

func (qd *QueryDebuggerComponent) Render(engine *ecs.Engine) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	qd.rebuildCacheIfNeeded(engine)

	imgui.Text("Include / Exclude Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selectedComponentTypes = make(map[string]bool)
		qd.excludedComponentTypes = make(map[string]bool)
	}

	for _, compType := range qd.cache.componentTypes {
		toggle(qd.selectedComponentTypes, compType, compType)
		imgui.SameLine()
		toggle(qd.excludedComponentTypes, compType, "without##"+compType)
	}

	imgui.Separator()

	include, exclude := qd.selection()
	if len(include) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	result, err := RunQuery(engine, include, exclude)
	if err != nil {
		imgui.Text(err.Error())
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Query: %s", result.Query))
	imgui.Text(fmt.Sprintf("Matching Signatures: %d", len(result.Signatures)))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", result.Entities))

	if imgui.TreeNodeStr("Signature Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QuerySigTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Signature")
			imgui.TableSetupColumn("All Components")
			imgui.TableSetupColumn("Entity Count")
			imgui.TableHeadersRow()

			for _, sig := range result.Signatures {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("%016x", sig.Signature))

				imgui.TableSetColumnIndex(1)
				imgui.Text(strings.Join(sig.ComponentTypes, ", "))

				imgui.TableSetColumnIndex(2)
				imgui.Text(fmt.Sprintf("%d", sig.EntityCount))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

func toggle(set map[string]bool, key, label string) {
	selected := set[key]
	if imgui.Checkbox(label, &selected) {
		if selected {
			set[key] = true
		} else {
			delete(set, key)
		}
	}
}

// selection returns the checked include and exclude names, sorted. Names no
// longer carried by any entity are dropped.
func (qd *QueryDebuggerComponent) selection() (include, exclude []string) {
	known := make(map[string]bool, len(qd.cache.componentTypes))
	for _, name := range qd.cache.componentTypes {
		known[name] = true
	}
	for name := range qd.selectedComponentTypes {
		if known[name] {
			include = append(include, name)
		}
	}
	for name := range qd.excludedComponentTypes {
		if known[name] {
			exclude = append(exclude, name)
		}
	}
	sort.Strings(include)
	sort.Strings(exclude)
	return include, exclude
}

func (qd *QueryDebuggerComponent) rebuildCacheIfNeeded(engine *ecs.Engine) {
	ticks := engine.Stats().Ticks
	if qd.cache.valid && qd.cache.lastTick == ticks {
		return
	}
	qd.cache.componentTypes, _ = ComponentTypes(engine)
	qd.cache.lastTick = ticks
	qd.cache.valid = true
}
