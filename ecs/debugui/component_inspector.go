package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/gdxcore/ecs"
	"github.com/plus3/gdxcore/position"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{}
}

func (ci *ComponentInspectorComponent) Render(engine *ecs.Engine, selectedEntityId ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntityId = selectedEntityId

	if ci.selectedEntityId == 0 {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	entity, ok := engine.Entity(ci.selectedEntityId)
	if !ok {
		imgui.Text(fmt.Sprintf("Entity %d.%d is gone", ci.selectedEntityId.Index(), ci.selectedEntityId.Generation()))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %d.%d %s", ci.selectedEntityId.Index(), ci.selectedEntityId.Generation(), entity.Name()))
	imgui.Text(fmt.Sprintf("Signature: 0x%X", entity.Signature()))
	if parent, ok := entity.Parent(); ok {
		imgui.Text(fmt.Sprintf("Parent: %d %s", parent.Id().Index(), parent.Name()))
	}
	imgui.Text(fmt.Sprintf("Children: %d", len(entity.Children())))
	imgui.Separator()

	for i, component := range entity.Components() {
		label := fmt.Sprintf("%s##%d", ecs.TypeName(component.Type()), i)
		if imgui.TreeNodeStr(label) {
			if p, ok := component.(*position.Position); ok {
				ci.renderPosition(p)
			} else if ci.renderComponent(component) {
				entity.ComponentUpdated(component.Type())
			}
			imgui.TreePop()
		}
	}

	imgui.End()
}

// renderPosition edits the local transform through the Position API so the
// hierarchy below it is invalidated.
func (ci *ComponentInspectorComponent) renderPosition(p *position.Position) {
	if v, ok := editVec3("Translation", p.LocalTranslation()); ok {
		p.SetLocalTranslation(position.XYZ(v)...)
	}
	if v, ok := editVec3("Rotation", p.LocalRotation()); ok {
		p.SetLocalRotation(position.XYZ(v)...)
	}
	if v, ok := editVec3("Scale", p.LocalScale()); ok {
		p.SetLocalScale(position.XYZ(v)...)
	}

	global := p.Translation()
	imgui.Text(fmt.Sprintf("Global: %.2f, %.2f, %.2f", global[0], global[1], global[2]))
}

func editVec3(name string, v mgl32.Vec3) (mgl32.Vec3, bool) {
	changed := false
	imgui.Text(name)
	for i, axis := range []string{"x", "y", "z"} {
		imgui.SameLine()
		imgui.SetNextItemWidth(80)
		if imgui.InputFloat(fmt.Sprintf("##%s.%s", name, axis), &v[i]) {
			changed = true
		}
	}
	return v, changed
}

// renderComponent draws the exported fields of component and reports whether
// any of them was edited.
func (ci *ComponentInspectorComponent) renderComponent(component ecs.Component) bool {
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		imgui.Text(fmt.Sprintf("%v", val.Interface()))
		return false
	}

	changed := false
	for _, field := range globalReflectionCache.GetFields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.Indirect && !fieldVal.IsNil() {
			fieldVal = fieldVal.Elem()
		}
		if ci.renderField(field.Name, fieldVal, field) {
			changed = true
		}
	}
	return changed
}

func (ci *ComponentInspectorComponent) renderField(name string, val reflect.Value, field FieldInfo) bool {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return false
	}

	if field.Indirect && val.Kind() == reflect.Ptr && val.IsNil() {
		imgui.Text(fmt.Sprintf("%s: nil", name))
		return false
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) {
			return setField(val, reflect.ValueOf(int64(v)))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 {
			return setField(val, reflect.ValueOf(uint64(v)))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) {
			return setField(val, reflect.ValueOf(float64(v)))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) {
			return setField(val, reflect.ValueOf(v))
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) {
			return setField(val, reflect.ValueOf(v))
		}

	case reflect.Array:
		// Vectors and matrices.
		if field.Lanes == 0 {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
			return false
		}
		changed := false
		imgui.Text(name)
		for i := range field.Lanes {
			v := float32(val.Index(i).Float())
			imgui.SameLine()
			imgui.SetNextItemWidth(60)
			if imgui.InputFloat(fmt.Sprintf("##%s.%d", name, i), &v) && setField(val.Index(i), reflect.ValueOf(float64(v))) {
				changed = true
			}
		}
		return changed

	case reflect.Struct:
		changed := false
		if imgui.TreeNodeStr(name) {
			for _, nf := range globalReflectionCache.GetFields(val.Type()) {
				nestedVal := val.Field(nf.Index)
				if nf.Indirect && !nestedVal.IsNil() {
					nestedVal = nestedVal.Elem()
				}
				if ci.renderField(nf.Name, nestedVal, nf) {
					changed = true
				}
			}
			imgui.TreePop()
		}
		return changed

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		}
	}
	return false
}

// setField stores value into field, converting between sizes of the same
// kind. It reports false when the field is not settable.
func setField(field, value reflect.Value) bool {
	if !field.CanSet() {
		return false
	}
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		field.SetInt(value.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		field.SetUint(value.Uint())
	case reflect.Float32, reflect.Float64:
		field.SetFloat(value.Float())
	case reflect.Bool:
		field.SetBool(value.Bool())
	case reflect.String:
		field.SetString(value.String())
	default:
		return false
	}
	return true
}
