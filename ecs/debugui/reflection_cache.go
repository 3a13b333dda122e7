package debugui

import (
	"reflect"
	"sync"
)

// FieldInfo describes one exported field of a component struct as the
// inspector draws it.
type FieldInfo struct {
	Name  string
	Index int
	Kind  reflect.Kind

	// Indirect is set for pointer fields; Kind is then the pointee's kind.
	Indirect bool
	// Editable fields map onto a single imgui input widget.
	Editable bool
	// Lanes is the length of float32 arrays such as mgl32 vectors and
	// matrices, zero otherwise.
	Lanes int
}

// ReflectionCache remembers the field layout of every component type the
// inspector has drawn, so reflection runs once per type rather than per frame.
type ReflectionCache struct {
	layouts sync.Map // reflect.Type -> []FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{}
}

// GetFields returns the exported fields of t, or nil when t is not a struct.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	if cached, ok := rc.layouts.Load(t); ok {
		return cached.([]FieldInfo)
	}
	actual, _ := rc.layouts.LoadOrStore(t, layoutOf(t))
	return actual.([]FieldInfo)
}

func layoutOf(t reflect.Type) []FieldInfo {
	if t.Kind() != reflect.Struct {
		return nil
	}

	var fields []FieldInfo
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		ft := sf.Type
		info := FieldInfo{Name: sf.Name, Index: i}
		if ft.Kind() == reflect.Pointer {
			info.Indirect = true
			ft = ft.Elem()
		}
		info.Kind = ft.Kind()

		switch info.Kind {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64, reflect.Bool, reflect.String:
			info.Editable = true
		case reflect.Array:
			if ft.Elem().Kind() == reflect.Float32 {
				info.Lanes = ft.Len()
				info.Editable = true
			}
		}
		fields = append(fields, info)
	}
	return fields
}

var globalReflectionCache = NewReflectionCache()
