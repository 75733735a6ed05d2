package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/packecs/ecs"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{}
}

// Render shows every component held by the selected entity. Edits are written
// straight into the stored component.
func (ci *ComponentInspectorComponent) Render(m *ecs.EntityManager, selected ecs.Entity) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selectedEntity = selected

	if ci.selectedEntity == ecs.NullEntity {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	if !m.Alive(ci.selectedEntity) {
		imgui.Text(fmt.Sprintf("Entity %d has been destroyed", ci.selectedEntity))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %d", ci.selectedEntity))
	imgui.Separator()

	registry := m.Registry()
	for _, ct := range m.ComponentTypes(ci.selectedEntity) {
		component := m.ComponentAny(ci.selectedEntity, ct)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(registry.Name(ct)) {
			ci.renderComponent(reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}

	imgui.End()
}

func (ci *ComponentInspectorComponent) renderComponent(val reflect.Value) {
	fields := globalReflectionCache.GetFields(val.Type())
	if len(fields) == 0 && val.Kind() != reflect.Struct {
		ci.renderValue("value", val)
		return
	}

	for _, field := range fields {
		ci.renderField(field, val.Field(field.Index))
	}
}

func (ci *ComponentInspectorComponent) renderField(field FieldInfo, val reflect.Value) {
	if field.IsPointer {
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", field.Name))
			return
		}
		val = val.Elem()
	}
	ci.renderValue(field.Name, val)
}

// renderValue draws an editor for val. val must be addressable for edits to
// take effect.
func (ci *ComponentInspectorComponent) renderValue(name string, val reflect.Value) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	label := fmt.Sprintf("##%s", name)
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		ci.label(name, 150)
		if imgui.InputInt(label, &v) {
			setField(val, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		ci.label(name, 150)
		if imgui.InputInt(label, &v) && v >= 0 {
			setField(val, uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		ci.label(name, 150)
		if imgui.InputFloat(label, &v) {
			setField(val, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) {
			setField(val, v)
		}

	case reflect.String:
		v := val.String()
		ci.label(name, 200)
		if imgui.InputTextWithHint(label, "", &v, imgui.InputTextFlagsNone, nil) {
			setField(val, v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			ci.renderComponent(val)
			imgui.TreePop()
		}

	case reflect.Array:
		if imgui.TreeNodeStr(fmt.Sprintf("%s [%d]", name, val.Len())) {
			for i := 0; i < val.Len(); i++ {
				ci.renderValue(fmt.Sprintf("%s[%d]", name, i), val.Index(i))
			}
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		} else {
			imgui.Text(fmt.Sprintf("%s: <%s>", name, val.Type()))
		}
	}
}

func (ci *ComponentInspectorComponent) label(name string, width float32) {
	imgui.Text(fmt.Sprintf("%s:", name))
	imgui.SameLine()
	imgui.SetNextItemWidth(width)
}

// setField stores v into val, converting between integer, float, bool and
// string kinds. Values that cannot be set are left untouched.
func setField(val reflect.Value, v any) {
	if !val.CanSet() {
		return
	}
	switch x := v.(type) {
	case int64:
		if val.OverflowInt(x) {
			return
		}
		val.SetInt(x)
	case uint64:
		if val.OverflowUint(x) {
			return
		}
		val.SetUint(x)
	case float64:
		val.SetFloat(x)
	case bool:
		val.SetBool(x)
	case string:
		val.SetString(x)
	}
}
