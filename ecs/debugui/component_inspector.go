package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/jmge/ecs"
)

// Render draws the components of the entity at index. Each component is
// opened through an exclusive erased view for as long as its tree node is
// drawn, so edits go straight into the World's storage.
func (ci *componentInspector) Render(w *ecs.World, index uint32, selected bool) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	if !selected {
		imgui.Text("No entity selected")
		return
	}

	e, ok := w.EntityAt(index)
	if !ok {
		imgui.Text(fmt.Sprintf("Entity %d no longer exists", index))
		return
	}

	imgui.Text(fmt.Sprintf("Entity: %d", e.Index()))
	imgui.Separator()

	for _, compType := range w.ComponentsOf(e) {
		if imgui.TreeNodeStr(ecs.ComponentName(compType)) {
			ci.renderComponent(w, e, compType)
			imgui.TreePop()
		}
	}
}

func (ci *componentInspector) renderComponent(w *ecs.World, e ecs.Entity, compType reflect.Type) {
	ref := w.TryGetAnyMut(e, compType)
	if ref == nil {
		return
	}
	defer ref.Release()

	val := reflect.ValueOf(ref.Value()).Elem()
	if val.Kind() != reflect.Struct {
		renderValue(compType.Name(), val, "")
		return
	}
	renderStruct(val, compType.String())
}

func renderStruct(val reflect.Value, idPrefix string) {
	for _, field := range globalReflectionCache.GetFields(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		renderValue(field.Name, fieldVal, idPrefix)
	}
}

// renderValue draws one editable value. Widgets write through val, which
// must be addressable for edits to stick.
func renderValue(name string, val reflect.Value, idPrefix string) {
	id := fmt.Sprintf("##%s.%s", idPrefix, name)

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		labelled(name, 150)
		if imgui.InputInt(id, &v) && val.CanSet() && !val.OverflowInt(int64(v)) {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		labelled(name, 150)
		if imgui.InputInt(id, &v) && val.CanSet() && v >= 0 && !val.OverflowUint(uint64(v)) {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		labelled(name, 150)
		if imgui.InputFloat(id, &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name+id, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		labelled(name, 200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			renderStruct(val, idPrefix+"."+name)
			imgui.TreePop()
		}

	case reflect.Slice, reflect.Array:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	case reflect.Func:
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil func", name))
		} else {
			imgui.Text(fmt.Sprintf("%s: func", name))
		}

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		} else {
			imgui.Text(fmt.Sprintf("%s: <%s>", name, val.Type()))
		}
	}
}

func labelled(name string, width float32) {
	imgui.Text(name + ":")
	imgui.SameLine()
	imgui.SetNextItemWidth(width)
}
