package debugui

import (
	"fmt"
	"image/color"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/cubekiller/ecs"
)

// EntityInspector shows every field of the selected entity. Opacity can be
// edited; it goes through the registry so that the change is presented.
type EntityInspector struct{}

func (EntityInspector) Render(registry *ecs.Registry, selected ecs.EntityId) {
	imgui.SetNextWindowPosV(imgui.NewVec2(440, 300), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 360), imgui.CondOnce)

	if !imgui.BeginV("Entity Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	e, ok := registry.Get(selected)
	if !ok {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", e.Id))
	imgui.Separator()

	val := reflect.ValueOf(e).Elem()
	for _, row := range layoutOf(val.Type()) {
		if row.Widget == widgetOpacity {
			v := float32(e.Opacity)
			imgui.Text("Opacity:")
			imgui.SameLine()
			imgui.SetNextItemWidth(150)
			if imgui.InputFloat("##Opacity", &v) {
				registry.SetOpacity(e.Id, float64(v))
			}
			continue
		}
		renderField(row, val.Field(row.Index))
	}

	imgui.End()
}

func renderField(row fieldRow, val reflect.Value) {
	switch row.Widget {
	case widgetColor:
		c := val.Interface().(color.RGBA)
		imgui.TextColored(imgui.NewVec4(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, 1), fmt.Sprintf("%s: #%02x%02x%02x", row.Name, c.R, c.G, c.B))
	case widgetVector:
		imgui.Text(fmt.Sprintf("%s: (%.2f, %.2f, %.2f)", row.Name, val.Field(0).Float(), val.Field(1).Float(), val.Field(2).Float()))
	case widgetTree:
		if imgui.TreeNodeStr(row.Name) {
			for _, nested := range layoutOf(val.Type()) {
				renderField(nested, val.Field(nested.Index))
			}
			imgui.TreePop()
		}
	case widgetFloat, widgetOpacity:
		imgui.Text(fmt.Sprintf("%s: %.3f", row.Name, val.Float()))
	default:
		imgui.Text(fmt.Sprintf("%s: %v", row.Name, val.Interface()))
	}
}
