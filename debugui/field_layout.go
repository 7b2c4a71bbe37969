package debugui

import (
	"image/color"
	"reflect"
	"sync"

	"github.com/plus3/cubekiller/vmath"
)

// widget selects how the inspector draws a field.
type widget uint8

const (
	widgetText widget = iota
	widgetFloat
	widgetVector
	widgetColor
	widgetTree
	widgetOpacity
)

var (
	vecType   = reflect.TypeFor[vmath.Vec3]()
	eulerType = reflect.TypeFor[vmath.Euler]()
	rgbaType  = reflect.TypeFor[color.RGBA]()
)

type fieldRow struct {
	Name   string
	Index  int
	Widget widget
}

// fieldLayouts memoizes the inspector rows of each struct type. Unexported
// fields are never shown.
var fieldLayouts sync.Map

func layoutOf(t reflect.Type) []fieldRow {
	if cached, ok := fieldLayouts.Load(t); ok {
		return cached.([]fieldRow)
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	rows := make([]fieldRow, 0, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		rows = append(rows, fieldRow{Name: f.Name, Index: i, Widget: widgetFor(f)})
	}
	actual, _ := fieldLayouts.LoadOrStore(t, rows)
	return actual.([]fieldRow)
}

func widgetFor(f reflect.StructField) widget {
	switch {
	case f.Name == "Opacity":
		return widgetOpacity
	case f.Type == vecType, f.Type == eulerType:
		return widgetVector
	case f.Type == rgbaType:
		return widgetColor
	case f.Type.Kind() == reflect.Struct:
		return widgetTree
	case f.Type.Kind() == reflect.Float32, f.Type.Kind() == reflect.Float64:
		return widgetFloat
	default:
		return widgetText
	}
}
