package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/pthm-cable/kudo/geom"
)

// Widget selects how a field is drawn.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetBool
	WidgetVec
	WidgetSkip
)

var widgetNames = map[string]Widget{
	"label": WidgetLabel,
	"bar":   WidgetBar,
	"bool":  WidgetBool,
	"vec":   WidgetVec,
	"skip":  WidgetSkip,
}

// Hint is a parsed `inspect` struct tag:
//
//	`inspect:"bar,max:20"`
//	`inspect:"label,fmt:%.1f"`
//	`inspect:"skip"`
//
// Unknown widget names and keys are ignored.
type Hint struct {
	Widget Widget
	Format string  // fmt verb for the value, empty picks a default
	Max    float64 // full scale for bars, always > 0
}

// ParseHint parses tag. Max defaults to 1.
func ParseHint(tag string) Hint {
	h := Hint{Max: 1}
	name, rest, _ := strings.Cut(tag, ",")
	h.Widget = widgetNames[strings.TrimSpace(name)]

	for rest != "" {
		var opt string
		opt, rest, _ = strings.Cut(rest, ",")
		key, val, ok := strings.Cut(strings.TrimSpace(opt), ":")
		if !ok {
			continue
		}
		switch key {
		case "fmt":
			h.Format = val
		case "max":
			if m, err := strconv.ParseFloat(val, 64); err == nil && m > 0 {
				h.Max = m
			}
		}
	}
	return h
}

// Field is one exported struct field ready to draw.
type Field struct {
	Name  string
	Value any
	Hint
}

var vecType = reflect.TypeFor[geom.Vec]()

// Fields lists the exported fields of a struct or struct pointer. Vectors
// always use WidgetVec and bools default to WidgetBool. Nil pointers and
// non-structs yield nil.
func Fields(component any) []Field {
	v := reflect.Indirect(reflect.ValueOf(component))
	if v.Kind() != reflect.Struct {
		return nil
	}

	var out []Field
	for _, sf := range reflect.VisibleFields(v.Type()) {
		if !sf.IsExported() || len(sf.Index) > 1 {
			continue
		}
		h := ParseHint(sf.Tag.Get("inspect"))
		if h.Widget == WidgetSkip {
			continue
		}
		fv := v.FieldByIndex(sf.Index)
		switch {
		case fv.Type() == vecType:
			h.Widget = WidgetVec
		case h.Widget == WidgetAuto && fv.Kind() == reflect.Bool:
			h.Widget = WidgetBool
		case h.Widget == WidgetAuto:
			h.Widget = WidgetLabel
		}
		out = append(out, Field{Name: sf.Name, Value: fv.Interface(), Hint: h})
	}
	return out
}

// Text formats the field value with its hint.
func (f Field) Text() string { return FormatValue(f.Value, f.Format) }

// Float returns the value as a float64 for any numeric kind.
func (f Field) Float() (float64, bool) {
	v := reflect.ValueOf(f.Value)
	switch {
	case v.CanFloat():
		return v.Float(), true
	case v.CanInt():
		return float64(v.Int()), true
	case v.CanUint():
		return float64(v.Uint()), true
	}
	return 0, false
}

// Ratio is the bar fill for the field, 0 for non-numeric values.
func (f Field) Ratio() float64 {
	x, ok := f.Float()
	if !ok {
		return 0
	}
	return BarRatio(x, f.Max)
}

// FormatValue formats value. Vectors print as "(x, y)" with format applied
// per axis; Stringers use String; floats default to two decimals.
func FormatValue(value any, format string) string {
	switch v := value.(type) {
	case geom.Vec:
		if format == "" {
			format = "%.2f"
		}
		return fmt.Sprintf("("+format+", "+format+")", v.X, v.Y)
	case fmt.Stringer:
		return v.String()
	case float32, float64:
		if format == "" {
			format = "%.2f"
		}
	}
	if format == "" {
		format = "%v"
	}
	return fmt.Sprintf(format, value)
}

// BarRatio returns value/max clamped to [0, 1].
func BarRatio(value, max float64) float64 {
	return geom.Clamp(value/max, 0, 1)
}
