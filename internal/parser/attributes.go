package parser

import (
	"fmt"
	"strconv"

	"github.com/ankek/terraform-provider-taskchart/internal/renderer"
)

// Attrs holds loosely typed attribute values decoded from HCL or JSON.
// The getters coerce between strings, numbers and booleans because both
// sources are lax about types.
type Attrs map[string]interface{}

// String extracts a string attribute, converting if needed.
func (a Attrs) String(key string) (string, bool) {
	val, ok := a[key]
	if !ok {
		return "", false
	}

	switch v := val.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}

// Float64 extracts a number attribute, parsing strings.
func (a Attrs) Float64(key string) (float64, bool) {
	switch v := a[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// Int extracts an integer attribute. Fractional numbers are truncated.
func (a Attrs) Int(key string) (int, bool) {
	switch v := a[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	case string:
		if i, err := strconv.Atoi(v); err == nil {
			return i, true
		}
	}
	return 0, false
}

// Bool extracts a boolean attribute. Only a bool or the literal string
// "true" is true; any other string is false.
func (a Attrs) Bool(key string) (bool, bool) {
	switch v := a[key].(type) {
	case bool:
		return v, true
	case string:
		return v == "true", true
	}
	return false, false
}

// StringSlice extracts a list of strings. A single string becomes a one
// element list.
func (a Attrs) StringSlice(key string) ([]string, bool) {
	switch v := a[key].(type) {
	case []interface{}:
		result := make([]string, 0, len(v))
		for _, item := range v {
			switch s := item.(type) {
			case string:
				result = append(result, s)
			case float64:
				result = append(result, strconv.FormatFloat(s, 'f', -1, 64))
			}
		}
		return result, true
	case []string:
		return v, true
	case string:
		return []string{v}, true
	}
	return nil, false
}

// WidgetAttributes maps attribute names to renderer attributes. kind is
// required; every other attribute is optional.
func WidgetAttributes(a Attrs) (renderer.Attributes, error) {
	kind, ok := a.String("kind")
	if !ok || kind == "" {
		return renderer.Attributes{}, fmt.Errorf("attribute %q is required", "kind")
	}
	if !renderer.Kind(kind).Valid() {
		return renderer.Attributes{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	attrs := renderer.Attributes{Widget: renderer.Kind(kind)}
	attrs.NameX, _ = a.String("name_x")
	attrs.RotateX, _ = a.Float64("rotate_x")
	attrs.FormatX, _ = a.String("format_x")
	attrs.FormatDateX, _ = a.String("format_date_x")
	attrs.FormatY, _ = a.String("format_y")
	attrs.Controls, _ = a.Bool("controls")
	attrs.Guide, _ = a.Bool("guide")
	attrs.ShowMaxMin, _ = a.Bool("show_max_min")
	attrs.Title, _ = a.String("title")
	attrs.TitleClass, _ = a.String("title_class")
	attrs.Description, _ = a.String("description")
	attrs.DescriptionClass, _ = a.String("description_class")
	attrs.NameY, _ = a.String("name_y")
	attrs.LastRowClass, _ = a.String("lastrow_class")
	attrs.View, _ = a.Int("view")
	return attrs, nil
}
