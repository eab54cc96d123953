package renderer

import (
	"reflect"
	"strconv"
	"strings"
)

// px formats a pixel length.
func px(n int) string {
	return strconv.Itoa(n) + "px"
}

// parsePx parses a "123px" length, returning def when s is not one.
func parsePx(s string, def int) int {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "px") {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	if err != nil || v <= 0 {
		return def
	}
	return int(v)
}

// isMissing reports whether data is absent: nil or a typed nil.
// Empty but non-nil collections are present.
func isMissing(data any) bool {
	if data == nil {
		return true
	}
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.Pointer, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// truncate truncates a string to at most maxLen runes.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
