package schema

import (
	"strconv"
	"strings"
	"time"
)

var falsyStrings = map[string]struct{}{
	"n": {}, "no": {}, "false": {}, "off": {}, "0": {},
}

var truthyStrings = map[string]struct{}{
	"y": {}, "yes": {}, "true": {}, "on": {}, "1": {},
}

// Coerce returns a copy of input with values converted toward their
// declared types. Environment variables always arrive as strings, so string
// values of boolean, integer and number fields are parsed; values that do
// not parse are left alone for validation to reject. time.Time values are
// rendered to the field's wire layout.
func Coerce(input map[string]any, o *Object) map[string]any {
	out := make(map[string]any, len(input))
	for key, value := range input {
		field, declared := o.Properties[key]
		if !declared {
			out[key] = value
			continue
		}
		out[key] = coerceValue(value, field)
	}
	return out
}

func coerceValue(value any, field Field) any {
	if t, ok := value.(time.Time); ok {
		return FormatTime(t, field.TimeLayout)
	}
	s, ok := value.(string)
	if !ok {
		return value
	}
	switch field.Type() {
	case "boolean":
		return CoerceBool(s)
	case "integer":
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n
		}
	case "number":
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return n
		}
	}
	return value
}

// CoerceBool parses a boolean from its lenient string forms: members of
// {y, yes, true, on, 1} are true, members of {n, no, false, off, 0} are
// false, and any other non-empty string is true.
func CoerceBool(s string) bool {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" {
		return false
	}
	if _, ok := falsyStrings[normalized]; ok {
		return false
	}
	if _, ok := truthyStrings[normalized]; ok {
		return true
	}
	return true
}

// FormatTime renders a datetime the way the wire layout demands.
func FormatTime(t time.Time, layout TimeLayout) string {
	switch layout {
	case TimeRFC2822:
		return t.Format("Mon, 02 Jan 2006 15:04:05 -0700")
	default:
		return t.Format(time.RFC3339)
	}
}
