package providers

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/herald-notify/herald/schema"
)

// transformFields applies the declarative shaping metadata of each field:
// one-or-more normalization, list collapse, boolean and datetime encoding,
// and alias renaming to the wire name. The result is deterministic for
// equal validated input.
func (b *Base) transformFields(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for key, value := range data {
		field, declared := b.def.Schema.Properties[key]
		if !declared {
			if b.shadowedAlias(key, data) {
				continue
			}
			out[key] = value
			continue
		}
		out[wireName(key, field)] = transformValue(value, field)
	}
	return out
}

// shadowedAlias reports whether key is the wire alias of a declared field
// that is itself present in the input. The declared name wins then, so the
// alias value is dropped instead of racing it for the same output key.
func (b *Base) shadowedAlias(key string, data map[string]any) bool {
	for name, f := range b.def.Schema.Properties {
		if f.WireName != key {
			continue
		}
		if _, ok := data[name]; ok {
			return true
		}
	}
	return false
}

func wireName(key string, field schema.Field) string {
	if field.WireName != "" {
		return field.WireName
	}
	return key
}

func transformValue(value any, field schema.Field) any {
	if field.OneOrMore {
		if _, ok := asList(value); !ok {
			value = []any{value}
		}
	}
	if list, ok := asList(value); ok {
		if field.JoinWith != "" {
			return joinList(list, field.JoinWith)
		}
		return list
	}
	switch v := value.(type) {
	case bool:
		switch field.BoolStyle {
		case schema.BoolYesNo:
			if v {
				return "yes"
			}
			return "no"
		case schema.BoolTrueFalse:
			if v {
				return "true"
			}
			return "false"
		}
	case time.Time:
		return schema.FormatTime(v, field.TimeLayout)
	}
	return value
}

// asList widens any slice value to []any. Strings and byte slices are not
// lists.
func asList(value any) ([]any, bool) {
	if list, ok := value.([]any); ok {
		return list, true
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || rv.Kind() != reflect.Slice || rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func joinList(list []any, sep string) string {
	parts := make([]string, len(list))
	for i, item := range list {
		parts[i] = fmt.Sprintf("%v", item)
	}
	return strings.Join(parts, sep)
}
