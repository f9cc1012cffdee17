package schema

// BoolStyle selects how a boolean value is encoded on the wire.
type BoolStyle int

const (
	BoolKeep BoolStyle = iota
	BoolYesNo
	BoolTrueFalse
)

// TimeLayout selects how a datetime value is encoded on the wire.
type TimeLayout int

const (
	TimeKeep TimeLayout = iota
	TimeRFC2822
	TimeISO8601
)

// Field describes one named argument accepted by a provider or resource.
// Spec holds the JSON-Schema fragment used for validation; the remaining
// attributes drive payload shaping and are never rendered into the schema.
type Field struct {
	Spec map[string]any

	// WireName is the key emitted after shaping. Empty keeps the declared
	// name. Used for aliases such as from_ -> from or message -> text.
	WireName string

	// JoinWith collapses a list value into a single separator-joined string
	// during shaping. Empty keeps lists as-is.
	JoinWith string

	// OneOrMore marks fields built with OneOrMore; their values are
	// normalized to the list form before shaping.
	OneOrMore bool

	BoolStyle  BoolStyle
	TimeLayout TimeLayout
}

func String() Field  { return Field{Spec: map[string]any{"type": "string"}} }
func Integer() Field { return Field{Spec: map[string]any{"type": "integer"}} }
func Number() Field  { return Field{Spec: map[string]any{"type": "number"}} }
func Bool() Field    { return Field{Spec: map[string]any{"type": "boolean"}} }
func Map() Field     { return Field{Spec: map[string]any{"type": "object"}} }

func List(item Field) Field {
	return Field{Spec: map[string]any{"type": "array", "items": item.Spec}}
}

// OneOrMore accepts either a single inner value or a non-empty unique list
// of them. Shaping metadata carries over from the inner field.
func OneOrMore(inner Field) Field {
	list := map[string]any{
		"type":        "array",
		"items":       inner.Spec,
		"minItems":    1,
		"uniqueItems": true,
	}
	return Field{
		Spec:       map[string]any{"oneOf": []any{inner.Spec, list}},
		WireName:   inner.WireName,
		JoinWith:   inner.JoinWith,
		OneOrMore:  true,
		BoolStyle:  inner.BoolStyle,
		TimeLayout: inner.TimeLayout,
	}
}

func (f Field) Title(title string) Field {
	f.Spec["title"] = title
	return f
}

func (f Field) Format(name string) Field {
	f.Spec["format"] = name
	return f
}

func (f Field) Enum(values ...any) Field {
	f.Spec["enum"] = values
	return f
}

func (f Field) Min(v float64) Field {
	f.Spec["minimum"] = v
	return f
}

func (f Field) Max(v float64) Field {
	f.Spec["maximum"] = v
	return f
}

func (f Field) MinLen(n int) Field {
	f.Spec["minLength"] = n
	return f
}

func (f Field) MaxLen(n int) Field {
	f.Spec["maxLength"] = n
	return f
}

func (f Field) MinItems(n int) Field {
	f.Spec["minItems"] = n
	return f
}

func (f Field) MaxItems(n int) Field {
	f.Spec["maxItems"] = n
	return f
}

func (f Field) Unique() Field {
	f.Spec["uniqueItems"] = true
	return f
}

func (f Field) Pattern(expr string) Field {
	f.Spec["pattern"] = expr
	return f
}

// Props declares the nested properties of an object field along with the
// names required inside it.
func (f Field) Props(props map[string]Field, required ...string) Field {
	rendered := make(map[string]any, len(props))
	for name, p := range props {
		rendered[name] = p.Spec
	}
	f.Spec["properties"] = rendered
	f.Spec["additionalProperties"] = false
	if len(required) > 0 {
		f.Spec["required"] = required
	}
	return f
}

// Wire sets the key name emitted after shaping.
func (f Field) Wire(name string) Field {
	f.WireName = name
	return f
}

// CSV collapses list values into a comma-separated string during shaping.
func (f Field) CSV() Field {
	f.JoinWith = ","
	return f
}

func (f Field) YesNo() Field {
	f.BoolStyle = BoolYesNo
	return f
}

func (f Field) TrueFalse() Field {
	f.BoolStyle = BoolTrueFalse
	return f
}

func (f Field) RFC2822() Field {
	f.TimeLayout = TimeRFC2822
	return f
}

func (f Field) ISO8601() Field {
	f.TimeLayout = TimeISO8601
	return f
}

// Type reports the declared base type of the field. For OneOrMore fields it
// is the scalar branch's type.
func (f Field) Type() string {
	if t, ok := f.Spec["type"].(string); ok {
		return t
	}
	if branches, ok := f.Spec["oneOf"].([]any); ok && len(branches) > 0 {
		if scalar, ok := branches[0].(map[string]any); ok {
			if t, ok := scalar["type"].(string); ok {
				return t
			}
		}
	}
	return ""
}
