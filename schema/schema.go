// Package schema declares provider argument contracts as values and
// validates candidate input against them. A schema stays introspectable
// data: providers expose it for CLI flag generation and metadata, and the
// validator compiles it once into a JSON-Schema document.
package schema

import "sort"

// Alternative is one presence branch of a oneOf/anyOf composite: it matches
// when every listed field is present in the input.
type Alternative struct {
	Required []string
}

// Object is the argument contract of one provider or resource.
type Object struct {
	Properties map[string]Field

	// Required lists fields whose absence fails validation.
	Required []string

	// OneOf requires exactly one alternative to match; AnyOf at least one.
	OneOf []Alternative
	AnyOf []Alternative

	// Dependencies maps a field to the fields its presence requires. They
	// are checked against the shaped payload, after alias renaming.
	Dependencies map[string][]string

	// AllowAdditional permits input keys outside Properties. Off by default.
	AllowAdditional bool

	// Messages overrides the default error text per failing keyword, e.g.
	// {"oneOf": "Only one of 'domain' or 'server' is allowed"}.
	Messages map[string]string
}

// FieldNames returns the declared property names in sorted order.
func (o *Object) FieldNames() []string {
	names := make([]string, 0, len(o.Properties))
	for name := range o.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render produces the JSON-Schema document for the object. Presence
// composites and dependencies are enforced separately by the validator and
// the dispatch pipeline, so they are not rendered.
func (o *Object) Render() map[string]any {
	props := make(map[string]any, len(o.Properties))
	for name, f := range o.Properties {
		props[name] = f.Spec
	}
	// Wire aliases validate too: callers may pass either the declared name
	// or the name emitted after shaping (from_ or from).
	for _, f := range o.Properties {
		if f.WireName == "" {
			continue
		}
		if _, taken := props[f.WireName]; !taken {
			props[f.WireName] = f.Spec
		}
	}
	doc := map[string]any{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": o.AllowAdditional,
	}
	if len(o.Required) > 0 {
		doc["required"] = o.Required
	}
	return doc
}

func (o *Object) message(keyword, fallback string) string {
	if msg, ok := o.Messages[keyword]; ok {
		return msg
	}
	return fallback
}
