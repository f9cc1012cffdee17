package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError is the single best-match failure selected from a
// validation run.
type ValidationError struct {
	Keyword string
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validator runs candidate input against a compiled schema. It is built
// once per provider construction and is safe for concurrent use.
type Validator struct {
	object   *Object
	compiled *gojsonschema.Schema
}

// NewValidator compiles the object's schema. A malformed schema, including
// a format name with no registered checker, fails here.
func NewValidator(o *Object) (*Validator, error) {
	for name, f := range o.Properties {
		if err := checkFormats(f.Spec); err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(o.Render()))
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return &Validator{object: o, compiled: compiled}, nil
}

func checkFormats(spec map[string]any) error {
	if format, ok := spec["format"].(string); ok && !KnownFormat(format) {
		return fmt.Errorf("unknown format %q", format)
	}
	if items, ok := spec["items"].(map[string]any); ok {
		if err := checkFormats(items); err != nil {
			return err
		}
	}
	if branches, ok := spec["oneOf"].([]any); ok {
		for _, branch := range branches {
			if sub, ok := branch.(map[string]any); ok {
				if err := checkFormats(sub); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Validate checks input against the schema and the presence composites.
// When several violations exist, a single best match is reported, preferring
// missing required fields, then forbidden additional properties, then type
// mismatches, then enum/format/bounds failures, then composite failures.
func (v *Validator) Validate(input map[string]any) error {
	result, err := v.compiled.Validate(gojsonschema.NewGoLoader(input))
	if err != nil {
		return &ValidationError{Keyword: "schema", Message: err.Error()}
	}
	if !result.Valid() {
		return v.bestMatch(result.Errors())
	}
	return v.checkComposites(input)
}

func (v *Validator) bestMatch(errs []gojsonschema.ResultError) *ValidationError {
	sort.SliceStable(errs, func(i, j int) bool {
		ri, rj := rank(errs[i].Type()), rank(errs[j].Type())
		if ri != rj {
			return ri < rj
		}
		return errs[i].Field() < errs[j].Field()
	})
	return v.describe(errs[0])
}

func rank(errType string) int {
	switch errType {
	case "required":
		return 0
	case "additional_property_not_allowed":
		return 1
	case "invalid_type":
		return 2
	case "number_one_of", "number_any_of", "number_all_of", "missing_dependency":
		return 4
	default:
		// enum, format, bounds and everything else.
		return 3
	}
}

func (v *Validator) describe(err gojsonschema.ResultError) *ValidationError {
	details := err.Details()
	switch err.Type() {
	case "required":
		prop, _ := details["property"].(string)
		return &ValidationError{
			Keyword: "required",
			Field:   prop,
			Message: v.object.message("required", fmt.Sprintf("'%s' is a required property", prop)),
		}
	case "additional_property_not_allowed":
		prop, _ := details["property"].(string)
		return &ValidationError{
			Keyword: "additionalProperties",
			Field:   prop,
			Message: v.object.message("additionalProperties",
				fmt.Sprintf("Additional properties are not allowed ('%s' was unexpected)", prop)),
		}
	case "invalid_type":
		return &ValidationError{
			Keyword: "type",
			Field:   err.Field(),
			Message: v.object.message("type", located(err)),
		}
	case "enum":
		return &ValidationError{
			Keyword: "enum",
			Field:   err.Field(),
			Message: v.object.message("enum", located(err)),
		}
	case "format":
		return &ValidationError{
			Keyword: "format",
			Field:   err.Field(),
			Message: v.object.message("format", located(err)),
		}
	default:
		return &ValidationError{
			Keyword: err.Type(),
			Field:   err.Field(),
			Message: v.object.message(err.Type(), located(err)),
		}
	}
}

func located(err gojsonschema.ResultError) string {
	field := err.Field()
	if field == "" || field == "(root)" {
		return err.Description()
	}
	return fmt.Sprintf("'%s': %s", field, err.Description())
}

func (v *Validator) checkComposites(input map[string]any) error {
	if len(v.object.OneOf) > 0 {
		matches := 0
		for _, alt := range v.object.OneOf {
			if alt.matches(input) {
				matches++
			}
		}
		if matches != 1 {
			return &ValidationError{
				Keyword: "oneOf",
				Message: v.object.message("oneOf",
					fmt.Sprintf("Exactly one of %s must be provided", describeAlternatives(v.object.OneOf))),
			}
		}
	}
	if len(v.object.AnyOf) > 0 {
		matched := false
		for _, alt := range v.object.AnyOf {
			if alt.matches(input) {
				matched = true
				break
			}
		}
		if !matched {
			return &ValidationError{
				Keyword: "anyOf",
				Message: v.object.message("anyOf",
					fmt.Sprintf("At least one of %s must be provided", describeAlternatives(v.object.AnyOf))),
			}
		}
	}
	return nil
}

func (a Alternative) matches(input map[string]any) bool {
	for _, name := range a.Required {
		if _, ok := input[name]; !ok {
			return false
		}
	}
	return true
}

func describeAlternatives(alts []Alternative) string {
	parts := make([]string, 0, len(alts))
	for _, alt := range alts {
		quoted := make([]string, 0, len(alt.Required))
		for _, name := range alt.Required {
			quoted = append(quoted, fmt.Sprintf("'%s'", name))
		}
		parts = append(parts, strings.Join(quoted, "+"))
	}
	return strings.Join(parts, " or ")
}

// CheckDependencies verifies the cross-field dependencies against a shaped
// payload: the presence of a field requires the presence of the fields it
// depends on.
func (o *Object) CheckDependencies(data map[string]any) error {
	for field, needs := range o.Dependencies {
		if _, ok := data[field]; !ok {
			continue
		}
		for _, need := range needs {
			if _, ok := data[need]; !ok {
				return &ValidationError{
					Keyword: "dependencies",
					Field:   field,
					Message: o.message("dependencies",
						fmt.Sprintf("'%s' requires '%s' to be provided", field, need)),
				}
			}
		}
	}
	return nil
}
