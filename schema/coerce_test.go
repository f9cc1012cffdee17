package schema_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/herald-notify/herald/schema"
)

func TestCoerceParsesDeclaredTypes(t *testing.T) {
	obj := &schema.Object{
		Properties: map[string]schema.Field{
			"priority": schema.Integer(),
			"ratio":    schema.Number(),
			"html":     schema.Bool(),
			"message":  schema.String(),
		},
	}

	out := schema.Coerce(map[string]any{
		"priority": "2",
		"ratio":    "0.5",
		"html":     "yes",
		"message":  "42",
		"extra":    "left alone",
	}, obj)

	assert.Equal(t, 2, out["priority"])
	assert.Equal(t, 0.5, out["ratio"])
	assert.Equal(t, true, out["html"])
	assert.Equal(t, "42", out["message"])
	assert.Equal(t, "left alone", out["extra"])
}

func TestCoerceLeavesUnparsableValues(t *testing.T) {
	obj := &schema.Object{
		Properties: map[string]schema.Field{
			"priority": schema.Integer(),
		},
	}
	out := schema.Coerce(map[string]any{"priority": "loud"}, obj)
	assert.Equal(t, "loud", out["priority"])
}

func TestCoerceDoesNotMutateInput(t *testing.T) {
	obj := &schema.Object{
		Properties: map[string]schema.Field{"html": schema.Bool()},
	}
	in := map[string]any{"html": "yes"}
	_ = schema.Coerce(in, obj)
	assert.Equal(t, "yes", in["html"])
}

func TestCoerceRendersTimeValues(t *testing.T) {
	obj := &schema.Object{
		Properties: map[string]schema.Field{
			"deliverytime": schema.String().RFC2822(),
			"timestamp":    schema.String(),
		},
	}
	at := time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)
	out := schema.Coerce(map[string]any{
		"deliverytime": at,
		"timestamp":    at,
	}, obj)
	assert.Equal(t, "Sat, 14 Mar 2026 09:26:53 +0000", out["deliverytime"])
	assert.Equal(t, "2026-03-14T09:26:53Z", out["timestamp"])
}

func TestCoerceBool(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"y", true}, {"Yes", true}, {"true", true}, {"on", true}, {"1", true},
		{"n", false}, {"NO", false}, {"false", false}, {"off", false}, {"0", false},
		{"", false},
		{"anything else", true},
		{" TRUE ", true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, schema.CoerceBool(tc.in), "input %q", tc.in)
	}
}
