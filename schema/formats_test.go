package schema_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herald-notify/herald/schema"
)

func TestKnownFormat(t *testing.T) {
	for _, name := range []string{
		"iso8601", "rfc2822", "ascii", "e164", "port", "timestamp",
		"valid_file", "https_uri", "email", "uri",
	} {
		assert.True(t, schema.KnownFormat(name), "format %q", name)
	}
	assert.False(t, schema.KnownFormat("no-such-format"))
}

func formatValidator(t *testing.T, format string) *schema.Validator {
	t.Helper()
	v, err := schema.NewValidator(&schema.Object{
		Properties: map[string]schema.Field{
			"value": schema.String().Format(format),
		},
	})
	require.NoError(t, err)
	return v
}

func TestFormatAcceptance(t *testing.T) {
	cases := []struct {
		format string
		valid  []any
		bad    []any
	}{
		{
			format: "e164",
			valid:  []any{"+14155552671", "14155552671"},
			bad:    []any{"+0123", "call me", "+1 415 555 2671"},
		},
		{
			format: "iso8601",
			valid:  []any{"2026-03-14T09:26:53Z", "2026-03-14T09:26:53", "2026-03-14"},
			bad:    []any{"14/03/2026", "next tuesday"},
		},
		{
			format: "rfc2822",
			valid:  []any{"Sat, 14 Mar 2026 09:26:53 +0000", "Sat, 14 Mar 2026 09:26:53 UTC"},
			bad:    []any{"2026-03-14", "soon"},
		},
		{
			format: "ascii",
			valid:  []any{"plain text", ""},
			bad:    []any{"smörgåsbord"},
		},
		{
			format: "email",
			valid:  []any{"ops@example.com"},
			bad:    []any{"not-an-address", "@example.com"},
		},
		{
			format: "uri",
			valid:  []any{"https://example.com/hook", "http://example.com"},
			bad:    []any{"example.com", "not a url"},
		},
		{
			format: "https_uri",
			valid:  []any{"https://example.com/hook"},
			bad:    []any{"http://example.com/hook", "example.com"},
		},
	}

	for _, tc := range cases {
		v := formatValidator(t, tc.format)
		for _, value := range tc.valid {
			assert.NoError(t, v.Validate(map[string]any{"value": value}),
				"format %q should accept %v", tc.format, value)
		}
		for _, value := range tc.bad {
			assert.Error(t, v.Validate(map[string]any{"value": value}),
				"format %q should reject %v", tc.format, value)
		}
	}
}

func TestPortFormat(t *testing.T) {
	v, err := schema.NewValidator(&schema.Object{
		Properties: map[string]schema.Field{
			"value": schema.Integer().Format("port"),
		},
	})
	require.NoError(t, err)

	assert.NoError(t, v.Validate(map[string]any{"value": 8080}))
	assert.NoError(t, v.Validate(map[string]any{"value": 0}))
	assert.NoError(t, v.Validate(map[string]any{"value": 65535}))
	assert.Error(t, v.Validate(map[string]any{"value": 65536}))
	assert.Error(t, v.Validate(map[string]any{"value": -1}))
}

func TestTimestampFormat(t *testing.T) {
	v, err := schema.NewValidator(&schema.Object{
		Properties: map[string]schema.Field{
			"value": schema.Integer().Format("timestamp"),
		},
	})
	require.NoError(t, err)

	assert.NoError(t, v.Validate(map[string]any{"value": 1770000000}))
	assert.Error(t, v.Validate(map[string]any{"value": -5}))
}

func TestValidFileFormat(t *testing.T) {
	v := formatValidator(t, "valid_file")

	path := filepath.Join(t.TempDir(), "attachment.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	assert.NoError(t, v.Validate(map[string]any{"value": path}))
	assert.Error(t, v.Validate(map[string]any{"value": filepath.Join(t.TempDir(), "missing.txt")}))
	assert.Error(t, v.Validate(map[string]any{"value": t.TempDir()}))
}
