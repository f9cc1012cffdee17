package providers

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/herald-notify/herald/schema"
	"go.uber.org/zap"
)

// Notify runs the full dispatch pipeline: reserved-key handling, environment
// ingestion, default merging, coercion, validation, shaping, the dependency
// check, the wire call and Response assembly. Validation failures return
// ErrBadArguments before any network I/O.
func (b *Base) Notify(ctx context.Context, args map[string]any) (*Response, error) {
	data := make(map[string]any, len(args))
	for k, v := range args {
		data[k] = v
	}

	prefix := DefaultEnvPrefix
	if raw, ok := data[KeyEnvPrefix]; ok {
		if s, ok := raw.(string); ok {
			prefix = s
		}
		delete(data, KeyEnvPrefix)
	}
	raise := false
	if raw, ok := data[KeyRaiseOnErrors]; ok {
		raise = truthy(raw)
		delete(data, KeyRaiseOnErrors)
	}

	payload, err := b.prepare(data, prefix)
	if err != nil {
		return nil, err
	}

	correlationID := uuid.NewString()
	b.logger.Debug("dispatching notification",
		zap.String("provider", b.def.Name),
		zap.String("correlation_id", correlationID))

	result, err := b.sender.Send(ctx, payload)
	if err != nil {
		return nil, err
	}

	resp := &Response{
		Provider:     b.def.Name,
		Data:         payload,
		HTTPResponse: result.Response,
		Body:         result.Body,
		Errors:       result.Errors,
		Status:       StatusSuccess,
	}
	if len(result.Errors) > 0 {
		resp.Status = StatusFailure
		b.logger.Debug("dispatch failed",
			zap.String("provider", b.def.Name),
			zap.String("correlation_id", correlationID),
			zap.Strings("errors", result.Errors))
	}

	if raise {
		if err := resp.RaiseOnErrors(); err != nil {
			return resp, err
		}
	}
	return resp, nil
}

// prepare turns caller input into the shaped wire payload.
func (b *Base) prepare(data map[string]any, prefix string) (map[string]any, error) {
	envArgs := environmentArgs(prefix, b.def.Name, b.def.Schema.FieldNames())
	merged := merge(b.def.Defaults, envArgs, data)
	merged = schema.Coerce(merged, b.def.Schema)

	if err := b.validator.Validate(merged); err != nil {
		return nil, &ErrBadArguments{Provider: b.def.Name, Data: merged, Message: err.Error()}
	}

	shaped, err := b.sender.Shape(b.transformFields(merged))
	if err != nil {
		return nil, fmt.Errorf("%s: shaping payload: %w", b.def.Name, err)
	}

	if err := b.def.Schema.CheckDependencies(shaped); err != nil {
		return nil, &ErrBadArguments{Provider: b.def.Name, Data: shaped, Message: err.Error()}
	}
	return shaped, nil
}

// environmentArgs collects candidate input from PREFIX_PROVIDER_FIELD
// variables. The environment is read per call, not cached.
func environmentArgs(prefix, provider string, fields []string) map[string]any {
	out := map[string]any{}
	for _, field := range fields {
		key := strings.ToUpper(prefix + provider + "_" + field)
		if value, ok := os.LookupEnv(key); ok {
			out[field] = value
		}
	}
	return out
}

// merge composes the candidate input: caller input wins over environment,
// which wins over static defaults.
func merge(defaults, envArgs, input map[string]any) map[string]any {
	merged := make(map[string]any, len(defaults)+len(envArgs)+len(input))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range envArgs {
		merged[k] = v
	}
	for k, v := range input {
		merged[k] = v
	}
	return merged
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return schema.CoerceBool(t)
	default:
		return false
	}
}
