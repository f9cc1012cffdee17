package providers

import (
	"context"

	"github.com/herald-notify/herald/internal/httpx"
	"github.com/herald-notify/herald/schema"
)

// Resource is a secondary GET operation bound to a provider, returning the
// provider's structured data (device lists, sound catalogs, room lists).
// It owns its own schema, shares the parent's credentials through it, and
// never returns a partial payload: any failure is an ErrResource.
type Resource struct {
	name     string
	provider string

	object    *schema.Object
	validator *schema.Validator
	client    *httpx.Client

	build   func(data map[string]any) httpx.Request
	extract func(parsed any) any
}

// AddResource compiles and registers a named resource on the provider.
// build turns validated input into the GET request; extract optionally
// unwraps the parsed body (for example telegram's {"result": ...}).
func (b *Base) AddResource(name string, object *schema.Object, build func(data map[string]any) httpx.Request, extract func(parsed any) any) error {
	validator, err := schema.NewValidator(object)
	if err != nil {
		return &ErrSchema{Provider: b.def.Name, Message: err.Error()}
	}
	b.resources[name] = &Resource{
		name:      name,
		provider:  b.def.Name,
		object:    object,
		validator: validator,
		client:    b.client,
		build:     build,
		extract:   extract,
	}
	return nil
}

// Name returns the resource name.
func (r *Resource) Name() string { return r.name }

// Schema returns the resource's argument contract.
func (r *Resource) Schema() *schema.Object { return r.object }

// Call validates args through the same ingestion pipeline as Notify, issues
// the GET and returns the parsed JSON body.
func (r *Resource) Call(ctx context.Context, args map[string]any) (any, error) {
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

	envArgs := environmentArgs(prefix, r.provider, r.object.FieldNames())
	merged := schema.Coerce(merge(nil, envArgs, data), r.object)

	if err := r.validator.Validate(merged); err != nil {
		return nil, &ErrBadArguments{Provider: r.provider, Data: merged, Message: err.Error()}
	}

	result, err := r.client.Get(ctx, r.build(merged))
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		return nil, &ErrResource{
			Provider: r.provider,
			Resource: r.name,
			Errors:   result.Errors,
			Body:     result.Body,
			Response: result.Response,
		}
	}

	parsed, err := result.JSONBody()
	if err != nil {
		return nil, &ErrResource{
			Provider: r.provider,
			Resource: r.name,
			Errors:   []string{err.Error()},
			Body:     result.Body,
			Response: result.Response,
		}
	}
	if r.extract != nil {
		return r.extract(parsed), nil
	}
	return parsed, nil
}
