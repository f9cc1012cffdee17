// Package providers defines the uniform provider contract, the dispatch
// pipeline shared by every adapter, the provider registry and the Response
// value. Concrete adapters live in subpackages and embed Base, supplying
// only their schema, shaping and wire call.
package providers

import (
	"context"
	"sort"

	"github.com/herald-notify/herald/internal/httpx"
	"github.com/herald-notify/herald/schema"
	"go.uber.org/zap"
)

// DefaultEnvPrefix is the prefix used for environment ingestion unless the
// caller overrides it with the reserved env_prefix input key.
const DefaultEnvPrefix = "NOTIFIERS_"

// Reserved input keys, consumed by the pipeline and never forwarded.
const (
	KeyEnvPrefix     = "env_prefix"
	KeyRaiseOnErrors = "raise_on_errors"
)

// Provider is the uniform contract every notification adapter satisfies.
type Provider interface {
	Name() string
	SiteURL() string
	BaseURL() string
	Schema() *schema.Object
	Required() []string
	Arguments() map[string]schema.Field
	Defaults() map[string]any
	Metadata() map[string]any
	Resources() []string
	Resource(name string) (*Resource, bool)
	Notify(ctx context.Context, args map[string]any) (*Response, error)
}

// Sender is the provider-specific half of the pipeline: a pure shaping step
// applied after the declarative field transforms, and the wire call itself.
type Sender interface {
	Shape(data map[string]any) (map[string]any, error)
	Send(ctx context.Context, payload map[string]any) (*httpx.Result, error)
}

// Definition is the immutable description a concrete provider is built
// from.
type Definition struct {
	Name    string
	SiteURL string
	BaseURL string

	Schema   *schema.Object
	Defaults map[string]any

	// PathToErrors is the ordered key path walked through a JSON error body
	// to extract the provider's failure messages.
	PathToErrors []string

	// Extras is merged into Metadata, for provider-specific additions such
	// as gitter's message_url.
	Extras map[string]any
}

// Base carries the shared provider machinery: the compiled validator, the
// HTTP client, resources and the dispatch pipeline. Concrete providers
// embed *Base and implement Sender.
type Base struct {
	def       Definition
	validator *schema.Validator
	client    *httpx.Client
	logger    *zap.Logger
	sender    Sender

	baseURLOverride string
	resources       map[string]*Resource
}

// Option configures a provider at construction.
type Option func(*Base)

// WithLogger attaches a logger; the default is a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Base) { b.logger = logger }
}

// WithClient replaces the HTTP client, typically for tests.
func WithClient(client *httpx.Client) Option {
	return func(b *Base) { b.client = client }
}

// WithBaseURL overrides the provider's declared base URL, typically to
// point at a test server.
func WithBaseURL(url string) Option {
	return func(b *Base) { b.baseURLOverride = url }
}

// NewBase compiles the definition's schema and wires the shared machinery.
// A malformed schema fails here with ErrSchema.
func NewBase(def Definition, sender Sender, opts ...Option) (*Base, error) {
	validator, err := schema.NewValidator(def.Schema)
	if err != nil {
		return nil, &ErrSchema{Provider: def.Name, Message: err.Error()}
	}
	b := &Base{
		def:       def,
		validator: validator,
		logger:    zap.NewNop(),
		sender:    sender,
		resources: map[string]*Resource{},
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.client == nil {
		client, err := httpx.New()
		if err != nil {
			return nil, err
		}
		b.client = client
	}
	return b, nil
}

func (b *Base) Name() string    { return b.def.Name }
func (b *Base) SiteURL() string { return b.def.SiteURL }

func (b *Base) BaseURL() string {
	if b.baseURLOverride != "" {
		return b.baseURLOverride
	}
	return b.def.BaseURL
}

func (b *Base) Schema() *schema.Object { return b.def.Schema }

func (b *Base) Required() []string {
	required := make([]string, len(b.def.Schema.Required))
	copy(required, b.def.Schema.Required)
	return required
}

func (b *Base) Arguments() map[string]schema.Field {
	args := make(map[string]schema.Field, len(b.def.Schema.Properties))
	for name, f := range b.def.Schema.Properties {
		args[name] = f
	}
	return args
}

func (b *Base) Defaults() map[string]any {
	defaults := make(map[string]any, len(b.def.Defaults))
	for k, v := range b.def.Defaults {
		defaults[k] = v
	}
	return defaults
}

func (b *Base) PathToErrors() []string { return b.def.PathToErrors }

func (b *Base) Metadata() map[string]any {
	meta := map[string]any{
		"name":     b.def.Name,
		"base_url": b.BaseURL(),
		"site_url": b.def.SiteURL,
	}
	for k, v := range b.def.Extras {
		meta[k] = v
	}
	return meta
}

// Client returns the HTTP helper shared by the provider and its resources.
func (b *Base) Client() *httpx.Client { return b.client }

// Logger returns the provider's logger.
func (b *Base) Logger() *zap.Logger { return b.logger }

// Resources returns the sorted names of the provider's resources.
func (b *Base) Resources() []string {
	names := make([]string, 0, len(b.resources))
	for name := range b.resources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resource returns the named resource.
func (b *Base) Resource(name string) (*Resource, bool) {
	res, ok := b.resources[name]
	return res, ok
}
